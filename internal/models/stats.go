package models

// DashboardStats mirrors GET /api/v1/admin/statistics/dashboard.
type DashboardStats struct {
	TodayBookings   int              `json:"today_bookings"`
	WeekBookings    int              `json:"week_bookings"`
	MonthBookings   int              `json:"month_bookings"`
	TodayRevenue    float64          `json:"today_revenue"`
	MonthRevenue    float64          `json:"month_revenue"`
	RevenueByDay    []DailyRevenue   `json:"revenue_by_day"`
	PopularServices []PopularService `json:"popular_services"`
	TopStylists     []TopStylist     `json:"top_stylists"`
}

type DailyRevenue struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type PopularService struct {
	ServiceID int64  `json:"service_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type TopStylist struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	BookingCount int      `json:"booking_count"`
	Revenue      *float64 `json:"revenue"`
}

// RevenueReport is one row of GET /api/v1/admin/statistics/revenue.
type RevenueReport struct {
	Date          string  `json:"date"`
	Revenue       float64 `json:"revenue"`
	BookingsCount int     `json:"bookings_count"`
}
