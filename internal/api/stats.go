package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"salonadmin/internal/models"
)

func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.get(ctx, "/api/v1/admin/statistics/dashboard", nil, &stats, "statistics_dashboard"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RevenueReport fetches revenue rows, optionally bounded by start/end dates
// in "2006-01-02" form.
func (c *Client) RevenueReport(ctx context.Context, startDate, endDate string) ([]models.RevenueReport, error) {
	query := url.Values{}
	if startDate != "" {
		query.Set("start_date", startDate)
	}
	if endDate != "" {
		query.Set("end_date", endDate)
	}

	var rows []models.RevenueReport
	if err := c.get(ctx, "/api/v1/admin/statistics/revenue", query, &rows, "statistics_revenue"); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) ListUsers(ctx context.Context, limit, offset int) (*models.UserPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var page models.UserPage
	if err := c.get(ctx, "/admin/users", query, &page, "users_list"); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, fmt.Sprintf("/admin/users/%d", id), nil, &user, "users_get"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UserBookings(ctx context.Context, id int64) ([]models.Booking, error) {
	var bookings []models.Booking
	path := fmt.Sprintf("/admin/users/%d/bookings", id)
	if err := c.get(ctx, path, nil, &bookings, "users_bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}
