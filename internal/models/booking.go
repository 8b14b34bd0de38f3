package models

import "time"

// Booking is the backend's booking record. Dates and clock times arrive as
// strings on the wire (booking_date "2006-01-02", times "15:04"); only status
// is mutable through the console.
type Booking struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	StylistID   int64         `json:"stylist_id"`
	BookingDate string        `json:"booking_date"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	Duration    int           `json:"duration"` // minutes
	Price       float64       `json:"price"`
	Status      string        `json:"status"` // pending, confirmed, completed, cancelled
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	User        *BookingUser  `json:"user,omitempty"`
	Stylist     *BookingRef   `json:"stylist,omitempty"`
	Services    []ServiceItem `json:"services"`
}

// BookingUser is the populated customer snapshot on a booking.
type BookingUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingRef is a minimal id/name reference populated on a booking.
type BookingRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ServiceItem is one service line on a booking.
type ServiceItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"` // minutes
}

type CreateBookingRequest struct {
	ServiceID   int64  `json:"service_id"`
	StylistID   int64  `json:"stylist_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	Notes       string `json:"notes,omitempty"`
}

// CustomerName returns the populated customer's display name.
func (b *Booking) CustomerName() string {
	if b.User == nil {
		return ""
	}
	return b.User.Name
}

// ServiceNames lists the names of the booked services in order.
func (b *Booking) ServiceNames() []string {
	names := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		names = append(names, s.Name)
	}
	return names
}
