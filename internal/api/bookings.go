package api

import (
	"context"
	"fmt"

	"salonadmin/internal/models"
)

// ListBookings returns all bookings visible to the operator.
func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var wrap struct {
		Bookings []models.Booking `json:"bookings"`
	}
	if err := c.get(ctx, "/api/v1/bookings", nil, &wrap, "bookings_list"); err != nil {
		return nil, err
	}
	if wrap.Bookings == nil {
		return []models.Booking{}, nil
	}
	return wrap.Bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/api/v1/bookings/%d", id)
	if err := c.get(ctx, path, nil, &booking, "bookings_get"); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.post(ctx, "/api/v1/bookings", req, &booking, "bookings_create"); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking is the customer-facing cancel endpoint.
func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/bookings/%d/cancel", id)
	return c.post(ctx, path, nil, nil, "bookings_cancel")
}

// UpdateBookingStatus is the admin status mutation. Transition legality is
// checked by the booking workflow before this is called; the backend remains
// the authority and may still reject.
func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status string) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/api/v1/admin/bookings/%d/status", id)
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	if err := c.patch(ctx, path, body, &booking, "bookings_update_status"); err != nil {
		return nil, err
	}
	return &booking, nil
}
