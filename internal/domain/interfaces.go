package domain

import (
	"context"

	"salonadmin/internal/models"
)

// AuthAPI is the slice of the backend client the auth manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context) (*models.User, error)
}

// BookingAPI is the slice of the backend client the booking workflow needs.
type BookingAPI interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
	UpdateBookingStatus(ctx context.Context, id int64, status string) (*models.Booking, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload any) error
}
