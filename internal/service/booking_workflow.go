package service

import (
	"context"
	"errors"
	"fmt"

	"salonadmin/internal/domain"
	"salonadmin/internal/events"
	"salonadmin/internal/models"

	"github.com/rs/zerolog"
)

// ErrIllegalTransition marks a status change outside the operator workflow.
// It is raised before any network call.
var ErrIllegalTransition = errors.New("booking: illegal status transition")

// ErrTransitionDeclined is returned when the operator does not confirm the
// transition prompt.
var ErrTransitionDeclined = errors.New("booking: transition declined by operator")

// IllegalTransitionError carries the rejected edge.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("booking: illegal status transition %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// ConfirmFunc asks the operator to confirm a transition, naming the
// human-readable target status. Returning false aborts without side effects.
type ConfirmFunc func(booking *models.Booking, targetLabel string) bool

// BookingWorkflow enforces the client-side status lifecycle on top of the
// backend, which stays authoritative: legality is checked here first, and
// backend rejections are surfaced verbatim.
type BookingWorkflow struct {
	api     domain.BookingAPI
	bus     domain.EventPublisher
	confirm ConfirmFunc
	logger  zerolog.Logger
}

func NewBookingWorkflow(bookingAPI domain.BookingAPI, bus domain.EventPublisher, confirm ConfirmFunc, logger *zerolog.Logger) *BookingWorkflow {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "booking-workflow").Logger()
	}
	return &BookingWorkflow{api: bookingAPI, bus: bus, confirm: confirm, logger: base}
}

// Transition moves a booking to targetStatus. On success the updated booking
// is returned and the caller must refresh or patch any derived views built
// from a previous fetch.
func (w *BookingWorkflow) Transition(ctx context.Context, bookingID int64, targetStatus string) (*models.Booking, error) {
	if !models.IsValidStatus(targetStatus) {
		return nil, &IllegalTransitionError{From: "?", To: targetStatus}
	}

	booking, err := w.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(booking.Status, targetStatus) {
		return nil, &IllegalTransitionError{From: booking.Status, To: targetStatus}
	}

	if w.confirm != nil && !w.confirm(booking, models.StatusLabel(targetStatus)) {
		return nil, ErrTransitionDeclined
	}

	updated, err := w.api.UpdateBookingStatus(ctx, bookingID, targetStatus)
	if err != nil {
		// No optimistic change was applied; the server's reason passes
		// through to the operator untouched.
		return nil, err
	}

	w.logger.Info().
		Int64("booking_id", bookingID).
		Str("from", booking.Status).
		Str("to", updated.Status).
		Msg("booking status changed")

	w.publishTransition(booking, updated)
	return updated, nil
}

// NextStatuses lists the transitions the console may offer for a booking.
func (w *BookingWorkflow) NextStatuses(booking *models.Booking) []string {
	if booking == nil {
		return nil
	}
	return models.NextStatuses(booking.Status)
}

// Cancel runs the pending/confirmed -> cancelled edge through the same
// guard and confirmation path.
func (w *BookingWorkflow) Cancel(ctx context.Context, bookingID int64) (*models.Booking, error) {
	return w.Transition(ctx, bookingID, models.StatusCancelled)
}

func (w *BookingWorkflow) publishTransition(before, after *models.Booking) {
	if w.bus == nil {
		return
	}

	var eventType string
	switch after.Status {
	case models.StatusConfirmed:
		eventType = events.EventBookingConfirmed
	case models.StatusCompleted:
		eventType = events.EventBookingCompleted
	case models.StatusCancelled:
		eventType = events.EventBookingCancelled
	default:
		return
	}

	payload := events.BookingEventPayload{
		BookingID:   after.ID,
		BookingDate: after.BookingDate,
		StartTime:   after.StartTime,
		Price:       after.Price,
		FromStatus:  before.Status,
		ToStatus:    after.Status,
	}
	payload.CustomerName = after.CustomerName()
	if after.Stylist != nil {
		payload.StylistName = after.Stylist.Name
	}

	if err := w.bus.PublishJSON(eventType, payload); err != nil {
		w.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", after.ID).Msg("publish event error")
	}
}
