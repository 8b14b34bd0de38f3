package calendar

import (
	"fmt"
	"strings"
	"time"

	"salonadmin/internal/models"
)

// Color buckets used by the view layer. Presentation only: no
// state-machine authority lives here.
const (
	ColorWarning = "warning" // pending
	ColorSuccess = "success" // confirmed
	ColorNeutral = "neutral" // completed
	ColorDanger  = "danger"  // cancelled
)

const (
	placeholderCustomer = "Walk-in"
	placeholderService  = "No services"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Event is a display-ready calendar entry derived from a booking. Events are
// ephemeral: always recomputed from the current booking list, never stored.
type Event struct {
	ID     int64
	Title  string
	Start  time.Time
	End    time.Time
	Status string
	Color  string
}

// Project maps bookings to calendar events, preserving order. It is a pure
// function: no network, no storage, same input always yields the same output.
// Bookings whose date or start time fail to parse are skipped.
func Project(bookings []models.Booking) []Event {
	events := make([]Event, 0, len(bookings))
	for i := range bookings {
		ev, err := projectOne(&bookings[i])
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events
}

func projectOne(b *models.Booking) (Event, error) {
	start, err := combine(b.BookingDate, b.StartTime)
	if err != nil {
		return Event{}, err
	}

	// Explicit end time wins over the duration when both are present.
	end, err := combine(b.BookingDate, b.EndTime)
	if err != nil {
		if b.Duration <= 0 {
			return Event{}, fmt.Errorf("booking %d: no usable end time", b.ID)
		}
		end = start.Add(time.Duration(b.Duration) * time.Minute)
	}

	return Event{
		ID:     b.ID,
		Title:  title(b),
		Start:  start,
		End:    end,
		Status: b.Status,
		Color:  StatusColor(b.Status),
	}, nil
}

func combine(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	c, err := time.Parse(timeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.Local), nil
}

func title(b *models.Booking) string {
	customer := b.CustomerName()
	if customer == "" {
		customer = placeholderCustomer
	}

	services := strings.Join(b.ServiceNames(), ", ")
	if services == "" {
		services = placeholderService
	}

	return customer + " - " + services
}

// StatusColor maps a booking status to its presentation color bucket.
func StatusColor(status string) string {
	switch status {
	case models.StatusPending:
		return ColorWarning
	case models.StatusConfirmed:
		return ColorSuccess
	case models.StatusCompleted:
		return ColorNeutral
	case models.StatusCancelled:
		return ColorDanger
	}
	return ColorNeutral
}

// CountOnDay returns how many events start on the given calendar day.
func CountOnDay(events []Event, day time.Time) int {
	count := 0
	y, m, d := day.Date()
	for _, ev := range events {
		ey, em, ed := ev.Start.Date()
		if ey == y && em == m && ed == d {
			count++
		}
	}
	return count
}
