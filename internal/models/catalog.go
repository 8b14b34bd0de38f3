package models

import "time"

// Service is a bookable salon service.
type Service struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Duration    int       `json:"duration"` // minutes
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type Stylist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Specialty   string    `json:"specialty"`
	Experience  int       `json:"experience,omitempty"` // years
	Avatar      string    `json:"avatar,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type StylistInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Specialty   string `json:"specialty"`
	Experience  int    `json:"experience,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// StylistSchedule is a weekly working window for a stylist.
// DayOfWeek is 0-6, Sunday first.
type StylistSchedule struct {
	ID        int64     `json:"id"`
	StylistID int64     `json:"stylist_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"` // "09:00"
	EndTime   string    `json:"end_time"`   // "18:00"
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ScheduleInput struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
