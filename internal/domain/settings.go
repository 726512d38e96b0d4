package domain

import "time"

// Settings is the capacity configuration snapshot injected into the booking
// engine. The engine never mutates it.
type Settings struct {
	MaxCapacity      int
	SlotDurationMins int
	ReservationHours int
	TotalSlots       int
	OpenHour         int
	DateWindowStart  time.Time
	DateWindowEnd    time.Time
}

// DefaultSettings describes the house setup: a 6-seat room, 15-minute slots
// from 18:00, a 40-slot day (closing at 28:00) and 3-hour reservations.
func DefaultSettings() Settings {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return Settings{
		MaxCapacity:      6,
		SlotDurationMins: 15,
		ReservationHours: 3,
		TotalSlots:       40,
		OpenHour:         18,
		DateWindowStart:  today,
		DateWindowEnd:    today.AddDate(0, 2, 0),
	}
}

type BusinessHours struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	DayOfWeek int       `json:"day_of_week" gorm:"uniqueIndex"`
	OpenTime  string    `json:"open_time"`
	CloseTime string    `json:"close_time"`
	IsClosed  bool      `json:"is_closed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BusinessHours) TableName() string { return "business_hours" }
