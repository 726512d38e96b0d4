package availability

// SlotAvailability describes one bookable start slot. Time keeps the raw
// reservation-day clock (post-midnight slots read "25:00"); ClockTime is the
// same instant wrapped to a customer-facing 24h clock.
type SlotAvailability struct {
	Slot           int    `json:"time_slot"`
	Time           string `json:"time"`
	ClockTime      string `json:"clock_time"`
	AvailableSeats int    `json:"available_seats"`
	MaxCapacity    int    `json:"max_capacity"`
}

// DayAvailability lists the bookable start slots of one date, ascending.
// Fully booked slots are omitted, not reported with zero seats.
type DayAvailability struct {
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}

type RangeAvailability struct {
	StartDate string                     `json:"start_date"`
	EndDate   string                     `json:"end_date"`
	Days      map[string]DayAvailability `json:"days"`
}
