package slot

import (
	"fmt"

	"tablebook/internal/domain"
)

// Config holds the slot-grid parameters of a bookable day. Slot 0 starts at
// OpenHour; hours past midnight keep counting (25:00 is 1 AM of the same
// reservation day).
type Config struct {
	OpenHour         int
	DurationMins     int
	ReservationHours int
	TotalSlots       int
}

func FromSettings(s domain.Settings) Config {
	return Config{
		OpenHour:         s.OpenHour,
		DurationMins:     s.SlotDurationMins,
		ReservationHours: s.ReservationHours,
		TotalSlots:       s.TotalSlots,
	}
}

// ReservationSlots is how many slots one reservation nominally occupies.
func (c Config) ReservationSlots() int {
	return c.ReservationHours * 60 / c.DurationMins
}

// LateCutoff is the last start slot whose full nominal duration still fits in
// the day. Reservations starting after it run until closing instead.
func (c Config) LateCutoff() int {
	return c.TotalSlots - c.ReservationSlots() - 1
}

// Occupied returns the ascending slot indices a reservation starting at start
// spans. Starts past the late cutoff always extend to the end of the day;
// that is house policy for late bookings, not clipping.
func (c Config) Occupied(start int) []int {
	if start < 0 || start >= c.TotalSlots {
		return nil
	}

	end := start + c.ReservationSlots() - 1
	if start > c.LateCutoff() || end > c.TotalSlots-1 {
		end = c.TotalSlots - 1
	}

	out := make([]int, 0, end-start+1)
	for s := start; s <= end; s++ {
		out = append(out, s)
	}
	return out
}

// TimeRange maps a slot index to raw start/end wall-clock labels. Hours may
// exceed 24 ("25:00" is 1 AM belonging to the same reservation day).
func (c Config) TimeRange(s int) (string, string) {
	start := c.OpenHour*60 + s*c.DurationMins
	return rawLabel(start), rawLabel(start + c.DurationMins)
}

// TimeRangeWrapped is TimeRange with hours wrapped modulo 24, for surfaces
// that show customer-facing clock times.
func (c Config) TimeRangeWrapped(s int) (string, string) {
	start := c.OpenHour*60 + s*c.DurationMins
	return wrappedLabel(start), wrappedLabel(start + c.DurationMins)
}

// StartLabel is the raw start label of a slot.
func (c Config) StartLabel(s int) string {
	start, _ := c.TimeRange(s)
	return start
}

func rawLabel(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func wrappedLabel(minutes int) string {
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}
