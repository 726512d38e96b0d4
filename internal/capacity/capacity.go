package capacity

import (
	"fmt"

	"tablebook/internal/domain"
	"tablebook/internal/slot"
)

// Conflict reports the first slot at which a candidate reservation would push
// the seat total past capacity, together with the seats still available there.
type Conflict struct {
	Slot      int
	TimeLabel string
	Available int
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("time slot %s is fully booked, only %d seats available", c.TimeLabel, c.Available)
}

// Used sums the party sizes of confirmed reservations occupying slot s. Each
// existing reservation spans slots under the same late-window rule as new ones.
func Used(cfg slot.Config, s int, existing []domain.Reservation) int {
	total := 0
	for _, r := range existing {
		if !r.Status.CountsTowardCapacity() {
			continue
		}
		for _, o := range cfg.Occupied(r.TimeSlot) {
			if o == s {
				total += r.PartySize
				break
			}
		}
	}
	return total
}

// Check verifies that partySize seats remain at every occupied slot. Slots
// are checked in ascending order and the first violation is reported; the
// ordering is visible in user-facing error messages.
func Check(cfg slot.Config, occupied []int, partySize, maxCapacity int, existing []domain.Reservation) *Conflict {
	for _, s := range occupied {
		used := Used(cfg, s, existing)
		if used+partySize > maxCapacity {
			return &Conflict{
				Slot:      s,
				TimeLabel: cfg.StartLabel(s),
				Available: maxCapacity - used,
			}
		}
	}
	return nil
}
