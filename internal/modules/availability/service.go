package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tablebook/internal/cache"
	"tablebook/internal/capacity"
	"tablebook/internal/domain"
	"tablebook/internal/slot"

	"go.uber.org/zap"
)

var ErrValidation = errors.New("validation error")

// maxRangeDays bounds batch requests; the booking window itself is two
// months in the default configuration.
const maxRangeDays = 92

// AvailabilityStore supplies the committed confirmed reservations for a date.
type AvailabilityStore interface {
	ConfirmedForDate(ctx context.Context, date time.Time) ([]domain.Reservation, error)
}

type Service struct {
	store     AvailabilityStore
	snapshots *cache.Snapshots
	settings  domain.Settings
	grid      slot.Config
	logger    *zap.Logger
}

func NewService(store AvailabilityStore, snapshots *cache.Snapshots, settings domain.Settings, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		snapshots: snapshots,
		settings:  settings,
		grid:      slot.FromSettings(settings),
		logger:    logger,
	}
}

// ForDate computes the bookable start slots of one date. A slot is offered
// only if a reservation starting there could be seated across its entire
// duration, and available seats are the minimum over that span.
func (s *Service) ForDate(ctx context.Context, dateStr string) (*DayAvailability, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, dateStr)
	}

	key := date.Format("2006-01-02")
	if body, ok := s.snapshots.Get(ctx, key); ok {
		var day DayAvailability
		if err := json.Unmarshal(body, &day); err == nil {
			return &day, nil
		}
		s.snapshots.Invalidate(ctx, key)
	}

	existing, err := s.store.ConfirmedForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	day := &DayAvailability{Date: key, Slots: s.computeSlots(existing)}

	if body, err := json.Marshal(day); err == nil {
		s.snapshots.Set(ctx, key, body)
	}
	return day, nil
}

// ForRange batches ForDate over an inclusive date range. Results are exactly
// the per-date computation; dates never interact.
func (s *Service) ForRange(ctx context.Context, startStr, endStr string) (*RangeAvailability, error) {
	start, err := parseDate(startStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", ErrValidation, startStr)
	}
	end, err := parseDate(endStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", ErrValidation, endStr)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start date must not be after end date", ErrValidation)
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: date range must not exceed %d days", ErrValidation, maxRangeDays)
	}

	out := &RangeAvailability{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Days:      make(map[string]DayAvailability),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		day, err := s.ForDate(ctx, key)
		if err != nil {
			return nil, err
		}
		out.Days[key] = *day
	}
	return out, nil
}

func (s *Service) computeSlots(existing []domain.Reservation) []SlotAvailability {
	out := make([]SlotAvailability, 0, s.settings.TotalSlots)
	for start := 0; start < s.settings.TotalSlots; start++ {
		maxUsed := 0
		for _, o := range s.grid.Occupied(start) {
			if u := capacity.Used(s.grid, o, existing); u > maxUsed {
				maxUsed = u
			}
		}

		available := s.settings.MaxCapacity - maxUsed
		if available <= 0 {
			continue
		}

		raw, _ := s.grid.TimeRange(start)
		clock, _ := s.grid.TimeRangeWrapped(start)
		out = append(out, SlotAvailability{
			Slot:           start,
			Time:           raw,
			ClockTime:      clock,
			AvailableSeats: available,
			MaxCapacity:    s.settings.MaxCapacity,
		})
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
