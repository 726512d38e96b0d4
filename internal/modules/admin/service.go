package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablebook/internal/cache"
	"tablebook/internal/capacity"
	"tablebook/internal/domain"
	"tablebook/internal/live"
	"tablebook/internal/notify"
	"tablebook/internal/slot"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the administrative surface over the reservation book: full-day
// listings, summaries and forced status changes. Token issuance and staff
// accounts live outside this service.
type Service struct {
	store     ReservationStore
	notifs    notify.Sender
	snapshots *cache.Snapshots
	events    EventBroadcaster
	settings  domain.Settings
	grid      slot.Config
	logger    *zap.Logger
}

func NewService(
	store ReservationStore,
	notifs notify.Sender,
	snapshots *cache.Snapshots,
	events EventBroadcaster,
	settings domain.Settings,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:     store,
		notifs:    notifs,
		snapshots: snapshots,
		events:    events,
		settings:  settings,
		grid:      slot.FromSettings(settings),
		logger:    logger,
	}
}

// ListForDate returns every reservation of a day, any status, ordered by
// start slot. No phone precondition here: the admin token gates access.
func (s *Service) ListForDate(ctx context.Context, dateStr string) ([]domain.Reservation, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, dateStr)
	}
	return s.store.ListForDate(ctx, date)
}

// Summary aggregates a day's bookings: counts per status, confirmed covers
// and the busiest slot.
func (s *Service) Summary(ctx context.Context, dateStr string) (*DaySummary, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, dateStr)
	}

	reservations, err := s.store.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := &DaySummary{
		Date:     date.Format("2006-01-02"),
		Total:    len(reservations),
		ByStatus: make(map[string]int),
	}
	for _, r := range reservations {
		summary.ByStatus[string(r.Status)]++
		if r.Status.CountsTowardCapacity() {
			summary.Covers += r.PartySize
		}
	}

	for sl := 0; sl < s.settings.TotalSlots; sl++ {
		used := capacity.Used(s.grid, sl, reservations)
		if used == 0 {
			continue
		}
		if summary.Peak == nil || used > summary.Peak.SeatsUsed {
			summary.Peak = &PeakSlot{
				Slot:        sl,
				Time:        s.grid.StartLabel(sl),
				SeatsUsed:   used,
				MaxCapacity: s.settings.MaxCapacity,
			}
		}
	}

	return summary, nil
}

// ForceCancel moves a confirmed reservation to cancelled or no_show. Either
// way the row stops counting toward capacity; the seats free up immediately.
func (s *Service) ForceCancel(ctx context.Context, id string, req ForceCancelRequest) (*domain.Reservation, error) {
	status := domain.ReservationStatus(req.Status)
	if status == "" {
		status = domain.ReservationCancelled
	}
	if status != domain.ReservationCancelled && status != domain.ReservationNoShow {
		return nil, fmt.Errorf("%w: status must be cancelled or no_show", ErrValidation)
	}

	return s.transition(ctx, id, status, true)
}

// MarkCompleted closes out a seated reservation after service.
func (s *Service) MarkCompleted(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.ReservationCompleted, false)
}

func (s *Service) transition(ctx context.Context, id string, status domain.ReservationStatus, notifyCustomer bool) (*domain.Reservation, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// confirmed is the only non-terminal status
	if res.Status != domain.ReservationConfirmed {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	res.Status = status

	s.snapshots.Invalidate(ctx, res.Date.Format("2006-01-02"))
	if s.events != nil {
		s.events.Broadcast(live.EventReservationCancelled, res)
	}

	if notifyCustomer && res.Phone != "" {
		if err := s.notifs.ReservationCancelled(ctx, res, s.grid.StartLabel(res.TimeSlot)); err != nil {
			s.logger.Warn("cancellation sms dispatch failed",
				zap.String("reservation_id", res.ID), zap.Error(err))
		}
	}

	return res, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
