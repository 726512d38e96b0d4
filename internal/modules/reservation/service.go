package reservation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tablebook/internal/cache"
	"tablebook/internal/capacity"
	"tablebook/internal/domain"
	"tablebook/internal/live"
	"tablebook/internal/notify"
	"tablebook/internal/repository"
	"tablebook/internal/slot"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,18}[0-9]$`)

// Service orchestrates the reservation lifecycle: validation, the capacity
// check inside the store transaction, and post-commit side effects.
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

// Create validates the request, then commits the reservation inside one store
// transaction that re-reads the day's confirmed rows and runs the capacity
// check. A *capacity.Conflict return means nothing was written. Notification
// and cache invalidation happen only after the commit.
func (s *Service) Create(ctx context.Context, req CreateReservationRequest) (*CreateResult, error) {
	date, err := s.validateCreate(&req)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		Date:      date,
		TimeSlot:  req.TimeSlot,
		PartySize: req.PartySize,
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Notes:     req.Notes,
		Status:    domain.ReservationConfirmed,
	}

	occupied := s.grid.Occupied(req.TimeSlot)
	err = s.store.CreateWithCheck(ctx, res, func(existing []domain.Reservation) error {
		if c := capacity.Check(s.grid, occupied, req.PartySize, s.settings.MaxCapacity, existing); c != nil {
			return c
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			// The legacy unique index fired before the capacity check could
			// report seat counts; surface it as an ordinary full slot.
			return nil, &capacity.Conflict{
				Slot:      req.TimeSlot,
				TimeLabel: s.grid.StartLabel(req.TimeSlot),
				Available: 0,
			}
		}
		return nil, err
	}

	dateKey := res.Date.Format("2006-01-02")
	s.snapshots.Invalidate(ctx, dateKey)
	if s.events != nil {
		s.events.Broadcast(live.EventReservationCreated, res)
	}

	return &CreateResult{Reservation: res, Notified: s.sendConfirmation(ctx, res)}, nil
}

// Cancel deletes a reservation by id. The cancellation SMS is best-effort
// and never changes the outcome once the delete has committed.
func (s *Service) Cancel(ctx context.Context, id string) error {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	dateKey := res.Date.Format("2006-01-02")
	s.snapshots.Invalidate(ctx, dateKey)
	if s.events != nil {
		s.events.Broadcast(live.EventReservationCancelled, res)
	}

	if res.Phone != "" {
		if err := s.notifs.ReservationCancelled(ctx, res, s.grid.StartLabel(res.TimeSlot)); err != nil {
			s.logger.Warn("cancellation sms dispatch failed",
				zap.String("reservation_id", res.ID), zap.Error(err))
		}
	}
	return nil
}

// List returns a customer's reservations. The phone filter is mandatory: it
// is the authorization boundary for customer lookups.
func (s *Service) List(ctx context.Context, req ListReservationsRequest) ([]domain.Reservation, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	var date *time.Time
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, req.Date)
		}
		date = &d
	}

	var status domain.ReservationStatus
	if req.Status != "" {
		status = domain.ReservationStatus(req.Status)
		switch status {
		case domain.ReservationConfirmed, domain.ReservationCancelled,
			domain.ReservationNoShow, domain.ReservationCompleted:
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
		}
	}

	return s.store.ListByPhone(ctx, phone, date, status)
}

func (s *Service) validateCreate(req *CreateReservationRequest) (time.Time, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, req.Date)
	}
	if date.Before(s.settings.DateWindowStart) || date.After(s.settings.DateWindowEnd) {
		return time.Time{}, fmt.Errorf("%w: date %s is outside the booking window", ErrValidation, req.Date)
	}

	if req.TimeSlot < 0 || req.TimeSlot >= s.settings.TotalSlots {
		return time.Time{}, fmt.Errorf("%w: time slot must be between 0 and %d", ErrValidation, s.settings.TotalSlots-1)
	}

	if req.PartySize < 1 || req.PartySize > s.settings.MaxCapacity {
		return time.Time{}, fmt.Errorf("%w: party size must be between 1 and %d", ErrValidation, s.settings.MaxCapacity)
	}

	if strings.TrimSpace(req.Name) == "" {
		return time.Time{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if p := strings.TrimSpace(req.Phone); p != "" && !phonePattern.MatchString(p) {
		return time.Time{}, fmt.Errorf("%w: malformed phone number", ErrValidation)
	}

	return date, nil
}

func (s *Service) sendConfirmation(ctx context.Context, res *domain.Reservation) bool {
	if res.Phone == "" {
		return false
	}
	if err := s.notifs.ReservationConfirmed(ctx, res, s.grid.StartLabel(res.TimeSlot)); err != nil {
		s.logger.Warn("confirmation sms dispatch failed",
			zap.String("reservation_id", res.ID), zap.Error(err))
		return false
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
