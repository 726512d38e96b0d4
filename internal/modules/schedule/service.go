package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablebook/internal/domain"
)

var ErrValidation = errors.New("validation error")

type BusinessHoursStore interface {
	List(ctx context.Context) ([]domain.BusinessHours, error)
	Upsert(ctx context.Context, h *domain.BusinessHours) error
}

// Service exposes the weekly opening hours. These drive display and staff
// edits only; the capacity engine works purely on the slot grid.
type Service struct {
	store BusinessHoursStore
}

func NewService(store BusinessHoursStore) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]domain.BusinessHours, error) {
	return s.store.List(ctx)
}

func (s *Service) Update(ctx context.Context, req UpdateBusinessHoursRequest) (*domain.BusinessHours, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: day_of_week must be 0..6", ErrValidation)
	}
	if !req.IsClosed {
		for _, v := range []string{req.OpenTime, req.CloseTime} {
			if _, err := time.Parse("15:04", v); err != nil {
				return nil, fmt.Errorf("%w: times must be HH:MM", ErrValidation)
			}
		}
	}

	h := &domain.BusinessHours{
		DayOfWeek: req.DayOfWeek,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		IsClosed:  req.IsClosed,
	}
	if err := s.store.Upsert(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}
