package admin

import (
	"context"
	"time"

	"tablebook/internal/domain"
)

type ReservationStore interface {
	ListForDate(ctx context.Context, date time.Time) ([]domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
}

type EventBroadcaster interface {
	Broadcast(eventType string, data any)
}
