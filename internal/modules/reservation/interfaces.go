package reservation

import (
	"context"
	"time"

	"tablebook/internal/domain"
)

// ReservationStore is the persistence collaborator. CreateWithCheck must run
// the read-check-insert sequence atomically: check sees the committed
// confirmed reservations for the target date and a non-nil return aborts the
// insert.
type ReservationStore interface {
	CreateWithCheck(ctx context.Context, res *domain.Reservation, check func(existing []domain.Reservation) error) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	ListByPhone(ctx context.Context, phone string, date *time.Time, status domain.ReservationStatus) ([]domain.Reservation, error)
}

// EventBroadcaster pushes reservation events to live admin dashboards.
type EventBroadcaster interface {
	Broadcast(eventType string, data any)
}
