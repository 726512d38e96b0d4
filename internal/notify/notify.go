package notify

import (
	"context"

	"tablebook/internal/domain"
)

const (
	KindConfirmation = "reservation.confirmed"
	KindCancellation = "reservation.cancelled"
)

// Message is the payload handed to the SMS delivery worker. Composition of
// the actual SMS text happens there, not in the booking engine.
type Message struct {
	Kind          string `json:"kind"`
	ReservationID string `json:"reservation_id"`
	Phone         string `json:"phone"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"party_size"`
}

// Sender dispatches reservation SMS notifications. Calls are best-effort:
// the lifecycle service never fails a committed reservation change over a
// notification error.
type Sender interface {
	ReservationConfirmed(ctx context.Context, r *domain.Reservation, timeLabel string) error
	ReservationCancelled(ctx context.Context, r *domain.Reservation, timeLabel string) error
}

func messageFor(kind string, r *domain.Reservation, timeLabel string) Message {
	return Message{
		Kind:          kind,
		ReservationID: r.ID,
		Phone:         r.Phone,
		Name:          r.Name,
		Date:          r.Date.Format("2006-01-02"),
		Time:          timeLabel,
		PartySize:     r.PartySize,
	}
}
