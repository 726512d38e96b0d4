package reservation

import "tablebook/internal/domain"

type CreateReservationRequest struct {
	Date      string `json:"date" binding:"required" validate:"required"`
	TimeSlot  int    `json:"time_slot"`
	PartySize int    `json:"party_size"`
	Name      string `json:"name" binding:"required" validate:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Notes     string `json:"notes"`
}

type ListReservationsRequest struct {
	Phone  string
	Date   string
	Status string
}

// CreateResult carries the persisted reservation plus the outcome of the
// post-commit notification attempt.
type CreateResult struct {
	Reservation *domain.Reservation
	Notified    bool
}
