package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
	ReservationCompleted ReservationStatus = "completed"
)

// CountsTowardCapacity reports whether a reservation in this status still
// occupies seats. Cancelled, no-show and completed rows free their seats.
func (s ReservationStatus) CountsTowardCapacity() bool {
	return s == ReservationConfirmed
}

type Reservation struct {
	ID        string            `json:"id" gorm:"primaryKey;size:36"`
	Date      time.Time         `json:"date" gorm:"index:idx_reservations_date_slot,priority:1"`
	TimeSlot  int               `json:"time_slot" gorm:"index:idx_reservations_date_slot,priority:2"`
	PartySize int               `json:"party_size"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone,omitempty" gorm:"index"`
	Email     string            `json:"email,omitempty"`
	Notes     string            `json:"notes,omitempty" gorm:"type:text"`
	Status    ReservationStatus `json:"status" gorm:"index;default:confirmed"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Reservation) TableName() string { return "reservations" }

func (r *Reservation) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
