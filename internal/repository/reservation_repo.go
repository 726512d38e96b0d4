package repository

import (
	"context"
	"errors"
	"time"

	"tablebook/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSlotTaken is returned when a legacy unique index on (date, time_slot)
// rejects an insert. The capacity check inside the same transaction is the
// real invariant; the index is a historical artifact some deployments still
// carry.
var ErrSlotTaken = errors.New("time slot already taken")

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) DB() *gorm.DB { return r.db }

// CreateWithCheck runs the read-check-insert sequence for one reservation in
// a single transaction. check receives the committed confirmed reservations
// for the target date; returning an error aborts the transaction with no
// partial write.
//
// Row locks alone cannot serialize two inserts into an empty day, so on
// postgres the transaction takes a day-scoped advisory lock before reading.
// SQLite serializes through BEGIN IMMEDIATE (see database.Connect).
func (r *ReservationRepository) CreateWithCheck(ctx context.Context, res *domain.Reservation, check func(existing []domain.Reservation) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		onPostgres := tx.Dialector.Name() == "postgres"

		if onPostgres {
			key := res.Date.Format("2006-01-02")
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
				return err
			}
		}

		q := tx.Where("date = ? AND status = ?", res.Date, domain.ReservationConfirmed).
			Order("time_slot ASC")
		if onPostgres {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing []domain.Reservation
		if err := q.Find(&existing).Error; err != nil {
			return err
		}

		if err := check(existing); err != nil {
			return err
		}

		if err := tx.Create(res).Error; err != nil {
			return mapLegacyUniqueIndex(err)
		}
		return nil
	})
}

// ConfirmedForDate returns the committed confirmed reservations for one day,
// ordered by start slot. Every availability read goes through here; there is
// deliberately no caching layer in front of it.
func (r *ReservationRepository) ConfirmedForDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("date = ? AND status = ?", date, domain.ReservationConfirmed).
		Order("time_slot ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&res)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &res, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Reservation{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByPhone returns a customer's reservations, optionally narrowed by date
// and status, ordered by (date, time_slot).
func (r *ReservationRepository) ListByPhone(ctx context.Context, phone string, date *time.Time, status domain.ReservationStatus) ([]domain.Reservation, error) {
	q := r.db.WithContext(ctx).Where("phone = ?", phone)
	if date != nil {
		q = q.Where("date = ?", *date)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.Reservation
	if err := q.Order("date ASC, time_slot ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListForDate returns every reservation of a day regardless of status, for
// the admin surface.
func (r *ReservationRepository) ListForDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time_slot ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func mapLegacyUniqueIndex(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSlotTaken
	}
	return err
}
