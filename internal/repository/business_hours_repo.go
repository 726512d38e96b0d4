package repository

import (
	"context"

	"tablebook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BusinessHoursRepository struct {
	db *gorm.DB
}

func NewBusinessHoursRepository(db *gorm.DB) *BusinessHoursRepository {
	return &BusinessHoursRepository{db: db}
}

func (r *BusinessHoursRepository) List(ctx context.Context) ([]domain.BusinessHours, error) {
	var out []domain.BusinessHours
	err := r.db.WithContext(ctx).Order("day_of_week ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BusinessHoursRepository) Upsert(ctx context.Context, h *domain.BusinessHours) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day_of_week"}},
		DoUpdates: clause.AssignmentColumns([]string{"open_time", "close_time", "is_closed", "updated_at"}),
	}).Create(h).Error
}
