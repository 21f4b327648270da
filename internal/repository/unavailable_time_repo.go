package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
)

// UnavailableTimeRepository is the availability-blocks data-access interface.
type UnavailableTimeRepository interface {
	Create(ctx context.Context, ut *model.UnavailableTime) error
	BatchCreate(ctx context.Context, uts []model.UnavailableTime) error
	ListByVolunteerDay(ctx context.Context, volunteerID string, day int64) ([]model.UnavailableTime, error)
	ListByVolunteer(ctx context.Context, volunteerID string, offset, limit int) ([]model.UnavailableTime, int64, error)
	Delete(ctx context.Context, id, volunteerID string) error
}

type unavailableTimeRepo struct {
	db *gorm.DB
}

// NewUnavailableTimeRepo creates the GORM-backed availability repository.
func NewUnavailableTimeRepo(db *gorm.DB) UnavailableTimeRepository {
	return &unavailableTimeRepo{db: db}
}

func (r *unavailableTimeRepo) Create(ctx context.Context, ut *model.UnavailableTime) error {
	return r.db.WithContext(ctx).Create(ut).Error
}

func (r *unavailableTimeRepo) BatchCreate(ctx context.Context, uts []model.UnavailableTime) error {
	if len(uts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(uts, 100).Error
}

func (r *unavailableTimeRepo) ListByVolunteerDay(ctx context.Context, volunteerID string, day int64) ([]model.UnavailableTime, error) {
	var list []model.UnavailableTime
	err := r.db.WithContext(ctx).
		Where("volunteer_id = ? AND day = ?", volunteerID, day).
		Find(&list).Error
	return list, err
}

func (r *unavailableTimeRepo) ListByVolunteer(ctx context.Context, volunteerID string, offset, limit int) ([]model.UnavailableTime, int64, error) {
	var list []model.UnavailableTime
	var total int64

	db := r.db.WithContext(ctx).Model(&model.UnavailableTime{}).
		Where("volunteer_id = ?", volunteerID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("day ASC, start_time ASC").
		Find(&list).Error
	return list, total, err
}

func (r *unavailableTimeRepo) Delete(ctx context.Context, id, volunteerID string) error {
	result := r.db.WithContext(ctx).
		Where("unavailable_id = ? AND volunteer_id = ?", id, volunteerID).
		Delete(&model.UnavailableTime{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
