package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	pkgerrors "github.com/wompwomp13/elderease-care-connect-sub000/pkg/errors"
)

// AssignmentRepository is the assignments data-access interface.
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	GetByRequest(ctx context.Context, requestID string) (*model.Assignment, error)
	ListByVolunteer(ctx context.Context, volunteerID string, offset, limit int) ([]model.Assignment, int64, error)
	ListByGuardian(ctx context.Context, guardianID string, offset, limit int) ([]model.Assignment, int64, error)
	// ListByVolunteerOnDay returns the volunteer's assignments on one
	// calendar day, for the conflict check inside the accept transaction.
	ListByVolunteerOnDay(ctx context.Context, volunteerID string, day int64) ([]model.Assignment, error)
	// CountCompletedConfirmed counts the assignments feeding the
	// volunteer's performance aggregate.
	CountCompletedConfirmed(ctx context.Context, volunteerID string) (int64, error)
	ListBetween(ctx context.Context, fromDay, toDay int64) ([]model.Assignment, error)
	Update(ctx context.Context, a *model.Assignment) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates the GORM-backed assignment repository.
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Volunteer").
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) GetByRequest(ctx context.Context, requestID string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Volunteer").
		Where("request_id = ?", requestID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) ListByVolunteer(ctx context.Context, volunteerID string, offset, limit int) ([]model.Assignment, int64, error) {
	var list []model.Assignment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Where("volunteer_id = ?", volunteerID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("scheduled_date DESC, start_time DESC").
		Find(&list).Error
	return list, total, err
}

func (r *assignmentRepo) ListByGuardian(ctx context.Context, guardianID string, offset, limit int) ([]model.Assignment, int64, error) {
	var list []model.Assignment
	var total int64

	sub := r.db.Model(&model.ServiceRequest{}).
		Select("request_id").
		Where("guardian_id = ?", guardianID)

	db := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Preload("Volunteer").
		Where("request_id IN (?)", sub)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("scheduled_date DESC, start_time DESC").
		Find(&list).Error
	return list, total, err
}

func (r *assignmentRepo) ListByVolunteerOnDay(ctx context.Context, volunteerID string, day int64) ([]model.Assignment, error) {
	var list []model.Assignment
	err := r.db.WithContext(ctx).
		Where("volunteer_id = ? AND scheduled_date = ?", volunteerID, day).
		Find(&list).Error
	return list, err
}

func (r *assignmentRepo) CountCompletedConfirmed(ctx context.Context, volunteerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Where("volunteer_id = ? AND status = ? AND guardian_confirmed", volunteerID, model.AssignmentCompleted).
		Count(&n).Error
	return n, err
}

func (r *assignmentRepo) ListBetween(ctx context.Context, fromDay, toDay int64) ([]model.Assignment, error) {
	var list []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Volunteer").
		Where("scheduled_date >= ? AND scheduled_date <= ?", fromDay, toDay).
		Order("scheduled_date ASC, start_time ASC").
		Find(&list).Error
	return list, err
}

func (r *assignmentRepo) Update(ctx context.Context, a *model.Assignment) error {
	oldVersion := a.Version
	result := r.db.WithContext(ctx).
		Model(a).
		Where("assignment_id = ? AND version = ?", a.AssignmentID, oldVersion).
		Updates(map[string]interface{}{
			"status":             a.Status,
			"guardian_confirmed": a.GuardianConfirmed,
			"completed_at":       a.CompletedAt,
			"updated_by":         a.UpdatedBy,
			"version":            oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	a.Version = oldVersion + 1
	return nil
}
