package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	pkgerrors "github.com/wompwomp13/elderease-care-connect-sub000/pkg/errors"
)

// ServiceRequestRepository is the service_requests data-access interface.
type ServiceRequestRepository interface {
	Create(ctx context.Context, req *model.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*model.ServiceRequest, error)
	// GetByIDForUpdate locks the request row for the enclosing transaction.
	// Only meaningful inside Repository.Transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*model.ServiceRequest, error)
	ListByGuardian(ctx context.Context, guardianID, status string, offset, limit int) ([]model.ServiceRequest, int64, error)
	ListPending(ctx context.Context, offset, limit int) ([]model.ServiceRequest, int64, error)
	Update(ctx context.Context, req *model.ServiceRequest) error
}

type serviceRequestRepo struct {
	db *gorm.DB
}

// NewServiceRequestRepo creates the GORM-backed request repository.
func NewServiceRequestRepo(db *gorm.DB) ServiceRequestRepository {
	return &serviceRequestRepo{db: db}
}

func (r *serviceRequestRepo) Create(ctx context.Context, req *model.ServiceRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *serviceRequestRepo) GetByID(ctx context.Context, id string) (*model.ServiceRequest, error) {
	var req model.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *serviceRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ServiceRequest, error) {
	var req model.ServiceRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *serviceRequestRepo) ListByGuardian(ctx context.Context, guardianID, status string, offset, limit int) ([]model.ServiceRequest, int64, error) {
	var reqs []model.ServiceRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("guardian_id = ?", guardianID)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, total, err
}

func (r *serviceRequestRepo) ListPending(ctx context.Context, offset, limit int) ([]model.ServiceRequest, int64, error) {
	var reqs []model.ServiceRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("status = ?", model.RequestPending)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("requested_date ASC, start_time ASC").
		Find(&reqs).Error
	return reqs, total, err
}

func (r *serviceRequestRepo) Update(ctx context.Context, req *model.ServiceRequest) error {
	oldVersion := req.Version
	result := r.db.WithContext(ctx).
		Model(req).
		Where("request_id = ? AND version = ?", req.RequestID, oldVersion).
		Updates(map[string]interface{}{
			"status":     req.Status,
			"notes":      req.Notes,
			"updated_by": req.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version = oldVersion + 1
	return nil
}
