package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/pricing"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/repository"
)

var ErrNotAVolunteer = errors.New("user is not a volunteer")

// VolunteerService exposes performance aggregates and admin moderation.
type VolunteerService interface {
	// Performance recomputes the aggregate on demand; never cached.
	Performance(ctx context.Context, volunteerID string) (*dto.PerformanceResponse, error)
	List(ctx context.Context, req *dto.VolunteerListRequest) ([]dto.UserResponse, int64, error)
	UpdateStatus(ctx context.Context, adminID, volunteerID string, req *dto.UpdateVolunteerStatusRequest) error
}

type volunteerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVolunteerService creates a VolunteerService instance.
func NewVolunteerService(repo *repository.Repository, logger *zap.Logger) VolunteerService {
	return &volunteerService{repo: repo, logger: logger}
}

func (s *volunteerService) Performance(ctx context.Context, volunteerID string) (*dto.PerformanceResponse, error) {
	user, err := s.repo.User.GetByID(ctx, volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != model.RoleVolunteer {
		return nil, ErrNotAVolunteer
	}

	completed, err := s.repo.Assignment.CountCompletedConfirmed(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	agg, err := s.repo.Rating.AggregateByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	tier := pricing.TierFor(int(completed), agg.Average)
	return &dto.PerformanceResponse{
		VolunteerID:    volunteerID,
		TasksCompleted: int(completed),
		AverageRating:  agg.Average,
		RatingCount:    int(agg.Count),
		Tier:           tier.Name,
		TierPercent:    tier.Percent,
	}, nil
}

func (s *volunteerService) List(ctx context.Context, req *dto.VolunteerListRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.ListVolunteers(ctx, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, total, nil
}

func (s *volunteerService) UpdateStatus(ctx context.Context, adminID, volunteerID string, req *dto.UpdateVolunteerStatusRequest) error {
	user, err := s.repo.User.GetByID(ctx, volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Role != model.RoleVolunteer {
		return ErrNotAVolunteer
	}

	status := req.Status
	user.VolunteerStatus = &status
	user.UpdatedBy = &adminID

	s.logger.Info("volunteer status updated",
		zap.String("volunteer_id", volunteerID),
		zap.String("status", status),
		zap.String("admin_id", adminID))
	return s.repo.User.Update(ctx, user)
}
