package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/pricing"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/refcode"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/repository"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/schedule"
)

var (
	ErrRequestNotFound   = errors.New("service request not found")
	ErrInvalidTimeWindow = errors.New("end time must be after start time")
	ErrMalformedClock    = errors.New("times must be in HH:MM format")
	ErrNotRequestOwner   = errors.New("request belongs to another guardian")
	ErrRequestNotPending = errors.New("only pending requests can be cancelled")
)

// RequestService handles guardian service requests.
type RequestService interface {
	Create(ctx context.Context, guardianID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error)
	Get(ctx context.Context, id string) (*dto.RequestResponse, error)
	// Cancel sets a pending request to cancelled. Guardian only.
	Cancel(ctx context.Context, guardianID, requestID string) error
	ListByGuardian(ctx context.Context, guardianID string, req *dto.RequestListRequest) ([]dto.RequestResponse, int64, error)
	// ListPending is the open-request feed volunteers browse.
	ListPending(ctx context.Context, req *dto.RequestListRequest) ([]dto.RequestResponse, int64, error)
}

type requestService struct {
	repo   *repository.Repository
	rates  pricing.RateTable
	logger *zap.Logger
}

// NewRequestService creates a RequestService instance.
func NewRequestService(repo *repository.Repository, rates pricing.RateTable, logger *zap.Logger) RequestService {
	return &requestService{repo: repo, rates: rates, logger: logger}
}

func (s *requestService) Create(ctx context.Context, guardianID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	// 1. clocks must parse and form a non-empty window
	start := schedule.ParseClock(req.StartTime)
	end := schedule.ParseClock(req.EndTime)
	if start == schedule.NoTime || end == schedule.NoTime {
		return nil, ErrMalformedClock
	}
	if end <= start {
		return nil, ErrInvalidTimeWindow
	}

	// 2. every requested service must exist in the rate table
	for _, svc := range req.Services {
		if _, ok := s.rates.Rates[svc]; !ok {
			return nil, &pricing.ErrUnknownService{Service: svc}
		}
	}

	// 3. pre-generate the row ID so the confirmation number can be
	// derived from it
	id := uuid.New().String()
	request := &model.ServiceRequest{
		RequestID:            id,
		GuardianID:           guardianID,
		Services:             model.StringList(req.Services),
		ServiceHours:         model.HoursMap(req.ServiceHours),
		RequestedDate:        req.RequestedDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Address:              req.Address,
		Notes:                req.Notes,
		PreferredVolunteerID: req.PreferredVolunteerID,
		ConfirmationCode:     refcode.FromID(id),
		Status:               model.RequestPending,
	}
	request.CreatedBy = &guardianID

	if err := s.repo.Request.Create(ctx, request); err != nil {
		s.logger.Error("creating request failed", zap.Error(err))
		return nil, err
	}

	resp := toRequestResponse(request)
	return &resp, nil
}

func (s *requestService) Get(ctx context.Context, id string) (*dto.RequestResponse, error) {
	request, err := s.repo.Request.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	resp := toRequestResponse(request)
	return &resp, nil
}

func (s *requestService) Cancel(ctx context.Context, guardianID, requestID string) error {
	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if request.GuardianID != guardianID {
		return ErrNotRequestOwner
	}
	if request.Status != model.RequestPending {
		return ErrRequestNotPending
	}

	request.Status = model.RequestCancelled
	request.UpdatedBy = &guardianID
	return s.repo.Request.Update(ctx, request)
}

func (s *requestService) ListByGuardian(ctx context.Context, guardianID string, req *dto.RequestListRequest) ([]dto.RequestResponse, int64, error) {
	list, total, err := s.repo.Request.ListByGuardian(ctx, guardianID, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return toRequestResponses(list), total, nil
}

func (s *requestService) ListPending(ctx context.Context, req *dto.RequestListRequest) ([]dto.RequestResponse, int64, error) {
	list, total, err := s.repo.Request.ListPending(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return toRequestResponses(list), total, nil
}

func toRequestResponse(r *model.ServiceRequest) dto.RequestResponse {
	return dto.RequestResponse{
		ID:                   r.RequestID,
		GuardianID:           r.GuardianID,
		Services:             []string(r.Services),
		ServiceHours:         map[string]float64(r.ServiceHours),
		RequestedDate:        r.RequestedDate,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Address:              r.Address,
		Notes:                r.Notes,
		PreferredVolunteerID: r.PreferredVolunteerID,
		ConfirmationCode:     r.ConfirmationCode,
		Status:               r.Status,
		CreatedAt:            r.CreatedAt.Format(time.RFC3339),
	}
}

func toRequestResponses(list []model.ServiceRequest) []dto.RequestResponse {
	out := make([]dto.RequestResponse, 0, len(list))
	for i := range list {
		out = append(out, toRequestResponse(&list[i]))
	}
	return out
}
