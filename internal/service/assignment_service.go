package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/pricing"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/repository"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/schedule"
	pkgerrors "github.com/wompwomp13/elderease-care-connect-sub000/pkg/errors"
)

var (
	ErrRequestAlreadyAssigned = errors.New("request already assigned")
	ErrRequestCancelled       = errors.New("request has been cancelled")
	ErrScheduleConflict       = errors.New("request conflicts with an existing assignment")
	ErrVolunteerUnavailable   = errors.New("request falls inside an unavailable window")
	ErrVolunteerNotApproved   = errors.New("volunteer account is not approved")
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrNotAssignee            = errors.New("assignment belongs to another volunteer")
	ErrNotAssignmentGuardian  = errors.New("assignment belongs to another guardian's request")
	ErrAssignmentNotAssigned  = errors.New("assignment is not in assigned state")
	ErrAssignmentNotCompleted = errors.New("assignment has not been completed")
	ErrAlreadyConfirmed       = errors.New("assignment already confirmed")
)

// AssignmentService handles the volunteer side of the request lifecycle.
type AssignmentService interface {
	// Accept atomically claims a pending request for a volunteer. The
	// receipt is computed and frozen here, on the server, from the
	// volunteer's live performance tier.
	Accept(ctx context.Context, volunteerID, requestID string) (*dto.AssignmentResponse, error)
	// Complete marks an assignment done. Assignee only.
	Complete(ctx context.Context, volunteerID, assignmentID string) error
	// Confirm records the guardian's confirmation and rating.
	Confirm(ctx context.Context, guardianID, assignmentID string, req *dto.ConfirmAssignmentRequest) error
	Get(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	ListByVolunteer(ctx context.Context, volunteerID string, page *dto.PaginationRequest) ([]dto.AssignmentResponse, int64, error)
	ListByGuardian(ctx context.Context, guardianID string, page *dto.PaginationRequest) ([]dto.AssignmentResponse, int64, error)
}

type assignmentService struct {
	repo   *repository.Repository
	rates  pricing.RateTable
	logger *zap.Logger
}

// NewAssignmentService creates an AssignmentService instance.
func NewAssignmentService(repo *repository.Repository, rates pricing.RateTable, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, rates: rates, logger: logger}
}

func (s *assignmentService) Accept(ctx context.Context, volunteerID, requestID string) (*dto.AssignmentResponse, error) {
	volunteer, err := s.repo.User.GetByID(ctx, volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !volunteer.IsApprovedVolunteer() {
		return nil, ErrVolunteerNotApproved
	}

	var assignment *model.Assignment

	txErr := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		// 1. lock the request row; losers of the race see it assigned
		request, err := tx.Request.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		switch request.Status {
		case model.RequestPending:
		case model.RequestCancelled:
			return ErrRequestCancelled
		default:
			return ErrRequestAlreadyAssigned
		}

		reqStart := schedule.ParseClock(request.StartTime)
		reqEnd := schedule.ParseClock(request.EndTime)
		if reqStart == schedule.NoTime || reqEnd == schedule.NoTime {
			return ErrMalformedClock
		}

		// 2. no overlap with the volunteer's assignments that day
		sameDay, err := tx.Assignment.ListByVolunteerOnDay(ctx, volunteerID, request.RequestedDate)
		if err != nil {
			return err
		}
		for i := range sameDay {
			otherStart := schedule.ParseClock(sameDay[i].StartTime)
			otherEnd := schedule.ParseClock(sameDay[i].EndTime)
			// an unreadable stored window blocks the day; it must not
			// pass through Overlaps as a false negative
			if otherStart == schedule.NoTime || otherEnd == schedule.NoTime {
				return ErrScheduleConflict
			}
			if schedule.Overlaps(reqStart, reqEnd, otherStart, otherEnd) {
				return ErrScheduleConflict
			}
		}

		// 3. no overlap with declared unavailable windows
		blocked, err := tx.Unavailable.ListByVolunteerDay(ctx, volunteerID, request.RequestedDate)
		if err != nil {
			return err
		}
		for i := range blocked {
			blockStart := schedule.ParseClock(blocked[i].StartTime)
			blockEnd := schedule.ParseClock(blocked[i].EndTime)
			if blockStart == schedule.NoTime || blockEnd == schedule.NoTime {
				return ErrVolunteerUnavailable
			}
			if schedule.Overlaps(reqStart, reqEnd, blockStart, blockEnd) {
				return ErrVolunteerUnavailable
			}
		}

		// 4. live performance tier → frozen receipt
		tier, err := s.currentTier(ctx, tx, volunteerID)
		if err != nil {
			return err
		}
		receipt, err := pricing.BuildReceipt(request.Services, request.ServiceHours, tier, s.rates)
		if err != nil {
			return err
		}

		assignment = &model.Assignment{
			RequestID:     request.RequestID,
			VolunteerID:   volunteerID,
			Services:      request.Services,
			ServiceHours:  request.ServiceHours,
			ScheduledDate: request.RequestedDate,
			StartTime:     request.StartTime,
			EndTime:       request.EndTime,
			Address:       request.Address,
			Notes:         request.Notes,
			Receipt:       receipt,
			Status:        model.AssignmentAssigned,
		}
		assignment.CreatedBy = &volunteerID
		if err := tx.Assignment.Create(ctx, assignment); err != nil {
			return err
		}

		request.Status = model.RequestAssigned
		request.UpdatedBy = &volunteerID
		return tx.Request.Update(ctx, request)
	})
	if txErr != nil {
		return nil, txErr
	}

	assignment.Volunteer = volunteer
	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

func (s *assignmentService) Complete(ctx context.Context, volunteerID, assignmentID string) error {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if assignment.VolunteerID != volunteerID {
		return ErrNotAssignee
	}
	if assignment.Status != model.AssignmentAssigned {
		return ErrAssignmentNotAssigned
	}

	now := time.Now()
	assignment.Status = model.AssignmentCompleted
	assignment.CompletedAt = &now
	assignment.UpdatedBy = &volunteerID
	return s.repo.Assignment.Update(ctx, assignment)
}

func (s *assignmentService) Confirm(ctx context.Context, guardianID, assignmentID string, req *dto.ConfirmAssignmentRequest) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		assignment, err := tx.Assignment.GetByID(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}

		request, err := tx.Request.GetByID(ctx, assignment.RequestID)
		if err != nil {
			return err
		}
		if request.GuardianID != guardianID {
			return ErrNotAssignmentGuardian
		}
		if assignment.Status != model.AssignmentCompleted {
			return ErrAssignmentNotCompleted
		}
		if assignment.GuardianConfirmed {
			return ErrAlreadyConfirmed
		}

		assignment.GuardianConfirmed = true
		assignment.UpdatedBy = &guardianID
		if err := tx.Assignment.Update(ctx, assignment); err != nil {
			// a concurrent confirm won the version race
			if errors.Is(err, pkgerrors.ErrOptimisticLock) {
				return ErrAlreadyConfirmed
			}
			return err
		}
		return tx.Rating.Create(ctx, &model.Rating{
			AssignmentID: assignment.AssignmentID,
			VolunteerID:  assignment.VolunteerID,
			GuardianID:   guardianID,
			Score:        req.Score,
			Comment:      req.Comment,
		})
	})
}

func (s *assignmentService) Get(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

func (s *assignmentService) ListByVolunteer(ctx context.Context, volunteerID string, page *dto.PaginationRequest) ([]dto.AssignmentResponse, int64, error) {
	list, total, err := s.repo.Assignment.ListByVolunteer(ctx, volunteerID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return toAssignmentResponses(list), total, nil
}

func (s *assignmentService) ListByGuardian(ctx context.Context, guardianID string, page *dto.PaginationRequest) ([]dto.AssignmentResponse, int64, error) {
	list, total, err := s.repo.Assignment.ListByGuardian(ctx, guardianID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return toAssignmentResponses(list), total, nil
}

// currentTier recomputes the volunteer's tier from their confirmed work.
// Never cached; acceptance always prices against the live aggregate.
func (s *assignmentService) currentTier(ctx context.Context, tx *repository.Repository, volunteerID string) (pricing.Tier, error) {
	completed, err := tx.Assignment.CountCompletedConfirmed(ctx, volunteerID)
	if err != nil {
		return pricing.Tier{}, err
	}
	agg, err := tx.Rating.AggregateByVolunteer(ctx, volunteerID)
	if err != nil {
		return pricing.Tier{}, err
	}
	return pricing.TierFor(int(completed), agg.Average), nil
}

func toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	lines := make([]dto.ReceiptLineResponse, 0, len(a.Receipt.Lines))
	for _, l := range a.Receipt.Lines {
		lines = append(lines, dto.ReceiptLineResponse{
			Service:      l.Service,
			BaseRate:     l.BaseRate,
			Hours:        l.Hours,
			AdjustedRate: l.AdjustedRate,
			Amount:       l.Amount,
		})
	}

	var volunteer *dto.VolunteerBrief
	if a.Volunteer != nil {
		volunteer = &dto.VolunteerBrief{
			ID:    a.Volunteer.UserID,
			Name:  a.Volunteer.Name,
			Email: a.Volunteer.Email,
			Phone: a.Volunteer.Phone,
		}
	}

	var completedAt *string
	if a.CompletedAt != nil {
		ts := a.CompletedAt.Format(time.RFC3339)
		completedAt = &ts
	}

	return dto.AssignmentResponse{
		ID:            a.AssignmentID,
		RequestID:     a.RequestID,
		Volunteer:     volunteer,
		Services:      []string(a.Services),
		ServiceHours:  map[string]float64(a.ServiceHours),
		ScheduledDate: a.ScheduledDate,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Address:       a.Address,
		Notes:         a.Notes,
		Receipt: dto.ReceiptResponse{
			Lines:       lines,
			Subtotal:    a.Receipt.Subtotal,
			Commission:  a.Receipt.Commission,
			Total:       a.Receipt.Total,
			Tier:        a.Receipt.Tier,
			TierPercent: a.Receipt.TierPercent,
		},
		Status:            a.Status,
		GuardianConfirmed: a.GuardianConfirmed,
		CompletedAt:       completedAt,
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}
}

func toAssignmentResponses(list []model.Assignment) []dto.AssignmentResponse {
	out := make([]dto.AssignmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toAssignmentResponse(&list[i]))
	}
	return out
}
