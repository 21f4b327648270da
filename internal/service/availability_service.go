package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/repository"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/schedule"
)

var (
	ErrICSSourceRequired   = errors.New("provide either a url or inline content")
	ErrICSFetchFailed      = errors.New("calendar feed could not be fetched")
	ErrICSParseFailed      = errors.New("calendar feed could not be parsed")
	ErrUnavailableNotFound = errors.New("unavailable window not found")
)

// AvailabilityService manages volunteer unavailable windows.
type AvailabilityService interface {
	Create(ctx context.Context, volunteerID string, req *dto.CreateUnavailableRequest) (*dto.UnavailableResponse, error)
	List(ctx context.Context, volunteerID string, page *dto.PaginationRequest) ([]dto.UnavailableResponse, int64, error)
	Delete(ctx context.Context, volunteerID, id string) error
	// ImportICS pulls unavailable windows from an iCalendar feed, by URL
	// or inline content.
	ImportICS(ctx context.Context, volunteerID string, req *dto.ImportICSRequest) (*dto.ImportICSResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService creates an AvailabilityService instance.
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

func (s *availabilityService) Create(ctx context.Context, volunteerID string, req *dto.CreateUnavailableRequest) (*dto.UnavailableResponse, error) {
	start := schedule.ParseClock(req.StartTime)
	end := schedule.ParseClock(req.EndTime)
	if start == schedule.NoTime || end == schedule.NoTime {
		return nil, ErrMalformedClock
	}
	if end <= start {
		return nil, ErrInvalidTimeWindow
	}

	ut := &model.UnavailableTime{
		VolunteerID: volunteerID,
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Reason:      req.Reason,
		Source:      model.UnavailableManual,
	}
	if err := s.repo.Unavailable.Create(ctx, ut); err != nil {
		s.logger.Error("creating unavailable window failed", zap.Error(err))
		return nil, err
	}

	resp := toUnavailableResponse(ut)
	return &resp, nil
}

func (s *availabilityService) List(ctx context.Context, volunteerID string, page *dto.PaginationRequest) ([]dto.UnavailableResponse, int64, error) {
	list, total, err := s.repo.Unavailable.ListByVolunteer(ctx, volunteerID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UnavailableResponse, 0, len(list))
	for i := range list {
		out = append(out, toUnavailableResponse(&list[i]))
	}
	return out, total, nil
}

func (s *availabilityService) Delete(ctx context.Context, volunteerID, id string) error {
	err := s.repo.Unavailable.Delete(ctx, id, volunteerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUnavailableNotFound
	}
	return err
}

func (s *availabilityService) ImportICS(ctx context.Context, volunteerID string, req *dto.ImportICSRequest) (*dto.ImportICSResponse, error) {
	var (
		windows  []model.UnavailableTime
		warnings []string
		err      error
	)

	switch {
	case req.Content != "":
		windows, warnings, err = ParseICS(strings.NewReader(req.Content), volunteerID, time.Now())
		if err != nil {
			s.logger.Warn("ICS content parse failed", zap.Error(err))
			return nil, ErrICSParseFailed
		}
	case req.URL != "":
		body, fetchErr := FetchICSContent(req.URL)
		if fetchErr != nil {
			s.logger.Warn("ICS fetch failed", zap.String("url", req.URL), zap.Error(fetchErr))
			return nil, ErrICSFetchFailed
		}
		defer body.Close()
		windows, warnings, err = ParseICS(body, volunteerID, time.Now())
		if err != nil {
			s.logger.Warn("ICS feed parse failed", zap.String("url", req.URL), zap.Error(err))
			return nil, ErrICSParseFailed
		}
	default:
		return nil, ErrICSSourceRequired
	}

	// skip windows already on file for the same day and clocks
	imported := make([]model.UnavailableTime, 0, len(windows))
	skipped := 0
	for i := range windows {
		existing, err := s.repo.Unavailable.ListByVolunteerDay(ctx, volunteerID, windows[i].Day)
		if err != nil {
			return nil, err
		}
		dup := false
		for j := range existing {
			if existing[j].StartTime == windows[i].StartTime && existing[j].EndTime == windows[i].EndTime {
				dup = true
				break
			}
		}
		if dup {
			skipped++
			continue
		}
		imported = append(imported, windows[i])
	}

	if err := s.repo.Unavailable.BatchCreate(ctx, imported); err != nil {
		s.logger.Error("saving imported windows failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("ICS import finished",
		zap.String("volunteer_id", volunteerID),
		zap.Int("imported", len(imported)),
		zap.Int("skipped", skipped))

	return &dto.ImportICSResponse{
		Imported: len(imported),
		Skipped:  skipped,
		Warnings: warnings,
	}, nil
}

func toUnavailableResponse(ut *model.UnavailableTime) dto.UnavailableResponse {
	return dto.UnavailableResponse{
		ID:        ut.UnavailableID,
		Day:       ut.Day,
		StartTime: ut.StartTime,
		EndTime:   ut.EndTime,
		Reason:    ut.Reason,
		Source:    ut.Source,
	}
}
