package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
)

func setupAvailabilityService() (AvailabilityService, *mockUnavailableRepo) {
	unavailable := newMockUnavailableRepo()
	repo := newTestRepository(newMockUserRepo(), newMockRequestRepo(), newMockAssignmentRepo(), newMockRatingRepo(), unavailable)
	svc := NewAvailabilityService(repo, zap.NewNop())
	return svc, unavailable
}

func TestAvailabilityService_Create_Success(t *testing.T) {
	svc, unavailable := setupAvailabilityService()

	resp, err := svc.Create(context.Background(), "vol-1", &dto.CreateUnavailableRequest{
		Day:       testDay,
		StartTime: "09:00",
		EndTime:   "12:00",
		Reason:    "physio appointment",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if resp.Source != model.UnavailableManual {
		t.Errorf("expected manual source, got %s", resp.Source)
	}
	if len(unavailable.windows) != 1 {
		t.Errorf("expected one stored window, got %d", len(unavailable.windows))
	}
}

func TestAvailabilityService_Create_BadWindow(t *testing.T) {
	svc, _ := setupAvailabilityService()

	_, err := svc.Create(context.Background(), "vol-1", &dto.CreateUnavailableRequest{
		Day:       testDay,
		StartTime: "12:00",
		EndTime:   "09:00",
	})
	if !errors.Is(err, ErrInvalidTimeWindow) {
		t.Errorf("expected ErrInvalidTimeWindow, got %v", err)
	}

	_, err = svc.Create(context.Background(), "vol-1", &dto.CreateUnavailableRequest{
		Day:       testDay,
		StartTime: "noon",
		EndTime:   "13:00",
	})
	if !errors.Is(err, ErrMalformedClock) {
		t.Errorf("expected ErrMalformedClock, got %v", err)
	}
}

func TestAvailabilityService_Delete_NotFound(t *testing.T) {
	svc, _ := setupAvailabilityService()

	if err := svc.Delete(context.Background(), "vol-1", "missing"); !errors.Is(err, ErrUnavailableNotFound) {
		t.Errorf("expected ErrUnavailableNotFound, got %v", err)
	}
}

func TestAvailabilityService_ImportICS_RequiresSource(t *testing.T) {
	svc, _ := setupAvailabilityService()

	if _, err := svc.ImportICS(context.Background(), "vol-1", &dto.ImportICSRequest{}); !errors.Is(err, ErrICSSourceRequired) {
		t.Errorf("expected ErrICSSourceRequired, got %v", err)
	}
}

func TestAvailabilityService_ImportICS_InlineContent(t *testing.T) {
	svc, unavailable := setupAvailabilityService()

	day := time.Now().UTC().AddDate(0, 0, 7)
	stamp := day.Format("20060102")
	content := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"UID:evt-1",
		"SUMMARY:Physio",
		"DTSTART:" + stamp + "T090000Z",
		"DTEND:" + stamp + "T103000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	resp, err := svc.ImportICS(context.Background(), "vol-1", &dto.ImportICSRequest{Content: content})
	if err != nil {
		t.Fatalf("ImportICS should succeed: %v", err)
	}
	if resp.Imported != 1 || resp.Skipped != 0 {
		t.Errorf("expected 1 imported / 0 skipped, got %d / %d", resp.Imported, resp.Skipped)
	}

	var stored *model.UnavailableTime
	for _, w := range unavailable.windows {
		stored = w
	}
	if stored == nil {
		t.Fatal("expected a stored window")
	}
	if stored.StartTime != "09:00" || stored.EndTime != "10:30" {
		t.Errorf("unexpected window %s-%s", stored.StartTime, stored.EndTime)
	}
	if stored.Source != model.UnavailableICS {
		t.Errorf("expected ics source, got %s", stored.Source)
	}
	if stored.Reason != "Physio" {
		t.Errorf("expected the event summary as reason, got %q", stored.Reason)
	}
}

func TestAvailabilityService_ImportICS_SkipsDuplicates(t *testing.T) {
	svc, _ := setupAvailabilityService()

	day := time.Now().UTC().AddDate(0, 0, 7)
	stamp := day.Format("20060102")
	content := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"UID:evt-1",
		"SUMMARY:Physio",
		"DTSTART:" + stamp + "T090000Z",
		"DTEND:" + stamp + "T103000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	if _, err := svc.ImportICS(context.Background(), "vol-1", &dto.ImportICSRequest{Content: content}); err != nil {
		t.Fatalf("first import should succeed: %v", err)
	}
	resp, err := svc.ImportICS(context.Background(), "vol-1", &dto.ImportICSRequest{Content: content})
	if err != nil {
		t.Fatalf("second import should succeed: %v", err)
	}
	if resp.Imported != 0 || resp.Skipped != 1 {
		t.Errorf("expected 0 imported / 1 skipped, got %d / %d", resp.Imported, resp.Skipped)
	}
}

func TestAvailabilityService_ImportICS_BadContent(t *testing.T) {
	svc, _ := setupAvailabilityService()

	_, err := svc.ImportICS(context.Background(), "vol-1", &dto.ImportICSRequest{Content: "not a calendar"})
	if !errors.Is(err, ErrICSParseFailed) {
		t.Errorf("expected ErrICSParseFailed, got %v", err)
	}
}
