package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/pricing"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/repository"
	pkgerrors "github.com/wompwomp13/elderease-care-connect-sub000/pkg/errors"
)

// ── test helpers ──

const testDay = int64(1757203200000) // 2025-09-07 UTC

func testRateTable() pricing.RateTable {
	return pricing.RateTable{
		Rates: map[string]float64{
			"Companionship":      150,
			"Light Housekeeping": 170,
			"Running Errands":    200,
			"Home Visits":        180,
			"Socialization":      230,
		},
		CommissionPct: 0.05,
		Strict:        true,
	}
}

type assignmentFixture struct {
	svc         AssignmentService
	users       *mockUserRepo
	requests    *mockRequestRepo
	assignments *mockAssignmentRepo
	ratings     *mockRatingRepo
	unavailable *mockUnavailableRepo
}

func setupAssignmentService() *assignmentFixture {
	f := &assignmentFixture{
		users:       newMockUserRepo(),
		requests:    newMockRequestRepo(),
		assignments: newMockAssignmentRepo(),
		ratings:     newMockRatingRepo(),
		unavailable: newMockUnavailableRepo(),
	}
	repo := newTestRepository(f.users, f.requests, f.assignments, f.ratings, f.unavailable)
	f.svc = NewAssignmentService(repo, testRateTable(), zap.NewNop())
	return f
}

func (f *assignmentFixture) addApprovedVolunteer(id string) *model.User {
	status := model.VolunteerApproved
	u := &model.User{
		UserID:          id,
		Name:            "Dana",
		Email:           id + "@example.com",
		Role:            model.RoleVolunteer,
		VolunteerStatus: &status,
		Version:         1,
	}
	f.users.users[id] = u
	return u
}

func (f *assignmentFixture) addPendingRequest(id string) *model.ServiceRequest {
	r := &model.ServiceRequest{
		RequestID:     id,
		GuardianID:    "guardian-1",
		Services:      model.StringList{"Companionship", "Running Errands"},
		ServiceHours:  model.HoursMap{"Companionship": 1, "Running Errands": 1},
		RequestedDate: testDay,
		StartTime:     "09:00",
		EndTime:       "11:00",
		Address:       "12 Elm Street",
		Status:        model.RequestPending,
	}
	r.Version = 1
	f.requests.requests[id] = r
	return r
}

// ── Accept ──

func TestAssignmentService_Accept_Success(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1")

	resp, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if err != nil {
		t.Fatalf("Accept should succeed: %v", err)
	}
	if resp.Status != model.AssignmentAssigned {
		t.Errorf("expected status assigned, got %s", resp.Status)
	}
	if resp.Volunteer == nil || resp.Volunteer.ID != "vol-1" {
		t.Error("expected the accepting volunteer on the response")
	}

	// new volunteer has no history: Associate tier, no surcharge
	if resp.Receipt.Tier != "Associate" {
		t.Errorf("expected Associate tier, got %s", resp.Receipt.Tier)
	}
	wantSubtotal := 150.0 + 200.0
	if math.Abs(resp.Receipt.Subtotal-wantSubtotal) > 1e-9 {
		t.Errorf("expected subtotal %.2f, got %.2f", wantSubtotal, resp.Receipt.Subtotal)
	}
	if math.Abs(resp.Receipt.Total-wantSubtotal*1.05) > 1e-9 {
		t.Errorf("expected total %.2f, got %.2f", wantSubtotal*1.05, resp.Receipt.Total)
	}

	// the request flips to assigned
	stored := f.requests.requests["req-1"]
	if stored.Status != model.RequestAssigned {
		t.Errorf("expected request status assigned, got %s", stored.Status)
	}
}

func TestAssignmentService_Accept_AlreadyAssigned(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addApprovedVolunteer("vol-2")
	f.addPendingRequest("req-1")

	if _, err := f.svc.Accept(context.Background(), "vol-1", "req-1"); err != nil {
		t.Fatalf("first accept should succeed: %v", err)
	}
	_, err := f.svc.Accept(context.Background(), "vol-2", "req-1")
	if !errors.Is(err, ErrRequestAlreadyAssigned) {
		t.Errorf("expected ErrRequestAlreadyAssigned, got %v", err)
	}
}

func TestAssignmentService_Accept_CancelledRequest(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	req := f.addPendingRequest("req-1")
	req.Status = model.RequestCancelled

	_, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if !errors.Is(err, ErrRequestCancelled) {
		t.Errorf("expected ErrRequestCancelled, got %v", err)
	}
}

func TestAssignmentService_Accept_ScheduleConflict(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1") // 09:00-11:00

	// existing assignment 10:30-12:00 on the same day overlaps
	f.assignments.assignments["asg-0"] = &model.Assignment{
		AssignmentID:  "asg-0",
		RequestID:     "req-0",
		VolunteerID:   "vol-1",
		ScheduledDate: testDay,
		StartTime:     "10:30",
		EndTime:       "12:00",
		Status:        model.AssignmentAssigned,
	}

	_, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if !errors.Is(err, ErrScheduleConflict) {
		t.Errorf("expected ErrScheduleConflict, got %v", err)
	}
}

func TestAssignmentService_Accept_MalformedStoredClockBlocks(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1") // 09:00-11:00

	// a same-day assignment whose stored clock cannot be parsed must
	// block the acceptance, not slip through as "no conflict"
	f.assignments.assignments["asg-0"] = &model.Assignment{
		AssignmentID:  "asg-0",
		RequestID:     "req-0",
		VolunteerID:   "vol-1",
		ScheduledDate: testDay,
		StartTime:     "9am",
		EndTime:       "10:00",
		Status:        model.AssignmentAssigned,
	}

	_, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if !errors.Is(err, ErrScheduleConflict) {
		t.Errorf("expected ErrScheduleConflict, got %v", err)
	}
}

func TestAssignmentService_Accept_MalformedUnavailableWindowBlocks(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1") // 09:00-11:00

	f.unavailable.windows["unv-1"] = &model.UnavailableTime{
		UnavailableID: "unv-1",
		VolunteerID:   "vol-1",
		Day:           testDay,
		StartTime:     "late",
		EndTime:       "",
		Source:        model.UnavailableManual,
	}

	_, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if !errors.Is(err, ErrVolunteerUnavailable) {
		t.Errorf("expected ErrVolunteerUnavailable, got %v", err)
	}
}

func TestAssignmentService_Accept_TouchingWindowsDoNotConflict(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1") // 09:00-11:00

	// back-to-back assignment starting exactly at 11:00 is fine
	f.assignments.assignments["asg-0"] = &model.Assignment{
		AssignmentID:  "asg-0",
		RequestID:     "req-0",
		VolunteerID:   "vol-1",
		ScheduledDate: testDay,
		StartTime:     "11:00",
		EndTime:       "12:00",
		Status:        model.AssignmentAssigned,
	}

	if _, err := f.svc.Accept(context.Background(), "vol-1", "req-1"); err != nil {
		t.Errorf("touching windows should not conflict: %v", err)
	}
}

func TestAssignmentService_Accept_UnavailableWindow(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1") // 09:00-11:00

	f.unavailable.windows["unv-1"] = &model.UnavailableTime{
		UnavailableID: "unv-1",
		VolunteerID:   "vol-1",
		Day:           testDay,
		StartTime:     "08:00",
		EndTime:       "09:30",
		Source:        model.UnavailableManual,
	}

	_, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if !errors.Is(err, ErrVolunteerUnavailable) {
		t.Errorf("expected ErrVolunteerUnavailable, got %v", err)
	}
}

func TestAssignmentService_Accept_NotApproved(t *testing.T) {
	f := setupAssignmentService()
	status := model.VolunteerPending
	f.users.users["vol-1"] = &model.User{
		UserID:          "vol-1",
		Role:            model.RoleVolunteer,
		VolunteerStatus: &status,
		Version:         1,
	}
	f.addPendingRequest("req-1")

	_, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if !errors.Is(err, ErrVolunteerNotApproved) {
		t.Errorf("expected ErrVolunteerNotApproved, got %v", err)
	}
}

func TestAssignmentService_Accept_TierFromHistory(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1")

	// 20 confirmed completions with a 4.5 average → Advanced (+8%)
	for i := 0; i < 20; i++ {
		asgID := "hist-" + string(rune('a'+i))
		f.assignments.assignments[asgID] = &model.Assignment{
			AssignmentID:      asgID,
			RequestID:         "hist-req-" + string(rune('a'+i)),
			VolunteerID:       "vol-1",
			ScheduledDate:     testDay - int64(i+1)*86400000,
			StartTime:         "09:00",
			EndTime:           "10:00",
			Status:            model.AssignmentCompleted,
			GuardianConfirmed: true,
		}
	}
	for i := 0; i < 10; i++ {
		score := 4
		if i%2 == 0 {
			score = 5
		}
		f.ratings.ratings["rat-"+string(rune('a'+i))] = &model.Rating{
			RatingID:     "rat-" + string(rune('a'+i)),
			AssignmentID: "hist-" + string(rune('a'+i)),
			VolunteerID:  "vol-1",
			GuardianID:   "guardian-1",
			Score:        score,
		}
	}

	resp, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if err != nil {
		t.Fatalf("Accept should succeed: %v", err)
	}
	if resp.Receipt.Tier != "Advanced" {
		t.Errorf("expected Advanced tier, got %s", resp.Receipt.Tier)
	}
	if math.Abs(resp.Receipt.TierPercent-0.08) > 1e-9 {
		t.Errorf("expected tier percent 0.08, got %v", resp.Receipt.TierPercent)
	}

	// subtotal (150+200) with +8% on each rate, then 5% commission
	wantSubtotal := (150 + 200) * 1.08
	if math.Abs(resp.Receipt.Subtotal-wantSubtotal) > 1e-9 {
		t.Errorf("expected subtotal %.2f, got %.2f", wantSubtotal, resp.Receipt.Subtotal)
	}
}

// ── Complete / Confirm ──

func TestAssignmentService_CompleteAndConfirm(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1")

	resp, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if err != nil {
		t.Fatalf("Accept should succeed: %v", err)
	}

	if err := f.svc.Complete(context.Background(), "vol-1", resp.ID); err != nil {
		t.Fatalf("Complete should succeed: %v", err)
	}
	stored := f.assignments.assignments[resp.ID]
	if stored.Status != model.AssignmentCompleted || stored.CompletedAt == nil {
		t.Error("expected a completed assignment with a completion timestamp")
	}

	confirm := &dto.ConfirmAssignmentRequest{Score: 5, Comment: "wonderful visit"}
	if err := f.svc.Confirm(context.Background(), "guardian-1", resp.ID, confirm); err != nil {
		t.Fatalf("Confirm should succeed: %v", err)
	}
	stored = f.assignments.assignments[resp.ID]
	if !stored.GuardianConfirmed {
		t.Error("expected guardian_confirmed=true")
	}
	if _, err := f.ratings.GetByAssignment(context.Background(), resp.ID); err != nil {
		t.Error("expected a rating recorded for the assignment")
	}
}

func TestAssignmentService_Complete_WrongVolunteer(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addApprovedVolunteer("vol-2")
	f.addPendingRequest("req-1")

	resp, _ := f.svc.Accept(context.Background(), "vol-1", "req-1")
	err := f.svc.Complete(context.Background(), "vol-2", resp.ID)
	if !errors.Is(err, ErrNotAssignee) {
		t.Errorf("expected ErrNotAssignee, got %v", err)
	}
}

func TestAssignmentService_Confirm_BeforeComplete(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1")

	resp, _ := f.svc.Accept(context.Background(), "vol-1", "req-1")
	err := f.svc.Confirm(context.Background(), "guardian-1", resp.ID, &dto.ConfirmAssignmentRequest{Score: 4})
	if !errors.Is(err, ErrAssignmentNotCompleted) {
		t.Errorf("expected ErrAssignmentNotCompleted, got %v", err)
	}
}

func TestAssignmentService_Confirm_Twice(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1")

	resp, _ := f.svc.Accept(context.Background(), "vol-1", "req-1")
	_ = f.svc.Complete(context.Background(), "vol-1", resp.ID)
	_ = f.svc.Confirm(context.Background(), "guardian-1", resp.ID, &dto.ConfirmAssignmentRequest{Score: 4})

	err := f.svc.Confirm(context.Background(), "guardian-1", resp.ID, &dto.ConfirmAssignmentRequest{Score: 4})
	if !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("expected ErrAlreadyConfirmed, got %v", err)
	}
}

// raceLosingAssignmentRepo simulates losing the version race to a
// concurrent confirm: every update fails with the optimistic-lock error.
type raceLosingAssignmentRepo struct {
	*mockAssignmentRepo
}

func (r *raceLosingAssignmentRepo) Update(_ context.Context, _ *model.Assignment) error {
	return pkgerrors.ErrOptimisticLock
}

func TestAssignmentService_Confirm_LostRaceReportsAlreadyConfirmed(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1")

	resp, err := f.svc.Accept(context.Background(), "vol-1", "req-1")
	if err != nil {
		t.Fatalf("Accept should succeed: %v", err)
	}
	if err := f.svc.Complete(context.Background(), "vol-1", resp.ID); err != nil {
		t.Fatalf("Complete should succeed: %v", err)
	}

	repo := &repository.Repository{
		User:        f.users,
		Request:     f.requests,
		Assignment:  &raceLosingAssignmentRepo{f.assignments},
		Rating:      f.ratings,
		Unavailable: f.unavailable,
	}
	svc := NewAssignmentService(repo, testRateTable(), zap.NewNop())

	err = svc.Confirm(context.Background(), "guardian-1", resp.ID, &dto.ConfirmAssignmentRequest{Score: 5})
	if !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("expected ErrAlreadyConfirmed for the losing confirm, got %v", err)
	}
	if len(f.ratings.ratings) != 0 {
		t.Error("losing confirm must not record a rating")
	}
}

func TestAssignmentService_Confirm_WrongGuardian(t *testing.T) {
	f := setupAssignmentService()
	f.addApprovedVolunteer("vol-1")
	f.addPendingRequest("req-1")

	resp, _ := f.svc.Accept(context.Background(), "vol-1", "req-1")
	_ = f.svc.Complete(context.Background(), "vol-1", resp.ID)

	err := f.svc.Confirm(context.Background(), "guardian-2", resp.ID, &dto.ConfirmAssignmentRequest{Score: 4})
	if !errors.Is(err, ErrNotAssignmentGuardian) {
		t.Errorf("expected ErrNotAssignmentGuardian, got %v", err)
	}
}
