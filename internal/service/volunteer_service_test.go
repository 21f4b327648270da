package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
)

func setupVolunteerService() (VolunteerService, *mockUserRepo, *mockAssignmentRepo, *mockRatingRepo) {
	users := newMockUserRepo()
	assignments := newMockAssignmentRepo()
	ratings := newMockRatingRepo()
	repo := newTestRepository(users, newMockRequestRepo(), assignments, ratings, newMockUnavailableRepo())
	svc := NewVolunteerService(repo, zap.NewNop())
	return svc, users, assignments, ratings
}

func seedHistory(assignments *mockAssignmentRepo, ratings *mockRatingRepo, volunteerID string, completed int, scores []int) {
	for i := 0; i < completed; i++ {
		id := fmt.Sprintf("asg-%d", i)
		assignments.assignments[id] = &model.Assignment{
			AssignmentID:      id,
			RequestID:         fmt.Sprintf("req-%d", i),
			VolunteerID:       volunteerID,
			ScheduledDate:     testDay,
			StartTime:         "09:00",
			EndTime:           "10:00",
			Status:            model.AssignmentCompleted,
			GuardianConfirmed: true,
		}
	}
	for i, score := range scores {
		id := fmt.Sprintf("rat-%d", i)
		ratings.ratings[id] = &model.Rating{
			RatingID:     id,
			AssignmentID: fmt.Sprintf("asg-%d", i),
			VolunteerID:  volunteerID,
			GuardianID:   "guardian-1",
			Score:        score,
		}
	}
}

func TestVolunteerService_Performance_NewVolunteer(t *testing.T) {
	svc, users, _, _ := setupVolunteerService()
	status := model.VolunteerApproved
	users.users["vol-1"] = &model.User{UserID: "vol-1", Role: model.RoleVolunteer, VolunteerStatus: &status, Version: 1}

	perf, err := svc.Performance(context.Background(), "vol-1")
	if err != nil {
		t.Fatalf("Performance should succeed: %v", err)
	}
	if perf.Tier != "Associate" || perf.TierPercent != 0 {
		t.Errorf("expected Associate/0, got %s/%v", perf.Tier, perf.TierPercent)
	}
	if perf.AverageRating != nil {
		t.Error("expected nil average for an unrated volunteer")
	}
}

func TestVolunteerService_Performance_ExpertTier(t *testing.T) {
	svc, users, assignments, ratings := setupVolunteerService()
	status := model.VolunteerApproved
	users.users["vol-1"] = &model.User{UserID: "vol-1", Role: model.RoleVolunteer, VolunteerStatus: &status, Version: 1}

	// 40 confirmed completions, all fives → Expert (+12%)
	scores := make([]int, 40)
	for i := range scores {
		scores[i] = 5
	}
	seedHistory(assignments, ratings, "vol-1", 40, scores)

	perf, err := svc.Performance(context.Background(), "vol-1")
	if err != nil {
		t.Fatalf("Performance should succeed: %v", err)
	}
	if perf.Tier != "Expert" {
		t.Errorf("expected Expert, got %s", perf.Tier)
	}
	if math.Abs(perf.TierPercent-0.12) > 1e-9 {
		t.Errorf("expected 0.12, got %v", perf.TierPercent)
	}
	if perf.TasksCompleted != 40 || perf.RatingCount != 40 {
		t.Errorf("unexpected counts: %d tasks, %d ratings", perf.TasksCompleted, perf.RatingCount)
	}
}

func TestVolunteerService_Performance_HighCountLowRating(t *testing.T) {
	svc, users, assignments, ratings := setupVolunteerService()
	status := model.VolunteerApproved
	users.users["vol-1"] = &model.User{UserID: "vol-1", Role: model.RoleVolunteer, VolunteerStatus: &status, Version: 1}

	// plenty of work but a 3.0 average keeps the volunteer at Associate
	scores := make([]int, 40)
	for i := range scores {
		scores[i] = 3
	}
	seedHistory(assignments, ratings, "vol-1", 40, scores)

	perf, _ := svc.Performance(context.Background(), "vol-1")
	if perf.Tier != "Associate" {
		t.Errorf("expected Associate, got %s", perf.Tier)
	}
}

func TestVolunteerService_Performance_NotAVolunteer(t *testing.T) {
	svc, users, _, _ := setupVolunteerService()
	users.users["g-1"] = &model.User{UserID: "g-1", Role: model.RoleGuardian, Version: 1}

	if _, err := svc.Performance(context.Background(), "g-1"); !errors.Is(err, ErrNotAVolunteer) {
		t.Errorf("expected ErrNotAVolunteer, got %v", err)
	}
}

func TestVolunteerService_UpdateStatus(t *testing.T) {
	svc, users, _, _ := setupVolunteerService()
	status := model.VolunteerPending
	users.users["vol-1"] = &model.User{UserID: "vol-1", Role: model.RoleVolunteer, VolunteerStatus: &status, Version: 1}

	err := svc.UpdateStatus(context.Background(), "admin-1", "vol-1", &dto.UpdateVolunteerStatusRequest{Status: model.VolunteerApproved})
	if err != nil {
		t.Fatalf("UpdateStatus should succeed: %v", err)
	}
	if *users.users["vol-1"].VolunteerStatus != model.VolunteerApproved {
		t.Error("expected the volunteer to be approved")
	}
}

func TestVolunteerService_UpdateStatus_NotAVolunteer(t *testing.T) {
	svc, users, _, _ := setupVolunteerService()
	users.users["g-1"] = &model.User{UserID: "g-1", Role: model.RoleGuardian, Version: 1}

	err := svc.UpdateStatus(context.Background(), "admin-1", "g-1", &dto.UpdateVolunteerStatusRequest{Status: model.VolunteerApproved})
	if !errors.Is(err, ErrNotAVolunteer) {
		t.Errorf("expected ErrNotAVolunteer, got %v", err)
	}
}
