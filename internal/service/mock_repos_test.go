package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/repository"
	pkgerrors "github.com/wompwomp13/elderease-care-connect-sub000/pkg/errors"
)

// newTestRepository wires the mock repos into the aggregate. The nil *gorm.DB
// makes Transaction run its callback against the same aggregate.
func newTestRepository(
	users *mockUserRepo,
	requests *mockRequestRepo,
	assignments *mockAssignmentRepo,
	ratings *mockRatingRepo,
	unavailable *mockUnavailableRepo,
) *repository.Repository {
	return &repository.Repository{
		User:        users,
		Request:     requests,
		Assignment:  assignments,
		Rating:      ratings,
		Unavailable: unavailable,
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	if user.Version == 0 {
		user.Version = 1
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.Version++
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) ListVolunteers(_ context.Context, status string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role != model.RoleVolunteer {
			continue
		}
		if status != "" && (u.VolunteerStatus == nil || *u.VolunteerStatus != status) {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock ServiceRequestRepository ──

type mockRequestRepo struct {
	requests map[string]*model.ServiceRequest
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]*model.ServiceRequest)}
}

func (m *mockRequestRepo) Create(_ context.Context, req *model.ServiceRequest) error {
	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("req-%d", len(m.requests)+1)
	}
	if req.Version == 0 {
		req.Version = 1
	}
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (*model.ServiceRequest, error) {
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ServiceRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *mockRequestRepo) ListByGuardian(_ context.Context, guardianID, status string, offset, limit int) ([]model.ServiceRequest, int64, error) {
	var result []model.ServiceRequest
	for _, r := range m.requests {
		if r.GuardianID != guardianID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		result = append(result, *r)
	}
	return result, int64(len(result)), nil
}

func (m *mockRequestRepo) ListPending(_ context.Context, offset, limit int) ([]model.ServiceRequest, int64, error) {
	var result []model.ServiceRequest
	for _, r := range m.requests {
		if r.Status == model.RequestPending {
			result = append(result, *r)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockRequestRepo) Update(_ context.Context, req *model.ServiceRequest) error {
	if _, ok := m.requests[req.RequestID]; !ok {
		return gorm.ErrRecordNotFound
	}
	req.Version++
	cp := *req
	m.requests[req.RequestID] = &cp
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	if a.AssignmentID == "" {
		a.AssignmentID = fmt.Sprintf("asg-%d", len(m.assignments)+1)
	}
	if a.Version == 0 {
		a.Version = 1
	}
	m.assignments[a.AssignmentID] = a
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) GetByRequest(_ context.Context, requestID string) (*model.Assignment, error) {
	for _, a := range m.assignments {
		if a.RequestID == requestID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByVolunteer(_ context.Context, volunteerID string, offset, limit int) ([]model.Assignment, int64, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.VolunteerID == volunteerID {
			result = append(result, *a)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockAssignmentRepo) ListByGuardian(_ context.Context, guardianID string, offset, limit int) ([]model.Assignment, int64, error) {
	return nil, 0, nil
}

func (m *mockAssignmentRepo) ListByVolunteerOnDay(_ context.Context, volunteerID string, day int64) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.VolunteerID == volunteerID && a.ScheduledDate == day {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) CountCompletedConfirmed(_ context.Context, volunteerID string) (int64, error) {
	var n int64
	for _, a := range m.assignments {
		if a.VolunteerID == volunteerID && a.Status == model.AssignmentCompleted && a.GuardianConfirmed {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) ListBetween(_ context.Context, fromDay, toDay int64) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.ScheduledDate >= fromDay && a.ScheduledDate <= toDay {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	stored, ok := m.assignments[a.AssignmentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != a.Version {
		return pkgerrors.ErrOptimisticLock
	}
	a.Version++
	cp := *a
	m.assignments[a.AssignmentID] = &cp
	return nil
}

// ── Mock RatingRepository ──

type mockRatingRepo struct {
	ratings map[string]*model.Rating
}

func newMockRatingRepo() *mockRatingRepo {
	return &mockRatingRepo{ratings: make(map[string]*model.Rating)}
}

func (m *mockRatingRepo) Create(_ context.Context, rating *model.Rating) error {
	if rating.RatingID == "" {
		rating.RatingID = fmt.Sprintf("rat-%d", len(m.ratings)+1)
	}
	m.ratings[rating.RatingID] = rating
	return nil
}

func (m *mockRatingRepo) GetByAssignment(_ context.Context, assignmentID string) (*model.Rating, error) {
	for _, r := range m.ratings {
		if r.AssignmentID == assignmentID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRatingRepo) AggregateByVolunteer(_ context.Context, volunteerID string) (*repository.RatingAggregate, error) {
	var count int64
	var sum float64
	for _, r := range m.ratings {
		if r.VolunteerID == volunteerID {
			count++
			sum += float64(r.Score)
		}
	}
	agg := &repository.RatingAggregate{Count: count}
	if count > 0 {
		avg := sum / float64(count)
		agg.Average = &avg
	}
	return agg, nil
}

// ── Mock UnavailableTimeRepository ──

type mockUnavailableRepo struct {
	windows map[string]*model.UnavailableTime
}

func newMockUnavailableRepo() *mockUnavailableRepo {
	return &mockUnavailableRepo{windows: make(map[string]*model.UnavailableTime)}
}

func (m *mockUnavailableRepo) Create(_ context.Context, ut *model.UnavailableTime) error {
	if ut.UnavailableID == "" {
		ut.UnavailableID = fmt.Sprintf("unv-%d", len(m.windows)+1)
	}
	m.windows[ut.UnavailableID] = ut
	return nil
}

func (m *mockUnavailableRepo) BatchCreate(ctx context.Context, uts []model.UnavailableTime) error {
	for i := range uts {
		if err := m.Create(ctx, &uts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockUnavailableRepo) ListByVolunteerDay(_ context.Context, volunteerID string, day int64) ([]model.UnavailableTime, error) {
	var result []model.UnavailableTime
	for _, w := range m.windows {
		if w.VolunteerID == volunteerID && w.Day == day {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (m *mockUnavailableRepo) ListByVolunteer(_ context.Context, volunteerID string, offset, limit int) ([]model.UnavailableTime, int64, error) {
	var result []model.UnavailableTime
	for _, w := range m.windows {
		if w.VolunteerID == volunteerID {
			result = append(result, *w)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockUnavailableRepo) Delete(_ context.Context, id, volunteerID string) error {
	w, ok := m.windows[id]
	if !ok || w.VolunteerID != volunteerID {
		return gorm.ErrRecordNotFound
	}
	delete(m.windows, id)
	return nil
}
