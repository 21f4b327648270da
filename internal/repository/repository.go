package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all data-access interfaces.
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Request     ServiceRequestRepository
	Assignment  AssignmentRepository
	Rating      RatingRepository
	Unavailable UnavailableTimeRepository
}

// NewRepository creates the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Request:     NewServiceRequestRepo(db),
		Assignment:  NewAssignmentRepo(db),
		Rating:      NewRatingRepo(db),
		Unavailable: NewUnavailableTimeRepo(db),
	}
}

// Transaction runs fn against a transaction-bound copy of the aggregate.
// The transaction commits when fn returns nil and rolls back otherwise.
// Used by the acceptance flow, whose check-then-act sequence must be atomic.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// transaction-less aggregate (tests wire mocks without a *gorm.DB)
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
