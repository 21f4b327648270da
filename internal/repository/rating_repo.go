package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
)

// RatingAggregate holds a volunteer's rating summary.
type RatingAggregate struct {
	Count   int64
	Average *float64
}

// RatingRepository is the ratings data-access interface.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	GetByAssignment(ctx context.Context, assignmentID string) (*model.Rating, error)
	// AggregateByVolunteer returns how many ratings the volunteer has and
	// their average score. Average is nil when the volunteer has none.
	AggregateByVolunteer(ctx context.Context, volunteerID string) (*RatingAggregate, error)
}

type ratingRepo struct {
	db *gorm.DB
}

// NewRatingRepo creates the GORM-backed rating repository.
func NewRatingRepo(db *gorm.DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepo) GetByAssignment(ctx context.Context, assignmentID string) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepo) AggregateByVolunteer(ctx context.Context, volunteerID string) (*RatingAggregate, error) {
	var row struct {
		Count   int64
		Average *float64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("COUNT(*) AS count, AVG(score) AS average").
		Where("volunteer_id = ?", volunteerID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &RatingAggregate{Count: row.Count, Average: row.Average}, nil
}
