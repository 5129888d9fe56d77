package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"leadtrack-crm/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListByLead(ctx context.Context, leadID int64, params domain.PaginationParams) ([]domain.Activity, int64, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return insertActivity(ctx, r.db, activity)
}

func (r *activityRepository) ListByLead(ctx context.Context, leadID int64, params domain.PaginationParams) ([]domain.Activity, int64, error) {
	params.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM activities WHERE lead_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, leadID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, lead_id, user_id, activity_type, description, created_at
		FROM activities
		WHERE lead_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var activities []domain.Activity
	err := r.db.SelectContext(ctx, &activities, query, leadID, params.PerPage, params.Offset())
	return activities, total, err
}

// insertActivity is shared with repositories that record an activity as
// part of their own transaction.
func insertActivity(ctx context.Context, q sqlx.QueryerContext, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (lead_id, user_id, activity_type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return q.QueryRowxContext(ctx, query,
		activity.LeadID, activity.UserID, activity.ActivityType, activity.Description,
	).Scan(&activity.ID, &activity.CreatedAt)
}
