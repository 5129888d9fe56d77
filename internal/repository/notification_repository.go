package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"leadtrack-crm/internal/domain"
)

type NotificationRepository interface {
	CreateIdempotent(ctx context.Context, notifs []*domain.Notification) ([]*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, status domain.NotificationStatusFilter, params domain.PaginationParams) ([]domain.Notification, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.NotificationStatus) error
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// CreateIdempotent inserts all candidates in one transaction. A candidate that
// collides with a live (non-dismissed) notification for the same lead, type
// and scheduled time is skipped. Only the rows actually inserted are returned,
// with ID and CreatedAt filled in.
func (r *notificationRepository) CreateIdempotent(ctx context.Context, notifs []*domain.Notification) ([]*domain.Notification, error) {
	if len(notifs) == 0 {
		return nil, nil
	}

	query := `
		INSERT INTO notifications (user_id, lead_id, type, title, message, status, scheduled_for)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (lead_id, type, scheduled_for) WHERE status <> 'dismissed' DO NOTHING
		RETURNING id, created_at`

	var created []*domain.Notification
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, n := range notifs {
			err := tx.QueryRowxContext(ctx, query,
				n.UserID, n.LeadID, n.Type, n.Title, n.Message, n.Status, n.ScheduledFor,
			).Scan(&n.ID, &n.CreatedAt)
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				return fmt.Errorf("insert notification: %w", err)
			}
			created = append(created, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

const notificationSelect = `
	SELECT n.id, n.user_id, n.lead_id, n.type, n.title, n.message, n.status,
		n.scheduled_for, n.created_at, l.name AS lead_name
	FROM notifications n
	LEFT JOIN leads l ON n.lead_id = l.id`

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var notif domain.Notification
	query := notificationSelect + ` WHERE n.id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, status domain.NotificationStatusFilter, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Normalize()

	where := ` WHERE n.user_id = $1`
	args := []any{userID}
	if status != "" && status != domain.NotifFilterAll {
		where += ` AND n.status = $2`
		args = append(args, status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications n` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`%s%s ORDER BY n.created_at DESC, n.id DESC LIMIT $%d OFFSET $%d`,
		notificationSelect, where, len(args)+1, len(args)+2)
	args = append(args, params.PerPage, params.Offset())

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, args...)
	return notifications, total, err
}

// UpdateStatus never moves a dismissed notification; such a row reports
// ErrInvalidTransition.
func (r *notificationRepository) UpdateStatus(ctx context.Context, id int64, status domain.NotificationStatus) error {
	query := `UPDATE notifications SET status = $2 WHERE id = $1 AND status <> 'dismissed'`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("notification %d: %w", id, domain.ErrInvalidTransition)
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	query := `UPDATE notifications SET status = 'read' WHERE user_id = $1 AND status = 'unread'`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND status = 'unread'`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
