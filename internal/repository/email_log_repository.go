package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"leadtrack-crm/internal/domain"
)

type EmailLogRepository interface {
	Record(ctx context.Context, log *domain.EmailLog, activity *domain.Activity) error
	ListByLead(ctx context.Context, leadID int64) ([]domain.EmailLog, error)
}

type emailLogRepository struct {
	db *sqlx.DB
}

func NewEmailLogRepository(db *sqlx.DB) EmailLogRepository {
	return &emailLogRepository{db: db}
}

// Record stores the email log and, in the same transaction, stamps the lead's
// last contact date, moves its next follow-up when the log schedules one and
// appends the activity entry.
func (r *emailLogRepository) Record(ctx context.Context, log *domain.EmailLog, activity *domain.Activity) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO email_logs (lead_id, user_id, direction, subject, content, response_type, scheduled_follow_up, provider_message_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, sent_at`

		err := tx.QueryRowxContext(ctx, insert,
			log.LeadID, log.UserID, log.Direction, log.Subject, log.Content,
			log.ResponseType, log.ScheduledFollowUp, log.ProviderMessageID,
		).Scan(&log.ID, &log.SentAt)
		if err != nil {
			return fmt.Errorf("insert email log: %w", err)
		}

		update := `
			UPDATE leads
			SET last_contact_date = $2, next_follow_up = COALESCE($3, next_follow_up), updated_at = NOW()
			WHERE id = $1`

		res, err := tx.ExecContext(ctx, update, log.LeadID, log.SentAt, log.ScheduledFollowUp)
		if err != nil {
			return fmt.Errorf("update lead contact: %w", err)
		}
		if err := expectAffected(res, "lead %d", log.LeadID); err != nil {
			return err
		}

		if activity == nil {
			return nil
		}
		if err := insertActivity(ctx, tx, activity); err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
		return nil
	})
}

func (r *emailLogRepository) ListByLead(ctx context.Context, leadID int64) ([]domain.EmailLog, error) {
	query := `
		SELECT id, lead_id, user_id, direction, subject, content, response_type,
			sent_at, scheduled_follow_up, provider_message_id
		FROM email_logs
		WHERE lead_id = $1
		ORDER BY sent_at DESC`

	var logs []domain.EmailLog
	err := r.db.SelectContext(ctx, &logs, query, leadID)
	return logs, err
}
