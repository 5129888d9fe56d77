package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"leadtrack-crm/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Lead         LeadRepository
	Note         NoteRepository
	Activity     ActivityRepository
	EmailLog     EmailLogRepository
	Notification NotificationRepository
	Settings     SettingsRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Lead:         NewLeadRepository(db),
		Note:         NewNoteRepository(db),
		Activity:     NewActivityRepository(db),
		EmailLog:     NewEmailLogRepository(db),
		Notification: NewNotificationRepository(db),
		Settings:     NewSettingsRepository(db),
	}
}

// expectAffected turns a zero-row UPDATE/DELETE into a wrapped ErrNotFound.
func expectAffected(res sql.Result, format string, args ...any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundf(format, args...)
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back on error or panic.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
