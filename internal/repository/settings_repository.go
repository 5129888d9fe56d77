package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"leadtrack-crm/internal/domain"
)

type SettingsRepository interface {
	List(ctx context.Context) ([]domain.Setting, error)
	GetByKey(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, values map[string]string) ([]domain.Setting, error)
	InsertDefaults(ctx context.Context, defaults []domain.DefaultSetting) (int, error)
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

const settingColumns = `id, key, value, description, created_at, updated_at`

func (r *settingsRepository) List(ctx context.Context) ([]domain.Setting, error) {
	var settings []domain.Setting
	query := `SELECT ` + settingColumns + ` FROM settings ORDER BY key`
	err := r.db.SelectContext(ctx, &settings, query)
	return settings, err
}

func (r *settingsRepository) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	var setting domain.Setting
	query := `SELECT ` + settingColumns + ` FROM settings WHERE key = $1`

	err := r.db.GetContext(ctx, &setting, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert writes every key/value pair in a single transaction.
func (r *settingsRepository) Upsert(ctx context.Context, values map[string]string) ([]domain.Setting, error) {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING ` + settingColumns

	settings := make([]domain.Setting, 0, len(values))
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for key, value := range values {
			var s domain.Setting
			if err := tx.GetContext(ctx, &s, query, key, value); err != nil {
				return fmt.Errorf("upsert setting %q: %w", key, err)
			}
			settings = append(settings, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// InsertDefaults adds the missing defaults and leaves existing keys alone.
// It returns how many rows were inserted.
func (r *settingsRepository) InsertDefaults(ctx context.Context, defaults []domain.DefaultSetting) (int, error) {
	query := `
		INSERT INTO settings (key, value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO NOTHING`

	inserted := 0
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, d := range defaults {
			res, err := tx.ExecContext(ctx, query, d.Key, d.Value, d.Description)
			if err != nil {
				return fmt.Errorf("insert default %q: %w", d.Key, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	return inserted, err
}
