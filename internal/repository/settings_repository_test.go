package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadtrack-crm/internal/domain"
)

func TestSettingsRepository_InsertDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	defaults := domain.DefaultSettings()

	mock.ExpectBegin()
	mock.ExpectExec("ON CONFLICT \\(key\\) DO NOTHING").
		WithArgs(domain.SettingGlobalEmail, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("ON CONFLICT \\(key\\) DO NOTHING").
		WithArgs(domain.SettingGlobalEmailName, "CRM System", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := repo.InsertDefaults(context.Background(), defaults)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSettingsRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	now := time.Now()
	cols := []string{"id", "key", "value", "description", "created_at", "updated_at"}

	mock.ExpectBegin()
	mock.ExpectQuery("ON CONFLICT \\(key\\) DO UPDATE").
		WithArgs(domain.SettingGlobalEmail, "crm@acme.io").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(1), domain.SettingGlobalEmail, "crm@acme.io", nil, now, now))
	mock.ExpectCommit()

	settings, err := repo.Upsert(context.Background(), map[string]string{domain.SettingGlobalEmail: "crm@acme.io"})

	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "crm@acme.io", settings[0].StringValue())
}

func TestSettingsRepository_GetByKey_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	mock.ExpectQuery("FROM settings WHERE key").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s, err := repo.GetByKey(context.Background(), "nope")

	assert.NoError(t, err)
	assert.Nil(t, s)
}
