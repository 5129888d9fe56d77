package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadtrack-crm/internal/domain"
)

var leadCols = []string{"id", "name", "email", "company_name", "industry", "status", "assigned_to",
	"last_contact_date", "next_follow_up", "calendly_link", "created_at", "updated_at"}

func TestLeadRepository_ListDueFollowUps(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	until := now.Add(24 * time.Hour)
	due := now.Add(30 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE assigned_to = $1 AND next_follow_up > $2 AND next_follow_up <= $3`)).
		WithArgs(int64(7), now, until).
		WillReturnRows(sqlmock.NewRows(leadCols).
			AddRow(int64(1), "Ada", "ada@acme.io", "Acme", nil, "new", int64(7), nil, due, nil, now, now))

	leads, err := repo.ListDueFollowUps(context.Background(), 7, now, until)

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, due, *leads[0].NextFollowUp)
	assert.True(t, leads[0].IsOwnedBy(7))
}

func TestLeadRepository_List_WithFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	owner := int64(7)
	filter := domain.LeadFilter{Search: "acme", Status: domain.LeadStatusNew, AssignedTo: &owner}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM leads WHERE (name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%' OR company_name ILIKE '%' || $1 || '%') AND status = $2 AND assigned_to = $3`)).
		WithArgs("acme", domain.LeadStatusNew, owner).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC LIMIT $4 OFFSET $5`)).
		WithArgs("acme", domain.LeadStatusNew, owner, 10, 10).
		WillReturnRows(sqlmock.NewRows(leadCols))

	leads, total, err := repo.List(context.Background(), filter, domain.PaginationParams{Page: 2, PerPage: 10})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, leads)
}

func TestLeadRepository_List_NoFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM leads`)).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $1 OFFSET $2`)).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(leadCols))

	_, _, err := repo.List(context.Background(), domain.LeadFilter{}, domain.PaginationParams{})

	require.NoError(t, err)
}

func TestLeadRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery("FROM leads WHERE id = ").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(leadCols))

	lead, err := repo.GetByID(context.Background(), 404)

	assert.NoError(t, err)
	assert.Nil(t, lead)
}

func TestLeadRepository_Delete_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM leads WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	now := time.Now().UTC()
	owner := int64(7)
	lead := &domain.Lead{Name: "Ada", Email: "ada@acme.io", CompanyName: "Acme", Status: domain.LeadStatusNew, AssignedTo: &owner}

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs("Ada", "ada@acme.io", "Acme", nil, domain.LeadStatusNew, owner, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(12), now, now))

	require.NoError(t, repo.Create(context.Background(), lead))
	assert.Equal(t, int64(12), lead.ID)
}

func TestLeadRepository_CountByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	owner := int64(7)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, COUNT(*) AS count FROM leads WHERE assigned_to = $1 GROUP BY status`)).
		WithArgs(owner).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("new", int64(3)).
			AddRow("converted", int64(1)))

	counts, err := repo.CountByStatus(context.Background(), domain.LeadFilter{AssignedTo: &owner})

	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[domain.LeadStatusNew])
	assert.Equal(t, int64(1), counts[domain.LeadStatusConverted])
	assert.Zero(t, counts[domain.LeadStatusLost])
}

func TestLeadRepository_CountFollowUps(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	until := now.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`COUNT(*) FILTER (WHERE next_follow_up > $1 AND next_follow_up <= $2) AS due`)).
		WithArgs(now, until).
		WillReturnRows(sqlmock.NewRows([]string{"due", "overdue"}).AddRow(int64(2), int64(5)))

	counts, err := repo.CountFollowUps(context.Background(), domain.LeadFilter{}, now, until)

	require.NoError(t, err)
	assert.Equal(t, domain.FollowUpCounts{Due: 2, Overdue: 5}, counts)
}
