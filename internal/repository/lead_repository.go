package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"leadtrack-crm/internal/domain"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	Update(ctx context.Context, lead *domain.Lead) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.LeadFilter, params domain.PaginationParams) ([]domain.Lead, int64, error)
	ListAll(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)
	ListDueFollowUps(ctx context.Context, userID int64, after, until time.Time) ([]domain.Lead, error)
	CountByStatus(ctx context.Context, filter domain.LeadFilter) (map[domain.LeadStatus]int64, error)
	CountFollowUps(ctx context.Context, filter domain.LeadFilter, now, until time.Time) (domain.FollowUpCounts, error)
}

type leadRepository struct {
	db *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `id, name, email, company_name, industry, status, assigned_to,
	last_contact_date, next_follow_up, calendly_link, created_at, updated_at`

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	query := `
		INSERT INTO leads (name, email, company_name, industry, status, assigned_to, next_follow_up, calendly_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		lead.Name, lead.Email, lead.CompanyName, lead.Industry, lead.Status,
		lead.AssignedTo, lead.NextFollowUp, lead.CalendlyLink,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	var lead domain.Lead
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	err := r.db.GetContext(ctx, &lead, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	query := `
		UPDATE leads
		SET name = $2, email = $3, company_name = $4, industry = $5, status = $6,
			assigned_to = $7, last_contact_date = $8, next_follow_up = $9,
			calendly_link = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.CompanyName, lead.Industry, lead.Status,
		lead.AssignedTo, lead.LastContactDate, lead.NextFollowUp, lead.CalendlyLink,
	).Scan(&lead.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("lead %d", lead.ID)
	}
	return err
}

// Delete removes the lead. Notes, activities and email logs go with it via
// ON DELETE CASCADE; notifications keep a NULL lead reference.
func (r *leadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "lead %d", id)
}

func (r *leadRepository) List(ctx context.Context, filter domain.LeadFilter, params domain.PaginationParams) ([]domain.Lead, int64, error) {
	params.Normalize()
	where, args := leadFilterClause(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM leads` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM leads%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		leadColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PerPage, params.Offset())

	var leads []domain.Lead
	err := r.db.SelectContext(ctx, &leads, query, args...)
	return leads, total, err
}

func (r *leadRepository) ListAll(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	where, args := leadFilterClause(filter)
	query := `SELECT ` + leadColumns + ` FROM leads` + where + ` ORDER BY created_at DESC`

	var leads []domain.Lead
	err := r.db.SelectContext(ctx, &leads, query, args...)
	return leads, err
}

// ListDueFollowUps returns the user's leads whose next follow-up falls in
// (after, until]. Overdue follow-ups are not included.
func (r *leadRepository) ListDueFollowUps(ctx context.Context, userID int64, after, until time.Time) ([]domain.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE assigned_to = $1 AND next_follow_up > $2 AND next_follow_up <= $3
		ORDER BY next_follow_up ASC`

	var leads []domain.Lead
	err := r.db.SelectContext(ctx, &leads, query, userID, after, until)
	return leads, err
}

func (r *leadRepository) CountByStatus(ctx context.Context, filter domain.LeadFilter) (map[domain.LeadStatus]int64, error) {
	where, args := leadFilterClause(filter)
	query := `SELECT status, COUNT(*) AS count FROM leads` + where + ` GROUP BY status`

	var rows []struct {
		Status domain.LeadStatus `db:"status"`
		Count  int64             `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	counts := make(map[domain.LeadStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountFollowUps counts follow-ups due in (now, until] and open leads whose
// follow-up already passed.
func (r *leadRepository) CountFollowUps(ctx context.Context, filter domain.LeadFilter, now, until time.Time) (domain.FollowUpCounts, error) {
	where, args := leadFilterClause(filter)
	n := len(args)
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE next_follow_up > $%[1]d AND next_follow_up <= $%[2]d) AS due,
			COUNT(*) FILTER (WHERE next_follow_up <= $%[1]d AND status NOT IN ('converted', 'lost')) AS overdue
		FROM leads%[3]s`, n+1, n+2, where)
	args = append(args, now, until)

	var counts domain.FollowUpCounts
	err := r.db.GetContext(ctx, &counts, query, args...)
	return counts, err
}

func leadFilterClause(filter domain.LeadFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, s)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE '%%' || $%d || '%%' OR email ILIKE '%%' || $%d || '%%' OR company_name ILIKE '%%' || $%d || '%%')",
			n, n, n))
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.StartDate != nil {
		add("created_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("created_at <= $%d", *filter.EndDate)
	}
	if filter.AssignedTo != nil {
		add("assigned_to = $%d", *filter.AssignedTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
