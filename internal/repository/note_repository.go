package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"leadtrack-crm/internal/domain"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, id int64) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	ListByLead(ctx context.Context, leadID int64) ([]domain.Note, error)
}

type noteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (lead_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		note.LeadID, note.UserID, note.Content,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var note domain.Note
	query := `SELECT id, lead_id, user_id, content, created_at, updated_at FROM notes WHERE id = $1`

	err := r.db.GetContext(ctx, &note, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	query := `
		UPDATE notes
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, note.ID, note.Content).Scan(&note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("note %d", note.ID)
	}
	return err
}

type noteRow struct {
	ID              int64     `db:"id"`
	LeadID          int64     `db:"lead_id"`
	UserID          int64     `db:"user_id"`
	Content         string    `db:"content"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	AuthorFirstName string    `db:"author_first_name"`
	AuthorLastName  string    `db:"author_last_name"`
}

func (r *noteRepository) ListByLead(ctx context.Context, leadID int64) ([]domain.Note, error) {
	query := `
		SELECT
			n.id, n.lead_id, n.user_id, n.content, n.created_at, n.updated_at,
			u.first_name AS author_first_name, u.last_name AS author_last_name
		FROM notes n
		INNER JOIN users u ON n.user_id = u.id
		WHERE n.lead_id = $1
		ORDER BY n.created_at DESC`

	var rows []noteRow
	if err := r.db.SelectContext(ctx, &rows, query, leadID); err != nil {
		return nil, err
	}

	notes := make([]domain.Note, len(rows))
	for i, row := range rows {
		notes[i] = domain.Note{
			ID:        row.ID,
			LeadID:    row.LeadID,
			UserID:    row.UserID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			Author: &domain.NoteAuthor{
				ID:        row.UserID,
				FirstName: row.AuthorFirstName,
				LastName:  row.AuthorLastName,
			},
		}
	}
	return notes, nil
}
