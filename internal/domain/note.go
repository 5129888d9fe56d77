package domain

import (
	"time"
)

type Note struct {
	ID        int64     `json:"id" db:"id"`
	LeadID    int64     `json:"lead_id" db:"lead_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Author *NoteAuthor `json:"author,omitempty" db:"-"`
}

type NoteAuthor struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CreateNoteInput struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

type UpdateNoteInput struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
}
