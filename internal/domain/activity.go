package domain

import (
	"time"
)

type ActivityType string

const (
	ActivityLeadCreated       ActivityType = "lead_created"
	ActivityStatusChanged     ActivityType = "status_changed"
	ActivityNoteAdded         ActivityType = "note_added"
	ActivityEmailLogged       ActivityType = "email_logged"
	ActivityEmailSent         ActivityType = "email_sent"
	ActivityFollowUpScheduled ActivityType = "follow_up_scheduled"
	ActivityLeadReassigned    ActivityType = "lead_reassigned"
)

type Activity struct {
	ID           int64        `json:"id" db:"id"`
	LeadID       int64        `json:"lead_id" db:"lead_id"`
	UserID       int64        `json:"user_id" db:"user_id"`
	ActivityType ActivityType `json:"activity_type" db:"activity_type"`
	Description  *string      `json:"description" db:"description"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}
