package domain

import (
	"time"
)

type Notification struct {
	ID           int64              `json:"id" db:"id"`
	UserID       int64              `json:"user_id" db:"user_id"`
	LeadID       *int64             `json:"lead_id" db:"lead_id"`
	Type         NotificationType   `json:"type" db:"type"`
	Title        string             `json:"title" db:"title"`
	Message      string             `json:"message" db:"message"`
	Status       NotificationStatus `json:"status" db:"status"`
	ScheduledFor *time.Time         `json:"scheduled_for" db:"scheduled_for"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	LeadName     *string            `json:"lead_name" db:"lead_name"`
}

type NotificationType string

const (
	NotifFollowUp      NotificationType = "follow_up"
	NotifMeeting       NotificationType = "meeting"
	NotifEmailResponse NotificationType = "email_response"
	NotifTask          NotificationType = "task"
)

type NotificationStatus string

const (
	NotifUnread    NotificationStatus = "unread"
	NotifRead      NotificationStatus = "read"
	NotifDismissed NotificationStatus = "dismissed"
)

// CanTransition reports whether a notification may move from s to next.
// Dismissed is terminal; read never goes back to unread.
func (s NotificationStatus) CanTransition(next NotificationStatus) bool {
	switch s {
	case NotifUnread:
		return next == NotifRead || next == NotifDismissed
	case NotifRead:
		return next == NotifRead || next == NotifDismissed
	default:
		return false
	}
}

// NotificationStatusFilter selects notifications by status; "all" disables filtering.
type NotificationStatusFilter string

const NotifFilterAll NotificationStatusFilter = "all"

func (f NotificationStatusFilter) IsValid() bool {
	switch NotificationStatus(f) {
	case NotifUnread, NotifRead, NotifDismissed:
		return true
	}
	return f == NotifFilterAll
}
