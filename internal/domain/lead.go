package domain

import (
	"encoding/json"
	"time"
)

type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new"
	LeadStatusInterested    LeadStatus = "interested"
	LeadStatusNotInterested LeadStatus = "not_interested"
	LeadStatusNoResponse    LeadStatus = "no_response"
	LeadStatusScheduled     LeadStatus = "scheduled"
	LeadStatusConverted     LeadStatus = "converted"
	LeadStatusLost          LeadStatus = "lost"
)

var LeadStatuses = []LeadStatus{
	LeadStatusNew, LeadStatusInterested, LeadStatusNotInterested, LeadStatusNoResponse,
	LeadStatusScheduled, LeadStatusConverted, LeadStatusLost,
}

func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusInterested, LeadStatusNotInterested, LeadStatusNoResponse,
		LeadStatusScheduled, LeadStatusConverted, LeadStatusLost:
		return true
	default:
		return false
	}
}

type Lead struct {
	ID              int64      `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Email           string     `json:"email" db:"email"`
	CompanyName     string     `json:"company_name" db:"company_name"`
	Industry        *string    `json:"industry" db:"industry"`
	Status          LeadStatus `json:"status" db:"status"`
	AssignedTo      *int64     `json:"assigned_to" db:"assigned_to"`
	LastContactDate *time.Time `json:"last_contact_date" db:"last_contact_date"`
	NextFollowUp    *time.Time `json:"next_follow_up" db:"next_follow_up"`
	CalendlyLink    *string    `json:"calendly_link" db:"calendly_link"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// IsOwnedBy reports whether userID is the lead's current owner.
func (l *Lead) IsOwnedBy(userID int64) bool {
	return l.AssignedTo != nil && *l.AssignedTo == userID
}

type CreateLeadInput struct {
	Name         string     `json:"name" validate:"required,max=100"`
	Email        string     `json:"email" validate:"required,email,max=120"`
	CompanyName  string     `json:"company_name" validate:"required,max=100"`
	Industry     *string    `json:"industry" validate:"omitempty,max=50"`
	CalendlyLink *string    `json:"calendly_link" validate:"omitempty,url,max=255"`
	NextFollowUp *time.Time `json:"next_follow_up"`
}

type UpdateLeadInput struct {
	Name         *string      `json:"name" validate:"omitempty,min=1,max=100"`
	Email        *string      `json:"email" validate:"omitempty,email,max=120"`
	CompanyName  *string      `json:"company_name" validate:"omitempty,min=1,max=100"`
	Industry     *string      `json:"industry" validate:"omitempty,max=50"`
	Status       *LeadStatus  `json:"status" validate:"omitempty,oneof=new interested not_interested no_response scheduled converted lost"`
	AssignedTo   NullableInt  `json:"assigned_to"`
	CalendlyLink *string      `json:"calendly_link" validate:"omitempty,url,max=255"`
	NextFollowUp NullableTime `json:"next_follow_up"`
}

type LeadFilter struct {
	Search     string
	Status     LeadStatus
	StartDate  *time.Time
	EndDate    *time.Time
	AssignedTo *int64
}

type FollowUpCounts struct {
	Due     int64 `json:"due" db:"due"`
	Overdue int64 `json:"overdue" db:"overdue"`
}

type NullableTime struct {
	Value *time.Time
	Set   bool
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

type NullableInt struct {
	Value *int64
	Set   bool
}

func (n *NullableInt) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
