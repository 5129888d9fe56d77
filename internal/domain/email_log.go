package domain

import (
	"time"
)

type EmailDirection string

const (
	EmailSent     EmailDirection = "sent"
	EmailReceived EmailDirection = "received"
)

type ResponseType string

const (
	ResponsePositive          ResponseType = "positive"
	ResponseNegative          ResponseType = "negative"
	ResponseFollowUpRequested ResponseType = "follow_up_requested"
	ResponseNoResponse        ResponseType = "no_response"
)

type EmailLog struct {
	ID                int64          `json:"id" db:"id"`
	LeadID            int64          `json:"lead_id" db:"lead_id"`
	UserID            int64          `json:"user_id" db:"user_id"`
	Direction         EmailDirection `json:"direction" db:"direction"`
	Subject           *string        `json:"subject" db:"subject"`
	Content           *string        `json:"content" db:"content"`
	ResponseType      *ResponseType  `json:"response_type" db:"response_type"`
	SentAt            time.Time      `json:"sent_at" db:"sent_at"`
	ScheduledFollowUp *time.Time     `json:"scheduled_follow_up" db:"scheduled_follow_up"`
	ProviderMessageID *string        `json:"provider_message_id,omitempty" db:"provider_message_id"`
}

type LogEmailInput struct {
	Direction         EmailDirection `json:"direction" validate:"required,oneof=sent received"`
	Subject           string         `json:"subject" validate:"required,max=200"`
	Content           string         `json:"content" validate:"required"`
	ResponseType      *ResponseType  `json:"response_type" validate:"omitempty,oneof=positive negative follow_up_requested no_response"`
	ScheduledFollowUp *time.Time     `json:"scheduled_follow_up"`
}

type SendEmailInput struct {
	Subject           string        `json:"subject" validate:"required,max=200"`
	Content           string        `json:"content" validate:"required"`
	ResponseType      *ResponseType `json:"response_type" validate:"omitempty,oneof=positive negative follow_up_requested no_response"`
	ScheduledFollowUp *time.Time    `json:"scheduled_follow_up"`
}

type SendEmailResult struct {
	Email     *EmailLog `json:"email"`
	MessageID string    `json:"message_id"`
}
