package domain

import (
	"time"
)

const (
	SettingGlobalEmail     = "global_email"
	SettingGlobalEmailName = "global_email_name"
)

type Setting struct {
	ID          int64     `json:"id" db:"id"`
	Key         string    `json:"key" db:"key"`
	Value       *string   `json:"value" db:"value"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (s *Setting) StringValue() string {
	if s == nil || s.Value == nil {
		return ""
	}
	return *s.Value
}

type DefaultSetting struct {
	Key         string
	Value       string
	Description string
}

func DefaultSettings() []DefaultSetting {
	return []DefaultSetting{
		{Key: SettingGlobalEmail, Value: "", Description: "Global email address used for sending emails"},
		{Key: SettingGlobalEmailName, Value: "CRM System", Description: "Display name for the global email address"},
	}
}
