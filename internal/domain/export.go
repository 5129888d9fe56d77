package domain

import (
	"time"
)

// LeadExport points at a CSV snapshot of the leads an actor could see.
type LeadExport struct {
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expires_at"`
}
