// Package domain contains the core data types for the Worklog application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a client or work category a user logs time against.
// ID and UserID are immutable once created; every other field can be
// changed through the editProject action. Projects are never hard-deleted.
type Project struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	ClientID     string    `json:"clientId,omitempty"` // free-text client reference
	Label        string    `json:"label,omitempty"`
	LunchMinutes int       `json:"lunchMinutes,omitempty"` // default lunch deduction for new records
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
