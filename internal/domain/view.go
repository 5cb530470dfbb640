package domain

import (
	"time"

	"github.com/google/uuid"
)

// ViewName identifies the screen the renderer should show next.
type ViewName string

const (
	// ViewNone means no view was selected; the renderer falls back to its
	// default view resolution (latest project, sole project, project list).
	ViewNone ViewName = ""

	// ViewListProjects shows the user's project list.
	ViewListProjects ViewName = "listProjects"

	// ViewListRecords shows one project's records for a single day.
	ViewListRecords ViewName = "listRecords"
)

// Session identifies the authenticated caller. The zero value is an
// unauthenticated session.
type Session struct {
	UserID uuid.UUID
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// ViewResult is the outcome of dispatching a user action: which view to
// show next, optionally pinned to a date and a project.
type ViewResult struct {
	View    ViewName   `json:"view,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	Project *Project   `json:"project,omitempty"`
}

// RenderedView is the full view-model handed to the rendering layer.
// Exactly one of Projects or Records is populated, matching View.
// The zero value is the empty view shown to unauthenticated callers.
type RenderedView struct {
	View       ViewName     `json:"view,omitempty"`
	Date       *time.Time   `json:"date,omitempty"`
	DateLabel  string       `json:"dateLabel,omitempty"` // e.g. "common.weekday.short.monday 2.3.2026"
	Project    *Project     `json:"project,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`
	Records    []RecordItem `json:"records,omitempty"`
	TotalHours string       `json:"totalHours,omitempty"` // two-decimal sum for records views
}

// RecordItem decorates a record with preformatted clock labels so the
// renderer never has to do its own time formatting.
type RecordItem struct {
	Record
	StartLabel string `json:"startLabel"`
	EndLabel   string `json:"endLabel,omitempty"` // empty while the record is open
}

// NewRecordItem wraps a record with its display labels.
func NewRecordItem(r Record) RecordItem {
	item := RecordItem{Record: r, StartLabel: ClockLabel(r.StartTime)}
	if r.EndTime != nil {
		item.EndLabel = ClockLabel(*r.EndTime)
	}
	return item
}
