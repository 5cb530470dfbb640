// Package service contains the business logic for the Worklog API: the
// action dispatcher that maps each inbound user action to one persistence
// mutation plus a view-selection result, and the view selector that picks
// a default screen when no action is given. No SQL lives here — the
// service depends on repo interfaces, not implementations.
package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/mkettu/worklog/backend/internal/domain"
)

// Action names the operation requested by the client form.
type Action string

const (
	ActionCreateProject  Action = "createProject"
	ActionEditProject    Action = "editProject"
	ActionListProjects   Action = "listProjects"
	ActionListRecords    Action = "listRecords"
	ActionStartNewRecord Action = "startNewRecord"
	ActionStopRecord     Action = "stopRecord"
	ActionEditRecord     Action = "editRecord"
	ActionDeleteRecord   Action = "deleteRecord"
)

// ProjectRef identifies a project inside an action payload.
type ProjectRef struct {
	ID uuid.UUID `json:"id"`
}

// RecordRef identifies a record inside an action payload.
type RecordRef struct {
	ID uuid.UUID `json:"id"`
}

// ActionRequest is the decoded payload of one POST /work call. Pointer
// fields distinguish "absent" from zero values so validation can name
// exactly which required field is missing.
type ActionRequest struct {
	Action       Action      `json:"action"`
	Date         *time.Time  `json:"date,omitempty"`
	Label        *string     `json:"label,omitempty"`
	ClientID     *string     `json:"clientId,omitempty"`
	LunchMinutes *int        `json:"lunchMinutes,omitempty"`
	StartTime    *time.Time  `json:"startTime,omitempty"`
	EndTime      *time.Time  `json:"endTime,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Project      *ProjectRef `json:"project,omitempty"`
	Record       *RecordRef  `json:"record,omitempty"`
}

// RenderRequest selects the data for a fresh view render (no action).
type RenderRequest struct {
	View      domain.ViewName
	ProjectID uuid.UUID
	Date      *time.Time
}
