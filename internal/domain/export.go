package domain

import "time"

// ExportRow is a single row in the full worklog export.
// It is a flat, denormalized view: one row per record, with the owning
// project's fields repeated on every row.
type ExportRow struct {
	// Project fields — repeated for every record of the project.
	ProjectID    string
	ProjectLabel string
	ClientID     string

	// Record fields.
	RecordID     string
	Date         string // "2006-01-02" formatted start date
	StartTime    time.Time
	EndTime      *time.Time // nil while the record is open
	Description  string
	LunchMinutes int
	Hours        string // worked hours with two-decimal precision
}
