package domain

import (
	"time"

	"github.com/google/uuid"
)

// Record represents a single time period worked on a project.
// EndTime is nil while the user is still working ("open" record).
// Deleted records are soft-deleted: the flag is persisted and the record
// stops appearing in searches, but the row is never removed.
type Record struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"userId"`
	ProjectID    uuid.UUID  `json:"projectId"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Description  string     `json:"description,omitempty"`
	LunchMinutes int        `json:"lunchMinutes,omitempty"`
	Deleted      bool       `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Open reports whether the record is still running (no end time).
func (r Record) Open() bool {
	return r.EndTime == nil
}

// Hours returns the worked hours for the record: elapsed time minus the
// lunch deduction, never negative. Open records are measured against the
// given instant, so the value grows as time advances.
func (r Record) Hours(at time.Time) float64 {
	end := at
	if r.EndTime != nil {
		end = *r.EndTime
	}
	hours := end.Sub(r.StartTime).Hours() - float64(r.LunchMinutes)/60
	if hours < 0 {
		return 0
	}
	return hours
}

// SumHours totals the worked hours of all records, measuring open records
// against the given instant.
func SumHours(records []Record, at time.Time) float64 {
	var total float64
	for _, r := range records {
		total += r.Hours(at)
	}
	return total
}
