package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkettu/worklog/backend/internal/domain"
	"github.com/mkettu/worklog/backend/internal/repo"
)

// WorkService implements the action dispatcher and view selector.
// Repos and the clock are injected at construction so tests can run with
// doubles and a fixed time.
type WorkService struct {
	projects repo.ProjectRepo
	records  repo.RecordRepo
	now      func() time.Time
}

// NewWorkService constructs a WorkService backed by the provided repos.
// Pass time.Now for now outside of tests.
func NewWorkService(projects repo.ProjectRepo, records repo.RecordRepo, now func() time.Time) *WorkService {
	if now == nil {
		now = time.Now
	}
	return &WorkService{projects: projects, records: records, now: now}
}

// fetchOwnedProject loads a project and verifies it belongs to the caller.
// Every mutation that touches an existing project goes through this gate.
func (s *WorkService) fetchOwnedProject(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if project.UserID != sess.UserID {
		return domain.Project{}, fmt.Errorf("%w: project does not belong to caller", domain.ErrUnauthorized)
	}
	return project, nil
}

// fetchOwnedRecord loads a record and verifies it belongs to the caller.
func (s *WorkService) fetchOwnedRecord(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Record, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return domain.Record{}, err
	}
	if record.UserID != sess.UserID {
		return domain.Record{}, fmt.Errorf("%w: record does not belong to caller", domain.ErrUnauthorized)
	}
	return record, nil
}

// requireString returns the value of a required string field, or a
// validation error naming the field when it is absent.
func requireString(v *string, field string) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	return *v, nil
}

// requireLunchMinutes returns the value of a required lunchMinutes field,
// rejecting absent and negative values.
func requireLunchMinutes(v *int) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: lunchMinutes is required", domain.ErrValidation)
	}
	if *v < 0 {
		return 0, fmt.Errorf("%w: lunchMinutes must not be negative", domain.ErrValidation)
	}
	return *v, nil
}

// requireTime returns the value of a required timestamp field.
func requireTime(v *time.Time, field string) (time.Time, error) {
	if v == nil {
		return time.Time{}, fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	return *v, nil
}
