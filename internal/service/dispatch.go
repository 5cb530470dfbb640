package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkettu/worklog/backend/internal/domain"
	"github.com/mkettu/worklog/backend/internal/repo"
)

// Dispatch maps one inbound action to at most one persistence mutation and
// a view-selection result. Validation runs before any repo call, so a
// rejected request leaves no partial state behind. Unrecognized or absent
// actions return the zero ViewResult; the renderer then falls back to its
// default view resolution (see Render).
func (s *WorkService) Dispatch(ctx context.Context, sess domain.Session, req ActionRequest) (domain.ViewResult, error) {
	if !sess.Authenticated() {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.Dispatch: %w", domain.ErrUnauthorized)
	}

	switch req.Action {

	case ActionListProjects:
		return domain.ViewResult{View: domain.ViewListProjects, Date: req.Date}, nil

	case ActionListRecords:
		return s.listRecords(ctx, sess, req)

	case ActionCreateProject:
		return s.createProject(ctx, sess, req)

	case ActionEditProject:
		return s.editProject(ctx, sess, req)

	case ActionStartNewRecord:
		return s.startNewRecord(ctx, sess, req)

	case ActionStopRecord:
		return s.stopRecord(ctx, sess, req)

	case ActionEditRecord:
		return s.editRecord(ctx, sess, req)

	case ActionDeleteRecord:
		return s.deleteRecord(ctx, sess, req)
	}

	return domain.ViewResult{}, nil
}

// listRecords resolves the records view for one project and day. Without a
// project reference it degrades to the project list, keeping the date hint.
func (s *WorkService) listRecords(ctx context.Context, sess domain.Session, req ActionRequest) (domain.ViewResult, error) {
	if req.Project == nil || req.Project.ID == uuid.Nil {
		return domain.ViewResult{View: domain.ViewListProjects, Date: req.Date}, nil
	}

	project, err := s.fetchOwnedProject(ctx, sess, req.Project.ID)
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.listRecords: %w", err)
	}

	return domain.ViewResult{View: domain.ViewListRecords, Date: req.Date, Project: &project}, nil
}

// createProject validates the three project fields and persists a new
// project. The created project is not selected; the project list is shown.
func (s *WorkService) createProject(ctx context.Context, sess domain.Session, req ActionRequest) (domain.ViewResult, error) {
	label, clientID, lunchMinutes, err := projectFields(req)
	if err != nil {
		return domain.ViewResult{}, err
	}

	if _, err := s.projects.Create(ctx, sess.UserID, label, clientID, lunchMinutes); err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.createProject: %w", err)
	}

	return domain.ViewResult{View: domain.ViewListProjects}, nil
}

// editProject overwrites the three mutable project fields.
func (s *WorkService) editProject(ctx context.Context, sess domain.Session, req ActionRequest) (domain.ViewResult, error) {
	if req.Project == nil || req.Project.ID == uuid.Nil {
		return domain.ViewResult{}, fmt.Errorf("%w: project is required", domain.ErrValidation)
	}

	label, clientID, lunchMinutes, err := projectFields(req)
	if err != nil {
		return domain.ViewResult{}, err
	}

	if _, err := s.fetchOwnedProject(ctx, sess, req.Project.ID); err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.editProject: %w", err)
	}

	_, err = s.projects.Update(ctx, req.Project.ID, repo.ProjectChanges{
		Label:        label,
		ClientID:     clientID,
		LunchMinutes: lunchMinutes,
	})
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.editProject: %w", err)
	}

	return domain.ViewResult{View: domain.ViewListProjects}, nil
}

// startNewRecord opens a new record on the project. On the current day the
// record starts "now" and stays open; on any other day it is created as an
// 08:00 placeholder with start == end, to be adjusted via editRecord.
func (s *WorkService) startNewRecord(ctx context.Context, sess domain.Session, req ActionRequest) (domain.ViewResult, error) {
	if req.Project == nil || req.Project.ID == uuid.Nil {
		return domain.ViewResult{}, fmt.Errorf("%w: project is required", domain.ErrValidation)
	}

	project, err := s.fetchOwnedProject(ctx, sess, req.Project.ID)
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.startNewRecord: %w", err)
	}

	date := req.Date
	rec := repo.NewRecord{
		UserID:       sess.UserID,
		ProjectID:    project.ID,
		LunchMinutes: project.LunchMinutes,
	}

	if domain.SameDay(date, s.now()) {
		// Only one record may be running per project at a time.
		_, err := s.records.Open(ctx, sess.UserID, project.ID)
		switch {
		case err == nil:
			return domain.ViewResult{}, fmt.Errorf("%w: project already has an open record", domain.ErrValidation)
		case !errors.Is(err, domain.ErrNotFound):
			return domain.ViewResult{}, fmt.Errorf("service.WorkService.startNewRecord: %w", err)
		}
		rec.StartTime = domain.Now()
	} else {
		start := domain.MorningOf(*date)
		date = &start
		rec.StartTime = domain.At(start)
		rec.EndTime = domain.At(start)
	}

	if _, err := s.records.Create(ctx, rec); err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.startNewRecord: %w", err)
	}

	snapshot, err := s.projects.GetByID(ctx, project.ID)
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.startNewRecord: %w", err)
	}

	return domain.ViewResult{View: domain.ViewListRecords, Date: date, Project: &snapshot}, nil
}

// stopRecord closes an open record at the current time.
func (s *WorkService) stopRecord(ctx context.Context, sess domain.Session, req ActionRequest) (domain.ViewResult, error) {
	if req.Record == nil {
		return domain.ViewResult{}, fmt.Errorf("%w: no current period", domain.ErrValidation)
	}
	if req.Record.ID == uuid.Nil {
		return domain.ViewResult{}, fmt.Errorf("%w: no current period id", domain.ErrValidation)
	}

	if _, err := s.fetchOwnedRecord(ctx, sess, req.Record.ID); err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.stopRecord: %w", err)
	}

	end := domain.Now()
	updated, err := s.records.Update(ctx, req.Record.ID, repo.RecordChanges{EndTime: &end})
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.stopRecord: %w", err)
	}

	project, err := s.projects.GetByID(ctx, updated.ProjectID)
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.stopRecord: %w", err)
	}

	return domain.ViewResult{View: domain.ViewListRecords, Date: req.Date, Project: &project}, nil
}

// editRecord overwrites start, end, description, and lunch wholesale. The
// resulting view is keyed by the record's new start date, which may differ
// from the day the form was showing.
func (s *WorkService) editRecord(ctx context.Context, sess domain.Session, req ActionRequest) (domain.ViewResult, error) {
	if req.Record == nil {
		return domain.ViewResult{}, fmt.Errorf("%w: record is required", domain.ErrValidation)
	}
	if req.Record.ID == uuid.Nil {
		return domain.ViewResult{}, fmt.Errorf("%w: record id is required", domain.ErrValidation)
	}

	startTime, err := requireTime(req.StartTime, "startTime")
	if err != nil {
		return domain.ViewResult{}, err
	}
	endTime, err := requireTime(req.EndTime, "endTime")
	if err != nil {
		return domain.ViewResult{}, err
	}
	description, err := requireString(req.Description, "description")
	if err != nil {
		return domain.ViewResult{}, err
	}
	lunchMinutes, err := requireLunchMinutes(req.LunchMinutes)
	if err != nil {
		return domain.ViewResult{}, err
	}

	if _, err := s.fetchOwnedRecord(ctx, sess, req.Record.ID); err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.editRecord: %w", err)
	}

	end := domain.At(endTime)
	updated, err := s.records.Update(ctx, req.Record.ID, repo.RecordChanges{
		StartTime:    &startTime,
		EndTime:      &end,
		Description:  &description,
		LunchMinutes: &lunchMinutes,
	})
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.editRecord: %w", err)
	}

	project, err := s.projects.GetByID(ctx, updated.ProjectID)
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.editRecord: %w", err)
	}

	return domain.ViewResult{View: domain.ViewListRecords, Date: &updated.StartTime, Project: &project}, nil
}

// deleteRecord soft-deletes a record. The view stays on the day of the
// record's original start time.
func (s *WorkService) deleteRecord(ctx context.Context, sess domain.Session, req ActionRequest) (domain.ViewResult, error) {
	if req.Record == nil {
		return domain.ViewResult{}, fmt.Errorf("%w: no current period", domain.ErrValidation)
	}
	if req.Record.ID == uuid.Nil {
		return domain.ViewResult{}, fmt.Errorf("%w: no current period id", domain.ErrValidation)
	}

	original, err := s.fetchOwnedRecord(ctx, sess, req.Record.ID)
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.deleteRecord: %w", err)
	}

	deleted := true
	if _, err := s.records.Update(ctx, req.Record.ID, repo.RecordChanges{Deleted: &deleted}); err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.deleteRecord: %w", err)
	}

	project, err := s.projects.GetByID(ctx, original.ProjectID)
	if err != nil {
		return domain.ViewResult{}, fmt.Errorf("service.WorkService.deleteRecord: %w", err)
	}

	date := original.StartTime
	return domain.ViewResult{View: domain.ViewListRecords, Date: &date, Project: &project}, nil
}

// projectFields validates the shared createProject/editProject payload.
func projectFields(req ActionRequest) (label, clientID string, lunchMinutes int, err error) {
	label, err = requireString(req.Label, "label")
	if err != nil {
		return "", "", 0, err
	}
	if label == "" {
		return "", "", 0, fmt.Errorf("%w: label must not be empty", domain.ErrValidation)
	}
	clientID, err = requireString(req.ClientID, "clientId")
	if err != nil {
		return "", "", 0, err
	}
	lunchMinutes, err = requireLunchMinutes(req.LunchMinutes)
	if err != nil {
		return "", "", 0, err
	}
	return label, clientID, lunchMinutes, nil
}
