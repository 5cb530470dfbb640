package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkettu/worklog/backend/internal/domain"
)

// Render picks the view to show when no action was dispatched and loads
// its data. The preference order is strict, each step short-circuiting:
//
//  1. an explicitly requested view (with project, for records views)
//  2. the user's most recently active project
//  3. the user's sole project, when exactly one exists
//  4. the project list
//
// Unauthenticated callers get the empty view and no repo call is made.
func (s *WorkService) Render(ctx context.Context, sess domain.Session, req RenderRequest) (domain.RenderedView, error) {
	if !sess.Authenticated() {
		return domain.RenderedView{}, nil
	}

	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	if req.View == domain.ViewListProjects {
		return s.projectsView(ctx, sess)
	}

	if req.View == domain.ViewListRecords && req.ProjectID != uuid.Nil {
		project, err := s.fetchOwnedProject(ctx, sess, req.ProjectID)
		if err != nil {
			return domain.RenderedView{}, fmt.Errorf("service.WorkService.Render: %w", err)
		}
		return s.recordsView(ctx, sess, project, date)
	}

	latest, err := s.projects.Latest(ctx, sess.UserID)
	if err == nil {
		return s.recordsView(ctx, sess, latest, date)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.RenderedView{}, fmt.Errorf("service.WorkService.Render: %w", err)
	}

	projects, err := s.projects.ListByUserID(ctx, sess.UserID)
	if err != nil {
		return domain.RenderedView{}, fmt.Errorf("service.WorkService.Render: %w", err)
	}
	if len(projects) == 1 {
		return s.recordsView(ctx, sess, projects[0], date)
	}

	if projects == nil {
		projects = []domain.Project{}
	}
	return domain.RenderedView{View: domain.ViewListProjects, Projects: projects}, nil
}

// projectsView loads the project-list view.
func (s *WorkService) projectsView(ctx context.Context, sess domain.Session) (domain.RenderedView, error) {
	projects, err := s.projects.ListByUserID(ctx, sess.UserID)
	if err != nil {
		return domain.RenderedView{}, fmt.Errorf("service.WorkService.projectsView: %w", err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return domain.RenderedView{View: domain.ViewListProjects, Projects: projects}, nil
}

// recordsView loads one project's records for date's calendar day and
// computes the day's worked-hours total.
func (s *WorkService) recordsView(ctx context.Context, sess domain.Session, project domain.Project, date time.Time) (domain.RenderedView, error) {
	records, err := s.records.Search(ctx, sess.UserID, project.ID, domain.StartOfDay(date), domain.EndOfDay(date))
	if err != nil {
		return domain.RenderedView{}, fmt.Errorf("service.WorkService.recordsView: %w", err)
	}
	items := make([]domain.RecordItem, 0, len(records))
	for _, rec := range records {
		items = append(items, domain.NewRecordItem(rec))
	}

	return domain.RenderedView{
		View:       domain.ViewListRecords,
		Date:       &date,
		DateLabel:  domain.WeekdayKey(date) + " " + domain.DateLabel(date),
		Project:    &project,
		Records:    items,
		TotalHours: domain.FormatHours(domain.SumHours(records, s.now())),
	}, nil
}
