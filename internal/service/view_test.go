package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkettu/worklog/backend/internal/domain"
	"github.com/mkettu/worklog/backend/internal/service"
)

func TestRender_Unauthenticated_EmptyViewNoCalls(t *testing.T) {
	// Every mock method field is nil: any repo call would panic the test.
	svc := newWorkService(&mockProjectRepo{}, &mockRecordRepo{})

	got, err := svc.Render(context.Background(), domain.Session{}, service.RenderRequest{})

	require.NoError(t, err)
	assert.Equal(t, domain.RenderedView{}, got)
}

func TestRender_ExplicitRecordsView(t *testing.T) {
	userID := uuid.New()
	project := projectFixture(userID)
	date := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	end := date.Add(12 * time.Hour)
	records := []domain.Record{
		{ID: uuid.New(), UserID: userID, ProjectID: project.ID, StartTime: date.Add(8 * time.Hour), EndTime: &end, LunchMinutes: 30},
	}

	svc := newWorkService(
		&mockProjectRepo{
			getByID: func(_ context.Context, id uuid.UUID) (domain.Project, error) {
				require.Equal(t, project.ID, id)
				return project, nil
			},
		},
		&mockRecordRepo{
			search: func(_ context.Context, uid, pid uuid.UUID, from, to time.Time) ([]domain.Record, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, project.ID, pid)
				assert.Equal(t, date, from, "search covers the full calendar day")
				assert.Equal(t, date.AddDate(0, 0, 1), to)
				return records, nil
			},
		},
	)

	got, err := svc.Render(context.Background(), sessionFor(userID), service.RenderRequest{
		View:      domain.ViewListRecords,
		ProjectID: project.ID,
		Date:      &date,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ViewListRecords, got.View)
	assert.Equal(t, "common.weekday.short.friday 27.2.2026", got.DateLabel)
	require.NotNil(t, got.Project)
	assert.Equal(t, project.ID, got.Project.ID)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "08:00", got.Records[0].StartLabel)
	assert.Equal(t, "12:00", got.Records[0].EndLabel)
	assert.Equal(t, "3.50", got.TotalHours, "4h elapsed minus 30min lunch")
}

func TestRender_PrefersLatestProject(t *testing.T) {
	userID := uuid.New()
	latest := projectFixture(userID)

	svc := newWorkService(
		&mockProjectRepo{
			latest: func(_ context.Context, uid uuid.UUID) (domain.Project, error) {
				require.Equal(t, userID, uid)
				return latest, nil
			},
		},
		&mockRecordRepo{
			search: func(_ context.Context, _, _ uuid.UUID, _, _ time.Time) ([]domain.Record, error) {
				return nil, nil
			},
		},
	)

	got, err := svc.Render(context.Background(), sessionFor(userID), service.RenderRequest{})

	require.NoError(t, err)
	assert.Equal(t, domain.ViewListRecords, got.View)
	require.NotNil(t, got.Project)
	assert.Equal(t, latest.ID, got.Project.ID)
	assert.NotNil(t, got.Records, "records views always carry a non-nil slice")
	assert.Equal(t, "0.00", got.TotalHours)
}

func TestRender_SoleProjectFallback(t *testing.T) {
	userID := uuid.New()
	sole := projectFixture(userID)

	svc := newWorkService(
		&mockProjectRepo{
			latest: func(_ context.Context, _ uuid.UUID) (domain.Project, error) {
				return domain.Project{}, domain.ErrNotFound
			},
			listByUserID: func(_ context.Context, _ uuid.UUID) ([]domain.Project, error) {
				return []domain.Project{sole}, nil
			},
		},
		&mockRecordRepo{
			search: func(_ context.Context, _, _ uuid.UUID, _, _ time.Time) ([]domain.Record, error) {
				return nil, nil
			},
		},
	)

	got, err := svc.Render(context.Background(), sessionFor(userID), service.RenderRequest{})

	require.NoError(t, err)
	assert.Equal(t, domain.ViewListRecords, got.View)
	require.NotNil(t, got.Project)
	assert.Equal(t, sole.ID, got.Project.ID)
}

func TestRender_ManyProjects_FallsBackToList(t *testing.T) {
	userID := uuid.New()
	projects := []domain.Project{projectFixture(userID), projectFixture(userID)}

	svc := newWorkService(
		&mockProjectRepo{
			latest: func(_ context.Context, _ uuid.UUID) (domain.Project, error) {
				return domain.Project{}, domain.ErrNotFound
			},
			listByUserID: func(_ context.Context, _ uuid.UUID) ([]domain.Project, error) {
				return projects, nil
			},
		},
		&mockRecordRepo{},
	)

	got, err := svc.Render(context.Background(), sessionFor(userID), service.RenderRequest{})

	require.NoError(t, err)
	assert.Equal(t, domain.ViewListProjects, got.View)
	assert.Len(t, got.Projects, 2)
}

func TestRender_NoProjects_EmptyList(t *testing.T) {
	svc := newWorkService(
		&mockProjectRepo{
			latest: func(_ context.Context, _ uuid.UUID) (domain.Project, error) {
				return domain.Project{}, domain.ErrNotFound
			},
			listByUserID: func(_ context.Context, _ uuid.UUID) ([]domain.Project, error) {
				return nil, nil
			},
		},
		&mockRecordRepo{},
	)

	got, err := svc.Render(context.Background(), sessionFor(uuid.New()), service.RenderRequest{})

	require.NoError(t, err)
	assert.Equal(t, domain.ViewListProjects, got.View)
	assert.NotNil(t, got.Projects)
	assert.Empty(t, got.Projects)
}

func TestRender_ExplicitProjectsView(t *testing.T) {
	userID := uuid.New()

	svc := newWorkService(
		&mockProjectRepo{
			listByUserID: func(_ context.Context, _ uuid.UUID) ([]domain.Project, error) {
				return []domain.Project{projectFixture(userID)}, nil
			},
		},
		&mockRecordRepo{},
	)

	got, err := svc.Render(context.Background(), sessionFor(userID), service.RenderRequest{
		View: domain.ViewListProjects,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ViewListProjects, got.View)
	assert.Len(t, got.Projects, 1)
}
