package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkettu/worklog/backend/internal/domain"
	"github.com/mkettu/worklog/backend/internal/repo"
)

// recordTestEnv bundles the two repos on one rolled-back transaction plus a
// project to hang records on (records carry a foreign key to projects).
type recordTestEnv struct {
	projects repo.ProjectRepo
	records  repo.RecordRepo
	userID   uuid.UUID
	project  domain.Project
}

func newRecordTestEnv(t *testing.T) recordTestEnv {
	t.Helper()
	tx := newTestTx(t)
	env := recordTestEnv{
		projects: repo.NewProjectRepo(tx),
		records:  repo.NewRecordRepo(tx),
		userID:   uuid.New(),
	}

	project, err := env.projects.Create(context.Background(), env.userID, "Tracked", "acme", 30)
	require.NoError(t, err, "create fixture project")
	env.project = project

	return env
}

func TestRecordRepo_Create(t *testing.T) {
	env := newRecordTestEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	got, err := env.records.Create(ctx, repo.NewRecord{
		UserID:       env.userID,
		ProjectID:    env.project.ID,
		StartTime:    domain.At(start),
		EndTime:      domain.At(end),
		Description:  "code review",
		LunchMinutes: 30,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, env.userID, got.UserID)
	assert.Equal(t, env.project.ID, got.ProjectID)
	assert.True(t, got.StartTime.Equal(start), "StartTime mismatch")
	require.NotNil(t, got.EndTime)
	assert.True(t, got.EndTime.Equal(end), "EndTime mismatch")
	assert.Equal(t, "code review", got.Description)
	assert.Equal(t, 30, got.LunchMinutes)
	assert.False(t, got.Deleted)
}

func TestRecordRepo_Create_NowSentinel(t *testing.T) {
	env := newRecordTestEnv(t)
	ctx := context.Background()

	got, err := env.records.Create(ctx, repo.NewRecord{
		UserID:    env.userID,
		ProjectID: env.project.ID,
		StartTime: domain.Now(),
	})

	require.NoError(t, err)
	// The database clock resolved the sentinel; the record is open.
	assert.WithinDuration(t, time.Now(), got.StartTime, time.Minute)
	assert.Nil(t, got.EndTime, "no end stamp means an open record")
}

func TestRecordRepo_Create_MissingStart(t *testing.T) {
	env := newRecordTestEnv(t)

	_, err := env.records.Create(context.Background(), repo.NewRecord{
		UserID:    env.userID,
		ProjectID: env.project.ID,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordRepo_GetByID_NotFound(t *testing.T) {
	env := newRecordTestEnv(t)

	_, err := env.records.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordRepo_Update_PartialPatch(t *testing.T) {
	env := newRecordTestEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	created, err := env.records.Create(ctx, repo.NewRecord{
		UserID:       env.userID,
		ProjectID:    env.project.ID,
		StartTime:    domain.At(start),
		EndTime:      domain.At(start.Add(8 * time.Hour)),
		Description:  "original",
		LunchMinutes: 30,
	})
	require.NoError(t, err)

	desc := "amended"
	got, err := env.records.Update(ctx, created.ID, repo.RecordChanges{Description: &desc})

	require.NoError(t, err)
	assert.Equal(t, "amended", got.Description)
	// Untouched fields keep their stored values.
	assert.True(t, got.StartTime.Equal(created.StartTime))
	require.NotNil(t, got.EndTime)
	assert.True(t, got.EndTime.Equal(*created.EndTime))
	assert.Equal(t, 30, got.LunchMinutes)
}

func TestRecordRepo_Update_EndNowClosesRecord(t *testing.T) {
	env := newRecordTestEnv(t)
	ctx := context.Background()

	created, err := env.records.Create(ctx, repo.NewRecord{
		UserID:    env.userID,
		ProjectID: env.project.ID,
		StartTime: domain.Now(),
	})
	require.NoError(t, err)
	require.Nil(t, created.EndTime)

	now := domain.Now()
	got, err := env.records.Update(ctx, created.ID, repo.RecordChanges{EndTime: &now})

	require.NoError(t, err)
	require.NotNil(t, got.EndTime)
	assert.WithinDuration(t, time.Now(), *got.EndTime, time.Minute)
}

func TestRecordRepo_Update_SoftDelete(t *testing.T) {
	env := newRecordTestEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	created, err := env.records.Create(ctx, repo.NewRecord{
		UserID:    env.userID,
		ProjectID: env.project.ID,
		StartTime: domain.At(start),
		EndTime:   domain.At(start.Add(time.Hour)),
	})
	require.NoError(t, err)

	deleted := true
	got, err := env.records.Update(ctx, created.ID, repo.RecordChanges{Deleted: &deleted})
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	// Soft-deleted rows are still addressable by ID but vanish from searches.
	_, err = env.records.GetByID(ctx, created.ID)
	require.NoError(t, err)

	found, err := env.records.Search(ctx, env.userID, env.project.ID,
		start.Add(-time.Hour), start.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRecordRepo_Update_NotFound(t *testing.T) {
	env := newRecordTestEnv(t)

	desc := "x"
	_, err := env.records.Update(context.Background(), uuid.New(), repo.RecordChanges{Description: &desc})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordRepo_Search_HalfOpenWindow(t *testing.T) {
	env := newRecordTestEnv(t)
	ctx := context.Background()

	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	nextDay := dayStart.AddDate(0, 0, 1)

	inside1, err := env.records.Create(ctx, repo.NewRecord{
		UserID: env.userID, ProjectID: env.project.ID,
		StartTime: domain.At(dayStart.Add(8 * time.Hour)),
		EndTime:   domain.At(dayStart.Add(12 * time.Hour)),
	})
	require.NoError(t, err)
	inside2, err := env.records.Create(ctx, repo.NewRecord{
		UserID: env.userID, ProjectID: env.project.ID,
		StartTime: domain.At(dayStart.Add(13 * time.Hour)),
		EndTime:   domain.At(dayStart.Add(17 * time.Hour)),
	})
	require.NoError(t, err)

	// On the upper boundary — excluded by the half-open interval.
	_, err = env.records.Create(ctx, repo.NewRecord{
		UserID: env.userID, ProjectID: env.project.ID,
		StartTime: domain.At(nextDay),
	})
	require.NoError(t, err)

	got, err := env.records.Search(ctx, env.userID, env.project.ID, dayStart, nextDay)

	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by start time ascending.
	assert.Equal(t, inside1.ID, got[0].ID)
	assert.Equal(t, inside2.ID, got[1].ID)
}

func TestRecordRepo_Search_ScopedToProject(t *testing.T) {
	env := newRecordTestEnv(t)
	ctx := context.Background()

	other, err := env.projects.Create(ctx, env.userID, "Other", "acme", 0)
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err = env.records.Create(ctx, repo.NewRecord{
		UserID: env.userID, ProjectID: other.ID,
		StartTime: domain.At(start),
	})
	require.NoError(t, err)

	got, err := env.records.Search(ctx, env.userID, env.project.ID,
		start.Add(-time.Hour), start.Add(time.Hour))

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordRepo_Open(t *testing.T) {
	env := newRecordTestEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	_, err := env.records.Create(ctx, repo.NewRecord{
		UserID: env.userID, ProjectID: env.project.ID,
		StartTime: domain.At(start),
		EndTime:   domain.At(start.Add(4 * time.Hour)),
	})
	require.NoError(t, err)

	open, err := env.records.Create(ctx, repo.NewRecord{
		UserID: env.userID, ProjectID: env.project.ID,
		StartTime: domain.At(start.Add(5 * time.Hour)),
	})
	require.NoError(t, err)

	got, err := env.records.Open(ctx, env.userID, env.project.ID)

	require.NoError(t, err)
	assert.Equal(t, open.ID, got.ID)
}

func TestRecordRepo_Open_NoneRunning(t *testing.T) {
	env := newRecordTestEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	_, err := env.records.Create(ctx, repo.NewRecord{
		UserID: env.userID, ProjectID: env.project.ID,
		StartTime: domain.At(start),
		EndTime:   domain.At(start.Add(time.Hour)),
	})
	require.NoError(t, err)

	_, err = env.records.Open(ctx, env.userID, env.project.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
