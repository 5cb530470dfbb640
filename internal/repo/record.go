package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mkettu/worklog/backend/internal/domain"
)

// NewRecord carries the fields for creating a record. StartTime is required
// and may be the "now" sentinel; a zero EndTime creates an open record.
type NewRecord struct {
	UserID       uuid.UUID
	ProjectID    uuid.UUID
	StartTime    domain.Stamp
	EndTime      domain.Stamp
	Description  string
	LunchMinutes int
}

// RecordChanges is a partial patch for an existing record. Nil fields are
// left unchanged. EndTime may carry the "now" sentinel (used by stopRecord).
type RecordChanges struct {
	StartTime    *time.Time
	EndTime      *domain.Stamp
	Description  *string
	LunchMinutes *int
	Deleted      *bool
}

// RecordRepo defines the persistence operations for Records.
type RecordRepo interface {
	// Create inserts a new record and returns the persisted row. "Now"
	// stamps are resolved by the database clock at execution time.
	Create(ctx context.Context, rec NewRecord) (domain.Record, error)

	// GetByID retrieves a single record by its UUID primary key.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error)

	// Update applies a partial patch and returns the updated record.
	// Returns domain.ErrNotFound if no record with that ID exists.
	Update(ctx context.Context, id uuid.UUID, changes RecordChanges) (domain.Record, error)

	// Search returns the user's non-deleted records for a project whose
	// start_time falls within [from, to), ordered by start_time ascending.
	Search(ctx context.Context, userID, projectID uuid.UUID, from, to time.Time) ([]domain.Record, error)

	// Open returns the newest non-deleted record with no end time for the
	// given user and project. Returns domain.ErrNotFound when none exists.
	Open(ctx context.Context, userID, projectID uuid.UUID) (domain.Record, error)
}

// pgRecordRepo is the Postgres implementation of RecordRepo.
type pgRecordRepo struct {
	db db
}

// NewRecordRepo constructs a RecordRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRecordRepo(db db) RecordRepo {
	return &pgRecordRepo{db: db}
}

const recordColumns = `id, user_id, project_id, start_time, end_time, description, lunch_minutes, deleted, created_at, updated_at`

// Create inserts a new record row. The CASE expressions resolve the "now"
// sentinel on the database clock so create time and start time agree.
func (r *pgRecordRepo) Create(ctx context.Context, rec NewRecord) (domain.Record, error) {
	if rec.StartTime.IsZero() {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Create: %w: startTime is required", domain.ErrValidation)
	}

	const q = `
		INSERT INTO records (user_id, project_id, start_time, end_time, description, lunch_minutes)
		VALUES (@user_id, @project_id,
		        CASE WHEN @start_now THEN now() ELSE @start_time END,
		        CASE WHEN @end_now THEN now() ELSE @end_time END,
		        @description, @lunch_minutes)
		RETURNING ` + recordColumns

	args := pgx.NamedArgs{
		"user_id":       rec.UserID,
		"project_id":    rec.ProjectID,
		"start_now":     rec.StartTime.IsNow,
		"start_time":    stampTime(rec.StartTime),
		"end_now":       rec.EndTime.IsNow,
		"end_time":      stampTime(rec.EndTime),
		"description":   rec.Description,
		"lunch_minutes": rec.LunchMinutes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a record by primary key. Soft-deleted rows are still
// returned; callers that must not see them check the Deleted flag.
func (r *pgRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.GetByID: %w", err)
	}
	return result, nil
}

// Update applies a partial patch to a record and returns the updated row.
// Unset fields keep their stored values via COALESCE / CASE fallthrough.
func (r *pgRecordRepo) Update(ctx context.Context, id uuid.UUID, changes RecordChanges) (domain.Record, error) {
	const q = `
		UPDATE records
		SET start_time    = COALESCE(@start_time, start_time),
		    end_time      = CASE WHEN @end_now THEN now()
		                         WHEN @set_end THEN @end_time
		                         ELSE end_time END,
		    description   = COALESCE(@description, description),
		    lunch_minutes = COALESCE(@lunch_minutes, lunch_minutes),
		    deleted       = COALESCE(@deleted, deleted),
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + recordColumns

	var (
		endNow  bool
		setEnd  bool
		endTime *time.Time
	)
	if changes.EndTime != nil {
		endNow = changes.EndTime.IsNow
		setEnd = true
		if !endNow {
			endTime = &changes.EndTime.Time
		}
	}

	args := pgx.NamedArgs{
		"id":            id,
		"start_time":    changes.StartTime,
		"end_now":       endNow,
		"set_end":       setEnd,
		"end_time":      endTime,
		"description":   changes.Description,
		"lunch_minutes": changes.LunchMinutes,
		"deleted":       changes.Deleted,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Update: %w", err)
	}
	return result, nil
}

// Search returns non-deleted records for one project within a half-open time range.
func (r *pgRecordRepo) Search(ctx context.Context, userID, projectID uuid.UUID, from, to time.Time) ([]domain.Record, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE user_id = @user_id
		  AND project_id = @project_id
		  AND NOT deleted
		  AND start_time >= @from
		  AND start_time < @to
		ORDER BY start_time ASC`

	args := pgx.NamedArgs{
		"user_id":    userID,
		"project_id": projectID,
		"from":       from,
		"to":         to,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.Search: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RecordRepo.Search: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.Search: rows: %w", err)
	}

	return records, nil
}

// Open returns the newest running record for the user/project pair.
func (r *pgRecordRepo) Open(ctx context.Context, userID, projectID uuid.UUID) (domain.Record, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE user_id = @user_id
		  AND project_id = @project_id
		  AND NOT deleted
		  AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "project_id": projectID})
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Open: %w", err)
	}
	return result, nil
}

// stampTime returns the explicit instant of a stamp, or nil for absent and
// sentinel stamps (the SQL resolves the sentinel, NULL stays NULL).
func stampTime(s domain.Stamp) *time.Time {
	if s.IsZero() || s.IsNow {
		return nil
	}
	t := s.Time
	return &t
}

// scanRecord maps a single database row into a domain.Record.
// It handles the UUID and nullable end_time conversions.
func scanRecord(s scanner) (domain.Record, error) {
	var (
		rec     domain.Record
		id      pgtype.UUID
		userID  pgtype.UUID
		projID  pgtype.UUID
		endTime pgtype.Timestamptz
	)

	err := s.Scan(&id, &userID, &projID, &rec.StartTime, &endTime,
		&rec.Description, &rec.LunchMinutes, &rec.Deleted, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Record{}, domain.ErrNotFound
		}
		return domain.Record{}, err
	}

	rec.ID = uuid.UUID(id.Bytes)
	rec.UserID = uuid.UUID(userID.Bytes)
	rec.ProjectID = uuid.UUID(projID.Bytes)
	if endTime.Valid {
		et := endTime.Time
		rec.EndTime = &et
	}

	return rec, nil
}
