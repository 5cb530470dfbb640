// Package repo contains all database access logic for the Worklog API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mkettu/worklog/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProjectChanges carries the mutable project fields for an update.
// ID and owner are immutable and deliberately absent.
type ProjectChanges struct {
	Label        string
	ClientID     string
	LunchMinutes int
}

// ProjectRepo defines the persistence operations for Projects.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the dispatcher to be unit-tested with a mock.
type ProjectRepo interface {
	// Create inserts a new project for the given owner and returns the
	// persisted record (with DB-generated id and timestamps populated).
	Create(ctx context.Context, userID uuid.UUID, label, clientID string, lunchMinutes int) (domain.Project, error)

	// GetByID retrieves a single project by its UUID primary key.
	// Returns domain.ErrNotFound if no project with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)

	// Latest returns the user's most recently active project: the project
	// of their newest non-deleted record, falling back to the most recently
	// created project. Returns domain.ErrNotFound when the user has none.
	Latest(ctx context.Context, userID uuid.UUID) (domain.Project, error)

	// ListByUserID returns all of the user's projects, newest first.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Project, error)

	// Update overwrites the mutable fields of an existing project and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, id uuid.UUID, changes ProjectChanges) (domain.Project, error)
}

// pgProjectRepo is the Postgres implementation of ProjectRepo.
type pgProjectRepo struct {
	db db
}

// NewProjectRepo constructs a ProjectRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewProjectRepo(db db) ProjectRepo {
	return &pgProjectRepo{db: db}
}

const projectColumns = `id, user_id, client_id, label, lunch_minutes, created_at, updated_at`

// Create inserts a new project row and returns the full persisted record.
func (r *pgProjectRepo) Create(ctx context.Context, userID uuid.UUID, label, clientID string, lunchMinutes int) (domain.Project, error) {
	const q = `
		INSERT INTO projects (user_id, client_id, label, lunch_minutes)
		VALUES (@user_id, @client_id, @label, @lunch_minutes)
		RETURNING ` + projectColumns

	args := pgx.NamedArgs{
		"user_id":       userID,
		"client_id":     clientID,
		"label":         label,
		"lunch_minutes": lunchMinutes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanProject(row)
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a project by primary key.
func (r *pgProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	const q = `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanProject(row)
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.GetByID: %w", err)
	}
	return result, nil
}

// Latest returns the project the user most recently logged time against.
// Projects with no records sort by creation time, after all active ones.
func (r *pgProjectRepo) Latest(ctx context.Context, userID uuid.UUID) (domain.Project, error) {
	const q = `
		SELECT p.id, p.user_id, p.client_id, p.label, p.lunch_minutes, p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN LATERAL (
			SELECT max(r.start_time) AS last_start
			FROM records r
			WHERE r.project_id = p.id AND NOT r.deleted
		) act ON true
		WHERE p.user_id = @user_id
		ORDER BY act.last_start DESC NULLS LAST, p.created_at DESC
		LIMIT 1`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID})
	result, err := scanProject(row)
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Latest: %w", err)
	}
	return result, nil
}

// ListByUserID returns all of the user's projects ordered by creation time descending.
func (r *pgProjectRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	const q = `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE user_id = @user_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ProjectRepo.ListByUserID: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ProjectRepo.ListByUserID: scan: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ProjectRepo.ListByUserID: rows: %w", err)
	}

	return projects, nil
}

// Update overwrites the mutable fields of a project and returns the updated record.
func (r *pgProjectRepo) Update(ctx context.Context, id uuid.UUID, changes ProjectChanges) (domain.Project, error) {
	const q = `
		UPDATE projects
		SET label         = @label,
		    client_id     = @client_id,
		    lunch_minutes = @lunch_minutes,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + projectColumns

	args := pgx.NamedArgs{
		"id":            id,
		"label":         changes.Label,
		"client_id":     changes.ClientID,
		"lunch_minutes": changes.LunchMinutes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanProject(row)
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Update: %w", err)
	}
	return result, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanProject maps a single database row into a domain.Project.
func scanProject(s scanner) (domain.Project, error) {
	var (
		p  domain.Project
		id pgtype.UUID
		ui pgtype.UUID
	)

	err := s.Scan(&id, &ui, &p.ClientID, &p.Label, &p.LunchMinutes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.UserID = uuid.UUID(ui.Bytes)

	return p, nil
}
