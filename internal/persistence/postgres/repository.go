// Package postgres provides pgx-backed persistence for sessions.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeanpruski/natation-tracker-api/internal/domain"
	"github.com/jeanpruski/natation-tracker-api/internal/observability"
)

// Repository issues parameterized statements against the sessions table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Ping verifies database liveness with a trivial query.
func (r *Repository) Ping(ctx context.Context) error {
	var one int
	return r.pool.QueryRow(ctx, "SELECT 1").Scan(&one)
}

// List returns sessions ordered by date ascending, optionally filtered by
// exact activity type. Dates are ISO strings, so lexical order is
// chronological order.
func (r *Repository) List(ctx context.Context, typeFilter string) ([]domain.Session, error) {
	query := `SELECT id, date, distance, type FROM sessions`
	args := []any{}
	if typeFilter != "" {
		query += ` WHERE type = $1`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY date ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.ID, &s.Date, &s.Distance, &s.Type); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Get retrieves a session by id; a nil result means no row matched.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Session, error) {
	const query = `SELECT id, date, distance, type FROM sessions WHERE id = $1`

	var s domain.Session
	if err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Date, &s.Distance, &s.Type); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts the session row.
func (r *Repository) Create(ctx context.Context, session domain.Session) error {
	const stmt = `INSERT INTO sessions (id, date, distance, type) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, stmt, session.ID, session.Date, session.Distance, session.Type)
	if err != nil {
		return err
	}
	observability.RecordMutation("create")
	return nil
}

// Update builds a SET clause over the supplied fields only and reports
// whether a row matched the id.
func (r *Repository) Update(ctx context.Context, id string, patch domain.Patch) (bool, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if patch.Date != nil {
		args = append(args, *patch.Date)
		sets = append(sets, fmt.Sprintf("date = $%d", len(args)))
	}
	if patch.Distance != nil {
		args = append(args, *patch.Distance)
		sets = append(sets, fmt.Sprintf("distance = $%d", len(args)))
	}
	if patch.Type != nil {
		args = append(args, *patch.Type)
		sets = append(sets, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(sets) == 0 {
		return false, errors.New("empty patch")
	}

	args = append(args, id)
	stmt := fmt.Sprintf("UPDATE sessions SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	observability.RecordMutation("update")
	return true, nil
}

// Delete removes a session row and reports whether one matched.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	const stmt = `DELETE FROM sessions WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, id)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	observability.RecordMutation("delete")
	return true, nil
}
