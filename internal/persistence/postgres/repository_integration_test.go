//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jeanpruski/natation-tracker-api/internal/domain"
)

func TestRepositoryCRUD(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("natation"),
		postgrescontainer.WithUsername("natation"),
		postgrescontainer.WithPassword("natation"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	repo := NewRepository(pool)

	require.NoError(t, repo.Ping(ctx))

	swim := domain.Session{ID: uuid.NewString(), Date: "2024-01-02", Distance: 1500, Type: "swim"}
	run := domain.Session{ID: uuid.NewString(), Date: "2024-01-01", Distance: 5, Type: "run"}
	require.NoError(t, repo.Create(ctx, swim))
	require.NoError(t, repo.Create(ctx, run))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, run.ID, all[0].ID, "list is ordered by date ascending")

	swims, err := repo.List(ctx, "swim")
	require.NoError(t, err)
	require.Len(t, swims, 1)
	require.Equal(t, swim.ID, swims[0].ID)

	stored, err := repo.Get(ctx, swim.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, swim.Distance, stored.Distance)

	newDistance := 2000.0
	matched, err := repo.Update(ctx, swim.ID, domain.Patch{Distance: &newDistance})
	require.NoError(t, err)
	require.True(t, matched)

	stored, err = repo.Get(ctx, swim.ID)
	require.NoError(t, err)
	require.Equal(t, newDistance, stored.Distance)
	require.Equal(t, "2024-01-02", stored.Date, "untouched columns survive a partial update")

	matched, err = repo.Update(ctx, uuid.NewString(), domain.Patch{Distance: &newDistance})
	require.NoError(t, err)
	require.False(t, matched)

	deleted, err := repo.Delete(ctx, run.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete(ctx, run.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	missing, err := repo.Get(ctx, run.ID)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	t.Helper()

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	path := resolvePath(t, "../../../db/postgres/migrations/0001_init.up.sql")
	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, string(contents))
	require.NoError(t, err)
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		lastErr = err
		time.Sleep(500 * time.Millisecond)
	}
	return lastErr
}
