package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/profileview/internal/database"
)

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "reset.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO users(id, username) VALUES ('x', 'stranger')`)
	require.NoError(t, err)

	m := &MaintenanceService{DB: db}
	require.NoError(t, m.Reset(ctx))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = 'stranger'`).Scan(&n))
	require.Zero(t, n)
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = 'chris'`).Scan(&n))
	require.Equal(t, 1, n)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
