package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/profileview/internal/database"
)

// MaintenanceService houses destructive/ops actions exposed on the command line.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes all rows and loads the demo community again. The schema is kept.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		tables := []string{
			"accepted_proofs",
			"accepted",
			"ignores",
			"assertions",
			"team_showcase",
			"teams",
			"follows",
			"users",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return database.SeedDemo(ctx, s.DB)
}
