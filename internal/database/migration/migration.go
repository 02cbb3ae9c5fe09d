package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"docregistro/internal/logging"
	"docregistro/internal/model"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_document_definitions",
		SQL: `CREATE TABLE IF NOT EXISTS document_definitions (
  id              INTEGER PRIMARY KEY,
  position        INTEGER NOT NULL,
  nombre          TEXT    NOT NULL,
  nombre_completo TEXT    NOT NULL,
  descripcion     TEXT    NOT NULL,
  id_tipo_pst     INTEGER NOT NULL
);`,
	},
	{
		Name: "create_table_document_assignments",
		SQL: `CREATE TABLE IF NOT EXISTS document_assignments (
  file_id       UUID        PRIMARY KEY,
  definition_id INTEGER     NOT NULL REFERENCES document_definitions (id),
  file_name     TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_document_assignments_definition",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_assignments_definition ON document_assignments (definition_id, created_at DESC);`,
	},
}

const seedSQL = `INSERT INTO document_definitions (id, position, nombre, nombre_completo, descripcion, id_tipo_pst)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

// EnsureMigrated creates the catalog schema when the sentinel table is missing,
// then seeds it with the given definitions in order.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string, seed []model.DocumentDefinition) error {
	start := time.Now()

	log.Event(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	// The sentinel is the last object the steps create, so a run that stopped halfway is redone.
	var exists bool
	query := "SELECT to_regclass('public.idx_document_assignments_definition') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Event(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Event(map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping schema steps",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	} else if err := runSteps(ctx, db, log, dbHost, start); err != nil {
		return err
	}

	// The seed runs on every boot so an interrupted first run is completed later.
	if err := seedDefinitions(ctx, db, seed); err != nil {
		log.Event(map[string]any{
			"component":      "database",
			"event":          "db_migration_failed",
			"status":         "error",
			"migration_step": "seed_document_definitions",
			"error_message":  err.Error(),
			"db_host":        dbHost,
		})
		return err
	}

	log.Event(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"seeded":      len(seed),
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func runSteps(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string, start time.Time) error {
	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Event(map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Event(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	return nil
}

// seedDefinitions inserts the definitions in one transaction. Existing ids are left untouched.
func seedDefinitions(ctx context.Context, db *sql.DB, seed []model.DocumentDefinition) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for i, d := range seed {
		if _, err := tx.ExecContext(ctx, seedSQL, d.ID, i, d.ShortName, d.FullName, d.Description, d.CategoryID); err != nil {
			return fmt.Errorf("seed definition %d: %w", d.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
