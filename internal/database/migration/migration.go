package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_material_slots",
		SQL: `CREATE TABLE IF NOT EXISTS material_slots (
  platform         TEXT    NOT NULL,
  slot             TEXT    NOT NULL,
  last_sequence    INTEGER NOT NULL DEFAULT 0,
  current_sequence INTEGER,
  PRIMARY KEY (platform, slot)
);`,
	},
	{
		Name: "create_table_material_versions",
		SQL: `CREATE TABLE IF NOT EXISTS material_versions (
  platform        TEXT        NOT NULL,
  slot            TEXT        NOT NULL,
  sequence_number INTEGER     NOT NULL CHECK (sequence_number >= 1),
  content_ref     TEXT        NOT NULL,
  checksum        CHAR(64)    NOT NULL,
  filename        TEXT        NOT NULL,
  format          TEXT        NOT NULL,
  byte_size       BIGINT      NOT NULL CHECK (byte_size >= 0),
  width           INTEGER     NOT NULL,
  height          INTEGER     NOT NULL,
  has_alpha       BOOLEAN     NOT NULL,
  uploader_id     TEXT        NOT NULL,
  status          TEXT        NOT NULL DEFAULT 'pending',
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (platform, slot, sequence_number)
);`,
	},
	{
		Name: "create_table_material_approvals",
		SQL: `CREATE TABLE IF NOT EXISTS material_approvals (
  platform        TEXT        NOT NULL,
  slot            TEXT        NOT NULL,
  sequence_number INTEGER     NOT NULL,
  state           TEXT        NOT NULL DEFAULT 'pending',
  reviewer_id     TEXT,
  comment         TEXT,
  decided_at      TIMESTAMPTZ,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (platform, slot, sequence_number)
);`,
	},
	{
		Name: "create_index_material_versions_checksum",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_material_versions_checksum ON material_versions (checksum);`,
	},
	{
		Name: "create_index_material_versions_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_material_versions_created_at ON material_versions (created_at);`,
	},
}

// EnsureMigrated checks for the material_slots sentinel table and runs the
// migration steps if it is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.material_slots') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
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
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
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

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
