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
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_videos",
		SQL: `CREATE TABLE IF NOT EXISTS videos (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  owner_id      TEXT        NOT NULL,
  title         TEXT        NOT NULL,
  description   TEXT        NOT NULL DEFAULT '',
  video_url     TEXT        NOT NULL,
  video_key     TEXT        NOT NULL UNIQUE,
  thumbnail_url TEXT        NOT NULL DEFAULT '',
  thumbnail_key TEXT        NOT NULL DEFAULT '',
  duration      DOUBLE PRECISION NOT NULL DEFAULT 0,
  size          BIGINT      NOT NULL CHECK (size >= 0),
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_playlists",
		SQL: `CREATE TABLE IF NOT EXISTS playlists (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  owner_id    TEXT        NOT NULL,
  name        TEXT        NOT NULL CHECK (name <> ''),
  description TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_playlist_videos",
		SQL: `CREATE TABLE IF NOT EXISTS playlist_videos (
  playlist_id UUID        NOT NULL REFERENCES playlists (id) ON DELETE CASCADE,
  video_id    UUID        NOT NULL REFERENCES videos (id) ON DELETE CASCADE,
  position    INTEGER     NOT NULL,
  added_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (playlist_id, video_id)
);`,
	},
	{
		Name: "create_index_playlists_owner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_playlists_owner_id ON playlists (owner_id);`,
	},
	{
		Name: "create_index_videos_owner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_videos_owner_id ON videos (owner_id);`,
	},
	{
		Name: "create_index_playlist_videos_position",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_playlist_videos_position ON playlist_videos (playlist_id, position);`,
	},
}

// EnsureMigrated checks if the 'playlists' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.playlists') IS NOT NULL"
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

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

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
