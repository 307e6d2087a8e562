package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(db *sql.DB, engine string) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_member_and_vote_tables",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_resolution_log",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_votes_name_session_index",
		Up:      migrationV3,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at VARCHAR(32)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB, engine string) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	// Get current schema version
	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		slog.Info("running migration", "version", migration.Version, "name", migration.Name)

		// DDL is not transactional on every engine, so each migration must be
		// safe to re-run.
		if err := migration.Up(db, engine); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		// Record migration
		_, err = db.Exec(Rebind(engine, "INSERT INTO schema_version (version, applied_at) VALUES (?, ?)"),
			migration.Version, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the crawler-facing tables.
func migrationV1(db *sql.DB, engine string) error {
	return execStatements(db, engine, func(stmt string) bool {
		return !strings.Contains(stmt, "resolution_log") && !strings.Contains(stmt, "idx_votes_name_session")
	})
}

// migrationV2 adds the audit trail for match and dedupe writes.
func migrationV2(db *sql.DB, engine string) error {
	return execStatements(db, engine, func(stmt string) bool {
		return strings.Contains(stmt, "resolution_log")
	})
}

// migrationV3 indexes the (name, session_id) scope used when writing vote
// assignments.
func migrationV3(db *sql.DB, engine string) error {
	return execStatements(db, engine, func(stmt string) bool {
		return strings.Contains(stmt, "idx_votes_name_session")
	})
}
