package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// schemaTemplate is the complete schema for fresh installs, written once for
// every engine. {{pk}} is replaced by the engine's auto-increment primary key.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// it via GetSchemaSQL(), so repository code referencing a column that does not
// exist here fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update schemaTemplate here
//  3. Run `make test` to verify alignment
const schemaTemplate = `
-- Members (one row per legislator identity, duplicates are merged away)
CREATE TABLE IF NOT EXISTS members (
	id {{pk}},
	first VARCHAR(255) NOT NULL DEFAULT '',
	middle VARCHAR(255) NOT NULL DEFAULT '',
	last VARCHAR(255) NOT NULL DEFAULT '',
	suffix VARCHAR(64) NOT NULL DEFAULT '',
	dob VARCHAR(32),
	house_archive_id BIGINT,
	house_current_id BIGINT,
	senate_archive_id BIGINT,
	senate_current_id BIGINT,
	last_crawl VARCHAR(32)
);

-- Service (a member's seat in one chamber for one year)
CREATE TABLE IF NOT EXISTS service (
	id {{pk}},
	member_id BIGINT NOT NULL,
	year INTEGER NOT NULL,
	chamber INTEGER NOT NULL CHECK(chamber IN (1, 2)),
	district VARCHAR(64) NOT NULL DEFAULT '',
	party VARCHAR(64) NOT NULL DEFAULT '',
	FOREIGN KEY (member_id) REFERENCES members(id),
	UNIQUE(member_id, year, chamber)
);

-- Sessions, session days and roll calls (written by the crawler)
CREATE TABLE IF NOT EXISTS sessions (
	id {{pk}},
	chamber INTEGER NOT NULL CHECK(chamber IN (1, 2)),
	year INTEGER NOT NULL,
	session_index INTEGER NOT NULL DEFAULT 0,
	name VARCHAR(255) NOT NULL DEFAULT '',
	last_crawl VARCHAR(32)
);

CREATE TABLE IF NOT EXISTS session_days (
	id {{pk}},
	session_id BIGINT NOT NULL,
	date VARCHAR(32) NOT NULL,
	last_crawl VARCHAR(32),
	FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS roll_calls (
	id {{pk}},
	day_id BIGINT NOT NULL,
	chamber INTEGER NOT NULL CHECK(chamber IN (1, 2)),
	session_year INTEGER NOT NULL,
	session_index INTEGER NOT NULL DEFAULT 0,
	number INTEGER NOT NULL,
	name VARCHAR(255) NOT NULL DEFAULT '',
	stamp VARCHAR(32),
	last_crawl VARCHAR(32),
	FOREIGN KEY (day_id) REFERENCES session_days(id)
);

-- Votes (free-text attendance names, member_id is filled in by match)
CREATE TABLE IF NOT EXISTS votes (
	id {{pk}},
	session_id BIGINT NOT NULL,
	roll_id BIGINT NOT NULL,
	name VARCHAR(255) NOT NULL,
	member_id BIGINT,
	vote INTEGER NOT NULL CHECK(vote IN (1, 2, 3, 4)),
	FOREIGN KEY (session_id) REFERENCES sessions(id),
	FOREIGN KEY (roll_id) REFERENCES roll_calls(id),
	FOREIGN KEY (member_id) REFERENCES members(id)
);

-- Resolution log (audit trail of every write made by match and dedupe)
CREATE TABLE IF NOT EXISTS resolution_log (
	id {{pk}},
	run_id VARCHAR(64) NOT NULL DEFAULT '',
	entity_type VARCHAR(32) NOT NULL,
	entity_id VARCHAR(64) NOT NULL,
	action VARCHAR(32) NOT NULL,
	field_name VARCHAR(64) NOT NULL DEFAULT '',
	old_value VARCHAR(255) NOT NULL DEFAULT '',
	new_value VARCHAR(255) NOT NULL DEFAULT '',
	created_at VARCHAR(32) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_service_cohort ON service(year, chamber);
CREATE INDEX IF NOT EXISTS idx_members_dob ON members(dob);
CREATE INDEX IF NOT EXISTS idx_session_days_session ON session_days(session_id);
CREATE INDEX IF NOT EXISTS idx_roll_calls_day ON roll_calls(day_id);
CREATE INDEX IF NOT EXISTS idx_votes_roll ON votes(roll_id);
CREATE INDEX IF NOT EXISTS idx_votes_name_session ON votes(name, session_id);
CREATE INDEX IF NOT EXISTS idx_resolution_log_run ON resolution_log(run_id);
`

var primaryKeys = map[string]string{
	EngineSQLite:   "INTEGER PRIMARY KEY AUTOINCREMENT",
	EnginePostgres: "BIGSERIAL PRIMARY KEY",
	EngineMySQL:    "BIGINT AUTO_INCREMENT PRIMARY KEY",
}

// SchemaSQL is the sqlite rendering of the schema.
var SchemaSQL = SchemaFor(EngineSQLite)

// SchemaFor renders the schema for an engine.
func SchemaFor(engine string) string {
	pk, ok := primaryKeys[engine]
	if !ok {
		pk = primaryKeys[EngineSQLite]
	}
	return strings.ReplaceAll(schemaTemplate, "{{pk}}", pk)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}

// statements splits a rendered schema into single statements, adjusted for
// engines that cannot run them as written.
func statements(engine, schema string) []string {
	var out []string
	for _, stmt := range strings.Split(schema, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "--") {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}
		stmt = strings.Join(lines, "\n")
		if engine == EngineMySQL {
			// MySQL has no CREATE INDEX IF NOT EXISTS; duplicates are ignored instead.
			stmt = strings.Replace(stmt, "CREATE INDEX IF NOT EXISTS", "CREATE INDEX", 1)
		}
		out = append(out, stmt)
	}
	return out
}

// createSchema runs every schema statement one by one.
func createSchema(db *sql.DB, engine string) error {
	return execStatements(db, engine, func(string) bool { return true })
}

// execStatements runs the schema statements accepted by keep.
func execStatements(db *sql.DB, engine string, keep func(stmt string) bool) error {
	for _, stmt := range statements(engine, SchemaFor(engine)) {
		if !keep(stmt) {
			continue
		}
		if _, err := db.Exec(stmt); err != nil && !isAlreadyExists(err) {
			return fmt.Errorf("failed to run %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

// InitSchema creates the database schema on a fresh database and brings an
// existing one up to date.
func InitSchema(db *sql.DB, engine string) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	var tableCount int
	err := db.QueryRow(Rebind(engine,
		"SELECT COUNT(*) FROM schema_version WHERE version > ?"), 0).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if tableCount > 0 {
		// schema_version has entries - run any pending migrations
		return RunMigrations(db, engine)
	}

	var memberTables int
	err = db.QueryRow(Rebind(engine, memberTableQuery(engine)), "members").Scan(&memberTables)
	if err != nil {
		return fmt.Errorf("failed to inspect existing tables: %w", err)
	}
	if memberTables > 0 {
		// Tables from before versioning - upgrade them in place.
		return RunMigrations(db, engine)
	}

	// Completely fresh install - create modern schema directly and mark all
	// migrations as applied
	if err := createSchema(db, engine); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec(Rebind(engine, "INSERT INTO schema_version (version) VALUES (?)"), m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

func memberTableQuery(engine string) string {
	switch engine {
	case EnginePostgres:
		return "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?"
	case EngineMySQL:
		return "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
	}
	return "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?"
}
