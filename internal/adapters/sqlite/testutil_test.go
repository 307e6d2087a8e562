// Package sqlite_test contains integration tests for the SQL repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/rollcall/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every pooled connection would get its own empty :memory: database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedMember inserts a member and returns its ID.
func seedMember(t *testing.T, db *sql.DB, id int64, first, middle, last string) int64 {
	t.Helper()
	_, err := db.Exec("INSERT INTO members (id, first, middle, last) VALUES (?, ?, ?, ?)", id, first, middle, last)
	if err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	return id
}

// seedService inserts a service row and returns its ID.
func seedService(t *testing.T, db *sql.DB, id, memberID int64, year, chamber int) int64 {
	t.Helper()
	_, err := db.Exec("INSERT INTO service (id, member_id, year, chamber, district, party) VALUES (?, ?, ?, ?, '1', 'R')",
		id, memberID, year, chamber)
	if err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	return id
}

// seedSession inserts a session with one session day and returns the day ID.
// An empty crawled string leaves the day uncrawled.
func seedSession(t *testing.T, db *sql.DB, sessionID int64, chamber, year int, date, crawled string) int64 {
	t.Helper()
	var lastCrawl any
	if crawled != "" {
		lastCrawl = crawled
	}
	if _, err := db.Exec("INSERT INTO sessions (id, chamber, year) VALUES (?, ?, ?)", sessionID, chamber, year); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	if _, err := db.Exec("INSERT INTO session_days (id, session_id, date, last_crawl) VALUES (?, ?, ?, ?)",
		sessionID, sessionID, date, lastCrawl); err != nil {
		t.Fatalf("failed to seed session day: %v", err)
	}
	return sessionID
}

// seedDay adds another session day to an existing session and returns its ID.
func seedDay(t *testing.T, db *sql.DB, id, sessionID int64, date, crawled string) int64 {
	t.Helper()
	var lastCrawl any
	if crawled != "" {
		lastCrawl = crawled
	}
	if _, err := db.Exec("INSERT INTO session_days (id, session_id, date, last_crawl) VALUES (?, ?, ?, ?)",
		id, sessionID, date, lastCrawl); err != nil {
		t.Fatalf("failed to seed session day: %v", err)
	}
	return id
}

// seedRollCall inserts a crawled roll call on a day and returns its ID.
func seedRollCall(t *testing.T, db *sql.DB, id, dayID int64, chamber, year, number int, stamp string) int64 {
	t.Helper()
	var s any
	if stamp != "" {
		s = stamp
	}
	_, err := db.Exec("INSERT INTO roll_calls (id, day_id, chamber, session_year, number, stamp, last_crawl) VALUES (?, ?, ?, ?, ?, ?, '2020-01-01')",
		id, dayID, chamber, year, number, s)
	if err != nil {
		t.Fatalf("failed to seed roll call: %v", err)
	}
	return id
}

// seedVote inserts an unassigned vote and returns its ID.
func seedVote(t *testing.T, db *sql.DB, id, sessionID, rollID int64, name string) int64 {
	t.Helper()
	_, err := db.Exec("INSERT INTO votes (id, session_id, roll_id, name, vote) VALUES (?, ?, ?, ?, 1)", id, sessionID, rollID, name)
	if err != nil {
		t.Fatalf("failed to seed vote: %v", err)
	}
	return id
}

// voteMember returns the member_id of a vote, zero when unassigned.
func voteMember(t *testing.T, db *sql.DB, id int64) int64 {
	t.Helper()
	var memberID sql.NullInt64
	if err := db.QueryRow("SELECT member_id FROM votes WHERE id = ?", id).Scan(&memberID); err != nil {
		t.Fatalf("failed to read vote %d: %v", id, err)
	}
	return memberID.Int64
}
