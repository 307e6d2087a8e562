package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with a small development data set:
// one fully crawled House year with three sitting members, a duplicate
// member row for one of them, and a handful of roll calls.
func SeedFixtures(database *sql.DB, engine string) error {
	exec := func(what, query string, args ...any) error {
		if _, err := database.Exec(Rebind(engine, query), args...); err != nil {
			return fmt.Errorf("seed %s: %w", what, err)
		}
		return nil
	}

	members := []struct {
		id                  int64
		first, middle, last string
		dob                 any
		houseArchiveID      any
		houseCurrentID      any
	}{
		{1, "John", "", "Smith", nil, 1001, nil},
		{2, "Jane", "", "Smith", nil, 1002, nil},
		{3, "Mary", "", "Jones", "1961-04-12", 1003, nil},
		{4, "Mary", "A.", "Jones", "1961-04-12", nil, 77},
	}
	for _, m := range members {
		if err := exec("members",
			"INSERT INTO members (id, first, middle, last, dob, house_archive_id, house_current_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
			m.id, m.first, m.middle, m.last, m.dob, m.houseArchiveID, m.houseCurrentID,
		); err != nil {
			return err
		}
	}

	services := []struct {
		id, memberID int64
		district     string
		party        string
	}{
		{1, 1, "12", "R"},
		{2, 2, "40", "D"},
		{3, 3, "7", "D"},
	}
	for _, s := range services {
		if err := exec("service",
			"INSERT INTO service (id, member_id, year, chamber, district, party) VALUES (?, ?, 2019, 1, ?, ?)",
			s.id, s.memberID, s.district, s.party,
		); err != nil {
			return err
		}
	}

	if err := exec("sessions",
		"INSERT INTO sessions (id, chamber, year, session_index, name, last_crawl) VALUES (1, 1, 2019, 0, '2019-2020 Regular Session', '2020-12-01')",
	); err != nil {
		return err
	}
	if err := exec("session_days",
		"INSERT INTO session_days (id, session_id, date, last_crawl) VALUES (1, 1, '2019-03-04', '2020-12-01')",
	); err != nil {
		return err
	}

	names := []string{"SMITH, JOHN", "SMITH, JANE", "JONES"}
	voteID := int64(1)
	for roll := int64(1); roll <= 2; roll++ {
		if err := exec("roll_calls",
			"INSERT INTO roll_calls (id, day_id, chamber, session_year, session_index, number, name, stamp, last_crawl) VALUES (?, 1, 1, 2019, 0, ?, ?, ?, '2020-12-01')",
			roll, roll, fmt.Sprintf("HB %d", 100+roll), fmt.Sprintf("2019-03-04T1%d:00:00", roll),
		); err != nil {
			return err
		}
		for i, name := range names {
			if err := exec("votes",
				"INSERT INTO votes (id, session_id, roll_id, name, vote) VALUES (?, 1, ?, ?, ?)",
				voteID, roll, name, 1+i%2,
			); err != nil {
				return err
			}
			voteID++
		}
	}

	return nil
}
