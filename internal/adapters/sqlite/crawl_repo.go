package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/rollcall/internal/ports/secondary"
)

// CrawlRepository implements secondary.CrawlRepository with SQL. The tables
// it reads are owned by the crawler; nothing here writes to them.
type CrawlRepository struct {
	store
}

// NewCrawlRepository creates a new crawl repository.
func NewCrawlRepository(conn *sql.DB, engine string) *CrawlRepository {
	return &CrawlRepository{store: newStore(conn, engine)}
}

// ListSessionDays retrieves every session day with its session's chamber.
func (r *CrawlRepository) ListSessionDays(ctx context.Context) ([]*secondary.SessionDayRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.id, d.session_id, s.chamber, d.date, d.last_crawl IS NOT NULL
		FROM session_days d
		JOIN sessions s ON s.id = d.session_id
		ORDER BY d.date, d.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list session days: %w", err)
	}
	defer rows.Close()

	var days []*secondary.SessionDayRecord
	for rows.Next() {
		var record secondary.SessionDayRecord
		if err := rows.Scan(&record.ID, &record.SessionID, &record.Chamber, &record.Date, &record.Crawled); err != nil {
			return nil, fmt.Errorf("failed to scan session day: %w", err)
		}
		days = append(days, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session days: %w", err)
	}
	return days, nil
}

// ListRollCalls retrieves every roll call with the date of its session day.
func (r *CrawlRepository) ListRollCalls(ctx context.Context) ([]*secondary.RollCallRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rc.id, rc.day_id, rc.chamber, rc.number, COALESCE(rc.stamp, ''), d.date,
			rc.last_crawl IS NOT NULL
		FROM roll_calls rc
		JOIN session_days d ON d.id = rc.day_id
		ORDER BY d.date, rc.number, rc.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roll calls: %w", err)
	}
	defer rows.Close()

	var rolls []*secondary.RollCallRecord
	for rows.Next() {
		var record secondary.RollCallRecord
		if err := rows.Scan(&record.ID, &record.DayID, &record.Chamber, &record.Number,
			&record.Stamp, &record.DayDate, &record.Crawled); err != nil {
			return nil, fmt.Errorf("failed to scan roll call: %w", err)
		}
		rolls = append(rolls, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roll calls: %w", err)
	}
	return rolls, nil
}

// Ensure CrawlRepository implements the interface
var _ secondary.CrawlRepository = (*CrawlRepository)(nil)
