package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/rollcall/internal/ports/secondary"
)

// ResolutionLogRepository implements secondary.ResolutionLogRepository with SQL.
type ResolutionLogRepository struct {
	store
	now func() time.Time
}

// NewResolutionLogRepository creates a new resolution log repository.
func NewResolutionLogRepository(conn *sql.DB, engine string) *ResolutionLogRepository {
	return &ResolutionLogRepository{store: newStore(conn, engine), now: time.Now}
}

// Create persists a new log entry. ID and CreatedAt are filled in on the
// record.
func (r *ResolutionLogRepository) Create(ctx context.Context, entry *secondary.ResolutionLogRecord) error {
	if entry.CreatedAt == "" {
		entry.CreatedAt = r.now().UTC().Format(time.RFC3339)
	}
	id, err := r.insert(ctx,
		`INSERT INTO resolution_log (run_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		entry.FieldName,
		entry.OldValue,
		entry.NewValue,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resolution log: %w", err)
	}
	entry.ID = id
	return nil
}

// List retrieves log entries matching the given filters, newest first.
func (r *ResolutionLogRepository) List(ctx context.Context, filters secondary.ResolutionLogFilters) ([]*secondary.ResolutionLogRecord, error) {
	query := `SELECT id, run_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at FROM resolution_log WHERE 1=1`
	args := []any{}

	if filters.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, filters.RunID)
	}

	query += " ORDER BY id DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolution log: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ResolutionLogRecord
	for rows.Next() {
		var record secondary.ResolutionLogRecord
		if err := rows.Scan(&record.ID, &record.RunID, &record.EntityType, &record.EntityID, &record.Action,
			&record.FieldName, &record.OldValue, &record.NewValue, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resolution log: %w", err)
		}
		entries = append(entries, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resolution log: %w", err)
	}
	return entries, nil
}

// Ensure ResolutionLogRepository implements the interface
var _ secondary.ResolutionLogRepository = (*ResolutionLogRepository)(nil)
