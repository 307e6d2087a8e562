package secondary

import "context"

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the run id from context.
type LogWriter interface {
	// LogUpdate logs an update operation for an entity field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error

	// LogDelete logs a delete operation for an entity.
	LogDelete(ctx context.Context, entityType, entityID string) error
}

// ResolutionLogRepository defines the secondary port for the audit trail.
type ResolutionLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, entry *ResolutionLogRecord) error

	// List retrieves log entries, newest first.
	List(ctx context.Context, filters ResolutionLogFilters) ([]*ResolutionLogRecord, error)
}

// ResolutionLogRecord represents an audit entry as stored in persistence.
type ResolutionLogRecord struct {
	ID         int64
	RunID      string
	EntityType string
	EntityID   string
	Action     string
	FieldName  string
	OldValue   string
	NewValue   string
	CreatedAt  string
}

// ResolutionLogFilters contains filter options for querying log entries.
type ResolutionLogFilters struct {
	RunID string
	Limit int
}
