package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/rollcall/internal/ports/secondary"
)

// ServiceRepository implements secondary.ServiceRepository with SQL.
type ServiceRepository struct {
	store
}

// NewServiceRepository creates a new service repository.
func NewServiceRepository(conn *sql.DB, engine string) *ServiceRepository {
	return &ServiceRepository{store: newStore(conn, engine)}
}

// List retrieves every service row.
func (r *ServiceRepository) List(ctx context.Context) ([]*secondary.ServiceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, member_id, year, chamber, district, party FROM service ORDER BY member_id, year, chamber",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list service: %w", err)
	}
	defer rows.Close()
	return scanServices(rows)
}

// ListByMember retrieves a member's service rows ordered by year.
func (r *ServiceRepository) ListByMember(ctx context.Context, memberID int64) ([]*secondary.ServiceRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.q(
		"SELECT id, member_id, year, chamber, district, party FROM service WHERE member_id = ? ORDER BY year, chamber"),
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list service for member %d: %w", memberID, err)
	}
	defer rows.Close()
	return scanServices(rows)
}

// Reassign hands a service row to another member.
func (r *ServiceRepository) Reassign(ctx context.Context, serviceID, memberID int64) error {
	if _, err := r.exec(ctx, "UPDATE service SET member_id = ? WHERE id = ?", memberID, serviceID); err != nil {
		return fmt.Errorf("failed to reassign service %d: %w", serviceID, err)
	}
	return nil
}

// Delete removes one service row.
func (r *ServiceRepository) Delete(ctx context.Context, serviceID int64) error {
	if _, err := r.exec(ctx, "DELETE FROM service WHERE id = ?", serviceID); err != nil {
		return fmt.Errorf("failed to delete service %d: %w", serviceID, err)
	}
	return nil
}

// DeleteByMember removes every service row of a member.
func (r *ServiceRepository) DeleteByMember(ctx context.Context, memberID int64) (int64, error) {
	n, err := r.exec(ctx, "DELETE FROM service WHERE member_id = ?", memberID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete service for member %d: %w", memberID, err)
	}
	return n, nil
}

func scanServices(rows *sql.Rows) ([]*secondary.ServiceRecord, error) {
	var out []*secondary.ServiceRecord
	for rows.Next() {
		var record secondary.ServiceRecord
		if err := rows.Scan(&record.ID, &record.MemberID, &record.Year, &record.Chamber,
			&record.District, &record.Party); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		out = append(out, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read service: %w", err)
	}
	return out, nil
}

// Ensure ServiceRepository implements the interface
var _ secondary.ServiceRepository = (*ServiceRepository)(nil)
