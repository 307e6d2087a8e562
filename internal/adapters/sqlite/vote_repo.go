package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/rollcall/internal/db"
	"github.com/example/rollcall/internal/ports/secondary"
)

// VoteRepository implements secondary.VoteRepository with SQL.
type VoteRepository struct {
	store
}

// NewVoteRepository creates a new vote repository.
func NewVoteRepository(conn *sql.DB, engine string) *VoteRepository {
	return &VoteRepository{store: newStore(conn, engine)}
}

// ListByRolls retrieves the votes cast on the given roll calls.
func (r *VoteRepository) ListByRolls(ctx context.Context, rollIDs []int64) ([]*secondary.VoteRecord, error) {
	var votes []*secondary.VoteRecord
	for _, chunk := range chunks(rollIDs) {
		rows, err := r.db.QueryContext(ctx, r.q(
			"SELECT id, session_id, roll_id, name, member_id, vote FROM votes WHERE roll_id IN ("+
				db.Placeholders(len(chunk))+") ORDER BY id"),
			int64Args(chunk)...,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list votes: %w", err)
		}
		for rows.Next() {
			var (
				record   secondary.VoteRecord
				memberID sql.NullInt64
			)
			if err := rows.Scan(&record.ID, &record.SessionID, &record.RollID, &record.Name, &memberID, &record.Vote); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan vote: %w", err)
			}
			record.MemberID = memberID.Int64
			votes = append(votes, &record)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read votes: %w", err)
		}
	}
	return votes, nil
}

// AssignMember sets member_id on unassigned votes carrying name in the given
// sessions and roll calls. Rows that already have a member are never touched.
func (r *VoteRepository) AssignMember(ctx context.Context, name string, sessionIDs, rollIDs []int64, memberID int64) (int64, error) {
	if len(sessionIDs) == 0 {
		return 0, nil
	}
	var total int64
	for _, chunk := range chunks(rollIDs) {
		args := []any{memberID, name}
		args = append(args, int64Args(sessionIDs)...)
		args = append(args, int64Args(chunk)...)
		n, err := r.exec(ctx,
			"UPDATE votes SET member_id = ? WHERE name = ? AND member_id IS NULL AND session_id IN ("+
				db.Placeholders(len(sessionIDs))+") AND roll_id IN ("+db.Placeholders(len(chunk))+")",
			args...,
		)
		if err != nil {
			return total, fmt.Errorf("failed to assign votes for %q: %w", name, err)
		}
		total += n
	}
	return total, nil
}

// ReassignMember moves every vote of one member to another.
func (r *VoteRepository) ReassignMember(ctx context.Context, fromID, toID int64) (int64, error) {
	n, err := r.exec(ctx, "UPDATE votes SET member_id = ? WHERE member_id = ?", toID, fromID)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign votes from %d: %w", fromID, err)
	}
	return n, nil
}

// Ensure VoteRepository implements the interface
var _ secondary.VoteRepository = (*VoteRepository)(nil)
