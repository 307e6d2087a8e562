package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/example/rollcall/internal/ports/secondary"
)

const memberColumns = "id, first, middle, last, suffix, dob, house_archive_id, house_current_id, senate_archive_id, senate_current_id"

var (
	memberNameColumns = map[string]bool{"first": true, "middle": true, "last": true, "suffix": true}
	memberIDColumns   = map[string]bool{
		"house_archive_id": true, "house_current_id": true,
		"senate_archive_id": true, "senate_current_id": true,
	}
)

// MemberRepository implements secondary.MemberRepository with SQL.
type MemberRepository struct {
	store
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(conn *sql.DB, engine string) *MemberRepository {
	return &MemberRepository{store: newStore(conn, engine)}
}

// List retrieves every member ordered by id.
func (r *MemberRepository) List(ctx context.Context) ([]*secondary.MemberRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+memberColumns+" FROM members ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()
	return scanMembers(rows)
}

// ListByCohort retrieves the members holding a seat in one chamber and year.
func (r *MemberRepository) ListByCohort(ctx context.Context, year, chamber int) ([]*secondary.MemberRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.q(
		"SELECT "+prefixed("m.", memberColumns)+" FROM members m "+
			"WHERE m.id IN (SELECT member_id FROM service WHERE year = ? AND chamber = ?) ORDER BY m.id"),
		year, chamber,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for %d/%d: %w", year, chamber, err)
	}
	defer rows.Close()
	return scanMembers(rows)
}

// GetByID retrieves a member by its ID.
func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*secondary.MemberRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.q("SELECT "+memberColumns+" FROM members WHERE id = ?"), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	defer rows.Close()

	members, err := scanMembers(rows)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, notFound("member", id)
	}
	return members[0], nil
}

// Update rewrites the given name columns and sets the given identifier columns.
func (r *MemberRepository) Update(ctx context.Context, id int64, names map[string]string, identifiers map[string]int64) error {
	var (
		sets []string
		args []any
	)
	for _, column := range sortedKeys(names) {
		if !memberNameColumns[column] {
			return fmt.Errorf("unknown member name column %q", column)
		}
		sets = append(sets, column+" = ?")
		args = append(args, names[column])
	}
	for _, column := range sortedKeys(identifiers) {
		if !memberIDColumns[column] {
			return fmt.Errorf("unknown member identifier column %q", column)
		}
		sets = append(sets, column+" = ?")
		args = append(args, nullInt(identifiers[column]))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	n, err := r.exec(ctx, "UPDATE members SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if n == 0 {
		return notFound("member", id)
	}
	return nil
}

// Delete removes a member. Deleting a missing member is not an error, so an
// interrupted merge can be replayed.
func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.exec(ctx, "DELETE FROM members WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

func scanMembers(rows *sql.Rows) ([]*secondary.MemberRecord, error) {
	var members []*secondary.MemberRecord
	for rows.Next() {
		var (
			record      secondary.MemberRecord
			dob         sql.NullString
			hArch, hCur sql.NullInt64
			sArch, sCur sql.NullInt64
		)
		if err := rows.Scan(&record.ID, &record.First, &record.Middle, &record.Last, &record.Suffix,
			&dob, &hArch, &hCur, &sArch, &sCur); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		record.DOB = dob.String
		record.HouseArchiveID = hArch.Int64
		record.HouseCurrentID = hCur.Int64
		record.SenateArchiveID = sArch.Int64
		record.SenateCurrentID = sCur.Int64
		members = append(members, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}
	return members, nil
}

func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ensure MemberRepository implements the interface
var _ secondary.MemberRepository = (*MemberRepository)(nil)
