package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/example/rollcall/internal/ports/secondary"
)

// Ensure the mocks implement the interfaces
var (
	_ secondary.MemberRepository        = (*mockMemberRepository)(nil)
	_ secondary.ServiceRepository       = (*mockServiceRepository)(nil)
	_ secondary.VoteRepository          = (*mockVoteRepository)(nil)
	_ secondary.CrawlRepository         = (*mockCrawlRepository)(nil)
	_ secondary.LogWriter               = (*mockLogWriter)(nil)
	_ secondary.ResolutionLogRepository = (*mockResolutionLogRepository)(nil)
)

// mockMemberRepository implements secondary.MemberRepository for testing.
// ListByCohort consults the service mock it is linked to.
type mockMemberRepository struct {
	members  map[int64]*secondary.MemberRecord
	services *mockServiceRepository
	listErr  error
}

func newMockMemberRepository(services *mockServiceRepository) *mockMemberRepository {
	return &mockMemberRepository{members: make(map[int64]*secondary.MemberRecord), services: services}
}

func (m *mockMemberRepository) add(r secondary.MemberRecord) {
	m.members[r.ID] = &r
}

func (m *mockMemberRepository) List(ctx context.Context) ([]*secondary.MemberRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*secondary.MemberRecord, 0, len(m.members))
	for _, r := range m.members {
		c := *r
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockMemberRepository) ListByCohort(ctx context.Context, year, chamber int) ([]*secondary.MemberRecord, error) {
	all, _ := m.List(ctx)
	var out []*secondary.MemberRecord
	for _, r := range all {
		for _, s := range m.services.rows {
			if s.MemberID == r.ID && s.Year == year && s.Chamber == chamber {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (m *mockMemberRepository) GetByID(ctx context.Context, id int64) (*secondary.MemberRecord, error) {
	r, ok := m.members[id]
	if !ok {
		return nil, fmt.Errorf("member %d not found", id)
	}
	c := *r
	return &c, nil
}

func (m *mockMemberRepository) Update(ctx context.Context, id int64, names map[string]string, identifiers map[string]int64) error {
	r, ok := m.members[id]
	if !ok {
		return fmt.Errorf("member %d not found", id)
	}
	for column, v := range names {
		switch column {
		case "first":
			r.First = v
		case "middle":
			r.Middle = v
		case "last":
			r.Last = v
		case "suffix":
			r.Suffix = v
		}
	}
	for column, v := range identifiers {
		switch column {
		case "house_archive_id":
			r.HouseArchiveID = v
		case "house_current_id":
			r.HouseCurrentID = v
		case "senate_archive_id":
			r.SenateArchiveID = v
		case "senate_current_id":
			r.SenateCurrentID = v
		}
	}
	return nil
}

func (m *mockMemberRepository) Delete(ctx context.Context, id int64) error {
	delete(m.members, id)
	return nil
}

// mockServiceRepository implements secondary.ServiceRepository for testing.
type mockServiceRepository struct {
	rows []*secondary.ServiceRecord
}

func newMockServiceRepository() *mockServiceRepository {
	return &mockServiceRepository{}
}

func (m *mockServiceRepository) add(r secondary.ServiceRecord) {
	m.rows = append(m.rows, &r)
}

func (m *mockServiceRepository) List(ctx context.Context) ([]*secondary.ServiceRecord, error) {
	out := make([]*secondary.ServiceRecord, len(m.rows))
	for i, r := range m.rows {
		c := *r
		out[i] = &c
	}
	return out, nil
}

func (m *mockServiceRepository) ListByMember(ctx context.Context, memberID int64) ([]*secondary.ServiceRecord, error) {
	var out []*secondary.ServiceRecord
	for _, r := range m.rows {
		if r.MemberID == memberID {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *mockServiceRepository) Reassign(ctx context.Context, serviceID, memberID int64) error {
	for _, r := range m.rows {
		if r.ID == serviceID {
			r.MemberID = memberID
			return nil
		}
	}
	return nil
}

func (m *mockServiceRepository) Delete(ctx context.Context, serviceID int64) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.ID != serviceID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *mockServiceRepository) DeleteByMember(ctx context.Context, memberID int64) (int64, error) {
	var n int64
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.MemberID == memberID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n, nil
}

// mockVoteRepository implements secondary.VoteRepository for testing.
type mockVoteRepository struct {
	votes     []*secondary.VoteRecord
	assignErr error
}

func newMockVoteRepository() *mockVoteRepository {
	return &mockVoteRepository{}
}

func (m *mockVoteRepository) add(id, sessionID, rollID int64, name string, memberID int64) {
	m.votes = append(m.votes, &secondary.VoteRecord{
		ID: id, SessionID: sessionID, RollID: rollID, Name: name, MemberID: memberID, Vote: 1,
	})
}

func (m *mockVoteRepository) member(id int64) int64 {
	for _, v := range m.votes {
		if v.ID == id {
			return v.MemberID
		}
	}
	return -1
}

func (m *mockVoteRepository) ListByRolls(ctx context.Context, rollIDs []int64) ([]*secondary.VoteRecord, error) {
	want := make(map[int64]bool, len(rollIDs))
	for _, id := range rollIDs {
		want[id] = true
	}
	var out []*secondary.VoteRecord
	for _, v := range m.votes {
		if want[v.RollID] {
			c := *v
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *mockVoteRepository) AssignMember(ctx context.Context, name string, sessionIDs, rollIDs []int64, memberID int64) (int64, error) {
	if m.assignErr != nil {
		return 0, m.assignErr
	}
	sessions := idSet(sessionIDs)
	rolls := idSet(rollIDs)
	var n int64
	for _, v := range m.votes {
		if v.Name == name && v.MemberID == 0 && sessions[v.SessionID] && rolls[v.RollID] {
			v.MemberID = memberID
			n++
		}
	}
	return n, nil
}

func (m *mockVoteRepository) ReassignMember(ctx context.Context, fromID, toID int64) (int64, error) {
	var n int64
	for _, v := range m.votes {
		if v.MemberID == fromID {
			v.MemberID = toID
			n++
		}
	}
	return n, nil
}

// mockCrawlRepository implements secondary.CrawlRepository for testing.
type mockCrawlRepository struct {
	days  []*secondary.SessionDayRecord
	rolls []*secondary.RollCallRecord
}

func (m *mockCrawlRepository) ListSessionDays(ctx context.Context) ([]*secondary.SessionDayRecord, error) {
	return m.days, nil
}

func (m *mockCrawlRepository) ListRollCalls(ctx context.Context) ([]*secondary.RollCallRecord, error) {
	return m.rolls, nil
}

// mockLogWriter records audit calls.
type mockLogWriter struct {
	entries []string
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.entries = append(m.entries, fmt.Sprintf("update %s %s %s %q->%q", entityType, entityID, fieldName, oldValue, newValue))
	return nil
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, fmt.Sprintf("delete %s %s", entityType, entityID))
	return nil
}

// mockResolutionLogRepository implements secondary.ResolutionLogRepository for testing.
type mockResolutionLogRepository struct {
	records []*secondary.ResolutionLogRecord
	listErr error
}

func (m *mockResolutionLogRepository) Create(ctx context.Context, entry *secondary.ResolutionLogRecord) error {
	entry.ID = int64(len(m.records) + 1)
	m.records = append(m.records, entry)
	return nil
}

func (m *mockResolutionLogRepository) List(ctx context.Context, filters secondary.ResolutionLogFilters) ([]*secondary.ResolutionLogRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ResolutionLogRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if filters.RunID != "" && r.RunID != filters.RunID {
			continue
		}
		result = append(result, r)
	}
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

var errBoom = errors.New("boom")

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
