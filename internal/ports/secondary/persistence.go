// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// MemberRepository defines the secondary port for member persistence.
type MemberRepository interface {
	// List retrieves every member.
	List(ctx context.Context) ([]*MemberRecord, error)

	// ListByCohort retrieves the members holding a seat in one chamber and year.
	ListByCohort(ctx context.Context, year, chamber int) ([]*MemberRecord, error)

	// GetByID retrieves a member by its ID.
	GetByID(ctx context.Context, id int64) (*MemberRecord, error)

	// Update rewrites the given name columns and sets the given identifier
	// columns. Keys are column names.
	Update(ctx context.Context, id int64, names map[string]string, identifiers map[string]int64) error

	// Delete removes a member from persistence.
	Delete(ctx context.Context, id int64) error
}

// MemberRecord represents a member as stored in persistence.
// Identifier fields are zero when absent.
type MemberRecord struct {
	ID              int64
	First           string
	Middle          string
	Last            string
	Suffix          string
	DOB             string
	HouseArchiveID  int64
	HouseCurrentID  int64
	SenateArchiveID int64
	SenateCurrentID int64
}

// ServiceRepository defines the secondary port for service rows.
type ServiceRepository interface {
	// List retrieves every service row.
	List(ctx context.Context) ([]*ServiceRecord, error)

	// ListByMember retrieves a member's service rows ordered by year.
	ListByMember(ctx context.Context, memberID int64) ([]*ServiceRecord, error)

	// Reassign hands a service row to another member.
	Reassign(ctx context.Context, serviceID, memberID int64) error

	// Delete removes one service row.
	Delete(ctx context.Context, serviceID int64) error

	// DeleteByMember removes every service row of a member.
	DeleteByMember(ctx context.Context, memberID int64) (int64, error)
}

// ServiceRecord represents a service row as stored in persistence.
type ServiceRecord struct {
	ID       int64
	MemberID int64
	Year     int
	Chamber  int
	District string
	Party    string
}

// VoteRepository defines the secondary port for vote rows.
type VoteRepository interface {
	// ListByRolls retrieves the votes cast on the given roll calls.
	ListByRolls(ctx context.Context, rollIDs []int64) ([]*VoteRecord, error)

	// AssignMember sets member_id on unassigned votes carrying name in the
	// given sessions and cast on the given roll calls. Returns the number of
	// rows changed.
	AssignMember(ctx context.Context, name string, sessionIDs, rollIDs []int64, memberID int64) (int64, error)

	// ReassignMember moves every vote of one member to another.
	ReassignMember(ctx context.Context, fromID, toID int64) (int64, error)
}

// VoteRecord represents a vote as stored in persistence.
type VoteRecord struct {
	ID        int64
	SessionID int64
	RollID    int64
	Name      string
	MemberID  int64 // zero when unassigned
	Vote      int
}

// CrawlRepository defines the secondary port for the crawler's progress tables.
type CrawlRepository interface {
	// ListSessionDays retrieves every session day with its chamber.
	ListSessionDays(ctx context.Context) ([]*SessionDayRecord, error)

	// ListRollCalls retrieves every roll call with its session day's date.
	ListRollCalls(ctx context.Context) ([]*RollCallRecord, error)
}

// SessionDayRecord represents a session day as stored in persistence.
type SessionDayRecord struct {
	ID        int64
	SessionID int64
	Chamber   int
	Date      string
	Crawled   bool
}

// RollCallRecord represents a roll call as stored in persistence.
type RollCallRecord struct {
	ID      int64
	DayID   int64
	Chamber int
	Number  int
	Stamp   string
	DayDate string
	Crawled bool
}
