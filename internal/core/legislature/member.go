package legislature

import (
	"fmt"
	"sort"

	"github.com/example/rollcall/internal/core/names"
)

// IdentifierField names one of the per-source member identifiers.
type IdentifierField int

const (
	HouseArchiveID IdentifierField = iota
	HouseCurrentID
	SenateArchiveID
	SenateCurrentID
)

// IdentifierFields lists the identifier fields in storage column order.
var IdentifierFields = []IdentifierField{HouseArchiveID, HouseCurrentID, SenateArchiveID, SenateCurrentID}

func (f IdentifierField) String() string {
	switch f {
	case HouseArchiveID:
		return "house_archive_id"
	case HouseCurrentID:
		return "house_current_id"
	case SenateArchiveID:
		return "senate_archive_id"
	case SenateCurrentID:
		return "senate_current_id"
	}
	return fmt.Sprintf("IdentifierField(%d)", int(f))
}

// Identifiers holds a member's per-source site ids. Zero means absent.
type Identifiers [4]int64

// Get returns the value of field f.
func (ids Identifiers) Get(f IdentifierField) int64 { return ids[f] }

// Set returns a copy with field f set to v.
func (ids Identifiers) Set(f IdentifierField, v int64) Identifiers {
	ids[f] = v
	return ids
}

// Member is a legislator row as the resolvers see it.
type Member struct {
	ID   int64
	Name names.Name
	DOB  string // ISO date, empty when unknown
	IDs  Identifiers
}

// Service is one (year, chamber) seat held by a member.
type Service struct {
	ID       int64
	MemberID int64
	Year     int
	Chamber  Chamber
	District string
	Party    string
}

// Cohort returns the cohort this seat belongs to.
func (s Service) Cohort() Cohort {
	return Cohort{Year: s.Year, Chamber: s.Chamber}
}

// SortMembers orders members by id.
func SortMembers(members []Member) {
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
}
