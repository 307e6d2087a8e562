// Package legislature holds the small domain vocabulary shared by the
// resolvers: chambers, vote values, cohorts and their crawl and resolution
// states. It is part of the functional core - no I/O.
package legislature

import (
	"fmt"
	"sort"
	"strings"
)

// Chamber is a legislative body. Values match the stored integers.
type Chamber int

const (
	House  Chamber = 1
	Senate Chamber = 2
)

// Chambers lists every chamber in storage order.
var Chambers = []Chamber{House, Senate}

func (c Chamber) String() string {
	switch c {
	case House:
		return "House"
	case Senate:
		return "Senate"
	}
	return fmt.Sprintf("Chamber(%d)", int(c))
}

// Letter returns the single-letter code used by the legislature's site.
func (c Chamber) Letter() string {
	return c.String()[:1]
}

// ChamberFromLetter parses "H..." or "S..." (any case).
func ChamberFromLetter(s string) (Chamber, error) {
	switch strings.ToUpper(strings.TrimSpace(s) + " ")[0] {
	case 'H':
		return House, nil
	case 'S':
		return Senate, nil
	}
	return 0, fmt.Errorf("cannot convert %q to a chamber", s)
}

// Vote is a recorded vote value. Values match the stored integers.
type Vote int

const (
	Yea    Vote = 1
	Nay    Vote = 2
	NoVote Vote = 3
	Leave  Vote = 4
)

var voteLetters = map[Vote]string{Yea: "Y", Nay: "N", NoVote: "X", Leave: "E"}

// Letter returns the roll-call letter (Y, N, X or E).
func (v Vote) Letter() string {
	return voteLetters[v]
}

// VoteFromLetter parses a roll-call letter.
func VoteFromLetter(s string) (Vote, error) {
	for v, letter := range voteLetters {
		if letter == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown vote code %q", s)
}

// Cohort is the unit of vote resolution: the members sitting in one chamber
// during one calendar year.
type Cohort struct {
	Year    int
	Chamber Chamber
}

func (c Cohort) String() string {
	return fmt.Sprintf("%d %s", c.Year, c.Chamber)
}

// SortCohorts orders cohorts by year, then chamber.
func SortCohorts(cohorts []Cohort) {
	sort.Slice(cohorts, func(i, j int) bool {
		if cohorts[i].Year != cohorts[j].Year {
			return cohorts[i].Year < cohorts[j].Year
		}
		return cohorts[i].Chamber < cohorts[j].Chamber
	})
}
