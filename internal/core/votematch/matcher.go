// Package votematch assigns free-text attendance names on roll-call votes to
// the members sitting in a cohort. It is part of the functional core - the
// caller loads the cohort and executes the planned writes.
package votematch

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/rollcall/internal/core/legislature"
	"github.com/example/rollcall/internal/core/names"
)

// Input is everything the matcher needs to know about one cohort.
type Input struct {
	Cohort    legislature.Cohort
	Members   []legislature.Member // sitting members, from service rows
	VoteNames []string             // raw attendance names; duplicates are ignored
	Rolls     int                  // roll calls in the cohort, for reporting
}

// Match is one resolved vote name.
type Match struct {
	VoteName string
	MemberID int64
	Rule     string // equivalence rule, or "substring" for the residual pass
}

// Note is a non-fatal observation worth a human look.
type Note struct {
	VoteName string
	Message  string
}

// FatalName is a vote name that raised a fatal error and was skipped.
type FatalName struct {
	VoteName string
	Err      error
}

// Result is the outcome of matching one cohort.
type Result struct {
	Cohort    legislature.Cohort
	Members   map[int64]legislature.Member
	VoteNames []string
	Rolls     int

	Matches          map[string]int64
	Substring        []Match // residual-pass commits, in commit order
	UnmatchedNames   []string
	UnmatchedMembers []int64
	Notes            []Note
	Fatal            []FatalName

	State legislature.ResolutionState
}

// Matcher resolves cohorts with a fixed name tester.
type Matcher struct {
	tester    *names.Tester
	skipFatal bool
}

// NewMatcher creates a Matcher. With skipFatal, vote names that raise a fatal
// error are recorded in Result.Fatal and left unmatched instead of aborting.
func NewMatcher(tester *names.Tester, skipFatal bool) *Matcher {
	return &Matcher{tester: tester, skipFatal: skipFatal}
}

// MatchCohort maps every distinct vote name to at most one member.
func (m *Matcher) MatchCohort(in Input) (*Result, error) {
	res := &Result{
		Cohort:  in.Cohort,
		Members: make(map[int64]legislature.Member, len(in.Members)),
		Rolls:   in.Rolls,
		Matches: make(map[string]int64),
	}

	buckets := make(map[string][]legislature.Member)
	for _, member := range in.Members {
		if _, seen := res.Members[member.ID]; seen {
			continue
		}
		res.Members[member.ID] = member
		key := strings.ToLower(member.Name.Last)
		buckets[key] = append(buckets[key], member)
	}
	for _, bucket := range buckets {
		legislature.SortMembers(bucket)
	}

	res.VoteNames = distinct(in.VoteNames)

	hits := make(map[int64]bool)
	var missing []string
	for _, raw := range res.VoteNames {
		id, ok, err := m.matchName(res, buckets, raw)
		if err != nil {
			if !m.skipFatal || !errors.Is(err, names.ErrFatal) {
				return nil, fmt.Errorf("%s: vote name %q: %w", in.Cohort, raw, err)
			}
			res.Fatal = append(res.Fatal, FatalName{VoteName: raw, Err: err})
		}
		if !ok {
			missing = append(missing, raw)
			continue
		}
		res.Matches[raw] = id
		hits[id] = true
	}

	var residualMembers []int64
	for id := range res.Members {
		if !hits[id] {
			residualMembers = append(residualMembers, id)
		}
	}
	res.UnmatchedNames, res.UnmatchedMembers = m.residualPass(res, missing, residualMembers)

	res.State = legislature.StateFor(len(res.Matches), len(res.UnmatchedNames), len(res.UnmatchedMembers))
	return res, nil
}

// matchName runs the bucket rules for a single raw vote name.
func (m *Matcher) matchName(res *Result, buckets map[string][]legislature.Member, raw string) (int64, bool, error) {
	vote, err := names.Normalize(raw)
	if err != nil {
		return 0, false, err
	}

	bucket := buckets[strings.ToLower(vote.Last)]
	switch len(bucket) {
	case 0:
		return 0, false, nil
	case 1:
		out, err := m.tester.Resolve(vote, bucket[0].Name, false)
		if err != nil {
			return 0, false, err
		}
		if !out.IsMatch() {
			res.note(raw, "unable to match vote name %s to existing name %s: %s", raw, bucket[0].Name, out.Reason)
			return 0, false, nil
		}
		return bucket[0].ID, true, nil
	}

	if vote.First == "" {
		return 0, false, nil
	}
	if r := []rune(vote.First); len(r) == 2 && r[1] == '.' {
		vote.First = string(r[0])
	}

	var candidates []int64
	for _, member := range bucket {
		out, err := m.tester.Resolve(vote, member.Name, false)
		if err != nil {
			return 0, false, err
		}
		if out.Kind == names.Ambiguous {
			res.note(raw, "vote name %s is ambiguous against %s: %s", raw, member.Name, out.Reason)
		}
		if out.IsMatch() {
			candidates = append(candidates, member.ID)
		}
	}
	if len(candidates) != 1 {
		if len(candidates) > 1 {
			res.note(raw, "vote name %s matches %d members", raw, len(candidates))
		}
		return 0, false, nil
	}
	return candidates[0], true, nil
}

// residualPass pairs leftover names with leftover members whose upper-cased
// last name contains the vote name. A pairing is committed only when exactly
// one leftover member qualifies; each commit can disambiguate another name,
// so passes repeat until one makes no progress.
func (m *Matcher) residualPass(res *Result, missing []string, members []int64) ([]string, []int64) {
	byLast := make(map[string][]int64)
	for _, id := range members {
		key := strings.ToUpper(res.Members[id].Name.Last)
		byLast[key] = append(byLast[key], id)
	}

	pending := make(map[string]bool, len(missing))
	for _, name := range missing {
		pending[name] = true
	}

	for changed := true; changed; {
		changed = false
		for _, name := range sortedKeys(pending) {
			if isFatal(res, name) {
				continue
			}
			needle := strings.ToUpper(name)
			var ids []int64
			for _, last := range sortedKeys(byLast) {
				if strings.Contains(last, needle) {
					ids = append(ids, byLast[last]...)
				}
			}
			if len(ids) != 1 {
				continue
			}
			id := ids[0]
			res.Matches[name] = id
			res.Substring = append(res.Substring, Match{VoteName: name, MemberID: id, Rule: "substring"})
			delete(pending, name)
			delete(byLast, strings.ToUpper(res.Members[id].Name.Last))
			changed = true
		}
	}

	var leftMembers []int64
	for _, ids := range byLast {
		leftMembers = append(leftMembers, ids...)
	}
	sort.Slice(leftMembers, func(i, j int) bool { return leftMembers[i] < leftMembers[j] })
	return sortedKeys(pending), leftMembers
}

func isFatal(res *Result, name string) bool {
	for _, f := range res.Fatal {
		if f.VoteName == name {
			return true
		}
	}
	return false
}

func (r *Result) note(name, format string, args ...any) {
	r.Notes = append(r.Notes, Note{VoteName: name, Message: fmt.Sprintf(format, args...)})
}

func distinct(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
