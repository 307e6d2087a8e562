package votematch

import (
	"strings"

	"github.com/example/rollcall/internal/core/legislature"
)

// Counts are the three numbers reported per cohort and in the grand total.
type Counts struct {
	UnmatchedNames   int
	Matched          int
	UnmatchedMembers int
}

// Add accumulates another cohort's counts.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		UnmatchedNames:   c.UnmatchedNames + o.UnmatchedNames,
		Matched:          c.Matched + o.Matched,
		UnmatchedMembers: c.UnmatchedMembers + o.UnmatchedMembers,
	}
}

// Percentages returns whole-number percentages of (unmatched names, matched
// names) over nameTotal and unmatched members over memberTotal. A zero total
// counts as one.
func (c Counts) Percentages(nameTotal, memberTotal int) (int, int, int) {
	nameTotal = max(nameTotal, 1)
	memberTotal = max(memberTotal, 1)
	return 100 * c.UnmatchedNames / nameTotal,
		100 * c.Matched / nameTotal,
		100 * c.UnmatchedMembers / memberTotal
}

// Counts summarizes the result.
func (r *Result) Counts() Counts {
	return Counts{
		UnmatchedNames:   len(r.UnmatchedNames),
		Matched:          len(r.Matches),
		UnmatchedMembers: len(r.UnmatchedMembers),
	}
}

// ItemKind classifies a review line.
type ItemKind int

const (
	// ItemAmbiguousName is an unmatched vote name equal to the last name of
	// one or more unmatched members.
	ItemAmbiguousName ItemKind = iota
	ItemUnmatchedMember
	ItemUnmatchedName
	ItemMatched
)

// ReviewItem is one line (or block) of the human review listing.
type ReviewItem struct {
	Kind    ItemKind
	Name    string
	Members []legislature.Member
}

// Review lists what a human needs to look at, sorted by name. Matched names
// are included only when includeMatched is set.
func (r *Result) Review(includeMatched bool) []ReviewItem {
	missing := make(map[string]bool, len(r.UnmatchedNames))
	for _, name := range r.UnmatchedNames {
		missing[name] = true
	}
	byLast := make(map[string][]legislature.Member)
	for _, id := range r.UnmatchedMembers {
		member := r.Members[id]
		key := strings.ToUpper(member.Name.Last)
		byLast[key] = append(byLast[key], member)
	}

	keys := make(map[string]bool)
	for name := range missing {
		keys[name] = true
	}
	for name := range byLast {
		keys[name] = true
	}
	for name := range r.Matches {
		keys[name] = true
	}

	var items []ReviewItem
	for _, name := range sortedKeys(keys) {
		switch members, unmatched := byLast[name]; {
		case unmatched && missing[name]:
			items = append(items, ReviewItem{Kind: ItemAmbiguousName, Name: name, Members: members})
		case unmatched:
			items = append(items, ReviewItem{Kind: ItemUnmatchedMember, Name: name, Members: members})
		case missing[name]:
			items = append(items, ReviewItem{Kind: ItemUnmatchedName, Name: name})
		case includeMatched:
			if member, ok := r.Members[r.Matches[name]]; ok {
				items = append(items, ReviewItem{Kind: ItemMatched, Name: name, Members: []legislature.Member{member}})
			}
		}
	}
	return items
}
