package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/example/rollcall/internal/core/dedupe"
	"github.com/example/rollcall/internal/core/legislature"
	"github.com/example/rollcall/internal/ports/primary"
)

var canonicalColor = color.New(color.FgHiWhite)

// MergeAdapter translates dedupe commands to MergeService calls.
type MergeAdapter struct {
	service primary.MergeService
	out     io.Writer
}

// NewMergeAdapter creates a new MergeAdapter.
func NewMergeAdapter(service primary.MergeService, out io.Writer) *MergeAdapter {
	return &MergeAdapter{
		service: service,
		out:     out,
	}
}

// FindDuplicates plans (and with write, performs) member merges and prints
// every merge group for review.
func (a *MergeAdapter) FindDuplicates(ctx context.Context, write bool) (*primary.FindDuplicatesResponse, error) {
	resp, err := a.service.FindDuplicates(ctx, primary.FindDuplicatesRequest{Write: write})
	if resp != nil && resp.Plan != nil {
		a.printPlan(resp.Plan)
	}
	if err != nil {
		return resp, err
	}

	groups, members := 0, 0
	for _, d := range resp.Plan.Decisions {
		if len(d.Merged) > 0 {
			groups++
			members += len(d.Merged)
		}
	}
	switch {
	case groups == 0:
		fmt.Fprintln(a.out, "No duplicate members found")
	case write:
		fmt.Fprintf(a.out, "✓ Merged %d members into %d\n", members, len(resp.Merged))
	default:
		fmt.Fprintf(a.out, "%d members would merge into %d (dry run, use --write)\n", members, groups)
	}
	return resp, nil
}

func (a *MergeAdapter) printPlan(plan *dedupe.Plan) {
	for _, d := range plan.Decisions {
		if len(d.Merged) > 0 {
			canonicalColor.Fprintln(a.out, d.Canonical.String())
			for _, id := range append([]int64{d.AnchorID}, d.Merged...) {
				a.printMember(d.Members[id], d.Services[id])
			}
		}
		for _, deferred := range d.Deferred {
			memberColor.Fprintf(a.out, "\tDeferred %d (anchor %d): %s\n", deferred.MemberID, d.AnchorID, deferred.Reason)
		}
	}
	for _, fatal := range plan.Fatal {
		ambiguousColor.Fprintf(a.out, "Skipped members %d and %d: %v\n", fatal.A, fatal.B, fatal.Err)
	}
}

func (a *MergeAdapter) printMember(m legislature.Member, services []legislature.Service) {
	fmt.Fprintf(a.out, "\t%d %s %s\n", m.ID, formatIdentifiers(m.IDs), m.Name)
	for _, line := range serviceLines(services) {
		fmt.Fprintf(a.out, "\t\t%s\n", line)
	}
}

// formatIdentifiers renders the four site ids in column order, dots when
// absent.
func formatIdentifiers(ids legislature.Identifiers) string {
	parts := make([]string, 0, len(legislature.IdentifierFields))
	for _, field := range legislature.IdentifierFields {
		if v := ids.Get(field); v != 0 {
			parts = append(parts, fmt.Sprintf("%5d", v))
		} else {
			parts = append(parts, ".....")
		}
	}
	return strings.Join(parts, " ")
}

// serviceLines groups service rows by chamber, party and district with the
// years condensed into ranges.
func serviceLines(services []legislature.Service) []string {
	type seat struct {
		chamber  legislature.Chamber
		party    string
		district string
	}
	years := make(map[seat][]int)
	var order []seat
	for _, s := range services {
		key := seat{s.Chamber, s.Party, s.District}
		if _, seen := years[key]; !seen {
			order = append(order, key)
		}
		years[key] = append(years[key], s.Year)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return minYear(years[order[i]]) < minYear(years[order[j]])
	})

	lines := make([]string, len(order))
	for i, key := range order {
		lines[i] = fmt.Sprintf("%s %s: %s %s", key.chamber, legislature.Condense(years[key]), key.party, key.district)
	}
	return lines
}

func minYear(years []int) int {
	m := years[0]
	for _, y := range years[1:] {
		m = min(m, y)
	}
	return m
}
