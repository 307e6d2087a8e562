package dedupe

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/rollcall/internal/core/legislature"
	"github.com/example/rollcall/internal/core/names"
)

// Signal says why two members were considered the same person.
type Signal string

const (
	// SignalService: same last name sitting in the same chamber and year.
	SignalService Signal = "service"
	// SignalDOB: identical date of birth.
	SignalDOB Signal = "dob"
)

// Edge is a realized merge candidate between two members, A < B.
type Edge struct {
	A, B    int64
	Signals []Signal
	// Strict is set when only the service signal found the pair, so the
	// suffix must match on both sides.
	Strict bool
}

func (e *Edge) has(signal Signal) bool {
	for _, s := range e.Signals {
		if s == signal {
			return true
		}
	}
	return false
}

// Deferred is a member left out of this run's merge.
type Deferred struct {
	MemberID int64
	Reason   string
}

// MergeDecision merges Merged into AnchorID. A decision with nothing merged
// only reports its deferred members.
type MergeDecision struct {
	AnchorID    int64
	Canonical   names.Name
	Merged      []int64
	Identifiers legislature.Identifiers
	Deferred    []Deferred

	// Members and Services describe the anchor and every merged member as
	// they were before the merge, for review and migration.
	Members  map[int64]legislature.Member
	Services map[int64][]legislature.Service
}

// NameUpdates lists the anchor's name columns that the canonical name
// changes. Empty canonical parts never overwrite.
func (d MergeDecision) NameUpdates() map[string]string {
	anchor := d.Members[d.AnchorID].Name
	updates := make(map[string]string)
	columns := [4]string{"first", "middle", "last", "suffix"}
	have, want := anchor.Fields(), d.Canonical.Fields()
	for i, column := range columns {
		if want[i] != "" && want[i] != have[i] {
			updates[column] = want[i]
		}
	}
	return updates
}

// IdentifierUpdates lists the identifier fields the anchor gains.
func (d MergeDecision) IdentifierUpdates() map[legislature.IdentifierField]int64 {
	anchor := d.Members[d.AnchorID].IDs
	updates := make(map[legislature.IdentifierField]int64)
	for _, field := range legislature.IdentifierFields {
		if v := d.Identifiers.Get(field); v != 0 && v != anchor.Get(field) {
			updates[field] = v
		}
	}
	return updates
}

// FatalPair is a candidate pair that raised a fatal error and was skipped.
type FatalPair struct {
	A, B int64
	Err  error
}

// Plan is the output of Planner.Plan.
type Plan struct {
	Edges     []Edge
	Decisions []MergeDecision
	Fatal     []FatalPair
}

// Planner generates merge decisions with a fixed name tester.
type Planner struct {
	tester    *names.Tester
	skipFatal bool
}

// NewPlanner creates a Planner. With skipFatal, pairs raising a fatal
// nickname error are recorded in Plan.Fatal instead of aborting.
func NewPlanner(tester *names.Tester, skipFatal bool) *Planner {
	return &Planner{tester: tester, skipFatal: skipFatal}
}

// Plan finds duplicate members and decides which merges to perform.
//
// Realized edges form connected components, each anchored at its lowest id.
// Only members with a direct edge to the anchor are merged, folded in id
// order into the canonical name; a member whose fold fails, or whose ids
// conflict with the group, is deferred along with every member reachable only
// indirectly. Running again after the merge picks those up.
func (p *Planner) Plan(members []legislature.Member, services []legislature.Service) (*Plan, error) {
	byID := make(map[int64]legislature.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	serviceByMember := make(map[int64][]legislature.Service)
	for _, s := range services {
		serviceByMember[s.MemberID] = append(serviceByMember[s.MemberID], s)
	}
	for _, rows := range serviceByMember {
		sortServices(rows)
	}

	plan := &Plan{}
	edges := make(map[[2]int64]*Edge)

	addGroup := func(ids []int64, signal Signal) error {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for i, a := range ids {
			for _, b := range ids[i+1:] {
				if err := p.testPair(plan, edges, byID[a], byID[b], signal); err != nil {
					return err
				}
			}
		}
		return nil
	}

	// Signal A: same (year, chamber, last name).
	type serviceKey struct {
		cohort legislature.Cohort
		last   string
	}
	groups := make(map[serviceKey]map[int64]bool)
	for _, s := range services {
		m, ok := byID[s.MemberID]
		if !ok {
			continue
		}
		key := serviceKey{s.Cohort(), strings.ToLower(m.Name.Last)}
		if groups[key] == nil {
			groups[key] = make(map[int64]bool)
		}
		groups[key][m.ID] = true
	}
	keys := make([]serviceKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.cohort.Year != b.cohort.Year {
			return a.cohort.Year < b.cohort.Year
		}
		if a.cohort.Chamber != b.cohort.Chamber {
			return a.cohort.Chamber < b.cohort.Chamber
		}
		return a.last < b.last
	})
	for _, k := range keys {
		if err := addGroup(setToSlice(groups[k]), SignalService); err != nil {
			return nil, err
		}
	}

	// Signal B: same date of birth.
	byDOB := make(map[string][]int64)
	for _, m := range members {
		if m.DOB != "" {
			byDOB[m.DOB] = append(byDOB[m.DOB], m.ID)
		}
	}
	dobs := make([]string, 0, len(byDOB))
	for dob := range byDOB {
		dobs = append(dobs, dob)
	}
	sort.Strings(dobs)
	for _, dob := range dobs {
		if err := addGroup(byDOB[dob], SignalDOB); err != nil {
			return nil, err
		}
	}

	for _, e := range edges {
		plan.Edges = append(plan.Edges, *e)
	}
	sort.Slice(plan.Edges, func(i, j int) bool {
		if plan.Edges[i].A != plan.Edges[j].A {
			return plan.Edges[i].A < plan.Edges[j].A
		}
		return plan.Edges[i].B < plan.Edges[j].B
	})

	decisions, err := p.decide(plan, plan.Edges, byID, serviceByMember)
	if err != nil {
		return nil, err
	}
	plan.Decisions = decisions
	return plan, nil
}

func (p *Planner) testPair(plan *Plan, edges map[[2]int64]*Edge, a, b legislature.Member, signal Signal) error {
	if a.ID == b.ID || !Mergeable(a, b).Allowed {
		return nil
	}
	key := [2]int64{a.ID, b.ID}
	if e, ok := edges[key]; ok && e.has(signal) {
		return nil
	}
	out, err := p.tester.Resolve(a.Name, b.Name, signal == SignalService)
	if err != nil {
		if p.skipFatal && errors.Is(err, names.ErrFatal) {
			plan.Fatal = append(plan.Fatal, FatalPair{A: a.ID, B: b.ID, Err: err})
			return nil
		}
		return fmt.Errorf("members %d and %d: %w", a.ID, b.ID, err)
	}
	if !out.IsMatch() {
		return nil
	}

	e, ok := edges[key]
	if !ok {
		e = &Edge{A: a.ID, B: b.ID, Strict: true}
		edges[key] = e
	}
	e.Signals = append(e.Signals, signal)
	if signal == SignalDOB {
		e.Strict = false
	}
	return nil
}

func (p *Planner) decide(plan *Plan, edges []Edge, byID map[int64]legislature.Member,
	services map[int64][]legislature.Service) ([]MergeDecision, error) {
	parent := make(map[int64]int64)
	var find func(int64) int64
	find = func(x int64) int64 {
		if parent[x] == 0 || parent[x] == x {
			return x
		}
		root := find(parent[x])
		parent[x] = root
		return root
	}
	union := func(a, b int64) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		// The smaller id is always the root, so a root is its component's anchor.
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	neighbours := make(map[int64]map[int64]Edge)
	for _, e := range edges {
		union(e.A, e.B)
		for _, pair := range [][2]int64{{e.A, e.B}, {e.B, e.A}} {
			if neighbours[pair[0]] == nil {
				neighbours[pair[0]] = make(map[int64]Edge)
			}
			neighbours[pair[0]][pair[1]] = e
		}
	}

	components := make(map[int64][]int64)
	for id := range neighbours {
		root := find(id)
		components[root] = append(components[root], id)
	}
	anchors := make([]int64, 0, len(components))
	for anchor := range components {
		anchors = append(anchors, anchor)
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i] < anchors[j] })

	var decisions []MergeDecision
	for _, anchorID := range anchors {
		ids := components[anchorID]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		anchor := byID[anchorID]
		d := MergeDecision{
			AnchorID:    anchorID,
			Canonical:   anchor.Name,
			Identifiers: anchor.IDs,
			Members:     map[int64]legislature.Member{anchorID: anchor},
			Services:    map[int64][]legislature.Service{anchorID: services[anchorID]},
		}

		for _, id := range ids {
			if id == anchorID {
				continue
			}
			e, direct := neighbours[anchorID][id]
			if !direct {
				d.Deferred = append(d.Deferred, Deferred{MemberID: id, Reason: fmt.Sprintf("not matched directly with %d", anchorID)})
				continue
			}
			member := byID[id]
			out, err := p.tester.Resolve(d.Canonical, member.Name, e.Strict)
			if err != nil {
				if p.skipFatal && errors.Is(err, names.ErrFatal) {
					plan.Fatal = append(plan.Fatal, FatalPair{A: anchorID, B: id, Err: err})
					d.Deferred = append(d.Deferred, Deferred{MemberID: id, Reason: err.Error()})
					continue
				}
				return nil, fmt.Errorf("merging %d into %d: %w", id, anchorID, err)
			}
			if !out.IsMatch() {
				d.Deferred = append(d.Deferred, Deferred{MemberID: id, Reason: fmt.Sprintf("%s does not match %s: %s", member.Name, d.Canonical, out.Reason)})
				continue
			}
			merged, err := UnionIdentifiers(d.Identifiers, member.IDs)
			if err != nil {
				d.Deferred = append(d.Deferred, Deferred{MemberID: id, Reason: err.Error()})
				continue
			}
			d.Canonical = out.Name
			d.Identifiers = merged
			d.Merged = append(d.Merged, id)
			d.Members[id] = member
			d.Services[id] = services[id]
		}

		decisions = append(decisions, d)
	}
	return decisions, nil
}

func setToSlice(set map[int64]bool) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func sortServices(rows []legislature.Service) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		if rows[i].Chamber != rows[j].Chamber {
			return rows[i].Chamber < rows[j].Chamber
		}
		return rows[i].ID < rows[j].ID
	})
}
