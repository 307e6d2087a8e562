package votematch

import (
	"sort"

	"github.com/example/rollcall/internal/core/effects"
	"github.com/example/rollcall/internal/core/legislature"
)

// VoteRow is a stored vote as the write planner needs it.
type VoteRow struct {
	ID        int64
	SessionID int64
	RollID    int64
	Name      string
	MemberID  int64 // zero when unassigned
}

// Assignment sets member_id on every unassigned vote row carrying Name in one
// of SessionIDs and cast on one of RollIDs. A session can span two cohorts,
// so the roll ids are what keep the write inside this cohort. It is the Data
// of an assign PersistEffect.
type Assignment struct {
	Name       string
	MemberID   int64
	SessionIDs []int64
	RollIDs    []int64
	Rows       int // rows expected to change
}

// PlanWrites turns a write-eligible result into vote assignment effects.
// Rows that already carry a member id are left alone. The guard result is
// returned so callers can report why nothing was planned.
func PlanWrites(res *Result, rows []VoteRow, dryRun bool) ([]effects.Effect, legislature.GuardResult) {
	guard := legislature.CanWriteCohort(legislature.WriteContext{
		Cohort: res.Cohort,
		State:  res.State,
		DryRun: dryRun,
	})
	if !guard.Allowed {
		return nil, guard
	}

	type key struct {
		name     string
		memberID int64
	}
	sessions := make(map[key]map[int64]bool)
	rolls := make(map[key]map[int64]bool)
	counts := make(map[key]int)
	for _, row := range rows {
		if row.MemberID != 0 {
			continue
		}
		id, ok := res.Matches[row.Name]
		if !ok {
			continue
		}
		k := key{row.Name, id}
		if sessions[k] == nil {
			sessions[k] = make(map[int64]bool)
			rolls[k] = make(map[int64]bool)
		}
		sessions[k][row.SessionID] = true
		rolls[k][row.RollID] = true
		counts[k]++
	}

	keys := make([]key, 0, len(sessions))
	for k := range sessions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].memberID < keys[j].memberID
	})

	effs := make([]effects.Effect, 0, len(keys)+1)
	for _, k := range keys {
		effs = append(effs, effects.PersistEffect{
			Entity:    effects.EntityVote,
			Operation: effects.OpAssign,
			Data: Assignment{
				Name:       k.name,
				MemberID:   k.memberID,
				SessionIDs: sortedIDs(sessions[k]),
				RollIDs:    sortedIDs(rolls[k]),
				Rows:       counts[k],
			},
		})
	}
	if len(effs) > 0 {
		effs = append(effs, effects.LogEffect{
			Level:   "info",
			Message: "cohort written",
			Fields:  map[string]any{"cohort": res.Cohort.String(), "names": len(keys)},
		})
	}
	return effs, guard
}

func sortedIDs(set map[int64]bool) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
