package dedupe

import (
	"github.com/example/rollcall/internal/core/effects"
	"github.com/example/rollcall/internal/core/legislature"
)

// MemberUpdate rewrites the anchor's changed name columns and fills in the
// identifiers it gains.
type MemberUpdate struct {
	ID    int64
	Names map[string]string
	IDs   map[legislature.IdentifierField]int64
}

// VoteReassignment moves every vote of From to To.
type VoteReassignment struct {
	From, To int64
}

// ServiceMove hands one service row to another member.
type ServiceMove struct {
	ServiceID int64
	To        int64
}

// ServiceDrop deletes one service row.
type ServiceDrop struct {
	ServiceID int64
}

// MemberRemoval deletes a member (or its remaining service rows).
type MemberRemoval struct {
	ID int64
}

// PlanMigration returns the writes that carry out a merge decision. Each
// step is a single statement, and the sequence can be replayed from the
// start after an interruption: the anchor is updated first, then every
// duplicate's votes and service rows are moved before the duplicate is
// deleted.
func PlanMigration(d MergeDecision) []effects.Effect {
	if len(d.Merged) == 0 {
		return []effects.Effect{effects.NoEffect{}}
	}

	var effs []effects.Effect

	nameUpdates, idUpdates := d.NameUpdates(), d.IdentifierUpdates()
	if len(nameUpdates) > 0 || len(idUpdates) > 0 {
		effs = append(effs, effects.PersistEffect{
			Entity:    effects.EntityMember,
			Operation: effects.OpUpdate,
			Data:      MemberUpdate{ID: d.AnchorID, Names: nameUpdates, IDs: idUpdates},
		})
	}

	type seat struct {
		year    int
		chamber legislature.Chamber
	}
	held := make(map[seat]legislature.Service)
	for _, s := range d.Services[d.AnchorID] {
		held[seat{s.Year, s.Chamber}] = s
	}

	for _, id := range d.Merged {
		var steps []effects.Effect
		steps = append(steps, effects.PersistEffect{
			Entity:    effects.EntityVote,
			Operation: effects.OpReassign,
			Data:      VoteReassignment{From: id, To: d.AnchorID},
		})

		for _, s := range d.Services[id] {
			key := seat{s.Year, s.Chamber}
			kept, taken := held[key]
			if !taken {
				held[key] = s
				steps = append(steps, effects.PersistEffect{
					Entity:    effects.EntityService,
					Operation: effects.OpReassign,
					Data:      ServiceMove{ServiceID: s.ID, To: d.AnchorID},
				})
				continue
			}
			if kept.District != s.District || kept.Party != s.Party {
				steps = append(steps, effects.LogEffect{
					Level:   "warn",
					Message: "conflicting service rows, keeping the anchor's",
					Fields: map[string]any{
						"anchor": d.AnchorID, "member": id, "year": s.Year, "chamber": s.Chamber.String(),
						"kept": kept.District + " " + kept.Party, "dropped": s.District + " " + s.Party,
					},
				})
			}
			steps = append(steps, effects.PersistEffect{
				Entity:    effects.EntityService,
				Operation: effects.OpDelete,
				Data:      ServiceDrop{ServiceID: s.ID},
			})
		}

		steps = append(steps,
			effects.PersistEffect{Entity: effects.EntityService, Operation: effects.OpDelete, Data: MemberRemoval{ID: id}},
			effects.PersistEffect{Entity: effects.EntityMember, Operation: effects.OpDelete, Data: MemberRemoval{ID: id}},
		)
		effs = append(effs, effects.CompositeEffect{Effects: steps})
	}

	effs = append(effs, effects.LogEffect{
		Level:   "info",
		Message: "members merged",
		Fields:  map[string]any{"anchor": d.AnchorID, "merged": d.Merged, "name": d.Canonical.String()},
	})
	return effs
}
