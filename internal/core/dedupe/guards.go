// Package dedupe finds member rows that describe the same legislator and
// plans their merge. It is part of the functional core - planning is pure and
// the migration is returned as effects for the shell to execute.
package dedupe

import (
	"fmt"

	"github.com/example/rollcall/internal/core/legislature"
)

// Mergeable evaluates whether two members may be merged.
// Rule: an identifier field populated with different values on both sides
// proves two different people. Equal values only occur when an earlier merge
// was interrupted after the anchor took over the duplicate's ids.
func Mergeable(a, b legislature.Member) legislature.GuardResult {
	for _, field := range legislature.IdentifierFields {
		va, vb := a.IDs.Get(field), b.IDs.Get(field)
		if va != 0 && vb != 0 && va != vb {
			return legislature.GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("members %d and %d have different %s (%d vs. %d)", a.ID, b.ID, field, va, vb),
			}
		}
	}
	return legislature.GuardResult{Allowed: true}
}

// UnionIdentifiers folds b's identifiers into a. It fails on the first field
// both sides populate differently.
func UnionIdentifiers(a, b legislature.Identifiers) (legislature.Identifiers, error) {
	for _, field := range legislature.IdentifierFields {
		va, vb := a.Get(field), b.Get(field)
		switch {
		case vb == 0 || va == vb:
		case va == 0:
			a = a.Set(field, vb)
		default:
			return a, fmt.Errorf("conflicting %s: %d vs. %d", field, va, vb)
		}
	}
	return a, nil
}
