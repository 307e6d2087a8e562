// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// Entities and operations understood by the executor.
const (
	EntityVote    = "vote"
	EntityMember  = "member"
	EntityService = "service"

	OpAssign   = "assign"   // votes: set member_id
	OpReassign = "reassign" // votes/services: move from one member to another
	OpUpdate   = "update"
	OpDelete   = "delete"
)

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// PersistEffect represents a database persistence operation.
type PersistEffect struct {
	Entity     string // e.g., "vote", "member", "service"
	Operation  string // e.g., "assign", "update", "delete"
	Data       any    // The entity data
	Conditions any    // Optional conditions/filters
}

func (e PersistEffect) EffectType() string { return "persist" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }

// Flatten expands composites into a flat, ordered list.
func Flatten(effs []Effect) []Effect {
	var out []Effect
	for _, eff := range effs {
		switch typed := eff.(type) {
		case CompositeEffect:
			out = append(out, Flatten(typed.Effects)...)
		case NoEffect:
		default:
			out = append(out, eff)
		}
	}
	return out
}
