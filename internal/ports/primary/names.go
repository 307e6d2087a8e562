package primary

import "github.com/example/rollcall/internal/core/names"

// NameService defines the primary port for ad-hoc name checks used during
// manual correction work.
type NameService interface {
	// ParseName normalizes a raw display string.
	ParseName(raw string) (*ParsedName, error)

	// CompareNames runs the equivalence test on two raw strings.
	CompareNames(a, b string, strict bool) (*NameComparison, error)
}

// ParsedName is a normalized display string.
type ParsedName struct {
	Raw   string
	Fixed string // after casing repair
	Name  names.Name
}

// NameComparison is the outcome of comparing two raw strings.
type NameComparison struct {
	A, B    names.Name
	Outcome names.Outcome
}
