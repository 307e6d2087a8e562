package app

import (
	"fmt"
	"strings"

	"github.com/example/rollcall/internal/core/names"
	"github.com/example/rollcall/internal/ports/primary"
)

// NameServiceImpl implements the NameService interface.
type NameServiceImpl struct {
	tester *names.Tester
}

// NewNameService creates a new NameService.
func NewNameService(tester *names.Tester) *NameServiceImpl {
	return &NameServiceImpl{tester: tester}
}

// ParseName normalizes a raw display string.
func (s *NameServiceImpl) ParseName(raw string) (*primary.ParsedName, error) {
	n, err := normalize(raw)
	if err != nil {
		return nil, err
	}
	return &primary.ParsedName{
		Raw:   raw,
		Fixed: names.FixCasing(strings.TrimSpace(raw)),
		Name:  n,
	}, nil
}

// CompareNames normalizes both strings and runs the equivalence test.
func (s *NameServiceImpl) CompareNames(a, b string, strict bool) (*primary.NameComparison, error) {
	na, err := normalize(a)
	if err != nil {
		return nil, err
	}
	nb, err := normalize(b)
	if err != nil {
		return nil, err
	}
	out, err := s.tester.Resolve(na, nb, strict)
	if err != nil {
		return nil, err
	}
	return &primary.NameComparison{A: na, B: nb, Outcome: out}, nil
}

// normalize refuses input that holds no name at all.
func normalize(raw string) (names.Name, error) {
	n, err := names.Normalize(raw)
	if err != nil {
		return names.Name{}, err
	}
	if n.IsZero() {
		return names.Name{}, fmt.Errorf("no name in %q", raw)
	}
	return n, nil
}

// Ensure NameServiceImpl implements the interface
var _ primary.NameService = (*NameServiceImpl)(nil)
