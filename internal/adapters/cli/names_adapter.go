package cli

import (
	"fmt"
	"io"

	"github.com/example/rollcall/internal/core/names"
	"github.com/example/rollcall/internal/ports/primary"
)

// NamesAdapter translates the names subcommands to NameService calls.
type NamesAdapter struct {
	service primary.NameService
	out     io.Writer
}

// NewNamesAdapter creates a new NamesAdapter.
func NewNamesAdapter(service primary.NameService, out io.Writer) *NamesAdapter {
	return &NamesAdapter{
		service: service,
		out:     out,
	}
}

// Parse prints the structured form of a raw display string.
func (a *NamesAdapter) Parse(raw string) error {
	parsed, err := a.service.ParseName(raw)
	if err != nil {
		return err
	}
	if parsed.Fixed != raw {
		fmt.Fprintf(a.out, "Fixed:  %s\n", parsed.Fixed)
	}
	fmt.Fprintf(a.out, "First:  %s\n", parsed.Name.First)
	fmt.Fprintf(a.out, "Middle: %s\n", parsed.Name.Middle)
	fmt.Fprintf(a.out, "Last:   %s\n", parsed.Name.Last)
	fmt.Fprintf(a.out, "Suffix: %s\n", parsed.Name.Suffix)
	return nil
}

// Compare prints whether two raw strings denote the same person.
func (a *NamesAdapter) Compare(left, right string, strict bool) error {
	cmp, err := a.service.CompareNames(left, right, strict)
	if err != nil {
		return err
	}
	switch cmp.Outcome.Kind {
	case names.Match:
		substringColor.Fprintf(a.out, "✓ %s = %s => %s\n", cmp.A, cmp.B, cmp.Outcome.Name)
	case names.Ambiguous:
		memberColor.Fprintf(a.out, "? %s vs. %s: %s\n", cmp.A, cmp.B, cmp.Outcome.Reason)
	default:
		ambiguousColor.Fprintf(a.out, "✗ %s vs. %s: %s\n", cmp.A, cmp.B, cmp.Outcome.Reason)
	}
	return nil
}
