package names

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed nicknames.yaml
var defaultNicknamesYAML []byte

// Nicknames is an immutable nickname dictionary plus the manual override
// pairs and the canonical (long form) allow-list used to break ties. It is
// safe to share once built.
type Nicknames struct {
	// canonical name (lower case) -> its nicknames (lower case)
	table     map[string]map[string]bool
	overrides map[[2]string]bool
	canonical map[string]bool
}

// NicknameFile is the on-disk format of a nickname dictionary.
type NicknameFile struct {
	Overrides [][2]string         `yaml:"overrides"`
	Canonical []string            `yaml:"canonical"`
	Names     map[string][]string `yaml:"names"`
}

// NewNicknames builds a dictionary. table maps a given name to the names that
// are nicknames of it; overrides are exact (nickname, name) pairs that always
// match; canonical lists the long given names that win a bidirectional tie.
func NewNicknames(table map[string][]string, overrides [][2]string, canonical []string) *Nicknames {
	n := &Nicknames{
		table:     make(map[string]map[string]bool, len(table)),
		overrides: make(map[[2]string]bool, len(overrides)),
		canonical: make(map[string]bool, len(canonical)),
	}
	for name, nicks := range table {
		key := strings.ToLower(name)
		set := n.table[key]
		if set == nil {
			set = make(map[string]bool, len(nicks))
			n.table[key] = set
		}
		for _, nick := range nicks {
			set[strings.ToLower(nick)] = true
		}
	}
	for _, pair := range overrides {
		n.overrides[pair] = true
	}
	for _, name := range canonical {
		n.canonical[name] = true
	}
	return n
}

// ParseNicknames decodes a YAML nickname file.
func ParseNicknames(data []byte) (*Nicknames, error) {
	var f NicknameFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse nickname table: %w", err)
	}
	return NewNicknames(f.Names, f.Overrides, f.Canonical), nil
}

// DefaultNicknames returns the embedded dictionary.
func DefaultNicknames() *Nicknames {
	n, err := ParseNicknames(defaultNicknamesYAML)
	if err != nil {
		panic(err)
	}
	return n
}

// With returns a copy with extra override pairs and canonical names added.
func (n *Nicknames) With(overrides [][2]string, canonical []string) *Nicknames {
	table := make(map[string][]string, len(n.table))
	for name, set := range n.table {
		for nick := range set {
			table[name] = append(table[name], nick)
		}
	}
	allOverrides := append(n.Overrides(), overrides...)
	allCanonical := append(n.Canonical(), canonical...)
	return NewNicknames(table, allOverrides, allCanonical)
}

// NicknamesOf lists the recorded nicknames of name, sorted.
func (n *Nicknames) NicknamesOf(name string) []string {
	set := n.table[strings.ToLower(name)]
	out := make([]string, 0, len(set))
	for nick := range set {
		out = append(out, nick)
	}
	sort.Strings(out)
	return out
}

// Overrides lists the manual pairs, sorted.
func (n *Nicknames) Overrides() [][2]string {
	out := make([][2]string, 0, len(n.overrides))
	for pair := range n.overrides {
		out = append(out, pair)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// Canonical lists the tie-break allow-list, sorted.
func (n *Nicknames) Canonical() []string {
	out := make([]string, 0, len(n.canonical))
	for name := range n.canonical {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (n *Nicknames) listed(nick, name string) bool {
	return n.table[strings.ToLower(name)][strings.ToLower(nick)]
}

// IsNicknameOf reports whether a is a recognized alternate of b.
//
// When a and b each list the other, the canonical allow-list decides: b on
// the list makes a its nickname, a on the list rejects the relation. Neither
// on the list returns *AmbiguousNicknameError.
func (n *Nicknames) IsNicknameOf(a, b string) (bool, error) {
	if n.overrides[[2]string{a, b}] {
		return true, nil
	}
	if a == "" || b == "" || !n.listed(a, b) {
		return false, nil
	}
	if !n.listed(b, a) {
		return true, nil
	}

	switch {
	case n.canonical[b]:
		return true, nil
	case n.canonical[a]:
		return false, nil
	default:
		return false, &AmbiguousNicknameError{A: a, B: b}
	}
}
