package names

import "fmt"

// Tester decides whether two names denote the same person. It holds the
// nickname dictionary it was built with and nothing else.
type Tester struct {
	nicknames *Nicknames
}

// NewTester creates a Tester over the given nickname dictionary.
func NewTester(nicknames *Nicknames) *Tester {
	if nicknames == nil {
		nicknames = NewNicknames(nil, nil, nil)
	}
	return &Tester{nicknames: nicknames}
}

// Nicknames returns the dictionary the tester consults.
func (t *Tester) Nicknames() *Nicknames { return t.nicknames }

// verdict is what a single rule concluded about one field pair.
type verdict int

const (
	pass verdict = iota // rule does not apply, try the next one
	accept
	reject
	undecided
)

// decision is a rule result. For accept it carries the canonical field
// values; for reject and undecided, the reason.
type decision struct {
	verdict verdict
	first   string
	middle  string
	value   string
	reason  string
}

// rule is one named step of an ordered rule chain.
type rule struct {
	name  string
	apply func(t *Tester, a, b Name) (decision, error)
}

// runChain applies rules in order until one decides. An exhausted chain
// rejects.
func (t *Tester) runChain(chain []rule, a, b Name) (decision, string, error) {
	for _, r := range chain {
		d, err := r.apply(t, a, b)
		if err != nil {
			return decision{}, r.name, err
		}
		if d.verdict != pass {
			return d, r.name, nil
		}
	}
	return decision{verdict: reject}, "", nil
}

var lastNameRules = []rule{
	{"missing", func(t *Tester, a, b Name) (decision, error) {
		if a.Last == "" || b.Last == "" {
			return decision{verdict: reject, reason: "missing last name"}, nil
		}
		return decision{}, nil
	}},
	{"exact", func(t *Tester, a, b Name) (decision, error) {
		if a.Last == b.Last {
			return decision{verdict: accept, value: a.Last}, nil
		}
		return decision{}, nil
	}},
	{"title-case", func(t *Tester, a, b Name) (decision, error) {
		ta, tb := TitleCase(a.Last), TitleCase(b.Last)
		if ta != tb {
			return decision{}, nil
		}
		// Keep the spelling that carries information beyond plain title
		// case ("McRae" over "Mcrae"), but never a shouted one.
		switch {
		case allCapsPattern.MatchString(a.Last):
			return decision{verdict: accept, value: b.Last}, nil
		case allCapsPattern.MatchString(b.Last):
			return decision{verdict: accept, value: a.Last}, nil
		case ta == a.Last:
			return decision{verdict: accept, value: b.Last}, nil
		}
		return decision{verdict: accept, value: a.Last}, nil
	}},
}

var firstNameRules = []rule{
	{"exact", func(t *Tester, a, b Name) (decision, error) {
		if a.First == b.First {
			return decision{verdict: accept, first: a.First}, nil
		}
		return decision{}, nil
	}},
	{"nickname", func(t *Tester, a, b Name) (decision, error) {
		ok, err := t.nicknames.IsNicknameOf(a.First, b.First)
		if err != nil {
			return decision{}, err
		}
		if ok {
			return decision{verdict: accept, first: b.First}, nil
		}
		ok, err = t.nicknames.IsNicknameOf(b.First, a.First)
		if err != nil {
			return decision{}, err
		}
		if ok {
			return decision{verdict: accept, first: a.First}, nil
		}
		return decision{}, nil
	}},
	{"initial", func(t *Tester, a, b Name) (decision, error) {
		if long := ExpandInitial(a.First, b.First); long != "" {
			return decision{verdict: accept, first: long}, nil
		}
		return decision{}, nil
	}},
	{"first-middle-swap", func(t *Tester, a, b Name) (decision, error) {
		for _, pair := range [2][2]Name{{a, b}, {b, a}} {
			x, y := pair[0], pair[1]
			if !IsInitial(x.First) || x.Middle == "" || y.Middle != "" {
				continue
			}
			// "J. Robert Smith" is "Robert Smith" going by the middle name.
			if x.Middle == y.First || ExpandInitial(y.First, x.Middle) != "" {
				return decision{verdict: accept, first: x.First, middle: x.Middle}, nil
			}
		}
		return decision{}, nil
	}},
}

var middleNameRules = []rule{
	{"one-sided", func(t *Tester, a, b Name) (decision, error) {
		switch {
		case a.Middle != "" && b.Middle == "":
			return decision{verdict: accept, value: a.Middle}, nil
		case b.Middle != "" && a.Middle == "":
			return decision{verdict: accept, value: b.Middle}, nil
		case a.Middle == "" && b.Middle == "":
			return decision{verdict: accept}, nil
		}
		return decision{}, nil
	}},
	{"exact", func(t *Tester, a, b Name) (decision, error) {
		if a.Middle == b.Middle {
			return decision{verdict: accept, value: a.Middle}, nil
		}
		return decision{}, nil
	}},
	{"initial", func(t *Tester, a, b Name) (decision, error) {
		if long := ExpandInitial(a.Middle, b.Middle); long != "" {
			return decision{verdict: accept, value: long}, nil
		}
		return decision{}, nil
	}},
	{"same-letter", func(t *Tester, a, b Name) (decision, error) {
		if []rune(a.Middle)[0] == []rune(b.Middle)[0] {
			return decision{
				verdict: undecided,
				reason:  fmt.Sprintf("unable to match middle names: %s vs. %s", a.Middle, b.Middle),
			}, nil
		}
		return decision{verdict: reject, reason: "middle names differ"}, nil
	}},
}

// suffixRules are built per call because strictness changes the chain.
func suffixRules(requireSuffix bool) []rule {
	chain := []rule{
		{"exact", func(t *Tester, a, b Name) (decision, error) {
			if suffixKey(a.Suffix) == suffixKey(b.Suffix) {
				return decision{verdict: accept, value: a.Suffix}, nil
			}
			return decision{}, nil
		}},
		{"conflict", func(t *Tester, a, b Name) (decision, error) {
			if a.Suffix != "" && b.Suffix != "" {
				return decision{
					verdict: undecided,
					reason:  fmt.Sprintf("unable to resolve suffixes: %s vs. %s", a.Suffix, b.Suffix),
				}, nil
			}
			return decision{}, nil
		}},
	}
	if requireSuffix {
		return append(chain, rule{"strict", func(t *Tester, a, b Name) (decision, error) {
			return decision{verdict: reject, reason: "suffix required"}, nil
		}})
	}
	return append(chain, rule{"one-sided", func(t *Tester, a, b Name) (decision, error) {
		if a.Suffix != "" {
			return decision{verdict: accept, value: a.Suffix}, nil
		}
		return decision{verdict: accept, value: b.Suffix}, nil
	}})
}

func suffixKey(s string) string {
	return tokenKey(s)
}

// Resolve tests whether a and b denote the same person. On Match the outcome
// carries the canonical name combining the most specific part of each side.
// With requireSuffix a suffix present on only one side is a NoMatch.
//
// The only errors are fatal nickname ambiguities (see ErrFatal); NoMatch and
// Ambiguous are ordinary outcomes.
func (t *Tester) Resolve(a, b Name, requireSuffix bool) (Outcome, error) {
	last, _, err := t.runChain(lastNameRules, a, b)
	if err != nil {
		return Outcome{}, err
	}
	if last.verdict != accept {
		return noMatch(orDefault(last.reason, "last names differ")), nil
	}

	// A bare last name is a subset of the other side.
	if !a.HasQualifiers() {
		b.Last = last.value
		return matched(b), nil
	}
	if !b.HasQualifiers() {
		a.Last = last.value
		return matched(a), nil
	}

	canonical := Name{Last: last.value}

	first, firstRule, err := t.runChain(firstNameRules, a, b)
	if err != nil {
		return Outcome{}, err
	}
	if first.verdict != accept {
		return noMatch("first names differ"), nil
	}
	canonical.First = first.first
	canonical.Middle = first.middle

	if canonical.Middle == "" {
		middle, _, err := t.runChain(middleNameRules, a, b)
		if err != nil {
			return Outcome{}, err
		}
		switch middle.verdict {
		case accept:
			canonical.Middle = middle.value
		case undecided:
			return ambiguous(middle.reason), nil
		default:
			return noMatch(orDefault(middle.reason, "middle names differ")), nil
		}
	}

	suffix, _, err := t.runChain(suffixRules(requireSuffix), a, b)
	if err != nil {
		return Outcome{}, err
	}
	switch suffix.verdict {
	case accept:
		canonical.Suffix = suffix.value
	case undecided:
		return ambiguous(suffix.reason), nil
	default:
		return noMatch(orDefault(suffix.reason, "suffixes differ")), nil
	}

	out := matched(canonical)
	out.Rule = firstRule
	return out, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
