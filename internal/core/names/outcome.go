package names

// Kind tags the result of an equivalence test.
type Kind int

const (
	// NoMatch means the names denote different people.
	NoMatch Kind = iota
	// Match means the names denote the same person; Outcome.Name holds the
	// canonical merge of the two.
	Match
	// Ambiguous means the rules could not decide. Callers treat it as a
	// non-match and surface Outcome.Reason for a human decision.
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Match:
		return "match"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no match"
	}
}

// Outcome is the result of Tester.Resolve.
type Outcome struct {
	Kind   Kind
	Name   Name
	Reason string
	// Rule names the first-name rule that accepted a Match.
	Rule string
}

// IsMatch reports whether the outcome is a Match.
func (o Outcome) IsMatch() bool { return o.Kind == Match }

func matched(n Name) Outcome          { return Outcome{Kind: Match, Name: n} }
func noMatch(reason string) Outcome   { return Outcome{Kind: NoMatch, Reason: reason} }
func ambiguous(reason string) Outcome { return Outcome{Kind: Ambiguous, Reason: reason} }
