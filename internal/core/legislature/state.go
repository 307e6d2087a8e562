package legislature

// ResolutionState tracks one vote-resolution pass over a cohort. Nothing is
// persisted between runs; every run starts from StateUnresolved.
type ResolutionState string

const (
	StateUnresolved        ResolutionState = "unresolved"
	StatePartiallyResolved ResolutionState = "partially resolved"
	StateFullyResolved     ResolutionState = "fully resolved"
	StateWritten           ResolutionState = "written"
)

// StateFor derives the state after matching. A cohort is fully resolved
// (write-eligible) only when nothing is left over on either side.
func StateFor(matched, residualNames, residualMembers int) ResolutionState {
	switch {
	case residualNames == 0 && residualMembers == 0:
		return StateFullyResolved
	case matched > 0:
		return StatePartiallyResolved
	}
	return StateUnresolved
}

// WriteEligible reports whether results in this state may be persisted.
func (s ResolutionState) WriteEligible() bool {
	return s == StateFullyResolved
}
