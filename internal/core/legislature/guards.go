package legislature

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ResolveContext is what the resolve guard needs to know about a cohort.
type ResolveContext struct {
	Cohort      Cohort
	Crawl       CrawlStatus
	Unassigned  int // vote rows without a member
	MinYear     int // 0 means no lower bound
	IncludeDone bool
}

// CanResolveCohort evaluates whether a cohort should be matched this run.
// Rule: only fully crawled cohorts are matched, and cohorts whose vote rows
// are all assigned are skipped unless explicitly requested.
func CanResolveCohort(ctx ResolveContext) GuardResult {
	if ctx.MinYear > 0 && ctx.Cohort.Year < ctx.MinYear {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s is before %d", ctx.Cohort, ctx.MinYear),
		}
	}
	if ctx.Crawl != CrawlComplete {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s crawl is not complete (%s)", ctx.Cohort, ctx.Crawl),
		}
	}
	if ctx.Unassigned == 0 && !ctx.IncludeDone {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s is already assigned", ctx.Cohort),
		}
	}
	return GuardResult{Allowed: true}
}

// WriteContext provides context for the write guard.
type WriteContext struct {
	Cohort Cohort
	State  ResolutionState
	DryRun bool
}

// CanWriteCohort evaluates whether resolved assignments may be persisted.
// Rule: only a fully resolved cohort is written, and never on a dry run.
func CanWriteCohort(ctx WriteContext) GuardResult {
	if ctx.DryRun {
		return GuardResult{Allowed: false, Reason: "dry run"}
	}
	if !ctx.State.WriteEligible() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s is %s - only fully resolved cohorts are written", ctx.Cohort, ctx.State),
		}
	}
	return GuardResult{Allowed: true}
}
