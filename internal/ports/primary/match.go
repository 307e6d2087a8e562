package primary

import (
	"context"

	"github.com/example/rollcall/internal/core/legislature"
	"github.com/example/rollcall/internal/core/votematch"
)

// VoteMatchService defines the primary port for assigning vote names to members.
type VoteMatchService interface {
	// CrawlStatuses reports the crawl status of every known cohort.
	CrawlStatuses(ctx context.Context) ([]CohortStatus, error)

	// MatchVotes resolves vote names cohort by cohort and, when asked, writes
	// the assignments of fully resolved cohorts.
	MatchVotes(ctx context.Context, req MatchVotesRequest) (*MatchVotesResponse, error)
}

// CohortStatus pairs a cohort with its crawl status.
type CohortStatus struct {
	Cohort legislature.Cohort
	Status legislature.CrawlStatus
}

// MatchVotesRequest contains parameters for a matching run.
type MatchVotesRequest struct {
	Write       bool // persist write-eligible cohorts; otherwise a dry run
	MinYear     int  // skip cohorts before this year (0 = all)
	IncludeDone bool // also match cohorts whose votes are all assigned
}

// MatchVotesResponse contains the result of a matching run.
type MatchVotesResponse struct {
	Cohorts []*CohortReport
	Skipped []SkippedCohort
	Totals  votematch.Counts
}

// CohortReport is the outcome for one matched cohort.
type CohortReport struct {
	Result  *votematch.Result
	Written []WrittenName
	// WriteSkipped explains why nothing was written (dry run, not fully
	// resolved); empty when writes happened.
	WriteSkipped string
}

// WrittenName records the votes assigned for one name.
type WrittenName struct {
	Name     string
	MemberID int64
	Rows     int64
}

// SkippedCohort is a cohort that was not matched this run.
type SkippedCohort struct {
	Cohort legislature.Cohort
	Reason string
}
