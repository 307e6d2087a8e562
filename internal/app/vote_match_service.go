package app

import (
	"context"
	"fmt"

	"github.com/example/rollcall/internal/core/effects"
	"github.com/example/rollcall/internal/core/legislature"
	"github.com/example/rollcall/internal/core/votematch"
	"github.com/example/rollcall/internal/ports/primary"
	"github.com/example/rollcall/internal/ports/secondary"
)

// VoteMatchServiceImpl implements the VoteMatchService interface.
type VoteMatchServiceImpl struct {
	crawlRepo  secondary.CrawlRepository
	memberRepo secondary.MemberRepository
	voteRepo   secondary.VoteRepository
	matcher    *votematch.Matcher
	executor   EffectExecutor
}

// NewVoteMatchService creates a new VoteMatchService with injected dependencies.
func NewVoteMatchService(
	crawlRepo secondary.CrawlRepository,
	memberRepo secondary.MemberRepository,
	voteRepo secondary.VoteRepository,
	matcher *votematch.Matcher,
	executor EffectExecutor,
) *VoteMatchServiceImpl {
	return &VoteMatchServiceImpl{
		crawlRepo:  crawlRepo,
		memberRepo: memberRepo,
		voteRepo:   voteRepo,
		matcher:    matcher,
		executor:   executor,
	}
}

// CrawlStatuses reports the crawl status of every known cohort, sorted.
func (s *VoteMatchServiceImpl) CrawlStatuses(ctx context.Context) ([]primary.CohortStatus, error) {
	statuses, _, err := s.loadCrawl(ctx)
	if err != nil {
		return nil, err
	}
	cohorts := make([]legislature.Cohort, 0, len(statuses))
	for c := range statuses {
		cohorts = append(cohorts, c)
	}
	legislature.SortCohorts(cohorts)

	out := make([]primary.CohortStatus, len(cohorts))
	for i, c := range cohorts {
		out[i] = primary.CohortStatus{Cohort: c, Status: statuses[c]}
	}
	return out, nil
}

// MatchVotes resolves every eligible cohort in order. A fatal error aborts
// the run; cohorts written before it stay written and are returned in the
// partial response alongside the error.
func (s *VoteMatchServiceImpl) MatchVotes(ctx context.Context, req primary.MatchVotesRequest) (*primary.MatchVotesResponse, error) {
	statuses, rolls, err := s.loadCrawl(ctx)
	if err != nil {
		return nil, err
	}

	rollsByCohort := make(map[legislature.Cohort][]int64)
	for _, roll := range rolls {
		c, err := roll.Cohort()
		if err != nil {
			return nil, err
		}
		rollsByCohort[c] = append(rollsByCohort[c], roll.ID)
	}
	cohorts := make([]legislature.Cohort, 0, len(rollsByCohort))
	for c := range rollsByCohort {
		cohorts = append(cohorts, c)
	}
	legislature.SortCohorts(cohorts)

	resp := &primary.MatchVotesResponse{}
	for _, c := range cohorts {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		votes, err := s.voteRepo.ListByRolls(ctx, rollsByCohort[c])
		if err != nil {
			return resp, fmt.Errorf("failed to load votes for %s: %w", c, err)
		}
		unassigned := 0
		for _, v := range votes {
			if v.MemberID == 0 {
				unassigned++
			}
		}

		guard := legislature.CanResolveCohort(legislature.ResolveContext{
			Cohort:      c,
			Crawl:       statuses.Status(c),
			Unassigned:  unassigned,
			MinYear:     req.MinYear,
			IncludeDone: req.IncludeDone,
		})
		if !guard.Allowed {
			resp.Skipped = append(resp.Skipped, primary.SkippedCohort{Cohort: c, Reason: guard.Reason})
			continue
		}

		report, err := s.matchCohort(ctx, c, len(rollsByCohort[c]), votes, req.Write)
		if err != nil {
			return resp, err
		}
		resp.Cohorts = append(resp.Cohorts, report)
		resp.Totals = resp.Totals.Add(report.Result.Counts())
	}
	return resp, nil
}

func (s *VoteMatchServiceImpl) matchCohort(ctx context.Context, c legislature.Cohort, rolls int,
	votes []*secondary.VoteRecord, write bool) (*primary.CohortReport, error) {
	records, err := s.memberRepo.ListByCohort(ctx, c.Year, int(c.Chamber))
	if err != nil {
		return nil, fmt.Errorf("failed to load members for %s: %w", c, err)
	}

	voteNames := make([]string, len(votes))
	rows := make([]votematch.VoteRow, len(votes))
	for i, v := range votes {
		voteNames[i] = v.Name
		rows[i] = votematch.VoteRow{ID: v.ID, SessionID: v.SessionID, RollID: v.RollID, Name: v.Name, MemberID: v.MemberID}
	}

	res, err := s.matcher.MatchCohort(votematch.Input{
		Cohort:    c,
		Members:   membersFromRecords(records),
		VoteNames: voteNames,
		Rolls:     rolls,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to match %s: %w", c, err)
	}

	report := &primary.CohortReport{Result: res}
	effs, guard := votematch.PlanWrites(res, rows, !write)
	if !guard.Allowed {
		report.WriteSkipped = guard.Reason
		return report, nil
	}
	if len(effs) == 0 {
		return report, nil
	}
	if err := s.executor.Execute(ctx, effs); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", c, err)
	}
	res.State = legislature.StateWritten
	for _, eff := range effects.Flatten(effs) {
		persist, ok := eff.(effects.PersistEffect)
		if !ok {
			continue
		}
		if a, ok := persist.Data.(votematch.Assignment); ok {
			report.Written = append(report.Written, primary.WrittenName{
				Name:     a.Name,
				MemberID: a.MemberID,
				Rows:     int64(a.Rows),
			})
		}
	}
	return report, nil
}

func (s *VoteMatchServiceImpl) loadCrawl(ctx context.Context) (legislature.CrawlStatuses, []legislature.RollCall, error) {
	dayRecords, err := s.crawlRepo.ListSessionDays(ctx)
	if err != nil {
		return nil, nil, err
	}
	rollRecords, err := s.crawlRepo.ListRollCalls(ctx)
	if err != nil {
		return nil, nil, err
	}
	rolls := rollsFromRecords(rollRecords)
	statuses, err := legislature.DeriveCrawlStatuses(daysFromRecords(dayRecords), rolls)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive crawl status: %w", err)
	}
	return statuses, rolls, nil
}

// Ensure VoteMatchServiceImpl implements the interface
var _ primary.VoteMatchService = (*VoteMatchServiceImpl)(nil)
