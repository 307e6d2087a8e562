// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/rollcall/internal/config"
	"github.com/example/rollcall/internal/core/legislature"
	"github.com/example/rollcall/internal/core/votematch"
	"github.com/example/rollcall/internal/ports/primary"
)

var (
	ambiguousColor   = color.New(color.FgRed)
	candidateColor   = color.New(color.FgHiRed)
	memberColor      = color.New(color.FgYellow)
	voteNameColor    = color.New(color.FgHiYellow)
	matchedColor     = color.New(color.FgBlue)
	substringColor   = color.New(color.FgHiGreen)
	countsColor      = color.New(color.FgHiBlue)
	percentagesColor = color.New(color.FgBlue)
	noteColor        = color.New(color.FgHiBlack)
	headerColor      = color.New(color.FgHiWhite, color.Bold)
)

// BioURLs holds the biography URL templates shown for unmatched members.
type BioURLs struct {
	House  string
	Senate string
}

// MatchOptions controls a match run and its report.
type MatchOptions struct {
	Write       bool
	MinYear     int
	IncludeDone bool
	ShowAll     bool // list matched names and skipped cohorts too
	DisplayURLs bool
}

// MatchAdapter translates match and status commands to VoteMatchService calls.
type MatchAdapter struct {
	service primary.VoteMatchService
	urls    BioURLs
	out     io.Writer
}

// NewMatchAdapter creates a new MatchAdapter.
func NewMatchAdapter(service primary.VoteMatchService, urls BioURLs, out io.Writer) *MatchAdapter {
	return &MatchAdapter{
		service: service,
		urls:    urls,
		out:     out,
	}
}

// Match runs vote matching and prints the review report. When the run
// stops on an error, the cohorts finished before it are still printed.
func (a *MatchAdapter) Match(ctx context.Context, opts MatchOptions) (*primary.MatchVotesResponse, error) {
	resp, err := a.service.MatchVotes(ctx, primary.MatchVotesRequest{
		Write:       opts.Write,
		MinYear:     opts.MinYear,
		IncludeDone: opts.IncludeDone,
	})
	if resp == nil {
		return nil, err
	}

	for _, report := range resp.Cohorts {
		a.printCohort(report, opts)
	}
	if err != nil {
		ambiguousColor.Fprintf(a.out, "Stopped after %d cohorts: %v\n", len(resp.Cohorts), err)
		return resp, err
	}

	if opts.ShowAll {
		for _, skipped := range resp.Skipped {
			noteColor.Fprintf(a.out, "Skipped %s\n", skipped.Reason)
		}
	}

	if len(resp.Cohorts) == 0 {
		fmt.Fprintln(a.out, "No cohorts to match")
		return resp, nil
	}

	fmt.Fprintln(a.out)
	n := resp.Totals.UnmatchedNames + resp.Totals.Matched
	a.printCounts(resp.Totals, n, n)
	return resp, nil
}

func (a *MatchAdapter) printCohort(report *primary.CohortReport, opts MatchOptions) {
	res := report.Result
	headerColor.Fprintf(a.out, "%s: %d members vs. %d voter names (%d rolls)\n",
		res.Cohort, len(res.Members), len(res.VoteNames), res.Rolls)

	for _, m := range res.Substring {
		substringColor.Fprintf(a.out, "Substring match: %s => %s\n", m.VoteName, res.Members[m.MemberID].Name)
	}
	for _, note := range res.Notes {
		noteColor.Fprintf(a.out, "\t%s\n", note.Message)
	}
	for _, fatal := range res.Fatal {
		ambiguousColor.Fprintf(a.out, "\tSkipped %s: %v\n", fatal.VoteName, fatal.Err)
	}

	a.printCounts(res.Counts(), len(res.VoteNames), len(res.Members))

	if res.State.WriteEligible() || res.State == legislature.StateWritten {
		for _, w := range report.Written {
			fmt.Fprintf(a.out, "\tWrote member_id %d for %s to %d votes\n", w.MemberID, w.Name, w.Rows)
		}
		if report.WriteSkipped != "" && opts.ShowAll {
			noteColor.Fprintf(a.out, "\tNot written: %s\n", report.WriteSkipped)
		}
		if !opts.ShowAll {
			return
		}
	}

	for _, item := range res.Review(opts.ShowAll) {
		switch item.Kind {
		case votematch.ItemAmbiguousName:
			ambiguousColor.Fprintf(a.out, "\tVote name %s is ambiguous\n", item.Name)
			for _, m := range item.Members {
				candidateColor.Fprintf(a.out, "\t\t%s (%d)\n", m.Name, m.ID)
			}
		case votematch.ItemUnmatchedMember:
			for _, m := range item.Members {
				memberColor.Fprintf(a.out, "\tUnmatched member %s\n", m.Name)
				if opts.DisplayURLs {
					for _, url := range a.bioURLs(m) {
						memberColor.Fprintf(a.out, "\t%s\n", url)
					}
				}
			}
		case votematch.ItemUnmatchedName:
			voteNameColor.Fprintf(a.out, "\t%s vote name unmatched\n", item.Name)
		case votematch.ItemMatched:
			matchedColor.Fprintf(a.out, "\t%s matched with %s\n", item.Name, item.Members[0].Name)
		}
	}
}

// printCounts prints unmatched names, matched names and unmatched members,
// then the same as percentages.
func (a *MatchAdapter) printCounts(c votematch.Counts, nameTotal, memberTotal int) {
	countsColor.Fprintf(a.out, "%3d  %3d  %3d\n", c.UnmatchedNames, c.Matched, c.UnmatchedMembers)
	left, matched, members := c.Percentages(nameTotal, memberTotal)
	percentagesColor.Fprintf(a.out, "%3d%% %3d%% %3d%%\n", left, matched, members)
}

func (a *MatchAdapter) bioURLs(m legislature.Member) []string {
	var urls []string
	if id := m.IDs.Get(legislature.HouseArchiveID); id != 0 && a.urls.House != "" {
		urls = append(urls, config.BioURL(a.urls.House, id))
	}
	if id := m.IDs.Get(legislature.SenateArchiveID); id != 0 && a.urls.Senate != "" {
		urls = append(urls, config.BioURL(a.urls.Senate, id))
	}
	return urls
}

// Status prints the crawl status of every cohort.
func (a *MatchAdapter) Status(ctx context.Context) error {
	statuses, err := a.service.CrawlStatuses(ctx)
	if err != nil {
		return fmt.Errorf("failed to get crawl status: %w", err)
	}
	if len(statuses) == 0 {
		fmt.Fprintln(a.out, "No crawled sessions found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-6s %-8s %s\n", "YEAR", "CHAMBER", "STATUS")
	fmt.Fprintln(a.out, "────────────────────────────────")
	for _, s := range statuses {
		line := fmt.Sprintf("%-6d %-8s %s", s.Cohort.Year, s.Cohort.Chamber, s.Status)
		if s.Status == legislature.CrawlComplete {
			fmt.Fprintln(a.out, line)
		} else {
			memberColor.Fprintln(a.out, line)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}
