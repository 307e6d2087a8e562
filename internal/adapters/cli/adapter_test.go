package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/rollcall/internal/core/dedupe"
	"github.com/example/rollcall/internal/core/legislature"
	"github.com/example/rollcall/internal/core/names"
	"github.com/example/rollcall/internal/core/votematch"
	"github.com/example/rollcall/internal/ports/primary"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// mockVoteMatchService implements primary.VoteMatchService for testing
type mockVoteMatchService struct {
	resp     *primary.MatchVotesResponse
	statuses []primary.CohortStatus
	err      error
	lastReq  primary.MatchVotesRequest
}

func (m *mockVoteMatchService) CrawlStatuses(ctx context.Context) ([]primary.CohortStatus, error) {
	return m.statuses, m.err
}

func (m *mockVoteMatchService) MatchVotes(ctx context.Context, req primary.MatchVotesRequest) (*primary.MatchVotesResponse, error) {
	m.lastReq = req
	return m.resp, m.err
}

var (
	cohort     = legislature.Cohort{Year: 2019, Chamber: legislature.House}
	johnSmith  = legislature.Member{ID: 1, Name: names.Name{First: "John", Last: "Smith"}}
	janeSmith  = legislature.Member{ID: 2, Name: names.Name{First: "Jane", Last: "Smith"}}
	maryJones  = legislature.Member{ID: 3, Name: names.Name{First: "Mary", Last: "Jones"}, IDs: legislature.Identifiers{1003, 0, 0, 0}}
	allMembers = map[int64]legislature.Member{1: johnSmith, 2: janeSmith, 3: maryJones}
)

func partialResult() *votematch.Result {
	return &votematch.Result{
		Cohort:           cohort,
		Members:          allMembers,
		VoteNames:        []string{"SMITH", "SMITH, JOHN", "WHO"},
		Rolls:            4,
		Matches:          map[string]int64{"SMITH, JOHN": 1},
		UnmatchedNames:   []string{"SMITH", "WHO"},
		UnmatchedMembers: []int64{2, 3},
		State:            legislature.StatePartiallyResolved,
	}
}

func TestMatchAdapter_PartialCohort(t *testing.T) {
	svc := &mockVoteMatchService{resp: &primary.MatchVotesResponse{
		Cohorts: []*primary.CohortReport{{Result: partialResult(), WriteSkipped: "not fully resolved"}},
		Totals:  votematch.Counts{UnmatchedNames: 2, Matched: 1, UnmatchedMembers: 2},
	}}
	var out bytes.Buffer
	adapter := NewMatchAdapter(svc, BioURLs{House: "https://example.org/h?id={number}"}, &out)

	_, err := adapter.Match(context.Background(), MatchOptions{MinYear: 2017, DisplayURLs: true})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if svc.lastReq.MinYear != 2017 || svc.lastReq.Write {
		t.Errorf("request = %+v", svc.lastReq)
	}

	got := out.String()
	for _, want := range []string{
		"2019 House: 3 members vs. 3 voter names (4 rolls)\n",
		"  2    1    2\n",
		" 66%  33%  66%\n",
		"\tVote name SMITH is ambiguous\n",
		"\t\tJane Smith (2)\n",
		"\tUnmatched member Mary Jones\n",
		"\thttps://example.org/h?id=1003\n",
		"\tWHO vote name unmatched\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "matched with") {
		t.Errorf("matched names listed without --all:\n%s", got)
	}
}

func TestMatchAdapter_ShowAll(t *testing.T) {
	svc := &mockVoteMatchService{resp: &primary.MatchVotesResponse{
		Cohorts: []*primary.CohortReport{{Result: partialResult()}},
		Skipped: []primary.SkippedCohort{{Cohort: cohort, Reason: "2021 House crawl is not complete (days missing)"}},
	}}
	var out bytes.Buffer
	adapter := NewMatchAdapter(svc, BioURLs{}, &out)

	if _, err := adapter.Match(context.Background(), MatchOptions{ShowAll: true}); err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "\tSMITH, JOHN matched with John Smith\n") {
		t.Errorf("expected matched line:\n%s", got)
	}
	if !strings.Contains(got, "Skipped 2021 House crawl is not complete (days missing)\n") {
		t.Errorf("expected skipped line:\n%s", got)
	}
}

func TestMatchAdapter_WrittenCohort(t *testing.T) {
	res := &votematch.Result{
		Cohort:    cohort,
		Members:   map[int64]legislature.Member{3: maryJones},
		VoteNames: []string{"JONES"},
		Rolls:     1,
		Matches:   map[string]int64{"JONES": 3},
		State:     legislature.StateWritten,
	}
	svc := &mockVoteMatchService{resp: &primary.MatchVotesResponse{
		Cohorts: []*primary.CohortReport{{Result: res, Written: []primary.WrittenName{{Name: "JONES", MemberID: 3, Rows: 1}}}},
		Totals:  votematch.Counts{Matched: 1},
	}}
	var out bytes.Buffer
	adapter := NewMatchAdapter(svc, BioURLs{}, &out)

	if _, err := adapter.Match(context.Background(), MatchOptions{Write: true}); err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "\tWrote member_id 3 for JONES to 1 votes\n") {
		t.Errorf("expected write line:\n%s", got)
	}
	if !strings.Contains(got, "  0% 100%   0%\n") {
		t.Errorf("expected percentages:\n%s", got)
	}
}

func TestMatchAdapter_Error(t *testing.T) {
	svc := &mockVoteMatchService{err: errors.New("db down")}
	adapter := NewMatchAdapter(svc, BioURLs{}, &bytes.Buffer{})

	if _, err := adapter.Match(context.Background(), MatchOptions{}); err == nil {
		t.Error("expected error")
	}
	if err := adapter.Status(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestMatchAdapter_StoppedRunPrintsFinishedCohorts(t *testing.T) {
	res := &votematch.Result{
		Cohort:    cohort,
		Members:   map[int64]legislature.Member{3: maryJones},
		VoteNames: []string{"JONES"},
		Rolls:     1,
		Matches:   map[string]int64{"JONES": 3},
		State:     legislature.StateWritten,
	}
	svc := &mockVoteMatchService{
		resp: &primary.MatchVotesResponse{
			Cohorts: []*primary.CohortReport{{Result: res, Written: []primary.WrittenName{{Name: "JONES", MemberID: 3, Rows: 1}}}},
		},
		err: errors.New("2020 House: vote name \"Rep. Smith\": unexpected title"),
	}
	var out bytes.Buffer
	adapter := NewMatchAdapter(svc, BioURLs{}, &out)

	resp, err := adapter.Match(context.Background(), MatchOptions{Write: true})
	if err == nil {
		t.Fatal("expected error")
	}
	if resp == nil || len(resp.Cohorts) != 1 {
		t.Fatalf("expected the partial response, got %+v", resp)
	}
	got := out.String()
	for _, want := range []string{
		"\tWrote member_id 3 for JONES to 1 votes\n",
		"Stopped after 1 cohorts: 2020 House",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestMatchAdapter_Status(t *testing.T) {
	svc := &mockVoteMatchService{statuses: []primary.CohortStatus{
		{Cohort: cohort, Status: legislature.CrawlComplete},
		{Cohort: legislature.Cohort{Year: 2019, Chamber: legislature.Senate}, Status: legislature.CrawlRollsMissing},
	}}
	var out bytes.Buffer
	adapter := NewMatchAdapter(svc, BioURLs{}, &out)

	if err := adapter.Status(context.Background()); err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "2019   House    complete\n") {
		t.Errorf("expected house line:\n%s", got)
	}
	if !strings.Contains(got, "2019   Senate   rolls missing\n") {
		t.Errorf("expected senate line:\n%s", got)
	}
}

// mockMergeService implements primary.MergeService for testing
type mockMergeService struct {
	resp *primary.FindDuplicatesResponse
	err  error
}

func (m *mockMergeService) FindDuplicates(ctx context.Context, req primary.FindDuplicatesRequest) (*primary.FindDuplicatesResponse, error) {
	return m.resp, m.err
}

func TestMergeAdapter_FindDuplicates(t *testing.T) {
	anchor := legislature.Member{ID: 3, Name: names.Name{First: "Mary", Last: "Jones"}, IDs: legislature.Identifiers{1003, 0, 0, 0}}
	dup := legislature.Member{ID: 4, Name: names.Name{First: "Mary", Middle: "A.", Last: "Jones"}, IDs: legislature.Identifiers{0, 77, 0, 0}}
	plan := &dedupe.Plan{Decisions: []dedupe.MergeDecision{{
		AnchorID:  3,
		Canonical: names.Name{First: "Mary", Middle: "A.", Last: "Jones"},
		Merged:    []int64{4},
		Deferred:  []dedupe.Deferred{{MemberID: 9, Reason: "not adjacent to the anchor"}},
		Members:   map[int64]legislature.Member{3: anchor, 4: dup},
		Services: map[int64][]legislature.Service{
			3: {
				{ID: 1, MemberID: 3, Year: 1995, Chamber: legislature.House, District: "7", Party: "D"},
				{ID: 2, MemberID: 3, Year: 1996, Chamber: legislature.House, District: "7", Party: "D"},
				{ID: 3, MemberID: 3, Year: 1997, Chamber: legislature.House, District: "7", Party: "D"},
				{ID: 4, MemberID: 3, Year: 2001, Chamber: legislature.House, District: "7", Party: "D"},
			},
		},
	}}}

	t.Run("dry run", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewMergeAdapter(&mockMergeService{resp: &primary.FindDuplicatesResponse{Plan: plan}}, &out)
		if _, err := adapter.FindDuplicates(context.Background(), false); err != nil {
			t.Fatalf("FindDuplicates failed: %v", err)
		}
		got := out.String()
		for _, want := range []string{
			"Mary A. Jones\n",
			"\t3  1003 ..... ..... ..... Mary Jones\n",
			"\t\tHouse 1995-1997, 2001: D 7\n",
			"\t4 .....    77 ..... ..... Mary A. Jones\n",
			"\tDeferred 9 (anchor 3): not adjacent to the anchor\n",
			"1 members would merge into 1 (dry run, use --write)\n",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q\n%s", want, got)
			}
		}
	})

	t.Run("write", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewMergeAdapter(&mockMergeService{resp: &primary.FindDuplicatesResponse{Plan: plan, Merged: []int64{3}}}, &out)
		if _, err := adapter.FindDuplicates(context.Background(), true); err != nil {
			t.Fatalf("FindDuplicates failed: %v", err)
		}
		if !strings.Contains(out.String(), "✓ Merged 1 members into 1\n") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
	})

	t.Run("nothing to merge", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewMergeAdapter(&mockMergeService{resp: &primary.FindDuplicatesResponse{Plan: &dedupe.Plan{}}}, &out)
		if _, err := adapter.FindDuplicates(context.Background(), false); err != nil {
			t.Fatalf("FindDuplicates failed: %v", err)
		}
		if out.String() != "No duplicate members found\n" {
			t.Errorf("unexpected output:\n%s", out.String())
		}
	})
}

// mockNameService implements primary.NameService for testing
type mockNameService struct {
	parsed *primary.ParsedName
	cmp    *primary.NameComparison
	err    error
}

func (m *mockNameService) ParseName(raw string) (*primary.ParsedName, error) {
	return m.parsed, m.err
}

func (m *mockNameService) CompareNames(a, b string, strict bool) (*primary.NameComparison, error) {
	return m.cmp, m.err
}

func TestNamesAdapter(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		var out bytes.Buffer
		svc := &mockNameService{parsed: &primary.ParsedName{
			Raw:   "BRIAN McRAE",
			Fixed: "Brian McRae",
			Name:  names.Name{First: "Brian", Last: "McRae"},
		}}
		if err := NewNamesAdapter(svc, &out).Parse("BRIAN McRAE"); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		got := out.String()
		if !strings.Contains(got, "Fixed:  Brian McRae\n") || !strings.Contains(got, "Last:   McRae\n") {
			t.Errorf("unexpected output:\n%s", got)
		}
	})

	t.Run("compare", func(t *testing.T) {
		var out bytes.Buffer
		svc := &mockNameService{cmp: &primary.NameComparison{
			A:       names.Name{First: "Bob", Last: "Smith"},
			B:       names.Name{First: "Robert", Last: "Smith"},
			Outcome: names.Outcome{Kind: names.Match, Name: names.Name{First: "Robert", Last: "Smith"}},
		}}
		if err := NewNamesAdapter(svc, &out).Compare("Bob Smith", "Robert Smith", false); err != nil {
			t.Fatalf("Compare failed: %v", err)
		}
		if out.String() != "✓ Bob Smith = Robert Smith => Robert Smith\n" {
			t.Errorf("unexpected output: %q", out.String())
		}
	})

	t.Run("error", func(t *testing.T) {
		svc := &mockNameService{err: names.ErrFatal}
		if err := NewNamesAdapter(svc, &bytes.Buffer{}).Parse("Rep. Smith"); !errors.Is(err, names.ErrFatal) {
			t.Errorf("expected fatal error, got %v", err)
		}
	})
}

// mockLogService implements primary.LogService for testing
type mockLogService struct {
	entries []*primary.LogEntry
	last    primary.LogFilters
}

func (m *mockLogService) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	m.last = filters
	return m.entries, nil
}

func TestLogAdapter_List(t *testing.T) {
	svc := &mockLogService{entries: []*primary.LogEntry{
		{ID: 2, RunID: "0123456789abcdef", EntityType: "member", EntityID: "4", Action: "delete", CreatedAt: "2026-01-02T03:04:05Z"},
		{ID: 1, RunID: "0123456789abcdef", EntityType: "vote", EntityID: "JONES", Action: "update",
			FieldName: "member_id", NewValue: "3", CreatedAt: "2026-01-02T03:04:05Z"},
	}}
	var out bytes.Buffer
	if err := NewLogAdapter(svc, &out).List(context.Background(), "run", 5); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if svc.last.RunID != "run" || svc.last.Limit != 5 {
		t.Errorf("filters = %+v", svc.last)
	}
	want := "2026-01-02T03:04:05Z 01234567 delete  member 4\n" +
		"2026-01-02T03:04:05Z 01234567 update  vote JONES member_id: \"\" -> \"3\"\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	out.Reset()
	if err := NewLogAdapter(&mockLogService{}, &out).List(context.Background(), "", 0); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.String() != "No log entries found\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}
