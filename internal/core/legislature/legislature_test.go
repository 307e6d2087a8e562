package legislature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChamberFromLetter(t *testing.T) {
	tests := []struct {
		in      string
		want    Chamber
		wantErr bool
	}{
		{"H", House, false},
		{"s", Senate, false},
		{"Senate", Senate, false},
		{"", 0, true},
		{"X", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ChamberFromLetter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChamberLetter(t *testing.T) {
	assert.Equal(t, "H", House.Letter())
	assert.Equal(t, "S", Senate.Letter())
}

func TestVoteFromLetter(t *testing.T) {
	for _, v := range []Vote{Yea, Nay, NoVote, Leave} {
		got, err := VoteFromLetter(v.Letter())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := VoteFromLetter("Q")
	assert.Error(t, err)
}

func TestSortCohorts(t *testing.T) {
	cohorts := []Cohort{{2001, Senate}, {1999, Senate}, {2001, House}}
	SortCohorts(cohorts)
	assert.Equal(t, []Cohort{{1999, Senate}, {2001, House}, {2001, Senate}}, cohorts)
	assert.Equal(t, "2001 Senate", cohorts[2].String())
}

func TestRollCallYear(t *testing.T) {
	r := RollCall{ID: 1, Stamp: "2019-12-31T23:00:00", DayDate: "2020-01-01"}
	year, err := r.Year()
	require.NoError(t, err)
	assert.Equal(t, 2019, year)

	r.Stamp = ""
	year, err = r.Year()
	require.NoError(t, err)
	assert.Equal(t, 2020, year)

	r.DayDate = "bogus"
	_, err = r.Year()
	assert.Error(t, err)
}

func TestDeriveCrawlStatuses(t *testing.T) {
	days := []SessionDay{
		{ID: 1, Chamber: House, Date: "2019-01-02", Crawled: true},
		{ID: 2, Chamber: House, Date: "2019-01-03", Crawled: true},
		{ID: 3, Chamber: Senate, Date: "2019-01-02", Crawled: true},
		{ID: 4, Chamber: Senate, Date: "2019-01-03", Crawled: false},
		{ID: 5, Chamber: House, Date: "2020-01-02", Crawled: true},
	}
	rolls := []RollCall{
		{ID: 10, DayID: 1, Chamber: House, DayDate: "2019-01-02", Crawled: true},
		{ID: 11, DayID: 5, Chamber: House, Stamp: "2020-01-02T10:00:00", Crawled: false},
		{ID: 12, DayID: 3, Chamber: Senate, DayDate: "2019-01-02", Crawled: false},
	}

	statuses, err := DeriveCrawlStatuses(days, rolls)
	require.NoError(t, err)

	assert.Equal(t, CrawlComplete, statuses.Status(Cohort{2019, House}))
	assert.Equal(t, CrawlDaysMissing, statuses.Status(Cohort{2019, Senate}))
	assert.Equal(t, CrawlRollsMissing, statuses.Status(Cohort{2020, House}))
	assert.Equal(t, CrawlUnknown, statuses.Status(Cohort{2021, House}))
}

func TestDeriveCrawlStatuses_DayOrderDoesNotMatter(t *testing.T) {
	days := []SessionDay{
		{ID: 1, Chamber: House, Date: "2019-01-02", Crawled: false},
		{ID: 2, Chamber: House, Date: "2019-01-03", Crawled: true},
	}
	statuses, err := DeriveCrawlStatuses(days, nil)
	require.NoError(t, err)
	assert.Equal(t, CrawlDaysMissing, statuses.Status(Cohort{2019, House}))
}

func TestStateFor(t *testing.T) {
	assert.Equal(t, StateFullyResolved, StateFor(10, 0, 0))
	assert.Equal(t, StateFullyResolved, StateFor(0, 0, 0))
	assert.Equal(t, StatePartiallyResolved, StateFor(10, 1, 0))
	assert.Equal(t, StatePartiallyResolved, StateFor(10, 0, 1))
	assert.Equal(t, StateUnresolved, StateFor(0, 3, 3))
	assert.True(t, StateFullyResolved.WriteEligible())
	assert.False(t, StatePartiallyResolved.WriteEligible())
}

func TestCondense(t *testing.T) {
	tests := []struct {
		years []int
		want  string
	}{
		{nil, ""},
		{[]int{2001}, "2001"},
		{[]int{1997, 1995, 1996, 2001}, "1995-1997, 2001"},
		{[]int{1995, 1995, 1996}, "1995-1996"},
		{[]int{1990, 1992, 1994}, "1990, 1992, 1994"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Condense(tt.years))
		})
	}
}

func TestCanResolveCohort(t *testing.T) {
	c := Cohort{Year: 2019, Chamber: House}
	tests := []struct {
		name    string
		ctx     ResolveContext
		allowed bool
	}{
		{"complete with work", ResolveContext{Cohort: c, Crawl: CrawlComplete, Unassigned: 5}, true},
		{"incomplete crawl", ResolveContext{Cohort: c, Crawl: CrawlRollsMissing, Unassigned: 5}, false},
		{"already assigned", ResolveContext{Cohort: c, Crawl: CrawlComplete}, false},
		{"already assigned but forced", ResolveContext{Cohort: c, Crawl: CrawlComplete, IncludeDone: true}, true},
		{"before min year", ResolveContext{Cohort: c, Crawl: CrawlComplete, Unassigned: 5, MinYear: 2020}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanResolveCohort(tt.ctx)
			assert.Equal(t, tt.allowed, result.Allowed)
			if !tt.allowed {
				assert.NotEmpty(t, result.Reason)
				assert.Error(t, result.Error())
			}
		})
	}
}

func TestCanWriteCohort(t *testing.T) {
	c := Cohort{Year: 2019, Chamber: Senate}
	assert.True(t, CanWriteCohort(WriteContext{Cohort: c, State: StateFullyResolved}).Allowed)
	assert.False(t, CanWriteCohort(WriteContext{Cohort: c, State: StateFullyResolved, DryRun: true}).Allowed)
	assert.False(t, CanWriteCohort(WriteContext{Cohort: c, State: StatePartiallyResolved}).Allowed)
}
