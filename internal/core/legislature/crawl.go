package legislature

import (
	"fmt"
	"time"
)

// CrawlStatus reports how much of a cohort the crawler has retrieved.
type CrawlStatus string

const (
	CrawlComplete     CrawlStatus = "complete"
	CrawlDaysMissing  CrawlStatus = "days missing"
	CrawlRollsMissing CrawlStatus = "rolls missing"
	CrawlUnknown      CrawlStatus = "unknown"
)

// SessionDay is a crawled (or pending) session day.
type SessionDay struct {
	ID      int64
	Chamber Chamber
	Date    string // ISO date
	Crawled bool
}

// RollCall is a crawled (or pending) roll call.
type RollCall struct {
	ID      int64
	DayID   int64
	Chamber Chamber
	Stamp   string // ISO timestamp, may be empty
	DayDate string // ISO date of the session day
	Crawled bool
}

// Year returns the roll call's calendar year: from its timestamp, or from its
// session day when the timestamp is missing.
func (r RollCall) Year() (int, error) {
	if r.Stamp != "" {
		return YearOf(r.Stamp)
	}
	return YearOf(r.DayDate)
}

// Cohort returns the cohort the roll call belongs to.
func (r RollCall) Cohort() (Cohort, error) {
	year, err := r.Year()
	if err != nil {
		return Cohort{}, fmt.Errorf("roll call %d: %w", r.ID, err)
	}
	return Cohort{Year: year, Chamber: r.Chamber}, nil
}

// YearOf extracts the year from an ISO date or timestamp.
func YearOf(s string) (int, error) {
	if len(s) < 10 {
		return 0, fmt.Errorf("invalid date %q", s)
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.Year(), nil
}

// CrawlStatuses is the crawl oracle's answer for every cohort it knows.
type CrawlStatuses map[Cohort]CrawlStatus

// Status returns the status of c, CrawlUnknown when nothing is known.
func (s CrawlStatuses) Status(c Cohort) CrawlStatus {
	if status, ok := s[c]; ok {
		return status
	}
	return CrawlUnknown
}

// DeriveCrawlStatuses computes per-cohort crawl status. A cohort with an
// uncrawled day is "days missing"; otherwise one with an uncrawled roll call
// is "rolls missing"; otherwise it is complete.
func DeriveCrawlStatuses(days []SessionDay, rolls []RollCall) (CrawlStatuses, error) {
	statuses := make(CrawlStatuses)

	for _, day := range days {
		year, err := YearOf(day.Date)
		if err != nil {
			return nil, fmt.Errorf("session day %d: %w", day.ID, err)
		}
		c := Cohort{Year: year, Chamber: day.Chamber}
		if !day.Crawled {
			statuses[c] = CrawlDaysMissing
		} else if _, seen := statuses[c]; !seen {
			statuses[c] = CrawlComplete
		}
	}

	for _, roll := range rolls {
		if roll.Crawled {
			continue
		}
		c, err := roll.Cohort()
		if err != nil {
			return nil, err
		}
		if statuses[c] == CrawlComplete {
			statuses[c] = CrawlRollsMissing
		}
	}

	return statuses, nil
}
