package domain

import (
	"fmt"
	"time"

	"github.com/hammamsawalma/edusystem/internal/apperrors"
)

const dateOnlyFormat = "2006-01-02"

// Period is a closed date interval [Start, End] used to filter ledger
// records. A record matches when Start <= recordDate <= End.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the closed interval.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// ResolvePeriod turns an optional (startDate, endDate) request pair into a
// concrete closed interval. An absent start defaults to January 1 of the
// current year at midnight; an absent end defaults to now. Date-only end
// values are pushed to the last instant of that day so the bound stays
// inclusive for records carrying a time of day. Unparseable input yields
// apperrors.ErrInvalidPeriod.
func ResolvePeriod(startDate, endDate string, now time.Time) (Period, error) {
	p := Period{
		Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}

	if startDate != "" {
		start, _, err := parseDate(startDate)
		if err != nil {
			return Period{}, fmt.Errorf("%w: startDate %q", apperrors.ErrInvalidPeriod, startDate)
		}
		p.Start = start
	}

	if endDate != "" {
		end, dateOnly, err := parseDate(endDate)
		if err != nil {
			return Period{}, fmt.Errorf("%w: endDate %q", apperrors.ErrInvalidPeriod, endDate)
		}
		if dateOnly {
			end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		p.End = end
	}

	if p.End.Before(p.Start) {
		return Period{}, fmt.Errorf("%w: end %s before start %s",
			apperrors.ErrInvalidPeriod, p.End.Format(dateOnlyFormat), p.Start.Format(dateOnlyFormat))
	}

	return p, nil
}

// parseDate accepts YYYY-MM-DD and RFC3339 timestamps. The second return
// value reports whether the input carried no time of day.
func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateOnlyFormat, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, false, nil
}
