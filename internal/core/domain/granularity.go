package domain

import (
	"fmt"
	"time"

	"github.com/hammamsawalma/edusystem/internal/apperrors"
)

// Granularity selects the bucket size for cash-flow reports.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// ParseGranularity maps a request value onto a Granularity, defaulting to
// monthly for the empty string.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "":
		return GranularityMonthly, nil
	case string(GranularityDaily), string(GranularityWeekly), string(GranularityMonthly), string(GranularityYearly):
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("%w: unknown period granularity %q", apperrors.ErrValidation, s)
	}
}

// BucketKey derives the grouping key for a record date. Keys are chosen so
// that a plain lexicographic sort orders buckets chronologically:
// daily "2006-01-02", monthly "2006-01", yearly "2006", and weekly
// "2006-W02" using the ISO 8601 week and its week-year (so week 1 spanning
// a year boundary lands in one bucket, and the same week number of two
// different years never collides).
func (g Granularity) BucketKey(t time.Time) string {
	switch g {
	case GranularityDaily:
		return t.Format("2006-01-02")
	case GranularityWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case GranularityYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}
