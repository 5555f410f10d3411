package domain_test

import (
	"testing"
	"time"

	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 30, 0, 0, time.UTC)

	t.Run("defaults to year-to-date", func(t *testing.T) {
		p, err := domain.ResolvePeriod("", "", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, now, p.End)
	})

	t.Run("date-only end is pushed to end of day", func(t *testing.T) {
		p, err := domain.ResolvePeriod("2025-03-01", "2025-03-31", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), p.Start)
		// A record at 23:59 on the end date still falls inside the period.
		assert.True(t, p.Contains(time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)))
		assert.False(t, p.Contains(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("rfc3339 end is taken as-is", func(t *testing.T) {
		p, err := domain.ResolvePeriod("2025-03-01", "2025-03-31T10:00:00Z", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.March, 31, 10, 0, 0, 0, time.UTC), p.End)
	})

	t.Run("unparseable input", func(t *testing.T) {
		_, err := domain.ResolvePeriod("last tuesday", "", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := domain.ResolvePeriod("2025-05-01", "2025-04-01", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
	})
}

func TestGranularityBucketKey(t *testing.T) {
	tests := []struct {
		name        string
		granularity domain.Granularity
		date        time.Time
		want        string
	}{
		{
			name:        "daily",
			granularity: domain.GranularityDaily,
			date:        time.Date(2025, time.March, 5, 14, 0, 0, 0, time.UTC),
			want:        "2025-03-05",
		},
		{
			name:        "monthly",
			granularity: domain.GranularityMonthly,
			date:        time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
			want:        "2025-03",
		},
		{
			name:        "yearly",
			granularity: domain.GranularityYearly,
			date:        time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
			want:        "2025",
		},
		{
			name:        "weekly mid-year",
			granularity: domain.GranularityWeekly,
			date:        time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC),
			want:        "2025-W24",
		},
		{
			// Dec 30 2024 is a Monday belonging to ISO week 1 of 2025; the
			// key uses the ISO week-year, not the calendar year.
			name:        "weekly spanning year boundary",
			granularity: domain.GranularityWeekly,
			date:        time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC),
			want:        "2025-W01",
		},
		{
			// Jan 1 2021 is a Friday still inside ISO week 53 of 2020.
			name:        "weekly january in previous iso year",
			granularity: domain.GranularityWeekly,
			date:        time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
			want:        "2020-W53",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.granularity.BucketKey(tt.date))
		})
	}
}

func TestParseGranularity(t *testing.T) {
	g, err := domain.ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityMonthly, g)

	g, err = domain.ParseGranularity("weekly")
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityWeekly, g)

	_, err = domain.ParseGranularity("hourly")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStartOfWeek(t *testing.T) {
	// Wednesday resolves to the preceding Monday.
	wed := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), domain.StartOfWeek(wed))

	// Monday is its own week start; Sunday reaches six days back.
	mon := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), domain.StartOfWeek(mon))
	sun := time.Date(2025, time.March, 16, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), domain.StartOfWeek(sun))
}

func TestTeacherPaymentStatusTransitions(t *testing.T) {
	tests := []struct {
		from domain.TeacherPaymentStatus
		to   domain.TeacherPaymentStatus
		want bool
	}{
		{domain.TeacherPaymentPending, domain.TeacherPaymentApproved, true},
		{domain.TeacherPaymentPending, domain.TeacherPaymentRejected, true},
		{domain.TeacherPaymentPending, domain.TeacherPaymentPaid, false},
		{domain.TeacherPaymentApproved, domain.TeacherPaymentPaid, true},
		{domain.TeacherPaymentApproved, domain.TeacherPaymentRejected, false},
		{domain.TeacherPaymentPaid, domain.TeacherPaymentApproved, false},
		{domain.TeacherPaymentRejected, domain.TeacherPaymentPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestStudentPaymentIsOverdue(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	overdue := domain.StudentPayment{Status: domain.StudentPaymentPending, DueDate: &due}
	assert.True(t, overdue.IsOverdue(now))

	// Completed payments are never overdue, whatever the due date says.
	completed := domain.StudentPayment{Status: domain.StudentPaymentCompleted, DueDate: &due}
	assert.False(t, completed.IsOverdue(now))

	noDue := domain.StudentPayment{Status: domain.StudentPaymentPending}
	assert.False(t, noDue.IsOverdue(now))
}
