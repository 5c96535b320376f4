package report

import (
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassifier_UnknownPolicy(t *testing.T) {
	_, err := NewClassifier("quarterly")
	assert.ErrorIs(t, err, report.ErrUnknownPolicy)
}

func TestClassify_Daily(t *testing.T) {
	tuesday := calendar.Date(2025, 10, 7)
	cases := []struct {
		name string
		day  DayFacts
		want report.Status
	}{
		{"nothing", DayFacts{}, report.StatusPending},
		{"submitted", DayFacts{Submitted: true}, report.StatusFilled},
		{"submitted beats draft and leave", DayFacts{Submitted: true, Draft: true, Leave: true}, report.StatusFilled},
		{"draft beats leave", DayFacts{Draft: true, Leave: true}, report.StatusDraft},
		{"leave", DayFacts{Leave: true}, report.StatusOnLeave},
		{"holiday does not override", DayFacts{Holiday: true}, report.StatusPending},
	}

	c := mustClassifier(PolicyDaily)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.day.Date = tuesday
			got, ok := c.Classify(tc.day)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Every combination of facts yields exactly one status, and Filled whenever a
// submitted record covers the day.
func TestClassify_Daily_SubmittedPrecedence(t *testing.T) {
	c := mustClassifier(PolicyDaily)
	for mask := 0; mask < 16; mask++ {
		day := DayFacts{
			Date:      calendar.Date(2025, 10, 7),
			Submitted: mask&1 != 0,
			Draft:     mask&2 != 0,
			Leave:     mask&4 != 0,
			Holiday:   mask&8 != 0,
		}
		got, ok := c.Classify(day)
		require.True(t, ok)
		if day.Submitted {
			assert.Equal(t, report.StatusFilled, got, "%+v", day)
		} else {
			assert.NotEqual(t, report.StatusFilled, got, "%+v", day)
		}
	}
}

func TestClassify_Trailing(t *testing.T) {
	c := mustClassifier(PolicyTrailing)
	cases := []struct {
		name string
		day  DayFacts
		want report.Status
	}{
		{"uncovered is missing", DayFacts{}, report.StatusPending},
		{"leave is ignored", DayFacts{Leave: true, Holiday: true}, report.StatusPending},
		{"any draft", DayFacts{Draft: true, Submitted: true}, report.StatusDraft},
		{"submitted only", DayFacts{Submitted: true}, report.StatusFilled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := c.Classify(tc.day)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify_WeeklyPending(t *testing.T) {
	c := mustClassifier(PolicyWeeklyPending)

	_, ok := c.Classify(DayFacts{Date: calendar.Date(2025, 10, 11)})
	assert.False(t, ok, "saturday is skipped")

	_, ok = c.Classify(DayFacts{Date: calendar.Date(2025, 10, 7), Holiday: true})
	assert.False(t, ok, "holiday is skipped")

	got, ok := c.Classify(DayFacts{Date: calendar.Date(2025, 10, 7), Draft: true, Leave: true})
	require.True(t, ok)
	assert.Equal(t, report.StatusPending, got)

	got, _ = c.Classify(DayFacts{Date: calendar.Date(2025, 10, 7), Submitted: true})
	assert.Equal(t, report.StatusFilled, got)
}

func TestClassify_Monthly(t *testing.T) {
	c := mustClassifier(PolicyMonthly)

	got, _ := c.Classify(DayFacts{Date: calendar.Date(2025, 10, 11), Holiday: true, Submitted: true})
	assert.Equal(t, report.StatusHoliday, got)

	got, _ = c.Classify(DayFacts{Date: calendar.Date(2025, 10, 11), Submitted: true})
	assert.Equal(t, report.StatusFilled, got)

	got, ok := c.Classify(DayFacts{Date: calendar.Date(2025, 10, 12)})
	require.True(t, ok, "weekends are reported")
	assert.Equal(t, report.StatusPending, got)
}
