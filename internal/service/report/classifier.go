package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
)

// Policy names the precedence rules a report classifies with.
type Policy string

const (
	// PolicyDaily: Filled > Draft > OnLeave > Pending. Holidays are a banner on the
	// report and never change an employee's status.
	PolicyDaily Policy = "daily"

	// PolicyTrailing: uncovered days are Pending, any draft coverage is Draft.
	// Leave and holidays are not consulted.
	PolicyTrailing Policy = "trailing"

	// PolicyWeeklyPending: weekends and holidays are skipped, a day without a
	// submitted record is Pending.
	PolicyWeeklyPending Policy = "weekly_pending"

	// PolicyMonthly: Holiday > Filled > Pending over every calendar day.
	PolicyMonthly Policy = "monthly"
)

// DayFacts is what the roster sources say about one employee on one day.
type DayFacts struct {
	Date      time.Time
	Submitted bool
	Draft     bool
	Leave     bool
	Holiday   bool
}

// Classifier assigns a status to one employee-day. ok is false when the policy
// leaves the day out of the report entirely.
type Classifier interface {
	Policy() Policy
	Classify(day DayFacts) (status report.Status, ok bool)
}

// NewClassifier returns the classifier for a named policy.
func NewClassifier(p Policy) (Classifier, error) {
	switch p {
	case PolicyDaily:
		return dailyClassifier{}, nil
	case PolicyTrailing:
		return trailingClassifier{}, nil
	case PolicyWeeklyPending:
		return weeklyPendingClassifier{}, nil
	case PolicyMonthly:
		return monthlyClassifier{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", report.ErrUnknownPolicy, p)
	}
}

func mustClassifier(p Policy) Classifier {
	c, err := NewClassifier(p)
	if err != nil {
		panic(err)
	}
	return c
}

type dailyClassifier struct{}

func (dailyClassifier) Policy() Policy { return PolicyDaily }

func (dailyClassifier) Classify(day DayFacts) (report.Status, bool) {
	switch {
	case day.Submitted:
		return report.StatusFilled, true
	case day.Draft:
		return report.StatusDraft, true
	case day.Leave:
		return report.StatusOnLeave, true
	default:
		return report.StatusPending, true
	}
}

type trailingClassifier struct{}

func (trailingClassifier) Policy() Policy { return PolicyTrailing }

func (trailingClassifier) Classify(day DayFacts) (report.Status, bool) {
	switch {
	case !day.Submitted && !day.Draft:
		return report.StatusPending, true
	case day.Draft:
		return report.StatusDraft, true
	default:
		return report.StatusFilled, true
	}
}

type weeklyPendingClassifier struct{}

func (weeklyPendingClassifier) Policy() Policy { return PolicyWeeklyPending }

func (weeklyPendingClassifier) Classify(day DayFacts) (report.Status, bool) {
	if !calendar.IsWeekday(day.Date) || day.Holiday {
		return "", false
	}
	if day.Submitted {
		return report.StatusFilled, true
	}
	return report.StatusPending, true
}

type monthlyClassifier struct{}

func (monthlyClassifier) Policy() Policy { return PolicyMonthly }

func (monthlyClassifier) Classify(day DayFacts) (report.Status, bool) {
	switch {
	case day.Holiday:
		return report.StatusHoliday, true
	case day.Submitted:
		return report.StatusFilled, true
	default:
		return report.StatusPending, true
	}
}
