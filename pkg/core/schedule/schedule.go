package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultRule is the standard weekly Monday rotation recurrence
const DefaultRule = "FREQ=WEEKLY;BYDAY=MO"

// dtstart anchors the recurrence far enough in the past that any
// realistic "now" has occurrences on both sides.
var dtstart = time.Date(2000, time.January, 3, 0, 0, 0, 0, time.UTC)

// Schedule computes rotation week-start dates from a recurrence rule
type Schedule struct {
	rule *rrule.RRule
}

// New builds a Schedule from an RRULE string. An empty string selects
// DefaultRule (weekly on Monday).
func New(ruleStr string) (*Schedule, error) {
	if ruleStr == "" {
		ruleStr = DefaultRule
	}

	rule, err := rrule.StrToRRule(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rotation rule %q: %w", ruleStr, err)
	}
	rule.DTStart(dtstart)

	return &Schedule{rule: rule}, nil
}

// WeekStartOnOrAfter returns the first week-start on or after the given
// time. The result is date-only UTC; if now falls on a week-start day the
// result is that same day.
func (s *Schedule) WeekStartOnOrAfter(now time.Time) time.Time {
	return s.rule.After(truncateToDay(now), true)
}

// WeekStartOnOrBefore returns the most recent week-start on or before the
// given time, identifying the rotation week now falls in.
func (s *Schedule) WeekStartOnOrBefore(now time.Time) time.Time {
	return s.rule.Before(truncateToDay(now), true)
}

// truncateToDay drops the time-of-day component, keeping date-only UTC
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
