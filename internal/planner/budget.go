package planner

import "time"

// Default minute budgets used when no settings row has been persisted.
const (
	DefaultWeekdayMinutes = 120
	DefaultWeekendMinutes = 240
)

// BudgetPolicy resolves how many minutes of viewing a weekday holds.
// Overrides are indexed Sunday through Saturday; a nil slot falls back to
// the weekday or weekend default.
type BudgetPolicy struct {
	WeekdayMinutes int
	WeekendMinutes int
	Overrides      [7]*int
}

// DefaultPolicy returns the built-in budget policy.
func DefaultPolicy() BudgetPolicy {
	return BudgetPolicy{
		WeekdayMinutes: DefaultWeekdayMinutes,
		WeekendMinutes: DefaultWeekendMinutes,
	}
}

// MinutesForWeekday resolves the minute budget for a weekday (0=Sunday).
func (p BudgetPolicy) MinutesForWeekday(weekday int) int {
	if weekday < 0 || weekday > 6 {
		return 0
	}
	if override := p.Overrides[weekday]; override != nil {
		return *override
	}
	if weekday == int(time.Saturday) || weekday == int(time.Sunday) {
		return p.WeekendMinutes
	}
	return p.WeekdayMinutes
}
