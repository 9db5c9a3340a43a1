package planner

// Assignment is a watching show's presence on one weekday, carrying the
// inputs capacity and genre scoring need.
type Assignment struct {
	EntryID        int64
	Weekday        int
	RuntimeMinutes int
	Genres         []string
}

// Capacity describes one weekday's minute budget usage. Available is not
// clamped and goes negative when a day is over-assigned.
type Capacity struct {
	Total     int
	Used      int
	Available int
}

// DayCapacity computes the capacity for a weekday from the active
// assignment snapshot.
func DayCapacity(policy BudgetPolicy, weekday int, assignments []Assignment) Capacity {
	total := policy.MinutesForWeekday(weekday)
	used := 0
	for _, a := range assignments {
		if a.Weekday == weekday {
			used += a.RuntimeMinutes
		}
	}
	return Capacity{Total: total, Used: used, Available: total - used}
}

// GenresOnDay returns the distinct genres already represented on a weekday.
func GenresOnDay(weekday int, assignments []Assignment) map[string]struct{} {
	genres := make(map[string]struct{})
	for _, a := range assignments {
		if a.Weekday != weekday {
			continue
		}
		for _, genre := range a.Genres {
			genres[genre] = struct{}{}
		}
	}
	return genres
}
