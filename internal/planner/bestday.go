package planner

// genreNoveltyBonus rewards placing a show on a day that has none of its
// genres yet, favoring variety over raw packing efficiency.
const genreNoveltyBonus = 30

// BestDay picks the weekday a show should be assigned to. Days whose
// available minutes cover the runtime are scored by availability plus a
// novelty bonus when the show shares no genre with the day; the highest
// score wins with ties broken by lowest weekday index. When no day can fit
// the runtime, the day with the greatest available minutes is returned so
// assignment succeeds even over budget.
func BestDay(policy BudgetPolicy, assignments []Assignment, runtimeMinutes int, genres []string) int {
	capacities := make([]Capacity, 7)
	for weekday := 0; weekday < 7; weekday++ {
		capacities[weekday] = DayCapacity(policy, weekday, assignments)
	}

	viable := make([]int, 0, 7)
	for weekday := 0; weekday < 7; weekday++ {
		if capacities[weekday].Available >= runtimeMinutes {
			viable = append(viable, weekday)
		}
	}

	if len(viable) == 0 {
		best := 0
		for weekday := 1; weekday < 7; weekday++ {
			if capacities[weekday].Available > capacities[best].Available {
				best = weekday
			}
		}
		return best
	}

	bestDay := viable[0]
	bestScore := scoreDay(capacities[viable[0]], viable[0], assignments, genres)
	for _, weekday := range viable[1:] {
		score := scoreDay(capacities[weekday], weekday, assignments, genres)
		if score > bestScore {
			bestDay = weekday
			bestScore = score
		}
	}
	return bestDay
}

func scoreDay(capacity Capacity, weekday int, assignments []Assignment, genres []string) int {
	score := capacity.Available
	if !sharesGenre(weekday, assignments, genres) {
		score += genreNoveltyBonus
	}
	return score
}

func sharesGenre(weekday int, assignments []Assignment, genres []string) bool {
	onDay := GenresOnDay(weekday, assignments)
	for _, genre := range genres {
		if _, ok := onDay[genre]; ok {
			return true
		}
	}
	return false
}
