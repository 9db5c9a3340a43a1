package planner

// Candidate is a queued entry considered for auto-promotion after a
// watching slot frees up.
type Candidate struct {
	EntryID        int64
	RuntimeMinutes int
	Priority       int
}

// BestReplacement selects the queued candidate whose runtime most closely
// matches the freed show's runtime. Score is 100 minus the absolute runtime
// difference; the highest score wins with ties broken by lowest priority
// value. Returns false when no candidates exist.
func BestReplacement(candidates []Candidate, freedRuntimeMinutes int) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	bestScore := replacementScore(best, freedRuntimeMinutes)
	for _, candidate := range candidates[1:] {
		score := replacementScore(candidate, freedRuntimeMinutes)
		switch {
		case score > bestScore:
			best = candidate
			bestScore = score
		case score == bestScore && candidate.Priority < best.Priority:
			best = candidate
		}
	}
	return best, true
}

func replacementScore(candidate Candidate, freedRuntimeMinutes int) int {
	delta := candidate.RuntimeMinutes - freedRuntimeMinutes
	if delta < 0 {
		delta = -delta
	}
	return 100 - delta
}
