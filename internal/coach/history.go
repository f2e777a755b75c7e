// internal/coach/history.go
package coach

import (
	"math"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
)

// LastPerformance is the reduction of an exercise's log stream into the
// signals the recommender consumes. All pointers are nil when no history
// exists; "no data yet" is a first-class state, not an error.
type LastPerformance struct {
	LastWeightKg *float64
	LastReps     *int
	LastRPE      *float64
	// FailedBelowTargetMinTwice is true when the best sets of the two most
	// recent sessions both fell below the target minimum.
	FailedBelowTargetMinTwice bool
	// TargetMaxHitTwiceRecently is true when the best sets of the two most
	// recent sessions both reached the target maximum.
	TargetMaxHitTwiceRecently bool
}

// AnalyzeLastPerformance reduces the logs of one exercise. The best set of
// the most recent session provides lastWeight/lastReps/lastRpe; the best
// sets of the two most recent sessions drive the two trend flags. Fewer
// than two distinct sessions leaves both flags false.
func AnalyzeLastPerformance(logs []domain.ExerciseLogEntry, targetMin, targetMax int) LastPerformance {
	if len(logs) == 0 {
		return LastPerformance{}
	}

	sorted := sortLogsDescending(logs)

	recentBest := sessionBestSets(sorted, 2)
	best := recentBest[0] // best set of the most recent session

	perf := LastPerformance{
		LastWeightKg: best.WeightKg,
		LastRPE:      best.RPE,
	}
	reps := best.Reps
	perf.LastReps = &reps

	if len(recentBest) >= 2 {
		perf.FailedBelowTargetMinTwice = recentBest[0].Reps < targetMin && recentBest[1].Reps < targetMin
		perf.TargetMaxHitTwiceRecently = recentBest[0].Reps >= targetMax && recentBest[1].Reps >= targetMax
	}
	return perf
}

// sortLogsDescending orders entries newest first. Entries sharing a
// timestamp are ordered by higher rep count, which matters when several
// sets of one session were written in the same instant.
func sortLogsDescending(logs []domain.ExerciseLogEntry) []domain.ExerciseLogEntry {
	sorted := make([]domain.ExerciseLogEntry, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].Reps > sorted[j].Reps
	})
	return sorted
}

// sessionBestSets walks the sorted (newest first) logs, groups them by
// session id in order of recency, and returns the best set of each of the
// first limit sessions. A missing weight counts as -inf so that reps-only
// bodyweight sets still resolve through the reps tiebreak.
func sessionBestSets(sorted []domain.ExerciseLogEntry, limit int) []domain.ExerciseLogEntry {
	var order []primitive.ObjectID
	seen := make(map[primitive.ObjectID]bool)
	for _, entry := range sorted {
		if !seen[entry.SessionID] {
			seen[entry.SessionID] = true
			order = append(order, entry.SessionID)
		}
	}
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	best := make([]domain.ExerciseLogEntry, 0, len(order))
	for _, sessionID := range order {
		var current domain.ExerciseLogEntry
		found := false
		for _, entry := range sorted {
			if entry.SessionID != sessionID {
				continue
			}
			if !found || betterSet(entry, current) {
				current = entry
				found = true
			}
		}
		best = append(best, current)
	}
	return best
}

// betterSet reports whether a beats b: higher weight first, then higher
// reps. Nil weight loses to any numeric weight.
func betterSet(a, b domain.ExerciseLogEntry) bool {
	aw, bw := weightOrNegInf(a.WeightKg), weightOrNegInf(b.WeightKg)
	if aw != bw {
		return aw > bw
	}
	return a.Reps > b.Reps
}

func weightOrNegInf(w *float64) float64 {
	if w == nil {
		return math.Inf(-1)
	}
	return *w
}
