// internal/coach/baseline.go
package coach

import (
	"fmt"
	"strings"

	"questfit/coach-app/internal/domain"
)

// ColdStart estimates a safe first-session target from the self-reported
// baseline when an exercise has no logged history yet. The formulas are
// archetype-specific and deliberately conservative. The returned pace is
// non-nil only for running work.
func ColdStart(ex domain.PlanExercise, archetype domain.Archetype, baseline domain.Baseline, cycleWeek int) (Recommendation, *int) {
	key := strings.ToLower(ex.ExerciseKey)
	reps := fmt.Sprintf("%d-%d", ex.TargetRepsMin, ex.TargetRepsMax)

	if archetype == domain.ArchetypeRunning {
		pace := RecommendPace(ex.ExerciseKey, BaselineZones(baseline), cycleWeek)
		note := "Run by feel, conversational effort (RPE 6-7)."
		if pace != nil {
			note = fmt.Sprintf("Target pace %s, derived from your baseline.", FormatPace(*pace))
		}
		return Recommendation{RecommendedReps: reps, ProgressionNote: note}, pace
	}

	if archetype == domain.ArchetypeCalisthenics {
		switch {
		case strings.Contains(key, "pullup") && baseline.PullupsMax != nil:
			return calisthenicsSeed(ex, *baseline.PullupsMax, 1), nil
		case strings.Contains(key, "dip") && baseline.DipsMax != nil:
			return calisthenicsSeed(ex, *baseline.DipsMax, 1), nil
		case strings.Contains(key, "push") && baseline.PushupsMax != nil:
			return calisthenicsSeed(ex, *baseline.PushupsMax, 2), nil
		}
		return Recommendation{RecommendedReps: reps}, nil
	}

	if archetype == domain.ArchetypeWeightlifting {
		switch {
		case strings.Contains(key, "front_squat") && baseline.FrontSquat3RMKg != nil:
			return seedFromMax(*baseline.FrontSquat3RMKg, 0.8, reps, "Conservative start from your 3RM."), nil
		case (strings.Contains(key, "snatch") || strings.Contains(key, "clean")) && baseline.PowerClean3RMKg != nil:
			return seedFromMax(*baseline.PowerClean3RMKg, 0.6, reps, "Technique load, 50-70% of your base."), nil
		case strings.Contains(key, "press") && baseline.StrictPress5RMKg != nil:
			return seedFromMax(*baseline.StrictPress5RMKg, 0.9, reps, ""), nil
		}
		return Recommendation{RecommendedReps: reps}, nil
	}

	// hypertrophy and general strength work
	switch {
	case strings.Contains(key, "bench") && baseline.BenchPress5RMKg != nil:
		return seedFromMax(*baseline.BenchPress5RMKg, 0.92, reps, "Starting at ~90-95% of your 5RM."), nil
	case strings.Contains(key, "squat") && baseline.Squat5RMKg != nil:
		return seedFromMax(*baseline.Squat5RMKg, 0.92, reps, "Starting at ~90-95% of your 5RM."), nil
	case strings.Contains(key, "row") && baseline.Row8RMKg != nil:
		return seedFromMax(*baseline.Row8RMKg, 0.95, reps, ""), nil
	}
	return Recommendation{RecommendedReps: reps}, nil
}

// calisthenicsSeed targets 1-2 reps short of the reported max-rep test,
// clamped inside the exercise's target range.
func calisthenicsSeed(ex domain.PlanExercise, reportedMax, headroom int) Recommendation {
	target := reportedMax - 2
	if target < ex.TargetRepsMin {
		target = ex.TargetRepsMin
	}
	if target > ex.TargetRepsMax {
		target = ex.TargetRepsMax
	}
	upper := target + headroom
	if upper > ex.TargetRepsMax {
		upper = ex.TargetRepsMax
	}
	return Recommendation{
		RecommendedReps: fmt.Sprintf("%d-%d", target, upper),
		ProgressionNote: "Stop 1-2 reps before failure.",
	}
}

func seedFromMax(max, factor float64, reps, note string) Recommendation {
	w := roundToHalf(max * factor)
	return Recommendation{RecommendedWeightKg: &w, RecommendedReps: reps, ProgressionNote: note}
}
