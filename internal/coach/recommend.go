// internal/coach/recommend.go
package coach

import (
	"fmt"

	"questfit/coach-app/internal/domain"
)

// Recommendation is the next-session target for one exercise.
// RecommendedWeightKg is nil for weightless equipment and for cold starts;
// RecommendedReps is always the literal "min-max" string of the target
// range, whatever the weight decision was.
type Recommendation struct {
	RecommendedWeightKg *float64
	RecommendedReps     string
	ProgressionNote     string
}

// RecommendWeight turns goal, last performance and equipment type into a
// next-session target. Rules are evaluated in a fixed order; see each
// branch.
func (p Policy) RecommendWeight(
	goal domain.Goal,
	targetMin, targetMax int,
	equipment domain.EquipmentType,
	last LastPerformance,
) Recommendation {
	reps := fmt.Sprintf("%d-%d", targetMin, targetMax)

	// Weightless equipment never gets a load number. Progression is
	// qualitative: once the top of the range is reached, suggest a harder
	// variation instead.
	if equipment.Weightless() {
		if last.LastReps != nil && *last.LastReps >= targetMax {
			return Recommendation{
				RecommendedReps: reps,
				ProgressionNote: "Top of the rep range reached: move to a harder variation.",
			}
		}
		return Recommendation{RecommendedReps: reps}
	}

	// Cold start: no weight and no note; the caller falls back to a
	// baseline-derived seed instead of leaving the user without a target.
	if last.LastWeightKg == nil || last.LastReps == nil {
		return Recommendation{RecommendedReps: reps}
	}

	lastWeight := *last.LastWeightKg
	lastReps := *last.LastReps
	increment := incrementFor(equipment)

	switch goal {
	case domain.GoalMuscle:
		if lastReps >= targetMax && (last.LastRPE == nil || *last.LastRPE <= 8.5) {
			return weighted(roundToHalf(lastWeight+increment), reps)
		}
		if lastReps < targetMin {
			// Failure at the bottom of the range means the load was too
			// heavy, not a hard failure needing a large cut.
			return weighted(clampZero(roundToHalf(lastWeight-p.RepFailureDropKg)), reps)
		}
		return weighted(roundToHalf(lastWeight), reps)

	case domain.GoalStrength:
		if last.FailedBelowTargetMinTwice {
			// Soft reset after genuine stalling across two sessions.
			return weighted(clampZero(roundToHalf(lastWeight*p.StrengthResetFactor)), reps)
		}
		if lastReps >= targetMax {
			return weighted(roundToHalf(lastWeight+increment), reps)
		}
		return weighted(roundToHalf(lastWeight), reps)

	case domain.GoalFatLoss, domain.GoalGeneral:
		// Trend-confirmed progression: a single top-of-range session is
		// treated as noise.
		if last.TargetMaxHitTwiceRecently {
			return weighted(roundToHalf(lastWeight+increment), reps)
		}
		return weighted(roundToHalf(lastWeight), reps)
	}

	return weighted(roundToHalf(lastWeight), reps)
}

// incrementFor returns the load step for an equipment type. Dumbbells are
// paired implements and round in smaller steps.
func incrementFor(equipment domain.EquipmentType) float64 {
	if equipment == domain.EquipmentDumbbell {
		return 1
	}
	return 2.5
}

func weighted(weight float64, reps string) Recommendation {
	return Recommendation{RecommendedWeightKg: &weight, RecommendedReps: reps}
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
