// internal/coach/blueprint.go
package coach

import (
	"fmt"

	"questfit/coach-app/internal/domain"
)

// BlueprintInput carries everything the builder needs. Every dependency is
// an explicit parameter; the engine never reaches into ambient state.
type BlueprintInput struct {
	PlanDay        domain.PlanDay
	Archetype      domain.Archetype
	Baseline       domain.Baseline
	Goal           domain.Goal
	LogsByExercise map[string][]domain.ExerciseLogEntry // keyed by exercise key
	Constraints    domain.ConstraintSet
	Catalog        []domain.VariantExercise
	CycleWeek      int
}

// BuildSessionBlueprint composes substitution, plateau detection,
// performance analysis, recommendation and deload adjustment into the
// concrete exercise list for the next session. The output preserves the
// plan day's exercise order and count: swaps replace in place, never add or
// remove.
func (p Policy) BuildSessionBlueprint(in BlueprintInput) domain.SessionBlueprint {
	deload := p.IsDeloadWeek(in.CycleWeek)

	exercises := make([]domain.BlueprintExercise, 0, len(in.PlanDay.Exercises))
	for _, raw := range in.PlanDay.Exercises {
		exercises = append(exercises, p.buildExercise(raw, in, deload))
	}

	return domain.SessionBlueprint{
		CycleWeek: in.CycleWeek,
		Deload:    deload,
		Day:       in.PlanDay.Day,
		Focus:     in.PlanDay.Focus,
		Exercises: exercises,
	}
}

func (p Policy) buildExercise(raw domain.PlanExercise, in BlueprintInput, deload bool) domain.BlueprintExercise {
	// 1. Constraint-driven substitution.
	ex := PickSubstitute(raw, in.Constraints, in.Catalog)

	// 2. Plateau check on the original key's full history; a detected
	// plateau swaps to a sibling variant, independent of step 1.
	plateau := p.DetectPlateau(in.LogsByExercise[raw.ExerciseKey], raw.TargetRepsMin, raw.TargetRepsMax)
	if plateau.IsPlateau {
		if swap, ok := PickPlateauSwap(raw.ExerciseKey, ex.ExerciseKey, in.Constraints, in.Catalog); ok {
			ex.ExerciseKey = swap.VariantKey
			ex.ExerciseName = swap.Name
			ex.EquipmentType = swap.EquipmentType
			ex.Notes = appendNote(ex.Notes, fmt.Sprintf("Plateau detected: switching to %s.", swap.Name))
		}
	}

	// Running work is paced, not loaded, and skips the deload adjuster.
	if in.Archetype == domain.ArchetypeRunning || ex.EquipmentType == domain.EquipmentRunning {
		return runningEntry(ex, in)
	}

	logs := in.LogsByExercise[ex.ExerciseKey]

	var rec Recommendation
	if len(logs) == 0 {
		// 3. Cold start: seed from the baseline instead of returning an
		// empty target.
		rec, _ = ColdStart(ex, in.Archetype, in.Baseline, in.CycleWeek)
	} else {
		// 4. History exists: analyze then recommend.
		last := AnalyzeLastPerformance(logs, ex.TargetRepsMin, ex.TargetRepsMax)
		rec = p.RecommendWeight(in.Goal, ex.TargetRepsMin, ex.TargetRepsMax, ex.EquipmentType, last)
		if plateau.IsPlateau {
			rec.ProgressionNote = appendNote(rec.ProgressionNote, plateau.Reason+".")
		}
	}

	if !deload {
		return domain.BlueprintExercise{
			PlanExercise:        ex,
			RecommendedWeightKg: rec.RecommendedWeightKg,
			RecommendedReps:     rec.RecommendedReps,
			ProgressionNote:     rec.ProgressionNote,
		}
	}

	// 5. Deload week: reduced volume and (for loaded work) reduced load.
	adjusted := p.ApplyDeload(ex, rec)
	ex.Sets = adjusted.Sets
	ex.Notes = appendNote(ex.Notes, adjusted.Note)
	return domain.BlueprintExercise{
		PlanExercise:        ex,
		RecommendedWeightKg: adjusted.RecommendedWeightKg,
		RecommendedReps:     rec.RecommendedReps,
		ProgressionNote:     adjusted.ProgressionNote,
	}
}

func runningEntry(ex domain.PlanExercise, in BlueprintInput) domain.BlueprintExercise {
	pace := RecommendPace(ex.ExerciseKey, BaselineZones(in.Baseline), in.CycleWeek)
	note := "Run by feel, conversational effort."
	if pace != nil {
		note = fmt.Sprintf("Target pace %s.", FormatPace(*pace))
	}
	return domain.BlueprintExercise{
		PlanExercise:            ex,
		RecommendedWeightKg:     nil,
		RecommendedReps:         fmt.Sprintf("%d-%d", ex.TargetRepsMin, ex.TargetRepsMax),
		RecommendedPaceSecPerKm: pace,
		ProgressionNote:         note,
	}
}
