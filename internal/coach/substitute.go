// internal/coach/substitute.go
package coach

import (
	"fmt"
	"sort"
	"strings"

	"questfit/coach-app/internal/domain"
)

// PickSubstitute swaps a planned exercise for a catalog variant when the
// original is banned, equipment-incompatible at the user's location, or
// matches an injury keyword. It fails open: when no acceptable variant
// exists the original exercise comes back unchanged, the session is never
// blocked. The returned value is a copy; the input is not mutated.
func PickSubstitute(ex domain.PlanExercise, constraints domain.ConstraintSet, catalog []domain.VariantExercise) domain.PlanExercise {
	banned := containsFold(constraints.Banned, ex.ExerciseKey)
	equipmentOK := equipmentAllowed(ex.EquipmentType, constraints.Equipment, constraints.Location)
	injured := matchesInjury(ex.ExerciseName, constraints.Injuries)

	if !banned && equipmentOK && !injured {
		return ex
	}

	reason := "banned"
	switch {
	case injured:
		reason = "injury"
	case !equipmentOK:
		reason = "equipment unavailable"
	}

	baseKey := InferBaseKey(ex.ExerciseKey)
	candidate, ok := bestVariant(catalog, constraints, func(v domain.VariantExercise) bool {
		return v.BaseKey == baseKey
	})
	if !ok {
		return ex
	}

	out := ex
	out.ExerciseKey = candidate.VariantKey
	out.ExerciseName = candidate.Name
	out.EquipmentType = candidate.EquipmentType
	out.Notes = appendNote(ex.Notes, fmt.Sprintf("Substitution (%s): %s -> %s.", reason, ex.ExerciseName, candidate.Name))
	return out
}

// PickPlateauSwap finds the preferred catalog variant of baseKey whose key
// differs from currentKey. It is used after plateau detection,
// independently of the constraint-driven substitution.
func PickPlateauSwap(baseKey, currentKey string, constraints domain.ConstraintSet, catalog []domain.VariantExercise) (domain.VariantExercise, bool) {
	return bestVariant(catalog, constraints, func(v domain.VariantExercise) bool {
		return v.BaseKey == baseKey && v.VariantKey != currentKey
	})
}

// InferBaseKey maps an exercise key to its canonical base movement via
// keyword matching. This is a best-effort heuristic; keys that match no
// keyword are their own base.
func InferBaseKey(exerciseKey string) string {
	key := strings.ToLower(exerciseKey)
	switch {
	case strings.Contains(key, "bench"):
		return "barbell_bench_press"
	case strings.Contains(key, "squat"):
		return "barbell_back_squat"
	case strings.Contains(key, "row"):
		return "barbell_row"
	case strings.Contains(key, "pullup"):
		return "strict_pullup"
	case strings.Contains(key, "interval"):
		return "interval_run"
	}
	return exerciseKey
}

// bestVariant returns the best variant passing match that is itself neither
// banned nor equipment-incompatible. User-preferred keys rank ahead of the
// catalog Priority ordering; within each group the lowest priority number
// wins.
func bestVariant(catalog []domain.VariantExercise, constraints domain.ConstraintSet, match func(domain.VariantExercise) bool) (domain.VariantExercise, bool) {
	var candidates []domain.VariantExercise
	for _, v := range catalog {
		if !match(v) {
			continue
		}
		if containsFold(constraints.Banned, v.VariantKey) {
			continue
		}
		if !equipmentAllowed(v.EquipmentType, constraints.Equipment, constraints.Location) {
			continue
		}
		candidates = append(candidates, v)
	}
	if len(candidates) == 0 {
		return domain.VariantExercise{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		pi := containsFold(constraints.Preferred, candidates[i].VariantKey)
		pj := containsFold(constraints.Preferred, candidates[j].VariantKey)
		if pi != pj {
			return pi
		}
		return candidates[i].Priority < candidates[j].Priority
	})
	return candidates[0], true
}

// equipmentAllowed decides whether an equipment type can be used given the
// available equipment and training location. Weightless work is always
// allowed; any location besides gym and home (fully outdoor) rules out all
// equipment-bound exercises.
func equipmentAllowed(equipment domain.EquipmentType, available []string, location domain.Location) bool {
	if equipment.Weightless() {
		return true
	}
	if location != domain.LocationGym && location != domain.LocationHome {
		return false
	}
	return containsFold(available, string(equipment))
}

func matchesInjury(exerciseName string, injuries []string) bool {
	name := strings.ToLower(exerciseName)
	for _, injury := range injuries {
		keyword := strings.ToLower(strings.TrimSpace(injury))
		if keyword != "" && strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + " " + note
}
