// internal/coach/plateau.go
package coach

import (
	"fmt"

	"questfit/coach-app/internal/domain"
)

// PlateauResult is the verdict for one exercise.
type PlateauResult struct {
	IsPlateau bool
	Reason    string
}

// DetectPlateau checks the most recent sessions (PlateauWindow of them, one
// best set per distinct session, newest first) for stagnation. A plateau is
// either no rep gain at a constant load, or reps stuck inside the target
// range while the load never increased. Fewer sessions than the window is
// insufficient evidence, never a plateau.
func (p Policy) DetectPlateau(logs []domain.ExerciseLogEntry, targetMin, targetMax int) PlateauResult {
	window := p.PlateauWindow
	if window <= 0 {
		window = DefaultPolicy().PlateauWindow
	}

	sessions := sessionBestSets(sortLogsDescending(logs), window)
	if len(sessions) < window {
		return PlateauResult{IsPlateau: false, Reason: "not enough sessions"}
	}

	sameLoad := true
	repsNonIncreasing := true // newest <= ... <= oldest
	loadNeverIncreased := true
	allInRange := true

	for i, s := range sessions {
		if s.Reps < targetMin || s.Reps > targetMax {
			allInRange = false
		}
		if i == 0 {
			continue
		}
		newer, older := weightOrZero(sessions[i-1].WeightKg), weightOrZero(s.WeightKg)
		if newer != older {
			sameLoad = false
		}
		if newer > older {
			loadNeverIncreased = false
		}
		if sessions[i-1].Reps > s.Reps {
			repsNonIncreasing = false
		}
	}

	noRepGainAtSameLoad := sameLoad && repsNonIncreasing
	stuckInRange := allInRange && loadNeverIncreased

	if noRepGainAtSameLoad || stuckInRange {
		return PlateauResult{
			IsPlateau: true,
			Reason:    fmt.Sprintf("%d sessions without measurable load or rep progress", window),
		}
	}
	return PlateauResult{IsPlateau: false, Reason: "progression still detected"}
}

func weightOrZero(w *float64) float64 {
	if w == nil {
		return 0
	}
	return *w
}
