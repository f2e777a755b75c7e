// internal/coach/cycle.go
package coach

import (
	"fmt"
	"time"

	"questfit/coach-app/internal/domain"
)

// WeekStart normalizes a date to the Monday of its ISO week, at midnight in
// the date's own location. Time of day never influences the result.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the week that started six days earlier
	}
	return day.AddDate(0, 0, -offset)
}

// CycleWeek maps today to a 1-indexed position inside the repeating
// mesocycle anchored at cycleStart. Dates before cycleStart wrap into the
// correct bucket via a floor-division modulo.
func (p Policy) CycleWeek(cycleStart, today time.Time) int {
	start := toUTCDate(WeekStart(cycleStart))
	current := toUTCDate(WeekStart(today))

	diffWeeks := int(current.Sub(start) / (7 * 24 * time.Hour))
	n := p.CycleWeeks
	if n <= 0 {
		n = DefaultPolicy().CycleWeeks
	}
	return ((diffWeeks%n)+n)%n + 1
}

// IsDeloadWeek reports whether week is the final, reduced-volume week of
// the cycle.
func (p Policy) IsDeloadWeek(week int) bool {
	n := p.CycleWeeks
	if n <= 0 {
		n = DefaultPolicy().CycleWeeks
	}
	return week == n
}

// DeloadResult is the adjusted prescription for one exercise on a deload
// week.
type DeloadResult struct {
	Sets                string
	RecommendedWeightKg *float64
	ProgressionNote     string
	Note                string
}

// ApplyDeload reduces an exercise's volume by one set (floored) and, when a
// numeric load exists, trims it by the deload factor. Weightless work keeps
// its load and gets an RPE target instead.
func (p Policy) ApplyDeload(ex domain.PlanExercise, rec Recommendation) DeloadResult {
	reduced := ParseSetCount(ex.Sets) - 1
	if reduced < p.DeloadSetFloor {
		reduced = p.DeloadSetFloor
	}
	sets := fmt.Sprintf("%d", reduced)

	if rec.RecommendedWeightKg != nil {
		w := roundToHalf(*rec.RecommendedWeightKg * p.DeloadLoadFactor)
		if w < 0 {
			w = 0
		}
		return DeloadResult{
			Sets:                sets,
			RecommendedWeightKg: &w,
			ProgressionNote:     rec.ProgressionNote,
			Note:                "Deload week: reduced volume and load.",
		}
	}

	note := "Deload: aim for RPE 6-7 at a constant load."
	if rec.ProgressionNote != "" {
		note = rec.ProgressionNote + " (Deload: aim for RPE 6-7.)"
	}
	return DeloadResult{
		Sets:                sets,
		RecommendedWeightKg: nil,
		ProgressionNote:     note,
		Note:                "Deload week: reduced volume, keep the load and target RPE 6-7.",
	}
}

// toUTCDate re-expresses a local midnight as a UTC midnight so that
// duration arithmetic is immune to DST transitions.
func toUTCDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
