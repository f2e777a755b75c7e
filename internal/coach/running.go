// internal/coach/running.go
package coach

import (
	"fmt"
	"math"
	"strings"

	"questfit/coach-app/internal/domain"
)

// PaceZones are target paces in seconds per kilometre, derived from the
// user's baseline. A nil zone means the baseline gave us nothing to work
// with.
type PaceZones struct {
	Easy     *int
	Tempo    *int
	Interval *int
}

// BaselineZones derives pace zones from a self-reported 5k time, a Cooper
// (12-minute run) distance, or an explicit easy pace. 5k pace is the
// anchor: easy ~ 1.2x, tempo ~ 1.06x, interval ~ 0.95x of it, with chained
// fallbacks when only part of the baseline is known.
func BaselineZones(b domain.Baseline) PaceZones {
	var fiveKPace *float64
	if b.FiveKTimeSec != nil {
		pace := float64(*b.FiveKTimeSec) / 5
		fiveKPace = &pace
	} else if b.CooperMeters != nil && *b.CooperMeters > 0 {
		// 12 minutes over the Cooper distance gives an estimated 5k pace.
		pace := 720 / (float64(*b.CooperMeters) / 1000)
		fiveKPace = &pace
	}

	var zones PaceZones
	if b.EasyPaceSecPerKm != nil {
		easy := *b.EasyPaceSecPerKm
		zones.Easy = &easy
	} else if fiveKPace != nil {
		easy := int(math.Round(*fiveKPace * 1.2))
		zones.Easy = &easy
	}

	if fiveKPace != nil {
		tempo := int(math.Round(*fiveKPace * 1.06))
		zones.Tempo = &tempo
	} else if zones.Easy != nil {
		tempo := int(math.Round(float64(*zones.Easy) * 0.9))
		zones.Tempo = &tempo
	}

	if fiveKPace != nil {
		interval := int(math.Round(*fiveKPace * 0.95))
		zones.Interval = &interval
	} else if zones.Tempo != nil {
		interval := int(math.Round(float64(*zones.Tempo) * 0.95))
		zones.Interval = &interval
	}

	return zones
}

// RecommendPace picks the zone matching the workout key and nudges
// interval/tempo paces ~1% faster per cycle week. Easy runs stay easy all
// cycle; the 4-week reset caps the nudge implicitly.
func RecommendPace(exerciseKey string, zones PaceZones, cycleWeek int) *int {
	weekBoost := float64(cycleWeek-1) * 0.01
	if weekBoost < 0 {
		weekBoost = 0
	}

	key := strings.ToLower(exerciseKey)
	switch {
	case strings.Contains(key, "interval"):
		return scaledPace(zones.Interval, 1-weekBoost)
	case strings.Contains(key, "tempo"):
		return scaledPace(zones.Tempo, 1-weekBoost)
	}
	return zones.Easy
}

// FormatPace renders seconds-per-km as "m:ss/km".
func FormatPace(secPerKm int) string {
	if secPerKm <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d/km", secPerKm/60, secPerKm%60)
}

func scaledPace(pace *int, factor float64) *int {
	if pace == nil {
		return nil
	}
	scaled := int(math.Round(float64(*pace) * factor))
	return &scaled
}
