// internal/coach/reps.go
package coach

import (
	"regexp"
	"strconv"
)

var digitsRe = regexp.MustCompile(`\d+`)

// ParseRepRange extracts a min/max pair from a rep range string like
// "8-12", "5", or "30-45 sec". A malformed string falls back to the policy
// default range rather than failing: rep targets are best-effort.
func (p Policy) ParseRepRange(reps string) (min, max int) {
	numbers := digitsRe.FindAllString(reps, -1)
	if len(numbers) == 0 {
		return p.DefaultRepMin, p.DefaultRepMax
	}
	first, _ := strconv.Atoi(numbers[0])
	if len(numbers) == 1 {
		return first, first
	}
	second, _ := strconv.Atoi(numbers[1])
	if second < first {
		// keep the invariant min <= max even on garbage input
		return second, first
	}
	return first, second
}

// ParseSetCount extracts the leading set count from strings like "3" or
// "4x". Anything unparseable counts as 3 sets.
func ParseSetCount(sets string) int {
	m := digitsRe.FindString(sets)
	if m == "" {
		return 3
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return 3
	}
	return n
}

// roundToHalf rounds to the nearest 0.5 kg, which is the finest plate
// adjustment worth prescribing.
func roundToHalf(value float64) float64 {
	if value >= 0 {
		return float64(int(value*2+0.5)) / 2
	}
	return float64(int(value*2-0.5)) / 2
}
