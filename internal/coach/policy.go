// Package coach implements the adaptive training engine: cycle tracking,
// performance analysis, weight recommendation, plateau detection, exercise
// substitution, deload adjustment and session blueprint building. Every
// function here is pure; all I/O lives in the service layer.
package coach

// Policy bundles the tunable constants of the engine. The cadence values
// (cycle length, plateau window) are policy, not protocol: tests and config
// may override them, production runs on DefaultPolicy.
type Policy struct {
	CycleWeeks          int     // length of a mesocycle; the last week is the deload week
	PlateauWindow       int     // sessions a plateau verdict is based on
	DeloadSetFloor      int     // never deload below this many sets
	DeloadLoadFactor    float64 // load multiplier applied on deload weeks
	StrengthResetFactor float64 // load multiplier after stalling twice on a strength goal
	RepFailureDropKg    float64 // fixed drop when reps fall below the target range (muscle goal)
	DefaultRepMin       int     // fallback when a rep range string cannot be parsed
	DefaultRepMax       int
}

// DefaultPolicy returns the production constants.
func DefaultPolicy() Policy {
	return Policy{
		CycleWeeks:          4,
		PlateauWindow:       3,
		DeloadSetFloor:      2,
		DeloadLoadFactor:    0.9,
		StrengthResetFactor: 0.95,
		RepFailureDropKg:    2.5,
		DefaultRepMin:       8,
		DefaultRepMax:       12,
	}
}
