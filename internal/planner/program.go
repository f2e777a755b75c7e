// internal/planner/program.go
package planner

import (
	"fmt"
	"strings"

	"questfit/coach-app/internal/domain"
)

// ProgramProfile describes the athlete for the multi-week program generator.
type ProgramProfile struct {
	Goal               domain.Goal `json:"goal"`
	Level              string      `json:"level"` // beginner | intermediate | advanced
	WeightKg           *float64    `json:"weightKg,omitempty"`
	HeightCm           *float64    `json:"heightCm,omitempty"`
	Age                *int        `json:"age,omitempty"`
	SessionsPerWeek    int         `json:"sessionsPerWeek"`
	SessionDurationMin *int        `json:"sessionDurationMin,omitempty"`
	Equipment          []string    `json:"equipment"`
	Injuries           string      `json:"injuries,omitempty"`
	Dislikes           []string    `json:"dislikes,omitempty"`
	FocusWeakPoints    []string    `json:"focusWeakPoints,omitempty"`
	PreferExercises    []string    `json:"preferExercises,omitempty"`
}

// ProgramRequest is the input of the generator.
type ProgramRequest struct {
	Weeks   int            `json:"weeks"`
	Profile ProgramProfile `json:"profile"`
}

// ProgramExercise is one prescribed exercise inside a generated session.
type ProgramExercise struct {
	Name      string `json:"name"`
	Sets      int    `json:"sets"`
	Reps      string `json:"reps"`
	Intensity string `json:"intensity"`
	RestSec   int    `json:"restSec"`
	Notes     string `json:"notes,omitempty"`
}

// ProgramSession is one session of a generated week.
type ProgramSession struct {
	DayIndex  int               `json:"dayIndex"`
	Name      string            `json:"name"`
	Warmup    []string          `json:"warmup"`
	Exercises []ProgramExercise `json:"exercises"`
	Finisher  []string          `json:"finisher,omitempty"`
	Cooldown  []string          `json:"cooldown,omitempty"`
}

// ProgramWeek is one week of a generated program.
type ProgramWeek struct {
	Week     int              `json:"week"`
	Focus    string           `json:"focus"`
	Sessions []ProgramSession `json:"sessions"`
}

// Program is the full multi-week program the model must return.
type Program struct {
	Title           string        `json:"title"`
	Overview        string        `json:"overview"`
	Weeks           int           `json:"weeks"`
	SessionsPerWeek int           `json:"sessionsPerWeek"`
	WeekPlans       []ProgramWeek `json:"weekPlans"`
	SafetyNotes     []string      `json:"safetyNotes"`
}

var programLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

var programGoals = map[domain.Goal]bool{
	domain.GoalMuscle:   true,
	domain.GoalStrength: true,
	domain.GoalFatLoss:  true,
	domain.GoalGeneral:  true,
}

// ValidateRequest checks the generator input before any model call.
func ValidateRequest(req ProgramRequest) error {
	if req.Weeks < 4 || req.Weeks > 12 {
		return fmt.Errorf("weeks must be between 4 and 12, got %d", req.Weeks)
	}
	if !programGoals[req.Profile.Goal] {
		return fmt.Errorf("invalid goal %q", req.Profile.Goal)
	}
	if !programLevels[req.Profile.Level] {
		return fmt.Errorf("invalid level %q", req.Profile.Level)
	}
	if req.Profile.SessionsPerWeek < 2 || req.Profile.SessionsPerWeek > 6 {
		return fmt.Errorf("sessionsPerWeek must be between 2 and 6, got %d", req.Profile.SessionsPerWeek)
	}
	if len(req.Profile.Equipment) == 0 {
		return fmt.Errorf("equipment must contain at least one item")
	}
	if d := req.Profile.SessionDurationMin; d != nil && (*d < 20 || *d > 120) {
		return fmt.Errorf("sessionDurationMin must be between 20 and 120, got %d", *d)
	}
	return nil
}

// ValidateProgram checks a model-produced program against the schema
// constraints. Each violation names the exact constraint so the caller can
// surface it or retry.
func ValidateProgram(p *Program) error {
	if p.Title == "" || p.Overview == "" {
		return fmt.Errorf("title and overview are required")
	}
	if p.Weeks < 4 || p.Weeks > 12 {
		return fmt.Errorf("weeks must be between 4 and 12, got %d", p.Weeks)
	}
	if p.SessionsPerWeek < 2 || p.SessionsPerWeek > 6 {
		return fmt.Errorf("sessionsPerWeek must be between 2 and 6, got %d", p.SessionsPerWeek)
	}
	if len(p.WeekPlans) != p.Weeks {
		return fmt.Errorf("weekPlans length %d does not match weeks %d", len(p.WeekPlans), p.Weeks)
	}
	if len(p.SafetyNotes) == 0 {
		return fmt.Errorf("safetyNotes must not be empty")
	}
	for _, note := range p.SafetyNotes {
		if note == "" {
			return fmt.Errorf("safetyNotes must not contain empty entries")
		}
	}

	for i, week := range p.WeekPlans {
		if len(week.Sessions) != p.SessionsPerWeek {
			return fmt.Errorf("week %d has %d sessions, expected %d", i+1, len(week.Sessions), p.SessionsPerWeek)
		}
		for j, session := range week.Sessions {
			if len(session.Exercises) < 4 || len(session.Exercises) > 8 {
				return fmt.Errorf("week %d session %d has %d exercises, expected 4 to 8", i+1, j+1, len(session.Exercises))
			}
			for _, exercise := range session.Exercises {
				if exercise.RestSec < 30 || exercise.RestSec > 240 {
					return fmt.Errorf("week %d session %d exercise %q: restSec must be between 30 and 240, got %d", i+1, j+1, exercise.Name, exercise.RestSec)
				}
			}
		}
	}
	return nil
}

// ExtractJSONObject pulls the outermost JSON object out of model output that
// may carry markdown fences or prose around it.
func ExtractJSONObject(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in model output")
	}
	return trimmed[start : end+1], nil
}
