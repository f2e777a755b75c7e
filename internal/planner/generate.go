// Package planner builds training plan templates from onboarding answers
// and validates externally generated programs against the schema the rest
// of the app expects.
package planner

import (
	"fmt"
	"regexp"
	"strings"

	"questfit/coach-app/internal/domain"
)

var (
	slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)
	repDigitsRe = regexp.MustCompile(`\d+`)
)

// SlugifyExercise turns a display name into the durable exercise key used
// for history lookups, e.g. "Barbell Bench Press" -> "barbell_bench_press".
func SlugifyExercise(name string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(slug, "_")
}

// InferEquipmentType guesses the implement from the exercise name.
func InferEquipmentType(name string) domain.EquipmentType {
	lower := strings.ToLower(name)

	switch {
	case strings.Contains(lower, "run") || strings.Contains(lower, "interval") || strings.Contains(lower, "tempo") || strings.Contains(lower, "stride"):
		return domain.EquipmentRunning
	case strings.Contains(lower, "barbell") || strings.Contains(lower, "ez-bar") || strings.Contains(lower, "deadlift") || strings.Contains(lower, "back squat") || strings.Contains(lower, "front squat") || strings.Contains(lower, "clean") || strings.Contains(lower, "snatch") || strings.Contains(lower, "strict press"):
		return domain.EquipmentBarbell
	case strings.Contains(lower, "dumbbell") || strings.Contains(lower, "goblet"):
		return domain.EquipmentDumbbell
	case strings.Contains(lower, "machine") || strings.Contains(lower, "cable") || strings.Contains(lower, "lat pulldown") || strings.Contains(lower, "leg press"):
		return domain.EquipmentMachine
	case strings.Contains(lower, "band"):
		return domain.EquipmentBand
	case strings.Contains(lower, "push-up") || strings.Contains(lower, "pull-up") || strings.Contains(lower, "chin-up") ||
		strings.Contains(lower, "plank") || strings.Contains(lower, "hollow hold") || strings.Contains(lower, "bodyweight") ||
		strings.Contains(lower, "inverted row") || strings.Contains(lower, "dip") || strings.Contains(lower, "lunge"):
		return domain.EquipmentBodyweight
	}

	return domain.EquipmentUnknown
}

func parseRepRange(reps string) (int, int) {
	numbers := repDigitsRe.FindAllString(reps, -1)
	if len(numbers) == 0 {
		return 8, 12
	}
	if len(numbers) == 1 {
		v := atoiSafe(numbers[0])
		return v, v
	}
	return atoiSafe(numbers[0]), atoiSafe(numbers[1])
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func makeExercise(name, pattern, sets, reps, notes string) domain.PlanExercise {
	min, max := parseRepRange(reps)
	return domain.PlanExercise{
		ExerciseKey:   SlugifyExercise(name),
		ExerciseName:  name,
		Pattern:       pattern,
		EquipmentType: InferEquipmentType(name),
		Sets:          sets,
		Reps:          reps,
		TargetRepsMin: min,
		TargetRepsMax: max,
		Notes:         notes,
	}
}

// repScheme bundles the set/rep prescriptions one goal uses across the
// compound, secondary and accessory slots of a day.
type repScheme struct {
	compoundSets   string
	compoundReps   string
	secondarySets  string
	secondaryReps  string
	accessorySets  string
	accessoryReps  string
	note           string
}

func schemeForGoal(goal domain.Goal) repScheme {
	switch goal {
	case domain.GoalStrength:
		return repScheme{
			compoundSets:  "4",
			compoundReps:  "3-5",
			secondarySets: "3",
			secondaryReps: "5-8",
			accessorySets: "3",
			accessoryReps: "10-12",
			note:          "Rest 2-3 min on the main lifts.",
		}
	case domain.GoalFatLoss, domain.GoalGeneral:
		return repScheme{
			compoundSets:  "3",
			compoundReps:  "8-12",
			secondarySets: "3",
			secondaryReps: "10-12",
			accessorySets: "3",
			accessoryReps: "12-15",
			note:          "Short rests (60-90 sec), technique and energy output first.",
		}
	}
	return repScheme{
		compoundSets:  "3",
		compoundReps:  "5-8",
		secondarySets: "3",
		secondaryReps: "8-10",
		accessorySets: "3",
		accessoryReps: "12-15",
		note:          "Add 1-2 reps before adding load.",
	}
}

// exerciseLibrary maps movement patterns to concrete exercises for the
// user's location and equipment.
type exerciseLibrary struct {
	horizontalPush string
	verticalPush   string
	horizontalPull string
	verticalPull   string
	squat          string
	hinge          string
	lateralRaise   string
	curls          string
	triceps        string
	core           string
	lunge          string
}

func libraryFor(location domain.Location, equipment []string) exerciseLibrary {
	if location == domain.LocationGym {
		return exerciseLibrary{
			horizontalPush: "Barbell Bench Press",
			verticalPush:   "Seated Dumbbell Shoulder Press",
			horizontalPull: "Barbell Row",
			verticalPull:   "Lat Pulldown",
			squat:          "Back Squat",
			hinge:          "Romanian Deadlift",
			lateralRaise:   "Dumbbell Lateral Raise",
			curls:          "EZ-Bar Curl",
			triceps:        "Cable Triceps Pushdown",
			core:           "Cable Crunch",
			lunge:          "Walking Lunges",
		}
	}

	has := func(item string) bool {
		for _, e := range equipment {
			if strings.EqualFold(e, item) {
				return true
			}
		}
		return false
	}

	lib := exerciseLibrary{
		horizontalPush: "Push-Ups",
		verticalPush:   "Pike Push-Up",
		horizontalPull: "Inverted Row",
		squat:          "Bodyweight Squat",
		hinge:          "Hip Hinge Good Morning",
		lateralRaise:   "Lateral Raise (Bodyweight Lean)",
		curls:          "Towel Curl Isometric",
		triceps:        "Diamond Push-Ups",
		core:           "Plank / Hollow Hold",
		lunge:          "Reverse Lunges",
	}
	if has("dumbbells") {
		lib.horizontalPush = "Dumbbell Bench Press"
		lib.verticalPush = "Dumbbell Shoulder Press"
		lib.horizontalPull = "Single-Arm Dumbbell Row"
		lib.squat = "Goblet Squat"
		lib.hinge = "Dumbbell Romanian Deadlift"
		lib.lateralRaise = "Dumbbell Lateral Raise"
		lib.curls = "Dumbbell Curl"
		lib.triceps = "Overhead Dumbbell Triceps Extension"
	} else if has("bands") {
		lib.horizontalPull = "Band Row"
		lib.lateralRaise = "Band Lateral Raise"
		lib.curls = "Band Curl"
		lib.triceps = "Band Triceps Extension"
	}

	switch {
	case has("pullup_bar"):
		lib.verticalPull = "Pull-Ups"
	case has("bands"):
		lib.verticalPull = "Band Lat Pulldown"
	default:
		lib.verticalPull = lib.horizontalPull
	}

	return lib
}

func fullBodyDay(day, focus string, lib exerciseLibrary, scheme repScheme) domain.PlanDay {
	return domain.PlanDay{
		Day:   day,
		Focus: focus,
		Exercises: []domain.PlanExercise{
			makeExercise(lib.squat, "squat", scheme.compoundSets, scheme.compoundReps, "RPE 7-8"),
			makeExercise(lib.horizontalPush, "horizontal_push", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise(lib.horizontalPull, "horizontal_pull", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise(lib.hinge, "hinge", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise(lib.verticalPull, "vertical_pull", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise(lib.lateralRaise, "isolation", scheme.accessorySets, scheme.accessoryReps, ""),
			makeExercise(lib.core, "core", "3", "30-45 sec", scheme.note),
		},
	}
}

func upperDay(day, focus string, lib exerciseLibrary, scheme repScheme) domain.PlanDay {
	return domain.PlanDay{
		Day:   day,
		Focus: focus,
		Exercises: []domain.PlanExercise{
			makeExercise(lib.horizontalPush, "horizontal_push", scheme.compoundSets, scheme.compoundReps, "RPE 7-8"),
			makeExercise(lib.verticalPull, "vertical_pull", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise(lib.verticalPush, "vertical_push", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise(lib.horizontalPull, "horizontal_pull", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise(lib.lateralRaise, "isolation", scheme.accessorySets, scheme.accessoryReps, ""),
			makeExercise(lib.curls, "isolation", scheme.accessorySets, scheme.accessoryReps, ""),
			makeExercise(lib.triceps, "isolation", scheme.accessorySets, scheme.accessoryReps, ""),
		},
	}
}

func lowerDay(day, focus string, lib exerciseLibrary, scheme repScheme) domain.PlanDay {
	return domain.PlanDay{
		Day:   day,
		Focus: focus,
		Exercises: []domain.PlanExercise{
			makeExercise(lib.squat, "squat", scheme.compoundSets, scheme.compoundReps, "RPE 7-8"),
			makeExercise(lib.hinge, "hinge", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise(lib.lunge, "lunge", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise("Leg Press / Step-Up", "squat", scheme.secondarySets, scheme.secondaryReps, ""),
			makeExercise(lib.core, "core", "3", "30-45 sec", scheme.note),
		},
	}
}

func weightliftingDays(days int, scheme repScheme) []domain.PlanDay {
	templates := []domain.PlanDay{
		{
			Day:   "Day 1",
			Focus: "Snatch + Squat",
			Exercises: []domain.PlanExercise{
				makeExercise("Snatch", "olympic", "5", "2-3", "Technique first, stop well short of failure"),
				makeExercise("Back Squat", "squat", scheme.compoundSets, scheme.compoundReps, "RPE 7-8"),
				makeExercise("Snatch Pull", "hinge", "3", "3-5", ""),
				makeExercise("Plank / Hollow Hold", "core", "3", "30-45 sec", ""),
			},
		},
		{
			Day:   "Day 2",
			Focus: "Clean & Jerk + Press",
			Exercises: []domain.PlanExercise{
				makeExercise("Power Clean", "olympic", "5", "2-3", "Technique first, stop well short of failure"),
				makeExercise("Strict Press", "vertical_push", scheme.compoundSets, scheme.compoundReps, ""),
				makeExercise("Front Squat", "squat", "4", "3-5", ""),
				makeExercise("Barbell Row", "horizontal_pull", scheme.secondarySets, scheme.secondaryReps, ""),
			},
		},
		{
			Day:   "Day 3",
			Focus: "Squat + Pulls",
			Exercises: []domain.PlanExercise{
				makeExercise("Front Squat", "squat", scheme.compoundSets, scheme.compoundReps, "RPE 7-8"),
				makeExercise("Clean Pull", "hinge", "4", "3-5", ""),
				makeExercise("Strict Press", "vertical_push", scheme.secondarySets, scheme.secondaryReps, ""),
				makeExercise("Plank / Hollow Hold", "core", "3", "30-45 sec", ""),
			},
		},
	}

	out := make([]domain.PlanDay, 0, days)
	for i := 0; i < days; i++ {
		day := templates[i%len(templates)]
		day.Day = fmt.Sprintf("Day %d", i+1)
		out = append(out, day)
	}
	return out
}

func calisthenicsDays(days int, scheme repScheme) []domain.PlanDay {
	pushDay := func(label string) domain.PlanDay {
		return domain.PlanDay{
			Day:   label,
			Focus: "Push + Core",
			Exercises: []domain.PlanExercise{
				makeExercise("Push-Ups", "horizontal_push", scheme.compoundSets, "8-15", "Stop 2 reps short of failure"),
				makeExercise("Pike Push-Up", "vertical_push", scheme.secondarySets, scheme.secondaryReps, ""),
				makeExercise("Dips", "vertical_push", scheme.secondarySets, scheme.secondaryReps, ""),
				makeExercise("Plank / Hollow Hold", "core", "3", "30-45 sec", scheme.note),
			},
		}
	}
	pullDay := func(label string) domain.PlanDay {
		return domain.PlanDay{
			Day:   label,
			Focus: "Pull + Legs",
			Exercises: []domain.PlanExercise{
				makeExercise("Pull-Ups", "vertical_pull", scheme.compoundSets, "4-10", "Stop 2 reps short of failure"),
				makeExercise("Inverted Row", "horizontal_pull", scheme.secondarySets, scheme.secondaryReps, ""),
				makeExercise("Bodyweight Squat", "squat", scheme.secondarySets, scheme.accessoryReps, ""),
				makeExercise("Reverse Lunges", "lunge", scheme.accessorySets, scheme.accessoryReps, ""),
			},
		}
	}

	out := make([]domain.PlanDay, 0, days)
	for i := 0; i < days; i++ {
		label := fmt.Sprintf("Day %d", i+1)
		if i%2 == 0 {
			out = append(out, pushDay(label))
		} else {
			out = append(out, pullDay(label))
		}
	}
	return out
}

func runningDays(days int) []domain.PlanDay {
	runDay := func(label, focus, name, sets, reps, notes string) domain.PlanDay {
		return domain.PlanDay{
			Day:   label,
			Focus: focus,
			Exercises: []domain.PlanExercise{
				makeExercise(name, "run", sets, reps, notes),
			},
		}
	}

	templates := []domain.PlanDay{
		runDay("Day 1", "Easy Run", "Easy Run", "1", "30-40 min", "Conversational pace"),
		runDay("Day 2", "Intervals", "Interval Run 400m", "6", "400 m", "Full recovery between reps"),
		runDay("Day 3", "Tempo", "Tempo Run", "1", "20 min", "Comfortably hard"),
		runDay("Day 4", "Long Run", "Easy Long Run", "1", "60-75 min", "Conversational pace"),
	}

	out := make([]domain.PlanDay, 0, days)
	for i := 0; i < days; i++ {
		day := templates[i%len(templates)]
		day.Day = fmt.Sprintf("Day %d", i+1)
		out = append(out, day)
	}
	return out
}

// SplitFor labels the weekly split used for a given training frequency.
func SplitFor(daysPerWeek int) string {
	switch {
	case daysPerWeek <= 3:
		return "Full Body"
	case daysPerWeek == 4:
		return "Upper / Lower"
	case daysPerWeek == 5:
		return "Push / Pull / Legs + Upper + Accessory"
	}
	return "Push / Pull / Legs x2"
}

func strengthDays(days int, lib exerciseLibrary, scheme repScheme) []domain.PlanDay {
	switch {
	case days <= 3:
		return []domain.PlanDay{
			fullBodyDay("Day 1", "Full Body A", lib, scheme),
			fullBodyDay("Day 2", "Full Body B", lib, scheme),
			fullBodyDay("Day 3", "Full Body A", lib, scheme),
		}
	case days == 4:
		return []domain.PlanDay{
			upperDay("Day 1", "Upper A", lib, scheme),
			lowerDay("Day 2", "Lower A", lib, scheme),
			upperDay("Day 3", "Upper B", lib, scheme),
			lowerDay("Day 4", "Lower B", lib, scheme),
		}
	case days == 5:
		return []domain.PlanDay{
			upperDay("Day 1", "Push", lib, scheme),
			upperDay("Day 2", "Pull", lib, scheme),
			lowerDay("Day 3", "Legs", lib, scheme),
			upperDay("Day 4", "Upper Hypertrophy", lib, scheme),
			lowerDay("Day 5", "Accessory + Core", lib, scheme),
		}
	}
	return []domain.PlanDay{
		upperDay("Day 1", "Push A", lib, scheme),
		upperDay("Day 2", "Pull A", lib, scheme),
		lowerDay("Day 3", "Legs A", lib, scheme),
		upperDay("Day 4", "Push B", lib, scheme),
		upperDay("Day 5", "Pull B", lib, scheme),
		lowerDay("Day 6", "Legs B", lib, scheme),
	}
}

// GeneratePlan builds a plan template from onboarding preferences.
// Days per week are clamped to [3,6]; a missing goal defaults to general.
func GeneratePlan(prefs domain.UserPrefs) *domain.TrainingPlan {
	if prefs.Goal == "" {
		prefs.Goal = domain.GoalGeneral
	}
	if prefs.Archetype == "" {
		prefs.Archetype = domain.ArchetypeHypertrophy
	}

	days := prefs.DaysPerWeek
	if days < 3 {
		days = 3
	}
	if days > 6 {
		days = 6
	}
	prefs.DaysPerWeek = days

	scheme := schemeForGoal(prefs.Goal)

	var split string
	var planDays []domain.PlanDay
	switch prefs.Archetype {
	case domain.ArchetypeRunning:
		split = "Base + Intervals + Tempo"
		planDays = runningDays(days)
	case domain.ArchetypeWeightlifting:
		split = "Snatch / Clean & Jerk / Squat"
		planDays = weightliftingDays(days, scheme)
	case domain.ArchetypeCalisthenics:
		split = "Push / Pull Alternating"
		planDays = calisthenicsDays(days, scheme)
	default:
		split = SplitFor(days)
		lib := libraryFor(prefs.Location, prefs.Equipment)
		planDays = strengthDays(days, lib, scheme)
	}

	return &domain.TrainingPlan{
		Title:    fmt.Sprintf("Plan %s - %s", split, prefs.TrainingLevel),
		Split:    split,
		Meta:     prefs,
		Days:     planDays,
		IsActive: true,
	}
}
