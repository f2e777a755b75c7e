package coach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
)

func upperDay() domain.PlanDay {
	return domain.PlanDay{
		Day:   "Day 1",
		Focus: "Upper A",
		Exercises: []domain.PlanExercise{
			{ExerciseKey: "barbell_bench_press", ExerciseName: "Barbell Bench Press", EquipmentType: domain.EquipmentBarbell, Sets: "4", Reps: "6-10", TargetRepsMin: 6, TargetRepsMax: 10},
			{ExerciseKey: "lat_pulldown", ExerciseName: "Lat Pulldown", EquipmentType: domain.EquipmentMachine, Sets: "3", Reps: "8-12", TargetRepsMin: 8, TargetRepsMax: 12},
			{ExerciseKey: "pushup", ExerciseName: "Push-Up", EquipmentType: domain.EquipmentBodyweight, Sets: "3", Reps: "10-15", TargetRepsMin: 10, TargetRepsMax: 15},
		},
	}
}

func gymConstraints() domain.ConstraintSet {
	return domain.ConstraintSet{
		Equipment: []string{"barbell", "machine", "dumbbell"},
		Location:  domain.LocationGym,
	}
}

func sessionLogs(key string, perSession []struct {
	weight *float64
	reps   int
}) []domain.ExerciseLogEntry {
	base := time.Date(2024, time.April, 1, 18, 0, 0, 0, time.UTC)
	logs := make([]domain.ExerciseLogEntry, 0, len(perSession))
	for idx, s := range perSession {
		logs = append(logs, domain.ExerciseLogEntry{
			SessionID:   primitive.NewObjectID(),
			ExerciseKey: key,
			WeightKg:    s.weight,
			Reps:        s.reps,
			CreatedAt:   base.AddDate(0, 0, -7*idx),
		})
	}
	return logs
}

func TestBuildSessionBlueprint(t *testing.T) {
	p := DefaultPolicy()

	t.Run("exercise count and order are preserved for every archetype", func(t *testing.T) {
		for _, arch := range []domain.Archetype{
			domain.ArchetypeCalisthenics,
			domain.ArchetypeHypertrophy,
			domain.ArchetypeWeightlifting,
			domain.ArchetypeRunning,
		} {
			bp := p.BuildSessionBlueprint(BlueprintInput{
				PlanDay:     upperDay(),
				Archetype:   arch,
				Goal:        domain.GoalMuscle,
				Constraints: gymConstraints(),
				CycleWeek:   1,
			})
			if assert.Len(t, bp.Exercises, 3, string(arch)) {
				assert.Equal(t, "barbell_bench_press", bp.Exercises[0].ExerciseKey)
				assert.Equal(t, "lat_pulldown", bp.Exercises[1].ExerciseKey)
				assert.Equal(t, "pushup", bp.Exercises[2].ExerciseKey)
			}
		}
	})

	t.Run("history drives the recommendation", func(t *testing.T) {
		logs := sessionLogs("barbell_bench_press", []struct {
			weight *float64
			reps   int
		}{{f64(100), 12}})

		bp := p.BuildSessionBlueprint(BlueprintInput{
			PlanDay:        upperDay(),
			Archetype:      domain.ArchetypeHypertrophy,
			Goal:           domain.GoalMuscle,
			LogsByExercise: map[string][]domain.ExerciseLogEntry{"barbell_bench_press": logs},
			Constraints:    gymConstraints(),
			CycleWeek:      1,
		})
		bench := bp.Exercises[0]
		if assert.NotNil(t, bench.RecommendedWeightKg) {
			assert.Equal(t, 102.5, *bench.RecommendedWeightKg)
		}
		assert.Equal(t, "6-10", bench.RecommendedReps)
	})

	t.Run("strength stall across two sessions resets to 95 percent", func(t *testing.T) {
		day := domain.PlanDay{
			Day:   "Day 2",
			Focus: "Squat",
			Exercises: []domain.PlanExercise{
				{ExerciseKey: "barbell_back_squat", ExerciseName: "Back Squat", EquipmentType: domain.EquipmentBarbell, Sets: "4", Reps: "6-8", TargetRepsMin: 6, TargetRepsMax: 8},
			},
		}
		logs := sessionLogs("barbell_back_squat", []struct {
			weight *float64
			reps   int
		}{{f64(140), 5}, {f64(140), 5}})

		bp := p.BuildSessionBlueprint(BlueprintInput{
			PlanDay:        day,
			Archetype:      domain.ArchetypeHypertrophy,
			Goal:           domain.GoalStrength,
			LogsByExercise: map[string][]domain.ExerciseLogEntry{"barbell_back_squat": logs},
			Constraints:    gymConstraints(),
			CycleWeek:      1,
		})
		squat := bp.Exercises[0]
		if assert.NotNil(t, squat.RecommendedWeightKg) {
			assert.Equal(t, 133.0, *squat.RecommendedWeightKg) // 140 * 0.95
		}
	})

	t.Run("no history falls back to the baseline seed", func(t *testing.T) {
		bp := p.BuildSessionBlueprint(BlueprintInput{
			PlanDay:     upperDay(),
			Archetype:   domain.ArchetypeHypertrophy,
			Baseline:    domain.Baseline{BenchPress5RMKg: f64(100)},
			Goal:        domain.GoalMuscle,
			Constraints: gymConstraints(),
			CycleWeek:   1,
		})
		bench := bp.Exercises[0]
		if assert.NotNil(t, bench.RecommendedWeightKg) {
			assert.Equal(t, 92.0, *bench.RecommendedWeightKg) // 0.92 * 5RM
		}
		assert.Contains(t, bench.ProgressionNote, "5RM")
	})

	t.Run("deload week reduces volume and load, skipping running work", func(t *testing.T) {
		day := upperDay()
		day.Exercises = append(day.Exercises, domain.PlanExercise{
			ExerciseKey: "easy_run", ExerciseName: "Easy Run", EquipmentType: domain.EquipmentRunning,
			Sets: "1", Reps: "1-1", TargetRepsMin: 1, TargetRepsMax: 1,
		})
		logs := sessionLogs("barbell_bench_press", []struct {
			weight *float64
			reps   int
		}{{f64(100), 8}})

		bp := p.BuildSessionBlueprint(BlueprintInput{
			PlanDay:        day,
			Archetype:      domain.ArchetypeHypertrophy,
			Goal:           domain.GoalMuscle,
			LogsByExercise: map[string][]domain.ExerciseLogEntry{"barbell_bench_press": logs},
			Constraints:    gymConstraints(),
			CycleWeek:      4,
		})
		assert.True(t, bp.Deload)

		bench := bp.Exercises[0]
		assert.Equal(t, "3", bench.Sets)
		if assert.NotNil(t, bench.RecommendedWeightKg) {
			assert.Equal(t, 90.0, *bench.RecommendedWeightKg) // hold 100, then x0.9
		}
		assert.Contains(t, bench.Notes, "Deload")

		run := bp.Exercises[3]
		assert.Equal(t, "1", run.Sets)
		assert.Nil(t, run.RecommendedWeightKg)
	})

	t.Run("plateau swaps to a sibling variant and keeps the slot", func(t *testing.T) {
		logs := sessionLogs("barbell_bench_press", []struct {
			weight *float64
			reps   int
		}{{f64(60), 8}, {f64(60), 8}, {f64(60), 8}})

		catalog := []domain.VariantExercise{{
			BaseKey:       "barbell_bench_press",
			VariantKey:    "dumbbell_bench_press",
			Name:          "Dumbbell Bench Press",
			EquipmentType: domain.EquipmentDumbbell,
			Priority:      10,
		}}

		bp := p.BuildSessionBlueprint(BlueprintInput{
			PlanDay:        upperDay(),
			Archetype:      domain.ArchetypeHypertrophy,
			Goal:           domain.GoalMuscle,
			LogsByExercise: map[string][]domain.ExerciseLogEntry{"barbell_bench_press": logs},
			Constraints:    gymConstraints(),
			Catalog:        catalog,
			CycleWeek:      2,
		})
		assert.Len(t, bp.Exercises, 3)
		swapped := bp.Exercises[0]
		assert.Equal(t, "dumbbell_bench_press", swapped.ExerciseKey)
		assert.Contains(t, swapped.Notes, "Plateau")
		// the swapped-to key has no history, so the seedless cold start yields no weight
		assert.Nil(t, swapped.RecommendedWeightKg)
	})

	t.Run("running archetype produces paces, never weights", func(t *testing.T) {
		day := domain.PlanDay{
			Day:   "Day 1",
			Focus: "Intervals",
			Exercises: []domain.PlanExercise{
				{ExerciseKey: "interval_400m", ExerciseName: "400m Intervals", EquipmentType: domain.EquipmentRunning, Sets: "6", Reps: "1-1", TargetRepsMin: 1, TargetRepsMax: 1},
				{ExerciseKey: "easy_run", ExerciseName: "Easy Run", EquipmentType: domain.EquipmentRunning, Sets: "1", Reps: "1-1", TargetRepsMin: 1, TargetRepsMax: 1},
			},
		}
		fiveK := 1500 // 25:00 5k -> 300 s/km pace
		bp := p.BuildSessionBlueprint(BlueprintInput{
			PlanDay:   day,
			Archetype: domain.ArchetypeRunning,
			Baseline:  domain.Baseline{FiveKTimeSec: &fiveK},
			Goal:      domain.GoalGeneral,
			CycleWeek: 1,
		})
		interval := bp.Exercises[0]
		assert.Nil(t, interval.RecommendedWeightKg)
		if assert.NotNil(t, interval.RecommendedPaceSecPerKm) {
			assert.Equal(t, 285, *interval.RecommendedPaceSecPerKm) // 300 * 0.95
		}
		easy := bp.Exercises[1]
		if assert.NotNil(t, easy.RecommendedPaceSecPerKm) {
			assert.Equal(t, 360, *easy.RecommendedPaceSecPerKm) // 300 * 1.2
		}
	})

	t.Run("interval pace gets one percent faster per cycle week", func(t *testing.T) {
		fiveK := 1500
		zones := BaselineZones(domain.Baseline{FiveKTimeSec: &fiveK})
		week1 := RecommendPace("interval_400m", zones, 1)
		week3 := RecommendPace("interval_400m", zones, 3)
		assert.Equal(t, 285, *week1)
		assert.Equal(t, 279, *week3) // 285 * 0.98, rounded
	})
}
