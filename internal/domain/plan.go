// internal/domain/plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Archetype is a training style family. It determines which exercise
// patterns and which baseline cold-start formulas apply.
type Archetype string

const (
	ArchetypeCalisthenics  Archetype = "calisthenics"
	ArchetypeHypertrophy   Archetype = "hypertrophy"
	ArchetypeWeightlifting Archetype = "weightlifting"
	ArchetypeRunning       Archetype = "running"
)

// Goal drives the progression rules of the weight recommender.
type Goal string

const (
	GoalMuscle   Goal = "muscle"
	GoalStrength Goal = "strength"
	GoalFatLoss  Goal = "fat_loss"
	GoalGeneral  Goal = "general"
)

// EquipmentType classifies the implement an exercise is loaded with.
// Bodyweight and running never carry an external load.
type EquipmentType string

const (
	EquipmentBarbell    EquipmentType = "barbell"
	EquipmentDumbbell   EquipmentType = "dumbbell"
	EquipmentMachine    EquipmentType = "machine"
	EquipmentBodyweight EquipmentType = "bodyweight"
	EquipmentBand       EquipmentType = "band"
	EquipmentRunning    EquipmentType = "running"
	EquipmentUnknown    EquipmentType = "unknown"
)

// Weightless reports whether the equipment type never carries external load.
func (e EquipmentType) Weightless() bool {
	return e == EquipmentBodyweight || e == EquipmentRunning
}

// Location is where the user trains.
type Location string

const (
	LocationGym     Location = "gym"
	LocationHome    Location = "home"
	LocationOutdoor Location = "outdoor"
)

// PlanExercise is one prescribed movement inside a PlanDay.
// ExerciseKey is the durable identity used for history lookups across
// substitutions and plan regenerations; ExerciseName is display only and
// may change when a substitution swaps the movement.
type PlanExercise struct {
	ExerciseKey   string        `bson:"exerciseKey" json:"exercise_key"`
	ExerciseName  string        `bson:"exerciseName" json:"exercise_name"`
	Pattern       string        `bson:"pattern,omitempty" json:"pattern,omitempty"` // movement category, e.g. "horizontal_push"
	EquipmentType EquipmentType `bson:"equipmentType" json:"equipment_type"`
	Sets          string        `bson:"sets" json:"sets"` // e.g. "3" or "4"
	Reps          string        `bson:"reps" json:"reps"` // e.g. "8-12"
	TargetRepsMin int           `bson:"targetRepsMin" json:"target_reps_min"`
	TargetRepsMax int           `bson:"targetRepsMax" json:"target_reps_max"`
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty"`
}

// PlanDay is an ordered list of exercises with a focus label.
type PlanDay struct {
	Day       string         `bson:"day" json:"day"`     // e.g. "Day 1"
	Focus     string         `bson:"focus" json:"focus"` // e.g. "Upper A"
	Exercises []PlanExercise `bson:"exercises" json:"exercises"`
}

// UserPrefs captures the onboarding answers a plan was generated from.
type UserPrefs struct {
	TrainingLevel string        `bson:"trainingLevel" json:"training_level"` // beginner | intermediate | advanced
	Goal          Goal          `bson:"goal" json:"goal"`
	Archetype     Archetype     `bson:"archetype" json:"archetype"`
	Location      Location      `bson:"location" json:"location"`
	DaysPerWeek   int           `bson:"daysPerWeek" json:"days_per_week"`
	Equipment     []string      `bson:"equipment" json:"equipment"`
}

// TrainingPlan is an immutable plan template for a user. Regenerating a plan
// deactivates the previous active one and inserts a new row; plans are never
// mutated in place.
type TrainingPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Split     string             `bson:"split" json:"split"` // e.g. "Full Body", "Upper / Lower"
	Meta      UserPrefs          `bson:"meta" json:"meta"`
	Days      []PlanDay          `bson:"days" json:"days"`
	IsActive  bool               `bson:"isActive" json:"isActive"` // exactly one active plan per user (best effort)
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
