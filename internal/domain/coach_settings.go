// internal/domain/coach_settings.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConstraintSet are the user preferences consumed by exercise substitution:
// injuries, available equipment, training location, banned and preferred
// movements, and an optional session time cap.
type ConstraintSet struct {
	Injuries       []string `bson:"injuries" json:"injuries"`
	Equipment      []string `bson:"equipment" json:"equipment"`
	Location       Location `bson:"location" json:"location"`
	Banned         []string `bson:"banned" json:"banned"`       // exercise keys
	Preferred      []string `bson:"preferred,omitempty" json:"preferred,omitempty"` // exercise keys
	TimeCapMinutes *int     `bson:"timeCapMinutes,omitempty" json:"timeCapMinutes,omitempty"`
}

// VariantExercise is one catalog entry the substitution resolver can swap
// to. Priority is a ranking, lower is preferred.
type VariantExercise struct {
	BaseKey       string        `bson:"baseKey" json:"base_key"`
	VariantKey    string        `bson:"variantKey" json:"variant_key"`
	Name          string        `bson:"name" json:"name"`
	Pattern       string        `bson:"pattern,omitempty" json:"pattern,omitempty"`
	EquipmentType EquipmentType `bson:"equipmentType" json:"equipment_type"`
	Tags          []string      `bson:"tags,omitempty" json:"tags,omitempty"`
	Priority      int           `bson:"priority" json:"priority"`
}

// Baseline holds archetype-specific self-reported performance numbers.
// They seed recommendations only while no logged history exists for an
// exercise; once a set is logged the history takes over.
type Baseline struct {
	// hypertrophy
	BenchPress5RMKg *float64 `bson:"benchPress5rmKg,omitempty" json:"bench_press_5rm_kg,omitempty"`
	Squat5RMKg      *float64 `bson:"squat5rmKg,omitempty" json:"squat_5rm_kg,omitempty"`
	Row8RMKg        *float64 `bson:"row8rmKg,omitempty" json:"row_8rm_kg,omitempty"`
	// weightlifting
	FrontSquat3RMKg  *float64 `bson:"frontSquat3rmKg,omitempty" json:"front_squat_3rm_kg,omitempty"`
	PowerClean3RMKg  *float64 `bson:"powerClean3rmKg,omitempty" json:"power_clean_3rm_kg,omitempty"`
	StrictPress5RMKg *float64 `bson:"strictPress5rmKg,omitempty" json:"strict_press_5rm_kg,omitempty"`
	// calisthenics
	PullupsMax *int `bson:"pullupsMax,omitempty" json:"pullups_max,omitempty"`
	PushupsMax *int `bson:"pushupsMax,omitempty" json:"pushups_max,omitempty"`
	DipsMax    *int `bson:"dipsMax,omitempty" json:"dips_max,omitempty"`
	// running
	FiveKTimeSec     *int `bson:"fivekTimeSec,omitempty" json:"fivek_time_sec,omitempty"`
	CooperMeters     *int `bson:"cooperM,omitempty" json:"cooper_m,omitempty"`          // 12-minute run distance
	EasyPaceSecPerKm *int `bson:"easyPaceSecPerKm,omitempty" json:"easy_pace_sec_per_km,omitempty"`
}

// CoachSettings is the per-user row bundling everything the blueprint
// builder needs besides the plan and the logs.
type CoachSettings struct {
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Constraints    ConstraintSet      `bson:"constraints" json:"constraints"`
	Baseline       Baseline           `bson:"baseline" json:"baseline"`
	CycleStartDate time.Time          `bson:"cycleStartDate" json:"cycleStartDate"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
