// internal/repository/mongo/schedule_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/repository"
)

const scheduleCollectionName = "scheduled_workouts"

// mongoScheduleRepository implements repository.ScheduleRepository
type mongoScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleRepository creates a new schedule repository.
func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		collection: db.Collection(scheduleCollectionName),
	}
}

// GetRange returns the user's scheduled workouts with fromDate <= workoutDate <= toDate,
// ordered by date. Dates are ScheduleDateLayout strings so lexical comparison
// is chronological.
func (r *mongoScheduleRepository) GetRange(ctx context.Context, userID primitive.ObjectID, fromDate, toDate string) ([]domain.ScheduledWorkout, error) {
	var rows []domain.ScheduledWorkout
	filter := bson.M{
		"userId":      userID,
		"workoutDate": bson.M{"$gte": fromDate, "$lte": toDate},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "workoutDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert writes a scheduled workout keyed on (userId, workoutDate). An
// existing row for the date keeps its status and sessionId; only the plan
// assignment fields are overwritten.
func (r *mongoScheduleRepository) Upsert(ctx context.Context, row *domain.ScheduledWorkout) error {
	if row.UserID == primitive.NilObjectID || row.WorkoutDate == "" {
		return errors.New("scheduled workout requires userId and workoutDate")
	}

	filter := bson.M{
		"userId":      row.UserID,
		"workoutDate": row.WorkoutDate,
	}
	update := bson.M{
		"$set": bson.M{
			"planId":   row.PlanID,
			"dayIndex": row.DayIndex,
		},
		"$setOnInsert": bson.M{
			"userId":      row.UserID,
			"workoutDate": row.WorkoutDate,
			"status":      domain.WorkoutPlanned,
			"createdAt":   time.Now().UTC(),
		},
	}
	updateOptions := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, updateOptions)
	return err
}

// SetStatus marks a scheduled day done or skipped, optionally linking the
// session that completed it.
func (r *mongoScheduleRepository) SetStatus(ctx context.Context, userID primitive.ObjectID, workoutDate string, status domain.WorkoutStatus, sessionID *primitive.ObjectID) error {
	filter := bson.M{
		"userId":      userID,
		"workoutDate": workoutDate,
	}
	set := bson.M{"status": status}
	if sessionID != nil {
		set["sessionId"] = *sessionID
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureScheduleIndexes creates necessary indexes. Call during startup.
func EnsureScheduleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One row per user per calendar date.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "workoutDate", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
