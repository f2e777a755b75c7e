// internal/repository/mongo/log_repo.go
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

const logCollectionName = "exercise_logs"

// mongoLogRepository implements repository.LogRepository
type mongoLogRepository struct {
	collection *mongo.Collection
}

// NewMongoLogRepository creates a new exercise log repository.
func NewMongoLogRepository(db *mongo.Database) repository.LogRepository {
	return &mongoLogRepository{
		collection: db.Collection(logCollectionName),
	}
}

// Append inserts one log entry. Entries are never updated or deleted.
func (r *mongoLogRepository) Append(ctx context.Context, entry *domain.ExerciseLogEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.ExerciseKey == "" {
		return primitive.NilObjectID, errors.New("log entry requires userId and exerciseKey")
	}
	entry.ID = primitive.NewObjectID()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

// GetByExerciseKey returns the newest entries for one exercise of one user,
// newest first, capped at limit.
func (r *mongoLogRepository) GetByExerciseKey(ctx context.Context, userID primitive.ObjectID, exerciseKey string, limit int64) ([]domain.ExerciseLogEntry, error) {
	var entries []domain.ExerciseLogEntry
	filter := bson.M{
		"userId":      userID,
		"exerciseKey": exerciseKey,
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetBySessionID returns every entry logged in one session, oldest first,
// which matches the order the sets were performed in.
func (r *mongoLogRepository) GetBySessionID(ctx context.Context, userID, sessionID primitive.ObjectID) ([]domain.ExerciseLogEntry, error) {
	var entries []domain.ExerciseLogEntry
	filter := bson.M{
		"userId":    userID,
		"sessionId": sessionID,
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureLogIndexes creates necessary indexes. Call during startup.
func EnsureLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// History lookups for the progression engine.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseKey", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "sessionId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
