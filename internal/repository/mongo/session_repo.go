// internal/repository/mongo/session_repo.go
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

const sessionCollectionName = "workout_sessions"

// mongoSessionRepository implements repository.SessionRepository
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new workout session repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Create inserts a new session row with the frozen blueprint.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session requires userId")
	}
	session.ID = primitive.NewObjectID()
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a session by its ID.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetOpenForUser returns the newest unfinished session of the user, or
// ErrNotFound when none is open.
func (r *mongoSessionRepository) GetOpenForUser(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{
		"userId":  userID,
		"endedAt": bson.M{"$exists": false},
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "startedAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Finish sets endedAt and the aggregate stats on an open session. The filter
// excludes finished sessions so a double finish maps to ErrNotFound.
func (r *mongoSessionRepository) Finish(ctx context.Context, userID, sessionID primitive.ObjectID, stats domain.SessionStats) (*domain.WorkoutSession, error) {
	filter := bson.M{
		"_id":     sessionID,
		"userId":  userID,
		"endedAt": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"endedAt": time.Now().UTC(),
			"stats":   stats,
		},
	}
	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session domain.WorkoutSession
	err := r.collection.FindOneAndUpdate(ctx, filter, update, updateOptions).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// EnsureSessionIndexes creates necessary indexes. Call during startup.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Open-session lookup; partial so finished rows stay out of it.
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetPartialFilterExpression(
				bson.M{"endedAt": bson.M{"$exists": false}},
			),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
