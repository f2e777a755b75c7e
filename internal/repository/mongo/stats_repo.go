// internal/repository/mongo/stats_repo.go
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

const (
	statsCollectionName = "user_stats"
	questCollectionName = "weekly_quests"
)

// mongoStatsRepository implements repository.StatsRepository using two
// collections: the per-user aggregate and the per-week quest rows.
type mongoStatsRepository struct {
	stats  *mongo.Collection
	quests *mongo.Collection
}

// NewMongoStatsRepository creates a new gamification stats repository.
func NewMongoStatsRepository(db *mongo.Database) repository.StatsRepository {
	return &mongoStatsRepository{
		stats:  db.Collection(statsCollectionName),
		quests: db.Collection(questCollectionName),
	}
}

// GetStats retrieves the user's gamification aggregate.
func (r *mongoStatsRepository) GetStats(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error) {
	var stats domain.UserStats
	filter := bson.M{"userId": userID}
	err := r.stats.FindOne(ctx, filter).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &stats, nil
}

// UpsertStats replaces the user's aggregate row.
func (r *mongoStatsRepository) UpsertStats(ctx context.Context, stats *domain.UserStats) error {
	if stats.UserID == primitive.NilObjectID {
		return errors.New("stats require userId")
	}
	stats.UpdatedAt = time.Now().UTC()

	filter := bson.M{"userId": stats.UserID}
	updateOptions := options.Replace().SetUpsert(true)

	_, err := r.stats.ReplaceOne(ctx, filter, stats, updateOptions)
	return err
}

// GetQuest retrieves the quest row for one ISO week.
func (r *mongoStatsRepository) GetQuest(ctx context.Context, userID primitive.ObjectID, weekStart string) (*domain.WeeklyQuest, error) {
	var quest domain.WeeklyQuest
	filter := bson.M{"userId": userID, "weekStart": weekStart}
	err := r.quests.FindOne(ctx, filter).Decode(&quest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &quest, nil
}

// UpsertQuest replaces the quest row keyed on (userId, weekStart).
func (r *mongoStatsRepository) UpsertQuest(ctx context.Context, quest *domain.WeeklyQuest) error {
	if quest.UserID == primitive.NilObjectID || quest.WeekStart == "" {
		return errors.New("quest requires userId and weekStart")
	}

	filter := bson.M{"userId": quest.UserID, "weekStart": quest.WeekStart}
	updateOptions := options.Replace().SetUpsert(true)

	_, err := r.quests.ReplaceOne(ctx, filter, quest, updateOptions)
	return err
}

// EnsureStatsIndexes creates necessary indexes on both collections.
// Call during startup.
func EnsureStatsIndexes(ctx context.Context, statsCollection, questCollection *mongo.Collection) {
	_, _ = statsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	_, _ = questCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "weekStart", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
