// internal/repository/mongo/settings_repo.go
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
	settingsCollectionName = "coach_settings"
	variantCollectionName  = "exercise_variants"
)

// mongoSettingsRepository implements repository.SettingsRepository. The
// variant catalog is a shared collection, not per-user.
type mongoSettingsRepository struct {
	settings *mongo.Collection
	variants *mongo.Collection
}

// NewMongoSettingsRepository creates a new coach settings repository.
func NewMongoSettingsRepository(db *mongo.Database) repository.SettingsRepository {
	return &mongoSettingsRepository{
		settings: db.Collection(settingsCollectionName),
		variants: db.Collection(variantCollectionName),
	}
}

// GetSettings retrieves the user's coach settings row.
func (r *mongoSettingsRepository) GetSettings(ctx context.Context, userID primitive.ObjectID) (*domain.CoachSettings, error) {
	var settings domain.CoachSettings
	filter := bson.M{"userId": userID}
	err := r.settings.FindOne(ctx, filter).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// UpsertSettings replaces the user's coach settings row.
func (r *mongoSettingsRepository) UpsertSettings(ctx context.Context, settings *domain.CoachSettings) error {
	if settings.UserID == primitive.NilObjectID {
		return errors.New("settings require userId")
	}
	settings.UpdatedAt = time.Now().UTC()

	filter := bson.M{"userId": settings.UserID}
	updateOptions := options.Replace().SetUpsert(true)

	_, err := r.settings.ReplaceOne(ctx, filter, settings, updateOptions)
	return err
}

// GetVariantCatalog returns every substitution variant, ordered by baseKey
// then priority so the resolver can scan a stable list.
func (r *mongoSettingsRepository) GetVariantCatalog(ctx context.Context) ([]domain.VariantExercise, error) {
	var variants []domain.VariantExercise
	findOptions := options.Find().SetSort(bson.D{
		{Key: "baseKey", Value: 1},
		{Key: "priority", Value: 1},
	})

	cursor, err := r.variants.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// EnsureSettingsIndexes creates necessary indexes on both collections.
// Call during startup.
func EnsureSettingsIndexes(ctx context.Context, settingsCollection, variantCollection *mongo.Collection) {
	_, _ = settingsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	_, _ = variantCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "baseKey", Value: 1}, {Key: "priority", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "variantKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
