// internal/repository/mongo/workout_repo.go
package mongo

import (
	"context"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = repository.WorkoutsCollection

func newWorkoutTable(store *Store) repository.Table[domain.Workout] {
	return &mongoTable[domain.Workout]{
		store: store,
		name:  workoutCollectionName,
		sort:  bson.D{{Key: "date", Value: -1}}, // Newest first
	}
}

// EnsureWorkoutIndexes creates necessary indexes for the workouts collection.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			// Sessions based on a given training
			Keys:    bson.D{{Key: "trainingId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
