package mongo

import (
	"context"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingCollectionName = repository.TrainingsCollection

func newTrainingTable(store *Store) repository.Table[domain.Training] {
	return &mongoTable[domain.Training]{
		store: store,
		name:  trainingCollectionName,
		sort:  bson.D{{Key: "name", Value: 1}},
	}
}

// EnsureTrainingIndexes creates necessary indexes for the trainings collection.
func EnsureTrainingIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
		{
			// Finding plans that embed a given exercise copy
			Keys:    bson.D{{Key: "exercises.exercise._id", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
