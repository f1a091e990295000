package mongo

import (
	"context"
	"errors"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTable implements repository.Table over one collection.
type mongoTable[T domain.Record[T]] struct {
	store *Store
	name  string
	sort  bson.D
}

func (r *mongoTable[T]) collection() (*mongo.Collection, error) {
	db, err := r.store.database()
	if err != nil {
		return nil, err
	}
	return db.Collection(r.name), nil
}

// List retrieves every document of the collection.
func (r *mongoTable[T]) List(ctx context.Context) ([]T, error) {
	collection, err := r.collection()
	if err != nil {
		return nil, err
	}

	findOptions := options.Find()
	if len(r.sort) > 0 {
		findOptions.SetSort(r.sort)
	}
	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Get retrieves a document by its ID. A missing document is reported as not found, not as an error.
func (r *mongoTable[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var item T
	collection, err := r.collection()
	if err != nil {
		return item, false, err
	}

	err = collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return item, false, nil
		}
		return item, false, err
	}
	return item, true, nil
}

// Put upserts the document by ID and returns it as stored.
func (r *mongoTable[T]) Put(ctx context.Context, item T) (T, error) {
	var zero T
	collection, err := r.collection()
	if err != nil {
		return zero, err
	}

	item = repository.EnsureID(item)
	filter := bson.M{"_id": item.GetID()}
	if _, err = collection.ReplaceOne(ctx, filter, item, options.Replace().SetUpsert(true)); err != nil {
		return zero, err
	}

	// Fetch again so the caller sees exactly what was stored.
	var stored T
	if err = collection.FindOne(ctx, filter).Decode(&stored); err != nil {
		return zero, err
	}
	return stored, nil
}

// Remove deletes the document. Deleting a missing ID is not an error.
func (r *mongoTable[T]) Remove(ctx context.Context, id string) error {
	collection, err := r.collection()
	if err != nil {
		return err
	}
	_, err = collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
