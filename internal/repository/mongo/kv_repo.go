// internal/repository/mongo/kv_repo.go
package mongo

import (
	"alcyxob/gym-buddy/internal/repository"
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const kvCollectionName = "kv"

// kvDocument is one stored record; the key is the document _id.
type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// KVStore implements repository.KVStore on a MongoDB collection.
type KVStore struct {
	collection *mongo.Collection
}

var _ repository.KVStore = (*KVStore)(nil)

// NewKVStore creates a new KV store backed by the database's kv collection.
func NewKVStore(db *mongo.Database) *KVStore {
	return &KVStore{
		collection: db.Collection(kvCollectionName),
	}
}

// Get retrieves the value stored under key.
func (r *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var doc kvDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, err
	}
	return doc.Value, true, nil
}

// Set upserts the value stored under key.
func (r *KVStore) Set(ctx context.Context, key, value string) error {
	doc := kvDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

// EnsureKVIndexes creates necessary indexes. Call during startup.
// Lookups go through _id, so only the housekeeping index on updatedAt is added.
func EnsureKVIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "updatedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
