package repository

import (
	"context"
	"errors"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCargoRepository implements CargoRepository on a MongoDB collection.
// The whole aggregate is stored as one document, handling events included,
// so a load-mutate-store cycle under the registration service's per-cargo
// lock keeps the history append-only.
type MongoCargoRepository struct {
	collection *mongo.Collection
}

// NewMongoCargoRepository creates a new cargo repository
func NewMongoCargoRepository(db *mongo.Database) repository.CargoRepository {
	collection := db.Collection("cargos")

	// Unique index on trackingId
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"trackingId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoCargoRepository{
		collection: collection,
	}
}

// Find loads a cargo aggregate by tracking id
func (r *MongoCargoRepository) Find(ctx context.Context, trackingID entity.TrackingID) (*entity.Cargo, error) {
	var cargo entity.Cargo
	err := r.collection.FindOne(ctx, bson.M{"trackingId": trackingID}).Decode(&cargo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrCargoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cargo, nil
}

// Store writes the cargo aggregate back, inserting it on first save
func (r *MongoCargoRepository) Store(ctx context.Context, cargo *entity.Cargo) error {
	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"trackingId": cargo.TrackingID}

	_, err := r.collection.ReplaceOne(ctx, filter, cargo, opts)
	return err
}
