package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"wordquiz/internal/models"
)

// progressDocument is the single document kept per profile
type progressDocument struct {
	ProfileID string              `bson:"_id"`
	Progress  models.UserProgress `bson:"progress"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

// MongoProgressRepository stores the record as one document keyed by profile id
type MongoProgressRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	profileID  string
}

// NewMongoProgressRepository connects to MongoDB and verifies the connection
func NewMongoProgressRepository(ctx context.Context, uri, database, collection, profileID string) (*MongoProgressRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, unavailable("connect to MongoDB", err)
	}

	return &MongoProgressRepository{
		client:     client,
		collection: client.Database(database).Collection(collection),
		profileID:  profileID,
	}, nil
}

// Load retrieves the profile document
func (r *MongoProgressRepository) Load(ctx context.Context) (*models.UserProgress, error) {
	filter := bson.D{{Key: "_id", Value: r.profileID}}

	result := r.collection.FindOne(ctx, filter)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, unavailable("load progress from MongoDB", err)
	}

	var doc progressDocument
	if err := result.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	return checkDecoded(&doc.Progress)
}

// Save replaces the profile document, inserting it on first save
func (r *MongoProgressRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	doc := progressDocument{
		ProfileID: r.profileID,
		Progress:  *progress,
		UpdatedAt: time.Now().UTC(),
	}

	filter := bson.D{{Key: "_id", Value: r.profileID}}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return unavailable("save progress to MongoDB", err)
	}
	return nil
}

// Close disconnects the client
func (r *MongoProgressRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
