package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/goldshop/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotConnected is returned when no database handle is available.
var ErrNotConnected = errors.New("database not available: check DATABASE_URL and DATABASE_NAME")

type MongoRepository struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewMongoRepository(cfg *config.MongoDBConfig) (*MongoRepository, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	return &MongoRepository{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

func (m *MongoRepository) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// DatabaseName returns the logical database name.
func (m *MongoRepository) DatabaseName() string {
	return m.database.Name()
}

// ListCollectionNames returns the collections currently present.
func (m *MongoRepository) ListCollectionNames(ctx context.Context) ([]string, error) {
	return m.database.ListCollectionNames(ctx, bson.D{})
}

// CreateDocument inserts record into collection and returns the
// store-assigned identifier as a string.
func (m *MongoRepository) CreateDocument(ctx context.Context, collection string, record interface{}) (string, error) {
	res, err := m.database.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return IDString(res.InsertedID), nil
}

// GetDocuments returns every document in collection. Each document keeps its
// _id field.
func (m *MongoRepository) GetDocuments(ctx context.Context, collection string) ([]bson.M, error) {
	cursor, err := m.database.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	return docs, nil
}

// IDString renders a document key in its client-facing form.
func IDString(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
