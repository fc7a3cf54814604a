package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClientSource hands out a shared Mongo client
type ClientSource interface {
	Client(ctx context.Context) (*mongo.Client, error)
}

// clientOptions are the options every movie client is built with.
// Embedded documents decode as maps so records keep their field names in JSON.
func clientOptions() *options.ClientOptions {
	return options.Client().SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
}

// MongoProvider owns the process-wide Mongo client.
// The client is created on first use and reused for the life of the process.
type MongoProvider struct {
	uri string

	once   sync.Once
	client *mongo.Client
	err    error
}

// NewMongoProvider creates a provider for the given connection string.
// No connection is attempted until the first call to Client.
func NewMongoProvider(uri string) *MongoProvider {
	return &MongoProvider{uri: uri}
}

// Client returns the shared client, connecting on first call.
// A failed first connect is remembered and returned to every caller.
func (p *MongoProvider) Client(ctx context.Context) (*mongo.Client, error) {
	p.once.Do(func() {
		client, err := mongo.Connect(ctx, clientOptions().ApplyURI(p.uri))
		if err != nil {
			p.err = fmt.Errorf("failed to connect to mongo: %w", err)
			return
		}
		p.client = client
	})
	return p.client, p.err
}

// Close disconnects the client if one was created
func (p *MongoProvider) Close(ctx context.Context) error {
	// Blocks a concurrent first connect and prevents a later one.
	p.once.Do(func() {})
	if p.client == nil {
		return nil
	}
	return p.client.Disconnect(ctx)
}

// MongoStore reads movies from the sample_mflix.movies collection
type MongoStore struct {
	source ClientSource
}

// NewMongoStore creates a store on top of a shared client source
func NewMongoStore(source ClientSource) *MongoStore {
	return &MongoStore{source: source}
}

// FindByID fetches one movie by _id
func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (Record, error) {
	client, err := s.source.Client(ctx)
	if err != nil {
		return nil, err
	}

	var rec Record
	err = client.Database(DatabaseName).
		Collection(CollectionName).
		FindOne(ctx, bson.M{"_id": id}).
		Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find movie %s: %w", id.Hex(), err)
	}

	return rec, nil
}

// Ping checks connectivity to the primary
func (s *MongoStore) Ping(ctx context.Context) error {
	client, err := s.source.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, nil)
}

// Close disconnects the shared client when the store owns the provider
func (s *MongoStore) Close(ctx context.Context) error {
	if p, ok := s.source.(*MongoProvider); ok {
		return p.Close(ctx)
	}
	return nil
}
