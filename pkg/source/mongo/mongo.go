// Package mongo implements a record source reading from a MongoDB
// collection that mirrors the timeline database. Each document holds one
// record using the bson field names of [timeline.Record].
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/talegraph/talegraph/pkg/errors"
	"github.com/talegraph/talegraph/pkg/timeline"
)

const connectTimeout = 10 * time.Second

// Source reads timeline records from a MongoDB collection.
type Source struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect establishes a MongoDB connection and binds the source to the
// given database and collection. Close must be called when done.
func Connect(ctx context.Context, uri, database, collection string) (*Source, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFetch, err, "connect to %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "ping %s", uri)
	}

	return &Source{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// FetchAll returns every record of the collection in stable _id order.
func (s *Source) FetchAll(ctx context.Context) ([]timeline.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFetch, err, "query collection %s", s.collection.Name())
	}
	defer cursor.Close(ctx)

	var records []timeline.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFetch, err, "decode records")
	}
	return records, nil
}

// Name returns "mongo".
func (s *Source) Name() string { return "mongo" }

// Close disconnects the underlying MongoDB client.
func (s *Source) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
