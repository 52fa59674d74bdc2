/* store.go
 * Contains the mongo backed Store struct and NewStore function. Every document lives in one mongo collection,
 * keyed by its full path, so the firestore style collection/doc hierarchy maps onto a single index.
 * The methods for reading and writing documents live in documents.go
 * Authors: scouting-admin contributors
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DocumentsCollection is the mongo collection holding every document
const DocumentsCollection = "documents"

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Documents *mongo.Collection
	}
}

// documentRecord is the way a path-addressed document is stored in mongo
type documentRecord struct {
	Path   string `bson:"_id"`
	Parent string `bson:"parent"`
	ID     string `bson:"id"`
	Data   bson.M `bson:"data"`
}

// NewStore connects to mongo and returns a Store using dbName
// Preconditions: Receives context, database name and mongo connection uri
// Postconditions: Returns pointer to the Store once the server answers a ping, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string) (*Store, error) {
	if dbName == "" || mongoURI == "" {
		return nil, fmt.Errorf("dbName and mongoURI are required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return newStoreFromDatabase(client, client.Database(dbName)), nil
}

func newStoreFromDatabase(client *mongo.Client, db *mongo.Database) *Store {
	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Documents = db.Collection(DocumentsCollection)
	return s
}

// EnsureIndexes creates the index List relies on
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collections.Documents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "parent", Value: 1}, {Key: "id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create parent index: %w", err)
	}
	return nil
}

// Close disconnects the mongo client
func (s *Store) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
