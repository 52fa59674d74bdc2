/* documents.go
 * Contains the Store methods for reading and writing path-addressed documents in the documents collection
 * Authors: scouting-admin contributors
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Get does DB lookup for a single document
// Preconditions: Receives context and a document path
// Postconditions: Returns the document, ErrNotFound if it does not exist, or an error if the lookup fails
func (s *Store) Get(ctx context.Context, docPath string) (Document, error) {
	if _, _, err := SplitDocPath(docPath); err != nil {
		return Document{}, err
	}

	var rec documentRecord
	err := s.Collections.Documents.FindOne(ctx, bson.M{"_id": docPath}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Document{}, fmt.Errorf("%s: %w", docPath, ErrNotFound)
		}
		return Document{}, fmt.Errorf("error fetching %s from db: %w", docPath, err)
	}

	return rec.toDocument(), nil
}

// List gets every document stored directly inside a collection
// Preconditions: Receives context and a collection path
// Postconditions: Returns the documents ordered by id (empty if there are none), or an error if it occurs
func (s *Store) List(ctx context.Context, collectionPath string) ([]Document, error) {
	if err := CheckCollectionPath(collectionPath); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := s.Collections.Documents.Find(ctx, bson.M{"parent": collectionPath}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s from db: %w", collectionPath, err)
	}

	var records []documentRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of documents: %w", err)
	}

	docs := make([]Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, rec.toDocument())
	}
	return docs, nil
}

// Set creates the document or replaces it entirely
// Preconditions: Receives context, document path and the full document contents
// Postconditions: The stored document equals data, or an error is returned
func (s *Store) Set(ctx context.Context, docPath string, data map[string]interface{}) error {
	parent, id, err := SplitDocPath(docPath)
	if err != nil {
		return err
	}
	for field := range data {
		if err := checkFieldName(field); err != nil {
			return err
		}
	}

	rec := documentRecord{
		Path:   docPath,
		Parent: parent,
		ID:     id,
		Data:   bson.M{},
	}
	for k, v := range data {
		rec.Data[k] = v
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.Collections.Documents.ReplaceOne(ctx, bson.M{"_id": docPath}, rec, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", docPath, err)
	}
	return nil
}

// Update merges fields into an existing document, leaving every other field in place
// Preconditions: Receives context, document path and the fields to set
// Postconditions: Returns nil once merged, ErrNotFound if the document does not exist, or an error if it occurs
func (s *Store) Update(ctx context.Context, docPath string, fields map[string]interface{}) error {
	if _, _, err := SplitDocPath(docPath); err != nil {
		return err
	}
	if len(fields) == 0 {
		// $set with an empty document is rejected by the server, only the existence check is left
		_, err := s.Get(ctx, docPath)
		return err
	}

	set := bson.M{}
	for field, value := range fields {
		if err := checkFieldName(field); err != nil {
			return err
		}
		set["data."+field] = value
	}

	res, err := s.Collections.Documents.UpdateOne(ctx, bson.M{"_id": docPath}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", docPath, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", docPath, ErrNotFound)
	}
	return nil
}

// Delete removes a document, a missing document is not an error
func (s *Store) Delete(ctx context.Context, docPath string) error {
	if _, _, err := SplitDocPath(docPath); err != nil {
		return err
	}
	if _, err := s.Collections.Documents.DeleteOne(ctx, bson.M{"_id": docPath}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", docPath, err)
	}
	return nil
}

// Add inserts a document with a generated ObjectID hex id into a collection
// Preconditions: Receives context, collection path and the document contents
// Postconditions: Returns the generated id, or an error if it occurs
func (s *Store) Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error) {
	if err := CheckCollectionPath(collectionPath); err != nil {
		return "", err
	}
	for field := range data {
		if err := checkFieldName(field); err != nil {
			return "", err
		}
	}

	id := primitive.NewObjectID().Hex()
	rec := documentRecord{
		Path:   collectionPath + "/" + id,
		Parent: collectionPath,
		ID:     id,
		Data:   bson.M{},
	}
	for k, v := range data {
		rec.Data[k] = v
	}

	if _, err := s.Collections.Documents.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collectionPath, err)
	}
	return id, nil
}

// checkFieldName rejects names mongo would read as a nested path or an operator
func checkFieldName(field string) error {
	if field == "" || strings.Contains(field, ".") || strings.HasPrefix(field, "$") {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

func (r documentRecord) toDocument() Document {
	data := map[string]interface{}{}
	if r.Data != nil {
		data = normalizeMap(map[string]interface{}(r.Data))
	}
	return Document{ID: r.ID, Data: data}
}
