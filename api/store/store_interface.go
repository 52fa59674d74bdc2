/* store_interface.go
 * Contains the path-addressed document store Interface used by the api package, the sentinel errors every
 * backend returns, and compile time checks that each backend implements it
 * Authors: scouting-admin contributors
 */

package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a document read or update targets a document that does not exist
	ErrNotFound = errors.New("document not found")
	// ErrInvalidPath is returned for malformed paths, or a collection path where a document path is expected
	ErrInvalidPath = errors.New("invalid document path")
	// ErrInvalidField is returned when a field name cannot be stored by the backend
	ErrInvalidField = errors.New("invalid field name")
)

// Document is a single stored document. ID is the last segment of its path.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Get returns the named field of the document, or nil
func (d Document) Get(field string) interface{} {
	if d.Data == nil {
		return nil
	}
	return d.Data[field]
}

// Interface defines a schemaless document database addressed by paths of the form
// collection/doc/collection/doc. This allows the api package to run against mongo, firestore or memory.
type Interface interface {
	// Get reads one document, ErrNotFound if it does not exist
	Get(ctx context.Context, docPath string) (Document, error)
	// List reads every document directly inside a collection, ordered by ID
	List(ctx context.Context, collectionPath string) ([]Document, error)
	// Set creates or fully replaces a document
	Set(ctx context.Context, docPath string, data map[string]interface{}) error
	// Update merges fields into an existing document, ErrNotFound if it does not exist
	Update(ctx context.Context, docPath string, fields map[string]interface{}) error
	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, docPath string) error
	// Add creates a document with a generated id inside a collection and returns the id
	Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error)
	// Close releases the backend connection
	Close(ctx context.Context) error
}

// Ensure every backend implements Interface
var (
	_ Interface = (*Store)(nil)
	_ Interface = (*FirestoreStore)(nil)
	_ Interface = (*MemoryStore)(nil)
)
