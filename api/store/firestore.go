/* firestore.go
 * Contains FirestoreStore, the Interface implementation backed by Google Cloud Firestore. Firestore is natively
 * path addressed so paths are passed through unchanged
 * Authors: scouting-admin contributors
 */

package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirestoreStore struct {
	Client *firestore.Client
}

// NewFirestoreStore creates a firestore client for projectID. When credentialsFile is empty the default
// application credentials are used (or FIRESTORE_EMULATOR_HOST if it is set)
// Preconditions: Receives context, project id and an optional service account file
// Postconditions: Returns pointer to FirestoreStore, or error if the client could not be created
func NewFirestoreStore(ctx context.Context, projectID string, credentialsFile string) (*FirestoreStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreStore{Client: client}, nil
}

func (f *FirestoreStore) doc(docPath string) (*firestore.DocumentRef, error) {
	if _, _, err := SplitDocPath(docPath); err != nil {
		return nil, err
	}
	ref := f.Client.Doc(docPath)
	if ref == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, docPath)
	}
	return ref, nil
}

func (f *FirestoreStore) collection(collectionPath string) (*firestore.CollectionRef, error) {
	if err := CheckCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	ref := f.Client.Collection(collectionPath)
	if ref == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, collectionPath)
	}
	return ref, nil
}

func (f *FirestoreStore) Get(ctx context.Context, docPath string) (Document, error) {
	ref, err := f.doc(docPath)
	if err != nil {
		return Document{}, err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, fmt.Errorf("%s: %w", docPath, ErrNotFound)
		}
		return Document{}, fmt.Errorf("error fetching %s from firestore: %w", docPath, err)
	}
	return Document{ID: snap.Ref.ID, Data: normalizeMap(snap.Data())}, nil
}

func (f *FirestoreStore) List(ctx context.Context, collectionPath string) ([]Document, error) {
	ref, err := f.collection(collectionPath)
	if err != nil {
		return nil, err
	}

	snaps, err := ref.OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching %s from firestore: %w", collectionPath, err)
	}

	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{ID: snap.Ref.ID, Data: normalizeMap(snap.Data())})
	}
	return docs, nil
}

func (f *FirestoreStore) Set(ctx context.Context, docPath string, data map[string]interface{}) error {
	ref, err := f.doc(docPath)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	if _, err := ref.Set(ctx, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", docPath, err)
	}
	return nil
}

// Update uses FieldPath so a field name containing a dot is stored as a single field
func (f *FirestoreStore) Update(ctx context.Context, docPath string, fields map[string]interface{}) error {
	ref, err := f.doc(docPath)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		_, err := f.Get(ctx, docPath)
		return err
	}

	updates := make([]firestore.Update, 0, len(fields))
	for field, value := range fields {
		if field == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidField)
		}
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{field}, Value: value})
	}

	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s: %w", docPath, ErrNotFound)
		}
		return fmt.Errorf("failed to update %s: %w", docPath, err)
	}
	return nil
}

func (f *FirestoreStore) Delete(ctx context.Context, docPath string) error {
	ref, err := f.doc(docPath)
	if err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", docPath, err)
	}
	return nil
}

func (f *FirestoreStore) Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error) {
	ref, err := f.collection(collectionPath)
	if err != nil {
		return "", err
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	doc, _, err := ref.Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collectionPath, err)
	}
	return doc.ID, nil
}

func (f *FirestoreStore) Close(ctx context.Context) error {
	return f.Client.Close()
}
