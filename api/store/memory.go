/* memory.go
 * Contains MemoryStore, an in-process Interface implementation used for local runs and tests. It follows the
 * same semantics as the mongo and firestore backends: full replace on Set, merge on Update, no-op Delete
 * Authors: scouting-admin contributors
 */

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]map[string]interface{} // parent -> id -> data
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]map[string]interface{})}
}

func (m *MemoryStore) Get(ctx context.Context, docPath string) (Document, error) {
	parent, id, err := SplitDocPath(docPath)
	if err != nil {
		return Document{}, err
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[parent][id]
	if !ok {
		return Document{}, fmt.Errorf("%s: %w", docPath, ErrNotFound)
	}
	return Document{ID: id, Data: normalizeMap(data)}, nil
}

func (m *MemoryStore) List(ctx context.Context, collectionPath string) ([]Document, error) {
	if err := CheckCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	coll := m.docs[collectionPath]
	docs := make([]Document, 0, len(coll))
	for id, data := range coll {
		docs = append(docs, Document{ID: id, Data: normalizeMap(data)})
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

func (m *MemoryStore) Set(ctx context.Context, docPath string, data map[string]interface{}) error {
	parent, id, err := SplitDocPath(docPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(parent, id, normalizeMap(data))
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, docPath string, fields map[string]interface{}) error {
	parent, id, err := SplitDocPath(docPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[parent][id]
	if !ok {
		return fmt.Errorf("%s: %w", docPath, ErrNotFound)
	}
	for k, v := range fields {
		data[k] = normalizeValue(v)
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, docPath string) error {
	parent, id, err := SplitDocPath(docPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if coll, ok := m.docs[parent]; ok {
		delete(coll, id)
	}
	return nil
}

func (m *MemoryStore) Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error) {
	if err := CheckCollectionPath(collectionPath); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := primitive.NewObjectID().Hex()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(collectionPath, id, normalizeMap(data))
	return id, nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// put stores data, the caller holds the write lock
func (m *MemoryStore) put(parent, id string, data map[string]interface{}) {
	coll, ok := m.docs[parent]
	if !ok {
		coll = make(map[string]map[string]interface{})
		m.docs[parent] = coll
	}
	coll[id] = data
}
