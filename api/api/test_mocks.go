/* test_mocks.go
 * Contains MockStore, a store.Interface for tests that keeps documents in a MemoryStore and can inject errors per
 * operation or per path
 * Authors: scouting-admin contributors
 */

package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"scouting-admin/api/store"
	"scouting-admin/config"
)

// MockStore implements store.Interface for testing
type MockStore struct {
	*store.MemoryStore

	// Error injection for testing error paths
	GetError    error
	ListError   error
	SetError    error
	UpdateError error
	DeleteError error
	AddError    error

	// FailPaths makes any operation on one of these paths fail with the mapped error
	FailPaths map[string]error

	mu    sync.Mutex
	Calls []string
}

// NewMockStore creates a new, empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		MemoryStore: store.NewMemoryStore(),
		FailPaths:   make(map[string]error),
	}
}

// NewTestAPI creates an API over a fresh MockStore with a complete admin identity and a discarded log
func NewTestAPI() (*API, *MockStore) {
	mock := NewMockStore()
	return &API{
		Store:  mock,
		Admin:  TestAdminDefaults(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, mock
}

// TestAdminDefaults returns the admin identity used by NewTestAPI
func TestAdminDefaults() config.AdminDefaults {
	return config.AdminDefaults{
		Username:   "admin",
		Password:   "admin-password",
		TeamNumber: "1234",
		TeamName:   "Default Robotics",
	}
}

func (m *MockStore) record(op string, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, fmt.Sprintf("%s %s", op, path))
	if err, ok := m.FailPaths[path]; ok {
		return err
	}
	return nil
}

// CallLog returns a copy of the operations performed so far, e.g. "set seasons/2024"
func (m *MockStore) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

func (m *MockStore) Get(ctx context.Context, docPath string) (store.Document, error) {
	if err := m.record("get", docPath); err != nil {
		return store.Document{}, err
	}
	if m.GetError != nil {
		return store.Document{}, m.GetError
	}
	return m.MemoryStore.Get(ctx, docPath)
}

func (m *MockStore) List(ctx context.Context, collectionPath string) ([]store.Document, error) {
	if err := m.record("list", collectionPath); err != nil {
		return nil, err
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.MemoryStore.List(ctx, collectionPath)
}

func (m *MockStore) Set(ctx context.Context, docPath string, data map[string]interface{}) error {
	if err := m.record("set", docPath); err != nil {
		return err
	}
	if m.SetError != nil {
		return m.SetError
	}
	return m.MemoryStore.Set(ctx, docPath, data)
}

func (m *MockStore) Update(ctx context.Context, docPath string, fields map[string]interface{}) error {
	if err := m.record("update", docPath); err != nil {
		return err
	}
	if m.UpdateError != nil {
		return m.UpdateError
	}
	return m.MemoryStore.Update(ctx, docPath, fields)
}

func (m *MockStore) Delete(ctx context.Context, docPath string) error {
	if err := m.record("delete", docPath); err != nil {
		return err
	}
	if m.DeleteError != nil {
		return m.DeleteError
	}
	return m.MemoryStore.Delete(ctx, docPath)
}

func (m *MockStore) Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error) {
	if err := m.record("add", collectionPath); err != nil {
		return "", err
	}
	if m.AddError != nil {
		return "", m.AddError
	}
	return m.MemoryStore.Add(ctx, collectionPath, data)
}

var _ store.Interface = (*MockStore)(nil)
