/* test_helpers.go
 * Contains helpers for running the store against a real mongo deployment in integration tests
 * Authors: scouting-admin contributors
 */

package store

import (
	"context"
)

// CreateTestStore creates a Store connected to a throwaway test database.
// Returns the store and a cleanup function that drops the database and disconnects.
func CreateTestStore(ctx context.Context, mongoURI string) (*Store, func(), error) {
	store, err := NewStore(ctx, "test_scouting", mongoURI)
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			_ = store.Database.Drop(context.Background())
			_ = store.Client.Disconnect(context.Background())
		}
	}

	return store, cleanup, nil
}
