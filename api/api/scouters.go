/* scouters.go
 * Contains the readers for the scouter roster and qual assignments of a season, and a generic field reader used
 * by the admin surfaces
 * Authors: scouting-admin contributors
 */

package api

import (
	"context"
	"fmt"
	"strings"

	"scouting-admin/api/shared"
)

// ListScouters gets the scouter roster of a season
func (a *API) ListScouters(ctx context.Context, year string) ([]shared.Scouter, error) {
	path, err := seasonCollectionPath(year, ScoutersCollection)
	if err != nil {
		return nil, err
	}

	docs, err := a.Store.List(ctx, path)
	if err != nil {
		return nil, err
	}

	scouters := make([]shared.Scouter, 0, len(docs))
	for _, doc := range docs {
		scouters = append(scouters, scouterFromDocument(doc))
	}
	return scouters, nil
}

// AddScouter adds a scouter under a generated key
// Preconditions: Receives context, season year and scouter with at least a first name
// Postconditions: Returns the scouter with Key set, or an error if it occurs
func (a *API) AddScouter(ctx context.Context, year string, scouter shared.Scouter) (shared.Scouter, error) {
	if strings.TrimSpace(scouter.FirstName) == "" {
		return shared.Scouter{}, fmt.Errorf("%w: scouter first name is required", ErrInvalidUser)
	}
	path, err := seasonCollectionPath(year, ScoutersCollection)
	if err != nil {
		return shared.Scouter{}, err
	}

	key, err := a.Store.Add(ctx, path, map[string]interface{}{
		"firstname": scouter.FirstName,
		"lastname":  scouter.LastName,
	})
	if err != nil {
		return shared.Scouter{}, fmt.Errorf("failed to add scouter: %w", err)
	}
	scouter.Key = key
	return scouter, nil
}

// ListQuals gets the scouter assignment of every qual. Each qual has shared.ScoutersPerQual slots, empty slots
// read as "undefined"
func (a *API) ListQuals(ctx context.Context, year string) ([]shared.Qual, error) {
	path, err := seasonCollectionPath(year, QualsCollection)
	if err != nil {
		return nil, err
	}

	docs, err := a.Store.List(ctx, path)
	if err != nil {
		return nil, err
	}

	quals := make([]shared.Qual, 0, len(docs))
	for _, doc := range docs {
		quals = append(quals, qualFromDocument(doc))
	}
	return quals, nil
}

// FieldValues reads one field from every document of a season collection
// Preconditions: Receives context, season year, collection name and field name
// Postconditions: Returns id/value pairs, the value is empty when the field is missing
func (a *API) FieldValues(ctx context.Context, year string, collection string, field string) ([]shared.FieldValue, error) {
	path, err := seasonCollectionPath(year, collection)
	if err != nil {
		return nil, err
	}

	docs, err := a.Store.List(ctx, path)
	if err != nil {
		return nil, err
	}

	values := make([]shared.FieldValue, 0, len(docs))
	for _, doc := range docs {
		values = append(values, shared.FieldValue{ID: doc.ID, Value: stringValue(doc.Get(field))})
	}
	return values, nil
}
