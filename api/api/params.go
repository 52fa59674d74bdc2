/* params.go
 * Contains the data param operations. Each season has one document per mode under data-params, and each param is a
 * field of that document keyed by the param name
 * Authors: scouting-admin contributors
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scouting-admin/api/shared"
	"scouting-admin/api/store"
	"scouting-admin/config"

	"golang.org/x/sync/errgroup"
)

// GetParams gets the params configured for one mode of a season.
// Preconditions: Receives context, mode and season year
// Postconditions: Returns the params sorted by name with Name set from the storage key. A missing mode document
// gives an empty slice. Returns an error if the read fails
func (a *API) GetParams(ctx context.Context, mode shared.DataParamsMode, year string) ([]shared.ParamItem, error) {
	path, err := paramsPath(year, mode)
	if err != nil {
		return nil, err
	}

	doc, err := a.Store.Get(ctx, path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []shared.ParamItem{}, nil
		}
		return nil, err
	}
	return paramsFromDocument(doc), nil
}

// GetAllParams gets the params of every mode. The four reads are independent, there is no snapshot across modes
// Preconditions: Receives context and season year
// Postconditions: Returns exactly one ModeParams per mode in shared.AllModes order, or the first error
func (a *API) GetAllParams(ctx context.Context, year string) ([]ModeParams, error) {
	a.Logger.Debug("loading params", "year", year)

	modes := shared.AllModes()
	results := make([]ModeParams, len(modes))
	g, gctx := errgroup.WithContext(ctx)
	for i, mode := range modes {
		i, mode := i, mode
		g.Go(func() error {
			params, err := a.GetParams(gctx, mode, year)
			if err != nil {
				return fmt.Errorf("failed to load %s params: %w", mode, err)
			}
			results[i] = ModeParams{Mode: mode, Params: params}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SetParam merges one param into the mode document. Other params in the document are left untouched
// Preconditions: Receives context, the param (Name is the storage key), mode and season year
// Postconditions: Returns nil once stored, store.ErrNotFound if the mode document does not exist, or an error
func (a *API) SetParam(ctx context.Context, param shared.ParamItem, mode shared.DataParamsMode, year string) error {
	if err := validateParam(param); err != nil {
		return err
	}
	path, err := paramsPath(year, mode)
	if err != nil {
		return err
	}

	err = a.Store.Update(ctx, path, map[string]interface{}{param.Name: paramToDocument(param)})
	if err != nil {
		return fmt.Errorf("failed to set param %q for %s %s: %w", param.Name, year, mode, err)
	}
	return nil
}

// ImportParams sets every template param in mode order, stopping at the first error
// Preconditions: Receives context, season year and templates
// Postconditions: Returns the number of params written and nil, or the count so far and the error
func (a *API) ImportParams(ctx context.Context, year string, templates config.ParamTemplates) (int, error) {
	imported := 0
	for _, mode := range shared.AllModes() {
		for _, param := range templates[mode] {
			if err := a.SetParam(ctx, param, mode, year); err != nil {
				return imported, err
			}
			imported++
		}
	}
	a.Logger.Info("imported params", "year", year, "count", imported)
	return imported, nil
}

func validateParam(p shared.ParamItem) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidParam)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q for %q", ErrInvalidParam, p.Type, p.Name)
	}
	if p.Type == shared.ParamChoice && len(p.Options) == 0 {
		return fmt.Errorf("%w: choice param %q needs at least one option", ErrInvalidParam, p.Name)
	}
	return nil
}
