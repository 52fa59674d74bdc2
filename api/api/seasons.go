/* seasons.go
 * Contains the season operations: listing seasons and creating a season with its default sub documents
 * Authors: scouting-admin contributors
 */

package api

import (
	"context"
	"fmt"
	"strings"

	"scouting-admin/api/shared"
)

// ListSeasons gets every season
// Preconditions: Receives context
// Postconditions: Returns the seasons in year order, or an error if the store read fails
func (a *API) ListSeasons(ctx context.Context) ([]shared.Season, error) {
	docs, err := a.Store.List(ctx, SeasonsCollection)
	if err != nil {
		return nil, err
	}

	seasons := make([]shared.Season, 0, len(docs))
	for _, doc := range docs {
		seasons = append(seasons, seasonFromDocument(doc))
	}
	return seasons, nil
}

// CreateSeason writes the season document then bootstraps, in order, an empty params document per mode, the
// default admin user and the default admin's scouting team.
// The steps are not atomic. If one fails the earlier writes stay in place and a *SeasonBootstrapError naming the
// failed step is returned.
// Preconditions: Receives context, the season year (used as the document id) and display name. The default admin
// identity must be configured
// Postconditions: Returns nil once every step is written, or an error if it occurs
func (a *API) CreateSeason(ctx context.Context, year string, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSeason)
	}
	path, err := seasonPath(year)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSeason, err)
	}
	if missing := a.Admin.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingAdminDefaults, strings.Join(missing, ", "))
	}
	admin := shared.User{
		Username:   a.Admin.Username,
		Password:   a.Admin.Password,
		TeamNumber: a.Admin.TeamNumber,
		TeamName:   a.Admin.TeamName,
		Tags:       []shared.UserTag{shared.TagTeam, shared.TagAdmin},
	}
	adminPath, err := seasonDocPath(year, UsersCollection, admin.Username)
	if err != nil {
		return fmt.Errorf("%w: admin username: %w", ErrMissingAdminDefaults, err)
	}
	teamPath, err := seasonDocPath(year, ScoutingTeamsCollection, admin.TeamNumber)
	if err != nil {
		return fmt.Errorf("%w: admin team number: %w", ErrMissingAdminDefaults, err)
	}

	a.Logger.Info("creating season", "year", year, "name", name)
	if err := a.Store.Set(ctx, path, map[string]interface{}{"name": name}); err != nil {
		// Nothing has been written yet so this is a plain failure
		return fmt.Errorf("failed to create season %s: %w", year, err)
	}

	for _, mode := range shared.AllModes() {
		modePath, err := paramsPath(year, mode)
		if err != nil {
			return &SeasonBootstrapError{Year: year, Step: DataParamsCollection + "/" + mode.String(), Err: err}
		}
		if err := a.Store.Set(ctx, modePath, map[string]interface{}{}); err != nil {
			return a.bootstrapFailed(year, DataParamsCollection+"/"+mode.String(), err)
		}
	}

	if err := a.Store.Set(ctx, adminPath, userToDocument(admin)); err != nil {
		return a.bootstrapFailed(year, "admin-user", err)
	}

	if err := a.Store.Set(ctx, teamPath, map[string]interface{}{"name": admin.TeamName}); err != nil {
		return a.bootstrapFailed(year, "scouting-team", err)
	}

	return nil
}

func (a *API) bootstrapFailed(year string, step string, err error) error {
	a.Logger.Error("season bootstrap failed, season left partially created", "year", year, "step", step, "err", err)
	return &SeasonBootstrapError{Year: year, Step: step, Err: err}
}
