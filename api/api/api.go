/* api.go
 * This file contains the API struct, the data access layer used by the web server and the discord bot. The
 * operations are split by area: seasons.go, params.go, users.go and scouters.go. Every operation takes an explicit
 * context and runs against the store handle passed to NewAPI
 * Authors: scouting-admin contributors
 */

package api

import (
	"fmt"
	"log/slog"

	"scouting-admin/api/shared"
	"scouting-admin/api/store"
	"scouting-admin/config"
)

// Collection and document names below seasons/<year>
const (
	SeasonsCollection       = "seasons"
	DataParamsCollection    = "data-params"
	UsersCollection         = "users"
	ScoutingTeamsCollection = "scouting-teams"
	ScoutersCollection      = "scouters"
	QualsCollection         = "quals"
)

// API provides the season, param and user operations on top of a document store
type API struct {
	Store  store.Interface
	Admin  config.AdminDefaults
	Logger *slog.Logger
}

// NewAPI creates a new API instance
// Preconditions: Receives a store handle, the default admin identity used by CreateSeason and an optional logger
// Postconditions: Returns pointer to API, or error if no store was provided
func NewAPI(s store.Interface, admin config.AdminDefaults, logger *slog.Logger) (*API, error) {
	if s == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		Store:  s,
		Admin:  admin,
		Logger: logger,
	}, nil
}

func seasonPath(year string) (string, error) {
	return store.Join(SeasonsCollection, year)
}

func seasonCollectionPath(year string, collection string) (string, error) {
	return store.Join(SeasonsCollection, year, collection)
}

func seasonDocPath(year string, collection string, id string) (string, error) {
	return store.Join(SeasonsCollection, year, collection, id)
}

func paramsPath(year string, mode shared.DataParamsMode) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %d", shared.ErrUnknownMode, int(mode))
	}
	return seasonDocPath(year, DataParamsCollection, mode.String())
}
