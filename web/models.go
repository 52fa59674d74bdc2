/* models.go
 * Contains the web server configuration and the request bodies accepted by the handlers
 * Authors: scouting-admin contributors
 */

package web

import (
	"log/slog"

	"scouting-admin/api/api"
	"scouting-admin/api/shared"
)

// Config holds the configuration for the web server
type Config struct {
	Addr        string
	API         *api.API
	CORSOrigins []string
	Logger      *slog.Logger
}

// Server is the HTTP server exposing the scouting admin operations as JSON
type Server struct {
	api    *api.API
	logger *slog.Logger
}

type jsonResponse map[string]interface{}

type createSeasonRequest struct {
	Year string `json:"year"`
	Name string `json:"name"`
}

type addScouterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// allParamsResponse keeps the per mode lists keyed by segment and the fixed mode order alongside
type allParamsResponse struct {
	Modes  []shared.DataParamsMode       `json:"modes"`
	Params map[string][]shared.ParamItem `json:"params"`
}
