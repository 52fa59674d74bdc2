/* handlers.go
 * Contains the HTTP handlers. Each one decodes the request, calls a single API method and encodes the result
 * Authors: scouting-admin contributors
 */

package web

import (
	"net/http"

	"scouting-admin/api/shared"

	"github.com/go-chi/chi/v5"
)

// Health reports liveness only, it does not touch the store
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, jsonResponse{"status": "ok"})
}

// region Seasons

func (s *Server) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := s.api.ListSeasons(r.Context())
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, jsonResponse{"seasons": seasons})
}

// CreateSeason creates a season and its default documents
// Preconditions: Body is {"year": "...", "name": "..."}
// Postconditions: Responds 201 with the season, or the mapped error
func (s *Server) CreateSeason(w http.ResponseWriter, r *http.Request) {
	var input createSeasonRequest
	if err := readJSON(w, r, &input); err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.api.CreateSeason(r.Context(), input.Year, input.Name); err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusCreated, jsonResponse{"season": shared.Season{Year: input.Year, Name: input.Name}})
}

// endregion

// region Params

func (s *Server) GetAllParams(w http.ResponseWriter, r *http.Request) {
	all, err := s.api.GetAllParams(r.Context(), chi.URLParam(r, "year"))
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	resp := allParamsResponse{
		Modes:  make([]shared.DataParamsMode, 0, len(all)),
		Params: make(map[string][]shared.ParamItem, len(all)),
	}
	for _, mp := range all {
		resp.Modes = append(resp.Modes, mp.Mode)
		resp.Params[mp.Mode.String()] = mp.Params
	}
	s.respond(w, r, http.StatusOK, resp)
}

func (s *Server) GetParams(w http.ResponseWriter, r *http.Request) {
	mode, err := shared.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	params, err := s.api.GetParams(r.Context(), mode, chi.URLParam(r, "year"))
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, jsonResponse{"mode": mode, "params": params})
}

// SetParam merges one param into a mode
// Preconditions: Body is a ParamItem, the mode comes from the path
// Postconditions: Responds 200 with the stored param, 404 if the mode document is missing, or the mapped error
func (s *Server) SetParam(w http.ResponseWriter, r *http.Request) {
	mode, err := shared.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	var param shared.ParamItem
	if err := readJSON(w, r, &param); err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.api.SetParam(r.Context(), param, mode, chi.URLParam(r, "year")); err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, jsonResponse{"param": param})
}

// endregion

// region Users

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.api.ListUsers(r.Context(), chi.URLParam(r, "year"))
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, jsonResponse{"users": users})
}

func (s *Server) ListUsernames(w http.ResponseWriter, r *http.Request) {
	names, err := s.api.ListUsernames(r.Context(), chi.URLParam(r, "year"))
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, jsonResponse{"usernames": names})
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user shared.User
	if err := readJSON(w, r, &user); err != nil {
		s.badRequest(w, r, err)
		return
	}

	if err := s.api.CreateUser(r.Context(), chi.URLParam(r, "year"), user); err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusCreated, jsonResponse{"user": user})
}

// UpdateUser merges the body into an existing user. The username in the path wins over the body.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var user shared.User
	if err := readJSON(w, r, &user); err != nil {
		s.badRequest(w, r, err)
		return
	}
	user.Username = chi.URLParam(r, "username")

	if err := s.api.UpdateUser(r.Context(), chi.URLParam(r, "year"), user); err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, jsonResponse{"user": user})
}

func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.api.DeleteUser(r.Context(), chi.URLParam(r, "year"), chi.URLParam(r, "username")); err != nil {
		s.mapError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// endregion

// region Teams and scouters

func (s *Server) ListScoutingTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.api.ListScoutingTeams(r.Context(), chi.URLParam(r, "year"))
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

func (s *Server) ListScouters(w http.ResponseWriter, r *http.Request) {
	scouters, err := s.api.ListScouters(r.Context(), chi.URLParam(r, "year"))
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, jsonResponse{"scouters": scouters})
}

func (s *Server) AddScouter(w http.ResponseWriter, r *http.Request) {
	var input addScouterRequest
	if err := readJSON(w, r, &input); err != nil {
		s.badRequest(w, r, err)
		return
	}

	scouter, err := s.api.AddScouter(r.Context(), chi.URLParam(r, "year"), shared.Scouter{
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusCreated, jsonResponse{"scouter": scouter})
}

func (s *Server) ListQuals(w http.ResponseWriter, r *http.Request) {
	quals, err := s.api.ListQuals(r.Context(), chi.URLParam(r, "year"))
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, jsonResponse{"quals": quals})
}

// endregion
