/* helpers.go
 * Contains the JSON request/response helpers and the mapping from data access errors to HTTP statuses
 * Authors: scouting-admin contributors
 */

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"scouting-admin/api/api"
	"scouting-admin/api/shared"
	"scouting-admin/api/store"
)

const maxBodyBytes = 1_048_576

// readJSON decodes exactly one JSON value from the request body into dst, rejecting unknown fields
func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := writeJSON(w, status, data); err != nil {
		s.logger.Error("failed to write response", "path", r.URL.Path, "err", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.respond(w, r, status, jsonResponse{"error": message})
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// mapError converts an error from the data access layer into an HTTP response
func (s *Server) mapError(w http.ResponseWriter, r *http.Request, err error) {
	var bootstrapErr *api.SeasonBootstrapError

	switch {
	case errors.Is(err, store.ErrNotFound):
		s.errorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidPath),
		errors.Is(err, store.ErrInvalidField),
		errors.Is(err, api.ErrInvalidSeason),
		errors.Is(err, api.ErrInvalidParam),
		errors.Is(err, api.ErrInvalidUser),
		errors.Is(err, shared.ErrUnknownMode):
		s.badRequest(w, r, err)
	case errors.Is(err, api.ErrMissingAdminDefaults):
		s.errorResponse(w, r, http.StatusInternalServerError, err.Error())
	case errors.As(err, &bootstrapErr):
		s.logger.Error("season left partially created", "year", bootstrapErr.Year, "step", bootstrapErr.Step, "err", err)
		s.errorResponse(w, r, http.StatusInternalServerError, err.Error())
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		s.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
	}
}
