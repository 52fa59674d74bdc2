/* server_test.go
 * Contains unit tests for the router, handlers and JSON helpers, served through httptest
 * Authors: scouting-admin contributors
 */

package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scouting-admin/api/api"
	"scouting-admin/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (http.Handler, *api.API, *api.MockStore) {
	t.Helper()
	a, mock := api.NewTestAPI()
	s := NewServer(Config{API: a, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	return s.Routes(nil), a, mock
}

func doRequest(t *testing.T, h http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// region Config tests

func TestNewServer_DefaultLogger(t *testing.T) {
	s := NewServer(Config{Addr: ":8080"})

	assert.NotNil(t, s.logger)
	assert.Nil(t, s.api)
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	h, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/seasons", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

// endregion

// region Season handler tests

func TestCreateSeason_ThenList(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/seasons", `{"year":"2024","name":"Rebuilt"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/seasons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Seasons []shared.Season `json:"seasons"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, []shared.Season{{Year: "2024", Name: "Rebuilt"}}, resp.Seasons)
}

func TestCreateSeason_BadJSON(t *testing.T) {
	h, _, mock := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"year":`},
		{"unknown field", `{"year":"2024","name":"x","extra":1}`},
		{"two values", `{"year":"2024","name":"x"}{}`},
		{"wrong type", `{"year":2024,"name":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/seasons", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
	assert.Empty(t, mock.CallLog())
}

func TestCreateSeason_InvalidYear(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/seasons", `{"year":"..","name":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSeason_MissingAdminDefaults(t *testing.T) {
	h, a, _ := newTestServer(t)
	a.Admin.Password = ""

	rec := doRequest(t, h, http.MethodPost, "/seasons", `{"year":"2024","name":"Rebuilt"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "DEFAULT_ADMIN_PASSWORD")
}

func TestListSeasons_StoreError(t *testing.T) {
	h, _, mock := newTestServer(t)
	mock.ListError = errors.New("boom")

	rec := doRequest(t, h, http.MethodGet, "/seasons", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

// endregion

// region Param handler tests

func TestParams_SetAndGet(t *testing.T) {
	h, _, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRequest(t, h, http.MethodPost, "/seasons", `{"year":"2024","name":"Rebuilt"}`).Code)

	rec := doRequest(t, h, http.MethodPut, "/seasons/2024/params/TELEOP", `{"name":"Speaker","type":"counter","points":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/seasons/2024/params/teleop", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Mode   string             `json:"mode"`
		Params []shared.ParamItem `json:"params"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "teleop", resp.Mode)
	assert.Equal(t, []shared.ParamItem{{Name: "Speaker", Type: shared.ParamCounter, Points: 2}}, resp.Params)
}

func TestGetAllParams_Response(t *testing.T) {
	h, _, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRequest(t, h, http.MethodPost, "/seasons", `{"year":"2024","name":"Rebuilt"}`).Code)

	rec := doRequest(t, h, http.MethodGet, "/seasons/2024/params", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Modes  []string                       `json:"modes"`
		Params map[string][]shared.ParamItem `json:"params"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"autonomous", "teleop", "endgame", "summary"}, resp.Modes)
	assert.Len(t, resp.Params, 4)
	for _, mode := range resp.Modes {
		assert.Contains(t, resp.Params, mode)
	}
	assert.Empty(t, resp.Params["summary"])
}

func TestSetParam_MissingSeasonIsNotFound(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPut, "/seasons/1999/params/teleop", `{"name":"Speaker","type":"counter"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParams_UnknownMode(t *testing.T) {
	h, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, doRequest(t, h, http.MethodGet, "/seasons/2024/params/overtime", "").Code)
	assert.Equal(t, http.StatusBadRequest,
		doRequest(t, h, http.MethodPut, "/seasons/2024/params/overtime", `{"name":"x","type":"counter"}`).Code)
}

func TestSetParam_InvalidParam(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPut, "/seasons/2024/params/teleop", `{"name":"Climb","type":"choice"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// endregion

// region User handler tests

func TestCreateUser_UnknownTagIsBadRequest(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/seasons/2024/users",
		`{"username":"a","password":"pw","teamNumber":"42","teamName":"X","tags":["foo"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/seasons/2024/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users struct {
		Users []shared.User `json:"users"`
	}
	decodeBody(t, rec, &users)
	assert.Empty(t, users.Users)
}

func TestUsers_Lifecycle(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/seasons/2024/users",
		`{"username":"a","password":"pw","teamNumber":"42","teamName":"X","tags":["SCOUTER"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodPut, "/seasons/2024/users/a",
		`{"username":"ignored","password":"new","teamNumber":"42","teamName":"X","tags":["SCOUTER"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/seasons/2024/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users struct {
		Users []shared.User `json:"users"`
	}
	decodeBody(t, rec, &users)
	require.Len(t, users.Users, 1)
	assert.Equal(t, "a", users.Users[0].Username)
	assert.Equal(t, "new", users.Users[0].Password)

	rec = doRequest(t, h, http.MethodGet, "/seasons/2024/scouting-teams", "")
	assert.JSONEq(t, `{"teams":{"42":"X"}}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodDelete, "/seasons/2024/users/a", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/seasons/2024/usernames", "")
	assert.JSONEq(t, `{"usernames":[]}`, rec.Body.String())
}

func TestUpdateUser_AbsentIsNotFound(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPut, "/seasons/2024/users/new", `{"password":"pw","teamNumber":"42"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser_GhostIsNoContent(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodDelete, "/seasons/2024/users/ghost", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateUser_MissingTeamNumber(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/seasons/2024/users", `{"username":"a"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// endregion

// region Scouter handler tests

func TestScouters_AddAndList(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodPost, "/seasons/2024/scouters", `{"firstname":"Ada","lastname":"Lovelace"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var added struct {
		Scouter shared.Scouter `json:"scouter"`
	}
	decodeBody(t, rec, &added)
	assert.NotEmpty(t, added.Scouter.Key)

	rec = doRequest(t, h, http.MethodGet, "/seasons/2024/scouters", "")
	var listed struct {
		Scouters []shared.Scouter `json:"scouters"`
	}
	decodeBody(t, rec, &listed)
	assert.Equal(t, []shared.Scouter{added.Scouter}, listed.Scouters)
}

func TestListQuals_Empty(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/seasons/2024/quals", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"quals":[]}`, rec.Body.String())
}

// endregion
