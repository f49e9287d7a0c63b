package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/config"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/handler"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/router"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/service"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Msg    string          `json:"msg"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Field string `json:"field"`
		Error string `json:"error"`
	} `json:"errors"`
}

func newRouter(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()

	srv := testutil.NewServer(t, cfg)

	services, err := service.NewService(srv, repository.NewRepositories(srv))
	require.NoError(t, err)

	return router.NewRouter(srv, handler.NewHandlers(srv, services))
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

const (
	tatooine = `{"name":"Tatooine","population":200000,"diameter":10465,"climated":"arid","terrain":"desert"}`
	luke     = `{"name":"Luke","specie":"human","gender":"male","age":19,"height":172,"weight":77,"planet_id":1}`
	lukeUser = `{"name":"luke","email":"luke@example.com","password":"secret"}`
)

func TestSitemapListsEveryRoute(t *testing.T) {
	e := newRouter(t, nil)

	rec, env := do(t, e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", env.Msg)

	routes := decode[[]handler.Route](t, env.Data)

	expected := []handler.Route{
		{Method: http.MethodGet, Path: "/"},
		{Method: http.MethodGet, Path: "/status"},
		{Method: http.MethodGet, Path: "/users"},
		{Method: http.MethodGet, Path: "/user/:id"},
		{Method: http.MethodGet, Path: "/user/:id/favorites"},
		{Method: http.MethodPost, Path: "/user"},
		{Method: http.MethodPut, Path: "/users/:id"},
		{Method: http.MethodDelete, Path: "/user/:id"},
		{Method: http.MethodGet, Path: "/planets"},
		{Method: http.MethodGet, Path: "/planet/:id"},
		{Method: http.MethodPost, Path: "/planets"},
		{Method: http.MethodPut, Path: "/planet/:id"},
		{Method: http.MethodDelete, Path: "/planet/:id"},
		{Method: http.MethodGet, Path: "/characters"},
		{Method: http.MethodGet, Path: "/character/:id"},
		{Method: http.MethodPost, Path: "/characters"},
		{Method: http.MethodPut, Path: "/character/:id"},
		{Method: http.MethodDelete, Path: "/character/:id"},
		{Method: http.MethodPost, Path: "/favorite/planets/:planet_id/:user_id"},
		{Method: http.MethodDelete, Path: "/favorite/planet/:planet_id/:user_id"},
		{Method: http.MethodPost, Path: "/favorite/characters/:character_id/:user_id"},
		{Method: http.MethodDelete, Path: "/favorite/character/:character_id/:user_id"},
	}
	assert.ElementsMatch(t, expected, routes)
}

func TestStatusReportsDatabase(t *testing.T) {
	e := newRouter(t, nil)

	rec, _ := do(t, e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string                    `json:"status"`
		Checks map[string]map[string]any `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"]["status"])
	assert.Equal(t, "sqlite", body.Checks["database"]["driver"])
}

func TestUserLifecycle(t *testing.T) {
	e := newRouter(t, nil)

	rec, env := do(t, e, http.MethodPost, "/user", lukeUser)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "user created successfully", env.Msg)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secret")

	created := decode[map[string]any](t, env.Data)
	assert.Equal(t, true, created["is_active"])

	rec, env = do(t, e, http.MethodPost, "/user", lukeUser)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", env.Code)

	rec, env = do(t, e, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	rec, env = do(t, e, http.MethodPut, "/users/1", `{"name":"skywalker"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[map[string]any](t, env.Data)
	assert.Equal(t, "skywalker", updated["name"])
	assert.Equal(t, "luke@example.com", updated["email"])

	rec, _ = do(t, e, http.MethodDelete, "/user/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec, env = do(t, e, http.MethodGet, "/user/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user with id 1 does not exist", env.Msg)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestCreateUserValidation(t *testing.T) {
	e := newRouter(t, nil)

	rec, env := do(t, e, http.MethodPost, "/user", `{"email":"luke@example.com","password":"secret"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", env.Msg)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "name", env.Errors[0].Field)

	rec, env = do(t, e, http.MethodPost, "/user", `{"name":"luke","email":"nope","password":"secret"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email address", env.Msg)

	rec, env = do(t, e, http.MethodPost, "/user", `["luke"]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body must be a JSON object", env.Msg)
}

func TestPlanetPartialUpdate(t *testing.T) {
	e := newRouter(t, nil)

	rec, _ := do(t, e, http.MethodPost, "/planets", tatooine)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := do(t, e, http.MethodPut, "/planet/1", `{"name":"Hoth"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	planet := decode[map[string]any](t, env.Data)
	assert.Equal(t, "Hoth", planet["name"])
	assert.EqualValues(t, 200000, planet["population"])
	assert.EqualValues(t, 10465, planet["diameter"])
	assert.Equal(t, "arid", planet["climated"])
	assert.Equal(t, "desert", planet["terrain"])

	rec, _ = do(t, e, http.MethodPut, "/planet/2", `{"name":"Endor"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCharacterRoundTrip(t *testing.T) {
	e := newRouter(t, nil)

	rec, _ := do(t, e, http.MethodPost, "/planets", tatooine)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, created := do(t, e, http.MethodPost, "/characters", luke)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, fetched := do(t, e, http.MethodGet, "/character/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	createdData := decode[map[string]any](t, created.Data)
	fetchedData := decode[map[string]any](t, fetched.Data)

	nested, ok := fetchedData["planet"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tatooine", nested["name"])
	assert.EqualValues(t, 1, nested["id"])

	delete(fetchedData, "planet")
	assert.Equal(t, createdData, fetchedData)

	rec, env := do(t, e, http.MethodGet, "/planet/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	planet := decode[map[string]any](t, env.Data)
	residents, ok := planet["residents"].([]any)
	require.True(t, ok)
	assert.Len(t, residents, 1)

	biggs := strings.NewReplacer(`"Luke"`, `"Biggs"`, `"planet_id":1`, `"planet_id":9`).Replace(luke)
	rec, env = do(t, e, http.MethodPost, "/characters", biggs)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "planet with id 9 does not exist", env.Msg)
}

func TestDeletePlanetWithResidents(t *testing.T) {
	e := newRouter(t, nil)

	do(t, e, http.MethodPost, "/planets", tatooine)
	do(t, e, http.MethodPost, "/characters", luke)

	rec, env := do(t, e, http.MethodDelete, "/planet/1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PLANET_HAS_RESIDENTS", env.Code)

	rec, _ = do(t, e, http.MethodDelete, "/character/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, e, http.MethodDelete, "/planet/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestFavorites(t *testing.T) {
	e := newRouter(t, nil)

	do(t, e, http.MethodPost, "/user", lukeUser)
	do(t, e, http.MethodPost, "/planets", tatooine)
	do(t, e, http.MethodPost, "/characters", luke)

	// Only a favorite character at first.
	rec, _ := do(t, e, http.MethodPost, "/favorite/characters/1/1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := do(t, e, http.MethodGet, "/user/1/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	favorites := decode[struct {
		UserData           map[string]any   `json:"user_data"`
		FavoritePlanets    []map[string]any `json:"favorite_planets"`
		FavoriteCharacters []map[string]any `json:"favorite_characters"`
	}](t, env.Data)
	assert.Equal(t, "luke", favorites.UserData["name"])
	assert.Empty(t, favorites.FavoritePlanets)
	require.Len(t, favorites.FavoriteCharacters, 1)
	assert.Equal(t, "Luke", favorites.FavoriteCharacters[0]["name"])

	rec, env = do(t, e, http.MethodPost, "/favorite/planets/1/1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	favorite := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, 1, favorite["planet_id"])
	assert.EqualValues(t, 1, favorite["user_id"])

	rec, env = do(t, e, http.MethodPost, "/favorite/planets/1/1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", env.Code)

	rec, env = do(t, e, http.MethodPost, "/favorite/planets/1/5", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user with id 5 does not exist", env.Msg)

	rec, _ = do(t, e, http.MethodDelete, "/favorite/planet/1/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = do(t, e, http.MethodDelete, "/favorite/planet/1/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "favorite not found", env.Msg)

	rec, _ = do(t, e, http.MethodDelete, "/favorite/character/1/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPathParamsMustBeIntegers(t *testing.T) {
	e := newRouter(t, nil)

	for _, path := range []string{"/user/abc", "/planet/-1", "/character/1.5"} {
		rec, env := do(t, e, http.MethodGet, path, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "id must be a non-negative integer", env.Msg, path)
	}

	rec, env := do(t, e, http.MethodPost, "/favorite/planets/x/1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "planet_id must be a non-negative integer", env.Msg)
}

func TestTrailingSlashIsIgnored(t *testing.T) {
	e := newRouter(t, nil)

	for _, path := range []string{"/planets/", "/characters/", "/users/"} {
		rec, env := do(t, e, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "[]", string(env.Data), path)
	}
}

func TestUnknownRoutes(t *testing.T) {
	e := newRouter(t, nil)

	rec, env := do(t, e, http.MethodGet, "/starships", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", env.Msg)
	assert.Equal(t, "NOT_FOUND", env.Code)

	rec, env = do(t, e, http.MethodPatch, "/planets", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", env.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	e := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/planets", nil)
	req.Header.Set("X-Request-ID", "trace-me")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "trace-me", rec.Header().Get("X-Request-ID"))

	rec, _ = do(t, e, http.MethodGet, "/planets", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	cfg := testutil.NewConfig(t)
	cfg.Server.RateLimit = 0.1

	e := newRouter(t, cfg)

	rec, _ := do(t, e, http.MethodGet, "/planets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(t, e, http.MethodGet, "/planets", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Code)
	assert.Equal(t, fmt.Sprintf("rate limit of %g requests per second exceeded", 0.1), env.Msg)
}
