package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/match-explorer/internal/statsbomb"
	"github.com/trentd187/match-explorer/internal/table"
)

// newApp mounts the handlers on unconstrained routes so the handlers' own parameter
// checks are exercised, not just the router's.
func newApp(p statsbomb.Provider) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/health", HealthCheck)
	app.Get("/competitions", GetCompetitions(p))
	app.Get("/matches/:competitionId/:seasonId", GetMatches(p))
	app.Get("/events/:matchId", GetEvents(p))
	app.Get("/broken", func(c *fiber.Ctx) error {
		return errors.New("plain error")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealthCheck(t *testing.T) {
	code, body := get(t, newApp(statsbomb.NewFake()), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestHandlersRenderTables(t *testing.T) {
	fake := statsbomb.NewFake()
	fake.CompetitionsTable = table.New("competition_id", "competition_name")
	fake.CompetitionsTable.AppendRow(43, "FIFA World Cup")
	fake.MatchesTable = table.New("match_id")
	fake.EventsTable = table.New()

	app := newApp(fake)

	code, body := get(t, app, "/competitions")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[{"competition_id":43,"competition_name":"FIFA World Cup"}]`, body)

	code, body = get(t, app, "/matches/43/3")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[]`, body)
	assert.Equal(t, []int{43, 3}, fake.LastArgs())

	code, body = get(t, app, "/events/7298")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[]`, body)
	assert.Equal(t, []int{7298}, fake.LastArgs())
}

func TestHandlersRejectNonIntegerParams(t *testing.T) {
	fake := statsbomb.NewFake()
	app := newApp(fake)

	for _, path := range []string{"/matches/abc/1", "/matches/1/xyz", "/events/notanumber", "/events/99999999999999999999"} {
		code, _ := get(t, app, path)
		assert.Equal(t, http.StatusNotFound, code, path)
	}
	assert.Zero(t, fake.Calls(statsbomb.OpMatches))
	assert.Zero(t, fake.Calls(statsbomb.OpEvents))
}

func TestHandlersWrapProviderErrors(t *testing.T) {
	fake := statsbomb.NewFake()
	fake.Error = errors.New(`events/7298.json: malformed JSON document`)
	app := newApp(fake)

	for _, path := range []string{"/competitions", "/matches/43/3", "/events/7298"} {
		code, body := get(t, app, path)
		assert.Equal(t, http.StatusInternalServerError, code, path)
		assert.JSONEq(t, `{"error":"events/7298.json: malformed JSON document"}`, body, path)
	}
}

func TestErrorHandler(t *testing.T) {
	app := newApp(statsbomb.NewFake())

	code, body := get(t, app, "/does-not-exist")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"Cannot GET /does-not-exist"}`, body)

	code, body = get(t, app, "/broken")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"plain error"}`, body)
}
