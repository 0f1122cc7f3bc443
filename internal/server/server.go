// Package server builds the Fiber application: middleware, API routes, operational
// endpoints and the static front-end. main calls New once at startup; tests call it with
// a fake provider and a temp directory as the static root.
package server

import (
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/trentd187/match-explorer/internal/handlers"
	"github.com/trentd187/match-explorer/internal/metrics"
	"github.com/trentd187/match-explorer/internal/middleware"
	"github.com/trentd187/match-explorer/internal/statsbomb"
)

// digits is the route constraint for numeric ids.
const digits = `<regex(^\d+$)>`

// Options are the collaborators the app is built from.
type Options struct {
	// Provider answers the three data endpoints. Required.
	Provider statsbomb.Provider
	// StaticRoot is the directory served for every non-API path.
	StaticRoot string
	// Metrics, when non-nil, enables request metrics and GET /metrics.
	Metrics *metrics.Collector
	// AccessLog receives one line per request; defaults to stdout.
	AccessLog io.Writer
}

// New creates the Fiber app with every route registered. Registration order matters:
// Fiber tries routes in the order they were added, and the static handler matches any
// path, so it goes last.
func New(opts Options) *fiber.App {
	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}

	// go-json is a faster drop-in for encoding/json; Fiber calls the encoder for c.JSON.
	app := fiber.New(fiber.Config{
		AppName:               "Match Explorer API",
		ErrorHandler:          handlers.ErrorHandler,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	// --- Global middleware ---
	// recover turns a panic in any handler into a 500 instead of killing the process.
	app.Use(fiberrecover.New())
	// requestid tags every request with an X-Request-ID header (generated as a UUID
	// unless the client sent one) so access lines and error logs can be correlated.
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	// logger prints method, path, status and latency for each request.
	app.Use(logger.New(logger.Config{
		Output: accessLog,
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	// cors.New() with no config allows requests from any origin. The front-end is often
	// served from a different dev server (e.g. localhost:3000) than the API.
	app.Use(cors.New())

	if opts.Metrics != nil {
		app.Use(middleware.Metrics(opts.Metrics))
		// adaptor wraps the net/http Prometheus handler so Fiber can serve it.
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	app.Get("/health", handlers.HealthCheck)

	// --- Data API ---
	// Ids must be plain digits. Anything else ("abc", "1.5", "-5", "+5") is a routing
	// miss (404), not a handler error. Fiber's <int> would let signs through.
	api := app.Group("/api")
	api.Get("/competitions", handlers.GetCompetitions(opts.Provider))
	api.Get("/matches/:competitionId"+digits+"/:seasonId"+digits, handlers.GetMatches(opts.Provider))
	api.Get("/events/:matchId"+digits, handlers.GetEvents(opts.Provider))

	// --- Front-end bundle ---
	// "/" serves index.html; any other path is looked up under StaticRoot. A missing
	// file falls through to the end of the chain, which yields a 404.
	app.Static("/", opts.StaticRoot, fiber.Static{
		Index: "index.html",
	})

	return app
}
