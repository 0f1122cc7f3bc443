// Package middleware contains HTTP middleware functions for the Match Explorer API.
// Middleware sits between the HTTP server and route handlers; it runs on every request
// that passes through it, which makes it the right place for cross-cutting concerns like
// request metrics.
package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RouteNotFound is the route label used for requests that matched no route and no static
// file. Using the raw path there would let any client create unbounded label values.
const RouteNotFound = "not_found"

// RequestObserver receives one observation per finished request.
// metrics.Collector satisfies it.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics returns a middleware that times every request and reports it to obs,
// labelled by the matched route pattern (e.g. "/api/events/:matchId<regex(^\d+$)>").
//
// It has to be registered before the routes it measures, and it runs the rest of the
// chain itself via c.Next() so it can see the final status code.
func Metrics(obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// A handler that returns an error hasn't written its status yet; the app's
		// ErrorHandler will, using the error's code. Mirror that here.
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		if status == fiber.StatusNotFound {
			route = RouteNotFound
		}

		obs.ObserveRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
