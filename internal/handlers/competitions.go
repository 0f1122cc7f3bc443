// Package handlers contains HTTP route handler functions for the Match Explorer API.
// This file handles GET /api/competitions.
//
// Each exported function follows the "handler factory" pattern: it takes the data
// provider and returns a fiber.Handler. That lets us inject a real StatsBomb client in
// main and a fake one in tests without using global variables.
//
// All three data handlers share one contract:
//   - success: 200 with the provider's table as a JSON array of objects
//   - any provider error: 500 with {"error": "<the error's message>"}
//
// Provider errors are not classified. An unknown match id, an unreachable
// upstream host, and a garbled upstream document all look the same to the client.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/match-explorer/internal/statsbomb"
)

// GetCompetitions returns a handler for GET /api/competitions.
// It lists every competition/season pair the provider knows about.
func GetCompetitions(p statsbomb.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		comps, err := p.Competitions(c.UserContext())
		if err != nil {
			return upstreamFailure(c, statsbomb.OpCompetitions, err)
		}

		// c.JSON runs the table through the app's JSON encoder, which calls
		// Table.MarshalJSON and keeps column order intact.
		return c.JSON(comps)
	}
}
