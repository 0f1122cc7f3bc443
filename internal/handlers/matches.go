package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/match-explorer/internal/statsbomb"
)

// GetMatches returns a handler for GET /api/matches/:competitionId/:seasonId.
//
// The digits-only constraints on the route mean a request like /api/matches/abc/1 never
// reaches this handler: routing misses and the client gets a 404. The ParamsInt checks
// below still catch ids too large for an int, and handlers mounted on an unconstrained
// route.
func GetMatches(p statsbomb.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		competitionID, err := c.ParamsInt("competitionId")
		if err != nil {
			return fiber.ErrNotFound
		}
		seasonID, err := c.ParamsInt("seasonId")
		if err != nil {
			return fiber.ErrNotFound
		}

		matches, err := p.Matches(c.UserContext(), competitionID, seasonID)
		if err != nil {
			return upstreamFailure(c, statsbomb.OpMatches, err)
		}
		return c.JSON(matches)
	}
}
