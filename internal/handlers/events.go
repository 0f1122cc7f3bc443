package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/match-explorer/internal/statsbomb"
)

// GetEvents returns a handler for GET /api/events/:matchId.
// The response is every event of the match (passes, shots, pressures, substitutions...)
// in the order the provider recorded them.
func GetEvents(p statsbomb.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID, err := c.ParamsInt("matchId")
		if err != nil {
			return fiber.ErrNotFound
		}

		events, err := p.Events(c.UserContext(), matchID)
		if err != nil {
			return upstreamFailure(c, statsbomb.OpEvents, err)
		}
		return c.JSON(events)
	}
}
