package statsbomb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trentd187/match-explorer/internal/table"
)

// Client is the Provider backed by a Source of open-data documents.
type Client struct {
	src Source
	obs Observer
}

// NewClient creates a Client. obs may be nil.
func NewClient(src Source, obs Observer) *Client {
	return &Client{src: src, obs: observerOrNop(obs)}
}

// Competitions returns every available competition/season pair.
func (c *Client) Competitions(ctx context.Context) (*table.Table, error) {
	return c.load(ctx, OpCompetitions, "competitions.json", flattenRecords)
}

// Matches returns the matches of one competition season.
func (c *Client) Matches(ctx context.Context, competitionID, seasonID int) (*table.Table, error) {
	path := fmt.Sprintf("matches/%d/%d.json", competitionID, seasonID)
	return c.load(ctx, OpMatches, path, flattenMatches)
}

// Events returns the event stream of one match, in upstream order.
func (c *Client) Events(ctx context.Context, matchID int) (*table.Table, error) {
	path := fmt.Sprintf("events/%d.json", matchID)
	return c.load(ctx, OpEvents, path, flattenRecords)
}

func (c *Client) load(ctx context.Context, op, path string, flatten func([]byte) (*table.Table, error)) (*table.Table, error) {
	start := time.Now()
	t, err := c.fetchTable(ctx, path, flatten)
	elapsed := time.Since(start)
	c.obs.ObserveCall(op, elapsed, err)
	if err == nil {
		log.Debug().
			Str("operation", op).
			Str("path", path).
			Int("rows", t.Len()).
			Int("columns", len(t.Columns())).
			Dur("elapsed", elapsed).
			Msg("provider document loaded")
	}
	return t, err
}

func (c *Client) fetchTable(ctx context.Context, path string, flatten func([]byte) (*table.Table, error)) (*table.Table, error) {
	body, err := c.src.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	t, err := flatten(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
