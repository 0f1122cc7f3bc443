package statsbomb

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/trentd187/match-explorer/internal/cache"
	"github.com/trentd187/match-explorer/internal/table"
)

// Cached is a Provider that remembers successful results of another Provider.
// Errors are never cached: a failed lookup is retried upstream on the next request.
// Each table is charged its estimated size in bytes, so the cache's byte budget bounds
// memory no matter how many matches clients walk through.
type Cached struct {
	next  Provider
	cache *cache.Cache
	obs   Observer
}

// NewCached wraps next with c. obs may be nil.
func NewCached(next Provider, c *cache.Cache, obs Observer) *Cached {
	return &Cached{next: next, cache: c, obs: observerOrNop(obs)}
}

func (p *Cached) Competitions(ctx context.Context) (*table.Table, error) {
	return p.get(OpCompetitions, OpCompetitions, func() (*table.Table, error) {
		return p.next.Competitions(ctx)
	})
}

func (p *Cached) Matches(ctx context.Context, competitionID, seasonID int) (*table.Table, error) {
	key := fmt.Sprintf("%s/%d/%d", OpMatches, competitionID, seasonID)
	return p.get(OpMatches, key, func() (*table.Table, error) {
		return p.next.Matches(ctx, competitionID, seasonID)
	})
}

func (p *Cached) Events(ctx context.Context, matchID int) (*table.Table, error) {
	key := fmt.Sprintf("%s/%d", OpEvents, matchID)
	return p.get(OpEvents, key, func() (*table.Table, error) {
		return p.next.Events(ctx, matchID)
	})
}

func (p *Cached) get(op, key string, load func() (*table.Table, error)) (*table.Table, error) {
	if v, ok := p.cache.Get(key); ok {
		if t, ok := v.(*table.Table); ok {
			p.obs.ObserveCache(op, true)
			return t, nil
		}
	}
	p.obs.ObserveCache(op, false)

	t, err := load()
	if err != nil {
		return nil, err
	}
	if !p.cache.Set(key, t, t.Size()) {
		log.Debug().
			Str("key", key).
			Int64("bytes", t.Size()).
			Msg("provider cache did not admit table")
	}
	return t, nil
}
