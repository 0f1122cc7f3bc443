// Package statsbomb reads football data from StatsBomb's open-data repository and turns
// each document into a table.Table the API can hand straight to the browser.
//
// The open-data repository is a tree of JSON files:
//
//	competitions.json                        every competition/season pair
//	matches/{competition_id}/{season_id}.json matches played in one season
//	events/{match_id}.json                   every on-ball event of one match
//
// A Source fetches those files (over HTTP or from a local checkout) and a Client parses
// and flattens them. Cached wraps any Provider with an in-memory TTL cache.
package statsbomb

import (
	"context"
	"time"

	"github.com/trentd187/match-explorer/internal/table"
)

// Operation names, used as cache key prefixes and metric labels.
const (
	OpCompetitions = "competitions"
	OpMatches      = "matches"
	OpEvents       = "events"
)

// Provider is the data-access surface the HTTP handlers depend on.
// Any error returned is surfaced to the client verbatim, so implementations should wrap
// errors with enough context to say which upstream resource failed.
type Provider interface {
	Competitions(ctx context.Context) (*table.Table, error)
	Matches(ctx context.Context, competitionID, seasonID int) (*table.Table, error)
	Events(ctx context.Context, matchID int) (*table.Table, error)
}

// Observer receives timing and cache outcomes from the provider layer.
// metrics.Collector implements it; a nil Observer is replaced with a no-op.
type Observer interface {
	ObserveCall(op string, elapsed time.Duration, err error)
	ObserveCache(op string, hit bool)
}

type nopObserver struct{}

func (nopObserver) ObserveCall(string, time.Duration, error) {}
func (nopObserver) ObserveCache(string, bool) {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
