package statsbomb

import (
	"context"
	"sync"

	"github.com/trentd187/match-explorer/internal/table"
)

// FakeProvider returns canned tables (or a canned error) and counts calls.
// It is used by handler and server tests.
type FakeProvider struct {
	CompetitionsTable *table.Table
	MatchesTable      *table.Table
	EventsTable       *table.Table
	Error             error

	mu    sync.Mutex
	calls map[string]int
	args  []int
}

func NewFake() *FakeProvider {
	return &FakeProvider{calls: make(map[string]int)}
}

func (f *FakeProvider) record(op string, args ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[op]++
	f.args = args
}

// Calls returns how many times op was invoked.
func (f *FakeProvider) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// LastArgs returns the integer arguments of the most recent call.
func (f *FakeProvider) LastArgs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.args
}

func (f *FakeProvider) Competitions(ctx context.Context) (*table.Table, error) {
	f.record(OpCompetitions)
	if f.Error != nil {
		return nil, f.Error
	}
	return f.CompetitionsTable, nil
}

func (f *FakeProvider) Matches(ctx context.Context, competitionID, seasonID int) (*table.Table, error) {
	f.record(OpMatches, competitionID, seasonID)
	if f.Error != nil {
		return nil, f.Error
	}
	return f.MatchesTable, nil
}

func (f *FakeProvider) Events(ctx context.Context, matchID int) (*table.Table, error) {
	f.record(OpEvents, matchID)
	if f.Error != nil {
		return nil, f.Error
	}
	return f.EventsTable, nil
}
