package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/event"
	"github.com/ftcstats/ftcstats/internal/domain/match"
	"github.com/ftcstats/ftcstats/internal/domain/participation"
	"github.com/ftcstats/ftcstats/internal/domain/scores2021"
	"github.com/ftcstats/ftcstats/internal/domain/season"
	"github.com/ftcstats/ftcstats/internal/domain/syncmeta"
)

type stubProvider struct {
	mu sync.Mutex

	events    []ExternalEvent
	eventsErr error
	matches   map[string][]ExternalMatch
	scores    map[string][]ExternalMatchScores
	fetchErr  error

	eventsSince   []*time.Time
	matchedEvents []string
}

func (p *stubProvider) FetchSeasonEvents(_ context.Context, _ season.Season, since *time.Time) ([]ExternalEvent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eventsSince = append(p.eventsSince, since)
	if p.eventsErr != nil {
		return nil, p.eventsErr
	}
	return p.events, nil
}

func (p *stubProvider) FetchEventMatches(_ context.Context, _ season.Season, eventCode string) ([]ExternalMatch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.matchedEvents = append(p.matchedEvents, eventCode)
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.matches[eventCode], nil
}

func (p *stubProvider) FetchEventScores(_ context.Context, _ season.Season, eventCode string) ([]ExternalMatchScores, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.scores[eventCode], nil
}

type stubCursors struct {
	last *time.Time
	err  error
}

func (c *stubCursors) LastFetch(_ context.Context, _ season.Season, _ syncmeta.Kind) (*time.Time, error) {
	return c.last, c.err
}

type stubEventLister struct {
	allCodes    []string
	windowCodes []string

	listedAll    bool
	listedWindow bool
	windowSince  time.Time
	windowNow    time.Time
}

func (l *stubEventLister) ListCodesBySeason(_ context.Context, _ season.Season) ([]string, error) {
	l.listedAll = true
	return l.allCodes, nil
}

func (l *stubEventLister) ListCodesForWindow(_ context.Context, _ season.Season, since, now time.Time) ([]string, error) {
	l.listedWindow = true
	l.windowSince = since
	l.windowNow = now
	return l.windowCodes, nil
}

// stubStore records everything written through one transaction and can be
// told to fail, in which case nothing counts as committed.
type stubStore struct {
	txErr error

	events         []event.Event
	matches        []match.Match
	participations []participation.Participation
	scores         []scores2021.MatchScores
	cursors        []syncmeta.Cursor
	cursorLast     bool
}

func (s *stubStore) InTx(_ context.Context, fn func(w SyncWriter) error) error {
	if s.txErr != nil {
		return s.txErr
	}
	return fn(&stubWriter{store: s})
}

type stubWriter struct {
	store *stubStore
}

func (w *stubWriter) UpsertEvents(_ context.Context, rows []event.Event) error {
	w.store.events = append(w.store.events, rows...)
	w.store.cursorLast = false
	return nil
}

func (w *stubWriter) UpsertMatches(_ context.Context, rows []match.Match) error {
	w.store.matches = append(w.store.matches, rows...)
	w.store.cursorLast = false
	return nil
}

func (w *stubWriter) UpsertParticipations(_ context.Context, rows []participation.Participation) error {
	w.store.participations = append(w.store.participations, rows...)
	w.store.cursorLast = false
	return nil
}

func (w *stubWriter) UpsertScores2021(_ context.Context, rows []scores2021.MatchScores) error {
	w.store.scores = append(w.store.scores, rows...)
	w.store.cursorLast = false
	return nil
}

func (w *stubWriter) PutCursor(_ context.Context, c syncmeta.Cursor) error {
	w.store.cursors = append(w.store.cursors, c)
	w.store.cursorLast = true
	return nil
}
