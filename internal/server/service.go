package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/talegraph/talegraph/pkg/snapshot"
	"github.com/talegraph/talegraph/pkg/source"
	"github.com/talegraph/talegraph/pkg/timeline"
)

// Service owns the timeline model for the web UI: it decides between the
// last-good snapshot and a fresh fetch, rebuilds the model, and keeps
// serving the previous model when a refresh fails.
type Service struct {
	source     source.Source
	store      snapshot.Store
	databaseID string
	logger     *log.Logger

	mu        sync.RWMutex
	model     *timeline.Model
	fetchedAt time.Time
	lastErr   error
}

// NewService creates a Service. The model is empty until the first Load.
func NewService(src source.Source, store snapshot.Store, databaseID string, logger *log.Logger) *Service {
	return &Service{
		source:     src,
		store:      store,
		databaseID: databaseID,
		logger:     logger,
	}
}

// Load populates the model. With refresh false the snapshot is consulted
// first and a fetch only happens on a miss; with refresh true the snapshot
// is bypassed and the fetch result replaces it.
//
// A fetch failure never discards an already-loaded model: the previous
// model keeps serving and the error is retained for display.
func (s *Service) Load(ctx context.Context, refresh bool) error {
	if !refresh {
		if snap, err := s.store.Load(ctx, s.databaseID); err == nil && snap != nil {
			s.logger.Info("Loaded snapshot", "records", len(snap.Records), "fetched_at", snap.FetchedAt)
			s.install(timeline.Build(snap.Records), snap.FetchedAt, nil)
			return nil
		}
	}

	records, err := s.source.FetchAll(ctx)
	if err != nil {
		s.logger.Error("Fetch failed", "source", s.source.Name(), "err", err)
		s.setError(err)
		return err
	}
	s.logger.Info("Fetched records", "source", s.source.Name(), "count", len(records))

	snap := snapshot.New(s.databaseID, records)
	if err := s.store.Save(ctx, snap); err != nil {
		// Persistence failure is not fatal, the in-memory model still updates
		s.logger.Warn("Snapshot save failed", "err", err)
	}

	model := timeline.Build(records)
	for _, w := range model.Warnings() {
		s.logger.Warn("Malformed record", "warning", w)
	}
	s.install(model, snap.FetchedAt, nil)
	return nil
}

func (s *Service) install(m *timeline.Model, fetchedAt time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m
	s.fetchedAt = fetchedAt
	s.lastErr = err
}

func (s *Service) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// Model returns the current model (nil before the first successful Load),
// the time its records were fetched, and the last refresh error if any.
func (s *Service) Model() (*timeline.Model, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model, s.fetchedAt, s.lastErr
}
