package session

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"jourj/internal/identity"
	"jourj/internal/models"
	"jourj/internal/storage"
	"jourj/internal/visibility"
)

// Session keeps a read-only snapshot of the event data fresh for a
// long-lived viewer. There is no push channel: the snapshot is
// re-read from the store on a fixed interval, so an organizer edit
// becomes visible at most one interval after it was saved. Each
// refresh replaces the whole snapshot; readers never observe a
// half-updated one.
type Session struct {
	store    *storage.Store
	ids      *identity.Manager
	interval time.Duration
	log      zerolog.Logger

	mu   sync.RWMutex
	snap visibility.Snapshot
}

// New creates a session over the given store and identity manager.
// The first snapshot is empty until Refresh or Run has read the store.
func New(store *storage.Store, ids *identity.Manager, interval time.Duration) *Session {
	return &Session{
		store:    store,
		ids:      ids,
		interval: interval,
		log:      zerolog.New(os.Stdout).With().Str("component", "Session").Logger(),
		snap: visibility.Snapshot{
			Config: models.DefaultEventConfig(),
		},
	}
}

// Refresh re-reads every collection and the config from the store and
// swaps in the new snapshot. Keys never written, and corrupt values,
// read as empty; a refresh never fails.
func (s *Session) Refresh() {
	next := visibility.Snapshot{
		People:    make([]models.Person, 0),
		Vendors:   make([]models.Vendor, 0),
		Tasks:     make([]models.Task, 0),
		Documents: make([]models.Document, 0),
		Config:    models.DefaultEventConfig(),
	}

	s.store.ReadJSON(storage.KeyPeople, &next.People)
	s.store.ReadJSON(storage.KeyVendors, &next.Vendors)
	s.store.ReadJSON(storage.KeyTasks, &next.Tasks)
	s.store.ReadJSON(storage.KeyDocuments, &next.Documents)
	s.store.ReadJSON(storage.KeyEventConfig, &next.Config)

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()
}

// Run refreshes immediately, then on every tick of the configured
// interval until ctx is done. The ticker is stopped on return; no
// further reads are scheduled once the session ends.
func (s *Session) Run(ctx context.Context) {
	s.Refresh()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug().Msg("Session ended, stopping refresh loop")
			return
		case <-ticker.C:
			s.Refresh()
		}
	}
}

// Snapshot returns the current snapshot.
func (s *Session) Snapshot() visibility.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Identity returns the session's identity manager.
func (s *Session) Identity() *identity.Manager {
	return s.ids
}

// TasksForCurrentViewer returns the tasks assigned to the active
// identity, empty when no identity is selected or it no longer
// resolves.
func (s *Session) TasksForCurrentViewer() []models.Task {
	viewer, _ := s.ids.Current()
	return s.Snapshot().TasksFor(viewer)
}

// DocumentsForCurrentViewer returns the documents visible to the
// active identity.
func (s *Session) DocumentsForCurrentViewer() []models.Document {
	viewer, _ := s.ids.Current()
	return s.Snapshot().DocumentsFor(viewer)
}

// ProgressForCurrentViewer returns the active identity's completion
// percentage.
func (s *Session) ProgressForCurrentViewer() int {
	viewer, _ := s.ids.Current()
	return s.Snapshot().ProgressFor(viewer)
}

// CurrentViewerRecord resolves the active identity to its participant
// record.
func (s *Session) CurrentViewerRecord() (visibility.Participant, bool) {
	viewer, _ := s.ids.Current()
	return s.Snapshot().CurrentRecord(viewer)
}
