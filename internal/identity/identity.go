package identity

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"jourj/internal/storage"
)

// Kind says which collection a viewer identity points into
type Kind string

const (
	// Personal identities resolve against the person collection.
	Personal Kind = "personal"
	// Professional identities resolve against the vendor collection.
	Professional Kind = "professional"
)

// Identity is a pointer to the participant currently viewing. It
// carries no participant data; the referenced record is re-resolved
// against the current collections on every query, since the organizer
// may have edited or deleted it since selection.
type Identity struct {
	Kind Kind
	ID   string
}

// Manager tracks the selected viewer identity across return visits.
// The pointer persists independently of the entity collections.
type Manager struct {
	mu      sync.RWMutex
	store   *storage.Store
	log     zerolog.Logger
	current *Identity
}

// NewManager loads any previously persisted selection. An unreadable
// store starts the manager unset; the failure is logged, not returned.
func NewManager(store *storage.Store) *Manager {
	m := &Manager{
		store: store,
		log:   zerolog.New(os.Stdout).With().Str("component", "Identity").Logger(),
	}

	kind, kindOK, kindErr := store.Read(storage.KeyParticipantKind)
	id, idOK, idErr := store.Read(storage.KeyParticipantID)
	if err := errors.Join(kindErr, idErr); err != nil {
		m.log.Error().Err(err).Msg("Failed to load persisted selection, starting unset")
		return m
	}
	if kindOK && idOK && len(id) > 0 {
		m.current = &Identity{Kind: Kind(kind), ID: string(id)}
	}

	return m
}

// Select sets and persists the viewer identity.
func (m *Manager) Select(kind Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Write(storage.KeyParticipantKind, []byte(kind)); err != nil {
		return fmt.Errorf("failed to persist participant kind: %w", err)
	}
	if err := m.store.Write(storage.KeyParticipantID, []byte(id)); err != nil {
		return fmt.Errorf("failed to persist participant id: %w", err)
	}
	m.current = &Identity{Kind: kind, ID: id}
	return nil
}

// Clear erases the selection, persisted state included.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(storage.KeyParticipantKind); err != nil {
		return fmt.Errorf("failed to clear participant kind: %w", err)
	}
	if err := m.store.Delete(storage.KeyParticipantID); err != nil {
		return fmt.Errorf("failed to clear participant id: %w", err)
	}
	m.current = nil
	return nil
}

// Current returns the selected identity, if any.
func (m *Manager) Current() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return Identity{}, false
	}
	return *m.current, true
}
