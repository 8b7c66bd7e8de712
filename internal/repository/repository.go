package repository

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"jourj/internal/models"
	"jourj/internal/storage"
)

// Repository is the organizer's typed read/write layer over the store.
// Each collection is kept in memory and replaced wholesale on save;
// every save writes through to the store immediately, so any reader
// (including viewer sessions polling the same database) observes the
// new value on its next read.
type Repository struct {
	mu    sync.RWMutex
	store *storage.Store
	log   zerolog.Logger

	people    []models.Person
	vendors   []models.Vendor
	tasks     []models.Task
	documents []models.Document
	config    models.EventConfig
}

// New loads all collections from the store. Keys never written default
// to empty collections; a missing config defaults to the baseline.
func New(store *storage.Store) *Repository {
	r := &Repository{
		store:     store,
		log:       zerolog.New(os.Stdout).With().Str("component", "Repository").Logger(),
		people:    make([]models.Person, 0),
		vendors:   make([]models.Vendor, 0),
		tasks:     make([]models.Task, 0),
		documents: make([]models.Document, 0),
		config:    models.DefaultEventConfig(),
	}

	store.ReadJSON(storage.KeyPeople, &r.people)
	store.ReadJSON(storage.KeyVendors, &r.vendors)
	store.ReadJSON(storage.KeyTasks, &r.tasks)
	store.ReadJSON(storage.KeyDocuments, &r.documents)
	store.ReadJSON(storage.KeyEventConfig, &r.config)

	return r
}

// People returns a copy of the person collection.
func (r *Repository) People() []models.Person {
	r.mu.RLock()
	defer r.mu.RUnlock()

	people := make([]models.Person, len(r.people))
	copy(people, r.people)
	return people
}

// Vendors returns a copy of the vendor collection.
func (r *Repository) Vendors() []models.Vendor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendors := make([]models.Vendor, len(r.vendors))
	copy(vendors, r.vendors)
	return vendors
}

// Tasks returns a copy of the task collection. Assignment lists are
// copied too, so editing one in place cannot leak into the repository.
func (r *Repository) Tasks() []models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]models.Task, len(r.tasks))
	for i, t := range r.tasks {
		t.AssignedTo = slices.Clone(t.AssignedTo)
		t.AssignedVendors = slices.Clone(t.AssignedVendors)
		tasks[i] = t
	}
	return tasks
}

// Documents returns a copy of the document collection, assignment
// lists included.
func (r *Repository) Documents() []models.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	documents := make([]models.Document, len(r.documents))
	for i, d := range r.documents {
		d.AssignedTo = slices.Clone(d.AssignedTo)
		d.AssignedVendors = slices.Clone(d.AssignedVendors)
		documents[i] = d
	}
	return documents
}

// Config returns the event configuration.
func (r *Repository) Config() models.EventConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config
}

// SavePeople replaces the person collection and persists it.
func (r *Repository) SavePeople(people []models.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.WriteJSON(storage.KeyPeople, people); err != nil {
		return fmt.Errorf("failed to save people: %w", err)
	}
	r.people = people
	return nil
}

// SaveVendors replaces the vendor collection and persists it.
func (r *Repository) SaveVendors(vendors []models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.WriteJSON(storage.KeyVendors, vendors); err != nil {
		return fmt.Errorf("failed to save vendors: %w", err)
	}
	r.vendors = vendors
	return nil
}

// SaveTasks replaces the task collection and persists it.
func (r *Repository) SaveTasks(tasks []models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.WriteJSON(storage.KeyTasks, tasks); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	r.tasks = tasks
	return nil
}

// SaveDocuments replaces the document collection and persists it.
func (r *Repository) SaveDocuments(documents []models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.WriteJSON(storage.KeyDocuments, documents); err != nil {
		return fmt.Errorf("failed to save documents: %w", err)
	}
	r.documents = documents
	return nil
}

// SaveConfig replaces the event configuration and persists it.
func (r *Repository) SaveConfig(cfg models.EventConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.WriteJSON(storage.KeyEventConfig, cfg); err != nil {
		return fmt.Errorf("failed to save event config: %w", err)
	}
	r.config = cfg
	return nil
}

// Summary holds the organizer's headline counts.
type Summary struct {
	People           int
	PeopleConfirmed  int
	Vendors          int
	VendorsConfirmed int
	Tasks            int
	TasksCompleted   int
	Documents        int
}

// Summary computes headline counts over the current collections.
func (r *Repository) Summary() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Summary{
		People:    len(r.people),
		Vendors:   len(r.vendors),
		Tasks:     len(r.tasks),
		Documents: len(r.documents),
	}
	for _, p := range r.people {
		if p.Confirmed {
			s.PeopleConfirmed++
		}
	}
	for _, v := range r.vendors {
		if v.Confirmed {
			s.VendorsConfirmed++
		}
	}
	for _, t := range r.tasks {
		if t.Status == models.StatusCompleted {
			s.TasksCompleted++
		}
	}
	return s
}
