package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Person is a member of the personal team (family, witnesses, friends).
type Person struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Role      PersonRole `json:"role"`
	Notes     string     `json:"notes"`
	Confirmed bool       `json:"confirmed"`
}

// PersonRole represents a person's role in the event
type PersonRole string

const (
	RoleBride   PersonRole = "bride"
	RoleGroom   PersonRole = "groom"
	RoleWitness PersonRole = "witness"
	RoleFamily  PersonRole = "family"
	RoleFriend  PersonRole = "friend"
)

// Vendor is a professional service provider booked for the event.
type Vendor struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      VendorType `json:"type"`
	Contact   string     `json:"contact"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Notes     string     `json:"notes"`
	Confirmed bool       `json:"confirmed"`
}

// VendorType represents the service a vendor provides
type VendorType string

const (
	VendorVenue        VendorType = "venue"
	VendorCaterer      VendorType = "caterer"
	VendorPhotographer VendorType = "photographer"
	VendorFlorist      VendorType = "florist"
	VendorBeauty       VendorType = "beauty"
	VendorMusic        VendorType = "music"
)

// Task is a scheduled item on the event timeline. AssignedTo and
// AssignedVendors hold ids only; targets may have been deleted since
// assignment and lookups must tolerate that.
type Task struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	StartTime       string       `json:"startTime"`
	Duration        int          `json:"duration"`
	Category        TaskCategory `json:"category"`
	AssignedTo      []string     `json:"assignedTo"`
	AssignedVendors []string     `json:"assignedVendors"`
	Status          TaskStatus   `json:"status"`
	Priority        TaskPriority `json:"priority"`
	Notes           string       `json:"notes"`
}

// TaskCategory represents the phase of the event a task belongs to
type TaskCategory string

const (
	CategoryPreparation TaskCategory = "preparation"
	CategoryLogistics   TaskCategory = "logistics"
	CategoryCeremony    TaskCategory = "ceremony"
	CategoryPhotos      TaskCategory = "photos"
	CategoryReception   TaskCategory = "reception"
)

// TaskStatus represents the progress state of a task
type TaskStatus string

const (
	StatusScheduled  TaskStatus = "scheduled"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusDelayed    TaskStatus = "delayed"
)

// TaskPriority represents how urgent a task is
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// EndTime returns the clock time at which the task ends, derived from
// StartTime ("HH:MM") plus Duration in minutes. Overflow past midnight
// wraps; it is display-only. Returns StartTime unchanged if it does not
// parse as a clock time.
func (t Task) EndTime() string {
	start, err := time.Parse("15:04", t.StartTime)
	if err != nil {
		return t.StartTime
	}
	return start.Add(time.Duration(t.Duration) * time.Minute).Format("15:04")
}

// Document is a shared file or link. URL is opaque: a remote link, or a
// bare filename when IsLocal is set (resolution is the consumer's job).
type Document struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Type            DocumentType `json:"type"`
	URL             string       `json:"url"`
	IsLocal         bool         `json:"isLocal"`
	AssignedTo      []string     `json:"assignedTo"`
	AssignedVendors []string     `json:"assignedVendors"`
	Permission      Permission   `json:"permission"`
	Category        string       `json:"category"`
	UploadDate      string       `json:"uploadDate"`
}

// DocumentType represents what kind of document is stored
type DocumentType string

const (
	DocContract DocumentType = "contract"
	DocPhoto    DocumentType = "photo"
	DocPlanning DocumentType = "planning"
	DocInvoice  DocumentType = "invoice"
	DocOther    DocumentType = "other"
)

// Permission is the per-document visibility policy. Public documents are
// visible to everyone, team documents to every identified viewer, and
// specific documents only to the ids on the assignment lists.
type Permission string

const (
	PermissionPublic   Permission = "public"
	PermissionTeam     Permission = "team"
	PermissionSpecific Permission = "specific"
)

// EventConfig is the singleton describing the event itself.
type EventConfig struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Date           string `json:"date"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	Logo           string `json:"logo,omitempty"`
	Timezone       string `json:"timezone"`
}

// DefaultEventConfig returns the baseline config used before the
// organizer has configured anything.
func DefaultEventConfig() EventConfig {
	return EventConfig{
		ID:             "1",
		Name:           "My Event",
		Type:           "Wedding",
		Date:           time.Now().Format(time.RFC3339),
		PrimaryColor:   "#9333ea",
		SecondaryColor: "#e879f9",
		Timezone:       "Europe/Paris",
	}
}

// NewID generates a unique id for a freshly created record.
func NewID() string {
	return uuid.NewString()
}

// FormatDuration renders a task duration for display, e.g. "1h30" or "45min".
func FormatDuration(minutes int) string {
	if minutes >= 60 && minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	if minutes > 60 {
		return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dmin", minutes)
}
