package visibility

import (
	"math"
	"slices"
	"sort"

	"jourj/internal/identity"
	"jourj/internal/models"
)

// Snapshot is an immutable view of every collection plus the config, as
// read from the store at one point in time. All engine queries are pure
// functions over a snapshot and a viewer identity.
type Snapshot struct {
	People    []models.Person
	Vendors   []models.Vendor
	Tasks     []models.Task
	Documents []models.Document
	Config    models.EventConfig
}

// Participant is the resolved record behind a viewer identity, in a
// shape common to people and vendors. Role holds the person role or the
// vendor type depending on Kind.
type Participant struct {
	Kind      identity.Kind
	ID        string
	Name      string
	Role      string
	Email     string
	Phone     string
	Notes     string
	Confirmed bool
}

// CurrentRecord resolves viewer against the collection matching its
// kind. ok is false when the viewer is unset (zero identity) or its
// record has been deleted; the stored pointer is never cleared here,
// the caller is expected to prompt for re-selection.
func (s Snapshot) CurrentRecord(viewer identity.Identity) (Participant, bool) {
	if viewer.ID == "" {
		return Participant{}, false
	}

	switch viewer.Kind {
	case identity.Personal:
		for _, p := range s.People {
			if p.ID == viewer.ID {
				return Participant{
					Kind:      identity.Personal,
					ID:        p.ID,
					Name:      p.Name,
					Role:      string(p.Role),
					Email:     p.Email,
					Phone:     p.Phone,
					Notes:     p.Notes,
					Confirmed: p.Confirmed,
				}, true
			}
		}
	case identity.Professional:
		for _, v := range s.Vendors {
			if v.ID == viewer.ID {
				return Participant{
					Kind:      identity.Professional,
					ID:        v.ID,
					Name:      v.Name,
					Role:      string(v.Type),
					Email:     v.Email,
					Phone:     v.Phone,
					Notes:     v.Notes,
					Confirmed: v.Confirmed,
				}, true
			}
		}
	}
	return Participant{}, false
}

// TasksFor returns the tasks assigned to the viewer: by person id for
// personal identities, by vendor id for professional ones. An unset or
// unresolved viewer sees no tasks.
func (s Snapshot) TasksFor(viewer identity.Identity) []models.Task {
	if _, ok := s.CurrentRecord(viewer); !ok {
		return nil
	}

	var result []models.Task
	for _, t := range s.Tasks {
		if s.assignedTo(viewer, t.AssignedTo, t.AssignedVendors) {
			result = append(result, t)
		}
	}
	return result
}

// DocumentsFor returns the documents visible to the viewer. Public and
// team documents are visible to every resolved viewer regardless of the
// assignment lists; specific documents only to viewers on the list
// matching their kind. An unset or unresolved viewer sees nothing.
func (s Snapshot) DocumentsFor(viewer identity.Identity) []models.Document {
	if _, ok := s.CurrentRecord(viewer); !ok {
		return nil
	}

	var result []models.Document
	for _, d := range s.Documents {
		switch d.Permission {
		case models.PermissionPublic, models.PermissionTeam:
			result = append(result, d)
		default:
			if s.assignedTo(viewer, d.AssignedTo, d.AssignedVendors) {
				result = append(result, d)
			}
		}
	}
	return result
}

// ProgressFor returns the viewer's task completion as a percentage
// rounded to the nearest integer, 0 when no tasks are assigned.
func (s Snapshot) ProgressFor(viewer identity.Identity) int {
	tasks := s.TasksFor(viewer)
	if len(tasks) == 0 {
		return 0
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(tasks)) * 100))
}

func (s Snapshot) assignedTo(viewer identity.Identity, people, vendors []string) bool {
	if viewer.Kind == identity.Personal {
		return slices.Contains(people, viewer.ID)
	}
	return slices.Contains(vendors, viewer.ID)
}

// AssignedNames resolves a task's assignment ids to display names,
// people first, then vendors. Ids whose record has been deleted are
// silently dropped; a dangling id is expected steady-state, not an
// error.
func (s Snapshot) AssignedNames(task models.Task) []string {
	return s.resolveNames(task.AssignedTo, task.AssignedVendors)
}

// DocumentAssignedNames resolves a document's assignment ids to names,
// with the same dangling-id behavior as AssignedNames.
func (s Snapshot) DocumentAssignedNames(doc models.Document) []string {
	return s.resolveNames(doc.AssignedTo, doc.AssignedVendors)
}

func (s Snapshot) resolveNames(personIDs, vendorIDs []string) []string {
	var names []string
	for _, id := range personIDs {
		for _, p := range s.People {
			if p.ID == id {
				names = append(names, p.Name)
				break
			}
		}
	}
	for _, id := range vendorIDs {
		for _, v := range s.Vendors {
			if v.ID == id {
				names = append(names, v.Name)
				break
			}
		}
	}
	return names
}

// SortTasksByStart returns the tasks ordered by start time. The sort is
// stable and lexicographic on the "HH:MM" string; the input is not
// modified.
func SortTasksByStart(tasks []models.Task) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	return sorted
}

// DocumentLink returns the reference the consumer should use for a
// document. For local documents the url is a bare filename and local is
// true: resolving it to a fetchable location is the consumer's job.
// Otherwise the url is usable verbatim.
func DocumentLink(doc models.Document) (href string, local bool) {
	return doc.URL, doc.IsLocal
}
