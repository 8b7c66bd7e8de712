package visibility

import (
	"reflect"
	"testing"

	"jourj/internal/identity"
	"jourj/internal/models"
)

func testSnapshot() Snapshot {
	return Snapshot{
		People: []models.Person{
			{ID: "person-1", Name: "Alice", Role: models.RoleBride, Email: "alice@example.com"},
			{ID: "person-2", Name: "Bob", Role: models.RoleWitness},
		},
		Vendors: []models.Vendor{
			{ID: "vendor-1", Name: "Petals & Co", Type: models.VendorFlorist},
		},
		Config: models.DefaultEventConfig(),
	}
}

func TestTasksForUnsetIdentity(t *testing.T) {
	snap := testSnapshot()
	snap.Tasks = []models.Task{{ID: "t1", AssignedTo: []string{"person-1"}}}

	if got := snap.TasksFor(identity.Identity{}); len(got) != 0 {
		t.Errorf("unset identity sees tasks: %+v", got)
	}
	if got := snap.DocumentsFor(identity.Identity{}); len(got) != 0 {
		t.Errorf("unset identity sees documents: %+v", got)
	}
}

func TestTasksForUnresolvedIdentity(t *testing.T) {
	snap := testSnapshot()
	snap.Tasks = []models.Task{{ID: "t1", AssignedTo: []string{"person-9"}}}
	snap.Documents = []models.Document{{ID: "d1", Permission: models.PermissionPublic}}

	// The pointer targets a record the organizer has since deleted.
	ghost := identity.Identity{Kind: identity.Personal, ID: "person-9"}

	if got := snap.TasksFor(ghost); len(got) != 0 {
		t.Errorf("unresolved identity sees tasks: %+v", got)
	}
	if got := snap.DocumentsFor(ghost); len(got) != 0 {
		t.Errorf("unresolved identity sees documents: %+v", got)
	}
	if got := snap.ProgressFor(ghost); got != 0 {
		t.Errorf("unresolved identity progress: %d", got)
	}
}

func TestTasksForAssignedViewer(t *testing.T) {
	rehearsal := models.Task{
		ID:              "t1",
		Title:           "Ceremony rehearsal",
		StartTime:       "09:00",
		Duration:        30,
		Category:        models.CategoryCeremony,
		AssignedTo:      []string{"person-1"},
		AssignedVendors: []string{},
		Status:          models.StatusScheduled,
		Priority:        models.PriorityHigh,
	}
	snap := testSnapshot()
	snap.Tasks = []models.Task{rehearsal}

	got := snap.TasksFor(identity.Identity{Kind: identity.Personal, ID: "person-1"})
	if len(got) != 1 || !reflect.DeepEqual(got[0], rehearsal) {
		t.Errorf("person-1 tasks: %+v", got)
	}

	if got := snap.TasksFor(identity.Identity{Kind: identity.Personal, ID: "person-2"}); len(got) != 0 {
		t.Errorf("person-2 sees unassigned task: %+v", got)
	}
}

func TestTasksForVendorUsesVendorList(t *testing.T) {
	snap := testSnapshot()
	snap.Tasks = []models.Task{
		{ID: "t1", AssignedTo: []string{"vendor-1"}, AssignedVendors: []string{}},
		{ID: "t2", AssignedTo: []string{}, AssignedVendors: []string{"vendor-1"}},
	}

	got := snap.TasksFor(identity.Identity{Kind: identity.Professional, ID: "vendor-1"})
	if len(got) != 1 || got[0].ID != "t2" {
		t.Errorf("vendor tasks must come from assignedVendors only: %+v", got)
	}
}

func TestDocumentPermissions(t *testing.T) {
	snap := testSnapshot()
	snap.Documents = []models.Document{
		{ID: "pub", Permission: models.PermissionPublic},
		{ID: "team", Permission: models.PermissionTeam},
		{ID: "mine", Permission: models.PermissionSpecific, AssignedTo: []string{"person-1"}},
		{ID: "vendor-only", Permission: models.PermissionSpecific, AssignedVendors: []string{"vendor-1"}},
	}

	tests := []struct {
		name   string
		viewer identity.Identity
		want   []string
	}{
		{
			name:   "assigned person",
			viewer: identity.Identity{Kind: identity.Personal, ID: "person-1"},
			want:   []string{"pub", "team", "mine"},
		},
		{
			name:   "unassigned person still sees public and team",
			viewer: identity.Identity{Kind: identity.Personal, ID: "person-2"},
			want:   []string{"pub", "team"},
		},
		{
			name:   "vendor gated by the vendor list",
			viewer: identity.Identity{Kind: identity.Professional, ID: "vendor-1"},
			want:   []string{"pub", "team", "vendor-only"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			docs := snap.DocumentsFor(tc.viewer)
			got := make([]string, 0, len(docs))
			for _, d := range docs {
				got = append(got, d.ID)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProgressFor(t *testing.T) {
	viewer := identity.Identity{Kind: identity.Personal, ID: "person-1"}

	tests := []struct {
		name     string
		statuses []models.TaskStatus
		want     int
	}{
		{"no tasks", nil, 0},
		{"one of four completed", []models.TaskStatus{
			models.StatusCompleted, models.StatusScheduled, models.StatusInProgress, models.StatusDelayed,
		}, 25},
		{"all completed", []models.TaskStatus{models.StatusCompleted, models.StatusCompleted}, 100},
		{"one of three rounds to nearest", []models.TaskStatus{
			models.StatusCompleted, models.StatusScheduled, models.StatusScheduled,
		}, 33},
		{"two of three rounds up", []models.TaskStatus{
			models.StatusCompleted, models.StatusCompleted, models.StatusScheduled,
		}, 67},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := testSnapshot()
			for i, st := range tc.statuses {
				snap.Tasks = append(snap.Tasks, models.Task{
					ID:         string(rune('a' + i)),
					AssignedTo: []string{"person-1"},
					Status:     st,
				})
			}
			if got := snap.ProgressFor(viewer); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCurrentRecord(t *testing.T) {
	snap := testSnapshot()

	person, ok := snap.CurrentRecord(identity.Identity{Kind: identity.Personal, ID: "person-1"})
	if !ok || person.Name != "Alice" || person.Role != "bride" {
		t.Errorf("person record: %+v ok=%v", person, ok)
	}

	vendor, ok := snap.CurrentRecord(identity.Identity{Kind: identity.Professional, ID: "vendor-1"})
	if !ok || vendor.Name != "Petals & Co" || vendor.Role != "florist" {
		t.Errorf("vendor record: %+v ok=%v", vendor, ok)
	}

	if _, ok := snap.CurrentRecord(identity.Identity{Kind: identity.Personal, ID: "vendor-1"}); ok {
		t.Error("person identity resolved against the vendor collection")
	}
	if _, ok := snap.CurrentRecord(identity.Identity{}); ok {
		t.Error("zero identity resolved to a record")
	}
}

func TestAssignedNamesDropDanglingIDs(t *testing.T) {
	snap := testSnapshot()
	task := models.Task{
		AssignedTo:      []string{"person-1", "person-deleted", "person-2"},
		AssignedVendors: []string{"vendor-1", "vendor-deleted"},
	}

	want := []string{"Alice", "Bob", "Petals & Co"}
	if got := snap.AssignedNames(task); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDocumentAssignedNames(t *testing.T) {
	snap := testSnapshot()
	doc := models.Document{AssignedTo: []string{"ghost"}, AssignedVendors: []string{"vendor-1"}}

	want := []string{"Petals & Co"}
	if got := snap.DocumentAssignedNames(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortTasksByStart(t *testing.T) {
	tasks := []models.Task{
		{ID: "late", StartTime: "18:30"},
		{ID: "early-a", StartTime: "09:00"},
		{ID: "early-b", StartTime: "09:00"},
		{ID: "noon", StartTime: "12:15"},
	}

	sorted := SortTasksByStart(tasks)

	gotIDs := make([]string, len(sorted))
	for i, task := range sorted {
		gotIDs[i] = task.ID
	}
	// Equal start times keep their relative order.
	want := []string{"early-a", "early-b", "noon", "late"}
	if !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("got %v, want %v", gotIDs, want)
	}

	if tasks[0].ID != "late" {
		t.Error("SortTasksByStart mutated its input")
	}
}

func TestDocumentLink(t *testing.T) {
	remote := models.Document{URL: "https://example.com/contract.pdf", IsLocal: false}
	if href, local := DocumentLink(remote); href != remote.URL || local {
		t.Errorf("remote document: href=%q local=%v", href, local)
	}

	file := models.Document{URL: "seating-chart.pdf", IsLocal: true}
	if href, local := DocumentLink(file); href != "seating-chart.pdf" || !local {
		t.Errorf("local document: href=%q local=%v", href, local)
	}
}
