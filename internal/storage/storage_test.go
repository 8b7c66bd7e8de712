package storage

import (
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "event.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestReadMissingKey(t *testing.T) {
	store := newTestStore(t)

	value, ok, err := store.Read("never-written")
	if err != nil {
		t.Fatalf("Read returned error for missing key: %v", err)
	}
	if ok {
		t.Errorf("Read reported ok for missing key, value=%q", value)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	type record struct {
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	}
	want := []record{{ID: "a", Tags: []string{"x", "y"}}, {ID: "b", Tags: []string{}}}

	if err := store.WriteJSON("records", want); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got []record
	if !store.ReadJSON("records", &got) {
		t.Fatal("ReadJSON reported absent after write")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestWriteReplacesWholeValue(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("k", []byte(`["first"]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := store.Write("k", []byte(`["second"]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	value, ok, err := store.Read("k")
	if err != nil || !ok {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}
	if string(value) != `["second"]` {
		t.Errorf("got %q, want the replacing value", value)
	}
}

func TestCorruptValueReadsAsAbsent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("people", []byte("{not json")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var dest []string
	if store.ReadJSON("people", &dest) {
		t.Error("ReadJSON reported ok for a corrupt value")
	}
	if len(dest) != 0 {
		t.Errorf("dest modified by corrupt value: %v", dest)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("k", []byte("v")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Read("k"); ok {
		t.Error("key still present after Delete")
	}

	// Deleting a missing key is a no-op.
	if err := store.Delete("k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}
