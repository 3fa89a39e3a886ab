package indexdb

import (
	"path/filepath"
	"reflect"
	"testing"

	"gridcraft.ai/internal/persistence/snapshot"
	"gridcraft.ai/internal/sim/board"
	"gridcraft.ai/internal/sim/entity"
)

func testDoc(t *testing.T) snapshot.WorldDocV1 {
	t.Helper()
	b := board.New(4, 4)
	if !b.AddEntity(entity.NewObject("rock", false, true, 40), entity.Position{X: 1, Y: 1}) {
		t.Fatalf("seed rock")
	}
	if !b.AddEntity(entity.NewPerson("Ada", 12), entity.Position{X: 0, Y: 0}) {
		t.Fatalf("seed person")
	}
	return snapshot.Export(b)
}

func TestSaveStore_RoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "saves", "index.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	doc := testDoc(t)
	id, err := store.SaveWorld("tutorial", doc)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatalf("empty id")
	}

	got, err := store.LoadWorld(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(normalizeDoc(doc), normalizeDoc(got)) {
		t.Fatalf("load diverged:\n%+v\n%+v", doc, got)
	}
}

func TestSaveStore_ListSaves(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	doc := testDoc(t)
	for _, name := range []string{"alpha", "beta"} {
		if _, err := store.SaveWorld(name, doc); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	metas, err := store.ListSaves()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("got %d saves want 2", len(metas))
	}
	names := map[string]bool{}
	for _, m := range metas {
		names[m.Name] = true
		if m.Width != 4 || m.Height != 4 || m.Entities != len(doc.Entities) {
			t.Fatalf("meta malformed: %+v", m)
		}
		if m.CreatedAt == "" {
			t.Fatalf("missing created_at: %+v", m)
		}
	}
	if !names["alpha"] || !names["beta"] {
		t.Fatalf("names %v", names)
	}
}

func TestSaveStore_LoadMissing(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := store.LoadWorld("nope"); err == nil {
		t.Fatalf("missing id accepted")
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("empty path accepted")
	}
}

// JSON storage loses the concrete types of props values; compare with empty
// maps folded to nil.
func normalizeDoc(doc snapshot.WorldDocV1) snapshot.WorldDocV1 {
	for i := range doc.Entities {
		if len(doc.Entities[i].Props) == 0 {
			doc.Entities[i].Props = nil
		}
	}
	return doc
}
