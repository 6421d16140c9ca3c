package palettestore

import (
	"path/filepath"
	"testing"

	"github.com/hueflow/server/internal/palette"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "palettes.sqlite"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveGetDelete(t *testing.T) {
	s := newTestStore(t)

	p := palette.Palette{Name: "mine", Stops: []string{"#ff0000", "#00ff00", "#0000ff"}}
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get("mine")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected saved palette, got nil")
	}
	if got.Name != "mine" || len(got.Stops) != 3 || got.Stops[1] != "#00ff00" {
		t.Fatalf("unexpected palette: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	removed, err := s.Delete("mine")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Fatal("expected Delete to report a removed row")
	}

	got, err = s.Get("mine")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil after delete, got %+v", got)
	}

	removed, err = s.Delete("mine")
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if removed {
		t.Fatal("expected second Delete to report no removed row")
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(palette.Palette{Name: "p", Stops: []string{"#000000", "#ffffff"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(palette.Palette{Name: "p", Stops: []string{"#ff0000", "#0000ff"}}); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	got, err := s.Get("p")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Stops[0] != "#ff0000" {
		t.Fatalf("expected overwritten stops, got %v", got.Stops)
	}
}

func TestListOrderedByName(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"zebra", "apple", "mango"} {
		if err := s.Save(palette.Palette{Name: name, Stops: []string{"#000000", "#ffffff"}}); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 palettes, got %d", len(list))
	}
	if list[0].Name != "apple" || list[1].Name != "mango" || list[2].Name != "zebra" {
		t.Fatalf("unexpected order: %v, %v, %v", list[0].Name, list[1].Name, list[2].Name)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)

	if err := src.Save(palette.Palette{Name: "a", Stops: []string{"#ff0000", "#0000ff"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := src.Save(palette.Palette{Name: "b", Stops: []string{"#000000", "#808080", "#ffffff"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := src.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := newTestStore(t)
	n, err := dst.Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported palettes, got %d", n)
	}

	got, err := dst.Get("b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || len(got.Stops) != 3 {
		t.Fatalf("unexpected imported palette: %+v", got)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Import([]byte("not zstd at all")); err == nil {
		t.Fatal("expected error for non-zstd input")
	}
}
