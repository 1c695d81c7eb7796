package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dokzlo13/glowd/internal/color"
	"github.com/dokzlo13/glowd/internal/db"
	"github.com/dokzlo13/glowd/internal/region"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRegionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := region.FromPoints(10, 20, 300, 400)
	if err := s.SaveRegion(want); err != nil {
		t.Fatalf("SaveRegion: %v", err)
	}

	got, ok, err := s.Region()
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	if !ok {
		t.Fatal("expected a stored region")
	}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRegionAbsent(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Region()
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	if ok {
		t.Error("expected no region in a fresh store")
	}
}

func TestRegionOverwrite(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveRegion(region.FromPoints(0, 0, 10, 10)); err != nil {
		t.Fatalf("SaveRegion: %v", err)
	}
	want := region.FromPoints(5, 5, 50, 50)
	if err := s.SaveRegion(want); err != nil {
		t.Fatalf("SaveRegion: %v", err)
	}

	got, ok, err := s.Region()
	if err != nil || !ok {
		t.Fatalf("Region: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Errorf("expected %v after overwrite, got %v", want, got)
	}
}

func TestResetRegion(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveRegion(region.FromPoints(1, 2, 3, 4)); err != nil {
		t.Fatalf("SaveRegion: %v", err)
	}
	if err := s.ResetRegion(); err != nil {
		t.Fatalf("ResetRegion: %v", err)
	}

	_, ok, err := s.Region()
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	if ok {
		t.Error("expected region to be gone after reset")
	}

	// Resetting an empty store is not an error.
	if err := s.ResetRegion(); err != nil {
		t.Errorf("ResetRegion on empty store: %v", err)
	}
}

func TestCorruptRegion(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(`INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)`,
		keyRegion, `"not,a,region"`, time.Now().Unix())
	if err != nil {
		t.Fatalf("seeding corrupt value: %v", err)
	}

	if _, _, err := s.Region(); err == nil {
		t.Error("expected error for corrupt stored region")
	}
}

func TestPaletteRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := []color.RGB{
		{R: 255, G: 0, B: 0},
		{R: 18, G: 52, B: 86},
		{R: 0, G: 0, B: 0},
	}
	if err := s.SavePalette(want); err != nil {
		t.Fatalf("SavePalette: %v", err)
	}

	got, ok, err := s.LastPalette()
	if err != nil {
		t.Fatalf("LastPalette: %v", err)
	}
	if !ok {
		t.Fatal("expected a stored palette")
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d colors, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("color %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestPaletteAbsent(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.LastPalette()
	if err != nil {
		t.Fatalf("LastPalette: %v", err)
	}
	if ok {
		t.Error("expected no palette in a fresh store")
	}
}

func TestPaletteEmpty(t *testing.T) {
	s := newTestStore(t)

	if err := s.SavePalette(nil); err != nil {
		t.Fatalf("SavePalette: %v", err)
	}

	got, ok, err := s.LastPalette()
	if err != nil {
		t.Fatalf("LastPalette: %v", err)
	}
	if !ok {
		t.Fatal("expected the empty palette to be stored")
	}
	if len(got) != 0 {
		t.Errorf("expected empty palette, got %v", got)
	}
}
