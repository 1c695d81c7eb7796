// Package state persists the few settings that survive restarts: the
// capture region and the last palette pushed to the lights.
package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dokzlo13/glowd/internal/color"
	"github.com/dokzlo13/glowd/internal/db"
	"github.com/dokzlo13/glowd/internal/region"
)

const (
	keyRegion      = "region"
	keyLastPalette = "last_palette"
)

// Store reads and writes application state in the state table.
type Store struct {
	db *db.DB
}

// NewStore creates a store on top of an opened database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

func (s *Store) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	now := time.Now().UTC().Unix()
	_, err = s.db.Exec(`
		INSERT INTO state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(data), now)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(key string, out any) (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// SaveRegion persists the capture region as "x1,y1,x2,y2".
func (s *Store) SaveRegion(r region.Region) error {
	return s.set(keyRegion, r.String())
}

// Region loads the persisted capture region. ok is false when no
// region has been saved, which means the full screen is captured.
func (s *Store) Region() (r region.Region, ok bool, err error) {
	var raw string
	ok, err = s.get(keyRegion, &raw)
	if err != nil || !ok {
		return region.Region{}, ok, err
	}
	r, err = region.Parse(raw)
	if err != nil {
		return region.Region{}, false, fmt.Errorf("stored region is corrupt: %w", err)
	}
	return r, true, nil
}

// ResetRegion removes the persisted capture region.
func (s *Store) ResetRegion() error {
	return s.delete(keyRegion)
}

// SavePalette persists the palette as a list of hex colors.
func (s *Store) SavePalette(colors []color.RGB) error {
	hex := make([]string, len(colors))
	for i, c := range colors {
		hex[i] = c.Hex()
	}
	return s.set(keyLastPalette, hex)
}

// LastPalette loads the last persisted palette.
func (s *Store) LastPalette() (colors []color.RGB, ok bool, err error) {
	var hex []string
	ok, err = s.get(keyLastPalette, &hex)
	if err != nil || !ok {
		return nil, ok, err
	}
	colors = make([]color.RGB, 0, len(hex))
	for _, h := range hex {
		c, err := color.ParseHex(h)
		if err != nil {
			return nil, false, fmt.Errorf("stored palette is corrupt: %w", err)
		}
		colors = append(colors, c)
	}
	return colors, true, nil
}
