// Package savegame stores game snapshots as JSON files on disk.
package savegame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vovakirdan/blockfall/internal/games/tetris"
)

// ErrNoSave is returned when a slot has never been saved.
var ErrNoSave = errors.New("savegame: no saved game")

// SaveInfo describes one occupied save slot.
type SaveInfo struct {
	Slot      string
	Score     int
	UpdatedAt time.Time
}

// FileStore is a tetris.SaveStore that keeps one JSON file per slot.
// The default slot lives in save.json, other slots in save-<slot>.json.
type FileStore struct {
	dir string
}

var _ tetris.SaveStore = (*FileStore)(nil)

// NewFileStore creates a store rooted at dir. A leading "~" expands to the
// user's home directory. An empty dir means ~/.blockfall.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = filepath.Join("~", ".blockfall")
	}
	if dir == "~" || strings.HasPrefix(dir, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("savegame: could not get user home directory: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing slot.
func (fs *FileStore) Path(slot string) string {
	if slot == "" || slot == tetris.DefaultSlot {
		return filepath.Join(fs.dir, "save.json")
	}
	return filepath.Join(fs.dir, "save-"+sanitize(slot)+".json")
}

// SaveGame writes snap to the slot's file, replacing any previous save.
// The file is written to a temporary name first and renamed into place.
func (fs *FileStore) SaveGame(ctx context.Context, slot string, snap tetris.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("savegame: encode snapshot: %w", err)
	}

	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("savegame: create save directory: %w", err)
	}

	tmp, err := os.CreateTemp(fs.dir, ".save-*.tmp")
	if err != nil {
		return fmt.Errorf("savegame: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Already renamed on success

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("savegame: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("savegame: write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.Path(slot)); err != nil {
		return fmt.Errorf("savegame: replace save file: %w", err)
	}
	return nil
}

// LoadGame reads the slot's file. A missing file yields ErrNoSave. The
// snapshot is decoded but not validated; Session.Restore does that.
func (fs *FileStore) LoadGame(ctx context.Context, slot string) (tetris.Snapshot, error) {
	var snap tetris.Snapshot
	if err := ctx.Err(); err != nil {
		return snap, err
	}

	data, err := os.ReadFile(fs.Path(slot))
	if errors.Is(err, os.ErrNotExist) {
		return snap, ErrNoSave
	}
	if err != nil {
		return snap, fmt.Errorf("savegame: read save file: %w", err)
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("savegame: decode snapshot: %w", err)
	}
	return snap, nil
}

// DeleteSave removes the slot's file. Deleting a missing slot is not an
// error.
func (fs *FileStore) DeleteSave(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(fs.Path(slot))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("savegame: delete save file: %w", err)
	}
	return nil
}

// ListSaves returns every slot with a readable save file, most recently
// written first. Slot names come from the file names, so they are the
// sanitized form of the names they were saved under. Files that do not
// decode are skipped.
func (fs *FileStore) ListSaves(ctx context.Context) ([]SaveInfo, error) {
	entries, err := os.ReadDir(fs.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("savegame: read save directory: %w", err)
	}

	var saves []SaveInfo
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slot, ok := slotOf(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		snap, err := fs.LoadGame(ctx, slot)
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		saves = append(saves, SaveInfo{Slot: slot, Score: snap.Score, UpdatedAt: info.ModTime()})
	}

	sort.Slice(saves, func(i, j int) bool {
		if !saves[i].UpdatedAt.Equal(saves[j].UpdatedAt) {
			return saves[i].UpdatedAt.After(saves[j].UpdatedAt)
		}
		return saves[i].Slot < saves[j].Slot
	})
	return saves, nil
}

// slotOf maps a file name back to its slot, the inverse of Path.
func slotOf(name string) (string, bool) {
	if name == "save.json" {
		return tetris.DefaultSlot, true
	}
	if !strings.HasPrefix(name, "save-") || !strings.HasSuffix(name, ".json") {
		return "", false
	}
	slot := strings.TrimSuffix(strings.TrimPrefix(name, "save-"), ".json")
	return slot, slot != ""
}

// sanitize keeps slot names safe for use in a file name.
func sanitize(slot string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, slot)
}
