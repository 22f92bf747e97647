package tetris

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// SnapshotVersion is the schema version written by Snapshot.
const SnapshotVersion = 1

// DefaultSlot is the save slot used when none is configured.
const DefaultSlot = "default"

var (
	// ErrSnapshotVersion is returned when a snapshot has an unknown version.
	ErrSnapshotVersion = errors.New("tetris: unsupported snapshot version")
	// ErrInvalidSnapshot is returned when a snapshot fails validation.
	ErrInvalidSnapshot = errors.New("tetris: invalid snapshot")
)

// SaveStore persists snapshots by slot name.
type SaveStore interface {
	SaveGame(ctx context.Context, slot string, snap Snapshot) error
	LoadGame(ctx context.Context, slot string) (Snapshot, error)
}

// SnapshotCell is one board cell in a snapshot.
type SnapshotCell struct {
	Filled bool       `json:"filled"`
	Color  core.Color `json:"color"`
}

// SnapshotPiece is the falling piece in a snapshot. Shape rows hold 0 or 1.
type SnapshotPiece struct {
	Shape [][]int    `json:"shape"`
	Color core.Color `json:"color"`
	X     int        `json:"x"`
	Y     int        `json:"y"`
}

// Snapshot is the persisted part of a session. The level is derived from
// the score on restore and the next piece is not stored.
type Snapshot struct {
	Version   int              `json:"version"`
	Score     int              `json:"score"`
	Lines     int              `json:"lines,omitempty"`
	FallSpeed float64          `json:"fall_speed"`
	Board     [][]SnapshotCell `json:"board"`
	Current   SnapshotPiece    `json:"current"`
}

// Snapshot captures the session in one step.
func (s *Session) Snapshot() Snapshot {
	rows := s.board.Rows()
	grid := make([][]SnapshotCell, GridHeight)
	for y := range rows {
		grid[y] = make([]SnapshotCell, GridWidth)
		for x, c := range rows[y] {
			grid[y][x] = SnapshotCell{Filled: c.Filled, Color: c.Color}
		}
	}

	shape := make([][]int, s.current.Shape.Height())
	for i, row := range s.current.Shape {
		shape[i] = make([]int, len(row))
		for j, filled := range row {
			if filled {
				shape[i][j] = 1
			}
		}
	}

	return Snapshot{
		Version:   SnapshotVersion,
		Score:     s.score,
		Lines:     s.lines,
		FallSpeed: s.fallSpeed,
		Board:     grid,
		Current: SnapshotPiece{
			Shape: shape,
			Color: s.current.Color,
			X:     s.current.X,
			Y:     s.current.Y,
		},
	}
}

// Validate checks the snapshot schema without touching any session.
func (snap Snapshot) Validate() error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrSnapshotVersion, snap.Version, SnapshotVersion)
	}
	if snap.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidSnapshot, snap.Score)
	}
	if snap.Lines < 0 {
		return fmt.Errorf("%w: negative line count %d", ErrInvalidSnapshot, snap.Lines)
	}
	if snap.FallSpeed <= 0 {
		return fmt.Errorf("%w: fall speed %v", ErrInvalidSnapshot, snap.FallSpeed)
	}
	if len(snap.Board) != GridHeight {
		return fmt.Errorf("%w: board has %d rows, want %d", ErrInvalidSnapshot, len(snap.Board), GridHeight)
	}
	for y, row := range snap.Board {
		if len(row) != GridWidth {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSnapshot, y, len(row), GridWidth)
		}
		for x, c := range row {
			if c.Filled && !inPalette(c.Color) {
				return fmt.Errorf("%w: filled cell (%d,%d) has color %d", ErrInvalidSnapshot, x, y, c.Color)
			}
		}
	}

	p := snap.Current
	if len(p.Shape) == 0 || len(p.Shape[0]) == 0 {
		return fmt.Errorf("%w: empty piece shape", ErrInvalidSnapshot)
	}
	blocks := 0
	for i, row := range p.Shape {
		if len(row) != len(p.Shape[0]) {
			return fmt.Errorf("%w: ragged piece shape at row %d", ErrInvalidSnapshot, i)
		}
		for _, v := range row {
			switch v {
			case 0:
			case 1:
				blocks++
			default:
				return fmt.Errorf("%w: piece shape value %d", ErrInvalidSnapshot, v)
			}
		}
	}
	if blocks == 0 {
		return fmt.Errorf("%w: piece shape has no blocks", ErrInvalidSnapshot)
	}
	if !inPalette(p.Color) {
		return fmt.Errorf("%w: piece has color %d", ErrInvalidSnapshot, p.Color)
	}
	w, h := len(p.Shape[0]), len(p.Shape)
	if p.X < 0 || p.X+w > GridWidth || p.Y < 0 || p.Y+h > GridHeight {
		return fmt.Errorf("%w: %dx%d piece at (%d,%d) outside the well", ErrInvalidSnapshot, w, h, p.X, p.Y)
	}
	return nil
}

func inPalette(c core.Color) bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// Restore replaces the session state with snap. The snapshot is validated
// and fully decoded before anything is swapped in; on error the session is
// unchanged. The next piece is dealt fresh. A restored piece inside the
// well that overlaps locked cells leaves the session in game over,
// otherwise it is running.
func (s *Session) Restore(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	board := NewBoard()
	for y, row := range snap.Board {
		for x, c := range row {
			if c.Filled {
				board.Fill(x, y, c.Color)
			}
		}
	}

	mask := make(Mask, len(snap.Current.Shape))
	for i, row := range snap.Current.Shape {
		mask[i] = make([]bool, len(row))
		for j, v := range row {
			mask[i][j] = v == 1
		}
	}
	current := &Piece{Shape: mask, Color: snap.Current.Color, X: snap.Current.X, Y: snap.Current.Y}
	next := SpawnPiece(s.rng, nil)

	s.board = board
	s.current = current
	s.next = next
	s.score = snap.Score
	s.lines = snap.Lines
	s.level = s.rules.LevelFor(snap.Score)
	s.fallSpeed = snap.FallSpeed
	s.fallTimer = 0
	s.lastFire = make(map[core.Action]time.Duration)

	if current.Collides(board, current.X, current.Y) {
		s.machine.SetState(string(PhaseGameOver))
	} else if !s.Running() {
		s.fire(eventRestore)
	}
	return nil
}

// Save writes a snapshot to the configured store and reports success.
// Failures are logged and leave the session untouched.
func (s *Session) Save(ctx context.Context) bool {
	if s.saves == nil {
		s.logger.Warn("save requested without a save store")
		s.setStatus("Save failed")
		return false
	}
	if err := s.saves.SaveGame(ctx, s.slot, s.Snapshot()); err != nil {
		s.logger.Warn("save failed", "slot", s.slot, "error", err)
		s.setStatus("Save failed")
		return false
	}
	s.logger.Info("game saved", "slot", s.slot, "score", s.score)
	s.setStatus("Game Saved")
	return true
}

// Load restores the snapshot in the configured slot and reports success.
// A missing, unreadable or malformed snapshot leaves the session untouched.
func (s *Session) Load(ctx context.Context) bool {
	if s.saves == nil {
		s.logger.Warn("load requested without a save store")
		s.setStatus("Load failed")
		return false
	}
	snap, err := s.saves.LoadGame(ctx, s.slot)
	if err == nil {
		err = s.Restore(snap)
	}
	if err != nil {
		s.logger.Warn("load failed", "slot", s.slot, "error", err)
		s.setStatus("Load failed")
		return false
	}
	s.logger.Info("game loaded", "slot", s.slot, "score", s.score)
	s.setStatus("Game Loaded")
	return true
}
