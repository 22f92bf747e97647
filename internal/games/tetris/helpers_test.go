package tetris

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// scriptedRand replays vals in a loop, reduced modulo n.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// onlyKind deals pieces of one shape, always colored with palette[0].
func onlyKind(k Kind) *scriptedRand {
	return &scriptedRand{vals: []int{int(k), 0}}
}

// copyPiece returns a deep copy of p for before/after comparisons.
func copyPiece(p *Piece) *Piece {
	c := *p
	c.Shape = p.Shape.Clone()
	return &c
}

func newTestSession(rng Randomizer) *Session {
	return NewSession(SessionConfig{Rand: rng})
}

var errMissing = errors.New("no snapshot in slot")

// memStore keeps snapshots in memory.
type memStore struct {
	mu      sync.Mutex
	snaps   map[string]Snapshot
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{snaps: make(map[string]Snapshot)}
}

func (m *memStore) SaveGame(_ context.Context, slot string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snaps[slot] = snap
	return nil
}

func (m *memStore) LoadGame(_ context.Context, slot string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[slot]
	if !ok {
		return Snapshot{}, errMissing
	}
	return snap, nil
}

// press returns a frame with the given actions pressed this tick.
func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// hold returns a frame with the given actions pressed and held.
func hold(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
		f.Hold(a)
	}
	return f
}

// fillRow fills row y except the columns in gaps.
func fillRow(b *Board, y int, gaps ...int) {
	skip := make(map[int]bool, len(gaps))
	for _, x := range gaps {
		skip[x] = true
	}
	for x := range GridWidth {
		if !skip[x] {
			b.Fill(x, y, core.ColorGray)
		}
	}
}

const tick = time.Second / 60
