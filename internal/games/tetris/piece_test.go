package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestSpawnPieceCentered(t *testing.T) {
	tests := []struct {
		kind  Kind
		wantX int
	}{
		{KindI, 3}, // 10/2 - 4/2
		{KindO, 4}, // 10/2 - 2/2
		{KindT, 4}, // 10/2 - 3/2
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := SpawnPiece(onlyKind(tt.kind), nil)
			assert.True(t, ShapeOf(tt.kind).Equal(p.Shape))
			assert.Equal(t, tt.wantX, p.X)
			assert.Equal(t, 0, p.Y)
			assert.Equal(t, Palette[0], p.Color)
		})
	}
}

func TestSpawnPieceWithMask(t *testing.T) {
	mask := ShapeOf(KindS)
	p := SpawnPiece(&scriptedRand{vals: []int{3}}, mask)

	assert.True(t, mask.Equal(p.Shape))
	assert.Equal(t, Palette[3], p.Color)

	mask[0][0] = false
	assert.True(t, p.Shape[0][0], "piece must own its mask")
}

func TestCollides(t *testing.T) {
	b := NewBoard()
	b.Fill(5, 10, core.ColorRed)
	p := &Piece{Shape: ShapeOf(KindO), Color: core.ColorBlue}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"inside", 0, 0, false},
		{"left wall", -1, 5, true},
		{"right wall", GridWidth - 1, 5, true},
		{"flush right", GridWidth - 2, 5, false},
		{"floor", 0, GridHeight - 1, true},
		{"on floor", 0, GridHeight - 2, false},
		{"overlap", 4, 9, true},
		{"beside block", 6, 9, false},
		{"partly above top", 3, -1, false},
		{"above top outside wall", -1, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Collides(b, tt.x, tt.y))
		})
	}
}

func TestAboveTopNeverCollides(t *testing.T) {
	b := NewBoard()
	for y := range GridHeight {
		fillRow(b, y)
	}

	for k := KindI; k <= KindZ; k++ {
		p := SpawnPiece(onlyKind(k), nil)
		for x := 0; x+p.Shape.Width() <= GridWidth; x++ {
			assert.False(t, p.Collides(b, x, -p.Shape.Height()), "%s at x=%d", k, x)
		}
	}
}

func TestMoveLeftRight(t *testing.T) {
	b := NewBoard()
	p := SpawnPiece(onlyKind(KindO), nil)

	moves := 0
	for p.MoveLeft(b) {
		moves++
	}
	assert.Equal(t, 4, moves)
	assert.Equal(t, 0, p.X)

	for p.MoveRight(b) {
	}
	assert.Equal(t, GridWidth-2, p.X)

	b.Fill(GridWidth-3, 0, core.ColorRed)
	assert.False(t, p.MoveLeft(b), "blocked by filled cell")
	assert.Equal(t, GridWidth-2, p.X)
}

func TestMoveDownAndDrop(t *testing.T) {
	b := NewBoard()
	p := SpawnPiece(onlyKind(KindI), nil)

	assert.Equal(t, Moved, p.MoveDown(b))
	assert.Equal(t, 1, p.Y)

	rows := p.Drop(b)
	assert.Equal(t, GridHeight-2, rows)
	assert.Equal(t, GridHeight-1, p.Y)
	assert.Equal(t, Grounded, p.MoveDown(b))
	assert.Equal(t, GridHeight-1, p.Y, "grounded piece must not move")
}

func TestRotate(t *testing.T) {
	b := NewBoard()
	p := SpawnPiece(onlyKind(KindI), nil)
	p.Y = 5

	require.True(t, p.Rotate(b))
	assert.Equal(t, 4, p.Shape.Height())

	// Vertical I against the right wall cannot turn back: no kick.
	p.X = GridWidth - 1
	assert.False(t, p.Rotate(b))
	assert.Equal(t, 4, p.Shape.Height(), "rejected rotation must keep the mask")
	assert.Equal(t, GridWidth-1, p.X)
}

func TestRotateBlockedByCell(t *testing.T) {
	b := NewBoard()
	p := &Piece{Shape: ShapeOf(KindT), Color: core.ColorRed, X: 3, Y: 5}
	// The rotated T occupies (x+1, y+2).
	b.Fill(4, 7, core.ColorGray)

	assert.False(t, p.Rotate(b))
	assert.True(t, ShapeOf(KindT).Equal(p.Shape))
}

func TestLock(t *testing.T) {
	b := NewBoard()
	p := &Piece{Shape: ShapeOf(KindO), Color: core.ColorYellow, X: 0, Y: -1}

	cleared := p.Lock(b)
	assert.Zero(t, cleared)
	assert.Equal(t, 2, b.FilledCount(), "rows above the top are dropped")
	assert.Equal(t, core.ColorYellow, b.At(0, 0).Color)

	fillRow(b, 19, 6, 7, 8, 9)
	i := &Piece{Shape: ShapeOf(KindI), Color: core.ColorCyan, X: 6, Y: 19}
	assert.Equal(t, 1, i.Lock(b))
}

func TestMoveResultString(t *testing.T) {
	assert.Equal(t, "moved", Moved.String())
	assert.Equal(t, "grounded", Grounded.String())
}
