package tetris

import "github.com/vovakirdan/blockfall/internal/core"

// MoveResult is the outcome of a downward step.
type MoveResult int

const (
	// Moved means the piece went down one row.
	Moved MoveResult = iota
	// Grounded means the row below is blocked; the piece did not move.
	Grounded
)

// String returns a human-readable name for the result.
func (r MoveResult) String() string {
	if r == Grounded {
		return "grounded"
	}
	return "moved"
}

// Piece is the falling tetromino: a mask in its current orientation, a color
// and the board position of the mask's top-left cell.
type Piece struct {
	Shape Mask
	Color core.Color
	X, Y  int
}

// SpawnPiece creates a piece with the given mask, or a random catalog shape
// when mask is nil. The color is always random. The mask is centered
// horizontally on row 0.
func SpawnPiece(rng Randomizer, mask Mask) *Piece {
	if mask == nil {
		mask = ShapeOf(Kind(rng.Intn(ShapeCount())))
	} else {
		mask = mask.Clone()
	}
	return &Piece{
		Shape: mask,
		Color: Palette[rng.Intn(len(Palette))],
		X:     GridWidth/2 - mask.Width()/2,
		Y:     0,
	}
}

// Collides reports whether the piece's mask placed at (x, y) would leave the
// well horizontally, go through the floor, or overlap a filled cell. Cells
// above the top of the well are only checked against the side walls.
func (p *Piece) Collides(b *Board, x, y int) bool {
	return maskCollides(b, p.Shape, x, y)
}

func maskCollides(b *Board, m Mask, x, y int) bool {
	for i, row := range m {
		for j, filled := range row {
			if !filled {
				continue
			}
			bx, by := x+j, y+i
			if bx < 0 || bx >= GridWidth || by >= GridHeight {
				return true
			}
			if by >= 0 && b.Occupied(bx, by) {
				return true
			}
		}
	}
	return false
}

// MoveLeft shifts the piece one column left if there is room.
func (p *Piece) MoveLeft(b *Board) bool {
	return p.shift(b, -1)
}

// MoveRight shifts the piece one column right if there is room.
func (p *Piece) MoveRight(b *Board) bool {
	return p.shift(b, 1)
}

func (p *Piece) shift(b *Board, dx int) bool {
	if p.Collides(b, p.X+dx, p.Y) {
		return false
	}
	p.X += dx
	return true
}

// MoveDown steps the piece one row down, or reports Grounded without moving.
func (p *Piece) MoveDown(b *Board) MoveResult {
	if p.Collides(b, p.X, p.Y+1) {
		return Grounded
	}
	p.Y++
	return Moved
}

// Drop moves the piece down until it is grounded and returns the number of
// rows travelled.
func (p *Piece) Drop(b *Board) int {
	rows := 0
	for p.MoveDown(b) == Moved {
		rows++
	}
	return rows
}

// Rotate turns the piece clockwise in place. If the rotated mask would
// collide at the current position the rotation is rejected. No offsets are
// tried.
func (p *Piece) Rotate(b *Board) bool {
	rotated := p.Shape.Rotate()
	if maskCollides(b, rotated, p.X, p.Y) {
		return false
	}
	p.Shape = rotated
	return true
}

// Lock writes the piece into the board and clears any completed rows.
// Cells above the top of the well are dropped. Returns the number of rows
// cleared.
func (p *Piece) Lock(b *Board) int {
	p.Shape.Cells(func(i, j int) {
		if p.Y+i >= 0 {
			b.Fill(p.X+j, p.Y+i, p.Color)
		}
	})
	return b.ClearFullRows()
}
