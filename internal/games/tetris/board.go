package tetris

import "github.com/vovakirdan/blockfall/internal/core"

// Cell is one square of the well.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Row is a single line of the well, always GridWidth cells wide.
type Row [GridWidth]Cell

// Board is the fixed-size well. Rows are indexed top to bottom.
// The fixed-size array keeps the row count and width invariant by
// construction.
type Board struct {
	rows [GridHeight]Row
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Reset empties every cell.
func (b *Board) Reset() {
	b.rows = [GridHeight]Row{}
}

// InBounds reports whether (x, y) lies inside the well.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < GridWidth && y >= 0 && y < GridHeight
}

// Occupied reports whether the cell at (x, y) is filled.
// Out-of-bounds coordinates are never occupied.
func (b *Board) Occupied(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.rows[y][x].Filled
}

// At returns the cell at (x, y). Out-of-bounds coordinates yield an empty cell.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.rows[y][x]
}

// Fill marks a cell occupied with the given color. Out-of-bounds writes are
// ignored.
func (b *Board) Fill(x, y int, c core.Color) {
	if !b.InBounds(x, y) {
		return
	}
	b.rows[y][x] = Cell{Filled: true, Color: c}
}

// IsRowFull reports whether every cell of row y is occupied.
func (b *Board) IsRowFull(y int) bool {
	if y < 0 || y >= GridHeight {
		return false
	}
	for _, c := range b.rows[y] {
		if !c.Filled {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifts the rows above down and
// inserts one empty row at the top per removed row. Relative order of the
// remaining rows is preserved. Returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	var kept [GridHeight]Row
	write := GridHeight - 1
	cleared := 0

	// Walk bottom-up so surviving rows settle at the bottom in order.
	for y := GridHeight - 1; y >= 0; y-- {
		if b.IsRowFull(y) {
			cleared++
			continue
		}
		kept[write] = b.rows[y]
		write--
	}

	if cleared > 0 {
		b.rows = kept
	}
	return cleared
}

// Rows returns a copy of the grid for rendering and snapshots.
func (b *Board) Rows() [GridHeight]Row {
	return b.rows
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, row := range b.rows {
		for _, c := range row {
			if c.Filled {
				n++
			}
		}
	}
	return n
}
