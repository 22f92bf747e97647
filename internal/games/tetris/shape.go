// Package tetris implements the falling-block puzzle game: the shape catalog,
// pieces, the well, the scoring policy and the session that ties them together.
package tetris

import "github.com/vovakirdan/blockfall/internal/core"

// Well dimensions in cells.
const (
	GridWidth  = 10
	GridHeight = 20
)

// Mask is a 2D occupancy grid for a shape in its local orientation.
// mask[row][col] is true where the shape has a block.
type Mask [][]bool

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindL
	KindJ
	KindS
	KindZ
)

// String returns the single-letter name of the shape.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

var kindNames = [...]string{"I", "O", "T", "L", "J", "S", "Z"}

// catalog is indexed by Kind. Entries are never handed out directly;
// ShapeOf returns a copy.
var catalog = [...]Mask{
	KindI: maskOf("1111"),
	KindO: maskOf("11", "11"),
	KindT: maskOf("111", "010"),
	KindL: maskOf("111", "100"),
	KindJ: maskOf("111", "001"),
	KindS: maskOf("110", "011"),
	KindZ: maskOf("011", "110"),
}

// Palette is the set of colors a piece can spawn with.
var Palette = []core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorBlue,
	core.ColorYellow,
	core.ColorOrange,
	core.ColorCyan,
	core.ColorMagenta,
}

// maskOf builds a mask from rows of '0'/'1' characters.
func maskOf(rows ...string) Mask {
	m := make(Mask, len(rows))
	for i, row := range rows {
		m[i] = make([]bool, len(row))
		for j, ch := range row {
			m[i][j] = ch == '1'
		}
	}
	return m
}

// ShapeCount is the number of shapes in the catalog.
func ShapeCount() int {
	return len(catalog)
}

// ShapeOf returns a fresh copy of the catalog mask for kind.
func ShapeOf(k Kind) Mask {
	return catalog[k].Clone()
}

// Shapes returns copies of every catalog mask in catalog order.
func Shapes() []Mask {
	out := make([]Mask, len(catalog))
	for i := range catalog {
		out[i] = catalog[i].Clone()
	}
	return out
}

// Width returns the number of columns in the mask.
func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height returns the number of rows in the mask.
func (m Mask) Height() int {
	return len(m)
}

// Clone returns a deep copy of the mask.
func (m Mask) Clone() Mask {
	out := make(Mask, len(m))
	for i, row := range m {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// Equal reports whether two masks have the same dimensions and cells.
func (m Mask) Equal(other Mask) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the mask turned 90° clockwise: new[i][j] = old[h-1-j][i].
// A 1×4 row becomes a 4×1 column and vice versa. The receiver is not modified.
func (m Mask) Rotate() Mask {
	h, w := m.Height(), m.Width()
	out := make(Mask, w)
	for i := range w {
		out[i] = make([]bool, h)
		for j := range h {
			out[i][j] = m[h-1-j][i]
		}
	}
	return out
}

// Cells calls fn for every occupied cell with its row and column in mask space.
func (m Mask) Cells(fn func(row, col int)) {
	for i, row := range m {
		for j, filled := range row {
			if filled {
				fn(i, j)
			}
		}
	}
}
