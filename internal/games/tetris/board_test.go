package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestClearFullRows(t *testing.T) {
	tests := []struct {
		name string
		full []int
	}{
		{"none", nil},
		{"bottom", []int{19}},
		{"two adjacent", []int{18, 19}},
		{"scattered", []int{0, 7, 19}},
		{"tetris", []int{16, 17, 18, 19}},
		{"middle", []int{10, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			isFull := make(map[int]bool)
			for _, y := range tt.full {
				isFull[y] = true
				fillRow(b, y)
			}

			// Mark every other row with one cell whose column encodes its
			// original index so order can be checked after compaction.
			var survivors []int
			for y := range GridHeight {
				if isFull[y] {
					continue
				}
				b.Fill(y%GridWidth, y, core.ColorRed)
				survivors = append(survivors, y)
			}

			cleared := b.ClearFullRows()
			require.Equal(t, len(tt.full), cleared)

			rows := b.Rows()
			require.Len(t, rows, GridHeight)
			for y, row := range rows {
				require.Len(t, row, GridWidth)
				if y < cleared {
					for x := range GridWidth {
						assert.False(t, row[x].Filled, "inserted row %d not empty", y)
					}
					continue
				}
				orig := survivors[y-cleared]
				assert.True(t, row[orig%GridWidth].Filled, "row %d should hold original row %d", y, orig)
				assert.False(t, b.IsRowFull(y))
			}
		})
	}
}

func TestClearFullRowsKeepsColors(t *testing.T) {
	b := NewBoard()
	fillRow(b, 19)
	b.Fill(3, 18, core.ColorCyan)

	require.Equal(t, 1, b.ClearFullRows())
	assert.Equal(t, Cell{Filled: true, Color: core.ColorCyan}, b.At(3, 19))
	assert.Equal(t, 1, b.FilledCount())
}

func TestIsRowFull(t *testing.T) {
	b := NewBoard()
	fillRow(b, 5, 9)
	assert.False(t, b.IsRowFull(5))

	b.Fill(9, 5, core.ColorBlue)
	assert.True(t, b.IsRowFull(5))

	assert.False(t, b.IsRowFull(-1))
	assert.False(t, b.IsRowFull(GridHeight))
}

func TestBoardBounds(t *testing.T) {
	b := NewBoard()
	b.Fill(-1, 0, core.ColorRed)
	b.Fill(GridWidth, 0, core.ColorRed)
	b.Fill(0, GridHeight, core.ColorRed)

	assert.Zero(t, b.FilledCount(), "out-of-bounds fills must be ignored")
	assert.False(t, b.Occupied(-1, -1))
	assert.Equal(t, Cell{}, b.At(100, 100))

	b.Fill(0, 0, core.ColorRed)
	b.Reset()
	assert.Zero(t, b.FilledCount())
}
