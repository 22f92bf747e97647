package tetris

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

const (
	cellW      = 2 // Terminal columns per well cell
	panelW     = 14
	minScreenW = GridWidth*cellW + 2 + 2*panelW
	minScreenH = GridHeight + 3
)

const blockGlyph = '█'

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	wellW := GridWidth*cellW + 2
	well := core.NewRect((g.screenW-wellW)/2, 1, wellW, GridHeight+2)

	g.renderWell(dst, well)
	g.renderStats(dst, well.X-panelW, well.Y+1)
	g.renderNext(dst, well.Right()+2, well.Y+1)
	g.renderStatus(dst)
	cx, cy := well.Center()
	g.renderOverlays(dst, cx, cy)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderWell draws the border, locked cells and the falling piece.
func (g *Game) renderWell(dst *core.Screen, well core.Rect) {
	dst.DrawBox(well)
	x0, y0 := well.X, well.Y
	inner := core.NewRect(x0+1, y0+1, GridWidth*cellW, GridHeight)

	board := g.session.Board()
	for y := range GridHeight {
		for x := range GridWidth {
			if c := board.At(x, y); c.Filled {
				drawBlock(dst, x0+1+x*cellW, y0+1+y, c.Color)
			}
		}
	}

	p := g.session.Current()
	p.Shape.Cells(func(i, j int) {
		x, y := x0+1+(p.X+j)*cellW, y0+1+p.Y+i
		if inner.Contains(x, y) {
			drawBlock(dst, x, y, p.Color)
		}
	})
}

// renderStats draws score, level and speed to the left of the well.
func (g *Game) renderStats(dst *core.Screen, x, y int) {
	s := g.session
	dst.DrawText(x, y, fmt.Sprintf("Score: %d", s.Score()))
	dst.DrawText(x, y+1, fmt.Sprintf("Level: %d", s.Level()))
	dst.DrawText(x, y+2, fmt.Sprintf("Speed: %.1f", 1/s.FallSpeed()))
	dst.DrawText(x, y+3, fmt.Sprintf("Lines: %d", s.Lines()))
}

// renderNext draws the preview piece to the right of the well.
func (g *Game) renderNext(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, "Next:")
	next := g.session.Next()
	next.Shape.Cells(func(i, j int) {
		drawBlock(dst, x+j*cellW, y+2+i, next.Color)
	})
}

// renderStatus draws the transient save/load message above the well.
func (g *Game) renderStatus(dst *core.Screen) {
	if msg := g.session.Status(); msg != "" {
		dst.DrawTextCentered(0, msg)
		return
	}
	dst.DrawTextCentered(0, "B L O C K F A L L")
}

// renderOverlays draws the pause and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.session.Paused():
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.session.GameOver():
		drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Final Score: %d", g.session.Score()),
			"Press R to restart",
			"Press ESC to exit",
		)
	}
}

// drawOverlay draws a centered, boxed block of text.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.FillRect(box)
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	for dx := range cellW {
		dst.SetCell(x+dx, y, blockGlyph, c)
	}
}
