package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

// fakeGame is a scripted Game: it reports whatever state the test sets.
type fakeGame struct {
	state   core.GameState
	resets  int
	w, h    int
	lastIn  core.InputFrame
	renders int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.w, g.h = cfg.ScreenW, cfg.ScreenH
}
func (g *fakeGame) Resize(w, h int) { g.w, g.h = w, h }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = in.Clone()
	return core.StepResult{State: g.state, Quit: in.Has(core.ActionQuit)}
}
func (g *fakeGame) Render(dst *core.Screen) {
	g.renders++
	dst.DrawText(0, 0, "fake game")
}
func (g *fakeGame) State() core.GameState { return g.state }

type recordedScore struct {
	game                string
	score, level, lines int
}

type fakeScores struct {
	saved []recordedScore
}

func (s *fakeScores) SaveScore(gameID string, score, level, lines int) (int64, error) {
	s.saved = append(s.saved, recordedScore{gameID, score, level, lines})
	return int64(len(s.saved)), nil
}

func newTestModel(g *fakeGame, scores ScoreRecorder) Model {
	return NewModel(g, scores, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1})
}

func tickModel(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func TestModelResetsGameWithFooterRoom(t *testing.T) {
	g := &fakeGame{}
	newTestModel(g, nil)

	if g.resets != 1 {
		t.Errorf("expected one reset, got %d", g.resets)
	}
	if g.w != 80 || g.h != 24 {
		t.Errorf("game size = %dx%d, want 80x24", g.w, g.h)
	}
}

func TestModelRecordsScoreOnce(t *testing.T) {
	g := &fakeGame{}
	scores := &fakeScores{}
	m := newTestModel(g, scores)

	g.state = core.GameState{Score: 700, Level: 2, Lines: 6, GameOver: true}
	for range 5 {
		m = tickModel(t, m)
	}
	if len(scores.saved) != 1 {
		t.Fatalf("expected 1 saved score, got %d", len(scores.saved))
	}
	if got := scores.saved[0]; got != (recordedScore{"fake", 700, 2, 6}) {
		t.Errorf("saved %+v", got)
	}

	// Restart, then a second game over is recorded too.
	g.state = core.GameState{Level: 1}
	m = tickModel(t, m)
	g.state = core.GameState{Score: 100, Level: 1, Lines: 1, GameOver: true}
	m = tickModel(t, m)
	if len(scores.saved) != 2 {
		t.Errorf("expected 2 saved scores, got %d", len(scores.saved))
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	g := &fakeGame{state: core.GameState{GameOver: true}}
	scores := &fakeScores{}
	m := newTestModel(g, scores)

	tickModel(t, m)
	if len(scores.saved) != 0 {
		t.Errorf("zero score should not be recorded")
	}
}

func TestModelForwardsKeys(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(Model)
	m = tickModel(t, m)

	if !g.lastIn.Has(core.ActionLeft) {
		t.Error("left press should reach the game")
	}

	// The frame is cleared after each tick.
	tickModel(t, m)
	if g.lastIn.Has(core.ActionLeft) {
		t.Error("input should not leak into the next tick")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&fakeGame{}, nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).Quitting() {
		t.Error("esc should quit")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	if g.resets != 1 {
		t.Errorf("resize must not reset the game (resets=%d)", g.resets)
	}
	if g.w != 100 || g.h != 39 {
		t.Errorf("game size = %dx%d, want 100x39", g.w, g.h)
	}

	view := m.View()
	if !strings.Contains(view, "fake game") {
		t.Error("view should contain the game screen")
	}
	if !strings.Contains(view, "rotate") {
		t.Error("view should contain the help footer")
	}
}
