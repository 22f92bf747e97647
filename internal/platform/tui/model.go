package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is what the model drives: a fixed-tick simulation that draws into a
// screen buffer.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Resize(w, h int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// ScoreRecorder records finished games. *storage.Store implements it.
type ScoreRecorder interface {
	SaveScore(gameID string, score, level, lines int) (int64, error)
}

// footerHeight is the number of rows reserved below the game for help.
const footerHeight = 1

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	scores     ScoreRecorder
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game. scores and
// logger may be nil.
func NewModel(game Game, scores ScoreRecorder, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	km := NewKeyMapper()
	h := help.New()
	h.Width = cfg.ScreenW

	gameH := max(cfg.ScreenH-footerHeight, 0)
	cfg.ScreenH = gameH

	// Reset here rather than in Init: Init has a value receiver and the
	// game must be ready before the first View.
	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameH),
		scores:     scores,
		logger:     logger,
		config:     cfg,
		keyMapper:  km,
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "f12" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The game keeps its state;
// only the layout changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	gameH := max(msg.Height-footerHeight, 0)
	m.config.ScreenW = msg.Width
	m.config.ScreenH = gameH
	m.screen.Resize(msg.Width, gameH)
	m.help.Width = msg.Width
	m.game.Resize(msg.Width, gameH)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	wasOver := m.gameState.GameOver
	m.gameState = result.State

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	// A restart clears the game over flag; the next game over is recorded.
	if wasOver && !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.recordScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickInterval())
}

// recordScore stores the finished game. Failures are logged; play goes on.
func (m Model) recordScore() {
	st := m.gameState
	if m.scores == nil || st.Score <= 0 {
		return
	}
	if _, err := m.scores.SaveScore(m.game.ID(), st.Score, st.Level, st.Lines); err != nil {
		m.logger.Warn("could not save score", "error", err)
		return
	}
	m.logger.Info("score saved", "score", st.Score, "level", st.Level, "lines", st.Lines)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given model.
func Run(game Game, scores ScoreRecorder, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, scores, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Quitting() {
		state := m.game.State()
		m.logger.Info("player quit", "game", m.game.ID(), "score", state.Score, "game_over", state.GameOver)
	}
	return nil
}
