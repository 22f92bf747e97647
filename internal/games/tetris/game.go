package tetris

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

// GameID identifies the game in score storage.
const GameID = "tetris"

// Options configures a Game. All fields are optional.
type Options struct {
	ConfigPath string      // Custom YAML config, see config.LoadTetris
	Saves      SaveStore   // Where Ctrl+S / Ctrl+L snapshots go
	Slot       string      // Save slot name
	Logger     *log.Logger // Defaults to a discarding logger
}

// Game adapts a Session to the platform's fixed-tick loop and screen buffer.
type Game struct {
	opts    Options
	cfg     config.TetrisConfig
	session *Session
	tick    uint64
	dt      time.Duration

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game. Call Reset before stepping it.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{opts: opts}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockfall"
}

// Reset loads the configuration and starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.LoadTetris(g.opts.ConfigPath)
	if err != nil {
		g.opts.Logger.Warn("using default config", "error", err)
		gameCfg = config.DefaultTetrisConfig()
	}
	g.cfg = gameCfg

	g.tick = 0
	g.dt = cfg.TickInterval()
	rules := RulesFromConfig(gameCfg)
	timing := TimingFromConfig(gameCfg)
	g.session = NewSession(SessionConfig{
		Rules:  &rules,
		Timing: &timing,
		Rand:   NewRandomizer(cfg.Seed),
		Logger: g.opts.Logger,
		Saves:  g.opts.Saves,
		Slot:   g.opts.Slot,
	})
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if in.Has(core.ActionQuit) {
		return core.StepResult{State: g.State(), Quit: true}
	}

	// A too-small window freezes play; only pause and save get through.
	if g.tooSmall {
		if in.Has(core.ActionPause) {
			g.session.TogglePause()
		}
		if in.Has(core.ActionSave) {
			g.session.Save(context.Background())
		}
		return core.StepResult{State: g.State()}
	}

	g.session.Update(g.dt, in)
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		Lines:    g.session.Lines(),
		GameOver: g.session.GameOver(),
		Paused:   g.session.Paused() || g.tooSmall,
	}
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

// RulesFromConfig converts the YAML rules section.
func RulesFromConfig(cfg config.TetrisConfig) Rules {
	r := DefaultRules()
	if len(cfg.Rules.LineScores) > 0 {
		// A configured table replaces the defaults; missing counts score 0.
		r.LineScores = [5]int{}
		for n, pts := range cfg.Rules.LineScores {
			if n >= 0 && n < len(r.LineScores) {
				r.LineScores[n] = pts
			}
		}
	}
	r.LevelUpScore = cfg.Rules.LevelUpScore
	r.InitialFallSpeed = cfg.Rules.InitialFallSpeed
	r.MinFallSpeed = cfg.Rules.MinFallSpeed
	r.SpeedIncreaseRate = cfg.Rules.SpeedIncreaseRate
	return r
}

// TimingFromConfig converts the YAML input and display sections.
func TimingFromConfig(cfg config.TetrisConfig) Timing {
	return Timing{
		MoveDelay:       time.Duration(cfg.Input.MoveDelayMs) * time.Millisecond,
		DropDelay:       time.Duration(cfg.Input.DropDelayMs) * time.Millisecond,
		MessageDuration: time.Duration(cfg.Display.MessageDurationMs) * time.Millisecond,
	}
}
