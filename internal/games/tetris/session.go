package tetris

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Timing holds the input-shaping delays and the status message lifetime.
type Timing struct {
	MoveDelay       time.Duration // Cooldown between repeated left/right shifts
	DropDelay       time.Duration // Cooldown between repeated soft-drop steps
	MessageDuration time.Duration // How long a status message stays visible
}

// DefaultTiming returns the standard input repeat delays.
func DefaultTiming() Timing {
	return Timing{
		MoveDelay:       100 * time.Millisecond,
		DropDelay:       50 * time.Millisecond,
		MessageDuration: 2 * time.Second,
	}
}

// SessionConfig wires a session to its collaborators. Nil fields fall back
// to defaults; a non-nil Rules or Timing is used as given, zero delays
// included.
type SessionConfig struct {
	Rules  *Rules
	Timing *Timing
	Rand   Randomizer
	Logger *log.Logger
	Saves  SaveStore
	Slot   string
}

// Session owns the board, the falling and next pieces, and all scoring and
// timing state. Every mutation goes through its methods; it is not safe for
// concurrent use.
type Session struct {
	rules   Rules
	timing  Timing
	rng     Randomizer
	logger  *log.Logger
	machine *fsm.FSM
	saves   SaveStore
	slot    string

	board   *Board
	current *Piece
	next    *Piece

	score     int
	level     int
	lines     int
	fallSpeed float64
	fallTimer time.Duration

	clock    time.Duration
	lastFire map[core.Action]time.Duration

	status      string
	statusUntil time.Duration
}

// NewSession creates a running session with fresh pieces.
func NewSession(cfg SessionConfig) *Session {
	rules := DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	timing := DefaultTiming()
	if cfg.Timing != nil {
		timing = *cfg.Timing
	}
	if cfg.Rand == nil {
		cfg.Rand = NewRandomizer(time.Now().UnixNano())
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Slot == "" {
		cfg.Slot = DefaultSlot
	}

	s := &Session{
		rules:  rules,
		timing: timing,
		rng:    cfg.Rand,
		logger: cfg.Logger,
		saves:  cfg.Saves,
		slot:   cfg.Slot,
		board:  NewBoard(),
	}
	s.machine = newPhaseMachine(s.logger)
	s.Reset()
	return s
}

// Reset empties the board, zeroes score and timers, deals new current and
// next pieces and returns to the running phase.
func (s *Session) Reset() {
	s.board.Reset()
	s.score = 0
	s.level = 1
	s.lines = 0
	s.fallSpeed = s.rules.InitialFallSpeed
	s.fallTimer = 0
	s.lastFire = make(map[core.Action]time.Duration)
	s.current = SpawnPiece(s.rng, nil)
	s.next = SpawnPiece(s.rng, nil)
	if !s.Running() {
		s.machine.SetState(string(PhaseRunning))
	}
}

// Restart starts a new game after game over. Ignored in other phases.
func (s *Session) Restart() bool {
	if !s.fire(eventRestart) {
		return false
	}
	s.logger.Info("game restarted")
	s.Reset()
	return true
}

// Update advances the session by dt using the intents in frame.
//
// Order within a tick: pause/restart/save/load, then (only while running)
// fall timer, left/right shifts, hard drop, soft drop, gravity, rotation.
func (s *Session) Update(dt time.Duration, frame core.InputFrame) {
	s.clock += dt
	if s.status != "" && s.clock >= s.statusUntil {
		s.status = ""
	}

	if frame.Has(core.ActionPause) {
		s.TogglePause()
	}
	if frame.Has(core.ActionRestart) && s.GameOver() {
		s.Restart()
	}
	if frame.Has(core.ActionSave) {
		s.Save(context.Background())
	}
	if frame.Has(core.ActionLoad) {
		s.Load(context.Background())
	}

	if !s.Running() {
		return
	}

	s.fallTimer += dt

	if frame.IsHeld(core.ActionLeft) && s.ready(core.ActionLeft, s.timing.MoveDelay) {
		s.current.MoveLeft(s.board)
	}
	if frame.IsHeld(core.ActionRight) && s.ready(core.ActionRight, s.timing.MoveDelay) {
		s.current.MoveRight(s.board)
	}

	if frame.Has(core.ActionHardDrop) {
		s.HardDrop()
		if !s.Running() {
			return
		}
	}

	if frame.IsHeld(core.ActionSoftDrop) && s.ready(core.ActionSoftDrop, s.timing.DropDelay) {
		s.Step()
		if !s.Running() {
			return
		}
	}

	if s.fallTimer >= s.fallInterval() {
		s.Step()
		s.fallTimer = 0
		if !s.Running() {
			return
		}
	}

	if frame.Has(core.ActionRotate) {
		s.current.Rotate(s.board)
	}
}

// ready reports whether a held action may fire again and records the fire.
// An action that has never fired is always ready.
func (s *Session) ready(a core.Action, cooldown time.Duration) bool {
	last, fired := s.lastFire[a]
	if fired && s.clock-last < cooldown {
		return false
	}
	s.lastFire[a] = s.clock
	return true
}

// fallInterval is the gravity period as a duration.
func (s *Session) fallInterval() time.Duration {
	return time.Duration(s.fallSpeed * float64(time.Second))
}

// Step moves the current piece down one row, locking it when grounded.
// Returns the result of the move.
func (s *Session) Step() MoveResult {
	if !s.Running() {
		return Grounded
	}
	result := s.current.MoveDown(s.board)
	if result == Grounded {
		s.lockAndSpawn()
	}
	return result
}

// HardDrop drops the current piece to the floor and locks it.
func (s *Session) HardDrop() {
	if !s.Running() {
		return
	}
	s.current.Drop(s.board)
	s.lockAndSpawn()
}

// lockAndSpawn commits the current piece, scores any cleared rows, promotes
// the next piece and tops out if it cannot be placed.
func (s *Session) lockAndSpawn() {
	cleared := s.current.Lock(s.board)
	s.applyClear(cleared)

	s.current = s.next
	s.next = SpawnPiece(s.rng, nil)

	if s.current.Collides(s.board, s.current.X, s.current.Y) {
		s.fire(eventTopOut)
		s.logger.Info("game over", "score", s.score, "level", s.level, "lines", s.lines)
	}
}

// applyClear updates score, level and fall speed for n cleared rows.
func (s *Session) applyClear(n int) {
	if n == 0 {
		return
	}
	s.lines += n
	s.score += s.rules.ScoreDelta(n)

	oldLevel := s.level
	s.level = s.rules.LevelFor(s.score)
	if s.level > oldLevel {
		s.fallSpeed = s.rules.FallSpeedFor(s.level)
		s.logger.Info("level up", "level", s.level, "fall_speed", s.fallSpeed)
	}
	s.logger.Debug("rows cleared", "rows", n, "score", s.score)
}

// setStatus shows a transient message for the configured duration.
func (s *Session) setStatus(msg string) {
	s.status = msg
	s.statusUntil = s.clock + s.timing.MessageDuration
}

// Board returns the well. Callers must treat it as read-only.
func (s *Session) Board() *Board { return s.board }

// Current returns the falling piece. Callers must treat it as read-only.
func (s *Session) Current() *Piece { return s.current }

// Next returns the preview piece. Callers must treat it as read-only.
func (s *Session) Next() *Piece { return s.next }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.score }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Lines returns the number of rows cleared this game.
func (s *Session) Lines() int { return s.lines }

// FallSpeed returns seconds per gravity step.
func (s *Session) FallSpeed() float64 { return s.fallSpeed }

// Status returns the transient status message, or "" when none is showing.
func (s *Session) Status() string { return s.status }
