package tetris

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"
)

// Phase is the session's top-level state.
type Phase string

const (
	PhaseRunning  Phase = "running"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
)

// Session events.
const (
	eventPause   = "pause"
	eventResume  = "resume"
	eventTopOut  = "top_out"
	eventRestart = "restart"
	eventRestore = "restore"
)

func phaseTransitions() fsm.Events {
	return fsm.Events{
		{Name: eventPause, Src: []string{string(PhaseRunning)}, Dst: string(PhasePaused)},
		{Name: eventResume, Src: []string{string(PhasePaused)}, Dst: string(PhaseRunning)},
		{Name: eventTopOut, Src: []string{string(PhaseRunning)}, Dst: string(PhaseGameOver)},
		{Name: eventRestart, Src: []string{string(PhaseGameOver)}, Dst: string(PhaseRunning)},

		// A restored snapshot always resumes play.
		{Name: eventRestore, Src: []string{string(PhasePaused), string(PhaseGameOver)}, Dst: string(PhaseRunning)},
	}
}

func phaseCallbacks(logger *log.Logger) fsm.Callbacks {
	return fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			logger.Debug("phase changed", "event", e.Event, "from", e.Src, "to", e.Dst)
		},
	}
}

func newPhaseMachine(logger *log.Logger) *fsm.FSM {
	return fsm.NewFSM(string(PhaseRunning), phaseTransitions(), phaseCallbacks(logger))
}

// fire triggers a phase event if it is valid from the current phase.
// Returns true if the phase changed.
func (s *Session) fire(event string) bool {
	if !s.machine.Can(event) {
		return false
	}
	if err := s.machine.Event(context.Background(), event); err != nil {
		s.logger.Warn("phase event rejected", "event", event, "error", err)
		return false
	}
	return true
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase {
	return Phase(s.machine.Current())
}

// Running reports whether the simulation is advancing.
func (s *Session) Running() bool {
	return s.machine.Is(string(PhaseRunning))
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.machine.Is(string(PhasePaused))
}

// GameOver reports whether the last spawned piece topped out.
func (s *Session) GameOver() bool {
	return s.machine.Is(string(PhaseGameOver))
}

// TogglePause switches between running and paused. Ignored after game over.
func (s *Session) TogglePause() {
	if s.Paused() {
		s.fire(eventResume)
		return
	}
	s.fire(eventPause)
}
