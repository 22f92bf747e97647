package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseTetris(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults: %v", err)
	}
	want := DefaultTetrisConfig()

	if cfg.Rules.LevelUpScore != want.Rules.LevelUpScore {
		t.Errorf("LevelUpScore = %d, want %d", cfg.Rules.LevelUpScore, want.Rules.LevelUpScore)
	}
	if cfg.Rules.InitialFallSpeed != want.Rules.InitialFallSpeed {
		t.Errorf("InitialFallSpeed = %v, want %v", cfg.Rules.InitialFallSpeed, want.Rules.InitialFallSpeed)
	}
	if cfg.Input.MoveDelayMs != want.Input.MoveDelayMs || cfg.Input.DropDelayMs != want.Input.DropDelayMs {
		t.Errorf("Input = %+v, want %+v", cfg.Input, want.Input)
	}
	if cfg.Display.MessageDurationMs != want.Display.MessageDurationMs {
		t.Errorf("MessageDurationMs = %d, want %d", cfg.Display.MessageDurationMs, want.Display.MessageDurationMs)
	}
	for n, pts := range want.Rules.LineScores {
		if cfg.Rules.LineScores[n] != pts {
			t.Errorf("LineScores[%d] = %d, want %d", n, cfg.Rules.LineScores[n], pts)
		}
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("rules:\n  level_up_score: 1000\ninput:\n  move_delay_ms: 80\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Rules.LevelUpScore != 1000 {
		t.Errorf("LevelUpScore = %d, want 1000", cfg.Rules.LevelUpScore)
	}
	if cfg.Input.MoveDelayMs != 80 {
		t.Errorf("MoveDelayMs = %d, want 80", cfg.Input.MoveDelayMs)
	}
	// Keys the file does not name keep their defaults.
	if cfg.Input.DropDelayMs != 50 {
		t.Errorf("DropDelayMs = %d, want 50", cfg.Input.DropDelayMs)
	}
	if cfg.Rules.LineScores[4] != 1000 {
		t.Errorf("LineScores[4] = %d, want 1000", cfg.Rules.LineScores[4])
	}
}

func TestLoadTetrisLineScoresReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("rules:\n  line_scores:\n    1: 40\n    4: 1200\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if len(cfg.Rules.LineScores) != 2 {
		t.Errorf("len(LineScores) = %d, want 2", len(cfg.Rules.LineScores))
	}
	if cfg.Rules.LineScores[1] != 40 || cfg.Rules.LineScores[4] != 1200 {
		t.Errorf("LineScores = %v", cfg.Rules.LineScores)
	}
}

func TestLoadTetrisErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"malformed", "rules: [", false},
		{"zero level score", "rules:\n  level_up_score: 0\n", true},
		{"min above initial", "rules:\n  initial_fall_speed: 0.2\n  min_fall_speed: 0.3\n", true},
		{"negative delay", "input:\n  drop_delay_ms: -5\n", true},
		{"bad line count", "rules:\n  line_scores:\n    7: 100\n", true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadTetris(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	if _, err := LoadTetris(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadTetrisUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".blockfall", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tetris.yaml"), []byte("display:\n  message_duration_ms: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Display.MessageDurationMs != 500 {
		t.Errorf("MessageDurationMs = %d, want 500", cfg.Display.MessageDurationMs)
	}
}
