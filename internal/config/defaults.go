package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default game configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Rules: TetrisRules{
			LineScores: map[int]int{
				0: 0,
				1: 100,
				2: 300,
				3: 600,
				4: 1000,
			},
			LevelUpScore:      500,
			InitialFallSpeed:  0.5,
			MinFallSpeed:      0.1,
			SpeedIncreaseRate: 0.05,
		},
		Input: TetrisInput{
			MoveDelayMs: 100,
			DropDelayMs: 50,
		},
		Display: TetrisDisplay{
			MessageDurationMs: 2000,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
