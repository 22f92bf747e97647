// Package config provides YAML-based configuration loading for the game
// rules, input timing and display settings.
package config

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Rules   TetrisRules   `yaml:"rules"`
	Input   TetrisInput   `yaml:"input"`
	Display TetrisDisplay `yaml:"display"`
}

// TetrisRules defines scoring and speed progression.
type TetrisRules struct {
	LineScores        map[int]int `yaml:"line_scores"` // Rows cleared at once -> points
	LevelUpScore      int         `yaml:"level_up_score"`
	InitialFallSpeed  float64     `yaml:"initial_fall_speed"` // Seconds per row at level 1
	MinFallSpeed      float64     `yaml:"min_fall_speed"`
	SpeedIncreaseRate float64     `yaml:"speed_increase_rate"` // Seconds shaved per level
}

// TetrisInput defines key repeat cooldowns.
type TetrisInput struct {
	MoveDelayMs int `yaml:"move_delay_ms"`
	DropDelayMs int `yaml:"drop_delay_ms"`
}

// TetrisDisplay defines HUD settings.
type TetrisDisplay struct {
	MessageDurationMs int `yaml:"message_duration_ms"`
}

// Validate reports the first setting that would break the game loop.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Rules.LevelUpScore <= 0:
		return errInvalid("rules.level_up_score", "must be positive")
	case c.Rules.InitialFallSpeed <= 0:
		return errInvalid("rules.initial_fall_speed", "must be positive")
	case c.Rules.MinFallSpeed <= 0:
		return errInvalid("rules.min_fall_speed", "must be positive")
	case c.Rules.MinFallSpeed > c.Rules.InitialFallSpeed:
		return errInvalid("rules.min_fall_speed", "must not exceed initial_fall_speed")
	case c.Rules.SpeedIncreaseRate < 0:
		return errInvalid("rules.speed_increase_rate", "must not be negative")
	case c.Input.MoveDelayMs < 0 || c.Input.DropDelayMs < 0:
		return errInvalid("input", "delays must not be negative")
	case c.Display.MessageDurationMs < 0:
		return errInvalid("display.message_duration_ms", "must not be negative")
	}
	for n := range c.Rules.LineScores {
		if n < 0 || n > 4 {
			return errInvalid("rules.line_scores", "keys must be 0-4")
		}
	}
	return nil
}
