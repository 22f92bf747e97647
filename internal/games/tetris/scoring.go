package tetris

import "math"

// Rules holds the scoring and speed constants. The zero value is not
// useful; start from DefaultRules.
type Rules struct {
	LineScores        [5]int  // Points for clearing 0..4 rows at once
	LevelUpScore      int     // Score needed per level
	InitialFallSpeed  float64 // Seconds per gravity step at level 1
	MinFallSpeed      float64 // Fastest allowed gravity step
	SpeedIncreaseRate float64 // Seconds removed per level
}

// DefaultRules returns the standard scoring table and speed curve.
func DefaultRules() Rules {
	return Rules{
		LineScores:        [5]int{0, 100, 300, 600, 1000},
		LevelUpScore:      500,
		InitialFallSpeed:  0.5,
		MinFallSpeed:      0.1,
		SpeedIncreaseRate: 0.05,
	}
}

// ScoreDelta returns the points for clearing n rows with one lock.
// Counts outside 0..4 score nothing.
func (r Rules) ScoreDelta(n int) int {
	if n < 0 || n >= len(r.LineScores) {
		return 0
	}
	return r.LineScores[n]
}

// LevelFor derives the level from the cumulative score.
func (r Rules) LevelFor(score int) int {
	if score < 0 || r.LevelUpScore <= 0 {
		return 1
	}
	return score/r.LevelUpScore + 1
}

// FallSpeedFor returns seconds per gravity step for level, never below
// MinFallSpeed.
func (r Rules) FallSpeedFor(level int) float64 {
	if level < 1 {
		level = 1
	}
	speed := r.InitialFallSpeed - float64(level-1)*r.SpeedIncreaseRate
	// Round away float noise such as 0.5-0.05*3 = 0.35000000000000003.
	speed = math.Round(speed*1e9) / 1e9
	return math.Max(r.MinFallSpeed, speed)
}
