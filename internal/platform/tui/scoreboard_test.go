package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/storage"
)

type fakeSource struct {
	scores []storage.ScoreEntry
	stats  *storage.GameStats
	err    error
}

func (s fakeSource) TopScores(string, int) ([]storage.ScoreEntry, error) {
	return s.scores, s.err
}

func (s fakeSource) GetGameStats(string) (*storage.GameStats, error) {
	return s.stats, nil
}

func TestScoreboardRows(t *testing.T) {
	when := time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)
	src := fakeSource{
		scores: []storage.ScoreEntry{
			{Score: 1200, Level: 3, Lines: 11, CreatedAt: when},
			{Score: 300, Level: 1, Lines: 2, CreatedAt: when},
		},
		stats: &storage.GameStats{GamesCount: 2, HighScore: 1200, AvgScore: 750, BestLevel: 3, TotalLines: 13},
	}

	m := NewScoreboardModel(src, "tetris", "Blockfall", 100, 30)
	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "1200" || rows[0][2] != "3" || rows[0][3] != "11" {
		t.Errorf("first row = %v", rows[0])
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES - Blockfall", "Stats", "Best:   1200", "Lines:  13"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestScoreboardEmptyAndError(t *testing.T) {
	m := NewScoreboardModel(fakeSource{}, "tetris", "Blockfall", 60, 20)
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("expected empty message")
	}

	m = NewScoreboardModel(fakeSource{err: errors.New("db locked")}, "tetris", "Blockfall", 60, 20)
	if !strings.Contains(m.View(), "db locked") {
		t.Error("expected load error in view")
	}

	m = NewScoreboardModel(nil, "tetris", "Blockfall", 60, 20)
	if len(m.table.Rows()) != 0 {
		t.Error("nil source should yield no rows")
	}
}
