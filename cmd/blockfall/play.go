package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/savegame"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagSave     string
	flagSlot     string
	flagSaveDir  string
	flagNoScores bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a new game.

Controls:
  Left/Right  - Move
  Up          - Rotate
  Down        - Soft drop
  Space       - Hard drop
  P           - Pause
  R           - Restart (after game over)
  Ctrl+S      - Save game
  Ctrl+L      - Load game
  Esc/Q       - Quit

Save backends:
  file - JSON file in --save-dir (default ~/.blockfall/save.json)
  db   - save slot in the scores database (--db)

Examples:
  blockfall play
  blockfall play --seed 42 --fps 30
  blockfall play --save db --slot evening
  blockfall play --config ./my-rules.yaml --log-file blockfall.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags on cmd; the root command plays too.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSave, "save", "file", "Save backend: file or db")
	cmd.Flags().StringVar(&flagSlot, "slot", tetris.DefaultSlot, "Save slot name")
	cmd.Flags().StringVar(&flagSaveDir, "save-dir", "", "Directory for file saves (default ~/.blockfall)")
	cmd.Flags().BoolVar(&flagNoScores, "no-scores", false, "Do not record high scores")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "error", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	saves, err := openSaveStore(flagSave, flagSaveDir, store)
	if err != nil {
		return err
	}

	game := tetris.New(tetris.Options{
		ConfigPath: flagConfig,
		Saves:      saves,
		Slot:       flagSlot,
		Logger:     logger,
	})

	var scores tui.ScoreRecorder
	if store != nil && !flagNoScores {
		scores = store
	}

	logger.Info("starting game", "seed", cfg.Seed, "fps", cfg.TickRate, "save", flagSave, "slot", flagSlot)
	if err := tui.Run(game, scores, logger, cfg); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// openSaveStore picks the snapshot backend. A db backend without a database
// leaves the game without saves rather than failing to start.
func openSaveStore(kind, dir string, store *storage.Store) (tetris.SaveStore, error) {
	switch kind {
	case "file", "":
		fs, err := savegame.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case "db":
		if store == nil {
			return nil, nil
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown --save backend %q (want file or db)", kind)
	}
}
