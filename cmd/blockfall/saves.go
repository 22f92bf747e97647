package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/savegame"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagSavesBackend string
	flagSavesDir     string
	flagSavesDelete  string
)

// saveSlots is what the saves command needs from a save backend.
type saveSlots interface {
	ListSaves(ctx context.Context) ([]savegame.SaveInfo, error)
	DeleteSave(ctx context.Context, slot string) error
}

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List or delete saved games",
	Long: `List the occupied save slots, or delete one.

Examples:
  blockfall saves
  blockfall saves --save db
  blockfall saves --delete evening
  blockfall saves --save db --delete ssh:alice`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagSavesBackend, "save", "file", "Save backend: file or db")
	savesCmd.Flags().StringVar(&flagSavesDir, "save-dir", "", "Directory for file saves (default ~/.blockfall)")
	savesCmd.Flags().StringVar(&flagSavesDelete, "delete", "", "Delete this slot instead of listing")
}

func runSaves(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var slots saveSlots
	switch flagSavesBackend {
	case "file", "":
		fs, err := savegame.NewFileStore(flagSavesDir)
		if err != nil {
			return err
		}
		slots = fs
	case "db":
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("error opening database: %w", err)
		}
		defer store.Close()
		slots = store
	default:
		return fmt.Errorf("unknown --save backend %q (want file or db)", flagSavesBackend)
	}

	if flagSavesDelete != "" {
		if err := slots.DeleteSave(ctx, flagSavesDelete); err != nil {
			return err
		}
		fmt.Printf("Deleted save %q.\n", flagSavesDelete)
		return nil
	}

	saves, err := slots.ListSaves(ctx)
	if err != nil {
		return fmt.Errorf("error listing saves: %w", err)
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return nil
	}

	fmt.Printf("  %-20s  %-8s  %s\n", "Slot", "Score", "Saved")
	fmt.Printf("  %-20s  %-8s  %s\n", "----", "-----", "-----")
	for _, s := range saves {
		fmt.Printf("  %-20s  %-8d  %s\n", s.Slot, s.Score, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
