package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aoe2stat/aoe2stat-go/internal/downloader"
	"github.com/aoe2stat/aoe2stat-go/internal/library"
	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

var (
	// list flags
	listLibraryPath string
	listAdd         string
	listRemove      string
	listFormat      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage the local replay library",
	Long: `List, add and remove entries in the local replay library.

The library is a SQLite catalog of analyzed replays (path, map,
duration, players). It lives in the user config directory unless
--library points elsewhere.

Examples:
  # Show cataloged replays
  aoe2stat list

  # Catalog a replay
  aoe2stat list --add game.aoe2record

  # Remove an entry
  aoe2stat list --remove game.aoe2record`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listLibraryPath, "library", "",
		"Library database path (default: user config dir)")
	listCmd.Flags().StringVar(&listAdd, "add", "",
		"Decode this replay and add it to the library")
	listCmd.Flags().StringVar(&listRemove, "remove", "",
		"Remove this replay path from the library")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "pretty",
		"Output format: json, jsonl, pretty")
}

// libraryPath resolves the catalog location.
func libraryPath() (string, error) {
	if listLibraryPath != "" {
		return listLibraryPath, nil
	}
	confDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	dir := filepath.Join(confDir, "aoe2stat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "library.db"), nil
}

func runList(cmd *cobra.Command, args []string) error {
	if !ValidFormats[listFormat] {
		return fmt.Errorf("invalid format %q: must be one of: json, jsonl, pretty", listFormat)
	}

	path, err := libraryPath()
	if err != nil {
		return err
	}
	lib, err := library.Open(path)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer lib.Close()

	ctx, stop := signalContext()
	defer stop()

	log := logger()

	if listAdd != "" {
		m, err := aoe2stat.Load(ctx, listAdd, loadOptions(log)...)
		if err != nil {
			return err
		}
		// Downloaded replays carry their game id in the filename.
		gameID := downloader.GameIDFromFilename(listAdd)
		if _, err := lib.Add(ctx, gameID, listAdd, m); err != nil {
			return err
		}
		log.Info("replay cataloged", "path", listAdd, "game_id", gameID, "map", m.MapName)
	}

	if listRemove != "" {
		if err := lib.Remove(ctx, listRemove); err != nil {
			return err
		}
		log.Info("replay removed", "path", listRemove)
	}

	records, err := lib.List(ctx)
	if err != nil {
		return err
	}

	switch listFormat {
	case "json":
		return OutputJSON(records, os.Stdout)
	case "jsonl":
		for _, r := range records {
			if err := OutputJSONL(r, os.Stdout); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, r := range records {
			line := r.Path
			if r.GameID != "" {
				line += "  (game " + r.GameID + ")"
			}
			fmt.Printf("%s\n  map: %s  duration: %d:%02d  players: %v  added: %s\n",
				line, r.MapName,
				int(r.DurationSeconds)/60, int(r.DurationSeconds)%60,
				r.Players, r.AddedAt.Format("2006-01-02 15:04"))
		}
		if len(records) == 0 {
			fmt.Println("library is empty")
		}
		return nil
	}
}
