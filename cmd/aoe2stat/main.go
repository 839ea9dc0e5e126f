package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aoe2stat/aoe2stat-go/internal/downloader"
	"github.com/aoe2stat/aoe2stat-go/internal/library"
	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

var (
	// Version information (set by ldflags)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	verbose     bool
	rootDecoder string
	rootSaveDir string

	// root flags
	rootFormat   string
	rootDownload string
	rootDest     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "aoe2stat [replay-file]",
	Short: "Age of Empires II: DE replay analyzer",
	Long: `aoe2stat decodes Age of Empires II: Definitive Edition recorded
games and extracts match statistics.

Given a replay file (or a game id to download), it prints a match
summary as JSON. Subcommands compute metric time series, serve a
browser dashboard, and watch the save directory for new games.

Decoding the binary .aoe2record format is delegated to an external
decoder command (see the AOE2STAT_DECODER environment variable);
pre-decoded .json match documents are read directly.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true, // Don't show usage on error
	RunE:         runRoot,
}

func init() {
	// Global flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&rootDecoder, "decoder", "",
		"External replay decoder command (default: $AOE2STAT_DECODER or mgz-json)")
	rootCmd.PersistentFlags().StringVarP(&rootSaveDir, "save-dir", "d", "",
		"Replay save directory (auto-detected if not specified)")

	rootCmd.Flags().StringVarP(&rootFormat, "format", "f", "json",
		"Output format: json, jsonl, pretty")
	rootCmd.Flags().StringVar(&rootDownload, "download", "",
		"Download the replay with this game id before analyzing")
	rootCmd.Flags().StringVar(&rootDest, "dest", ".",
		"Destination directory for downloaded replays")

	// Add subcommands
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aoe2stat %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// logger returns the CLI logger, debug-level when --verbose is set.
func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// signalContext returns a context canceled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
}

// loadOptions builds library options from the global flags.
func loadOptions(log *slog.Logger) []aoe2stat.LoadOption {
	opts := []aoe2stat.LoadOption{aoe2stat.WithLogger(log)}
	if rootDecoder != "" {
		opts = append(opts, aoe2stat.WithDecoderCommand(rootDecoder))
	}
	return opts
}

// resolveReplay turns the CLI inputs into a replay file path: an explicit
// argument, a downloaded game id, or the newest file in the save dir.
func resolveReplay(ctx context.Context, args []string, log *slog.Logger) (string, error) {
	if rootDownload != "" {
		log.Debug("downloading replay", "game_id", rootDownload, "dest", rootDest)
		return downloader.New().Download(ctx, rootDownload, rootDest)
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return aoe2stat.LatestReplay(rootSaveDir)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !ValidFormats[rootFormat] {
		return fmt.Errorf("invalid format %q: must be one of: json, jsonl, pretty", rootFormat)
	}

	ctx, stop := signalContext()
	defer stop()

	log := logger()
	path, err := resolveReplay(ctx, args, log)
	if err != nil {
		return err
	}

	m, err := aoe2stat.Load(ctx, path, loadOptions(log)...)
	if err != nil {
		return err
	}

	// Downloaded replays go into the local library so `list` finds them.
	if rootDownload != "" {
		if err := catalogReplay(ctx, rootDownload, path, m); err != nil {
			log.Warn("catalog downloaded replay", "path", path, "error", err)
		}
	}

	return OutputSummary(rootFormat, aoe2stat.Summarize(m, path), os.Stdout)
}

// catalogReplay records a downloaded replay in the local library.
func catalogReplay(ctx context.Context, gameID, path string, m *aoe2stat.Match) error {
	libPath, err := libraryPath()
	if err != nil {
		return err
	}
	lib, err := library.Open(libPath)
	if err != nil {
		return err
	}
	defer lib.Close()

	_, err = lib.Add(ctx, gameID, path, m)
	return err
}
