package main

import (
	"github.com/spf13/cobra"

	"github.com/aoe2stat/aoe2stat-go/internal/dashboard"
	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

var (
	// serve flags
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve [replay-file]",
	Short: "Serve the replay dashboard in a browser",
	Long: `Run the metrics dashboard as a local web server.

The dashboard shows APM, unit production, town center idle time,
resource and score charts for one replay at a time. Replays can be
opened from the dashboard itself or preloaded from the command line.

Configuration is read from defaults, then the YAML file named by
AOE2STAT_CONFIG, then AOE2STAT_* environment variables.

Examples:
  # Serve on the configured address (default :8420)
  aoe2stat serve

  # Preload the newest replay from the save directory
  aoe2stat serve --save-dir ~/aoe2/savegame

  # Preload a specific replay on another port
  aoe2stat serve --addr :9000 game.aoe2record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := dashboard.LoadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if rootDecoder != "" {
		cfg.Decoder = rootDecoder
	}
	if rootSaveDir != "" {
		cfg.SaveDir = rootSaveDir
	}

	ctx, stop := signalContext()
	defer stop()

	log := logger()
	srv := dashboard.NewServer(cfg, log)

	// Preload: explicit file argument, else the newest saved replay when
	// a save dir is known. A missing save dir is not fatal here; the
	// dashboard can open replays interactively.
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if p, err := aoe2stat.LatestReplay(cfg.SaveDir); err == nil {
		path = p
	}
	if path != "" {
		m, err := aoe2stat.Load(ctx, path, loadOptions(log)...)
		if err != nil {
			if len(args) > 0 {
				return err
			}
			log.Warn("could not preload latest replay", "path", path, "error", err)
		} else {
			srv.SetMatch(path, m)
		}
	}

	return srv.ListenAndServe(ctx)
}
