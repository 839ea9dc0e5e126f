package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aoe2stat/aoe2stat-go/internal/savefinder"
	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

var (
	// watch flags
	watchFormat string
	watchSettle time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the save directory for finished games",
	Long: `Watch the replay save directory and summarize each new recorded
game as it appears.

The game writes the replay file when the match ends; watch waits for
the file to settle (no writes for the --settle interval) before
decoding it, then prints one summary per game.

Examples:
  # Watch the auto-detected save directory
  aoe2stat watch

  # Pipe new game summaries to jq
  aoe2stat watch | jq '.players[] | select(.winner).name'

  # Human-readable output
  aoe2stat watch --format pretty`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 2*time.Second,
		"How long a replay file must be quiet before decoding")
}

// replayWatcher debounces filesystem events per replay file and emits
// the path once the file has settled.
type replayWatcher struct {
	settle time.Duration
	out    chan string

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newReplayWatcher(settle time.Duration) *replayWatcher {
	return &replayWatcher{
		settle: settle,
		out:    make(chan string, 8),
		timers: make(map[string]*time.Timer),
	}
}

// note records a write to path, restarting its settle timer.
func (rw *replayWatcher) note(path string) {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if t, ok := rw.timers[path]; ok {
		t.Reset(rw.settle)
		return
	}
	rw.timers[path] = time.AfterFunc(rw.settle, func() {
		rw.mu.Lock()
		delete(rw.timers, path)
		rw.mu.Unlock()
		rw.out <- path
	})
}

func (rw *replayWatcher) stop() {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	for path, t := range rw.timers {
		t.Stop()
		delete(rw.timers, path)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchFormat != "jsonl" && watchFormat != "pretty" {
		return fmt.Errorf("invalid format %q: must be one of: jsonl, pretty", watchFormat)
	}

	dir, err := savefinder.FindSaveDir(rootSaveDir)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, stop := signalContext()
	defer stop()

	log := logger()
	log.Info("watching for new replays", "dir", dir)

	rw := newReplayWatcher(watchSettle)
	defer rw.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !savefinder.IsReplayFile(event.Name) {
				continue
			}
			log.Debug("replay activity", "path", event.Name, "op", event.Op)
			rw.note(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)

		case path := <-rw.out:
			if err := summarizeNewReplay(ctx, path, log); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				// Keep watching; a single bad replay is not fatal.
				log.Warn("summarize replay", "path", path, "error", err)
			}
		}
	}
}

func summarizeNewReplay(ctx context.Context, path string, log *slog.Logger) error {
	log.Debug("decoding new replay", "path", path)
	m, err := aoe2stat.Load(ctx, path, loadOptions(log)...)
	if err != nil {
		return err
	}
	return OutputSummary(watchFormat, aoe2stat.Summarize(m, path), os.Stdout)
}
