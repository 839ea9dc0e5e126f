package aoe2stat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aoe2stat/aoe2stat-go/internal/decoder"
	"github.com/aoe2stat/aoe2stat-go/internal/savefinder"
)

// Load reads and decodes a match from path.
//
// Files ending in .aoe2record are handed to the external decoder command
// (see WithDecoderCommand); files ending in .json are decoded directly as
// match documents. Actions are returned in ascending time order.
//
// Example:
//
//	m, err := aoe2stat.Load(ctx, "game.aoe2record",
//	    aoe2stat.WithDecoderCommand("mgz-json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Load(ctx context.Context, path string, opts ...LoadOption) (*Match, error) {
	if path == "" {
		return nil, errors.New("aoe2stat: path required")
	}

	cfg := applyLoadOptions(opts)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("replay file: %w", err)
	}

	var (
		m   *Match
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		m, err = decoder.DecodeFile(path)
	case ".aoe2record":
		command := decoder.Command(cfg.decoderCommand)
		if cfg.logger != nil {
			cfg.logger.Debug("running replay decoder", "command", command, "path", path)
		}
		decodeCtx, cancel := context.WithTimeout(ctx, cfg.decodeTimeout)
		defer cancel()
		m, err = decoder.Run(decodeCtx, command, path)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	// Metrics assume actions in ascending time order.
	sort.SliceStable(m.Actions, func(i, j int) bool {
		return m.Actions[i].Time < m.Actions[j].Time
	})

	if cfg.logger != nil {
		cfg.logger.Debug("loaded match",
			"path", path,
			"map", m.MapName,
			"players", len(m.Players),
			"actions", len(m.Actions),
		)
	}
	return m, nil
}

// LatestReplay returns the newest replay file.
//
// If saveDir is empty, the save directory is auto-detected (explicit
// flag, AOE2STAT_SAVEDIR, then the game's default locations).
func LatestReplay(saveDir string) (string, error) {
	dir, err := savefinder.FindSaveDir(saveDir)
	if err != nil {
		return "", err
	}
	return savefinder.FindLatestReplay(dir)
}
