// Package savefinder provides AoE2 DE save directory and replay detection.
package savefinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvSaveDir is the environment variable name for specifying the save directory.
const EnvSaveDir = "AOE2STAT_SAVEDIR"

// replayGlob matches the game's recorded-game files.
const replayGlob = "*.aoe2record"

// Sentinel errors.
var (
	ErrSaveDirNotFound = errors.New("save directory not found")
	ErrNoReplayFiles   = errors.New("no replay files found")
)

// DefaultSaveDirs returns candidate save directories in priority order.
// The game stores replays per Steam profile under
// Games/Age of Empires 2 DE/<profile-id>/savegame.
func DefaultSaveDirs() []string {
	userProfile := os.Getenv("USERPROFILE")
	if userProfile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		userProfile = home
	}

	base := filepath.Join(userProfile, "Games", "Age of Empires 2 DE")
	profiles, err := filepath.Glob(filepath.Join(base, "*", "savegame"))
	if err != nil {
		return nil
	}
	return profiles
}

// FindSaveDir returns the replay save directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. AOE2STAT_SAVEDIR environment variable
//  3. Auto-detect from DefaultSaveDirs()
//
// Returns ErrSaveDirNotFound if no valid directory is found.
// The returned path has symlinks resolved for consistency.
func FindSaveDir(explicit string) (string, error) {
	// 1. Check explicit
	if explicit != "" {
		if resolved := resolveAndValidateSaveDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory is invalid or contains no replay files", ErrSaveDirNotFound)
	}

	// 2. Check environment variable
	if envDir := os.Getenv(EnvSaveDir); envDir != "" {
		if resolved := resolveAndValidateSaveDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrSaveDirNotFound, EnvSaveDir)
	}

	// 3. Auto-detect
	for _, dir := range DefaultSaveDirs() {
		if resolved := resolveAndValidateSaveDir(dir); resolved != "" {
			return resolved, nil
		}
	}

	return "", ErrSaveDirNotFound
}

// ListReplays returns all replay files in the directory, sorted by
// modification time (oldest first).
//
// Returns ErrNoReplayFiles if the directory contains no replays.
func ListReplays(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, replayGlob))
	if err != nil {
		return nil, fmt.Errorf("globbing replay files: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrNoReplayFiles
	}

	type fileInfo struct {
		path    string
		modTime int64
	}
	files := make([]fileInfo, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue // Skip files we can't stat
		}
		files = append(files, fileInfo{path: path, modTime: info.ModTime().UnixNano()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime < files[j].modTime
	})

	result := make([]string, len(files))
	for i, f := range files {
		result[i] = f.path
	}
	return result, nil
}

// FindLatestReplay returns the most recently modified replay file in dir.
//
// Returns ErrNoReplayFiles if no replays are found.
func FindLatestReplay(dir string) (string, error) {
	files, err := ListReplays(dir)
	if err != nil {
		return "", err
	}
	return files[len(files)-1], nil
}

// IsReplayFile reports whether path looks like a recorded-game file.
func IsReplayFile(path string) bool {
	ok, err := filepath.Match(replayGlob, filepath.Base(path))
	return err == nil && ok
}

// resolveAndValidateSaveDir resolves symlinks and validates the directory.
// Returns the resolved path if valid, empty string otherwise.
func resolveAndValidateSaveDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		// Fallback to original path if symlink resolution fails
		resolved = dir
	}

	matches, err := filepath.Glob(filepath.Join(resolved, replayGlob))
	if err != nil || len(matches) == 0 {
		return ""
	}

	return resolved
}
