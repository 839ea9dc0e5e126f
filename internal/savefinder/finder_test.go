package savefinder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeReplay(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("rec"), 0o644); err != nil {
		t.Fatal(err)
	}
	modTime := time.Now().Add(age)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindLatestReplay(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		"MP Replay v101.102 @2024.01.01.aoe2record",
		"MP Replay v101.102 @2024.01.02.aoe2record",
		"MP Replay v101.102 @2024.01.03.aoe2record",
	}
	for i, name := range files {
		writeReplay(t, dir, name, time.Duration(i)*time.Hour)
	}
	// Non-replay files must be ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindLatestReplay(dir)
	if err != nil {
		t.Fatalf("FindLatestReplay() error = %v", err)
	}
	want := files[len(files)-1]
	if filepath.Base(got) != want {
		t.Errorf("FindLatestReplay() = %v, want %v", filepath.Base(got), want)
	}
}

func TestFindLatestReplay_NoFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := FindLatestReplay(dir)
	if err == nil {
		t.Error("FindLatestReplay() expected error for empty directory")
	}
	if !errors.Is(err, ErrNoReplayFiles) {
		t.Errorf("FindLatestReplay() error = %v, want %v", err, ErrNoReplayFiles)
	}
}

func TestListReplays_SortedOldestFirst(t *testing.T) {
	dir := t.TempDir()
	writeReplay(t, dir, "b.aoe2record", 2*time.Hour)
	writeReplay(t, dir, "a.aoe2record", time.Hour)
	writeReplay(t, dir, "c.aoe2record", 3*time.Hour)

	got, err := ListReplays(dir)
	if err != nil {
		t.Fatalf("ListReplays() error = %v", err)
	}

	want := []string{"a.aoe2record", "b.aoe2record", "c.aoe2record"}
	if len(got) != len(want) {
		t.Fatalf("ListReplays() returned %d files, want %d", len(got), len(want))
	}
	for i := range want {
		if filepath.Base(got[i]) != want[i] {
			t.Errorf("ListReplays()[%d] = %v, want %v", i, filepath.Base(got[i]), want[i])
		}
	}
}

func TestFindSaveDir_EnvVar(t *testing.T) {
	dir := t.TempDir()
	writeReplay(t, dir, "game.aoe2record", 0)

	t.Setenv(EnvSaveDir, dir)

	got, err := FindSaveDir("")
	if err != nil {
		t.Fatalf("FindSaveDir() error = %v", err)
	}

	// Resolve symlinks in expected path for comparison (e.g., /var -> /private/var on macOS)
	want, _ := filepath.EvalSymlinks(dir)
	if want == "" {
		want = dir
	}
	if got != want {
		t.Errorf("FindSaveDir() = %v, want %v", got, want)
	}
}

func TestFindSaveDir_ExplicitBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	writeReplay(t, dir, "game.aoe2record", 0)

	t.Setenv(EnvSaveDir, "/some/other/path")

	got, err := FindSaveDir(dir)
	if err != nil {
		t.Fatalf("FindSaveDir() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	if want == "" {
		want = dir
	}
	if got != want {
		t.Errorf("FindSaveDir() = %v, want %v", got, want)
	}
}

func TestFindSaveDir_InvalidExplicit(t *testing.T) {
	_, err := FindSaveDir(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrSaveDirNotFound) {
		t.Errorf("FindSaveDir() error = %v, want ErrSaveDirNotFound", err)
	}

	// Directory exists but has no replays
	_, err = FindSaveDir(t.TempDir())
	if !errors.Is(err, ErrSaveDirNotFound) {
		t.Errorf("FindSaveDir() on empty dir error = %v, want ErrSaveDirNotFound", err)
	}
}

func TestIsReplayFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"game.aoe2record", true},
		{"/saves/game.aoe2record", true},
		{"MP Replay v101.102 @2024.01.03.aoe2record", true},
		{"game.aoe2record.part", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		if got := IsReplayFile(tt.path); got != tt.want {
			t.Errorf("IsReplayFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
