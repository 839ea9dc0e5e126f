package decoder

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `{
	"version": "VER 9.4",
	"map_id": 9,
	"map_name": "Arabia",
	"duration_seconds": 1800,
	"players": [
		{"number": 1, "name": "TheViper", "civilization": 1, "color_id": 1, "winner": true},
		{"number": 2, "name": "Hera", "civilization": 11, "color_id": 2, "winner": false}
	],
	"actions": [
		{"time": 1.5, "type": "DE_QUEUE", "player": 1, "payload": {"unit_name": "Villager"}}
	]
}`

func TestDecodeDocument(t *testing.T) {
	m, err := DecodeDocument(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}

	if m.MapName != "Arabia" {
		t.Errorf("MapName = %q, want Arabia", m.MapName)
	}
	if m.DurationSeconds != 1800 {
		t.Errorf("DurationSeconds = %v, want 1800", m.DurationSeconds)
	}
	if len(m.Players) != 2 {
		t.Fatalf("len(Players) = %d, want 2", len(m.Players))
	}
	if !m.Players[0].Winner || m.Players[1].Winner {
		t.Errorf("winner flags wrong: %+v", m.Players)
	}
	if len(m.Actions) != 1 || m.Actions[0].Payload["unit_name"] != "Villager" {
		t.Errorf("actions not decoded: %+v", m.Actions)
	}
}

func TestDecodeDocument_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "not a document"},
		{"empty object", "{}"},
		{"no players", `{"map_name": "Arabia", "players": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeDocument(strings.NewReader(tt.input)); err == nil {
				t.Error("DecodeDocument() expected error, got nil")
			}
		})
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "match.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if m.Players[0].Name != "TheViper" {
		t.Errorf("Players[0].Name = %q, want TheViper", m.Players[0].Name)
	}

	if _, err := DecodeFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("DecodeFile() on missing file expected error, got nil")
	}
}

func TestCommand(t *testing.T) {
	t.Setenv(EnvDecoder, "")
	if got := Command(""); got != DefaultCommand {
		t.Errorf("Command(\"\") = %q, want default %q", got, DefaultCommand)
	}
	if got := Command("my-decoder --json"); got != "my-decoder --json" {
		t.Errorf("Command(explicit) = %q", got)
	}

	t.Setenv(EnvDecoder, "env-decoder")
	if got := Command(""); got != "env-decoder" {
		t.Errorf("Command with env = %q, want env-decoder", got)
	}
	// Explicit still wins over env
	if got := Command("explicit"); got != "explicit" {
		t.Errorf("Command(explicit) with env = %q, want explicit", got)
	}
}

func TestRun_CommandFailure(t *testing.T) {
	ctx := context.Background()

	if _, err := Run(ctx, "", "replay.aoe2record"); err != ErrNoDecoder {
		t.Errorf("Run with empty command error = %v, want ErrNoDecoder", err)
	}

	// Whitespace-only commands have no fields to execute.
	if _, err := Run(ctx, "   \t ", "replay.aoe2record"); err != ErrNoDecoder {
		t.Errorf("Run with blank command error = %v, want ErrNoDecoder", err)
	}

	// A command that does not exist should surface a start error.
	if _, err := Run(ctx, "aoe2stat-no-such-decoder-binary", "replay.aoe2record"); err == nil {
		t.Error("Run with missing binary expected error, got nil")
	}
}

func TestRun_ShellsOutAndDecodes(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(doc, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	// "cat" behaves like a decoder that emits the document for any input:
	// the replay path argument is the document itself here.
	m, err := Run(context.Background(), "cat", doc)
	if err != nil {
		t.Skipf("cat unavailable: %v", err)
	}
	if m.MapID != 9 {
		t.Errorf("MapID = %d, want 9", m.MapID)
	}
}
