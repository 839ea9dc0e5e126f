package aoe2stat

import (
	"encoding/json"
	"reflect"
	"sort"
	"testing"
)

func TestSummarize(t *testing.T) {
	eapm := 58
	m := &Match{
		Version:         "VER 9.4",
		MapID:           9,
		MapName:         "Arabia",
		DurationSeconds: 2145.5,
		Players: []Player{
			{Number: 1, Name: "TheViper", Civilization: 11, Winner: true, EAPM: &eapm},
			{Number: 2, Name: "Hera", Civilization: 23},
		},
	}

	s := Summarize(m, "game.aoe2record")
	if s.File != "game.aoe2record" {
		t.Errorf("File = %q, want game.aoe2record", s.File)
	}
	if s.DurationSeconds != 2145.5 {
		t.Errorf("DurationSeconds = %v, want 2145.5", s.DurationSeconds)
	}
	if len(s.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(s.Players))
	}
	if !s.Players[0].Winner || s.Players[0].EAPM == nil || *s.Players[0].EAPM != 58 {
		t.Errorf("player 1 = %+v, want winner with eapm 58", s.Players[0])
	}
	if s.Players[1].EAPM != nil {
		t.Errorf("player 2 eapm = %v, want nil", *s.Players[1].EAPM)
	}
}

// Downstream tooling keys on the summary JSON shape; lock it down.
func TestSummaryJSONKeys(t *testing.T) {
	s := Summarize(&Match{Players: []Player{{Number: 1, Name: "Hera"}}}, "x.json")
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got, want := sortedKeys(top), []string{"duration_seconds", "file", "map_id", "map_name", "players", "version"}; !reflect.DeepEqual(got, want) {
		t.Errorf("summary keys = %v, want %v", got, want)
	}

	var players []map[string]json.RawMessage
	if err := json.Unmarshal(top["players"], &players); err != nil {
		t.Fatalf("unmarshal players: %v", err)
	}
	if got, want := sortedKeys(players[0]), []string{"civilization", "eapm", "name", "winner"}; !reflect.DeepEqual(got, want) {
		t.Errorf("player keys = %v, want %v", got, want)
	}
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
