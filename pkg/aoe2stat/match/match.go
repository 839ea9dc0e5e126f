// Package match defines the decoded match data model.
//
// This package is separated from the main aoe2stat package to avoid import
// cycles between pkg/aoe2stat and internal/decoder.
package match

import (
	"sort"
	"strconv"
	"strings"
)

// ActionType is the decoder's name for an input action, e.g. "DE_QUEUE",
// "ORDER", "RESEARCH". The set of names is owned by the external decoder;
// this package only classifies them.
type ActionType string

// IsProduction reports whether the action can queue or create units.
// Matches the decoder's TRAIN/CREATE/QUEUE families plus bare ORDER.
func (t ActionType) IsProduction() bool {
	s := string(t)
	return strings.Contains(s, "TRAIN") ||
		strings.Contains(s, "CREATE") ||
		strings.Contains(s, "QUEUE") ||
		s == "ORDER"
}

// IsResearch reports whether the action researches a technology or age.
func (t ActionType) IsResearch() bool {
	return strings.Contains(string(t), "RESEARCH")
}

// IsBuild reports whether the action places or constructs a building.
func (t ActionType) IsBuild() bool {
	return strings.Contains(string(t), "BUILD")
}

// Resource identifies one of the four stockpiled resources.
type Resource string

const (
	Food  Resource = "food"
	Wood  Resource = "wood"
	Gold  Resource = "gold"
	Stone Resource = "stone"
)

// allResources is the canonical list of resources.
var allResources = []Resource{Food, Wood, Gold, Stone}

// ResourceNames returns a sorted list of all valid resource names.
// This is the single source of truth for resource enumeration.
func ResourceNames() []string {
	names := make([]string, len(allResources))
	for i, r := range allResources {
		names[i] = string(r)
	}
	sort.Strings(names)
	return names
}

// resourceByName maps lowercase names to Resource for lookup.
var resourceByName = func() map[string]Resource {
	m := make(map[string]Resource, len(allResources))
	for _, r := range allResources {
		m[string(r)] = r
	}
	return m
}()

// ParseResource converts a string to Resource if valid.
// It is case-insensitive and trims leading/trailing whitespace.
// Returns the resource and true if found, zero value and false otherwise.
func ParseResource(name string) (Resource, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	r, ok := resourceByName[name]
	return r, ok
}

// Player describes one participant of the match.
type Player struct {
	// Number is the in-game player number (1-8). Metric series are keyed
	// by this number.
	Number int `json:"number"`

	// Name is the display name.
	Name string `json:"name"`

	// Civilization is the decoder's civilization id.
	Civilization int `json:"civilization"`

	// ColorID is the in-game color slot (1=blue, 2=red, ...).
	ColorID int `json:"color_id"`

	// Winner reports whether this player won the match.
	Winner bool `json:"winner"`

	// EAPM is the effective actions per minute reported by the decoder,
	// nil when the replay does not carry it.
	EAPM *int `json:"eapm,omitempty"`
}

// Action is a single recorded input action.
type Action struct {
	// Time is the match-relative timestamp in seconds.
	Time float64 `json:"time"`

	// Type is the decoder's action type name.
	Type ActionType `json:"type"`

	// Player is the acting player's number, 0 when the action has no
	// owner (sync chatter, spectator input).
	Player int `json:"player,omitempty"`

	// Payload is the decoder's free-form action detail. Keys vary per
	// decoder version; helpers in pkg/aoe2stat dig values out of it.
	Payload map[string]any `json:"payload,omitempty"`
}

// ResourceTotals holds per-resource amounts, used for postgame totals.
type ResourceTotals struct {
	Food  float64 `json:"food"`
	Wood  float64 `json:"wood"`
	Gold  float64 `json:"gold"`
	Stone float64 `json:"stone"`
}

// Get returns the amount for the given resource.
func (rt ResourceTotals) Get(r Resource) float64 {
	switch r {
	case Food:
		return rt.Food
	case Wood:
		return rt.Wood
	case Gold:
		return rt.Gold
	case Stone:
		return rt.Stone
	}
	return 0
}

// Match is a fully decoded replay.
type Match struct {
	// Version is the game/save version string reported by the decoder.
	Version string `json:"version,omitempty"`

	// MapID and MapName identify the map.
	MapID   int    `json:"map_id"`
	MapName string `json:"map_name"`

	// DurationSeconds is the total match length.
	DurationSeconds float64 `json:"duration_seconds"`

	// Players lists the participants.
	Players []Player `json:"players"`

	// Actions is the recorded input stream, ordered by time.
	Actions []Action `json:"actions,omitempty"`

	// PostgameResources holds per-player resource totals from the
	// postgame block, keyed by player number. Empty when the replay has
	// no postgame data.
	PostgameResources map[int]ResourceTotals `json:"postgame_resources,omitempty"`
}

// PlayerByNumber returns the player with the given number, or nil.
func (m *Match) PlayerByNumber(n int) *Player {
	for i := range m.Players {
		if m.Players[i].Number == n {
			return &m.Players[i]
		}
	}
	return nil
}

// PlayerName returns the display name for a player number, falling back
// to "Player N" for unknown numbers.
func (m *Match) PlayerName(n int) string {
	if p := m.PlayerByNumber(n); p != nil {
		return p.Name
	}
	return "Player " + strconv.Itoa(n)
}
