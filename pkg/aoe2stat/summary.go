package aoe2stat

// PlayerSummary is the per-player slice of a match summary.
type PlayerSummary struct {
	Name         string `json:"name"`
	Civilization int    `json:"civilization"`
	Winner       bool   `json:"winner"`
	EAPM         *int   `json:"eapm"`
}

// Summary is the top level information extracted from a replay.
// Field order and JSON keys are stable; downstream tooling keys on them.
type Summary struct {
	File            string          `json:"file"`
	Version         string          `json:"version"`
	DurationSeconds float64         `json:"duration_seconds"`
	MapID           int             `json:"map_id"`
	MapName         string          `json:"map_name"`
	Players         []PlayerSummary `json:"players"`
}

// Summarize builds the summary record for a loaded match.
func Summarize(m *Match, path string) Summary {
	players := make([]PlayerSummary, len(m.Players))
	for i, p := range m.Players {
		players[i] = PlayerSummary{
			Name:         p.Name,
			Civilization: p.Civilization,
			Winner:       p.Winner,
			EAPM:         p.EAPM,
		}
	}
	return Summary{
		File:            path,
		Version:         m.Version,
		DurationSeconds: m.DurationSeconds,
		MapID:           m.MapID,
		MapName:         m.MapName,
		Players:         players,
	}
}
