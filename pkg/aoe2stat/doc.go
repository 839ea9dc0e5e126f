// Package aoe2stat provides analysis of Age of Empires II: DE recorded games.
//
// This package allows you to:
//   - Load a decoded match from a replay or match document
//   - Summarize a match (players, map, duration)
//   - Derive per-player metrics: APM, unit production, TC idle time,
//     resource estimates, and match milestones
//
// # Basic Usage
//
// To summarize a replay:
//
//	m, err := aoe2stat.Load(ctx, "AgeIIDE_Replay_396581946.aoe2record")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s := aoe2stat.Summarize(m, "AgeIIDE_Replay_396581946.aoe2record")
//	fmt.Println(s.MapName, s.DurationSeconds)
//
// To compute an APM time series with a 60 second window:
//
//	apm := aoe2stat.APMSeries(m, 60)
//	for _, p := range apm.PlayerNumbers() {
//	    fmt.Println(m.PlayerName(p), apm.Values[p])
//	}
//
// # Decoder Boundary
//
// The binary .aoe2record format is decoded by an external program (see
// internal/decoder); this package operates purely on the decoded action
// stream. Files ending in .json are treated as already-decoded match
// documents, which is handy for notebooks and tests.
package aoe2stat
