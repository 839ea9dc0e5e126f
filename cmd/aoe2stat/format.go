package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

// ValidFormats is the set of output formats the CLI accepts.
var ValidFormats = map[string]bool{
	"json":   true,
	"jsonl":  true,
	"pretty": true,
}

// OutputJSON writes v as indented JSON.
func OutputJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// OutputJSONL writes v as a single JSON line.
func OutputJSONL(v any, w io.Writer) error {
	return json.NewEncoder(w).Encode(v)
}

// OutputPretty writes a human-readable match summary.
func OutputPretty(s aoe2stat.Summary, w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.File)
	if s.MapName != "" {
		fmt.Fprintf(&b, "  map: %s\n", s.MapName)
	}
	fmt.Fprintf(&b, "  duration: %d:%02d\n", int(s.DurationSeconds)/60, int(s.DurationSeconds)%60)
	for _, p := range s.Players {
		mark := " "
		if p.Winner {
			mark = "*"
		}
		fmt.Fprintf(&b, "  %s %s (civ %d)", mark, p.Name, p.Civilization)
		if p.EAPM != nil {
			fmt.Fprintf(&b, " eapm %d", *p.EAPM)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// OutputSummary writes a summary in the given format.
func OutputSummary(format string, s aoe2stat.Summary, w io.Writer) error {
	switch format {
	case "json":
		return OutputJSON(s, w)
	case "jsonl":
		return OutputJSONL(s, w)
	case "pretty":
		return OutputPretty(s, w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
