// Package decoder bridges to the external replay decoder.
//
// The binary .aoe2record format is never interpreted here. A configurable
// decoder command (the mgz toolchain's JSON dumper by default) is run over
// the replay file and its stdout is decoded as a match document. Files
// that are already match documents (.json) skip the subprocess entirely.
package decoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat/match"
)

// EnvDecoder is the environment variable overriding the decoder command.
const EnvDecoder = "AOE2STAT_DECODER"

// DefaultCommand is the decoder invoked when nothing else is configured.
// It must accept a replay path as its last argument and write a match
// document to stdout.
const DefaultCommand = "mgz-json"

// ErrNoDecoder is returned when a replay needs decoding but no decoder
// command is available.
var ErrNoDecoder = errors.New("no replay decoder command configured")

// stderrLimit bounds how much decoder stderr is carried in errors.
const stderrLimit = 512

// Command returns the decoder command to use.
//
// Priority:
//  1. explicit (if non-empty)
//  2. AOE2STAT_DECODER environment variable
//  3. DefaultCommand
func Command(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvDecoder); env != "" {
		return env
	}
	return DefaultCommand
}

// DecodeDocument decodes a match document from r.
func DecodeDocument(r io.Reader) (*match.Match, error) {
	var m match.Match
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding match document: %w", err)
	}
	if len(m.Players) == 0 {
		return nil, errors.New("match document has no players")
	}
	return &m, nil
}

// DecodeFile decodes a match document stored at path.
func DecodeFile(path string) (*match.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeDocument(f)
}

// Run invokes the decoder command over the replay at path and decodes
// the resulting match document. The command is split on whitespace so
// configured values like "python -m mgz.cli json" work.
func Run(ctx context.Context, command, path string) (*match.Match, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, ErrNoDecoder
	}
	args := append(parts[1:], path)

	cmd := exec.CommandContext(ctx, parts[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("starting decoder: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting decoder %q: %w", parts[0], err)
	}

	m, decErr := DecodeDocument(stdout)

	// Drain remaining output so Wait does not block on a full pipe.
	_, _ = io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("decoder %q failed: %w%s", parts[0], err, stderrexcerpt(&stderr))
	}
	if decErr != nil {
		return nil, fmt.Errorf("decoder %q output: %w%s", parts[0], decErr, stderrexcerpt(&stderr))
	}
	return m, nil
}

// stderrexcerpt formats a bounded stderr excerpt for error messages.
func stderrexcerpt(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return ""
	}
	if len(s) > stderrLimit {
		s = s[:stderrLimit] + "..."
	}
	return " (stderr: " + s + ")"
}
