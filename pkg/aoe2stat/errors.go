package aoe2stat

import (
	"errors"
	"fmt"

	"github.com/aoe2stat/aoe2stat-go/internal/decoder"
	"github.com/aoe2stat/aoe2stat-go/internal/savefinder"
)

// Sentinel errors returned by this package.
var (
	// ErrSaveDirNotFound is returned when the game's save directory
	// cannot be found or accessed.
	ErrSaveDirNotFound = savefinder.ErrSaveDirNotFound

	// ErrNoReplayFiles is returned when no replay files are found
	// in the specified directory.
	ErrNoReplayFiles = savefinder.ErrNoReplayFiles

	// ErrNoDecoder is returned when a replay needs the external decoder
	// but no decoder command is available.
	ErrNoDecoder = decoder.ErrNoDecoder

	// ErrUnsupportedFile is returned for files that are neither replays
	// nor match documents.
	ErrUnsupportedFile = errors.New("unsupported file type (expected .aoe2record or .json)")

	// ErrUnsupportedResource is returned for resource names outside
	// food/wood/gold/stone.
	ErrUnsupportedResource = errors.New("unsupported resource")
)

// DecodeError wraps a decoding failure with the file it occurred on.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
