// Package downloader fetches recorded games from the replay service.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBaseURL is the public replay redirect service.
const DefaultBaseURL = "https://aoe.ms/replay/"

// ErrEmptyReplay is returned when the service responds with no body,
// which happens for expired or unknown game ids.
var ErrEmptyReplay = errors.New("downloader: empty replay body")

// Client downloads replays by game id.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the replay service URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New returns a Client ready to download replays.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Filename returns the canonical local filename for a game id.
func Filename(gameID string) string {
	return fmt.Sprintf("AgeIIDE_Replay_%s.aoe2record", gameID)
}

// GameIDFromFilename recovers the game id from a canonically named
// replay file. Returns "" for other filenames.
func GameIDFromFilename(path string) string {
	name := filepath.Base(path)
	rest, ok := strings.CutPrefix(name, "AgeIIDE_Replay_")
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, ".aoe2record")
	if !ok {
		return ""
	}
	return id
}

// replayURL builds the download URL for a game id.
func (c *Client) replayURL(gameID string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("base url: %w", err)
	}
	q := u.Query()
	q.Set("gameId", gameID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Download fetches the replay for gameID into destDir and returns the
// written file path. The file is written via a temp file in destDir and
// renamed into place, so a failed download never leaves a partial replay.
func (c *Client) Download(ctx context.Context, gameID, destDir string) (string, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return "", errors.New("downloader: game id required")
	}
	if destDir == "" {
		destDir = "."
	}

	rawURL, err := c.replayURL(gameID)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch replay %s: %w", gameID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch replay %s: unexpected status %s", gameID, resp.Status)
	}

	dest := filepath.Join(destDir, Filename(gameID))
	tmp, err := os.CreateTemp(destDir, ".aoe2stat-download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write replay %s: %w", gameID, err)
	}
	if n == 0 {
		return "", fmt.Errorf("replay %s: %w", gameID, ErrEmptyReplay)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("finalize replay %s: %w", gameID, err)
	}
	return dest, nil
}
