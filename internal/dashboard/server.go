// Package dashboard serves replay metrics as a browser dashboard.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

// Server holds one loaded match and renders metric charts for it.
type Server struct {
	cfg    *Config
	logger *slog.Logger

	mu    sync.RWMutex
	path  string
	match *aoe2stat.Match
}

// NewServer returns a dashboard server. logger may be nil.
func NewServer(cfg *Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{cfg: cfg, logger: logger}
}

// SetMatch installs the match the dashboard renders.
func (s *Server) SetMatch(path string, m *aoe2stat.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.match = m
}

// current returns the loaded match, or nil.
func (s *Server) current() (string, *aoe2stat.Match) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path, s.match
}

// Handler returns the dashboard HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /open", s.handleOpen)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /charts/apm", s.handleAPM)
	mux.HandleFunc("GET /charts/units", s.handleUnits)
	mux.HandleFunc("GET /charts/idle", s.handleIdle)
	mux.HandleFunc("GET /charts/resources", s.handleResources)
	mux.HandleFunc("GET /charts/stock", s.handleStock)
	mux.HandleFunc("GET /charts/score", s.handleScore)
	return mux
}

// ListenAndServe runs the dashboard until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("dashboard listening", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errc:
		return err
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// window reads the bin width from the query, bounded to sane values.
func (s *Server) window(r *http.Request) int {
	window := s.cfg.WindowSec
	if q := r.URL.Query().Get("window"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v >= 5 && v <= 600 {
			window = v
		}
	}
	return window
}

// playersParam reads the player filter, e.g. ?players=1,2.
// An empty or absent value means all players.
func playersParam(r *http.Request) []int {
	q := r.URL.Query().Get("players")
	if q == "" {
		return nil
	}
	var players []int
	for _, part := range strings.Split(q, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if v, err := strconv.Atoi(part); err == nil && v > 0 {
			players = append(players, v)
		}
	}
	return players
}

// stockParam reads the starting stock override for the stock chart.
func stockParam(r *http.Request, resource aoe2stat.Resource) float64 {
	if q := r.URL.Query().Get("stock"); q != "" {
		if v, err := strconv.ParseFloat(q, 64); err == nil && v >= 0 {
			return v
		}
	}
	return startingStock(resource)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	path, m := s.current()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.indexHTML(path, m)))
}

// handleOpen loads a replay given as ?path= or form value "path".
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	path := r.FormValue("path")
	if path == "" {
		s.writeJSONError(w, http.StatusBadRequest, "path required")
		return
	}

	var opts []aoe2stat.LoadOption
	if s.cfg.Decoder != "" {
		opts = append(opts, aoe2stat.WithDecoderCommand(s.cfg.Decoder))
	}
	opts = append(opts, aoe2stat.WithLogger(s.logger))

	m, err := aoe2stat.Load(r.Context(), path, opts...)
	if err != nil {
		s.logger.Warn("open replay failed", "path", path, "error", err)
		s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.SetMatch(path, m)
	s.logger.Info("replay opened", "path", path, "map", m.MapName, "players", len(m.Players))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	path, m := s.current()
	if m == nil {
		s.writeJSONError(w, http.StatusNotFound, "no replay loaded")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(aoe2stat.Summarize(m, path))
}

// renderCharts writes one or more charts as a single HTML page.
func (s *Server) renderCharts(w http.ResponseWriter, cs ...components.Charter) {
	page := components.NewPage()
	page.AddCharts(cs...)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		s.logger.Error("render chart", "error", err)
	}
}

func (s *Server) handleAPM(w http.ResponseWriter, r *http.Request) {
	_, m := s.current()
	if m == nil {
		s.writeJSONError(w, http.StatusNotFound, "no replay loaded")
		return
	}

	series := aoe2stat.FilterPlayers(aoe2stat.APMSeries(m, s.window(r)), playersParam(r))
	if series.Empty() {
		s.renderUnavailable(w, "APM", "the replay carries no player actions")
		return
	}
	summary := aoe2stat.APMSummary(series)
	s.renderCharts(w,
		s.lineChart(m, series, "Actions per minute", "apm", nil),
		s.apmBarChart(m, summary, series.PlayerNumbers()),
	)
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	_, m := s.current()
	if m == nil {
		s.writeJSONError(w, http.StatusNotFound, "no replay loaded")
		return
	}

	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = "Villager"
	}
	pattern, ok := aoe2stat.BaseUnitPatterns()[unit]
	if !ok {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown unit %q", unit))
		return
	}

	series := aoe2stat.FilterPlayers(aoe2stat.UnitCreatedSeries(m, pattern, s.window(r)), playersParam(r))
	if series.Empty() {
		s.renderUnavailable(w, unit+" production", "no matching production actions in this replay")
		return
	}
	s.renderCharts(w, s.lineChart(m, series, unit+" production", "units queued", aoe2stat.ImportantEvents(m)))
}

func (s *Server) handleIdle(w http.ResponseWriter, r *http.Request) {
	_, m := s.current()
	if m == nil {
		s.writeJSONError(w, http.StatusNotFound, "no replay loaded")
		return
	}

	series := aoe2stat.FilterPlayers(aoe2stat.TCIdleCumulativeSeries(m, s.window(r)), playersParam(r))
	if series.Empty() {
		s.renderUnavailable(w, "Town center idle time", "no idle gaps detected")
		return
	}
	s.renderCharts(w, s.lineChart(m, series, "Town center idle time", "idle seconds", aoe2stat.ImportantEvents(m)))
}

// handleResources charts cumulative resources. The mode query selects
// the source: "postgame" (totals ramp), "spend" (cost-table estimate)
// or "auto" (postgame with spend fallback, the default).
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	_, m := s.current()
	if m == nil {
		s.writeJSONError(w, http.StatusNotFound, "no replay loaded")
		return
	}

	resource, ok := parseResourceParam(r)
	if !ok {
		s.writeJSONError(w, http.StatusBadRequest, "unknown resource")
		return
	}

	mode := r.URL.Query().Get("mode")
	switch mode {
	case "", "auto", "postgame", "spend":
	default:
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", mode))
		return
	}

	window := s.window(r)
	var (
		series aoe2stat.Series
		err    error
	)
	title := fmt.Sprintf("Cumulative %s", resource)
	if mode != "spend" {
		series, err = aoe2stat.ResourceCumulativeSeries(m, m.PostgameResources, resource, window)
	}
	if err == nil && series.Empty() && (mode == "" || mode == "auto" || mode == "spend") {
		title = fmt.Sprintf("Estimated %s spend", resource)
		series, err = aoe2stat.ResourceSpendSeries(m, resource, window)
	}
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	series = aoe2stat.FilterPlayers(series, playersParam(r))
	if series.Empty() {
		s.renderUnavailable(w, title, "no resource data in this replay")
		return
	}
	s.renderCharts(w, s.lineChart(m, series, title, string(resource), aoe2stat.ImportantEvents(m)))
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	_, m := s.current()
	if m == nil {
		s.writeJSONError(w, http.StatusNotFound, "no replay loaded")
		return
	}

	resource, ok := parseResourceParam(r)
	if !ok {
		s.writeJSONError(w, http.StatusBadRequest, "unknown resource")
		return
	}

	series, err := aoe2stat.ResourceBalanceSeries(m, resource, s.window(r), stockParam(r, resource))
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	series = aoe2stat.FilterPlayers(series, playersParam(r))
	if series.Empty() {
		s.renderUnavailable(w, "Stock estimate", "no spend actions in this replay")
		return
	}
	s.renderCharts(w, s.lineChart(m, series, fmt.Sprintf("Estimated %s stock", resource), string(resource), aoe2stat.ImportantEvents(m)))
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	_, m := s.current()
	if m == nil {
		s.writeJSONError(w, http.StatusNotFound, "no replay loaded")
		return
	}

	series := aoe2stat.FilterPlayers(aoe2stat.TotalSpendSeries(m, s.window(r), true), playersParam(r))
	if series.Empty() {
		s.renderUnavailable(w, "Score estimate", "no spend actions in this replay")
		return
	}
	s.renderCharts(w, s.lineChart(m, series, "Cumulative spend (score proxy)", "resources spent", aoe2stat.ImportantEvents(m)))
}

func parseResourceParam(r *http.Request) (aoe2stat.Resource, bool) {
	q := r.URL.Query().Get("resource")
	if q == "" {
		return aoe2stat.ResourceFood, true
	}
	return aoe2stat.ParseResource(q)
}

// startingStock returns the dark age starting stockpile on standard
// settings.
func startingStock(r aoe2stat.Resource) float64 {
	switch r {
	case aoe2stat.ResourceFood, aoe2stat.ResourceWood:
		return 200
	case aoe2stat.ResourceGold:
		return 100
	case aoe2stat.ResourceStone:
		return 200
	}
	return 0
}
