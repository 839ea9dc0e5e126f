package aoe2stat

import (
	"regexp"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat/match"
)

// Villager production timing. A town center takes 25 seconds to train a
// villager; gaps between consecutive trains above 27 seconds (small slack
// for queue jitter) count as idle time.
const (
	villagerTrainSeconds  = 25.0
	tcIdleGapThresholdSec = 27.0
)

// Series is a windowed per-player time series.
type Series struct {
	// Window is the bin width in seconds.
	Window int `json:"window_sec"`

	// Times holds the bin start offsets in seconds.
	Times []float64 `json:"times"`

	// Values maps player number to one sample per bin.
	Values map[int][]float64 `json:"values"`
}

// Empty reports whether the series carries no data.
func (s Series) Empty() bool {
	return len(s.Times) == 0 || len(s.Values) == 0
}

// PlayerNumbers returns the player numbers present, sorted.
func (s Series) PlayerNumbers() []int {
	nums := make([]int, 0, len(s.Values))
	for n := range s.Values {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// binEdges returns histogram dividers [0, w, 2w, ...] whose last edge
// strictly exceeds maxT, so every sample falls inside a bin.
func binEdges(maxT float64, window int) []float64 {
	w := float64(window)
	n := int(maxT/w) + 2
	edges := make([]float64, n)
	for i := range edges {
		edges[i] = float64(i) * w
	}
	return edges
}

// sample is one weighted observation for histogram building.
type sample struct {
	t      float64
	player int
	weight float64
}

// histogramSeries bins samples per player over a common time axis.
func histogramSeries(samples []sample, window int) Series {
	if len(samples) == 0 {
		return Series{Window: window}
	}

	maxT := samples[0].t
	byPlayer := make(map[int][]sample)
	for _, s := range samples {
		if s.t > maxT {
			maxT = s.t
		}
		byPlayer[s.player] = append(byPlayer[s.player], s)
	}

	edges := binEdges(maxT, window)
	times := edges[:len(edges)-1]

	values := make(map[int][]float64, len(byPlayer))
	for player, ps := range byPlayer {
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].t < ps[j].t })
		xs := make([]float64, len(ps))
		ws := make([]float64, len(ps))
		for i, s := range ps {
			xs[i] = s.t
			ws[i] = s.weight
		}
		values[player] = stat.Histogram(nil, edges, xs, ws)
	}

	return Series{Window: window, Times: times, Values: values}
}

// APMSeries computes actions-per-minute per player over window-second bins.
func APMSeries(m *Match, window int) Series {
	var samples []sample
	for _, act := range m.Actions {
		if act.Player == 0 {
			continue
		}
		samples = append(samples, sample{t: act.Time, player: act.Player, weight: 1})
	}

	s := histogramSeries(samples, window)
	scale := 60.0 / float64(window)
	for _, vals := range s.Values {
		floats.Scale(scale, vals)
	}
	return s
}

// APMStat summarizes one player's APM distribution.
type APMStat struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// APMSummary computes per-player mean and standard deviation of a series.
func APMSummary(s Series) map[int]APMStat {
	out := make(map[int]APMStat, len(s.Values))
	for player, vals := range s.Values {
		if len(vals) == 0 {
			continue
		}
		st := APMStat{Mean: stat.Mean(vals, nil)}
		if len(vals) > 1 {
			st.Std = stat.StdDev(vals, nil)
		}
		out[player] = st
	}
	return out
}

// UnitCreatedSeries counts units matching pattern created per player over
// window-second bins, weighted by queued quantity.
func UnitCreatedSeries(m *Match, pattern *regexp.Regexp, window int) Series {
	var samples []sample
	for _, act := range m.Actions {
		if !act.Type.IsProduction() || act.Player == 0 {
			continue
		}
		if !PayloadMatches(act.Payload, pattern) {
			continue
		}
		samples = append(samples, sample{
			t:      act.Time,
			player: act.Player,
			weight: float64(PayloadCount(act.Payload)),
		})
	}
	return histogramSeries(samples, window)
}

// VillagerCounts totals villager production per player across the match.
func VillagerCounts(m *Match) map[int]int {
	villager := VillagerPattern()
	counts := make(map[int]int, len(m.Players))
	for _, p := range m.Players {
		counts[p.Number] = 0
	}
	for _, act := range m.Actions {
		if !act.Type.IsProduction() || act.Player == 0 {
			continue
		}
		if !PayloadMatches(act.Payload, villager) {
			continue
		}
		if _, known := counts[act.Player]; known {
			counts[act.Player] += PayloadCount(act.Payload)
		}
	}
	return counts
}

// villagerGaps yields (time, idleIncrement) pairs per player: for each gap
// between consecutive villager trains above the threshold, the idle part of
// the gap (gap minus train time) is attributed at the later train.
func villagerGaps(m *Match) map[int][]sample {
	villager := VillagerPattern()
	lastTrain := make(map[int]float64)
	trained := make(map[int]bool)
	incs := make(map[int][]sample)

	for _, act := range m.Actions {
		if !act.Type.IsProduction() || act.Player == 0 {
			continue
		}
		if !PayloadMatches(act.Payload, villager) {
			continue
		}
		t := act.Time
		if trained[act.Player] {
			gap := t - lastTrain[act.Player]
			if gap > tcIdleGapThresholdSec {
				inc := gap - villagerTrainSeconds
				if inc > 0 {
					incs[act.Player] = append(incs[act.Player], sample{t: t, player: act.Player, weight: inc})
				}
			}
		}
		lastTrain[act.Player] = t
		trained[act.Player] = true
	}
	return incs
}

// TCIdleTime totals town-center idle seconds per player.
func TCIdleTime(m *Match) map[int]float64 {
	idle := make(map[int]float64, len(m.Players))
	for _, p := range m.Players {
		idle[p.Number] = 0
	}
	for player, pairs := range villagerGaps(m) {
		for _, s := range pairs {
			idle[player] += s.weight
		}
	}
	return idle
}

// TCIdleCumulativeSeries forward-fills cumulative town-center idle time
// onto window-second bins.
func TCIdleCumulativeSeries(m *Match, window int) Series {
	incs := villagerGaps(m)

	maxT := 0.0
	any := false
	for _, pairs := range incs {
		for _, s := range pairs {
			if !any || s.t > maxT {
				maxT = s.t
				any = true
			}
		}
	}
	if !any {
		return Series{Window: window}
	}

	edges := binEdges(maxT, window)
	times := edges[:len(edges)-1]

	values := make(map[int][]float64, len(incs))
	for player, pairs := range incs {
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].t < pairs[j].t })
		vals := make([]float64, len(times))
		running := 0.0
		j := 0
		for i, bt := range times {
			for j < len(pairs) && pairs[j].t <= bt {
				running += pairs[j].weight
				j++
			}
			vals[i] = running
		}
		values[player] = vals
	}

	return Series{Window: window, Times: times, Values: values}
}

// ResourceCumulativeSeries ramps each player's postgame total linearly
// across the match duration. It is an approximation for replays that only
// carry end-of-game totals.
func ResourceCumulativeSeries(m *Match, totals map[int]ResourceTotals, resource Resource, window int) (Series, error) {
	if _, ok := match.ParseResource(string(resource)); !ok {
		return Series{}, ErrUnsupportedResource
	}
	if len(totals) == 0 || m.DurationSeconds <= 0 {
		return Series{Window: window}, nil
	}

	edges := binEdges(m.DurationSeconds, window)
	times := edges[:len(edges)-1]

	values := make(map[int][]float64, len(m.Players))
	for _, p := range m.Players {
		total := totals[p.Number].Get(resource)
		vals := make([]float64, len(times))
		if len(vals) > 1 {
			floats.Span(vals, 0, total)
		} else if len(vals) == 1 {
			vals[0] = total
		}
		values[p.Number] = vals
	}

	return Series{Window: window, Times: times, Values: values}, nil
}

// spendSamples estimates resource spend events from production, build and
// research actions via the cost tables.
func spendSamples(m *Match, weigh func(Cost) float64) []sample {
	var samples []sample
	for _, act := range m.Actions {
		if act.Player == 0 {
			continue
		}
		name := PayloadUnitName(act.Payload)
		if name == "" {
			continue
		}

		var (
			c  Cost
			ok bool
		)
		count := 1.0
		switch {
		case act.Type.IsProduction():
			c, ok = UnitCost(name)
			count = float64(PayloadCount(act.Payload))
		case act.Type.IsBuild():
			c, ok = BuildingCost(name)
		case act.Type.IsResearch():
			c, ok = TechCost(name)
		}
		if !ok {
			continue
		}

		w := weigh(c) * count
		if w == 0 {
			continue
		}
		samples = append(samples, sample{t: act.Time, player: act.Player, weight: w})
	}
	return samples
}

// ResourceSpendSeries estimates per-window spend of one resource from the
// cost tables.
func ResourceSpendSeries(m *Match, resource Resource, window int) (Series, error) {
	if _, ok := match.ParseResource(string(resource)); !ok {
		return Series{}, ErrUnsupportedResource
	}
	samples := spendSamples(m, func(c Cost) float64 { return float64(c.Get(resource)) })
	return histogramSeries(samples, window), nil
}

// ResourceBalanceSeries approximates a player's stock of one resource as
// the starting amount minus cumulative estimated spend. Income is not
// modeled, so the curve is a lower bound on actual stock movement.
func ResourceBalanceSeries(m *Match, resource Resource, window int, start float64) (Series, error) {
	spend, err := ResourceSpendSeries(m, resource, window)
	if err != nil {
		return Series{}, err
	}
	if spend.Empty() {
		return spend, nil
	}

	values := make(map[int][]float64, len(spend.Values))
	for player, vals := range spend.Values {
		out := make([]float64, len(vals))
		running := start
		for i, v := range vals {
			running -= v
			out[i] = running
		}
		values[player] = out
	}
	return Series{Window: window, Times: spend.Times, Values: values}, nil
}

// TotalSpendSeries estimates all-resource spend per window. With
// cumulative set, each player's samples are running-summed; the cumulative
// form serves as a score proxy.
func TotalSpendSeries(m *Match, window int, cumulative bool) Series {
	samples := spendSamples(m, func(c Cost) float64 { return float64(c.Total()) })
	s := histogramSeries(samples, window)
	if !cumulative || s.Empty() {
		return s
	}
	for _, vals := range s.Values {
		running := 0.0
		for i, v := range vals {
			running += v
			vals[i] = running
		}
	}
	return s
}

// MilestoneKind classifies a match milestone.
type MilestoneKind string

// Milestone kinds.
const (
	MilestoneAge    MilestoneKind = "age"    // age-up research
	MilestoneCastle MilestoneKind = "castle" // castle construction
	MilestoneElite  MilestoneKind = "elite"  // elite unit upgrade
	MilestoneTech   MilestoneKind = "tech"   // key technology
	MilestoneTC     MilestoneKind = "tc"     // additional town center
)

// Milestone is a notable match event used for chart markers.
type Milestone struct {
	TimeSeconds float64       `json:"time_sec"`
	Player      int           `json:"player"`
	Kind        MilestoneKind `json:"kind"`
	Label       string        `json:"label"`
}

// ImportantEvents extracts match milestones: age-ups, castles, elite
// upgrades, key technologies and additional town centers.
func ImportantEvents(m *Match) []Milestone {
	var events []Milestone
	for _, act := range m.Actions {
		if act.Player == 0 {
			continue
		}
		name := PayloadUnitName(act.Payload)
		if name == "" {
			continue
		}

		var kind MilestoneKind
		switch {
		case act.Type.IsResearch():
			switch {
			case agePattern.MatchString(name):
				kind = MilestoneAge
			case elitePattern.MatchString(name):
				kind = MilestoneElite
			case keyTechPattern.MatchString(name):
				kind = MilestoneTech
			}
		case act.Type.IsBuild():
			switch {
			case tcPattern.MatchString(name):
				kind = MilestoneTC
			case castlePattern.MatchString(name):
				kind = MilestoneCastle
			}
		}
		if kind == "" {
			continue
		}

		events = append(events, Milestone{
			TimeSeconds: act.Time,
			Player:      act.Player,
			Kind:        kind,
			Label:       name,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimeSeconds < events[j].TimeSeconds
	})
	return events
}
