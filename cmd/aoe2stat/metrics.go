package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

var (
	// metrics flags
	metricsMetric   string
	metricsWindow   int
	metricsUnit     string
	metricsResource string
	metricsStock    float64
	metricsPlayers  []int
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [replay-file]",
	Short: "Compute a match metric as JSON",
	Long: `Compute one metric for a replay and print it as JSON.

Examples:
  # APM time series for the newest replay
  aoe2stat metrics --metric apm

  # Knight production in 30-second bins
  aoe2stat metrics --metric units --unit Knight --window 30 game.aoe2record

  # Town center idle time, player 1 only
  aoe2stat metrics --metric idle-series --players 1 game.aoe2record

  # Estimated food stock from a 200-food start
  aoe2stat metrics --metric balance --resource food --stock 200 game.aoe2record

  # Match milestones
  aoe2stat metrics --metric events game.aoe2record | jq '.events[]'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().StringVarP(&metricsMetric, "metric", "m", "apm",
		"Metric to compute: "+strings.Join(ValidMetricNames(), ", "))
	metricsCmd.Flags().IntVarP(&metricsWindow, "window", "w", 60,
		"Bin width in seconds for time series metrics")
	metricsCmd.Flags().StringVar(&metricsUnit, "unit", "Villager",
		"Unit name for the units metric")
	metricsCmd.Flags().StringVar(&metricsResource, "resource", "food",
		"Resource for the resources/spend/balance metrics")
	metricsCmd.Flags().Float64Var(&metricsStock, "stock", 0,
		"Starting stock for the balance metric (default per resource)")
	metricsCmd.Flags().IntSliceVar(&metricsPlayers, "players", nil,
		"Restrict series output to these player numbers")

	registerNameCompletion(metricsCmd, "metric", ValidMetricNames)
	registerNameCompletion(metricsCmd, "unit", ValidUnitNames)
	registerNameCompletion(metricsCmd, "resource", ValidResourceNames)
}

// metricOutput is the JSON envelope for the metrics subcommand.
type metricOutput struct {
	File      string                   `json:"file"`
	Metric    string                   `json:"metric"`
	Unit      string                   `json:"unit,omitempty"`
	Resource  string                   `json:"resource,omitempty"`
	Series    *aoe2stat.Series         `json:"series,omitempty"`
	Summary   map[int]aoe2stat.APMStat `json:"summary,omitempty"`
	Counts    map[int]int              `json:"counts,omitempty"`
	IdleTotal map[int]float64          `json:"idle_seconds,omitempty"`
	Events    []aoe2stat.Milestone     `json:"events,omitempty"`
	Names     map[int]string           `json:"player_names"`
}

func playerNames(m *aoe2stat.Match) map[int]string {
	names := make(map[int]string, len(m.Players))
	for _, p := range m.Players {
		names[p.Number] = p.Name
	}
	return names
}

func runMetrics(cmd *cobra.Command, args []string) error {
	metric, err := NormalizeMetric(metricsMetric)
	if err != nil {
		return err
	}
	if metricsWindow <= 0 {
		return fmt.Errorf("--window must be positive")
	}

	ctx, stop := signalContext()
	defer stop()

	log := logger()
	path, err := resolveReplay(ctx, args, log)
	if err != nil {
		return err
	}

	m, err := aoe2stat.Load(ctx, path, loadOptions(log)...)
	if err != nil {
		return err
	}

	out := metricOutput{File: path, Metric: metric, Names: playerNames(m)}

	setSeries := func(s aoe2stat.Series) {
		filtered := aoe2stat.FilterPlayers(s, metricsPlayers)
		out.Series = &filtered
	}

	switch metric {
	case "apm":
		s := aoe2stat.APMSeries(m, metricsWindow)
		setSeries(s)
		out.Summary = aoe2stat.APMSummary(s)
	case "units":
		name, pattern, err := NormalizeUnitName(metricsUnit)
		if err != nil {
			return err
		}
		out.Unit = name
		setSeries(aoe2stat.UnitCreatedSeries(m, pattern, metricsWindow))
	case "villagers":
		out.Counts = aoe2stat.VillagerCounts(m)
	case "idle":
		out.IdleTotal = aoe2stat.TCIdleTime(m)
	case "idle-series":
		setSeries(aoe2stat.TCIdleCumulativeSeries(m, metricsWindow))
	case "resources":
		resource, err := NormalizeResource(metricsResource)
		if err != nil {
			return err
		}
		out.Resource = string(resource)
		s, err := aoe2stat.ResourceCumulativeSeries(m, m.PostgameResources, resource, metricsWindow)
		if err != nil {
			return err
		}
		setSeries(s)
	case "spend":
		resource, err := NormalizeResource(metricsResource)
		if err != nil {
			return err
		}
		out.Resource = string(resource)
		s, err := aoe2stat.ResourceSpendSeries(m, resource, metricsWindow)
		if err != nil {
			return err
		}
		setSeries(s)
	case "balance":
		resource, err := NormalizeResource(metricsResource)
		if err != nil {
			return err
		}
		out.Resource = string(resource)
		stock := balanceStock(cmd.Flags().Changed("stock"), metricsStock, resource)
		s, err := aoe2stat.ResourceBalanceSeries(m, resource, metricsWindow, stock)
		if err != nil {
			return err
		}
		setSeries(s)
	case "score":
		setSeries(aoe2stat.TotalSpendSeries(m, metricsWindow, true))
	case "events":
		out.Events = aoe2stat.ImportantEvents(m)
	}

	return OutputJSON(out, os.Stdout)
}

// balanceStock picks the starting stock for the balance metric. An
// explicitly set flag wins even at zero; otherwise the dark age
// stockpile on standard settings applies.
func balanceStock(explicit bool, value float64, r aoe2stat.Resource) float64 {
	if explicit {
		return value
	}
	return defaultStock(r)
}

// defaultStock returns the dark age starting stockpile on standard
// settings.
func defaultStock(r aoe2stat.Resource) float64 {
	if r == aoe2stat.ResourceGold {
		return 100
	}
	return 200
}
