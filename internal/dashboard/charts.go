package dashboard

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

// playerColors maps in-game color slots to chart colors.
var playerColors = map[int]string{
	1: "#0000ff", // blue
	2: "#ff0000", // red
	3: "#00aa00", // green
	4: "#cccc00", // yellow
	5: "#00ffff", // cyan
	6: "#9400d3", // purple
	7: "#808080", // gray
	8: "#ff8c00", // orange
}

// playerColor returns the chart color for a player, defaulting by the
// player's color slot and falling back to the player number.
func playerColor(m *aoe2stat.Match, player int) string {
	slot := player
	if p := m.PlayerByNumber(player); p != nil && p.ColorID > 0 {
		slot = p.ColorID
	}
	if c, ok := playerColors[slot]; ok {
		return c
	}
	return "#000000"
}

// timeAxis renders bin offsets as mm:ss labels.
func timeAxis(times []float64) []string {
	labels := make([]string, len(times))
	for i, t := range times {
		labels[i] = fmt.Sprintf("%d:%02d", int(t)/60, int(t)%60)
	}
	return labels
}

// lineChart renders a per-player series as a go-echarts line chart with
// milestone markers.
func (s *Server) lineChart(m *aoe2stat.Match, series aoe2stat.Series, title, yName string, milestones []aoe2stat.Milestone) components.Charter {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     s.cfg.Theme,
			Width:     "1100px",
			Height:    "560px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%s | window %ds", m.MapName, series.Window),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "game time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)

	line.SetXAxis(timeAxis(series.Times))
	for _, player := range series.PlayerNumbers() {
		vals := series.Values[player]
		data := make([]opts.LineData, len(vals))
		for i, v := range vals {
			data[i] = opts.LineData{Value: v}
		}

		marks := make([]opts.MarkLineNameXAxisItem, 0, 4)
		for _, ms := range milestones {
			if ms.Player != player {
				continue
			}
			marks = append(marks, opts.MarkLineNameXAxisItem{
				Name:  fmt.Sprintf("%s (%s)", ms.Label, ms.Kind),
				XAxis: fmt.Sprintf("%d:%02d", int(ms.TimeSeconds)/60, int(ms.TimeSeconds)%60),
			})
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{Color: playerColor(m, player)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: playerColor(m, player)}),
		}
		for _, mark := range marks {
			seriesOpts = append(seriesOpts, charts.WithMarkLineNameXAxisItemOpts(mark))
		}
		line.AddSeries(m.PlayerName(player), data, seriesOpts...)
	}
	return line
}

// apmBarChart renders per-player mean APM with the standard deviation in
// the label.
func (s *Server) apmBarChart(m *aoe2stat.Match, summary map[int]aoe2stat.APMStat, players []int) components.Charter {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "APM summary",
			Theme:     s.cfg.Theme,
			Width:     "520px",
			Height:    "560px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Mean APM"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	names := make([]string, 0, len(players))
	data := make([]opts.BarData, 0, len(players))
	for _, player := range players {
		st, ok := summary[player]
		if !ok {
			continue
		}
		names = append(names, m.PlayerName(player))
		data = append(data, opts.BarData{
			Value: st.Mean,
			Name:  fmt.Sprintf("%s ±%.0f", m.PlayerName(player), st.Std),
			ItemStyle: &opts.ItemStyle{
				Color: playerColor(m, player),
			},
		})
	}
	bar.SetXAxis(names)
	bar.AddSeries("mean apm", data)
	return bar
}
