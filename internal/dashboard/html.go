package dashboard

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
<title>aoe2stat</title>
<style>
body { font-family: sans-serif; margin: 1.5em; }
iframe { border: 1px solid #ccc; width: 100%%; height: 640px; margin-top: 1em; }
form { margin: 0.5em 0; }
fieldset { border: 1px solid #ddd; margin-bottom: 0.5em; }
input[type=text] { width: 28em; }
input[type=number] { width: 5em; }
input[name=players] { width: 8em; }
</style>
</head>
<body>
<h1>aoe2stat</h1>
<p>%s</p>
<form method="post" action="/open">
  <input type="text" name="path" placeholder="path to .aoe2record or .json" />
  <button type="submit">Open</button>
</form>
%s
<iframe name="chart" src="%s"></iframe>
</body>
</html>
`

// tabs are the dashboard chart pages. Controls holds the extra form
// inputs each chart accepts beyond window and players.
var tabs = []struct {
	Label    string
	Path     string
	Controls func(b *strings.Builder)
}{
	{"APM", "/charts/apm", nil},
	{"Units", "/charts/units", unitControls},
	{"Idle", "/charts/idle", nil},
	{"Resources", "/charts/resources", resourceControls},
	{"Stock", "/charts/stock", stockControls},
	{"Score", "/charts/score", nil},
}

func unitControls(b *strings.Builder) {
	b.WriteString(`<select name="unit">`)
	for _, name := range aoe2stat.UnitNames() {
		selected := ""
		if name == "Villager" {
			selected = ` selected`
		}
		fmt.Fprintf(b, `<option%s>%s</option>`, selected, html.EscapeString(name))
	}
	b.WriteString(`</select> `)
}

func resourceSelect(b *strings.Builder) {
	b.WriteString(`<select name="resource">`)
	for _, name := range aoe2stat.ResourceNames() {
		fmt.Fprintf(b, `<option>%s</option>`, html.EscapeString(name))
	}
	b.WriteString(`</select> `)
}

func resourceControls(b *strings.Builder) {
	resourceSelect(b)
	b.WriteString(`<select name="mode"><option>auto</option><option>postgame</option><option>spend</option></select> `)
}

func stockControls(b *strings.Builder) {
	resourceSelect(b)
	b.WriteString(`<label>stock <input type="number" name="stock" min="0" placeholder="200" /></label> `)
}

// chartForms renders one GET form per chart, all targeting the chart
// iframe. Plain form submission keeps the shell free of scripting.
func chartForms(windowSec int) string {
	var b strings.Builder
	for _, tab := range tabs {
		fmt.Fprintf(&b, `<fieldset><legend>%s</legend><form method="get" action="%s" target="chart">`,
			tab.Label, tab.Path)
		if tab.Controls != nil {
			tab.Controls(&b)
		}
		fmt.Fprintf(&b, `<label>window <input type="number" name="window" min="5" max="600" value="%d" /></label> `, windowSec)
		b.WriteString(`<label>players <input type="text" name="players" placeholder="1,2" /></label> `)
		b.WriteString(`<button type="submit">Draw</button></form></fieldset>`)
		b.WriteString("\n")
	}
	return b.String()
}

// indexHTML renders the dashboard shell.
func (s *Server) indexHTML(path string, m *aoe2stat.Match) string {
	status := "No replay loaded."
	if m != nil {
		players := make([]string, len(m.Players))
		for i, p := range m.Players {
			players[i] = p.Name
		}
		status = fmt.Sprintf("%s on %s (%s)",
			html.EscapeString(strings.Join(players, " vs ")),
			html.EscapeString(m.MapName),
			html.EscapeString(path),
		)
	}

	return fmt.Sprintf(indexTemplate, status, chartForms(s.cfg.WindowSec), tabs[0].Path)
}

// renderUnavailable writes a plain page explaining why a chart cannot be
// drawn for the loaded replay.
func (s *Server) renderUnavailable(w http.ResponseWriter, metric, reason string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html><html><body><h2>%s unavailable</h2><p>%s.</p></body></html>`,
		html.EscapeString(metric), html.EscapeString(reason))
}
