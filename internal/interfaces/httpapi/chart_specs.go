package httpapi

import (
	"fmt"

	"github.com/riskibarqy/draft-league-dashboard/internal/domain/leaguestanding"
	"github.com/riskibarqy/draft-league-dashboard/internal/usecase"
)

const (
	vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"
	chartWidth     = 700
	chartHeight    = 400
)

// chartSpec is a Vega-Lite v5 specification with inline data.
type chartSpec struct {
	Schema   string         `json:"$schema"`
	Title    string         `json:"title"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Data     chartData      `json:"data"`
	Mark     chartMark      `json:"mark"`
	Encoding map[string]any `json:"encoding"`
}

type chartData struct {
	Values []map[string]any `json:"values"`
}

type chartMark struct {
	Type    string `json:"type"`
	Color   string `json:"color,omitempty"`
	Tooltip bool   `json:"tooltip"`
}

type chartSpecsDTO struct {
	Totals    chartSpec `json:"totals"`
	Histogram chartSpec `json:"histogram"`
	Top       chartSpec `json:"top"`
	Wins      chartSpec `json:"wins"`
	Losses    chartSpec `json:"losses"`
	Draws     chartSpec `json:"draws"`
}

func buildChartSpecs(d usecase.Dashboard) chartSpecsDTO {
	topPoints := make([]leaguestanding.Point, 0, len(d.Top))
	for _, r := range d.Top {
		topPoints = append(topPoints, leaguestanding.Point{LeagueEntry: r.LeagueEntry, Label: r.EntryName, Value: r.Total})
	}

	top := teamBarChart(topChartTitle(d.TopN), "total", "Total Points", "", topPoints)
	top.Encoding["color"] = map[string]any{"field": "entry_name", "type": "nominal", "legend": nil}

	return chartSpecsDTO{
		Totals:    teamBarChart("Total Points Distribution", "total", "Total Points", "", d.Totals),
		Histogram: histogramChart(d.Histogram),
		Top:       top,
		Wins:      teamBarChart("Wins", "matches_won", "Wins", "green", d.Wins),
		Losses:    teamBarChart("Losses", "matches_lost", "Losses", "red", d.Losses),
		Draws:     teamBarChart("Draws", "matches_drawn", "Draws", "blue", d.Draws),
	}
}

// topChartTitle names the top chart after the configured size, falling back
// to the default when the dashboard did not record one.
func topChartTitle(n int) string {
	if n <= 0 {
		n = usecase.DefaultTopN
	}
	return fmt.Sprintf("Top %d Scoring Teams", n)
}

func teamBarChart(title, field, axisTitle, color string, points []leaguestanding.Point) chartSpec {
	values := make([]map[string]any, 0, len(points))
	for _, p := range points {
		values = append(values, map[string]any{
			"league_entry": p.LeagueEntry,
			"entry_name":   p.Label,
			field:          p.Value,
		})
	}

	return chartSpec{
		Schema: vegaLiteSchema,
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Data:   chartData{Values: values},
		Mark:   chartMark{Type: "bar", Color: color, Tooltip: true},
		Encoding: map[string]any{
			"x": map[string]any{"field": "entry_name", "type": "nominal", "sort": "-y", "title": "Team Name"},
			"y": map[string]any{"field": field, "type": "quantitative", "title": axisTitle},
			"tooltip": []map[string]any{
				{"field": "entry_name", "type": "nominal"},
				{"field": field, "type": "quantitative"},
			},
		},
	}
}

// histogramChart plots bins computed server-side, so the browser does not
// re-bin the totals.
func histogramChart(bins []leaguestanding.Bin) chartSpec {
	values := make([]map[string]any, 0, len(bins))
	for _, b := range bins {
		values = append(values, map[string]any{
			"bin_start": b.Start,
			"bin_end":   b.End,
			"count":     b.Count,
		})
	}

	return chartSpec{
		Schema: vegaLiteSchema,
		Title:  "Histogram of Total Points",
		Width:  chartWidth,
		Height: chartHeight,
		Data:   chartData{Values: values},
		Mark:   chartMark{Type: "bar", Tooltip: true},
		Encoding: map[string]any{
			"x":  map[string]any{"field": "bin_start", "type": "quantitative", "bin": "binned", "title": "Total Points"},
			"x2": map[string]any{"field": "bin_end"},
			"y":  map[string]any{"field": "count", "type": "quantitative", "title": "Count of Teams"},
			"tooltip": []map[string]any{
				{"field": "bin_start", "type": "quantitative", "title": "From"},
				{"field": "bin_end", "type": "quantitative", "title": "To"},
				{"field": "count", "type": "quantitative", "title": "Count of Teams"},
			},
		},
	}
}
