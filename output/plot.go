package output

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// metric selects one counter from a run for plotting
type metric struct {
	title string
	value func(RunResult) float64
}

var plottedMetrics = []metric{
	{"Comparisons", func(r RunResult) float64 { return float64(r.Counters.Comparisons) }},
	{"Auxiliary element slots", func(r RunResult) float64 { return float64(r.Counters.AuxElements) }},
	{"Duration (us)", func(r RunResult) float64 { return float64(r.DurationUS) }},
}

// PlotComparisons writes an HTML page with one line chart per scenario and
// metric: input size on the x axis, the mean over repeats per algorithm on
// the y axis.
func PlotComparisons(report *Report, filename string) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	charted := 0
	for _, scenario := range report.Scenarios {
		if len(scenario.Sizes) == 0 {
			continue
		}
		for _, m := range plottedMetrics {
			page.AddCharts(scenarioChart(scenario, m))
			charted++
		}
	}
	if charted == 0 {
		return fmt.Errorf("nothing to plot: report has no scenario results")
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create plot file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}
	return nil
}

func scenarioChart(scenario ScenarioResult, m metric) *charts.Line {
	sizes := make([]string, len(scenario.Sizes))
	for i, s := range scenario.Sizes {
		sizes[i] = strconv.Itoa(s.Size)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "900px",
			Height:          "450px",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s: %s", scenario.Name, m.title),
			Subtitle: "distribution " + scenario.Distribution,
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "n",
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: m.title,
			Type: "value",
		}),
	)
	line.SetXAxis(sizes)

	for _, name := range algorithmsIn(scenario) {
		data := make([]opts.LineData, len(scenario.Sizes))
		for i, size := range scenario.Sizes {
			data[i] = opts.LineData{Value: meanOf(size.Runs, name, m)}
		}
		line.AddSeries(name, data)
	}
	return line
}

func algorithmsIn(scenario ScenarioResult) []string {
	seen := make(map[string]bool)
	var names []string
	for _, size := range scenario.Sizes {
		for _, run := range size.Runs {
			if !seen[run.Algorithm] {
				seen[run.Algorithm] = true
				names = append(names, run.Algorithm)
			}
		}
	}
	sort.Strings(names)
	return names
}

func meanOf(runs []RunResult, algorithm string, m metric) float64 {
	var total float64
	var count int
	for _, run := range runs {
		if run.Algorithm == algorithm && run.Error == "" {
			total += m.value(run)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
