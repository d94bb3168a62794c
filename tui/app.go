package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ChristianF88/sortx/output"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App browses a benchmark report: scenarios on the left, the runs of the
// selected scenario on the right and the per-algorithm summary below.
type App struct {
	app       *tview.Application
	scenarios *tview.List
	runs      *tview.Table
	summary   *tview.TextView
	statusBar *tview.TextView

	report         *output.Report
	focusableItems []tview.Primitive
	currentFocus   int
}

var runColumns = []string{"size", "algorithm", "rep", "us", "comparisons", "moves", "aux allocs", "aux slots", "peak aux", "ok"}

// NewApp creates a TUI application for the given report
func NewApp(report *output.Report) *App {
	a := &App{
		app:       tview.NewApplication(),
		scenarios: tview.NewList(),
		runs:      tview.NewTable(),
		summary:   tview.NewTextView(),
		statusBar: tview.NewTextView(),
		report:    report,
	}
	a.setupUI()
	return a
}

func (a *App) setupUI() {
	a.scenarios.ShowSecondaryText(true).SetBorder(true).SetTitle(" Scenarios ")
	for i, s := range a.report.Scenarios {
		idx := i
		a.scenarios.AddItem(s.Name, s.Distribution, 0, func() { a.showScenario(idx) })
	}
	a.scenarios.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		a.showScenario(index)
	})

	a.runs.SetBorders(false).SetSelectable(true, false).SetFixed(1, 0)
	a.runs.SetBorder(true).SetTitle(" Runs ")

	a.summary.SetDynamicColors(true).SetBorder(true).SetTitle(" Summary ")
	a.summary.SetText(a.buildSummaryText())

	a.statusBar.SetDynamicColors(true)
	a.statusBar.SetText("[yellow]Tab[white] switch panel  [yellow]↑/↓[white] navigate  [yellow]q/Esc[white] quit")

	a.focusableItems = []tview.Primitive{a.scenarios, a.runs}

	top := tview.NewFlex().
		AddItem(a.scenarios, 0, 1, true).
		AddItem(a.runs, 0, 4, false)
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, true).
		AddItem(a.summary, 0, 1, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetInputCapture(a.handleKey)
	a.app.SetRoot(layout, true).SetFocus(a.scenarios)

	if len(a.report.Scenarios) > 0 {
		a.showScenario(0)
	}
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		a.app.Stop()
		return nil
	case tcell.KeyTab:
		a.nextFocus()
		return nil
	case tcell.KeyBacktab:
		a.prevFocus()
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			a.app.Stop()
			return nil
		}
	}
	return event
}

// Run starts the event loop and blocks until the user quits
func (a *App) Run() error {
	return a.app.Run()
}

func (a *App) showScenario(index int) {
	if index < 0 || index >= len(a.report.Scenarios) {
		return
	}
	a.runs.Clear()
	for col, name := range runColumns {
		a.runs.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	row := 1
	for _, size := range a.report.Scenarios[index].Sizes {
		for _, run := range size.Runs {
			for col, text := range runRow(size, run) {
				cell := tview.NewTableCell(text)
				if col == len(runColumns)-1 && text != "yes" {
					cell.SetTextColor(tcell.ColorRed)
				}
				a.runs.SetCell(row, col, cell)
			}
			row++
		}
	}
	a.runs.SetTitle(fmt.Sprintf(" Runs: %s ", a.report.Scenarios[index].Name))
}

func runRow(size output.SizeResult, run output.RunResult) []string {
	ok := "yes"
	switch {
	case run.Error != "":
		ok = run.Error
	case !run.Sorted || !run.Permutation:
		ok = "NO"
	case !size.Agreement:
		ok = "disagree"
	}
	return []string{
		strconv.Itoa(size.Size),
		run.Algorithm,
		strconv.Itoa(run.Repeat),
		strconv.FormatInt(run.DurationUS, 10),
		strconv.FormatInt(run.Counters.Comparisons, 10),
		strconv.FormatInt(run.Counters.Moves, 10),
		strconv.FormatInt(run.Counters.AuxAcquisitions, 10),
		strconv.FormatInt(run.Counters.AuxElements, 10),
		strconv.FormatInt(run.Counters.PeakAuxLive, 10),
		ok,
	}
}

func (a *App) buildSummaryText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[green]sortx %s[white]  seed %d  workers %d  %d ms\n",
		a.report.Metadata.Version, a.report.Settings.Seed, a.report.Settings.Workers, a.report.Metadata.DurationMS)
	for _, s := range a.report.Summary {
		fmt.Fprintf(&b, "[yellow]%-12s[white] runs %-4d failures %-3d comparisons %-12d aux allocs %-8d aux slots %-10d peak %d\n",
			s.Algorithm, s.Runs, s.Failures, s.Comparisons, s.AuxAcquisitions, s.AuxElements, s.PeakAuxLive)
	}
	for _, e := range a.report.Errors {
		fmt.Fprintf(&b, "[red]error[white] %s: %s\n", e.Type, e.Message)
	}
	for _, w := range a.report.Warnings {
		fmt.Fprintf(&b, "[orange]warning[white] %s: %s\n", w.Type, w.Message)
	}
	return b.String()
}

func (a *App) nextFocus() {
	a.currentFocus = (a.currentFocus + 1) % len(a.focusableItems)
	a.app.SetFocus(a.focusableItems[a.currentFocus])
}

func (a *App) prevFocus() {
	a.currentFocus = (a.currentFocus - 1 + len(a.focusableItems)) % len(a.focusableItems)
	a.app.SetFocus(a.focusableItems[a.currentFocus])
}
