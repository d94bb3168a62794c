package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/ChristianF88/sortx/output"
	"github.com/ChristianF88/sortx/sortutil"
	"github.com/gdamore/tcell/v2"
)

func testReport() *output.Report {
	r := output.NewReport(time.Now())
	r.Settings = output.Settings{Seed: 1, Workers: 2}
	r.Scenarios = []output.ScenarioResult{
		{Name: "a", Distribution: "random", Sizes: []output.SizeResult{
			{Size: 3, Agreement: true, Runs: []output.RunResult{
				{Algorithm: "insertion", Sorted: true, Permutation: true, Counters: sortutil.Counters{Comparisons: 3}},
				{Algorithm: "merge-heap", Error: "auxiliary buffer allocation failed"},
			}},
		}},
		{Name: "b", Distribution: "sorted", Sizes: []output.SizeResult{
			{Size: 1, Agreement: true, Runs: []output.RunResult{
				{Algorithm: "merge-stack", Sorted: true, Permutation: true},
			}},
		}},
	}
	r.Summarize()
	r.AddError("sort_failed", "a merge-heap n=3", 1)
	return r
}

func TestRunRow(t *testing.T) {
	size := output.SizeResult{Size: 10, Agreement: true}
	tests := []struct {
		name string
		run  output.RunResult
		want string
	}{
		{"ok", output.RunResult{Sorted: true, Permutation: true}, "yes"},
		{"error", output.RunResult{Error: "boom"}, "boom"},
		{"unsorted", output.RunResult{Permutation: true}, "NO"},
	}
	for _, tt := range tests {
		row := runRow(size, tt.run)
		if len(row) != len(runColumns) {
			t.Fatalf("%s: row has %d cells, want %d", tt.name, len(row), len(runColumns))
		}
		if row[len(row)-1] != tt.want {
			t.Errorf("%s: status = %q, want %q", tt.name, row[len(row)-1], tt.want)
		}
	}

	size.Agreement = false
	row := runRow(size, output.RunResult{Sorted: true, Permutation: true})
	if row[len(row)-1] != "disagree" {
		t.Errorf("disagreeing size should be flagged, got %q", row[len(row)-1])
	}
}

func TestNewApp(t *testing.T) {
	a := NewApp(testReport())

	if a.scenarios.GetItemCount() != 2 {
		t.Errorf("expected 2 scenarios listed, got %d", a.scenarios.GetItemCount())
	}
	// header plus two runs of scenario a
	if a.runs.GetRowCount() != 3 {
		t.Errorf("expected 3 table rows, got %d", a.runs.GetRowCount())
	}
	if got := a.runs.GetCell(2, len(runColumns)-1).Text; got != "auxiliary buffer allocation failed" {
		t.Errorf("failed run should show its error, got %q", got)
	}

	a.showScenario(1)
	if a.runs.GetRowCount() != 2 {
		t.Errorf("expected 2 table rows for scenario b, got %d", a.runs.GetRowCount())
	}
	a.showScenario(5) // out of range is ignored
	if a.runs.GetRowCount() != 2 {
		t.Error("out-of-range selection should not change the table")
	}
}

func TestSummaryText(t *testing.T) {
	text := NewApp(testReport()).buildSummaryText()
	for _, want := range []string{"insertion", "merge-heap", "merge-stack", "sort_failed"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestFocusCycle(t *testing.T) {
	a := NewApp(testReport())
	a.handleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if a.currentFocus != 1 {
		t.Errorf("Tab should move focus to the runs table, got %d", a.currentFocus)
	}
	a.handleKey(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	if a.currentFocus != 0 {
		t.Errorf("Backtab should move focus back, got %d", a.currentFocus)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	if a.handleKey(ev) != ev {
		t.Error("unhandled keys should pass through")
	}
}
