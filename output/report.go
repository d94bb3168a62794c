package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/ChristianF88/sortx/sortutil"
	"github.com/ChristianF88/sortx/version"
)

// Report is the complete benchmark output
type Report struct {
	Metadata  Metadata           `json:"metadata"`
	Settings  Settings           `json:"settings"`
	Scenarios []ScenarioResult   `json:"scenarios"`
	Summary   []AlgorithmSummary `json:"summary"`
	Warnings  []Warning          `json:"warnings"`
	Errors    []Error            `json:"errors"`

	// Mutex for thread-safe warning/error appending
	mu sync.Mutex `json:"-"`
}

// Metadata contains information about the benchmark run
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`
	DurationMS  int64     `json:"duration_ms"`
}

// Settings echoes the knobs the run was executed with
type Settings struct {
	Seed           int64 `json:"seed"`
	Workers        int   `json:"workers"`
	MaxAuxElements int   `json:"max_aux_elements,omitempty"`
}

// ScenarioResult groups the runs of one configured scenario
type ScenarioResult struct {
	Name         string       `json:"name"`
	Distribution string       `json:"distribution"`
	Sizes        []SizeResult `json:"sizes"`
}

// SizeResult holds every run for one input size of a scenario
type SizeResult struct {
	Size int         `json:"size"`
	Runs []RunResult `json:"runs"`
	// Agreement is true when every algorithm produced identical output
	Agreement bool `json:"agreement"`
}

// RunResult is one sort of one input by one algorithm
type RunResult struct {
	Algorithm   string            `json:"algorithm"`
	Repeat      int               `json:"repeat"`
	DurationUS  int64             `json:"duration_us"`
	Counters    sortutil.Counters `json:"counters"`
	Sorted      bool              `json:"sorted"`
	Permutation bool              `json:"permutation"`
	Error       string            `json:"error,omitempty"`
}

// AlgorithmSummary aggregates every run of one algorithm
type AlgorithmSummary struct {
	Algorithm       string `json:"algorithm"`
	Runs            int    `json:"runs"`
	Failures        int    `json:"failures"`
	TotalDurationUS int64  `json:"total_duration_us"`
	Comparisons     int64  `json:"comparisons"`
	Moves           int64  `json:"moves"`
	AuxAcquisitions int64  `json:"aux_acquisitions"`
	AuxElements     int64  `json:"aux_elements"`
	PeakAuxLive     int64  `json:"peak_aux_live"`
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// NewReport creates a new Report with default metadata
func NewReport(startTime time.Time) *Report {
	return &Report{
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC(),
			Version:     version.Version,
			DurationMS:  time.Since(startTime).Milliseconds(),
		},
		Scenarios: []ScenarioResult{},
		Summary:   []AlgorithmSummary{},
		Warnings:  []Warning{},
		Errors:    []Error{},
	}
}

// ToJSON converts the report to pretty-printed JSON
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ToCompactJSON converts the report to compact JSON
func (r *Report) ToCompactJSON() ([]byte, error) {
	return json.Marshal(r)
}

// AddWarning adds a warning to the report (thread-safe)
func (r *Report) AddWarning(warningType, message string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Count:   count,
	})
}

// AddError adds an error to the report (thread-safe)
func (r *Report) AddError(errorType, message string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, Error{
		Type:    errorType,
		Message: message,
		Count:   count,
	})
}

// HasErrors reports whether any error was recorded (thread-safe)
func (r *Report) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Errors) > 0
}

// UpdateDuration updates the duration in metadata
func (r *Report) UpdateDuration(startTime time.Time) {
	r.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}

// Summarize rebuilds Summary from the scenario results, ordered by algorithm name.
func (r *Report) Summarize() {
	byAlgorithm := make(map[string]*AlgorithmSummary)
	for _, scenario := range r.Scenarios {
		for _, size := range scenario.Sizes {
			for _, run := range size.Runs {
				s, ok := byAlgorithm[run.Algorithm]
				if !ok {
					s = &AlgorithmSummary{Algorithm: run.Algorithm}
					byAlgorithm[run.Algorithm] = s
				}
				s.Runs++
				if run.Error != "" || !run.Sorted || !run.Permutation {
					s.Failures++
				}
				s.TotalDurationUS += run.DurationUS
				s.Comparisons += run.Counters.Comparisons
				s.Moves += run.Counters.Moves
				s.AuxAcquisitions += run.Counters.AuxAcquisitions
				s.AuxElements += run.Counters.AuxElements
				if run.Counters.PeakAuxLive > s.PeakAuxLive {
					s.PeakAuxLive = run.Counters.PeakAuxLive
				}
			}
		}
	}

	r.Summary = make([]AlgorithmSummary, 0, len(byAlgorithm))
	for _, s := range byAlgorithm {
		r.Summary = append(r.Summary, *s)
	}
	sort.Slice(r.Summary, func(i, j int) bool {
		return r.Summary[i].Algorithm < r.Summary[j].Algorithm
	})
}

// PlainText renders the report as aligned text tables for easy reading
func (r *Report) PlainText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sortx %s, seed %d, %d workers, %d ms\n\n",
		r.Metadata.Version, r.Settings.Seed, r.Settings.Workers, r.Metadata.DurationMS)

	for _, scenario := range r.Scenarios {
		fmt.Fprintf(&b, "Scenario %s (%s)\n", scenario.Name, scenario.Distribution)
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "size\talgorithm\trepeat\tus\tcomparisons\tmoves\taux allocs\taux slots\tpeak aux\tok")
		for _, size := range scenario.Sizes {
			for _, run := range size.Runs {
				ok := "yes"
				if run.Error != "" {
					ok = run.Error
				} else if !run.Sorted || !run.Permutation {
					ok = "NO"
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
					size.Size, run.Algorithm, run.Repeat, run.DurationUS,
					run.Counters.Comparisons, run.Counters.Moves,
					run.Counters.AuxAcquisitions, run.Counters.AuxElements,
					run.Counters.PeakAuxLive, ok)
			}
			if !size.Agreement {
				fmt.Fprintf(tw, "%d\t(algorithms disagree)\t\t\t\t\t\t\t\t\n", size.Size)
			}
		}
		tw.Flush()
		b.WriteString("\n")
	}

	if len(r.Summary) > 0 {
		b.WriteString("Summary\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "algorithm\truns\tfailures\ttotal us\tcomparisons\taux allocs\taux slots\tpeak aux")
		for _, s := range r.Summary {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
				s.Algorithm, s.Runs, s.Failures, s.TotalDurationUS, s.Comparisons,
				s.AuxAcquisitions, s.AuxElements, s.PeakAuxLive)
		}
		tw.Flush()
	}

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "warning [%s]: %s\n", w.Type, w.Message)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "error [%s]: %s\n", e.Type, e.Message)
	}
	return b.String()
}
