package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ChristianF88/sortx/algorithms"
	"github.com/ChristianF88/sortx/analysis"
	"github.com/ChristianF88/sortx/config"
	"github.com/ChristianF88/sortx/ingestor"
	"github.com/ChristianF88/sortx/output"
	"github.com/ChristianF88/sortx/sortutil"
	"github.com/ChristianF88/sortx/tui"
)

// WholeInput as SortOptions.Length sorts every value read.
const WholeInput = -1

// SortOptions describe one sort command invocation
type SortOptions struct {
	Algorithm      string
	InputPath      string
	OutputPath     string
	Length         int // WholeInput or a prefix length
	MaxAuxElements int
	Stats          bool
}

// OutputConfig contains output formatting options
type OutputConfig struct {
	Compact bool
	Plain   bool
	TUI     bool
}

// sortStats is what --stats prints
type sortStats struct {
	Algorithm  string            `json:"algorithm"`
	Length     int               `json:"length"`
	DurationUS int64             `json:"duration_us"`
	Counters   sortutil.Counters `json:"counters"`
}

// SortFile reads integers, sorts the requested prefix in place and writes
// the whole sequence back out. Counters go to statsWriter when requested.
func SortFile(opts SortOptions, statsWriter io.Writer) error {
	values, err := ingestor.ReadFile(opts.InputPath)
	if err != nil {
		return err
	}

	length := opts.Length
	if length == WholeInput {
		length = len(values)
	}

	var counters sortutil.Counters
	sorter, err := algorithms.New(opts.Algorithm, algorithms.Options{
		MaxAuxElements: opts.MaxAuxElements,
		Counters:       &counters,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	if err := sorter.Sort(values, length); err != nil {
		return fmt.Errorf("sorting with %s: %w", opts.Algorithm, err)
	}
	duration := time.Since(start)

	if err := ingestor.WriteFile(opts.OutputPath, values); err != nil {
		return err
	}

	if opts.Stats {
		stats, err := json.Marshal(sortStats{
			Algorithm:  opts.Algorithm,
			Length:     length,
			DurationUS: duration.Microseconds(),
			Counters:   counters,
		})
		if err != nil {
			return fmt.Errorf("encoding stats: %w", err)
		}
		fmt.Fprintln(statsWriter, string(stats))
	}
	return nil
}

// Bench runs the configured scenarios and presents the report.
// It returns an error when the run recorded failures so the exit code
// reflects them.
func Bench(cfg *config.Config, outputConfig OutputConfig, w io.Writer) error {
	report, err := analysis.Run(cfg)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	if cfg.Global.PlotPath != "" {
		plotStart := time.Now()
		if err := output.PlotComparisons(report, cfg.Global.PlotPath); err != nil {
			report.AddError("plot", err.Error(), 1)
		} else {
			report.AddWarning("info", fmt.Sprintf("Plot generated in %v at %s", time.Since(plotStart), cfg.Global.PlotPath), 0)
		}
	}

	if cfg.Global.ReportPath != "" {
		if err := writeReportFile(report, cfg.Global.ReportPath); err != nil {
			report.AddError("report", err.Error(), 1)
		}
	}

	if outputConfig.TUI {
		if err := tui.NewApp(report).Run(); err != nil {
			return fmt.Errorf("running TUI: %w", err)
		}
	} else if err := outputResult(report, outputConfig, w); err != nil {
		return err
	}

	if report.HasErrors() {
		return fmt.Errorf("benchmark recorded %d error(s)", len(report.Errors))
	}
	return nil
}

func outputResult(report *output.Report, outputConfig OutputConfig, w io.Writer) error {
	if outputConfig.Plain {
		_, err := io.WriteString(w, report.PlainText())
		return err
	}

	var data []byte
	var err error
	if outputConfig.Compact {
		data, err = report.ToCompactJSON()
	} else {
		data, err = report.ToJSON()
	}
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeReportFile(report *output.Report, path string) error {
	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
