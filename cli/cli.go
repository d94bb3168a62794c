package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ChristianF88/sortx/algorithms"
	"github.com/ChristianF88/sortx/config"
	"github.com/ChristianF88/sortx/version"
	"github.com/ChristianF88/sortx/workload"
	cli "github.com/urfave/cli/v2"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file (mutually exclusive with scenario flags)",
	}
	maxAuxFlag = &cli.IntFlag{
		Name:  "maxAux",
		Usage: "Largest auxiliary buffer, in elements, a merge sort may acquire (0 = unlimited)",
	}

	// Sort-specific flags
	algorithmFlag = &cli.StringFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Usage:   "Sorting algorithm (insertion, merge-heap, merge-stack)",
		Value:   algorithms.MergeHeap,
	}
	inputFlag = &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "File of integers separated by whitespace or commas ('-' for stdin)",
		Value:   "-",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Where to write the sorted integers, one per line ('-' for stdout)",
		Value:   "-",
	}
	lengthFlag = &cli.IntFlag{
		Name:  "length",
		Usage: "Sort only the first N values (default: all)",
		Value: WholeInput,
	}
	statsFlag = &cli.BoolFlag{
		Name:  "stats",
		Usage: "Print comparison and auxiliary storage counters as JSON to stderr",
	}

	// Bench-specific flags
	sizesFlag = &cli.StringFlag{
		Name:  "sizes",
		Usage: "Comma-separated input sizes (e.g., '10,100,1000')",
		Value: "10,100,1000",
	}
	distributionFlag = &cli.StringFlag{
		Name:  "distribution",
		Usage: "Input distribution (random, sorted, reversed, fewunique, sawtooth)",
		Value: string(workload.Random),
	}
	algorithmsFlag = &cli.StringSliceFlag{
		Name:  "algorithms",
		Usage: "Algorithms to compare (default: all)",
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for generated inputs",
		Value: config.DefaultSeed,
	}
	repeatFlag = &cli.IntFlag{
		Name:  "repeat",
		Usage: "How many times to sort each input",
		Value: 1,
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of benchmark goroutines (0 = one per CPU)",
	}

	// Output flags
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the HTML chart (e.g., '/tmp/sortx.html'). If not provided, no plot will be generated.",
	}
	reportPathFlag = &cli.StringFlag{
		Name:  "reportPath",
		Usage: "Also write the JSON report to this file",
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output plain text format for easy readability",
		Value: false,
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Browse the results in a Terminal User Interface",
		Value: false,
	}
)

// validateConfigModeFlags rejects scenario flags when a config file drives the run
func validateConfigModeFlags(c *cli.Context, allowedFlags []string) error {
	allowed := make(map[string]bool)
	for _, flag := range allowedFlags {
		allowed[flag] = true
	}

	flagsToCheck := []string{
		"sizes", "distribution", "algorithms", "seed", "repeat", "workers",
		"maxAux", "plotPath", "reportPath", "compact", "plain", "tui",
	}

	for _, flag := range flagsToCheck {
		if c.IsSet(flag) && !allowed[flag] {
			return fmt.Errorf("when using --config, only %v flags are allowed", allowedFlags)
		}
	}
	return nil
}

// parseSizes parses a comma-separated list of sizes between 0 and workload.MaxSize
func parseSizes(input string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", part, err)
		}
		if size < 0 {
			return nil, fmt.Errorf("invalid size %d: must not be negative", size)
		}
		if size > workload.MaxSize {
			return nil, fmt.Errorf("invalid size %d: must not exceed %d", size, workload.MaxSize)
		}
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return sizes, nil
}

func validatePlotPath(plotPath string) error {
	if plotPath != "" {
		plotDir := filepath.Dir(plotPath)
		if plotDir == "." {
			plotDir, _ = os.Getwd()
		}
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}
	return nil
}

func validateInputFileExists(path string) error {
	if path == "" || path == "-" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	return nil
}

// handleSortCommand sorts one sequence read from a file or stdin
func handleSortCommand(c *cli.Context) error {
	name := c.String("algorithm")
	if !algorithms.IsValid(name) {
		return fmt.Errorf("unknown algorithm %q (available: %v)", name, algorithms.Names())
	}
	if err := validateInputFileExists(c.String("input")); err != nil {
		return err
	}
	if c.Int("maxAux") < 0 {
		return fmt.Errorf("maxAux must not be negative")
	}

	return SortFile(SortOptions{
		Algorithm:      name,
		InputPath:      c.String("input"),
		OutputPath:     c.String("output"),
		Length:         c.Int("length"),
		MaxAuxElements: c.Int("maxAux"),
		Stats:          c.Bool("stats"),
	}, c.App.ErrWriter)
}

// handleBenchCommand processes the bench command in config or flags mode
func handleBenchCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleBenchConfigMode(c, configPath)
	}
	return handleBenchFlagsMode(c)
}

// handleBenchConfigMode runs every scenario of a config file
func handleBenchConfigMode(c *cli.Context, configPath string) error {
	if err := validateConfigModeFlags(c, []string{"compact", "plain", "tui"}); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validatePlotPath(cfg.Global.PlotPath); err != nil {
		return err
	}

	return Bench(cfg, outputConfigFrom(c), c.App.Writer)
}

// handleBenchFlagsMode builds a single scenario from CLI flags
func handleBenchFlagsMode(c *cli.Context) error {
	sizes, err := parseSizes(c.String("sizes"))
	if err != nil {
		return err
	}
	if err := validatePlotPath(c.String("plotPath")); err != nil {
		return err
	}

	cfg := config.NewConfig()
	cfg.Global.Seed = c.Int64("seed")
	cfg.Global.Workers = c.Int("workers")
	cfg.Global.MaxAuxElements = c.Int("maxAux")
	cfg.Global.PlotPath = c.String("plotPath")
	cfg.Global.ReportPath = c.String("reportPath")

	names := c.StringSlice("algorithms")
	if len(names) == 0 {
		names = algorithms.Names()
	}
	distribution := workload.Distribution(c.String("distribution"))
	cfg.Scenarios[string(distribution)] = &config.ScenarioConfig{
		Name:         string(distribution),
		Distribution: distribution,
		Sizes:        sizes,
		Algorithms:   names,
		Repeat:       c.Int("repeat"),
	}

	if cfg.Global.Workers < 0 || cfg.Global.MaxAuxElements < 0 {
		return fmt.Errorf("workers and maxAux must not be negative")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return Bench(cfg, outputConfigFrom(c), c.App.Writer)
}

func outputConfigFrom(c *cli.Context) OutputConfig {
	return OutputConfig{
		Compact: c.Bool("compact"),
		Plain:   c.Bool("plain"),
		TUI:     c.Bool("tui"),
	}
}

func handleAlgorithmsCommand(c *cli.Context) error {
	for _, name := range algorithms.Names() {
		fmt.Fprintln(c.App.Writer, name)
	}
	return nil
}

var App = &cli.App{
	Name:     "sortx",
	Usage:    "Sort integer sequences in place and compare sorting strategies",
	Version:  version.Version,
	Compiled: parseDate(version.Date),
	Commands: []*cli.Command{
		{
			Name:  "sort",
			Usage: "Sort integers from a file or stdin",
			Flags: []cli.Flag{
				algorithmFlag,
				inputFlag,
				outputFlag,
				lengthFlag,
				maxAuxFlag,
				statsFlag,
			},
			Action: handleSortCommand,
		},
		{
			Name:  "bench",
			Usage: "Run every algorithm over generated inputs and report counters",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Scenario flags
				sizesFlag,
				distributionFlag,
				algorithmsFlag,
				seedFlag,
				repeatFlag,
				workersFlag,
				maxAuxFlag,
				// Output flags
				plotPathFlag,
				reportPathFlag,
				compactFlag,
				plainFlag,
				tuiFlag,
			},
			Action: handleBenchCommand,
		},
		{
			Name:   "algorithms",
			Usage:  "List the available algorithms",
			Action: handleAlgorithmsCommand,
		},
	},
}
