package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ChristianF88/sortx/algorithms"
	"github.com/ChristianF88/sortx/ingestor"
	"github.com/ChristianF88/sortx/output"
	"github.com/ChristianF88/sortx/sortutil"
	"github.com/ChristianF88/sortx/testutil"
)

// runApp runs the CLI with captured output
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	App.Writer = &stdout
	App.ErrWriter = &stderr
	defer func() {
		App.Writer = os.Stdout
		App.ErrWriter = os.Stderr
	}()
	err := App.Run(append([]string{"sortx"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"10,100,1000", []int{10, 100, 1000}, false},
		{" 5 , 0 ", []int{5, 0}, false},
		{"7,", []int{7}, false},
		{"", nil, true},
		{"ten", nil, true},
		{"-1", nil, true},
		{"4611686018427387904", nil, true},
		{"268435457", nil, true},
	}

	for _, tt := range tests {
		got, err := parseSizes(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseSizes(%q) expected error, got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSizes(%q) unexpected error: %v", tt.input, err)
		} else if !slices.Equal(got, tt.want) {
			t.Errorf("parseSizes(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSortCommand(t *testing.T) {
	for _, algorithm := range []string{"insertion", "merge-heap", "merge-stack"} {
		t.Run(algorithm, func(t *testing.T) {
			input := testutil.WriteIntsFile(t, []int{5, 3, 1, 4, 2}, ",")
			out := testutil.TempFilePath(t, "sorted_*.txt")

			_, stderr, err := runApp(t, "sort", "--algorithm", algorithm, "--input", input, "--output", out, "--stats")
			if err != nil {
				t.Fatalf("sort failed: %v", err)
			}

			got, err := ingestor.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, []int{1, 2, 3, 4, 5}) {
				t.Errorf("sorted output = %v", got)
			}

			var stats sortStats
			if err := json.Unmarshal([]byte(stderr), &stats); err != nil {
				t.Fatalf("--stats should print JSON, got %q: %v", stderr, err)
			}
			if stats.Algorithm != algorithm || stats.Length != 5 || stats.Counters.Comparisons == 0 {
				t.Errorf("unexpected stats %+v", stats)
			}
		})
	}
}

func TestSortCommand_Prefix(t *testing.T) {
	input := testutil.WriteIntsFile(t, []int{9, 8, 7, 1}, " ")
	out := testutil.TempFilePath(t, "sorted_*.txt")

	if _, _, err := runApp(t, "sort", "-i", input, "-o", out, "--length", "3"); err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	got, _ := ingestor.ReadFile(out)
	if !slices.Equal(got, []int{7, 8, 9, 1}) {
		t.Errorf("prefix sort output = %v", got)
	}
}

func TestSortCommand_Errors(t *testing.T) {
	input := testutil.WriteIntsFile(t, []int{3, 2, 1}, ",")
	out := testutil.TempFilePath(t, "sorted_*.txt")

	tests := []struct {
		name       string
		args       []string
		errorMatch string
	}{
		{"unknown algorithm", []string{"sort", "-a", "bogo", "-i", input, "-o", out}, "unknown algorithm"},
		{"missing input", []string{"sort", "-i", filepath.Join(t.TempDir(), "nope.txt"), "-o", out}, "does not exist"},
		{"length too long", []string{"sort", "-i", input, "-o", out, "--length", "4"}, "length out of range"},
		{"negative length", []string{"sort", "-i", input, "-o", out, "--length", "-5"}, "length out of range"},
		{"aux budget", []string{"sort", "-a", "merge-stack", "-i", input, "-o", out, "--maxAux", "2"}, "auxiliary buffer allocation failed"},
		{"negative aux", []string{"sort", "-i", input, "-o", out, "--maxAux", "-2"}, "maxAux"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errorMatch)
			}
			if !strings.Contains(err.Error(), tt.errorMatch) {
				t.Errorf("expected error to contain %q, got: %v", tt.errorMatch, err)
			}
		})
	}

	// failed sorts never write output
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file should not exist after failed sorts")
	}
}

func TestSortFile_NegativeLength(t *testing.T) {
	input := testutil.WriteIntsFile(t, []int{3, 2, 1}, " ")
	out := testutil.TempFilePath(t, "sorted_*.txt")

	for _, algorithm := range algorithms.Names() {
		err := SortFile(SortOptions{Algorithm: algorithm, InputPath: input, OutputPath: out, Length: -5}, io.Discard)
		if !errors.Is(err, sortutil.ErrLengthOutOfRange) {
			t.Errorf("%s: expected ErrLengthOutOfRange, got %v", algorithm, err)
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("a rejected length should not write output")
	}

	if err := SortFile(SortOptions{Algorithm: algorithms.Insertion, InputPath: input, OutputPath: out, Length: WholeInput}, io.Discard); err != nil {
		t.Fatal(err)
	}
	got, _ := ingestor.ReadFile(out)
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("WholeInput should sort everything, got %v", got)
	}
}

func TestBenchCommand_Flags(t *testing.T) {
	plot := filepath.Join(t.TempDir(), "plot.html")
	reportPath := filepath.Join(t.TempDir(), "report.json")

	stdout, _, err := runApp(t, "bench",
		"--sizes", "0,1,50",
		"--distribution", "reversed",
		"--repeat", "2",
		"--workers", "2",
		"--plotPath", plot,
		"--reportPath", reportPath,
		"--compact",
	)
	if err != nil {
		t.Fatalf("bench failed: %v\n%s", err, stdout)
	}

	var report output.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("compact output is not a report: %v", err)
	}
	if len(report.Scenarios) != 1 || report.Scenarios[0].Distribution != "reversed" {
		t.Fatalf("unexpected scenarios %+v", report.Scenarios)
	}
	if len(report.Summary) != 3 {
		t.Errorf("expected all three algorithms by default, got %d", len(report.Summary))
	}
	for _, path := range []string{plot, reportPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to be written: %v", path, err)
		}
	}
}

func TestBenchCommand_Plain(t *testing.T) {
	stdout, _, err := runApp(t, "bench", "--sizes", "8", "--algorithms", "insertion", "--algorithms", "merge-stack", "--plain")
	if err != nil {
		t.Fatalf("bench failed: %v", err)
	}
	if !strings.Contains(stdout, "Scenario random") || !strings.Contains(stdout, "merge-stack") {
		t.Errorf("unexpected plain output:\n%s", stdout)
	}
	if strings.Contains(stdout, "merge-heap") {
		t.Error("merge-heap was not requested")
	}
}

func TestBenchCommand_Config(t *testing.T) {
	cfgPath := testutil.WriteConfigFile(t, `
[global]
seed = 3
workers = 2

[bench.few]
distribution = "fewunique"
sizes = [10, 300]
repeat = 2
`)

	stdout, _, err := runApp(t, "bench", "--config", cfgPath)
	if err != nil {
		t.Fatalf("bench from config failed: %v", err)
	}
	var report output.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not a report: %v", err)
	}
	if report.Settings.Seed != 3 || report.Scenarios[0].Name != "few" {
		t.Errorf("config was not applied: %+v", report.Settings)
	}
}

func TestBenchCommand_Errors(t *testing.T) {
	cfgPath := testutil.WriteConfigFile(t, "[bench.a]\nsizes = [4]\n")
	budgetCfg := testutil.WriteConfigFile(t, "[global]\nmaxAuxElements = 2\n\n[bench.a]\nsizes = [4]\n")

	tests := []struct {
		name       string
		args       []string
		errorMatch string
	}{
		{"config with scenario flags", []string{"bench", "--config", cfgPath, "--sizes", "5"}, "only"},
		{"missing config", []string{"bench", "--config", filepath.Join(t.TempDir(), "x.toml")}, "failed to load config"},
		{"bad sizes", []string{"bench", "--sizes", "a,b"}, "invalid size"},
		{"bad distribution", []string{"bench", "--distribution", "zigzag"}, "unknown distribution"},
		{"bad algorithm", []string{"bench", "--algorithms", "bogo"}, "unknown algorithm"},
		{"bad plot dir", []string{"bench", "--plotPath", "/definitely/not/here/plot.html"}, "plot directory does not exist"},
		{"recorded failures", []string{"bench", "--config", budgetCfg}, "recorded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errorMatch)
			}
			if !strings.Contains(err.Error(), tt.errorMatch) {
				t.Errorf("expected error to contain %q, got: %v", tt.errorMatch, err)
			}
		})
	}
}

func TestAlgorithmsCommand(t *testing.T) {
	stdout, _, err := runApp(t, "algorithms")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "insertion\nmerge-heap\nmerge-stack\n" {
		t.Errorf("unexpected algorithm list %q", stdout)
	}
}
