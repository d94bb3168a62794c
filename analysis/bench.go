package analysis

import (
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/ChristianF88/sortx/algorithms"
	"github.com/ChristianF88/sortx/config"
	"github.com/ChristianF88/sortx/output"
	"github.com/ChristianF88/sortx/pools"
	"github.com/ChristianF88/sortx/sortutil"
	"github.com/ChristianF88/sortx/workload"
	"github.com/alphadose/haxmap"
)

// quadraticWarnSize is the input size above which a quadratic algorithm
// in a scenario earns a warning.
const quadraticWarnSize = 50000

// job is one sort of one input by one algorithm
type job struct {
	scenario  int
	size      int
	algorithm int
	repeat    int
}

// runner holds the state shared by the worker goroutines. Each job writes
// only to its own slot in report and outputs, so no locking is needed there.
type runner struct {
	cfg       *config.Config
	scenarios []*config.ScenarioConfig
	report    *output.Report
	pool      *pools.AuxPool
	inputs    *haxmap.Map[string, []int]

	// outputs[scenario][size][algorithm] is the result of repeat 0
	outputs [][][][]int
}

// Run executes every configured scenario and returns the report. The error
// is non-nil only when the configuration itself is unusable; sort failures
// and verification mismatches are recorded in the report.
func Run(cfg *config.Config) (*output.Report, error) {
	start := time.Now()
	report := output.NewReport(start)

	if cfg == nil {
		report.AddError("config_error", "configuration is nil", 1)
		return report, fmt.Errorf("configuration is nil")
	}
	if err := cfg.Validate(); err != nil {
		report.AddError("config_error", err.Error(), 1)
		return report, err
	}

	workers := cfg.Global.WorkerCount()
	report.Settings = output.Settings{
		Seed:           cfg.Global.Seed,
		Workers:        workers,
		MaxAuxElements: cfg.Global.MaxAuxElements,
	}

	r := &runner{
		cfg:    cfg,
		report: report,
		pool:   pools.NewAuxPool(cfg.Global.MaxAuxElements),
		inputs: newInputCache(),
	}
	r.prepare()

	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r.execute(j)
			}
		}()
	}
	for si, scenario := range r.scenarios {
		for zi := range scenario.Sizes {
			for ai := range scenario.Algorithms {
				for rep := 0; rep < scenario.Repeat; rep++ {
					jobs <- job{scenario: si, size: zi, algorithm: ai, repeat: rep}
				}
			}
		}
	}
	close(jobs)
	wg.Wait()

	r.checkAgreement()
	report.Summarize()
	report.UpdateDuration(start)
	return report, nil
}

// prepare lays out the report skeleton so workers can fill slots directly.
func (r *runner) prepare() {
	names := make([]string, 0, len(r.cfg.Scenarios))
	for name := range r.cfg.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	r.report.Scenarios = make([]output.ScenarioResult, len(names))
	r.outputs = make([][][][]int, len(names))
	for si, name := range names {
		scenario := r.cfg.Scenarios[name]
		r.scenarios = append(r.scenarios, scenario)

		result := output.ScenarioResult{
			Name:         name,
			Distribution: string(scenario.Distribution),
			Sizes:        make([]output.SizeResult, len(scenario.Sizes)),
		}
		r.outputs[si] = make([][][]int, len(scenario.Sizes))
		for zi, size := range scenario.Sizes {
			result.Sizes[zi] = output.SizeResult{
				Size: size,
				Runs: make([]output.RunResult, len(scenario.Algorithms)*scenario.Repeat),
			}
			r.outputs[si][zi] = make([][]int, len(scenario.Algorithms))
		}
		r.report.Scenarios[si] = result

		if slices.Contains(scenario.Algorithms, algorithms.Insertion) && slices.Max(scenario.Sizes) > quadraticWarnSize {
			r.report.AddWarning("slow_algorithm",
				fmt.Sprintf("scenario %s runs insertion sort on %d elements; expect quadratic running time", name, slices.Max(scenario.Sizes)), 1)
		}
	}
}

func newInputCache() *haxmap.Map[string, []int] {
	return haxmap.New[string, []int]()
}

// input returns the cached workload for a scenario size, generating it on
// first use. Scenarios sharing a distribution and size share the input.
func (r *runner) input(scenario *config.ScenarioConfig, size int) ([]int, error) {
	key := fmt.Sprintf("%s/%d/%d", scenario.Distribution, size, r.cfg.Global.Seed)
	if data, ok := r.inputs.Get(key); ok {
		return data, nil
	}
	data, err := workload.Generate(scenario.Distribution, size, r.cfg.Global.Seed)
	if err != nil {
		return nil, err
	}
	actual, _ := r.inputs.GetOrSet(key, data)
	return actual, nil
}

func (r *runner) execute(j job) {
	scenario := r.scenarios[j.scenario]
	size := scenario.Sizes[j.size]
	name := scenario.Algorithms[j.algorithm]
	slot := &r.report.Scenarios[j.scenario].Sizes[j.size].Runs[j.algorithm*scenario.Repeat+j.repeat]
	slot.Algorithm = name
	slot.Repeat = j.repeat

	input, err := r.input(scenario, size)
	if err != nil {
		slot.Error = err.Error()
		r.report.AddError("workload", fmt.Sprintf("%s n=%d: %v", scenario.Name, size, err), 1)
		return
	}

	var counters sortutil.Counters
	sorter, err := algorithms.New(name, algorithms.Options{
		MaxAuxElements: r.cfg.Global.MaxAuxElements,
		Pool:           r.pool,
		Counters:       &counters,
	})
	if err != nil {
		slot.Error = err.Error()
		r.report.AddError("algorithm", err.Error(), 1)
		return
	}

	data := slices.Clone(input)
	sortStart := time.Now()
	err = sorter.Sort(data, len(data))
	slot.DurationUS = time.Since(sortStart).Microseconds()
	slot.Counters = counters

	if err != nil {
		slot.Error = err.Error()
		r.report.AddError("sort_failed", fmt.Sprintf("%s %s n=%d: %v", scenario.Name, name, size, err), 1)
		return
	}

	slot.Sorted = sortutil.IsSorted(data)
	slot.Permutation = sortutil.SameMultiset(input, data)
	if !slot.Sorted || !slot.Permutation {
		r.report.AddError("verification",
			fmt.Sprintf("%s %s n=%d: sorted=%t permutation=%t", scenario.Name, name, size, slot.Sorted, slot.Permutation), 1)
	}
	if j.repeat == 0 {
		r.outputs[j.scenario][j.size][j.algorithm] = data
	}
}

// checkAgreement compares the outputs of every algorithm that succeeded
// on the same input.
func (r *runner) checkAgreement() {
	for si, scenario := range r.scenarios {
		for zi, size := range scenario.Sizes {
			var reference []int
			referenceName := ""
			agree := true
			for ai, out := range r.outputs[si][zi] {
				if out == nil {
					continue
				}
				if reference == nil {
					reference, referenceName = out, scenario.Algorithms[ai]
					continue
				}
				if !slices.Equal(reference, out) {
					agree = false
					r.report.AddError("disagreement",
						fmt.Sprintf("%s n=%d: %s and %s produced different output", scenario.Name, size, referenceName, scenario.Algorithms[ai]), 1)
				}
			}
			r.report.Scenarios[si].Sizes[zi].Agreement = agree
			r.outputs[si][zi] = nil
		}
	}
}
