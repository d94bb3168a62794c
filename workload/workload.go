// Package workload generates deterministic integer sequences for exercising
// the sorts.
package workload

import (
	"fmt"
	"math/rand"
	"sort"
)

// Distribution names a family of generated inputs.
type Distribution string

const (
	Random    Distribution = "random"
	Sorted    Distribution = "sorted"
	Reversed  Distribution = "reversed"
	FewUnique Distribution = "fewunique"
	Sawtooth  Distribution = "sawtooth"
)

// MaxSize is the largest input Generate will produce.
const MaxSize = 1 << 28

// fewUniqueValues is the number of distinct values in a FewUnique input.
const fewUniqueValues = 8

var generators = map[Distribution]func(n int, rng *rand.Rand) []int{
	Random: func(n int, rng *rand.Rand) []int {
		data := make([]int, n)
		for i := range data {
			data[i] = rng.Intn(2*n+1) - n
		}
		return data
	},
	Sorted: func(n int, _ *rand.Rand) []int {
		data := make([]int, n)
		for i := range data {
			data[i] = i
		}
		return data
	},
	Reversed: func(n int, _ *rand.Rand) []int {
		data := make([]int, n)
		for i := range data {
			data[i] = n - i
		}
		return data
	},
	FewUnique: func(n int, rng *rand.Rand) []int {
		data := make([]int, n)
		for i := range data {
			data[i] = rng.Intn(fewUniqueValues)
		}
		return data
	},
	Sawtooth: func(n int, _ *rand.Rand) []int {
		data := make([]int, n)
		period := 1
		for period*period < n {
			period++
		}
		for i := range data {
			data[i] = i % period
		}
		return data
	},
}

// Distributions lists every supported distribution in sorted order.
func Distributions() []Distribution {
	out := make([]Distribution, 0, len(generators))
	for d := range generators {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsValid reports whether d is a supported distribution.
func IsValid(d Distribution) bool {
	_, ok := generators[d]
	return ok
}

// Generate returns n values drawn from d. The same (d, n, seed) always
// yields the same sequence. A size the runtime cannot allocate is reported
// as an error.
func Generate(d Distribution, n int, seed int64) (data []int, err error) {
	gen, ok := generators[d]
	if !ok {
		return nil, fmt.Errorf("unknown distribution %q", d)
	}
	if n < 0 {
		return nil, fmt.Errorf("negative size %d", n)
	}
	if n > MaxSize {
		return nil, fmt.Errorf("size %d exceeds the limit of %d", n, MaxSize)
	}

	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("generating %d %s values: %v", n, d, r)
		}
	}()
	return gen(n, rand.New(rand.NewSource(seed))), nil
}
