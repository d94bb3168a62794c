// Package algorithms is the uniform entry point over the sort
// implementations: every one of them satisfies Sorter and can be selected
// by name.
package algorithms

import (
	"fmt"
	"sort"

	"github.com/ChristianF88/sortx/insertion"
	"github.com/ChristianF88/sortx/mergeheap"
	"github.com/ChristianF88/sortx/mergestack"
	"github.com/ChristianF88/sortx/pools"
	"github.com/ChristianF88/sortx/sortutil"
)

// Sorter sorts seq[:length] ascending in place.
type Sorter interface {
	Sort(seq []int, length int) error
}

const (
	Insertion  = "insertion"
	MergeHeap  = "merge-heap"
	MergeStack = "merge-stack"
)

// Options configure a Sorter built by New.
type Options struct {
	// MaxAuxElements caps any single auxiliary buffer; zero means unlimited.
	MaxAuxElements int
	// Pool supplies merge-heap buffers. Nil uses a pool honouring MaxAuxElements.
	Pool *pools.AuxPool
	// Counters, when set, receives instrumentation from every call.
	Counters *sortutil.Counters
}

type factory func(Options) Sorter

var registry = map[string]factory{
	Insertion: func(o Options) Sorter {
		return insertion.Sorter{Counters: o.Counters}
	},
	MergeHeap: func(o Options) Sorter {
		pool := o.Pool
		if pool == nil {
			if o.MaxAuxElements > 0 {
				pool = pools.NewAuxPool(o.MaxAuxElements)
			} else {
				pool = pools.Default
			}
		}
		return mergeheap.Sorter{Pool: pool, Counters: o.Counters}
	},
	MergeStack: func(o Options) Sorter {
		return mergestack.Sorter{MaxAuxElements: o.MaxAuxElements, Counters: o.Counters}
	},
}

// Names lists the registered algorithms in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValid reports whether name is a registered algorithm.
func IsValid(name string) bool {
	_, ok := registry[name]
	return ok
}

// New builds the named algorithm with the given options.
func New(name string, opts Options) (Sorter, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q (available: %v)", name, Names())
	}
	return f(opts), nil
}

// Lookup returns the named algorithm with default options.
func Lookup(name string) (Sorter, error) {
	return New(name, Options{})
}
