package pools

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ChristianF88/sortx/sortutil"
)

// maxPooledCap keeps very large scratch buffers out of the pool so one big
// sort does not pin its buffer for the life of the process.
const maxPooledCap = 1 << 20

// AuxPool hands out []int scratch buffers for merge-based sorts.
// A buffer obtained with Get is owned by the caller until it is handed back
// with Put. Safe for concurrent use.
type AuxPool struct {
	pool        sync.Pool
	maxElements int

	gets   atomic.Int64
	allocs atomic.Int64
}

// NewAuxPool creates a pool that refuses requests larger than maxElements.
// maxElements <= 0 means unlimited.
func NewAuxPool(maxElements int) *AuxPool {
	return &AuxPool{maxElements: maxElements}
}

// Default is the process-wide pool used when a sorter is not given one.
var Default = NewAuxPool(0)

// MaxElements returns the per-buffer limit, or 0 when unlimited.
func (p *AuxPool) MaxElements() int {
	return p.maxElements
}

// Get returns a buffer of exactly n elements. Its contents are unspecified.
func (p *AuxPool) Get(n int) ([]int, error) {
	if err := CheckBudget(n, p.maxElements); err != nil {
		return nil, err
	}
	p.gets.Add(1)

	if slicePtr, ok := p.pool.Get().(*[]int); ok {
		if cap(*slicePtr) >= n {
			return (*slicePtr)[:n], nil
		}
		// Too small for this request; keep it around for smaller ones
		p.pool.Put(slicePtr)
	}

	buf, err := Alloc(n)
	if err != nil {
		return nil, err
	}
	p.allocs.Add(1)
	return buf, nil
}

// Put returns a buffer obtained from Get to the pool.
func (p *AuxPool) Put(buf []int) {
	if buf == nil || cap(buf) > maxPooledCap {
		return
	}
	emptySlice := buf[:0]
	p.pool.Put(&emptySlice)
}

// Stats returns how many buffers were requested and how many of those
// needed a fresh allocation.
func (p *AuxPool) Stats() (gets, allocs int64) {
	return p.gets.Load(), p.allocs.Load()
}

// Reset drops every pooled buffer and zeroes the stats (useful for testing)
func (p *AuxPool) Reset() {
	p.pool = sync.Pool{}
	p.gets.Store(0)
	p.allocs.Store(0)
}

// CheckBudget rejects requests for more than maxElements elements.
// maxElements <= 0 means unlimited.
func CheckBudget(n, maxElements int) error {
	if n < 0 {
		return sortutil.AllocationError(n, fmt.Errorf("negative size"))
	}
	if maxElements > 0 && n > maxElements {
		return sortutil.AllocationError(n, fmt.Errorf("exceeds limit of %d", maxElements))
	}
	return nil
}

// Alloc makes a fresh buffer of n elements, turning a refused allocation
// (for example a size the runtime cannot represent) into ErrAuxAllocation
// instead of a panic.
func Alloc(n int) (buf []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = sortutil.AllocationError(n, fmt.Errorf("%v", r))
		}
	}()
	return make([]int, n), nil
}
