// Package mergestack implements a top-down merge sort in which every merge
// step owns a scratch buffer sized to the range it merges. The buffer lives
// only as long as that step: small ranges use a fixed array in the merge
// frame, larger ones a slice made for the step alone.
//
// Compared with mergeheap this performs one acquisition per merge step and
// O(n log n) element slots in total, while never holding more than O(n)
// at once.
package mergestack

import (
	"github.com/ChristianF88/sortx/pools"
	"github.com/ChristianF88/sortx/sortutil"
)

// stackBufferSize is the largest range merged through a frame-local array.
const stackBufferSize = 64

// Sorter is a stack-backed merge sort. MaxAuxElements caps the size of any
// single merge buffer; zero means unlimited.
type Sorter struct {
	MaxAuxElements int
	Counters       *sortutil.Counters

	// keyShift drops low bits from every value before it is compared.
	// Zero orders plain values.
	keyShift uint
}

// Sort sorts seq[:length] ascending in place using a zero-value Sorter.
func Sort(seq []int, length int) error {
	return Sorter{}.Sort(seq, length)
}

// Sort sorts seq[:length] ascending in place.
//
// The widest merge is the final one over all length elements, so the buffer
// limit is checked once before anything is written; on that failure seq is
// unchanged. If the runtime refuses an allocation later on, the error wraps
// sortutil.ErrAuxAllocation and seq[:length] holds its original values in
// unspecified order.
func (s Sorter) Sort(seq []int, length int) error {
	if err := sortutil.CheckLength(seq, length); err != nil {
		return err
	}
	if length <= 1 {
		return nil
	}
	if err := pools.CheckBudget(length, s.MaxAuxElements); err != nil {
		return err
	}

	m := merger{seq: seq, c: s.Counters, shift: s.keyShift}
	return m.sort(0, length-1)
}

type merger struct {
	seq   []int
	c     *sortutil.Counters
	shift uint
}

// sort orders the inclusive range [p, r].
func (m *merger) sort(p, r int) error {
	n := r - p + 1
	if n <= 1 {
		return nil
	}
	q := p + (n+1)/2
	if err := m.sort(p, q-1); err != nil {
		return err
	}
	if err := m.sort(q, r); err != nil {
		return err
	}
	return m.merge(p, q, r)
}

// merge combines the sorted ranges [p, q) and [q, r] through a buffer owned
// by this call.
func (m *merger) merge(p, q, r int) error {
	n := r - p + 1

	var local [stackBufferSize]int
	var aux []int
	if n <= stackBufferSize {
		aux = local[:n]
	} else {
		buf, err := pools.Alloc(n)
		if err != nil {
			return err
		}
		aux = buf
	}
	m.c.AcquireAux(n)
	defer m.c.ReleaseAux(n)

	seq := m.seq
	i, j := p, q
	for k := range aux {
		switch {
		case i == q:
			aux[k] = seq[j]
			j++
		case j > r:
			aux[k] = seq[i]
			i++
		default:
			m.c.Compare()
			if seq[j]>>m.shift < seq[i]>>m.shift {
				aux[k] = seq[j]
				j++
			} else {
				aux[k] = seq[i]
				i++
			}
		}
	}
	copy(seq[p:r+1], aux)
	m.c.Move(2 * n)
	return nil
}
