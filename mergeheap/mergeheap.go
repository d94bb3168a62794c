// Package mergeheap implements a top-down merge sort whose auxiliary buffer
// is acquired once per call, sized to the whole sorted range, and released
// when the call returns by any path.
package mergeheap

import (
	"github.com/ChristianF88/sortx/pools"
	"github.com/ChristianF88/sortx/sortutil"
)

// Sorter is a heap-backed merge sort. The zero value draws its buffer from
// pools.Default and records nothing.
type Sorter struct {
	Pool     *pools.AuxPool
	Counters *sortutil.Counters

	// keyShift drops low bits from every value before it is compared.
	// Zero orders plain values.
	keyShift uint
}

// Sort sorts seq[:length] ascending in place using a zero-value Sorter.
func Sort(seq []int, length int) error {
	return Sorter{}.Sort(seq, length)
}

// Sort sorts seq[:length] ascending in place. If the auxiliary buffer cannot
// be obtained the error wraps sortutil.ErrAuxAllocation and seq is unchanged.
func (s Sorter) Sort(seq []int, length int) error {
	if err := sortutil.CheckLength(seq, length); err != nil {
		return err
	}
	if length <= 1 {
		return nil
	}

	pool := s.Pool
	if pool == nil {
		pool = pools.Default
	}
	aux, err := pool.Get(length)
	if err != nil {
		return err
	}
	s.Counters.AcquireAux(length)
	defer func() {
		s.Counters.ReleaseAux(length)
		pool.Put(aux)
	}()

	m := merger{seq: seq, aux: aux, c: s.Counters, shift: s.keyShift}
	m.sort(0, length-1)
	return nil
}

type merger struct {
	seq   []int
	aux   []int
	c     *sortutil.Counters
	shift uint
}

// sort orders the inclusive range [lo, hi].
func (m *merger) sort(lo, hi int) {
	n := hi - lo + 1
	if n <= 1 {
		return
	}
	mid := lo + (n+1)/2
	m.sort(lo, mid-1)
	m.sort(mid, hi)
	m.merge(lo, mid, hi)
}

// merge combines the sorted ranges [lo, mid) and [mid, hi] through aux[lo:hi+1].
func (m *merger) merge(lo, mid, hi int) {
	seq, aux := m.seq, m.aux
	i, j := lo, mid
	for k := lo; k <= hi; k++ {
		switch {
		case i == mid:
			aux[k] = seq[j]
			j++
		case j > hi:
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
	copy(seq[lo:hi+1], aux[lo:hi+1])
	m.c.Move(2 * (hi - lo + 1))
}
