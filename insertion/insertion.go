// Package insertion implements an in-place, stable, adaptive insertion sort
// over the leading elements of an int slice.
//
// Already-sorted input costs length-1 comparisons and no moves; the worst
// case (reverse order) is O(n²). No auxiliary storage is used.
package insertion

import "github.com/ChristianF88/sortx/sortutil"

// Sorter is an insertion sort with optional instrumentation.
type Sorter struct {
	Counters *sortutil.Counters

	// keyShift drops low bits from every value before it is compared.
	// Zero orders plain values.
	keyShift uint
}

// Sort sorts seq[:length] ascending in place using a zero-value Sorter.
func Sort(seq []int, length int) error {
	return Sorter{}.Sort(seq, length)
}

// Sort sorts seq[:length] ascending in place. A nil or empty seq with
// length 0 is a no-op.
func (s Sorter) Sort(seq []int, length int) error {
	if err := sortutil.CheckLength(seq, length); err != nil {
		return err
	}
	sortRange(seq[:length], s.Counters, s.keyShift)
	return nil
}

// sortRange keeps data[:i] sorted and inserts data[i] behind the first
// predecessor that is not greater than it.
func sortRange(data []int, c *sortutil.Counters, shift uint) {
	for i := 1; i < len(data); i++ {
		v := data[i]
		j := i
		for j > 0 {
			c.Compare()
			if data[j-1]>>shift <= v>>shift {
				break
			}
			data[j] = data[j-1]
			c.Move(1)
			j--
		}
		if j != i {
			data[j] = v
			c.Move(1)
		}
	}
}
