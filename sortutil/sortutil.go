// Package sortutil holds the contract shared by every in-place integer sort:
// the error taxonomy, the length precondition and optional instrumentation.
package sortutil

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthOutOfRange is returned when length is negative or exceeds len(seq).
	ErrLengthOutOfRange = errors.New("length out of range")

	// ErrAuxAllocation is returned when an auxiliary buffer cannot be obtained.
	ErrAuxAllocation = errors.New("auxiliary buffer allocation failed")
)

// CheckLength validates the length argument of Sort against the slice it describes.
func CheckLength(seq []int, length int) error {
	if length < 0 || length > len(seq) {
		return fmt.Errorf("%w: length %d, sequence holds %d", ErrLengthOutOfRange, length, len(seq))
	}
	return nil
}

// AllocationError wraps ErrAuxAllocation with the number of elements requested.
func AllocationError(elements int, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %d elements: %v", ErrAuxAllocation, elements, cause)
	}
	return fmt.Errorf("%w: %d elements", ErrAuxAllocation, elements)
}

// IsSorted reports whether seq is in non-decreasing order.
func IsSorted(seq []int) bool {
	for i := 1; i < len(seq); i++ {
		if seq[i] < seq[i-1] {
			return false
		}
	}
	return true
}

// SameMultiset reports whether a and b hold the same values with the same multiplicities.
func SameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}
