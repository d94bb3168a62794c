package mergeheap

import (
	"slices"
	"testing"

	"github.com/ChristianF88/sortx/sortutil"
)

func FuzzSort(f *testing.F) {
	f.Add([]byte{5, 3, 1, 4, 2}, 5)
	f.Add([]byte{}, 0)
	f.Add([]byte{1}, 1)
	f.Add([]byte{2, 2, 1, 9, 0}, 3)

	f.Fuzz(func(t *testing.T, raw []byte, length int) {
		data := make([]int, len(raw))
		for i, b := range raw {
			data[i] = int(int8(b))
		}
		original := slices.Clone(data)

		err := Sort(data, length)
		if length < 0 || length > len(data) {
			if err == nil {
				t.Fatalf("length %d over %d elements should be rejected", length, len(data))
			}
			if !slices.Equal(data, original) {
				t.Fatal("rejected call modified the sequence")
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sortutil.IsSorted(data[:length]) {
			t.Fatalf("prefix not sorted: %v", data[:length])
		}
		if !sortutil.SameMultiset(original[:length], data[:length]) {
			t.Fatalf("prefix is not a permutation of %v: %v", original[:length], data[:length])
		}
		if !slices.Equal(original[length:], data[length:]) {
			t.Fatal("elements past length were modified")
		}
	})
}
