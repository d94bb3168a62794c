package insertion

import (
	"encoding/binary"
	"slices"
	"testing"

	"github.com/ChristianF88/sortx/sortutil"
)

func FuzzSort(f *testing.F) {
	f.Add([]byte{5, 3, 1, 4, 2})
	f.Add([]byte{})
	f.Add([]byte{1})
	f.Add([]byte{2, 2, 1, 0, 255, 128})

	f.Fuzz(func(t *testing.T, raw []byte) {
		data := make([]int, 0, len(raw)/2)
		for i := 0; i+1 < len(raw); i += 2 {
			data = append(data, int(int16(binary.LittleEndian.Uint16(raw[i:]))))
		}
		original := slices.Clone(data)

		if err := Sort(data, len(data)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sortutil.IsSorted(data) {
			t.Fatalf("not sorted: %v", data)
		}
		if !sortutil.SameMultiset(original, data) {
			t.Fatalf("not a permutation of %v: %v", original, data)
		}
	})
}
