package x11

import (
	"sort"
	"testing"
)

func TestLockCombinations(t *testing.T) {
	tests := []struct {
		name string
		base []uint16
		want []uint16
	}{
		{"caps only", []uint16{2}, []uint16{0, 2}},
		{"caps and num", []uint16{2, 16}, []uint16{0, 2, 16, 18}},
		{"caps num scroll", []uint16{2, 16, 128}, []uint16{0, 2, 16, 18, 128, 130, 144, 146}},
		{"none", nil, []uint16{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lockCombinations(tt.base)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			if len(got) != len(tt.want) {
				t.Fatalf("lockCombinations(%v) = %v, want %v", tt.base, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("lockCombinations(%v) = %v, want %v", tt.base, got, tt.want)
				}
			}
		})
	}
}
