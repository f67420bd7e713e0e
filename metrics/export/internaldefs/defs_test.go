package internaldefs

import (
	"strings"
	"testing"
)

func TestCumulativeBuckets(t *testing.T) {
	got := CumulativeBuckets(NormalizeBuckets([]uint64{1, 2, 3}))
	want := [8]uint64{1, 3, 6, 6, 6, 6, 6, 6}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDefsUniqueAndPrefixed(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range CounterDefs {
		if !strings.HasPrefix(d.Name, "pentaauth_") || !strings.HasSuffix(d.Name, "_total") {
			t.Fatalf("bad counter name %q", d.Name)
		}
		if seen[d.Name] {
			t.Fatalf("duplicate counter %q", d.Name)
		}
		seen[d.Name] = true
	}
	if len(HistogramUpperBounds)+1 != len(HistogramBounds) {
		t.Fatal("bound tables disagree")
	}
}
