package booking

import (
	"testing"
	"time"
)

func iv(startMin, endMin int) Interval {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return Interval{
		Start: base.Add(time.Duration(startMin) * time.Minute),
		End:   base.Add(time.Duration(endMin) * time.Minute),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{"identical", iv(60, 120), iv(60, 120), true},
		{"partial overlap", iv(60, 120), iv(90, 150), true},
		{"b inside a", iv(60, 180), iv(90, 120), true},
		{"a inside b", iv(90, 120), iv(60, 180), true},
		{"disjoint before", iv(0, 30), iv(60, 90), false},
		{"disjoint after", iv(120, 150), iv(60, 90), false},
		// semiaberto: borda encostada não conflita
		{"a ends where b starts", iv(60, 120), iv(120, 180), false},
		{"b ends where a starts", iv(120, 180), iv(60, 120), false},
	}

	for _, tc := range tests {
		if got := Overlaps(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		// predicado é simétrico
		if got := Overlaps(tc.b, tc.a); got != tc.want {
			t.Fatalf("%s (swapped): Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOverlapsAny(t *testing.T) {
	busy := []Interval{iv(60, 120), iv(240, 300)}

	if !iv(90, 150).OverlapsAny(busy) {
		t.Fatal("expected overlap with first interval")
	}
	if iv(120, 240).OverlapsAny(busy) {
		t.Fatal("gap between intervals must not overlap")
	}
	if iv(0, 30).OverlapsAny(nil) {
		t.Fatal("empty list never overlaps")
	}
}
