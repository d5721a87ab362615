package engine

import (
	"testing"
)

func TestRemaining_EmptyHistory(t *testing.T) {
	got := Remaining(nil)
	if len(got) != 75 {
		t.Fatalf("Remaining(nil) returned %d numbers, want 75", len(got))
	}
	if got[0] != 1 || got[74] != 75 {
		t.Errorf("Remaining(nil) bounds = %d..%d, want 1..75", got[0], got[74])
	}
}

func TestRemaining_ExcludesDrawn(t *testing.T) {
	got := Remaining([]int{1, 38, 75})
	if len(got) != 72 {
		t.Fatalf("got %d numbers, want 72", len(got))
	}
	for _, n := range got {
		if n == 1 || n == 38 || n == 75 {
			t.Errorf("Remaining still contains drawn number %d", n)
		}
	}
}

func TestRemaining_IgnoresMalformedEntries(t *testing.T) {
	// Out-of-range values must be filtered, never fail the computation.
	got := Remaining([]int{0, -3, 76, 1000, 10})
	if len(got) != 74 {
		t.Fatalf("got %d numbers, want 74 (only 10 is a valid draw)", len(got))
	}
	for _, n := range got {
		if n == 10 {
			t.Errorf("Remaining still contains drawn number 10")
		}
	}
}

func TestRemaining_FullHistory(t *testing.T) {
	drawn := make([]int, 0, 75)
	for n := 1; n <= 75; n++ {
		drawn = append(drawn, n)
	}
	if got := Remaining(drawn); len(got) != 0 {
		t.Errorf("Remaining(full history) = %v, want empty", got)
	}
}
