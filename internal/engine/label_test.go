package engine

import "testing"

func TestLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "B-1"},
		{15, "B-15"},
		{16, "I-16"},
		{30, "I-30"},
		{31, "N-31"},
		{45, "N-45"},
		{46, "G-46"},
		{60, "G-60"},
		{61, "O-61"},
		{75, "O-75"},
		// Defensive fallback for values outside the pool.
		{0, "0"},
		{76, "76"},
		{-5, "-5"},
	}
	for _, tt := range tests {
		if got := Label(tt.n); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
