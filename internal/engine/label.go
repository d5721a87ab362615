package engine

import "strconv"

// Label returns the bingo-column label for a number:
// 1-15 B, 16-30 I, 31-45 N, 46-60 G, 61-75 O.
// Values outside 1-75 fall back to their bare string form; the pool invariant
// means that should never happen for a drawn number.
func Label(n int) string {
	var col string
	switch {
	case n >= 1 && n <= 15:
		col = "B"
	case n >= 16 && n <= 30:
		col = "I"
	case n >= 31 && n <= 45:
		col = "N"
	case n >= 46 && n <= 60:
		col = "G"
	case n >= 61 && n <= 75:
		col = "O"
	default:
		return strconv.Itoa(n)
	}
	return col + "-" + strconv.Itoa(n)
}
