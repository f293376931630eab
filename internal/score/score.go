// Package score computes achievable values for Yamb sheet cells. All
// functions are pure: a hand of reported face values in, a score out.
package score

import "sort"

// Compute returns the base value a hand is worth on a playable row,
// bonuses excluded. ok is false when the hand does not qualify for the
// row (no pair for "pair", no straight, and so on) or the row is not
// playable. Digit rows always qualify; their value may be zero.
func Compute(row string, dice []int) (int, bool) {
	counts := faceCounts(dice)

	switch row {
	case "1", "2", "3", "4", "5", "6":
		n := int(row[0] - '0')
		c := counts[n]
		if c > 5 {
			c = 5
		}
		return c * n, true

	case "max":
		sorted := sortedDesc(dice)
		return sumOf(sorted[:min(5, len(sorted))]), true

	case "min":
		sorted := sortedDesc(dice)
		if len(sorted) > 5 {
			sorted = sorted[len(sorted)-5:]
		}
		return sumOf(sorted), true

	case "pair":
		first := highestWithCount(counts, 2, 0)
		if first == 0 {
			return 0, false
		}
		second := highestWithCount(counts, 2, first)
		if second == 0 {
			return 0, false
		}
		return 2*first + 2*second, true

	case "tris":
		if v := highestWithCount(counts, 3, 0); v > 0 {
			return 3 * v, true
		}
		return 0, false

	case "straight":
		if counts[2] > 0 && counts[3] > 0 && counts[4] > 0 && counts[5] > 0 && counts[6] > 0 {
			return 50, true
		}
		if counts[1] > 0 && counts[2] > 0 && counts[3] > 0 && counts[4] > 0 && counts[5] > 0 {
			return 45, true
		}
		return 0, false

	case "full":
		triple := highestWithCount(counts, 3, 0)
		if triple == 0 {
			return 0, false
		}
		pair := highestWithCount(counts, 2, triple)
		if pair == 0 {
			return 0, false
		}
		return 3*triple + 2*pair, true

	case "poker":
		if v := highestWithCount(counts, 4, 0); v > 0 {
			return 4 * v, true
		}
		return 0, false

	case "yamb":
		if v := highestWithCount(counts, 5, 0); v > 0 {
			return 5 * v, true
		}
		return 0, false
	}

	return 0, false
}

// Hint is Compute plus the row's bonus, the figure an empty writable
// cell advertises. The bonus only applies to a nonzero base value.
func Hint(row string, dice []int) (int, bool) {
	v, ok := Compute(row, dice)
	if !ok {
		return 0, false
	}
	if v != 0 {
		if r, found := RowByID(row); found {
			v += r.Bonus
		}
	}
	return v, true
}

// Sum1 totals the six digit rows and adds the 30-point bonus when the
// subtotal reaches 60.
func Sum1(values []int) int {
	total := sumOf(values)
	if total >= 60 {
		total += 30
	}
	return total
}

// Sum2 is the max/min spread multiplied by the ones row.
func Sum2(ones, max, min int) int {
	return (max - min) * ones
}

// Sum3 totals the lower-section rows.
func Sum3(values []int) int {
	return sumOf(values)
}

func faceCounts(dice []int) [7]int {
	var counts [7]int
	for _, d := range dice {
		if d >= 1 && d <= 6 {
			counts[d]++
		}
	}
	return counts
}

// highestWithCount finds the highest face appearing at least n times,
// skipping one excluded face. Returns 0 when none qualifies.
func highestWithCount(counts [7]int, n, exclude int) int {
	for face := 6; face >= 1; face-- {
		if face != exclude && counts[face] >= n {
			return face
		}
	}
	return 0
}

func sortedDesc(dice []int) []int {
	sorted := make([]int, len(dice))
	copy(sorted, dice)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return sorted
}

func sumOf(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
