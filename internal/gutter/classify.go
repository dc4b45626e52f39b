package gutter

// Deleted holds the three deletion sub-categories.
type Deleted struct {
	Top    []int
	Bottom []int
	Dual   []int
}

// ClassifyDeleted partitions deleted positions. A deletion at line n means
// content was removed just before line n, so it borders line n (top) and,
// when n > 1, line n-1 (bottom). A line that is both a deletion position
// and the bottom neighbour of another deletion is dual.
//
// Order follows the input. lines is not modified.
func ClassifyDeleted(lines []int) Deleted {
	top := make([]int, len(lines))
	copy(top, lines)

	bottom := make([]int, 0, len(lines))
	for _, n := range lines {
		if n > 1 {
			bottom = append(bottom, n-1)
		}
	}

	var dual []int
	for _, n := range top {
		if contains(bottom, n) {
			dual = append(dual, n)
		}
	}
	for _, n := range dual {
		bottom = removeFirst(bottom, n)
		top = removeFirst(top, n)
	}

	return Deleted{Top: top, Bottom: bottom, Dual: dual}
}

func contains(lines []int, n int) bool {
	for _, l := range lines {
		if l == n {
			return true
		}
	}
	return false
}

func removeFirst(lines []int, n int) []int {
	for i, l := range lines {
		if l == n {
			return append(lines[:i], lines[i+1:]...)
		}
	}
	return lines
}
