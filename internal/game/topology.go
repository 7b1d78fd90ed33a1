package game

import "strconv"

// innerCells are the grid cells touching the Center: (1,1), (2,1), (1,2), (2,2).
var innerCells = [4]int{5, 6, 9, 10}

var neighbors [CellCount][]int

func init() {
	dirs := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for i := 0; i < GridSize*GridSize; i++ {
		r, c := Coord(i)
		for _, d := range dirs {
			nr, nc := r+d[0], c+d[1]
			if nr >= 0 && nr < GridSize && nc >= 0 && nc < GridSize {
				neighbors[i] = append(neighbors[i], Index(nr, nc))
			}
		}
		if isInner(i) {
			neighbors[i] = append(neighbors[i], Center)
		}
	}
	neighbors[Center] = innerCells[:]
}

func isInner(i int) bool {
	for _, c := range innerCells {
		if c == i {
			return true
		}
	}
	return false
}

func inRange(i int) bool { return i >= 0 && i < CellCount }

// Coord maps a grid index to (row, col). The Center has no grid coordinate and yields (-1, -1).
func Coord(i int) (row, col int) {
	if i < 0 || i >= GridSize*GridSize {
		return -1, -1
	}
	return i / GridSize, i % GridSize
}

func Index(row, col int) int { return row*GridSize + col }

// Adjacent is symmetric and never true for a cell and itself.
func Adjacent(a, b int) bool {
	if !inRange(a) || !inRange(b) || a == b {
		return false
	}
	if a == Center {
		return isInner(b)
	}
	if b == Center {
		return isInner(a)
	}
	ar, ac := Coord(a)
	br, bc := Coord(b)
	return abs(ar-br)+abs(ac-bc) == 1
}

// Neighbors lists the cells adjacent to i in a fixed order: up, down, left, right, then the
// Center for the inner cells. The returned slice must not be modified.
func Neighbors(i int) []int {
	if !inRange(i) {
		return nil
	}
	return neighbors[i]
}

// CellName renders a cell as "a1".."d4", or "center".
func CellName(i int) string {
	if i == Center {
		return "center"
	}
	r, c := Coord(i)
	if r < 0 {
		return "?"
	}
	return string(rune('a'+c)) + strconv.Itoa(r+1)
}

// ParseCell accepts either a cell name ("b2", "center") or a raw index.
func ParseCell(s string) (int, bool) {
	if s == "center" || s == "c" {
		return Center, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, inRange(n)
	}
	if len(s) != 2 {
		return 0, false
	}
	c := int(s[0] - 'a')
	r := int(s[1] - '1')
	if r < 0 || r >= GridSize || c < 0 || c >= GridSize {
		return 0, false
	}
	return Index(r, c), true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
