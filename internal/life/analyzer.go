package life

import (
	"fmt"
	"sort"
	"strings"
)

// Cell is a board coordinate.
type Cell struct {
	X, Y int
}

// Figure is a named pattern of '1' (alive) and '0' (dead) rows.
type Figure struct {
	Name string
	Rows []string
}

// BasicFigures are the patterns the classifier knows by default.
var BasicFigures = []Figure{
	{Name: "blinker", Rows: []string{"111"}},
	{Name: "block", Rows: []string{"11", "11"}},
	{Name: "boat", Rows: []string{"110", "101", "010"}},
	{Name: "glider", Rows: []string{"010", "001", "111"}},
	{Name: "hive", Rows: []string{"0110", "1001", "0110"}},
	{Name: "tub", Rows: []string{"010", "101", "010"}},
}

// FigureByName looks up one of BasicFigures.
func FigureByName(name string) (Figure, error) {
	for _, f := range BasicFigures {
		if f.Name == name {
			return f, nil
		}
	}
	return Figure{}, fmt.Errorf("unknown figure %q", name)
}

// Stats counts the figures and live cells on a board.
type Stats struct {
	Figures int
	Alive   int
}

// Analyzer finds connected groups of live cells on a board.
// Two live cells are connected when they touch, diagonals included,
// across the wrapped edges too.
type Analyzer struct {
	board *Board
}

// NewAnalyzer returns an Analyzer for b.
func NewAnalyzer(b *Board) *Analyzer {
	return &Analyzer{board: b}
}

// bfs walks the figure containing (x, y) and marks it in visited.
// cells holds wrapped board coordinates; offsets holds positions
// relative to the start without wrapping, so figures that straddle
// an edge keep their shape.
func (a *Analyzer) bfs(x, y int, visited []bool) (cells, offsets []Cell) {
	b := a.board
	x, y = b.wrap(x, y)
	start := y*b.Columns + x
	if !b.cells[start] || visited[start] {
		return nil, nil
	}

	type item struct{ cell, offset Cell }
	visited[start] = true
	queue := []item{{Cell{x, y}, Cell{0, 0}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cells = append(cells, cur.cell)
		offsets = append(offsets, cur.offset)

		for _, d := range neighbourOffsets {
			nx, ny := b.wrap(cur.cell.X+d[0], cur.cell.Y+d[1])
			i := ny*b.Columns + nx
			if !b.cells[i] || visited[i] {
				continue
			}
			visited[i] = true
			queue = append(queue, item{Cell{nx, ny}, Cell{cur.offset.X + d[0], cur.offset.Y + d[1]}})
		}
	}
	return cells, offsets
}

// Component returns the live cells connected to (x, y), or nil when
// that cell is dead.
func (a *Analyzer) Component(x, y int) []Cell {
	cells, _ := a.bfs(x, y, make([]bool, len(a.board.cells)))
	return cells
}

// each calls fn with the shape of every figure on the board.
func (a *Analyzer) each(fn func(offsets []Cell)) {
	b := a.board
	visited := make([]bool, len(b.cells))
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Columns; x++ {
			if _, offsets := a.bfs(x, y, visited); offsets != nil {
				fn(offsets)
			}
		}
	}
}

// Analyze counts figures and live cells.
func (a *Analyzer) Analyze() Stats {
	var s Stats
	a.each(func(offsets []Cell) {
		s.Figures++
		s.Alive += len(offsets)
	})
	return s
}

// Classify counts the figures matching each template under any rotation
// or reflection. Only templates with at least one match appear in the result.
func (a *Analyzer) Classify(templates []Figure) map[string]int {
	known := make(map[string]string, len(templates))
	for _, t := range templates {
		known[canonicalShape(figureCells(t))] = t.Name
	}

	counts := make(map[string]int)
	a.each(func(offsets []Cell) {
		if name, ok := known[canonicalShape(offsets)]; ok {
			counts[name]++
		}
	})
	return counts
}

func figureCells(f Figure) []Cell {
	var cells []Cell
	for y, row := range f.Rows {
		for x, c := range row {
			if c == '1' {
				cells = append(cells, Cell{x, y})
			}
		}
	}
	return cells
}

// transforms are the 8 symmetries of the square.
var transforms = [8]func(c Cell) Cell{
	func(c Cell) Cell { return Cell{c.X, c.Y} },
	func(c Cell) Cell { return Cell{-c.Y, c.X} },
	func(c Cell) Cell { return Cell{-c.X, -c.Y} },
	func(c Cell) Cell { return Cell{c.Y, -c.X} },
	func(c Cell) Cell { return Cell{-c.X, c.Y} },
	func(c Cell) Cell { return Cell{c.X, -c.Y} },
	func(c Cell) Cell { return Cell{c.Y, c.X} },
	func(c Cell) Cell { return Cell{-c.Y, -c.X} },
}

// canonicalShape returns a key that is equal for two cell sets exactly
// when one is a translated rotation or reflection of the other.
func canonicalShape(cells []Cell) string {
	best := ""
	for _, t := range transforms {
		moved := make([]Cell, len(cells))
		minX, minY := 0, 0
		for i, c := range cells {
			moved[i] = t(c)
			if i == 0 || moved[i].X < minX {
				minX = moved[i].X
			}
			if i == 0 || moved[i].Y < minY {
				minY = moved[i].Y
			}
		}
		sort.Slice(moved, func(i, j int) bool {
			if moved[i].Y != moved[j].Y {
				return moved[i].Y < moved[j].Y
			}
			return moved[i].X < moved[j].X
		})
		var sb strings.Builder
		for _, c := range moved {
			fmt.Fprintf(&sb, "%d,%d;", c.X-minX, c.Y-minY)
		}
		if key := sb.String(); best == "" || key < best {
			best = key
		}
	}
	return best
}
