// Package life simulates Conway's Game of Life on a toroidal board and
// measures how long random boards take to settle.
package life

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidSettings is returned for non-positive board dimensions.
var ErrInvalidSettings = errors.New("invalid board settings")

// Board is a grid of cells whose edges wrap around.
// Cells are stored row-major: index = y*Columns + x.
type Board struct {
	Columns  int
	Rows     int
	CellSize int

	cells []bool
	next  []bool
}

// NewBoard creates a dead board of width/cellSize columns and
// height/cellSize rows.
func NewBoard(width, height, cellSize int) (*Board, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidSettings, cellSize)
	}
	cols, rows := width/cellSize, height/cellSize
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d px at cell size %d gives no cells", ErrInvalidSettings, width, height, cellSize)
	}
	return &Board{
		Columns:  cols,
		Rows:     rows,
		CellSize: cellSize,
		cells:    make([]bool, cols*rows),
		next:     make([]bool, cols*rows),
	}, nil
}

// Width and Height are the board size in pixels.
func (b *Board) Width() int { return b.Columns * b.CellSize }
func (b *Board) Height() int { return b.Rows * b.CellSize }

func (b *Board) wrap(x, y int) (int, int) {
	x %= b.Columns
	if x < 0 {
		x += b.Columns
	}
	y %= b.Rows
	if y < 0 {
		y += b.Rows
	}
	return x, y
}

func (b *Board) index(x, y int) int {
	x, y = b.wrap(x, y)
	return y*b.Columns + x
}

// Alive reports whether the cell at (x, y) is alive. Coordinates wrap.
func (b *Board) Alive(x, y int) bool {
	return b.cells[b.index(x, y)]
}

// Set marks the cell at (x, y). Coordinates wrap.
func (b *Board) Set(x, y int, alive bool) {
	b.cells[b.index(x, y)] = alive
}

// Clear kills every cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = false
	}
}

// Randomize sets each cell alive with probability density.
func (b *Board) Randomize(density float64, rng *rand.Rand) {
	for i := range b.cells {
		b.cells[i] = rng.Float64() < density
	}
}

// neighbourOffsets lists the 8 surrounding cells.
var neighbourOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbours returns the wrapped coordinates of the 8 cells around (x, y).
func (b *Board) Neighbours(x, y int) [8][2]int {
	var out [8][2]int
	for i, d := range neighbourOffsets {
		nx, ny := b.wrap(x+d[0], y+d[1])
		out[i] = [2]int{nx, ny}
	}
	return out
}

// LiveNeighbours counts live cells around (x, y).
func (b *Board) LiveNeighbours(x, y int) int {
	n := 0
	for _, d := range neighbourOffsets {
		if b.Alive(x+d[0], y+d[1]) {
			n++
		}
	}
	return n
}

// nextState applies B3/S23.
func nextState(alive bool, liveNeighbours int) bool {
	if alive {
		return liveNeighbours == 2 || liveNeighbours == 3
	}
	return liveNeighbours == 3
}

// Advance moves the board one generation forward. Every next state is
// computed from the current generation before any cell changes.
func (b *Board) Advance() {
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Columns; x++ {
			i := y*b.Columns + x
			b.next[i] = nextState(b.cells[i], b.LiveNeighbours(x, y))
		}
	}
	b.cells, b.next = b.next, b.cells
}

// AliveCount returns the number of live cells.
func (b *Board) AliveCount() int {
	n := 0
	for _, c := range b.cells {
		if c {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	c := &Board{
		Columns:  b.Columns,
		Rows:     b.Rows,
		CellSize: b.CellSize,
		cells:    make([]bool, len(b.cells)),
		next:     make([]bool, len(b.next)),
	}
	copy(c.cells, b.cells)
	return c
}

// Equal reports whether both boards have the same size and live cells.
func (b *Board) Equal(o *Board) bool {
	if b.Columns != o.Columns || b.Rows != o.Rows {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// PlaceFigure stamps fig at a random position where it fits entirely
// inside the board without wrapping.
func (b *Board) PlaceFigure(fig Figure, rng *rand.Rand) error {
	h := len(fig.Rows)
	if h == 0 {
		return fmt.Errorf("figure %q is empty", fig.Name)
	}
	w := len(fig.Rows[0])
	if w > b.Columns || h > b.Rows {
		return fmt.Errorf("figure %q (%dx%d) does not fit on a %dx%d board", fig.Name, w, h, b.Columns, b.Rows)
	}
	startX := rng.Intn(b.Columns - w + 1)
	startY := rng.Intn(b.Rows - h + 1)
	for y, row := range fig.Rows {
		for x := 0; x < w && x < len(row); x++ {
			b.Set(startX+x, startY+y, row[x] == '1')
		}
	}
	return nil
}
