package life

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// RunUntilStable advances b until its state repeats one of the two
// previous generations, i.e. it became a still life or a period-2
// oscillator. It returns the generation at which the repeat happened.
// If the board is still changing after maxGen generations it returns
// maxGen and stable=false. The context is checked between generations.
func RunUntilStable(ctx context.Context, b *Board, maxGen int) (gen int, stable bool, err error) {
	prev1 := make([]bool, len(b.cells)) // one generation back
	prev2 := make([]bool, len(b.cells)) // two generations back
	copy(prev1, b.cells)
	havePrev2 := false

	for gen = 1; gen <= maxGen; gen++ {
		if err := ctx.Err(); err != nil {
			return gen - 1, false, err
		}
		b.Advance()
		if sameCells(b.cells, prev1) || (havePrev2 && sameCells(b.cells, prev2)) {
			return gen, true, nil
		}
		prev1, prev2 = prev2, prev1
		copy(prev1, b.cells)
		havePrev2 = true
	}
	return maxGen, false, nil
}

func sameCells(a, b []bool) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SweepConfig describes a density sweep.
type SweepConfig struct {
	Width, Height, CellSize int

	From, To, Step float64 // densities, inclusive range
	MaxGenerations int
	Seed           int64 // run i uses Seed+i
	Workers        int   // <= 0 means one
}

// Densities lists the densities From, From+Step, ... up to To inclusive.
func (c SweepConfig) Densities() ([]float64, error) {
	switch {
	case c.Step <= 0:
		return nil, fmt.Errorf("%w: step %v must be positive", ErrInvalidSettings, c.Step)
	case c.From < 0 || c.To > 1:
		return nil, fmt.Errorf("%w: densities must lie in [0, 1], got %v..%v", ErrInvalidSettings, c.From, c.To)
	case c.From > c.To:
		return nil, fmt.Errorf("%w: from %v exceeds to %v", ErrInvalidSettings, c.From, c.To)
	}
	n := int(math.Floor((c.To-c.From)/c.Step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		// rounding keeps 0.1+0.2 style drift out of the data file
		out[i] = math.Round((c.From+float64(i)*c.Step)*1e9) / 1e9
	}
	return out, nil
}

// SweepResult is the outcome for one density.
type SweepResult struct {
	Density    float64
	Generation int
	Stable     bool
	Final      *Board
}

// Sweep runs one random board per density and records how many generations
// each needed to settle. Results are ordered by density.
func Sweep(ctx context.Context, cfg SweepConfig) ([]SweepResult, error) {
	densities, err := cfg.Densities()
	if err != nil {
		return nil, err
	}
	if cfg.MaxGenerations <= 0 {
		return nil, fmt.Errorf("%w: max generations %d must be positive", ErrInvalidSettings, cfg.MaxGenerations)
	}
	if _, err := NewBoard(cfg.Width, cfg.Height, cfg.CellSize); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	results := make([]SweepResult, len(densities))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, density := range densities {
		i, density := i, density
		g.Go(func() error {
			board, err := NewBoard(cfg.Width, cfg.Height, cfg.CellSize)
			if err != nil {
				return err
			}
			board.Randomize(density, rand.New(rand.NewSource(cfg.Seed+int64(i))))
			gen, stable, err := RunUntilStable(ctx, board, cfg.MaxGenerations)
			if err != nil {
				return fmt.Errorf("density %v: %w", density, err)
			}
			results[i] = SweepResult{Density: density, Generation: gen, Stable: stable, Final: board}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("sweep interrupted: %w", err)
		}
		return nil, err
	}
	return results, nil
}
