package analysis

import (
	"errors"
	"math"

	"github.com/user/lifeplot_go/internal/parser"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoSamples is returned when there is nothing to summarize.
var ErrNoSamples = errors.New("no samples")

// Summary describes a parsed data file.
type Summary struct {
	Count   int
	MinX    float64
	MaxX    float64
	MinY    int
	MaxY    int
	MeanY   float64
	StdDevY float64 // population standard deviation
	PeakX   float64 // first x at which y reaches MaxY
}

// Summarize computes the Summary of samples.
func Summarize(samples *parser.Samples) (*Summary, error) {
	if samples.Len() == 0 {
		return nil, ErrNoSamples
	}
	if len(samples.X) != len(samples.Y) {
		return nil, errors.New("column length mismatch")
	}

	ys := make([]float64, len(samples.Y))
	for i, y := range samples.Y {
		ys[i] = float64(y)
	}

	peak := floats.MaxIdx(ys)
	mean, variance := stat.PopMeanVariance(ys, nil)

	return &Summary{
		Count:   samples.Len(),
		MinX:    floats.Min(samples.X),
		MaxX:    floats.Max(samples.X),
		MinY:    samples.Y[floats.MinIdx(ys)],
		MaxY:    samples.Y[peak],
		MeanY:   mean,
		StdDevY: math.Sqrt(variance),
		PeakX:   samples.X[peak],
	}, nil
}
