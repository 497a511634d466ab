package analysis

import (
	"errors"
	"testing"

	"github.com/user/lifeplot_go/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	samples := &parser.Samples{
		X: []float64{0.1, 0.2, 0.3, 0.4, 0.5},
		Y: []int{2, 4, 8, 8, 3},
	}
	s, err := Summarize(samples)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 0.1, s.MinX, 1e-12)
	assert.InDelta(t, 0.5, s.MaxX, 1e-12)
	assert.Equal(t, 2, s.MinY)
	assert.Equal(t, 8, s.MaxY)
	assert.InDelta(t, 5.0, s.MeanY, 1e-12)
	// population variance of {2,4,8,8,3}: (9+1+9+9+4)/5 = 6.4
	assert.InDelta(t, 2.5298221281347035, s.StdDevY, 1e-9)
	assert.InDelta(t, 0.3, s.PeakX, 1e-12, "first peak wins")
}

func TestSummarizeSinglePoint(t *testing.T) {
	s, err := Summarize(&parser.Samples{X: []float64{0.7}, Y: []int{42}})
	require.NoError(t, err)
	assert.Equal(t, 42, s.MinY)
	assert.Equal(t, 42, s.MaxY)
	assert.Equal(t, 0.0, s.StdDevY)
	assert.Equal(t, 0.7, s.PeakX)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(parser.NewSamples(0))
	assert.True(t, errors.Is(err, ErrNoSamples))

	_, err = Summarize(nil)
	assert.True(t, errors.Is(err, ErrNoSamples))
}

func TestSummarizeMismatch(t *testing.T) {
	_, err := Summarize(&parser.Samples{X: []float64{1, 2}, Y: []int{1}})
	assert.Error(t, err)
}
