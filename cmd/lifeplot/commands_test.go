package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/lifeplot_go/internal/analysis"
	"github.com/user/lifeplot_go/internal/life"
	"github.com/user/lifeplot_go/internal/parser"
	"github.com/user/lifeplot_go/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParsePlotArgsDefaults(t *testing.T) {
	opts, err := parsePlotArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultDataFile, opts.DataFile)
	assert.False(t, opts.NoWindow)
	assert.Empty(t, opts.ImageOut)
	assert.Equal(t, report.ChartOptions{}, opts.Chart)
}

func TestParsePlotArgs(t *testing.T) {
	opts, err := parsePlotArgs([]string{"-no-window", "-o", "chart.svg", "-pdf=report.pdf", "-title", "Stability", "samples.txt"})
	require.NoError(t, err)
	assert.Equal(t, "samples.txt", opts.DataFile)
	assert.Equal(t, "chart.svg", opts.ImageOut)
	assert.Equal(t, "report.pdf", opts.PDFOut)
	assert.True(t, opts.NoWindow)
	assert.Equal(t, "Stability", opts.Chart.Title)
	assert.Empty(t, opts.Chart.XLabel)
}

func TestParsePlotArgsUnexpected(t *testing.T) {
	_, err := parsePlotArgs([]string{"a.txt", "b.txt"})
	assert.Error(t, err)
}

func TestParseSweepArgs(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{"width": 40, "height": 20, "cellSize": 2, "liveDensity": 0.3}`), 0o644))

	opts, err := parseSweepArgs([]string{"-settings", settings, "-from=0.1", "-to", "0.4", "-step", "0.1", "-max-gen", "200", "-seed", "9", "-workers", "3", "-o", "out.txt"})
	require.NoError(t, err)
	assert.Equal(t, life.SweepConfig{
		Width: 40, Height: 20, CellSize: 2,
		From: 0.1, To: 0.4, Step: 0.1,
		MaxGenerations: 200,
		Seed:           9,
		Workers:        3,
	}, opts.Sweep)
	assert.Equal(t, "out.txt", opts.DataOut)
	assert.Equal(t, 0.3, opts.Settings.LiveDensity)
}

func TestParseSweepArgsDefaults(t *testing.T) {
	opts, err := parseSweepArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultDataFile, opts.DataOut)
	assert.Equal(t, 0.05, opts.Sweep.From)
	assert.Equal(t, 0.95, opts.Sweep.To)
	assert.Equal(t, 5000, opts.Sweep.MaxGenerations)
	assert.Greater(t, opts.Sweep.Workers, 0)
}

func TestParseSweepArgsWorkers(t *testing.T) {
	for _, n := range []string{"0", "-4"} {
		opts, err := parseSweepArgs([]string{"-workers", n})
		require.NoError(t, err)
		assert.Equal(t, 1, opts.Sweep.Workers, n)
	}
}

func TestParseSweepArgsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-from", "low"},
		{"-max-gen", "1.5"},
		{"stray"},
		{"-settings", filepath.Join(t.TempDir(), "missing.json")},
	} {
		_, err := parseSweepArgs(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestClosestResult(t *testing.T) {
	results := []life.SweepResult{{Density: 0.1}, {Density: 0.3}, {Density: 0.5}}
	assert.Equal(t, 0.3, closestResult(results, 0.32).Density)
	assert.Equal(t, 0.5, closestResult(results, 0.9).Density)
	assert.Nil(t, closestResult(nil, 0.5))
}

func TestPlotMainNoWindow(t *testing.T) {
	data := writeData(t, "0,1 5\n0,2 30\n0,3 12\n")
	dir := t.TempDir()
	img := filepath.Join(dir, "chart.png")
	pdf := filepath.Join(dir, "report.pdf")

	require.NoError(t, plotMain([]string{"-no-window", "-o", img, "-pdf", pdf, data}))

	b, err := os.ReadFile(img)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
	b, err = os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestPlotMainErrors(t *testing.T) {
	err := plotMain([]string{"-no-window", filepath.Join(t.TempDir(), "missing.txt")})
	assert.True(t, errors.Is(err, os.ErrNotExist))

	err = plotMain([]string{"-no-window", writeData(t, "0,1 5\n0,2\n")})
	assert.True(t, errors.Is(err, parser.ErrMalformedLine))

	err = plotMain([]string{"-no-window", writeData(t, "0,1 5\nnan 7\n")})
	assert.True(t, errors.Is(err, parser.ErrMalformedLine))
}

func TestPlotMainEmptyFile(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "chart.png")
	pdf := filepath.Join(dir, "report.pdf")

	require.NoError(t, plotMain([]string{"-no-window", "-o", img, "-pdf", pdf, writeData(t, "")}))

	b, err := os.ReadFile(img)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
	_, err = os.Stat(pdf)
	assert.NoError(t, err)
}

func TestSweepMain(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{"width": 20, "height": 20, "cellSize": 1, "liveDensity": 0.25}`), 0o644))
	out := filepath.Join(dir, "data.txt")
	snap := filepath.Join(dir, "board.png")

	err := sweepMain(context.Background(), []string{
		"-settings", settings, "-from", "0.1", "-to", "0.3", "-step", "0.1",
		"-max-gen", "300", "-workers", "2", "-o", out, "-snapshot", snap,
	})
	require.NoError(t, err)

	samples, err := parser.ParseSamplesFile(out)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, samples.X)
	for _, y := range samples.Y {
		assert.Greater(t, y, 0)
		assert.LessOrEqual(t, y, 300)
	}
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "0,1 "))

	_, err = os.Stat(snap)
	assert.NoError(t, err)
}

func TestRunHelp(t *testing.T) {
	assert.NoError(t, run([]string{"help"}))
}

func TestAppChartImage(t *testing.T) {
	samples := &parser.Samples{X: []float64{0.1, 0.2}, Y: []int{4, 9}}
	summary, err := analysis.Summarize(samples)
	require.NoError(t, err)
	app := NewApp("data.txt", samples, summary, report.ChartOptions{})

	assert.Equal(t, report.DefaultTitle, app.Title())
	assert.Equal(t, "data.txt", app.Source())
	assert.Same(t, summary, app.Summary())

	url, err := app.ChartImage()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	img, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
}

func TestAppExportPDF(t *testing.T) {
	samples := &parser.Samples{X: []float64{0.1, 0.2}, Y: []int{4, 9}}
	summary, err := analysis.Summarize(samples)
	require.NoError(t, err)
	app := NewApp("data.txt", samples, summary, report.ChartOptions{Title: "custom"})
	assert.Equal(t, "custom", app.Title())

	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, app.exportPDF(path))
	_, err = os.Stat(path)
	assert.NoError(t, err)

	assert.Error(t, app.exportPDF(""))
	_, err = app.HandleExportPDF("")
	assert.Error(t, err)
}

func TestParseBoardArgs(t *testing.T) {
	opts, err := parseBoardArgs([]string{"-figure", "glider", "-steps", "4", "-seed=5", "-save", "s.txt"})
	require.NoError(t, err)
	assert.Equal(t, "glider", opts.Figure)
	assert.Equal(t, 4, opts.Steps)
	assert.Equal(t, int64(5), opts.Seed)
	assert.Equal(t, "s.txt", opts.Save)

	_, err = parseBoardArgs([]string{"-steps", "-1"})
	assert.Error(t, err)
	_, err = parseBoardArgs([]string{"extra"})
	assert.Error(t, err)
}

func TestBoardMainSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{"width": 10, "height": 10, "cellSize": 1, "liveDensity": 0}`), 0o644))
	state := filepath.Join(dir, "saved_state.txt")
	snap := filepath.Join(dir, "board.png")

	// an empty board with a block stays a block
	require.NoError(t, boardMain(context.Background(), []string{
		"-settings", settings, "-figure", "block", "-steps", "3", "-save", state, "-snapshot", snap,
	}))

	b, err := life.NewBoard(10, 10, 1)
	require.NoError(t, err)
	require.NoError(t, b.LoadStateFile(state))
	assert.Equal(t, 4, b.AliveCount())
	assert.Equal(t, map[string]int{"block": 1}, life.NewAnalyzer(b).Classify(life.BasicFigures))

	resaved := filepath.Join(dir, "resaved.txt")
	require.NoError(t, boardMain(context.Background(), []string{
		"-settings", settings, "-load", state, "-steps", "2", "-save", resaved,
	}))
	first, err := os.ReadFile(state)
	require.NoError(t, err)
	second, err := os.ReadFile(resaved)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	_, err = os.Stat(snap)
	assert.NoError(t, err)
}

func TestBoardMainUnknownFigure(t *testing.T) {
	err := boardMain(context.Background(), []string{"-figure", "spaceship"})
	assert.Error(t, err)
}
