package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"runtime"
	"strconv"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"

	"github.com/user/lifeplot_go/internal/analysis"
	"github.com/user/lifeplot_go/internal/config"
	"github.com/user/lifeplot_go/internal/life"
	"github.com/user/lifeplot_go/internal/parser"
	"github.com/user/lifeplot_go/internal/report"
)

const defaultDataFile = "data.txt"

const usage = `usage:
	lifeplot [plot] [-o FILE] [-pdf FILE] [-title T] [-xlabel T] [-ylabel T] [-no-window] [DATAFILE]
	lifeplot sweep [-settings FILE] [-from D] [-to D] [-step D] [-max-gen N]
	               [-seed N] [-workers N] [-o FILE] [-snapshot FILE]
	lifeplot board [-settings FILE] [-load FILE] [-figure NAME] [-steps N]
	               [-seed N] [-save FILE] [-snapshot FILE]`

type plotOptions struct {
	DataFile string
	ImageOut string
	PDFOut   string
	NoWindow bool
	Chart    report.ChartOptions
}

func parsePlotArgs(args []string) (*plotOptions, error) {
	flag, args := flags.New(args, "-no-window")
	parm, args := parms.New(args, "-o", "-pdf", "-title", "-xlabel", "-ylabel")
	if len(args) > 1 {
		return nil, fmt.Errorf("%v: unexpected", args[1:])
	}

	opts := &plotOptions{
		DataFile: defaultDataFile,
		ImageOut: parm.ByName["-o"],
		PDFOut:   parm.ByName["-pdf"],
		NoWindow: flag.ByName["-no-window"],
		Chart: report.ChartOptions{
			Title:  parm.ByName["-title"],
			XLabel: parm.ByName["-xlabel"],
			YLabel: parm.ByName["-ylabel"],
		},
	}
	if len(args) == 1 {
		opts.DataFile = args[0]
	}
	return opts, nil
}

// plotMain parses the data file, writes any requested outputs and then
// shows the chart window.
func plotMain(args []string) error {
	opts, err := parsePlotArgs(args)
	if err != nil {
		return err
	}

	log.Printf("Parsing: %s", opts.DataFile)
	samples, err := parser.ParseSamplesFile(opts.DataFile)
	if err != nil {
		return err
	}
	summary, err := analysis.Summarize(samples)
	switch {
	case errors.Is(err, analysis.ErrNoSamples):
		log.Printf("Warning: %s: %v", opts.DataFile, err)
	case err != nil:
		return fmt.Errorf("%s: %w", opts.DataFile, err)
	default:
		logSummary(summary)
	}

	if opts.ImageOut != "" {
		if err := report.SaveLinePlot(opts.ImageOut, samples, opts.Chart); err != nil {
			return err
		}
		log.Printf("Chart written: %s", opts.ImageOut)
	}
	if opts.PDFOut != "" {
		if err := writePDF(opts.PDFOut, opts.DataFile, samples, summary, opts.Chart); err != nil {
			return err
		}
		log.Printf("PDF report written: %s", opts.PDFOut)
	}
	if opts.NoWindow {
		return nil
	}
	return runWindow(NewApp(opts.DataFile, samples, summary, opts.Chart))
}

func logSummary(s *analysis.Summary) {
	log.Printf("Parsed %d samples: density %.3f..%.3f, generation %d..%d (mean %.2f, std dev %.2f), peak at density %.3f",
		s.Count, s.MinX, s.MaxX, s.MinY, s.MaxY, s.MeanY, s.StdDevY, s.PeakX)
}

func writePDF(path, source string, samples *parser.Samples, summary *analysis.Summary, chart report.ChartOptions) error {
	chart.Format = "png"
	img, err := report.CreateLinePlot(samples, chart)
	if err != nil {
		return err
	}
	if err := report.BuildPDFReport(path, source, samples, summary, img); err != nil {
		return fmt.Errorf("failed to generate PDF report: %w", err)
	}
	return nil
}

type sweepOptions struct {
	Settings config.Settings
	Sweep    life.SweepConfig
	DataOut  string
	Snapshot string
}

func parseFloatParm(name, s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func parseIntParm(name, s string, def int64) (int64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func parseSweepArgs(args []string) (*sweepOptions, error) {
	parm, args := parms.New(args, "-settings", "-from", "-to", "-step",
		"-max-gen", "-seed", "-workers", "-o", "-snapshot")
	if len(args) > 0 {
		return nil, fmt.Errorf("%v: unexpected", args)
	}

	settings, err := config.Load(parm.ByName["-settings"])
	if err != nil {
		return nil, err
	}

	opts := &sweepOptions{
		Settings: settings,
		DataOut:  parm.ByName["-o"],
		Snapshot: parm.ByName["-snapshot"],
	}
	if opts.DataOut == "" {
		opts.DataOut = defaultDataFile
	}

	sc := life.SweepConfig{
		Width:    settings.Width,
		Height:   settings.Height,
		CellSize: settings.CellSize,
	}
	if sc.From, err = parseFloatParm("-from", parm.ByName["-from"], 0.05); err != nil {
		return nil, err
	}
	if sc.To, err = parseFloatParm("-to", parm.ByName["-to"], 0.95); err != nil {
		return nil, err
	}
	if sc.Step, err = parseFloatParm("-step", parm.ByName["-step"], 0.05); err != nil {
		return nil, err
	}
	maxGen, err := parseIntParm("-max-gen", parm.ByName["-max-gen"], 5000)
	if err != nil {
		return nil, err
	}
	sc.MaxGenerations = int(maxGen)
	if sc.Seed, err = parseIntParm("-seed", parm.ByName["-seed"], 1); err != nil {
		return nil, err
	}
	workers, err := parseIntParm("-workers", parm.ByName["-workers"], int64(runtime.NumCPU()))
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}
	sc.Workers = int(workers)
	opts.Sweep = sc
	return opts, nil
}

// closestResult returns the run whose density is nearest to density.
func closestResult(results []life.SweepResult, density float64) *life.SweepResult {
	var best *life.SweepResult
	for i := range results {
		if best == nil || math.Abs(results[i].Density-density) < math.Abs(best.Density-density) {
			best = &results[i]
		}
	}
	return best
}

// sweepMain measures generations-to-stability across densities and writes
// the data file that plotMain reads.
func sweepMain(ctx context.Context, args []string) error {
	opts, err := parseSweepArgs(args)
	if err != nil {
		return err
	}

	sc := opts.Sweep
	log.Printf("Sweeping densities %.3f..%.3f step %.3f on a %dx%d board (max %d generations, %d workers)",
		sc.From, sc.To, sc.Step, sc.Width/sc.CellSize, sc.Height/sc.CellSize, sc.MaxGenerations, sc.Workers)
	results, err := life.Sweep(ctx, sc)
	if err != nil {
		return err
	}

	samples := parser.NewSamples(len(results))
	for _, r := range results {
		if !r.Stable {
			log.Printf("Warning: density %v did not settle within %d generations", r.Density, sc.MaxGenerations)
		}
		samples.Append(r.Density, r.Generation)
	}
	if err := parser.WriteSamplesFile(opts.DataOut, samples); err != nil {
		return err
	}
	log.Printf("Wrote %d samples to %s", samples.Len(), opts.DataOut)

	if opts.Snapshot != "" {
		r := closestResult(results, opts.Settings.LiveDensity)
		stats := life.NewAnalyzer(r.Final).Analyze()
		figures := life.NewAnalyzer(r.Final).Classify(life.BasicFigures)
		log.Printf("Density %v settled at generation %d with %d figures, %d live cells: %v",
			r.Density, r.Generation, stats.Figures, stats.Alive, figures)
		title := fmt.Sprintf("Density %v, generation %d", r.Density, r.Generation)
		if err := report.SaveBoardHeatmap(opts.Snapshot, r.Final, title); err != nil {
			return err
		}
		log.Printf("Board snapshot written: %s", opts.Snapshot)
	}
	return nil
}

type boardOptions struct {
	Settings config.Settings
	Load     string
	Figure   string
	Steps    int
	Seed     int64
	Save     string
	Snapshot string
}

func parseBoardArgs(args []string) (*boardOptions, error) {
	parm, args := parms.New(args, "-settings", "-load", "-figure", "-steps",
		"-seed", "-save", "-snapshot")
	if len(args) > 0 {
		return nil, fmt.Errorf("%v: unexpected", args)
	}
	settings, err := config.Load(parm.ByName["-settings"])
	if err != nil {
		return nil, err
	}
	steps, err := parseIntParm("-steps", parm.ByName["-steps"], 0)
	if err != nil {
		return nil, err
	}
	if steps < 0 {
		return nil, fmt.Errorf("-steps: %d is negative", steps)
	}
	seed, err := parseIntParm("-seed", parm.ByName["-seed"], 1)
	if err != nil {
		return nil, err
	}
	return &boardOptions{
		Settings: settings,
		Load:     parm.ByName["-load"],
		Figure:   parm.ByName["-figure"],
		Steps:    int(steps),
		Seed:     seed,
		Save:     parm.ByName["-save"],
		Snapshot: parm.ByName["-snapshot"],
	}, nil
}

// boardMain builds a single board, either loaded from a state file or
// randomized from the settings, optionally stamps a figure on it, advances
// it and reports what is left.
func boardMain(ctx context.Context, args []string) error {
	opts, err := parseBoardArgs(args)
	if err != nil {
		return err
	}

	board, err := opts.Settings.NewBoard()
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	if opts.Load != "" {
		if err := board.LoadStateFile(opts.Load); err != nil {
			return err
		}
		log.Printf("Loaded %dx%d board from %s", board.Columns, board.Rows, opts.Load)
	} else {
		board.Randomize(opts.Settings.LiveDensity, rng)
	}
	if opts.Figure != "" {
		fig, err := life.FigureByName(opts.Figure)
		if err != nil {
			return err
		}
		if err := board.PlaceFigure(fig, rng); err != nil {
			return err
		}
	}

	for gen := 0; gen < opts.Steps; gen++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		board.Advance()
	}

	analyzer := life.NewAnalyzer(board)
	stats := analyzer.Analyze()
	log.Printf("After %d generations: %d figures, %d live cells, %v",
		opts.Steps, stats.Figures, stats.Alive, analyzer.Classify(life.BasicFigures))

	if opts.Save != "" {
		if err := board.SaveStateFile(opts.Save); err != nil {
			return err
		}
		log.Printf("Board state written: %s", opts.Save)
	}
	if opts.Snapshot != "" {
		title := fmt.Sprintf("Generation %d", opts.Steps)
		if err := report.SaveBoardHeatmap(opts.Snapshot, board, title); err != nil {
			return err
		}
		log.Printf("Board snapshot written: %s", opts.Snapshot)
	}
	return nil
}
