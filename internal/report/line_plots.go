package report

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/user/lifeplot_go/internal/parser"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default chart labels.
const (
	DefaultTitle  = "График перехода в стабильное состояние"
	DefaultXLabel = "Плотность распределения"
	DefaultYLabel = "Поколение"
)

// ChartOptions controls the line chart. Zero fields fall back to the defaults.
type ChartOptions struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
	Format string // png, svg, pdf, ...; used by CreateLinePlot
}

// DefaultChartOptions returns the labels and size used when nothing is overridden.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:  DefaultTitle,
		XLabel: DefaultXLabel,
		YLabel: DefaultYLabel,
		Width:  vg.Points(800),
		Height: vg.Points(500),
		Format: "png",
	}
}

func (o ChartOptions) withDefaults() ChartOptions {
	d := DefaultChartOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.XLabel == "" {
		o.XLabel = d.XLabel
	}
	if o.YLabel == "" {
		o.YLabel = d.YLabel
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Format == "" {
		o.Format = d.Format
	}
	return o
}

// newLinePlot builds the generation-vs-density chart. Points are joined
// in file order. Without samples only the titled, gridded axes are drawn.
func newLinePlot(samples *parser.Samples, opts ChartOptions) (*plot.Plot, error) {
	if len(samples.X) != len(samples.Y) {
		return nil, fmt.Errorf("column length mismatch: %d x values, %d y values", len(samples.X), len(samples.Y))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	if samples.Len() == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		return p, nil
	}

	pts := make(plotter.XYs, samples.Len())
	for i := range pts {
		pts[i].X = samples.X[i]
		pts[i].Y = float64(samples.Y[i])
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create line: %w", err)
	}
	line.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return p, nil
}

// CreateLinePlot renders the chart and returns the encoded image.
func CreateLinePlot(samples *parser.Samples, opts ChartOptions) ([]byte, error) {
	opts = opts.withDefaults()
	p, err := newLinePlot(samples, opts)
	if err != nil {
		return nil, err
	}

	writer, err := p.WriterTo(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveLinePlot renders the chart to path. The file extension picks the format.
func SaveLinePlot(path string, samples *parser.Samples, opts ChartOptions) error {
	opts = opts.withDefaults()
	p, err := newLinePlot(samples, opts)
	if err != nil {
		return err
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
