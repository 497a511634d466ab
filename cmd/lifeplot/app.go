package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/user/lifeplot_go/internal/analysis"
	"github.com/user/lifeplot_go/internal/parser"
	"github.com/user/lifeplot_go/internal/report"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App is bound to the chart window.
type App struct {
	ctx     context.Context
	source  string
	samples *parser.Samples
	summary *analysis.Summary
	chart   report.ChartOptions
}

// NewApp creates the window backend for already parsed samples.
func NewApp(source string, samples *parser.Samples, summary *analysis.Summary, chart report.ChartOptions) *App {
	return &App{
		source:  source,
		samples: samples,
		summary: summary,
		chart:   chart,
	}
}

// Title is the window title.
func (a *App) Title() string {
	if a.chart.Title != "" {
		return a.chart.Title
	}
	return report.DefaultTitle
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	runtime.WindowSetTitle(a.ctx, a.Title())
}

func (a *App) emit(event string, data ...interface{}) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, event, data...)
	}
}

func (a *App) sendStatus(message string) {
	a.emit("statusUpdate", message)
	log.Println(message)
}

// ChartImage returns the chart as a PNG data URL for the frontend.
func (a *App) ChartImage() (string, error) {
	opts := a.chart
	opts.Format = "png"
	img, err := report.CreateLinePlot(a.samples, opts)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img), nil
}

// Summary returns the statistics shown under the chart.
func (a *App) Summary() *analysis.Summary {
	return a.summary
}

// Source returns the data file the chart was read from.
func (a *App) Source() string {
	return a.source
}

// ChoosePDFPath asks the user where to save the PDF report.
// An empty result means the dialog was cancelled.
func (a *App) ChoosePDFPath() (string, error) {
	base := strings.TrimSuffix(filepath.Base(a.source), filepath.Ext(a.source))
	return runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export PDF report",
		DefaultFilename: base + ".pdf",
		Filters: []runtime.FileFilter{
			{DisplayName: "PDF (*.pdf)", Pattern: "*.pdf"},
		},
	})
}

func (a *App) exportPDF(pdfPath string) error {
	if pdfPath == "" {
		return fmt.Errorf("no output path given")
	}
	a.sendStatus(fmt.Sprintf("Generating PDF: %s...", pdfPath))
	return writePDF(pdfPath, a.source, a.samples, a.summary, a.chart)
}

// HandleExportPDF writes the PDF report in the background. Progress is
// reported through statusUpdate events and the outcome through a
// generationComplete event.
func (a *App) HandleExportPDF(pdfPath string) (string, error) {
	if pdfPath == "" {
		return "", fmt.Errorf("no output path given")
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errMsg := fmt.Sprintf("PANIC recovered: %v", r)
				a.sendStatus(errMsg)
				a.emit("generationComplete", false, errMsg)
			}
		}()

		a.emit("generationStart")
		if err := a.exportPDF(pdfPath); err != nil {
			errMsg := fmt.Sprintf("Error generating PDF report: %v", err)
			a.sendStatus(errMsg)
			a.emit("generationComplete", false, errMsg)
			return
		}
		successMsg := fmt.Sprintf("PDF report successfully generated: %s", pdfPath)
		a.sendStatus(successMsg)
		a.emit("generationComplete", true, successMsg)
	}()

	return "PDF export started in background.", nil
}
