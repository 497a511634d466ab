package report

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/user/lifeplot_go/internal/analysis"
	"github.com/user/lifeplot_go/internal/parser"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and state for PDF generation
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	tr          func(string) string // UTF-8 to the core font encoding
	styles      map[string]func()
	lineHeight  float64
	currentY    float64 // manually tracked Y for flowing content
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		tr:          pdf.UnicodeTranslatorFromDescriptor(""),
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["tableCellPeak"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(200, 0, 0)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, s.tr(text), "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) error {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("failed to register image %s: %w", imageName, err)
	}

	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.Image(imageName, x, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
	return nil
}

// table draws headers and rows with relative column widths. highlight
// picks rows drawn in the peak style.
func (s *pdfStyler) table(headers []string, widthsRel []float64, rows [][]string, highlight func(int) bool) {
	widths := make([]float64, len(widthsRel))
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
	}

	header := func() {
		s.applyStyle("tableHeader")
		x := pdfMargin
		for i, h := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, s.tr(h), "1", 0, "C", true, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	header()
	for r, row := range rows {
		if s.currentY+s.lineHeight > s.pageHeight {
			s.newPage()
			header()
		}
		style := "tableCell"
		if highlight != nil && highlight(r) {
			style = "tableCellPeak"
		}
		s.applyStyle(style)
		x := pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, s.tr(cell), "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

// BuildPDFReport writes a report with the summary, the chart and every
// sample. source names the data file in the heading.
func BuildPDFReport(filepath string, source string, samples *parser.Samples, summary *analysis.Summary, chartPNG []byte) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph("Transition to Stable State", "h1", "C")
	styler.addSpacer(3)
	styler.writeParagraph(fmt.Sprintf("Data file: %s", source), "normal", "L")
	styler.addSpacer(3)

	if summary == nil || samples.Len() == 0 {
		styler.writeParagraph("No samples to display.", "normal", "L")
		return pdf.OutputFileAndClose(filepath)
	}

	styler.writeParagraph("Summary", "h2", "L")
	styler.table(
		[]string{"Samples", "Density range", "Generation range", "Mean generation", "Std dev", "Peak at density"},
		[]float64{0.12, 0.2, 0.18, 0.18, 0.14, 0.18},
		[][]string{{
			strconv.Itoa(summary.Count),
			fmt.Sprintf("%.3f - %.3f", summary.MinX, summary.MaxX),
			fmt.Sprintf("%d - %d", summary.MinY, summary.MaxY),
			fmt.Sprintf("%.2f", summary.MeanY),
			fmt.Sprintf("%.2f", summary.StdDevY),
			fmt.Sprintf("%.3f", summary.PeakX),
		}},
		nil,
	)
	styler.addSpacer(5)

	if len(chartPNG) > 0 {
		imgWidth := pdfContentWidth * 0.8
		imgHeight := imgWidth * (500.0 / 800.0)
		if err := styler.addImage(chartPNG, "chart", imgWidth, imgHeight, "Generation reached vs. initial live density"); err != nil {
			return err
		}
	}

	styler.newPage()
	styler.writeParagraph("Samples", "h2", "L")
	rows := make([][]string, samples.Len())
	for i := range rows {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(samples.X[i], 'f', -1, 64),
			strconv.Itoa(samples.Y[i]),
		}
	}
	styler.table(
		[]string{"#", "Density", "Generation"},
		[]float64{0.2, 0.4, 0.4},
		rows,
		func(r int) bool { return samples.Y[r] == summary.MaxY },
	)

	return pdf.OutputFileAndClose(filepath)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
