package report

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/user/lifeplot_go/internal/life"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// cellPalette maps dead cells (z=0) and live cells (z=1) to two colours.
type cellPalette struct {
	Dead, Alive color.Color
}

func (p cellPalette) Colors() []color.Color {
	return []color.Color{p.Dead, p.Alive}
}

// boardGrid exposes a board as plotter.GridXYZ. Grid row 0 is the bottom
// of the plot, so rows are flipped to keep board row 0 on top.
type boardGrid struct {
	board *life.Board
}

func (g boardGrid) Dims() (c, r int) { return g.board.Columns, g.board.Rows }
func (g boardGrid) X(c int) float64 { return float64(c) }
func (g boardGrid) Y(r int) float64 { return float64(r) }

func (g boardGrid) Z(c, r int) float64 {
	if g.board.Alive(c, g.board.Rows-1-r) {
		return 1
	}
	return 0
}

// CreateBoardHeatmap renders the live cells of b as a PNG.
func CreateBoardHeatmap(b *life.Board, title string) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("no board to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Min = -0.5
	p.X.Max = float64(b.Columns) - 0.5
	p.Y.Min = -0.5
	p.Y.Max = float64(b.Rows) - 0.5
	p.HideAxes()

	hm := plotter.NewHeatMap(boardGrid{board: b}, cellPalette{
		Dead:  color.Gray{Y: 235},
		Alive: color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 255},
	})
	hm.Min = 0
	hm.Max = 1
	p.Add(hm)

	// keep cells square
	const cellPoints = 8
	w := vg.Points(float64(b.Columns*cellPoints) + 60)
	h := vg.Points(float64(b.Rows*cellPoints) + 60)

	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create heatmap writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write heatmap to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveBoardHeatmap writes CreateBoardHeatmap's output to path.
func SaveBoardHeatmap(path string, b *life.Board, title string) error {
	img, err := CreateBoardHeatmap(b, title)
	if err != nil {
		return err
	}
	return writeFile(path, img)
}
