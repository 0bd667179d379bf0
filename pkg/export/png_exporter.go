package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	pngTitleHeight  = 32
	pngHeaderHeight = 28
	pngRowHeight    = 44
	pngColWidth     = 150
	pngLabelWidth   = 72
)

// GridCell is one colored block spanning consecutive rows of a column.
type GridCell struct {
	Day      string
	Row      int
	RowSpan  int
	Label    string
	Sublabel string
	Color    string
}

// Grid describes a weekly timetable image: one column per day, one row
// per time slot.
type Grid struct {
	Title     string
	Days      []string
	RowLabels []string
	Cells     []GridCell
}

// PNGExporter rasterises a Grid into a PNG image.
type PNGExporter struct{}

// NewPNGExporter constructs a PNG exporter.
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{}
}

// Render draws the grid and returns PNG bytes.
func (e *PNGExporter) Render(grid Grid) ([]byte, error) {
	if len(grid.Days) == 0 || len(grid.RowLabels) == 0 {
		return nil, fmt.Errorf("png grid requires days and rows")
	}

	dayIndex := make(map[string]int, len(grid.Days))
	for i, day := range grid.Days {
		dayIndex[day] = i
	}

	width := pngLabelWidth + pngColWidth*len(grid.Days)
	height := pngTitleHeight + pngHeaderHeight + pngRowHeight*len(grid.RowLabels)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	ink := color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	line := color.RGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}

	if grid.Title != "" {
		drawText(img, grid.Title, pngLabelWidth, pngTitleHeight-12, ink)
	}

	gridTop := pngTitleHeight
	for i, day := range grid.Days {
		x := pngLabelWidth + i*pngColWidth
		drawText(img, day, x+8, gridTop+pngHeaderHeight-10, ink)
	}
	for i, label := range grid.RowLabels {
		y := gridTop + pngHeaderHeight + i*pngRowHeight
		drawText(img, label, 6, y+16, ink)
	}

	for _, cell := range grid.Cells {
		col, ok := dayIndex[cell.Day]
		if !ok || cell.RowSpan <= 0 {
			continue
		}
		if cell.Row < 0 || cell.Row+cell.RowSpan > len(grid.RowLabels) {
			return nil, fmt.Errorf("cell %q outside the grid", cell.Label)
		}

		fill, err := parseHexColor(cell.Color)
		if err != nil {
			return nil, err
		}

		x0 := pngLabelWidth + col*pngColWidth + 2
		y0 := gridTop + pngHeaderHeight + cell.Row*pngRowHeight + 2
		rect := image.Rect(x0, y0, x0+pngColWidth-4, y0+cell.RowSpan*pngRowHeight-4)
		draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)

		drawText(img, cell.Label, x0+6, y0+18, color.White)
		if cell.Sublabel != "" {
			drawText(img, cell.Sublabel, x0+6, y0+34, color.White)
		}
	}

	// Grid lines go on top so cell fills do not swallow them.
	for i := 0; i <= len(grid.Days); i++ {
		x := pngLabelWidth + i*pngColWidth
		vline(img, x, gridTop, height, line)
	}
	for i := 0; i <= len(grid.RowLabels)+1; i++ {
		y := gridTop + i*pngHeaderHeight
		if i > 0 {
			y = gridTop + pngHeaderHeight + (i-1)*pngRowHeight
		}
		hline(img, 0, width, y, line)
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(img *image.RGBA, text string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		img.Set(x, y, c)
	}
}

func hline(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x < x1; x++ {
		img.Set(x, y, c)
	}
}

func parseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
