package gochart

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type alignment int

const (
	alignCenter alignment = iota
	alignRight
)

// newCanvas returns an SVG renderer with the default font loaded, ready for
// low-level drawing.
func newCanvas(width, height int) (chart.Renderer, error) {
	cr, err := chart.SVG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	cr.SetFont(font)
	return cr, nil
}

func drawRect(cr chart.Renderer, x0, y0, x1, y1 int, fill, stroke drawing.Color) {
	cr.SetFillColor(fill)
	cr.SetStrokeColor(stroke)
	cr.SetStrokeWidth(1)
	cr.MoveTo(x0, y0)
	cr.LineTo(x1, y0)
	cr.LineTo(x1, y1)
	cr.LineTo(x0, y1)
	cr.LineTo(x0, y0)
	cr.Close()
	cr.FillStroke()
}

// drawText places body with its vertical centre on y.
func drawText(cr chart.Renderer, body string, x, y int, size float64, col drawing.Color, align alignment) {
	cr.SetFontSize(size)
	cr.SetFontColor(col)
	box := cr.MeasureText(body)
	switch align {
	case alignCenter:
		x -= box.Width() / 2
	case alignRight:
		x -= box.Width()
	}
	cr.Text(body, x, y+box.Height()/2)
}

func save(cr chart.Renderer) (string, error) {
	var buf bytes.Buffer
	if err := cr.Save(&buf); err != nil {
		return "", err
	}
	return stripProlog(buf.String()), nil
}
