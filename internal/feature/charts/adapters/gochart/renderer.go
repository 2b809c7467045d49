// Package gochart renders chart figures as inline SVG using go-chart.
package gochart

import (
	"bytes"
	"fmt"
	"html/template"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"stock_sentiment/internal/feature/charts/domain/entity"
	"stock_sentiment/internal/feature/charts/usecase"
)

const (
	// DefaultWidth is used when the renderer is created with a non-positive width.
	DefaultWidth = 960

	titleBand = 40 // px reserved above the panels for the figure title
)

// Renderer implements usecase.Renderer with go-chart's SVG backend.
type Renderer struct {
	width int
}

var _ usecase.Renderer = (*Renderer)(nil)

// palette follows the line colours of common plotting defaults so the three
// sentiment series stay distinguishable.
var palette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
	drawing.ColorFromHex("00cc96"),
	drawing.ColorFromHex("ab63fa"),
}

var (
	frameColor = drawing.ColorFromHex("bfbfbf")
	textColor  = drawing.ColorFromHex("2a3f5f")
)

// NewRenderer returns a Renderer producing figures width pixels wide.
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{width: width}
}

// RenderTimeSeries draws each panel as its own SVG, stacked vertically under
// a common title. All panels use the same date range so their x axes line up.
func (r *Renderer) RenderTimeSeries(fig entity.TimeSeriesFigure) (template.HTML, error) {
	panelHeight := (fig.Height - titleBand) / max(len(fig.Panels), 1)
	xMin, xMax, hasDates := dateRange(fig.Panels)

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="figure figure-timeseries" style="height:%dpx">`, fig.Height)
	fmt.Fprintf(&b, `<h3 class="figure-title">%s</h3>`, template.HTMLEscapeString(fig.Title))
	for _, p := range fig.Panels {
		var (
			svg string
			err error
		)
		if p.Points() == 0 || !hasDates {
			svg, err = r.emptyPanel(p, panelHeight)
		} else {
			svg, err = r.linePanel(p, panelHeight, xMin, xMax)
		}
		if err != nil {
			return "", fmt.Errorf("panel %q: %w", p.Title, err)
		}
		fmt.Fprintf(&b, `<div class="figure-panel">%s</div>`, svg)
	}
	b.WriteString(`</div>`)
	return template.HTML(b.String()), nil
}

func (r *Renderer) linePanel(p entity.Panel, height int, xMin, xMax time.Time) (string, error) {
	series := make([]chart.Series, 0, len(p.Series))
	for i, s := range p.Series {
		series = append(series, chart.TimeSeries{
			Name:    s.Name,
			XValues: s.Dates,
			YValues: s.Values,
			Style: chart.Style{
				StrokeColor: palette[i%len(palette)],
				StrokeWidth: 2,
			},
		})
	}
	yMin, yMax := valueRange(p)

	ch := chart.Chart{
		Title:      p.Title,
		Width:      r.width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
			Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(xMin), Max: chart.TimeToFloat64(xMax)},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return "", err
	}
	return stripProlog(buf.String()), nil
}

// emptyPanel draws the panel frame, its title and the series names without
// any data, so an empty table still yields a complete figure.
func (r *Renderer) emptyPanel(p entity.Panel, height int) (string, error) {
	cr, err := newCanvas(r.width, height)
	if err != nil {
		return "", err
	}

	drawRect(cr, 16, 40, r.width-16, height-16, drawing.ColorWhite, frameColor)
	drawText(cr, p.Title, r.width/2, 24, 14, textColor, alignCenter)
	drawText(cr, "No data", r.width/2, height/2, 12, frameColor, alignCenter)

	names := make([]string, 0, len(p.Series))
	for _, s := range p.Series {
		names = append(names, s.Name)
	}
	drawText(cr, strings.Join(names, " · "), r.width/2, height-28, 10, textColor, alignCenter)

	return save(cr)
}

// RenderHeatmap draws an annotated grid, one square per matrix cell, with
// row labels on the left and column labels underneath.
func (r *Renderer) RenderHeatmap(fig entity.HeatmapFigure) (template.HTML, error) {
	height := fig.Height - titleBand
	cr, err := newCanvas(r.width, height)
	if err != nil {
		return "", err
	}

	const (
		left   = 120
		right  = 24
		top    = 16
		bottom = 48
	)
	m := fig.Matrix
	if n := m.Size(); n > 0 {
		cellW := (r.width - left - right) / n
		cellH := (height - top - bottom) / n
		for i := 0; i < n; i++ {
			y0 := top + i*cellH
			for j := 0; j < n; j++ {
				x0 := left + j*cellW
				c := m.At(i, j)
				drawRect(cr, x0, y0, x0+cellW, y0+cellH, toDrawing(fig.Scale.At(c)), drawing.ColorWhite)
				drawText(cr, c.Label(), x0+cellW/2, y0+cellH/2, 14, drawing.ColorBlack, alignCenter)
			}
			drawText(cr, m.Labels[i], left-8, y0+cellH/2, 12, textColor, alignRight)
		}
		for j := 0; j < n; j++ {
			drawText(cr, m.Labels[j], left+j*cellW+cellW/2, top+n*cellH+20, 12, textColor, alignCenter)
		}
	}

	svg, err := save(cr)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="figure figure-heatmap" style="height:%dpx">`, fig.Height)
	fmt.Fprintf(&b, `<h3 class="figure-title">%s</h3>`, template.HTMLEscapeString(fig.Title))
	b.WriteString(svg)
	b.WriteString(`</div>`)
	return template.HTML(b.String()), nil
}

// dateRange returns the shared x extent over every series. A single date is
// widened by half a day either side so the axis has a non-zero span.
func dateRange(panels []entity.Panel) (lo, hi time.Time, ok bool) {
	for _, p := range panels {
		for _, s := range p.Series {
			for _, d := range s.Dates {
				if !ok || d.Before(lo) {
					lo = d
				}
				if !ok || d.After(hi) {
					hi = d
				}
				ok = true
			}
		}
	}
	if ok && lo.Equal(hi) {
		lo = lo.Add(-12 * time.Hour)
		hi = hi.Add(12 * time.Hour)
	}
	return lo, hi, ok
}

// valueRange returns the y extent of a panel with a 5% margin; a flat panel
// gets a unit span around its value.
func valueRange(p entity.Panel) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range p.Series {
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// stripProlog removes an XML declaration so the SVG can be inlined in HTML.
func stripProlog(svg string) string {
	svg = strings.TrimSpace(svg)
	if strings.HasPrefix(svg, "<?xml") {
		if i := strings.Index(svg, "?>"); i >= 0 {
			svg = strings.TrimSpace(svg[i+2:])
		}
	}
	return svg
}
