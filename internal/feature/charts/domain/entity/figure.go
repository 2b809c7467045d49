// Package entity defines the chart models handed from the builder to a
// rendering backend.
package entity

import "time"

// DefaultHeight is the rendered height of every figure, in pixels.
const DefaultHeight = 600

// Series is one connected line of values over dates.
type Series struct {
	Name   string
	Dates  []time.Time
	Values []float64
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Values) }

// Panel is one plotting area with its own value axis.
type Panel struct {
	Title  string
	Series []Series
}

// Points returns the total number of points across the panel's series.
func (p Panel) Points() int {
	n := 0
	for _, s := range p.Series {
		n += s.Len()
	}
	return n
}

// TimeSeriesFigure is a stack of panels sharing the date axis.
type TimeSeriesFigure struct {
	Title  string
	Height int
	Panels []Panel
}

// HeatmapFigure is an annotated square grid of correlation cells.
type HeatmapFigure struct {
	Title  string
	Height int
	Matrix CorrelationMatrix
	Scale  ColorScale
}
