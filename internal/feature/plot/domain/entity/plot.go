// Package entity defines the domain models for the plot feature.
package entity

import (
	"html/template"

	dsentity "stock_sentiment/internal/feature/dataset/domain/entity"
)

// Plot is everything the result page needs for one symbol.
type Plot struct {
	Symbol     string
	Table      dsentity.Table
	TimeSeries template.HTML // two-panel sentiment/price chart fragment
	Heatmap    template.HTML // correlation heatmap fragment
}
