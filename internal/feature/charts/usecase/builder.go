// Package usecase は時系列チャートと相関ヒートマップの組み立てロジックを実装します。
package usecase

import (
	"fmt"
	"html/template"

	"stock_sentiment/internal/feature/charts/domain/entity"
	dsentity "stock_sentiment/internal/feature/dataset/domain/entity"
)

// 図のタイトルと系列名です。
const (
	SentimentPanelTitle = "Sentiment Trends"
	PricePanelTitle     = "Stock Price Movements"
	HeatmapTitle        = "Correlation Matrix"

	NegativeSeriesName = "Negative Sentiment"
	NeutralSeriesName  = "Neutral Sentiment"
	PositiveSeriesName = "Positive Sentiment"
	PriceSeriesName    = "Stock Price"
)

// Renderer は図の構造データを埋め込み可能なマークアップに変換する描画バックエンドです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Renderer interface {
	RenderTimeSeries(fig entity.TimeSeriesFigure) (template.HTML, error)
	RenderHeatmap(fig entity.HeatmapFigure) (template.HTML, error)
}

// ChartBuilder は Table から2種類の図を組み立て、Renderer で描画します。
// 入力の Table は変更しません。
type ChartBuilder struct {
	renderer Renderer
	height   int
}

// NewChartBuilder は ChartBuilder を生成します。height が0以下の場合は entity.DefaultHeight を使用します。
func NewChartBuilder(r Renderer, height int) *ChartBuilder {
	if height <= 0 {
		height = entity.DefaultHeight
	}
	return &ChartBuilder{renderer: r, height: height}
}

// TimeSeriesTitle は時系列チャート全体のタイトルを返します。
func TimeSeriesTitle(symbolLabel string) string {
	return fmt.Sprintf("%s Sentiment Trends and Stock Price Movements", symbolLabel)
}

// TimeSeriesFigure は感情スコア3系列のパネルと株価のパネルからなる図を返します。
func (b *ChartBuilder) TimeSeriesFigure(table dsentity.Table, symbolLabel string) entity.TimeSeriesFigure {
	dates := table.Dates()
	return entity.TimeSeriesFigure{
		Title:  TimeSeriesTitle(symbolLabel),
		Height: b.height,
		Panels: []entity.Panel{
			{
				Title: SentimentPanelTitle,
				Series: []entity.Series{
					{Name: NegativeSeriesName, Dates: dates, Values: table.Negatives()},
					{Name: NeutralSeriesName, Dates: dates, Values: table.Neutrals()},
					{Name: PositiveSeriesName, Dates: dates, Values: table.Positives()},
				},
			},
			{
				Title: PricePanelTitle,
				Series: []entity.Series{
					{Name: PriceSeriesName, Dates: dates, Values: table.StockPrices()},
				},
			},
		},
	}
}

// HeatmapFigure は相関行列の注釈付きヒートマップを返します。
func (b *ChartBuilder) HeatmapFigure(table dsentity.Table) entity.HeatmapFigure {
	return entity.HeatmapFigure{
		Title:  HeatmapTitle,
		Height: b.height,
		Matrix: Correlate(table),
		Scale:  entity.RdYlGn,
	}
}

// BuildTimeSeries は時系列チャートを描画します。空の Table でも空のパネルを描画し、エラーにはしません。
func (b *ChartBuilder) BuildTimeSeries(table dsentity.Table, symbolLabel string) (template.HTML, error) {
	out, err := b.renderer.RenderTimeSeries(b.TimeSeriesFigure(table, symbolLabel))
	if err != nil {
		return "", fmt.Errorf("render time series: %w", err)
	}
	return out, nil
}

// BuildHeatmap は相関ヒートマップを描画します。
func (b *ChartBuilder) BuildHeatmap(table dsentity.Table) (template.HTML, error) {
	out, err := b.renderer.RenderHeatmap(b.HeatmapFigure(table))
	if err != nil {
		return "", fmt.Errorf("render heatmap: %w", err)
	}
	return out, nil
}
