// Package usecase はデータ取得からチャート描画までの一連の処理を実装します。
package usecase

import (
	"context"
	"html/template"

	dsentity "stock_sentiment/internal/feature/dataset/domain/entity"
	"stock_sentiment/internal/feature/plot/domain/entity"
)

// DataLoader は銘柄のデータセットを取得して整形済みの Table を返します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider.
type DataLoader interface {
	Load(ctx context.Context, symbol string) (dsentity.Table, error)
}

// ChartBuilder は Table から埋め込み用のチャートを描画します。
type ChartBuilder interface {
	BuildTimeSeries(table dsentity.Table, symbolLabel string) (template.HTML, error)
	BuildHeatmap(table dsentity.Table) (template.HTML, error)
}

// PlotUsecase は1リクエスト分のデータ読み込みと2種類のチャート描画をまとめます。
type PlotUsecase struct {
	loader DataLoader
	charts ChartBuilder
}

// NewPlotUsecase は PlotUsecase の新しいインスタンスを生成します。
func NewPlotUsecase(loader DataLoader, charts ChartBuilder) *PlotUsecase {
	return &PlotUsecase{loader: loader, charts: charts}
}

// Plot は symbol のデータを読み込み、時系列チャートと相関ヒートマップを描画します。
// 途中で失敗した場合は部分的な結果を返さず、エラーをそのまま返します。
func (u *PlotUsecase) Plot(ctx context.Context, symbol string) (*entity.Plot, error) {
	table, err := u.loader.Load(ctx, symbol)
	if err != nil {
		return nil, err
	}

	ts, err := u.charts.BuildTimeSeries(table, symbol)
	if err != nil {
		return nil, err
	}
	hm, err := u.charts.BuildHeatmap(table)
	if err != nil {
		return nil, err
	}

	return &entity.Plot{Symbol: symbol, Table: table, TimeSeries: ts, Heatmap: hm}, nil
}
