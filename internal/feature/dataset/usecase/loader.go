// Package usecase はデータセットの取得・整形ロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"stock_sentiment/internal/feature/dataset/domain"
	"stock_sentiment/internal/feature/dataset/domain/entity"
)

// DefaultStartDate は読み込み時に残す最も古い日付です。
var DefaultStartDate = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// SourceFetcher はロケーターから生の CSV バイト列を取得します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform).
type SourceFetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// SymbolResolver は銘柄コードを登録済みの Symbol に解決します。
type SymbolResolver interface {
	Lookup(code string) (entity.Symbol, bool)
}

// DataLoader は銘柄ごとのデータセットを取得し、期間で絞り込み、日付順に並べます。
// 状態を持たないため、複数のリクエストから同時に呼び出しても安全です。
type DataLoader struct {
	symbols SymbolResolver
	source  SourceFetcher
	start   time.Time
}

// NewDataLoader は DataLoader を生成します。start がゼロ値の場合は DefaultStartDate を使用します。
func NewDataLoader(symbols SymbolResolver, source SourceFetcher, start time.Time) *DataLoader {
	if start.IsZero() {
		start = DefaultStartDate
	}
	return &DataLoader{symbols: symbols, source: source, start: start}
}

// Load は symbol のデータセットを取得して Table を返します。
//
// 失敗時は domain.ErrUnknownSymbol / domain.ErrSourceUnavailable /
// domain.ErrMalformedData のいずれかをラップしたエラーを返します。
func (l *DataLoader) Load(ctx context.Context, symbol string) (entity.Table, error) {
	s, ok := l.symbols.Lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSymbol, symbol)
	}

	raw, err := l.source.Fetch(ctx, s.Locator)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, s.Code, err)
	}

	table, err := ParseTable(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Code, err)
	}

	out := FilterSince(table, l.start)
	SortByDate(out)

	slog.Debug("dataset loaded", "symbol", s.Code, "rows", len(table), "kept", len(out))
	return out, nil
}

// FilterSince は Date が start 以降の行だけを新しい Table として返します。
func FilterSince(t entity.Table, start time.Time) entity.Table {
	out := make(entity.Table, 0, len(t))
	for _, r := range t {
		if !r.Date.Before(start) {
			out = append(out, r)
		}
	}
	return out
}

// SortByDate は Date の昇順に安定ソートします。同じ日付の行は元の順序を保ちます。
func SortByDate(t entity.Table) {
	sort.SliceStable(t, func(i, j int) bool { return t[i].Date.Before(t[j].Date) })
}
