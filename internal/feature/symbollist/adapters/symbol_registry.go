// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	dsentity "stock_sentiment/internal/feature/dataset/domain/entity"
	"stock_sentiment/internal/feature/symbollist/domain/entity"
	"stock_sentiment/internal/feature/symbollist/usecase"
)

// RegistryLister は登録済み銘柄を登録順で返します。
type RegistryLister interface {
	List() []dsentity.Symbol
}

// symbolRegistry はSymbolRepositoryインターフェースのレジストリ実装です。
type symbolRegistry struct {
	registry RegistryLister
}

var _ usecase.SymbolRepository = (*symbolRegistry)(nil)

// NewSymbolRepository は指定されたレジストリでsymbolRegistryの新しいインスタンスを生成します。
func NewSymbolRepository(r RegistryLister) *symbolRegistry {
	return &symbolRegistry{registry: r}
}

// ListActive は登録順をsort_keyとしてすべての銘柄を返します。
func (r *symbolRegistry) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := r.registry.List()
	symbols := make([]entity.Symbol, 0, len(src))
	for i, s := range src {
		symbols = append(symbols, entity.Symbol{Code: s.Code, Name: s.Name, SortKey: i + 1})
	}
	return symbols, nil
}
