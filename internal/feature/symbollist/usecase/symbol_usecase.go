// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"sort"

	"stock_sentiment/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts where the symbol list comes from.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all symbols ordered by SortKey.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	symbols, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(symbols, func(i, j int) bool { return symbols[i].SortKey < symbols[j].SortKey })
	return symbols, nil
}

// ListActiveCodes returns only the codes, in display order.
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	symbols, err := u.ListActiveSymbols(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, s.Code)
	}
	return codes, nil
}
