// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	dsentity "stock_sentiment/internal/feature/dataset/domain/entity"
	dsusecase "stock_sentiment/internal/feature/dataset/usecase"
	"stock_sentiment/internal/platform/config"
	infrahttp "stock_sentiment/internal/platform/http"
	"stock_sentiment/internal/platform/source"
	"stock_sentiment/internal/shared/ratelimiter"
)

// NewSymbolRegistry creates the registry with configured locator overrides.
func NewSymbolRegistry(cfg *config.Config) (*dsentity.SymbolRegistry, error) {
	return dsentity.NewSymbolRegistry(cfg.Source.Symbols)
}

// NewDataSource creates the scheme-dispatching source with HTTP client,
// outbound throttle and file reader. observer may be nil.
func NewDataSource(cfg *config.Config, observer source.Observer) *source.Source {
	httpClient := infrahttp.NewHTTPClient(cfg.Source.Timeout)
	throttle := ratelimiter.NewRateLimiter(cfg.Source.FetchesPerMinute, time.Minute)

	var waiter ratelimiter.Waiter
	if throttle != nil {
		waiter = throttle
	}

	remote := source.NewHTTPSource(httpClient, waiter, cfg.Source.MaxBytes)
	local := source.NewFileSource(cfg.Source.MaxBytes)
	return source.NewSource(remote, local, observer)
}

// NewDataLoader creates a fully configured DataLoader.
func NewDataLoader(cfg *config.Config, registry *dsentity.SymbolRegistry, src dsusecase.SourceFetcher) (*dsusecase.DataLoader, error) {
	start, err := cfg.Source.StartTime()
	if err != nil {
		return nil, err
	}
	return dsusecase.NewDataLoader(registry, src, start), nil
}
