package di

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"stock_sentiment/internal/app/router"
	"stock_sentiment/internal/feature/charts/adapters/gochart"
	dsentity "stock_sentiment/internal/feature/dataset/domain/entity"
	chartsusecase "stock_sentiment/internal/feature/charts/usecase"
	plotusecase "stock_sentiment/internal/feature/plot/usecase"
	plothandler "stock_sentiment/internal/feature/plot/transport/handler"
	symbollistadapters "stock_sentiment/internal/feature/symbollist/adapters"
	symbollisthandler "stock_sentiment/internal/feature/symbollist/transport/handler"
	symbollistusecase "stock_sentiment/internal/feature/symbollist/usecase"
	"stock_sentiment/internal/platform/config"
	healthhandler "stock_sentiment/internal/platform/http/handler"
	"stock_sentiment/internal/platform/metrics"
	"stock_sentiment/internal/platform/ratelimit"
	infraredis "stock_sentiment/internal/platform/redis"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "stock_sentiment"

// App holds the use cases shared by the server and the snapshot command.
type App struct {
	Registry *dsentity.SymbolRegistry
	Plot     *plotusecase.PlotUsecase
	Symbols  *symbollistusecase.SymbolUsecase
	Metrics  *metrics.Metrics
}

// NewApp wires the plot pipeline and the symbol list.
func NewApp(cfg *config.Config) (*App, error) {
	m := metrics.New(MetricsNamespace)

	registry, err := NewSymbolRegistry(cfg)
	if err != nil {
		return nil, err
	}
	loader, err := NewDataLoader(cfg, registry, NewDataSource(cfg, m))
	if err != nil {
		return nil, err
	}
	charts := chartsusecase.NewChartBuilder(gochart.NewRenderer(cfg.Chart.Width), cfg.Chart.Height)

	return &App{
		Registry: registry,
		Plot:     plotusecase.NewPlotUsecase(loader, charts),
		Symbols:  symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(registry)),
		Metrics:  m,
	}, nil
}

// NewRouter builds the HTTP router for app. rdb may be nil, which disables
// rate limiting and reports redis as disabled on /healthz.
func NewRouter(cfg *config.Config, app *App, rdb *redis.Client) *gin.Engine {
	deps := map[string]healthhandler.Pinger{"redis": nil}
	if rdb != nil {
		deps["redis"] = infraredis.NewPinger(rdb)
	}

	return router.NewRouter(router.Deps{
		Plot:      plothandler.NewPlotHandler(app.Plot, app.Registry),
		Symbols:   symbollisthandler.NewSymbolHandler(app.Symbols),
		Health:    healthhandler.NewHealthHandler(deps),
		Metrics:   app.Metrics,
		Limiter:   NewPlotLimiter(rdb),
		PlotLimit: ratelimit.PerMinute(cfg.RateLimit.PlotPerMinute, cfg.RateLimit.Burst),
	})
}
