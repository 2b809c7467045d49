package router

import (
	"github.com/gin-gonic/gin"

	plothandler "stock_sentiment/internal/feature/plot/transport/handler"
	"stock_sentiment/internal/feature/plot/transport/view"
	symbollisthandler "stock_sentiment/internal/feature/symbollist/transport/handler"
	healthhandler "stock_sentiment/internal/platform/http/handler"
	"stock_sentiment/internal/platform/metrics"
	"stock_sentiment/internal/platform/ratelimit"
)

// Deps groups the handlers and middleware the router mounts.
// Metrics and Limiter may be nil.
type Deps struct {
	Plot      *plothandler.PlotHandler
	Symbols   *symbollisthandler.SymbolHandler
	Health    *healthhandler.HealthHandler
	Metrics   *metrics.Metrics
	Limiter   ratelimit.Limiter
	PlotLimit ratelimit.Limit
}

// PlotRateLimitPrefix namespaces the redis keys of the POST /plot limiter.
const PlotRateLimitPrefix = "ratelimit:plot"

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(view.Templates())

	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// 導通確認用
	r.GET("/healthz", d.Health.Health)
	r.HEAD("/healthz", d.Health.Health)
	r.OPTIONS("/healthz", d.Health.Health)

	// 銘柄選択フォームと結果ページ
	r.GET("/", d.Plot.Index)
	r.POST("/plot", ratelimit.Middleware(d.Limiter, PlotRateLimitPrefix, d.PlotLimit), d.Plot.Plot)

	// APIクライアント向けの銘柄一覧
	r.GET("/symbols", d.Symbols.List)

	return r
}
