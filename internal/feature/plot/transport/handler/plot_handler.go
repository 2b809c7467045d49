// Package handler はplotフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_sentiment/internal/feature/dataset/domain"
	dsentity "stock_sentiment/internal/feature/dataset/domain/entity"
	"stock_sentiment/internal/feature/plot/domain/entity"
	"stock_sentiment/internal/feature/plot/transport/view"
)

// FormSymbolField is the form field carrying the selected symbol.
const FormSymbolField = "stock_symbol"

// InvalidSymbolMessage is the plain-text body returned for an unknown symbol.
const InvalidSymbolMessage = "Invalid stock symbol!"

// PlotUsecase はチャート生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PlotUsecase interface {
	Plot(ctx context.Context, symbol string) (*entity.Plot, error)
}

// SymbolLister は選択フォームに表示する銘柄一覧を返します。
type SymbolLister interface {
	List() []dsentity.Symbol
}

// PlotHandler は選択フォームと結果ページのHTTPリクエストを処理します。
type PlotHandler struct {
	uc      PlotUsecase
	symbols SymbolLister
}

// NewPlotHandler は PlotHandler の新しいインスタンスを生成します。
func NewPlotHandler(uc PlotUsecase, symbols SymbolLister) *PlotHandler {
	return &PlotHandler{uc: uc, symbols: symbols}
}

// Index は銘柄選択フォームを返します。
//
// エンドポイント: GET /
func (h *PlotHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, view.IndexTemplate, view.NewIndexPage(h.symbols.List()))
}

// Plot はフォームで選択された銘柄のチャートページを返します。
//
// エンドポイント: POST /plot (form: stock_symbol)
func (h *PlotHandler) Plot(c *gin.Context) {
	symbol := c.PostForm(FormSymbolField)

	p, err := h.uc.Plot(c.Request.Context(), symbol)
	if err != nil {
		status, msg := StatusFor(err)
		if status >= http.StatusInternalServerError {
			slog.Error("plot failed", "symbol", symbol, "status", status, "error", err)
		} else {
			slog.Warn("plot rejected", "symbol", symbol, "status", status, "error", err)
		}
		c.String(status, msg)
		return
	}

	c.HTML(http.StatusOK, view.PlotTemplate, view.NewPlotPage(p))
}

// StatusFor maps a pipeline error to its HTTP status and plain-text body.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnknownSymbol):
		return http.StatusBadRequest, InvalidSymbolMessage
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusBadGateway, "Data source unavailable"
	case errors.Is(err, domain.ErrMalformedData):
		return http.StatusUnprocessableEntity, "Malformed dataset"
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
