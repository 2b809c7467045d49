// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// dependencyTimeout は依存先1つあたりの疎通確認の上限時間です。
const dependencyTimeout = time.Second

// Pinger は依存サービスの疎通を確認します。
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler は /healthz を処理します。
// 任意の依存先（redisなど）が落ちていてもサービス自体は応答できるため、
// 常に200を返し、依存先の状態はボディで報告します。
type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler は依存先の名前と Pinger の組で HealthHandler を生成します。
// nil の Pinger は "disabled" として報告されます。
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, h.report(c.Request.Context()))
	}
}

func (h *HealthHandler) report(ctx context.Context) gin.H {
	body := gin.H{"status": "ok"}
	if len(h.deps) == 0 {
		return body
	}

	deps := make(map[string]string, len(h.deps))
	for name, p := range h.deps {
		deps[name] = check(ctx, name, p)
		if deps[name] == "unavailable" {
			body["status"] = "degraded"
		}
	}
	body["dependencies"] = deps
	return body
}

func check(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, dependencyTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		slog.Warn("health dependency unavailable", "dependency", name, "error", err)
		return "unavailable"
	}
	return "ok"
}
