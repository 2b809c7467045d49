// Package redis はredisクライアントの生成を提供します。
package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_sentiment/internal/platform/config"
)

// pingTimeout は起動時の接続確認の上限時間です。
const pingTimeout = 3 * time.Second

// NewRedisClient は設定に従ってredisへ接続し、疎通を確認したクライアントを返します。
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	addr := cfg.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}

// Pinger はヘルスチェック用にredisの疎通を確認します。
type Pinger struct {
	rdb *redis.Client
}

// NewPinger は rdb をラップした Pinger を返します。
func NewPinger(rdb *redis.Client) *Pinger {
	return &Pinger{rdb: rdb}
}

// Ping はPINGコマンドの結果を返します。
func (p *Pinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}
