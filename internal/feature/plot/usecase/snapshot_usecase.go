package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stock_sentiment/internal/feature/plot/domain/entity"
)

// Plotter は1銘柄分のチャートを生成します。
type Plotter interface {
	Plot(ctx context.Context, symbol string) (*entity.Plot, error)
}

// PageWriter は生成済みのチャートを1ページとして書き出します。
type PageWriter interface {
	WritePage(p *entity.Plot) (string, error)
}

// SnapshotUsecase は複数銘柄のダッシュボードページを一括で書き出すユースケースです。
type SnapshotUsecase struct {
	plotter Plotter
	writer  PageWriter
}

// NewSnapshotUsecase は新しい SnapshotUsecase を作成します。
func NewSnapshotUsecase(plotter Plotter, writer PageWriter) *SnapshotUsecase {
	return &SnapshotUsecase{plotter: plotter, writer: writer}
}

// SnapshotAll は指定された全銘柄のページを書き出します。
// 1銘柄の失敗はログに記録して次の銘柄へ進み、最後にすべての失敗をまとめて返します。
// ctx がキャンセルされた場合は残りの銘柄を処理せずに終了します。
func (u *SnapshotUsecase) SnapshotAll(ctx context.Context, symbols []string) (int, error) {
	var (
		written int
		errs    []error
	)
	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		path, err := u.snapshotOne(ctx, s)
		if err != nil {
			slog.Error("snapshot failed", "symbol", s, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s, err))
			continue
		}
		slog.Info("snapshot written", "symbol", s, "path", path)
		written++
	}
	return written, errors.Join(errs...)
}

func (u *SnapshotUsecase) snapshotOne(ctx context.Context, symbol string) (string, error) {
	p, err := u.plotter.Plot(ctx, symbol)
	if err != nil {
		return "", err
	}
	return u.writer.WritePage(p)
}
