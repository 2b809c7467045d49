package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"stock_sentiment/internal/shared/ratelimiter"
)

// HTTPSource はHTTP(S)上のCSVデータセットを取得します。
type HTTPSource struct {
	client   *http.Client
	limiter  ratelimiter.Waiter
	maxBytes int64
}

var _ Fetcher = (*HTTPSource)(nil)

// NewHTTPSource は指定されたHTTPクライアントでHTTPSourceの新しいインスタンスを生成します。
// limiter は nil でも構いません。
func NewHTTPSource(client *http.Client, limiter ratelimiter.Waiter, maxBytes int64) *HTTPSource {
	return &HTTPSource{client: client, limiter: limiter, maxBytes: maxBytes}
}

// Fetch は locator にGETリクエストを送り、レスポンスボディを返します。
// 4xx/5xx はエラーとし、maxBytes を超えるボディは ErrTooLarge になります。
func (s *HTTPSource) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	// リクエストを実行
	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d", res.StatusCode)
	}

	return readLimited(res.Body, s.maxBytes)
}

// readLimited は最大 maxBytes まで読み込みます。0以下は無制限です。
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxBytes)
	}
	return data, nil
}
