package di

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_sentiment/internal/platform/config"
)

const datasetCSV = `,Date,Negative,Nuetral,Positive,Stock Price
0,2020-12-30,0.2,0.5,0.3,221.68
1,2021-01-05,0.1,0.4,0.5,217.90
2,2021-01-04,0.3,0.4,0.3,217.69
3,2021-01-06,0.2,0.3,0.5,212.25
`

// setupConfig は4銘柄すべてをローカルファイルに向けた設定を返します。
func setupConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	cfg := config.Default()
	cfg.Source.Symbols = map[string]string{
		"MSFT": write("msft.csv", datasetCSV),
		"AAPL": "file://" + filepath.ToSlash(write("aapl.csv", datasetCSV)),
		"ADBE": write("adbe.csv", "Date,Negative,Neutral,Positive,Stock Price\n2021-01-04,0.1,0.3,0.6,1\n"),
		"V":    filepath.Join(dir, "missing.csv"),
	}
	return cfg
}

func postPlot(r http.Handler, symbol string) *httptest.ResponseRecorder {
	form := url.Values{"stock_symbol": {symbol}}
	req := httptest.NewRequest(http.MethodPost, "/plot", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "198.51.100.7:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApp_Plot_EndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := setupConfig(t)
	app, err := NewApp(cfg)
	require.NoError(t, err)
	r := NewRouter(cfg, app, nil)

	tests := []struct {
		name           string
		symbol         string
		expectedStatus int
		contains       []string
		notContains    []string
	}{
		{
			name:           "success: page with both charts and filtered table",
			symbol:         "MSFT",
			expectedStatus: http.StatusOK,
			contains: []string{
				"MSFT Sentiment Trends and Stock Price Movements",
				"Sentiment Trends",
				"Stock Price Movements",
				"Correlation Matrix",
				"Explanation of Correlation Coefficients",
				"<svg",
				"<td>2021-01-04</td>",
			},
			notContains: []string{"<td>2020-12-30</td>"},
		},
		{
			name:           "success: file URI locator",
			symbol:         "AAPL",
			expectedStatus: http.StatusOK,
			contains:       []string{"AAPL Sentiment Trends and Stock Price Movements"},
		},
		{
			name:           "error: unknown symbol",
			symbol:         "TSLA",
			expectedStatus: http.StatusBadRequest,
			contains:       []string{"Invalid stock symbol!"},
		},
		{
			name:           "error: lowercase symbol is unknown",
			symbol:         "msft",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error: dataset missing the Nuetral column",
			symbol:         "ADBE",
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "error: unreachable source",
			symbol:         "V",
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postPlot(r, tt.symbol)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, w.Body.String(), s)
			}
		})
	}

	// 行は日付順で描画される
	body := postPlot(r, "MSFT").Body.String()
	i4 := strings.Index(body, "<td>2021-01-04</td>")
	i5 := strings.Index(body, "<td>2021-01-05</td>")
	i6 := strings.Index(body, "<td>2021-01-06</td>")
	assert.True(t, i4 < i5 && i5 < i6, "rows out of order")
}

func TestApp_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := setupConfig(t)
	app, err := NewApp(cfg)
	require.NoError(t, err)
	r := NewRouter(cfg, app, nil)

	// GET / は登録順のフォーム
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="MSFT">`)

	// GET /symbols
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/symbols", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"code":"MSFT","name":"Microsoft"},{"code":"AAPL","name":"Apple"},{"code":"ADBE","name":"Adobe"},{"code":"V","name":"Visa"}]`, w.Body.String())

	// GET /healthz は redis 無効を報告
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, map[string]any{"redis": "disabled"}, health["dependencies"])

	// GET /metrics は取得回数を公開
	postPlot(r, "MSFT")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `stock_sentiment_dataset_fetches_total{outcome="success",scheme="file"}`)
	assert.Contains(t, w.Body.String(), `stock_sentiment_http_requests_total{method="POST",route="/plot",status="200"}`)
}

func TestApp_PlotRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := setupConfig(t)
	cfg.RateLimit.PlotPerMinute = 1
	cfg.RateLimit.Burst = 1

	app, err := NewApp(cfg)
	require.NoError(t, err)
	r := NewRouter(cfg, app, rdb)

	assert.Equal(t, http.StatusOK, postPlot(r, "MSFT").Code)

	w := postPlot(r, "MSFT")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// GET は制限対象外
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/symbols", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewApp_RejectsUnknownOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Symbols = map[string]string{"TSLA": "/data/tsla.csv"}

	app, err := NewApp(cfg)
	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestNewPlotLimiter_NilRedis(t *testing.T) {
	assert.Nil(t, NewPlotLimiter(nil))
}
