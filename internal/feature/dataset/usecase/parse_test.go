package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_sentiment/internal/feature/dataset/domain"
)

func TestParseTable_Success(t *testing.T) {
	t.Parallel()

	raw := "\xef\xbb\xbf,Date, Negative ,Nuetral,Positive,Stock Price,Volume\n" +
		"0,2021-01-04,0.12,0.50,0.38,217.69,100\n" +
		"1,2021-01-05 16:00:00,0.10,0.55,0.35,218.29,200\n" +
		"\n" +
		"2,01/06/2021,0.2,0.4,0.4,212.25,300\n"

	table, err := ParseTable([]byte(raw))
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), table[0].Date)
	assert.Equal(t, time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC), table[1].Date, "time of day is dropped")
	assert.Equal(t, time.Date(2021, 1, 6, 0, 0, 0, 0, time.UTC), table[2].Date)
	assert.Equal(t, 0.12, table[0].Negative)
	assert.Equal(t, 0.50, table[0].Neutral)
	assert.Equal(t, 0.38, table[0].Positive)
	assert.Equal(t, 217.69, table[0].StockPrice)
}

func TestParseTable_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{
			name:    "empty input",
			raw:     "",
			wantMsg: "missing header",
		},
		{
			name:    "corrected spelling is not accepted",
			raw:     "Date,Negative,Neutral,Positive,Stock Price\n",
			wantMsg: "Nuetral",
		},
		{
			name:    "several missing columns are all named",
			raw:     "Date,Negative\n",
			wantMsg: "Nuetral, Positive, Stock Price",
		},
		{
			name:    "unparseable date",
			raw:     "Date,Negative,Nuetral,Positive,Stock Price\nyesterday,0.1,0.2,0.7,100\n",
			wantMsg: `line 2: column "Date"`,
		},
		{
			name:    "unparseable number",
			raw:     "Date,Negative,Nuetral,Positive,Stock Price\n2021-01-01,0.1,abc,0.7,100\n",
			wantMsg: `column "Nuetral"`,
		},
		{
			name:    "empty number",
			raw:     "Date,Negative,Nuetral,Positive,Stock Price\n2021-01-01,0.1,0.2,0.7,\n",
			wantMsg: `column "Stock Price"`,
		},
		{
			name:    "NaN is rejected",
			raw:     "Date,Negative,Nuetral,Positive,Stock Price\n2021-01-01,NaN,0.2,0.7,100\n",
			wantMsg: "non-finite",
		},
		{
			name:    "short record",
			raw:     "Date,Negative,Nuetral,Positive,Stock Price\n2021-01-01,0.1,0.2\n",
			wantMsg: "is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table, err := ParseTable([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, table)
			assert.True(t, errors.Is(err, domain.ErrMalformedData), "expected ErrMalformedData, got %v", err)
			assert.True(t, strings.Contains(err.Error(), tt.wantMsg), "error %q should contain %q", err.Error(), tt.wantMsg)
		})
	}
}

func TestParseTable_HeaderOnly(t *testing.T) {
	t.Parallel()

	table, err := ParseTable([]byte("Date,Negative,Nuetral,Positive,Stock Price\n"))
	require.NoError(t, err)
	assert.Empty(t, table)
}
