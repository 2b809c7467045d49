package usecase

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"stock_sentiment/internal/feature/dataset/domain"
	"stock_sentiment/internal/feature/dataset/domain/entity"
)

// dateLayouts は Date 列として受け付ける書式です。時刻部分は切り捨てます。
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// ParseTable は CSV バイト列をヘッダー付きの表として解析し、Table に変換します。
// 必須列が無い場合や、日付・数値が解析できないセルがある場合は
// domain.ErrMalformedData をラップしたエラーを返します（部分的な結果は返しません）。
func ParseTable(raw []byte) (entity.Table, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", domain.ErrMalformedData)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrMalformedData, err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	table := entity.Table{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedData, err)
		}
		line, _ := r.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		row, err := parseRow(rec, cols, line)
		if err != nil {
			return nil, err
		}
		table = append(table, row)
	}
	return table, nil
}

// columnIndex は必須列のレコード内位置です。
type columnIndex struct {
	date, negative, neutral, positive, price int
}

func locateColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	var missing []string
	for _, name := range entity.RequiredColumns {
		if _, ok := pos[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("%w: missing column(s) %s", domain.ErrMalformedData, strings.Join(missing, ", "))
	}

	return columnIndex{
		date:     pos[entity.ColumnDate],
		negative: pos[entity.ColumnNegative],
		neutral:  pos[entity.ColumnNeutral],
		positive: pos[entity.ColumnPositive],
		price:    pos[entity.ColumnStockPrice],
	}, nil
}

func parseRow(rec []string, cols columnIndex, line int) (entity.Row, error) {
	cell := func(i int, name string) (string, error) {
		if i >= len(rec) {
			return "", fmt.Errorf("%w: line %d: column %q is missing", domain.ErrMalformedData, line, name)
		}
		return strings.TrimSpace(rec[i]), nil
	}

	s, err := cell(cols.date, entity.ColumnDate)
	if err != nil {
		return entity.Row{}, err
	}
	date, err := parseDate(s)
	if err != nil {
		return entity.Row{}, fmt.Errorf("%w: line %d: column %q: %v", domain.ErrMalformedData, line, entity.ColumnDate, err)
	}

	row := entity.Row{Date: date}
	fields := []struct {
		idx  int
		name string
		dst  *float64
	}{
		{cols.negative, entity.ColumnNegative, &row.Negative},
		{cols.neutral, entity.ColumnNeutral, &row.Neutral},
		{cols.positive, entity.ColumnPositive, &row.Positive},
		{cols.price, entity.ColumnStockPrice, &row.StockPrice},
	}
	for _, f := range fields {
		s, err := cell(f.idx, f.name)
		if err != nil {
			return entity.Row{}, err
		}
		v, err := parseNumber(s)
		if err != nil {
			return entity.Row{}, fmt.Errorf("%w: line %d: column %q: %v", domain.ErrMalformedData, line, f.name, err)
		}
		*f.dst = v
	}
	return row, nil
}

// parseDate は日付文字列を UTC の 0 時に正規化して返します。
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q", s)
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
