package usecase

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"stock_sentiment/internal/feature/charts/domain/entity"
	dsentity "stock_sentiment/internal/feature/dataset/domain/entity"
)

// correlationColumns は相関行列の列順です。ラベルは CSV のヘッダー名をそのまま使います。
var correlationColumns = []struct {
	label string
	get   func(dsentity.Table) []float64
}{
	{dsentity.ColumnNegative, dsentity.Table.Negatives},
	{dsentity.ColumnNeutral, dsentity.Table.Neutrals},
	{dsentity.ColumnPositive, dsentity.Table.Positives},
	{dsentity.ColumnStockPrice, dsentity.Table.StockPrices},
}

// Correlate は Negative / Nuetral / Positive / Stock Price の4列について
// ピアソン相関係数を小数第2位に丸めた対称行列を返します。
// 行数が2未満、またはどちらかの列の分散が0の場合、そのセルは未定義になります。
func Correlate(table dsentity.Table) entity.CorrelationMatrix {
	n := len(correlationColumns)
	labels := make([]string, n)
	cols := make([][]float64, n)
	constant := make([]bool, n)
	for i, c := range correlationColumns {
		labels[i] = c.label
		cols[i] = c.get(table)
		constant[i] = isConstant(cols[i])
	}

	cells := make([][]entity.Coefficient, n)
	for i := range cells {
		cells[i] = make([]entity.Coefficient, n)
	}

	enough := table.Len() >= 2
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := entity.Undefined
			switch {
			case !enough || constant[i] || constant[j]:
			case i == j:
				c = entity.Coefficient{Value: 1, Defined: true}
			default:
				c = pearson(cols[i], cols[j])
			}
			cells[i][j] = c
			cells[j][i] = c
		}
	}
	return entity.CorrelationMatrix{Labels: labels, Cells: cells}
}

func pearson(x, y []float64) entity.Coefficient {
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return entity.Undefined
	}
	v := decimal.NewFromFloat(r).Round(2)
	if v.GreaterThan(decimal.NewFromInt(1)) {
		v = decimal.NewFromInt(1)
	}
	if v.LessThan(decimal.NewFromInt(-1)) {
		v = decimal.NewFromInt(-1)
	}
	return entity.Coefficient{Value: v.InexactFloat64(), Defined: true}
}

// isConstant は全要素が等しい（分散が0の）列かどうかを返します。
// 平均からの偏差で判定すると浮動小数点誤差で0にならないため、値を直接比較します。
func isConstant(xs []float64) bool {
	for _, x := range xs[min(1, len(xs)):] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
