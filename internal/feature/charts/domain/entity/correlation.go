package entity

import "strconv"

// Placeholder is shown in place of an undefined coefficient.
const Placeholder = "n/a"

// Coefficient is a rounded Pearson coefficient. Defined is false when the
// coefficient cannot be computed (fewer than two rows or a constant column).
type Coefficient struct {
	Value   float64
	Defined bool
}

// Undefined is the zero coefficient with no value.
var Undefined = Coefficient{}

// Label renders the coefficient with two decimals, or Placeholder.
func (c Coefficient) Label() string {
	if !c.Defined {
		return Placeholder
	}
	return strconv.FormatFloat(c.Value, 'f', 2, 64)
}

// CorrelationMatrix is a symmetric matrix of coefficients over Labels.
type CorrelationMatrix struct {
	Labels []string
	Cells  [][]Coefficient
}

// Size returns the number of rows (and columns).
func (m CorrelationMatrix) Size() int { return len(m.Labels) }

// At returns the coefficient at row i, column j.
func (m CorrelationMatrix) At(i, j int) Coefficient { return m.Cells[i][j] }
