// Package layout models warehouse floor layouts and extracts shelf groups
// from their cell matrices.
package layout

// Matrix is a floor grid indexed [row][col]. A cell holds 0 when empty, or
// the shelf-row count of the group occupying it.
type Matrix [][]int

// Rows returns the number of matrix rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the width of the widest row.
func (m Matrix) Cols() int {
	cols := 0
	for _, row := range m {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// At returns the cell value, or 0 outside the matrix or past a short row.
func (m Matrix) At(i, j int) int {
	if i < 0 || i >= len(m) || j < 0 || j >= len(m[i]) {
		return 0
	}
	return m[i][j]
}

// Floor is one storey of the warehouse.
type Floor struct {
	Height float32 `json:"height" yaml:"height"`
	Matrix Matrix  `json:"matrix" yaml:"matrix"`
}
