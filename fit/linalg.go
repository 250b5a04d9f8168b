package fit

import (
	"errors"
	"math"
)

var errSingular = errors.New("singular matrix")

// solveLinear solves the square system a*x = b by Gaussian elimination with
// partial pivoting. The inputs are copied; a and b are not modified.
func solveLinear(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)

	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if m[pivot][col] == 0 {
			return nil, errSingular
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := col + 1; row < n; row++ {
			factor := m[row][col] / m[col][col]
			if factor == 0 {
				continue
			}
			for k := col; k <= n; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := m[row][n]
		for k := row + 1; k < n; k++ {
			sum -= m[row][k] * x[k]
		}
		x[row] = sum / m[row][row]
	}

	return x, nil
}

// invert returns the inverse of a square matrix, computed column by column
// against the identity.
func invert(a [][]float64) ([][]float64, error) {
	n := len(a)

	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = make([]float64, n)
	}

	e := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1

		x, err := solveLinear(a, e)
		if err != nil {
			return nil, err
		}
		for row := 0; row < n; row++ {
			inv[row][col] = x[row]
		}
	}

	return inv, nil
}
