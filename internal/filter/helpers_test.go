package filter

import "gonum.org/v1/gonum/mat"

// Test helper functions shared across filter tests.

// newGrid creates a rows x cols grid with cell values from fn.
func newGrid(rows, cols int, fn func(i, j int) float64) *mat.Dense {
	g := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.Set(i, j, fn(i, j))
		}
	}
	return g
}

// flatGrid creates a rows x cols grid where every cell equals v.
func flatGrid(rows, cols int, v float64) *mat.Dense {
	return newGrid(rows, cols, func(_, _ int) float64 { return v })
}

// stepGrid creates a grid whose left half is lo and right half is hi.
// The first hi column is cols/2.
func stepGrid(rows, cols int, lo, hi float64) *mat.Dense {
	return newGrid(rows, cols, func(_, j int) float64 {
		if j < cols/2 {
			return lo
		}
		return hi
	})
}
