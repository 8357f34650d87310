package filter

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Kernel errors.
var (
	// ErrInvalidKernel is returned for empty, non-square or even-sized kernels.
	ErrInvalidKernel = errors.New("filter: invalid kernel")

	// ErrNoAxis is returned when FiniteDifference is asked to run with a
	// kernel that has no gradient axis.
	ErrNoAxis = errors.New("filter: kernel has no gradient axis")
)

// normalizationEpsilon is the smallest kernel coefficient sum used as a
// divisor. Kernels whose coefficients cancel (edge kernels) divide by 1.
const normalizationEpsilon = 1e-6

// Axis is the direction along which a gradient kernel measures change.
type Axis uint8

const (
	// AxisNone marks a kernel that is not a directional gradient.
	AxisNone Axis = iota

	// AxisHorizontal measures change between columns.
	AxisHorizontal

	// AxisVertical measures change between rows.
	AxisVertical
)

// String returns a string representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisNone:
		return "None"
	case AxisHorizontal:
		return "Horizontal"
	case AxisVertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// Kernel is an immutable odd-sized square matrix of filter weights.
// The zero value is an empty kernel that DirectConvolution rejects.
type Kernel struct {
	m    *mat.Dense
	sum  float64
	axis Axis
}

// Sobel gradient kernels.
var (
	// SobelX responds to intensity change across columns.
	SobelX = mustKernel([][]float64{
		{1, 0, -1},
		{2, 0, -2},
		{1, 0, -1},
	}, AxisHorizontal)

	// SobelY responds to intensity change across rows.
	SobelY = mustKernel([][]float64{
		{1, 2, 1},
		{0, 0, 0},
		{-1, -2, -1},
	}, AxisVertical)
)

// NewKernel creates a kernel from row-major weights. The weights are copied.
// rows must describe a non-empty square matrix with an odd side length so
// the kernel has a center cell.
func NewKernel(rows [][]float64, axis Axis) (Kernel, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: size %d must be odd and positive", ErrInvalidKernel, n)
	}

	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Kernel{}, fmt.Errorf("%w: row %d has %d weights, want %d", ErrInvalidKernel, i, len(row), n)
		}
		data = append(data, row...)
	}

	var sum float64
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Kernel{}, fmt.Errorf("%w: non-finite weight %v", ErrInvalidKernel, v)
		}
		sum += v
	}

	return Kernel{m: mat.NewDense(n, n, data), sum: sum, axis: axis}, nil
}

func mustKernel(rows [][]float64, axis Axis) Kernel {
	k, err := NewKernel(rows, axis)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the side length of the kernel, or 0 for the zero Kernel.
func (k Kernel) Size() int {
	if k.m == nil {
		return 0
	}
	n, _ := k.m.Dims()
	return n
}

// At returns the weight at row r, column c.
func (k Kernel) At(r, c int) float64 {
	return k.m.At(r, c)
}

// Sum returns the sum of all weights.
func (k Kernel) Sum() float64 {
	return k.sum
}

// Divisor returns the value convolution results are divided by: the
// weight sum, or 1 when the sum is within 1e-6 of zero.
func (k Kernel) Divisor() float64 {
	if math.Abs(k.sum) < normalizationEpsilon {
		return 1
	}
	return k.sum
}

// Axis returns the gradient axis of the kernel.
func (k Kernel) Axis() Axis {
	return k.axis
}

// KernelCenter returns the center index of a kernel of the given size.
func KernelCenter(kernelSize int) int {
	return kernelSize / 2
}
