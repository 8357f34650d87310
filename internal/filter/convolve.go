package filter

import (
	"fmt"

	"github.com/gogpu/edgeview/internal/image"
	"github.com/gogpu/edgeview/internal/parallel"
	"gonum.org/v1/gonum/mat"
)

// Mode selects the algorithm Convolve uses.
type Mode uint8

const (
	// DirectConvolution slides the kernel over the grid. O(rows*cols*k²).
	DirectConvolution Mode = iota

	// FiniteDifference takes first differences along the kernel's axis
	// and ignores the kernel weights. O(rows*cols).
	FiniteDifference
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case DirectConvolution:
		return "DirectConvolution"
	case FiniteDifference:
		return "FiniteDifference"
	default:
		return "Unknown"
	}
}

// ModeFor maps the useConvolution switch onto a Mode.
func ModeFor(useConvolution bool) Mode {
	if useConvolution {
		return DirectConvolution
	}
	return FiniteDifference
}

// Convolver runs convolutions, optionally splitting rows over a pool.
// The zero value and a nil *Convolver run everything on the calling goroutine.
type Convolver struct {
	pool *parallel.RowPool
}

// NewConvolver creates a Convolver that dispatches row bands to pool.
// pool may be nil.
func NewConvolver(pool *parallel.RowPool) *Convolver {
	return &Convolver{pool: pool}
}

// Convolve applies k to src with a sequential Convolver.
func Convolve(src *mat.Dense, k Kernel, mode Mode) (*mat.Dense, error) {
	var c *Convolver
	return c.Convolve(src, k, mode)
}

// Convolve applies k to src and returns a new grid with the same shape.
//
// DirectConvolution computes, for every cell (i, j) with i in [n, rows-n)
// and j in [n, cols-n) where n is the kernel size, the sum of the kernel
// weights times the window centered on (i, j), divided by k.Divisor().
// Every other cell is 0. The kernel is not flipped.
//
// FiniteDifference computes src(i, j+1) - src(i, j) for a horizontal kernel
// or src(i+1, j) - src(i, j) for a vertical one. The last column (or row)
// has no successor and is 0.
func (c *Convolver) Convolve(src *mat.Dense, k Kernel, mode Mode) (*mat.Dense, error) {
	if src == nil || src.IsEmpty() {
		return nil, fmt.Errorf("filter: convolve: %w", image.ErrEmptyGrid)
	}

	switch mode {
	case DirectConvolution:
		if k.Size() == 0 {
			return nil, fmt.Errorf("%w: empty kernel", ErrInvalidKernel)
		}
		return c.direct(src, k), nil
	case FiniteDifference:
		return finiteDifference(src, k.Axis())
	default:
		return nil, fmt.Errorf("filter: unknown convolution mode %d", mode)
	}
}

func (c *Convolver) rowPool() *parallel.RowPool {
	if c == nil {
		return nil
	}
	return c.pool
}

// direct performs the sliding-window correlation.
func (c *Convolver) direct(src *mat.Dense, k Kernel) *mat.Dense {
	rows, cols := src.Dims()
	out := mat.NewDense(rows, cols, nil)

	n := k.Size()
	half := KernelCenter(n)
	divisor := k.Divisor()

	rowStart, rowEnd := n, rows-n
	colStart, colEnd := n, cols-n
	if rowStart >= rowEnd || colStart >= colEnd {
		return out
	}

	weights := make([][]float64, n)
	for u := range weights {
		weights[u] = k.m.RawRowView(u)
	}

	// Each band writes only its own output rows.
	c.rowPool().Rows(rowEnd-rowStart, func(start, end int) {
		for i := rowStart + start; i < rowStart+end; i++ {
			dst := out.RawRowView(i)
			for j := colStart; j < colEnd; j++ {
				var sum float64
				for u, w := range weights {
					window := src.RawRowView(i - half + u)[j-half : j-half+n]
					for v, wv := range w {
						sum += wv * window[v]
					}
				}
				dst[j] = sum / divisor
			}
		}
	})

	return out
}

// finiteDifference takes forward differences along axis, zero-padding the
// trailing column or row.
func finiteDifference(src *mat.Dense, axis Axis) (*mat.Dense, error) {
	rows, cols := src.Dims()
	out := mat.NewDense(rows, cols, nil)

	switch axis {
	case AxisHorizontal:
		for i := 0; i < rows; i++ {
			in := src.RawRowView(i)
			dst := out.RawRowView(i)
			for j := 0; j < cols-1; j++ {
				dst[j] = in[j+1] - in[j]
			}
		}
	case AxisVertical:
		for i := 0; i < rows-1; i++ {
			in := src.RawRowView(i)
			next := src.RawRowView(i + 1)
			dst := out.RawRowView(i)
			for j := range dst {
				dst[j] = next[j] - in[j]
			}
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrNoAxis, axis)
	}

	return out, nil
}
