// Package filter provides grid convolution and gradient-magnitude edge
// detection over dense float64 grids.
//
// Grids are gonum *mat.Dense values of shape (rows, cols). Every operation
// returns a new grid of the same shape as its input and never mutates the
// input or the kernel.
//
// Two convolution modes are available:
//   - DirectConvolution: sliding-window correlation with a 2D kernel.
//     Cells whose window does not lie inside the valid band are left at 0.
//   - FiniteDifference: first differences between neighboring columns
//     or rows, O(rows*cols), selected by the kernel's gradient axis.
//
// Direct convolution splits output rows across a parallel.RowPool when the
// Convolver is given one.
package filter
