// Package report renders diagnostic plots of intensity and edge grids.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when a grid has no finite values to plot.
var ErrNoData = errors.New("report: no finite values")

// DefaultBins is the number of histogram bins used when Options.Bins is 0.
const DefaultBins = 64

// Options configures a histogram plot. Zero fields take defaults.
type Options struct {
	Title  string
	Bins   int
	Width  vg.Length
	Height vg.Length
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Gradient magnitude"
	}
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	if o.Width <= 0 {
		o.Width = 8 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 4 * vg.Inch
	}
	return o
}

// Values collects the finite cells of grid in row-major order.
func Values(grid *mat.Dense) plotter.Values {
	if grid == nil || grid.IsEmpty() {
		return nil
	}
	rows, cols := grid.Dims()
	vs := make(plotter.Values, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for _, v := range grid.RawRowView(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			vs = append(vs, v)
		}
	}
	return vs
}

// Histogram bins the finite values of grid into the given number of bins.
func Histogram(grid *mat.Dense, bins int) (*plotter.Histogram, error) {
	vs := Values(grid)
	if len(vs) == 0 {
		return nil, ErrNoData
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	h, err := plotter.NewHist(vs, bins)
	if err != nil {
		return nil, fmt.Errorf("report: histogram: %w", err)
	}
	return h, nil
}

// newHistogramPlot builds the plot shared by WriteHistogram and SaveHistogram.
func newHistogramPlot(grid *mat.Dense, opts Options) (*plot.Plot, error) {
	h, err := Histogram(grid, opts.Bins)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "value"
	p.Y.Label.Text = "cells"
	p.Add(h)
	return p, nil
}

// WriteHistogram renders a histogram of grid as PNG to w.
func WriteHistogram(w io.Writer, grid *mat.Dense, opts Options) error {
	opts = opts.withDefaults()

	p, err := newHistogramPlot(grid, opts)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

// SaveHistogram renders a histogram of grid to path. The image format
// follows the file extension (png, svg, pdf, ...).
func SaveHistogram(path string, grid *mat.Dense, opts Options) error {
	opts = opts.withDefaults()

	p, err := newHistogramPlot(grid, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o755); err != nil {
		return fmt.Errorf("report: create directory: %w", err)
	}
	if err := p.Save(opts.Width, opts.Height, filepath.Clean(path)); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}
