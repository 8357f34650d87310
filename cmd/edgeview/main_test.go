package main

import (
	"bytes"
	"errors"
	"flag"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/edgeview"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, dir string) string {
	t.Helper()

	const w, h = 16, 16
	pix := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			i := (y*w + x) * 3
			pix[i], pix[i+1], pix[i+2] = 200, 180, 160
		}
	}
	buf, err := edgeview.NewRawBuffer(pix, w, h)
	require.NoError(t, err)

	path := filepath.Join(dir, "in.png")
	require.NoError(t, buf.SavePNG(path))
	return path
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"-in", "a.jpg", "-fast", "-workers", "4", "-weights", "rec709"}, io.Discard)
	require.NoError(t, err)
	require.Equal(t, "a.jpg", cfg.in)
	require.Equal(t, "edges.png", cfg.out)
	require.True(t, cfg.fast)
	require.Equal(t, 4, cfg.workers)
	require.Equal(t, "rec709", cfg.weights)
}

func TestParseFlagsMissingInput(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags(nil, &out)
	require.Error(t, err)
	require.Contains(t, out.String(), "-in")

	_, err = parseFlags([]string{"-h"}, io.Discard)
	require.True(t, errors.Is(err, flag.ErrHelp))
}

func TestLumaWeights(t *testing.T) {
	w, err := lumaWeights("rec709")
	require.NoError(t, err)
	require.Equal(t, edgeview.Rec709Weights, w)

	w, err = lumaWeights("legacy")
	require.NoError(t, err)
	require.Equal(t, edgeview.LegacyWeights, w)

	_, err = lumaWeights("srgb")
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		in:      writeTestImage(t, dir),
		out:     filepath.Join(dir, "edges.png"),
		raw:     filepath.Join(dir, "raw.png"),
		hist:    filepath.Join(dir, "hist.png"),
		bins:    16,
		weights: "legacy",
		workers: 2,
		verbose: true,
	}

	var logs bytes.Buffer
	require.NoError(t, run(cfg, io.Discard, &logs))

	for _, path := range []string{cfg.out, cfg.raw, cfg.hist} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		require.NotZero(t, info.Size(), path)
	}

	edges, err := edgeview.Load(cfg.out)
	require.NoError(t, err)
	require.Equal(t, 16, edges.Width)

	require.True(t, strings.Contains(logs.String(), "edge map computed"))
	require.True(t, strings.Contains(logs.String(), "histogram saved"))
}

func TestRunDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		in:      filepath.Join(dir, "missing.png"),
		out:     filepath.Join(dir, "edges.png"),
		weights: "legacy",
		workers: 1,
	}

	err := run(cfg, io.Discard, io.Discard)
	require.ErrorIs(t, err, edgeview.ErrDecodeFailure)

	_, statErr := os.Stat(cfg.out)
	require.True(t, os.IsNotExist(statErr), "no output on failure")
}

func TestRunUnknownWeights(t *testing.T) {
	err := run(config{in: "x.png", weights: "cmyk"}, io.Discard, io.Discard)
	require.Error(t, err)
}

func TestRunHistogramToStdout(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		in:      writeTestImage(t, dir),
		out:     filepath.Join(dir, "edges.png"),
		hist:    "-",
		bins:    8,
		weights: "rec709",
		workers: 1,
	}

	var stdout bytes.Buffer
	require.NoError(t, run(cfg, &stdout, io.Discard))

	_, err := png.DecodeConfig(bytes.NewReader(stdout.Bytes()))
	require.NoError(t, err, "stdout should hold a PNG histogram")

	_, err = os.Stat("-")
	require.True(t, os.IsNotExist(err), "no file named - may be created")
}
