package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anas-shakeel/bmpkit/internal/bmp"
)

// Runs the CLI in a fresh temporary working directory
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestGenerateAndInfo(t *testing.T) {
	workdir(t)

	_, err := run(t, "generate", "gray.bmp", "-m", "10", "-W", "3", "-H", "2")
	require.NoError(t, err)

	b, err := bmp.ReadBitmap("gray.bmp")
	require.NoError(t, err)
	require.Equal(t, 3, b.Width())
	require.Equal(t, 2, b.Height())
	require.Equal(t, 24, b.BitDepth())
	require.Equal(t, bmp.Gray(10), b.Pixels.At(1, 2))

	out, err := run(t, "info", "gray.bmp")
	require.NoError(t, err)
	require.Contains(t, out, "Width: \t\t3 px")
	require.Contains(t, out, "Padding: \t3 bytes")
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	workdir(t)

	_, err := run(t, "generate", "a.bmp", "-W", "2", "-H", "2")
	require.NoError(t, err)

	_, err = run(t, "generate", "a.bmp", "-W", "2", "-H", "2")
	require.ErrorContains(t, err, "already exists")

	_, err = run(t, "generate", "a.bmp", "-W", "4", "-H", "1", "--force")
	require.NoError(t, err)
	b, err := bmp.ReadBitmap("a.bmp")
	require.NoError(t, err)
	require.Equal(t, 4, b.Width())
}

func TestGenerateUsesConfigDefaults(t *testing.T) {
	dir := workdir(t)
	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("defaults:\n  mode: 0\n  width: 5\n  height: 4\n  bitDepth: 32\n"), 0o644))

	_, err := run(t, "--config", cfgPath, "generate", "d.bmp")
	require.NoError(t, err)

	b, err := bmp.ReadBitmap("d.bmp")
	require.NoError(t, err)
	require.Equal(t, 5, b.Width())
	require.Equal(t, 4, b.Height())
	require.Equal(t, 32, b.BitDepth())
	require.Equal(t, bmp.Gray(0), b.Pixels.At(0, 0))
}

func TestGenerateRejects(t *testing.T) {
	workdir(t)

	_, err := run(t, "generate", "x.bmp", "-W", "0")
	var dim *bmp.InvalidDimensionError
	require.ErrorAs(t, err, &dim)

	_, err = run(t, "generate", "x.bmp", "-b", "8")
	var depth *bmp.UnsupportedBitDepthError
	require.ErrorAs(t, err, &depth)

	_, err = run(t, "generate", "x.bmp", "-W", "100000")
	require.ErrorContains(t, err, "exceeds the configured limit")
}

func TestResizeBatch(t *testing.T) {
	dir := workdir(t)

	_, err := run(t, "generate", "a.bmp", "-W", "4", "-H", "2")
	require.NoError(t, err)
	_, err = run(t, "generate", "b.bmp", "-W", "6", "-H", "3", "-b", "32")
	require.NoError(t, err)

	_, err = run(t, "resize", "a.bmp", "b.bmp", "-W", "w*2", "-H", "round(h/2)", "--out-dir", "out")
	require.NoError(t, err)

	a, err := bmp.ReadBitmap(filepath.Join(dir, "out", "a_8x1.bmp"))
	require.NoError(t, err)
	require.Equal(t, 8, a.Width())
	require.Equal(t, 1, a.Height())

	b, err := bmp.ReadBitmap(filepath.Join(dir, "out", "b_12x2.bmp"))
	require.NoError(t, err)
	require.Equal(t, 32, b.BitDepth())
}

func TestResizeSingleOutput(t *testing.T) {
	workdir(t)

	_, err := run(t, "generate", "a.bmp", "-W", "4", "-H", "4")
	require.NoError(t, err)

	_, err = run(t, "resize", "a.bmp", "-W", "3", "-o", "small.bmp")
	require.NoError(t, err)
	b, err := bmp.ReadBitmap("small.bmp")
	require.NoError(t, err)
	require.Equal(t, 3, b.Width())
	require.Equal(t, 4, b.Height())

	_, err = run(t, "resize", "a.bmp", "a.bmp", "-o", "x.bmp")
	require.ErrorContains(t, err, "--output")

	_, err = run(t, "resize", "a.bmp", "-W", "w-10", "-o", "y.bmp")
	require.True(t, errors.Is(err, errNonPositive))

	_, err = run(t, "resize", "missing.bmp")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCropAndFilter(t *testing.T) {
	workdir(t)

	_, err := run(t, "generate", "a.bmp", "-m", "100", "-W", "5", "-H", "5")
	require.NoError(t, err)

	_, err = run(t, "crop", "a.bmp", "c.bmp", "--x", "1", "--y", "2", "-W", "2", "-H", "3")
	require.NoError(t, err)
	c, err := bmp.ReadBitmap("c.bmp")
	require.NoError(t, err)
	require.Equal(t, 2, c.Width())
	require.Equal(t, 3, c.Height())

	_, err = run(t, "filter", "c.bmp", "inv.bmp", "-n", "invert")
	require.NoError(t, err)
	inv, err := bmp.ReadBitmap("inv.bmp")
	require.NoError(t, err)
	require.Equal(t, bmp.Gray(155), inv.Pixels.At(0, 0))

	_, err = run(t, "filter", "c.bmp", "bright.bmp", "-n", "brightness", "--factor", "2", "--method", "multiply")
	require.NoError(t, err)
	bright, err := bmp.ReadBitmap("bright.bmp")
	require.NoError(t, err)
	require.Equal(t, bmp.Gray(200), bright.Pixels.At(2, 1))

	_, err = run(t, "filter", "c.bmp", "z.bmp", "-n", "sepia")
	require.ErrorContains(t, err, "unknown filter")
}

func TestConvertPNG(t *testing.T) {
	workdir(t)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff})
	f, err := os.Create("in.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	_, err = run(t, "convert", "in.png", "out.bmp", "-b", "32")
	require.NoError(t, err)

	b, err := bmp.ReadBitmap("out.bmp")
	require.NoError(t, err)
	require.Equal(t, 32, b.BitDepth())
	require.Equal(t, bmp.Pixel{R: 1, G: 2, B: 3}, b.Pixels.At(0, 1))
	// Transparent pixels are flattened onto white
	require.Equal(t, bmp.Gray(255), b.Pixels.At(1, 1))
}

func TestShow(t *testing.T) {
	workdir(t)

	_, err := run(t, "generate", "a.bmp", "-m", "0", "-W", "80", "-H", "20")
	require.NoError(t, err)

	out, err := run(t, "show", "a.bmp", "--cols", "8")
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSuffix([]byte(out), []byte("\n")), []byte("\n"))
	require.Len(t, lines, 2)
	require.Equal(t, 8, bytes.Count(lines[0], []byte("\033[48;2;0;0;0m")))
}

func TestInvalidLogLevel(t *testing.T) {
	workdir(t)

	_, err := run(t, "--log-level", "chatty", "info", "a.bmp")
	require.ErrorContains(t, err, "invalid log level")
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		expr     string
		w, h     int
		expected int
	}{
		{"w", 9, 4, 9},
		{"w/2", 9, 4, 5},
		{"h*3", 9, 4, 12},
		{"640", 9, 4, 640},
		{"ceil(w/4)", 9, 4, 3},
		{"floor(w/4)", 9, 4, 2},
		{"w + h", 9, 4, 13},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			d, err := parseDimension(tt.expr)
			require.NoError(t, err)
			n, err := d.eval(tt.w, tt.h)
			require.NoError(t, err)
			require.Equal(t, tt.expected, n)
		})
	}
}

func TestParseDimensionErrors(t *testing.T) {
	_, err := parseDimension("x*2")
	require.ErrorContains(t, err, "unknown variable")

	_, err = parseDimension("w*(")
	require.Error(t, err)

	d, err := parseDimension("w/0")
	require.NoError(t, err)
	_, err = d.eval(3, 3)
	require.Error(t, err)

	d, err = parseDimension("w-h")
	require.NoError(t, err)
	_, err = d.eval(3, 3)
	require.ErrorIs(t, err, errNonPositive)

	d, err = parseDimension("w > h")
	require.NoError(t, err)
	_, err = d.eval(3, 3)
	require.ErrorContains(t, err, "not a number")
}
