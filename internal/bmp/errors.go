package bmp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBMP is returned when the buffer does not start with "BM".
	ErrNotBMP = errors.New("bmp: not a bitmap file")

	// ErrUnsupportedCompression is returned for RLE and bitfield encoded bitmaps.
	ErrUnsupportedCompression = errors.New("bmp: only uncompressed bitmaps are supported")

	// ErrInvalidOffset is returned when the pixel data offset points into the headers.
	ErrInvalidOffset = errors.New("bmp: pixel data offset overlaps the headers")
)

// UnsupportedBitDepthError reports a bit depth other than 24 or 32.
type UnsupportedBitDepthError struct {
	BitDepth int
}

func (e *UnsupportedBitDepthError) Error() string {
	return fmt.Sprintf("bmp: unsupported bit depth %d (only 24 and 32 are supported)", e.BitDepth)
}

// InvalidDimensionError reports a non-positive width or height.
type InvalidDimensionError struct {
	Width, Height int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("bmp: invalid dimensions %dx%d", e.Width, e.Height)
}

func checkBitDepth(bitDepth int) error {
	if bitDepth != 24 && bitDepth != 32 {
		return &UnsupportedBitDepthError{BitDepth: bitDepth}
	}
	return nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return &InvalidDimensionError{Width: width, Height: height}
	}
	return nil
}
