package adjustments

import (
	"github.com/anas-shakeel/bmpkit/internal/bmp"
)

// AxisMap returns, for each of the dst positions along one axis, the source
// index it samples (nearest-neighbour stepping, no blending).
//
// The source position advances by src/dst per destination step. The
// fractional part is kept in an integer accumulator counted in 1/dst units,
// so the steps are exact:
//   - src == dst: the index advances by exactly 1 every step
//   - src < dst:  the index advances by 0 or 1, repeating samples
//   - src > dst:  the index advances by 1 plus the whole skips accumulated
//
// The sequence starts at 0, never decreases and never exceeds src-1.
func AxisMap(src, dst int) []int {
	if src <= 0 || dst <= 0 {
		return nil
	}

	indices := make([]int, dst)
	index, acc := 0, 0
	for d := range indices {
		indices[d] = min(index, src-1) // Edge clamp
		acc += src
		index += acc / dst
		acc %= dst
	}
	return indices
}

// Resize returns a new bitmap of exactly width x height sampled from b.
// The source is left untouched and shares no pixels with the result.
func Resize(b *bmp.BitmapImage, width, height int) (*bmp.BitmapImage, error) {
	if width <= 0 || height <= 0 {
		return nil, &bmp.InvalidDimensionError{Width: width, Height: height}
	}
	if b.Width() <= 0 || b.Height() <= 0 {
		return nil, &bmp.InvalidDimensionError{Width: b.Width(), Height: b.Height()}
	}

	resized, err := bmp.CreateBitmap(width, height, b.BitDepth())
	if err != nil {
		return nil, err
	}
	resized.BIHeader.XPixelsPerM = b.BIHeader.XPixelsPerM
	resized.BIHeader.YPixelsPerM = b.BIHeader.YPixelsPerM

	rows := AxisMap(b.Height(), height)
	cols := AxisMap(b.Width(), width)

	for row, srcRow := range rows {
		src := b.Pixels.Row(srcRow)
		dst := resized.Pixels.Row(row)
		for col, srcCol := range cols {
			dst[col] = src[srcCol]
		}
	}

	resized.UpdateMeta()
	return resized, nil
}
