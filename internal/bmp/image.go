package bmp

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// BitmapImage implements image.Image so it can be handed to the standard
// image encoders and to x/image/draw.
var _ image.Image = (*BitmapImage)(nil)

func (b *BitmapImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (b *BitmapImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width(), b.Height())
}

// At returns the opaque color at (x, y), or transparent black outside the bounds
func (b *BitmapImage) At(x, y int) color.Color {
	if !image.Pt(x, y).In(b.Bounds()) {
		return color.RGBA{}
	}
	p := b.Pixels.At(y, x)
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
}

// FromImage converts any image into a bitmap. Transparent areas are
// flattened onto white since the bitmap has no alpha channel.
func FromImage(src image.Image, bitDepth int) (*BitmapImage, error) {
	bounds := src.Bounds()
	b, err := CreateBitmap(bounds.Dx(), bounds.Dy(), bitDepth)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Over)

	for row := range b.Height() {
		line := canvas.Pix[row*canvas.Stride:]
		dst := b.Pixels.Row(row)
		for col := range dst {
			i := col * 4
			dst[col] = Pixel{R: line[i], G: line[i+1], B: line[i+2]}
		}
	}
	return b, nil
}
