// Filters perform color manipulation and per-pixel operations
package filters

import (
	"errors"

	"github.com/samber/lo"

	"github.com/anas-shakeel/bmpkit/internal/bmp"
	"github.com/anas-shakeel/bmpkit/internal/utils"
)

// Applies fn to every pixel of b in-place
func apply(b *bmp.BitmapImage, fn func(p bmp.Pixel) bmp.Pixel) {
	for row := range b.Height() {
		pixels := b.Pixels.Row(row)
		for col, p := range pixels {
			pixels[col] = fn(p)
		}
	}
}

// Rounds v to the nearest channel value within [0, 255]
func toChannel(v float64) byte {
	return byte(lo.Clamp(v+0.5, 0, 255))
}

// Inverts (negates) the bitmap image
func Invert(b *bmp.BitmapImage) {
	apply(b, func(p bmp.Pixel) bmp.Pixel {
		return bmp.Pixel{R: 255 - p.R, G: 255 - p.G, B: 255 - p.B}
	})
}

// Converts a bitmap to Black-and-White
func Grayscale(b *bmp.BitmapImage) {
	apply(b, func(p bmp.Pixel) bmp.Pixel {
		return bmp.Gray(byte(utils.Average(int(p.R), int(p.G), int(p.B))))
	})
}

// Converts a bitmap to Black-and-White (with ITU-R 601-2 Luma Transform)
func GrayscaleLuma(b *bmp.BitmapImage) {
	apply(b, func(p bmp.Pixel) bmp.Pixel {
		return bmp.Gray(byte(int(p.R)*299/1000 + int(p.G)*587/1000 + int(p.B)*114/1000))
	})
}

// Adjusts the Brightness of a Bitmap in-place.
//
// method can be "add" (adds value to each channel) or "multiply" (multiplies each channel by value).
// Pixel values are clipped to [0, 255].
func Brightness(b *bmp.BitmapImage, factor float64, method string) error {
	var operation func(x float64) float64

	switch method {
	case "add":
		operation = func(x float64) float64 { return x + factor }
	case "multiply":
		operation = func(x float64) float64 { return x * factor }
	default:
		return errors.New("invalid method: method must be add or multiply")
	}

	apply(b, func(p bmp.Pixel) bmp.Pixel {
		return bmp.Pixel{
			R: toChannel(operation(float64(p.R))),
			G: toChannel(operation(float64(p.G))),
			B: toChannel(operation(float64(p.B))),
		}
	})
	return nil
}

// Adjusts the Contrast of a Bitmap in-place.
// factor > 1.0 increases Contrast, factor < 1.0 decreases it.
func Contrast(b *bmp.BitmapImage, factor float64) {
	totalPixels := b.Width() * b.Height()
	if totalPixels == 0 {
		return
	}

	// Compute mean for each channel
	var sumR, sumG, sumB int
	for row := range b.Height() {
		for _, p := range b.Pixels.Row(row) {
			sumR += int(p.R)
			sumG += int(p.G)
			sumB += int(p.B)
		}
	}
	meanR := float64(sumR) / float64(totalPixels)
	meanG := float64(sumG) / float64(totalPixels)
	meanB := float64(sumB) / float64(totalPixels)

	apply(b, func(p bmp.Pixel) bmp.Pixel {
		return bmp.Pixel{
			R: toChannel(float64(p.R)*factor + (1-factor)*meanR),
			G: toChannel(float64(p.G)*factor + (1-factor)*meanG),
			B: toChannel(float64(p.B)*factor + (1-factor)*meanB),
		}
	})
}
