// Adjusts image dimensions, orientation, or structure.
package adjustments

import (
	"errors"

	"github.com/anas-shakeel/bmpkit/internal/bmp"
)

// Crops a region in the bitmap image (0,0  is at the top-left of the image)
func Crop(b *bmp.BitmapImage, x, y, width, height int) (*bmp.BitmapImage, error) {
	// Validate bounds
	if width <= 0 || height <= 0 {
		return nil, &bmp.InvalidDimensionError{Width: width, Height: height}
	} else if x < 0 || y < 0 {
		return nil, errors.New("invalid bounds: negative origin")
	} else if width+x > b.Width() {
		return nil, errors.New("invalid bounds: width out of bounds")
	} else if height+y > b.Height() {
		return nil, errors.New("invalid bounds: height out of bounds")
	}

	// Copy the old bitmap (everything except pixels)
	dupBitmap := bmp.BitmapImage{
		BFHeader: b.BFHeader,
		BIHeader: b.BIHeader,
		Filename: b.Filename,
		Pixels:   bmp.NewPixelGrid(width, height),
	}

	// Crop the bitmap
	for row := range height {
		copy(dupBitmap.Pixels.Row(row), b.Pixels.Row(row + y)[x:x+width])
	}

	// Update Metadata of dupBitmap
	dupBitmap.UpdateMeta()

	return &dupBitmap, nil
}
