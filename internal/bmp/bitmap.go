// bmp package implements a reader and writer for uncompressed 24/32-bit bitmaps
package bmp

import (
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/anas-shakeel/bmpkit/internal/utils"
)

type Pixel struct {
	B, G, R byte
}

// Returns a pixel with all three channels set to level
func Gray(level byte) Pixel {
	return Pixel{B: level, G: level, R: level}
}

// Returns the Pixels in bytes as BGR (Blue, Green, Red)
func (p Pixel) BytesBGR() []byte {
	return []byte{p.B, p.G, p.R}
}

// PixelGrid is a row-major grid of pixels stored in one flat slice.
// Row 0 is the top row of the picture.
type PixelGrid struct {
	width, height int
	pix           []Pixel
}

// Allocates a zeroed (black) grid
func NewPixelGrid(width, height int) PixelGrid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("bmp: negative grid size %dx%d", width, height))
	}
	return PixelGrid{width: width, height: height, pix: make([]Pixel, width*height)}
}

func (g *PixelGrid) Width() int  { return g.width }
func (g *PixelGrid) Height() int { return g.height }

func (g *PixelGrid) index(row, col int) int {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		panic(fmt.Sprintf("bmp: pixel (%d,%d) out of range for %dx%d grid", row, col, g.width, g.height))
	}
	return row*g.width + col
}

// At returns the pixel at row, col. It panics when out of range.
func (g *PixelGrid) At(row, col int) Pixel {
	return g.pix[g.index(row, col)]
}

// Set stores p at row, col. It panics when out of range.
func (g *PixelGrid) Set(row, col int, p Pixel) {
	g.pix[g.index(row, col)] = p
}

// Row returns the pixels of one row. Writes through the slice modify the grid.
func (g *PixelGrid) Row(row int) []Pixel {
	if row < 0 || row >= g.height {
		panic(fmt.Sprintf("bmp: row %d out of range for height %d", row, g.height))
	}
	start := row * g.width
	return g.pix[start : start+g.width : start+g.width]
}

// Fill sets every pixel to p
func (g *PixelGrid) Fill(p Pixel) {
	for i := range g.pix {
		g.pix[i] = p
	}
}

// Clone returns a deep copy of the grid
func (g *PixelGrid) Clone() PixelGrid {
	return PixelGrid{width: g.width, height: g.height, pix: append([]Pixel(nil), g.pix...)}
}

// Equal reports whether both grids have the same size and pixels
func (g *PixelGrid) Equal(o *PixelGrid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

type BitmapImage struct {
	Filename string
	BFHeader BitmapFileHeader
	BIHeader BitmapInfoHeader
	Pixels   PixelGrid
}

func (b *BitmapImage) Width() int    { return b.Pixels.Width() }
func (b *BitmapImage) Height() int   { return b.Pixels.Height() }
func (b *BitmapImage) BitDepth() int { return int(b.BIHeader.BitCount) }

// Total bytes in a row (incl. padding)
func (b *BitmapImage) Stride() int {
	return Stride(b.Width(), b.BitDepth())
}

// Padding bytes at the end of each row
func (b *BitmapImage) Padding() int {
	return Padding(b.Width(), b.BitDepth())
}

// Creates and returns a black bitmap image (24 or 32 bit uncompressed)
func CreateBitmap(width, height, bitDepth int) (*BitmapImage, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	bih := BitmapInfoHeader{
		Size:        InfoHeaderSize,
		Width:       int32(width),
		Height:      int32(height),
		Planes:      1,
		BitCount:    uint16(bitDepth),
		SizeImage:   uint32(Stride(width, bitDepth) * height),
		XPixelsPerM: DefaultPixelsPerMeter,
		YPixelsPerM: DefaultPixelsPerMeter,
	}

	// File header is completed by Encode
	return &BitmapImage{
		BFHeader: BitmapFileHeader{Type: Signature},
		BIHeader: bih,
		Pixels:   NewPixelGrid(width, height),
	}, nil
}

// Generate creates a bitmap filled with one gray level. mode is clamped to [0, 255].
func Generate(mode, width, height, bitDepth int) (*BitmapImage, error) {
	b, err := CreateBitmap(width, height, bitDepth)
	if err != nil {
		return nil, err
	}
	b.Pixels.Fill(Gray(byte(lo.Clamp(mode, 0, 255))))
	return b, nil
}

// Returns a deep copy of the bitmap image
func (b *BitmapImage) Copy() *BitmapImage {
	return &BitmapImage{
		Filename: b.Filename,
		BFHeader: b.BFHeader,
		BIHeader: b.BIHeader,
		Pixels:   b.Pixels.Clone(),
	}
}

// Updates the bitmap metadata (based on pixels)
func (b *BitmapImage) UpdateMeta() {
	b.BFHeader, b.BIHeader = b.layoutHeaders()
}

// Returns the headers describing the pixel grid exactly as Encode lays it out.
// Resolution and palette counts are carried over from the current info header.
func (b *BitmapImage) layoutHeaders() (BitmapFileHeader, BitmapInfoHeader) {
	bih := b.BIHeader
	bih.Size = InfoHeaderSize
	bih.Width = int32(b.Width())
	bih.Height = int32(b.Height())
	bih.Planes = 1
	bih.Compression = 0
	bih.SizeImage = uint32(b.Stride() * b.Height())

	offBits := uint32(FileHeaderSize + InfoHeaderSize)
	bfh := BitmapFileHeader{
		Type:    Signature,
		Size:    offBits + bih.SizeImage,
		OffBits: offBits,
	}
	return bfh, bih
}

// Print the bitmap in terminal. Use for small images only
func (b *BitmapImage) PrintBitmap(w io.Writer) {
	for row := range b.Height() {
		for _, pixel := range b.Pixels.Row(row) {
			fmt.Fprint(w, utils.ColoredBlock("  ", int(pixel.R), int(pixel.G), int(pixel.B)))
		}
		fmt.Fprintln(w)
	}
}

// Print the Metadata bitmap in terminal. (in human-readable format)
func (b *BitmapImage) PrintMetadata(w io.Writer) {
	fmt.Fprintf(w, "Filename: \t%v\n", b.Filename)
	fmt.Fprintf(w, "Filesize: \t%v bytes\n", b.BFHeader.Size)
	fmt.Fprintf(w, "Width: \t\t%v px\n", b.BIHeader.Width)
	fmt.Fprintf(w, "Height: \t%v px\n", b.BIHeader.Height)
	fmt.Fprintf(w, "BitCount: \t%vbits\n", b.BIHeader.BitCount)
	fmt.Fprintf(w, "HeaderSize: \t%v bytes\n", b.BIHeader.Size)
	fmt.Fprintf(w, "PixelOffset: \t%v bytes\n", b.BFHeader.OffBits)
	fmt.Fprintf(w, "ImageSize: \t%v bytes\n", b.BIHeader.SizeImage)
	fmt.Fprintf(w, "PixelCount: \t%v pixels\n", b.Width()*b.Height())
	fmt.Fprintf(w, "Stride: \t%v bytes\n", b.Stride())
	fmt.Fprintf(w, "Padding: \t%v bytes\n", b.Padding())
}
