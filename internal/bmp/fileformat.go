// BMP-specific structs, field offsets and size helpers
package bmp

import (
	"github.com/anas-shakeel/bmpkit/internal/binio"
)

const (
	FileHeaderSize = 14 // Size of BitmapFileHeader on disk
	InfoHeaderSize = 40 // Size of BitmapInfoHeader (BITMAPINFOHEADER) on disk
	TrailerSize    = 2  // Zero bytes appended after the pixel array

	// Horizontal/vertical resolution written by the encoder (72 DPI)
	DefaultPixelsPerMeter = 2834
)

// Field offsets from the start of the file
const (
	offType            = 0x00
	offFileSize        = 0x02
	offReserved        = 0x06
	offOffBits         = 0x0A
	offInfoSize        = 0x0E
	offWidth           = 0x12
	offHeight          = 0x16
	offPlanes          = 0x1A
	offBitCount        = 0x1C
	offCompression     = 0x1E
	offSizeImage       = 0x22
	offXPixelsPerM     = 0x26
	offYPixelsPerM     = 0x2A
	offColorsUsed      = 0x2E
	offColorsImportant = 0x32
)

// Signature is the BMP magic, ASCII "BM"
var Signature = [2]byte{0x42, 0x4d}

// The BitmapFileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type BitmapFileHeader struct {
	Type    [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size    uint32  // The size, in bytes, of the bitmap file.
	OffBits uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The BitmapInfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].
type BitmapInfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels (always stored as a magnitude)
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel (24 or 32).
	Compression     uint32 // The type of compression (0 = BI_RGB)
	SizeImage       uint32 // The size of the pixel array, row padding included.
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// Returns the number of bytes each pixel occupies on disk
func bytesPerPixel(bitCount int) int {
	return bitCount / 8
}

// Stride returns the on-disk byte length of one row, padded to a 4-byte boundary.
func Stride(width, bitCount int) int {
	return ((width*bytesPerPixel(bitCount) + 3) / 4) * 4
}

// Padding returns the number of zero bytes appended to each row.
func Padding(width, bitCount int) int {
	return Stride(width, bitCount) - width*bytesPerPixel(bitCount)
}

// Reads the file header. Only the signature is validated here.
func readFileHeader(r binio.Reader) (BitmapFileHeader, error) {
	var h BitmapFileHeader
	var err error

	h.Type = Signature
	if h.Size, err = r.Uint32(offFileSize); err != nil {
		return h, err
	}
	if h.OffBits, err = r.Uint32(offOffBits); err != nil {
		return h, err
	}
	return h, nil
}

// Reads the info header. Fields past bit count are optional and stay 0 when
// the header is the minimal variant or the buffer ends early.
func readInfoHeader(r binio.Reader) (BitmapInfoHeader, error) {
	var h BitmapInfoHeader
	var err error

	if h.Size, err = r.Uint32(offInfoSize); err != nil {
		return h, err
	}
	if h.Width, err = r.Int32(offWidth); err != nil {
		return h, err
	}
	if h.Height, err = r.Int32(offHeight); err != nil {
		return h, err
	}
	if h.Planes, err = r.Uint16(offPlanes); err != nil {
		return h, err
	}
	if h.BitCount, err = r.Uint16(offBitCount); err != nil {
		return h, err
	}

	if h.Size < InfoHeaderSize || r.Len() < FileHeaderSize+InfoHeaderSize {
		return h, nil
	}

	// Extended fields (full BITMAPINFOHEADER)
	h.Compression, _ = r.Uint32(offCompression)
	h.SizeImage, _ = r.Uint32(offSizeImage)
	h.XPixelsPerM, _ = r.Int32(offXPixelsPerM)
	h.YPixelsPerM, _ = r.Int32(offYPixelsPerM)
	h.ColorsUsed, _ = r.Uint32(offColorsUsed)
	h.ColorsImportant, _ = r.Uint32(offColorsImportant)
	return h, nil
}

// Writes both headers at the start of w
func writeHeaders(w *binio.Writer, fh BitmapFileHeader, ih BitmapInfoHeader) error {
	fields := []func() error{
		func() error { return w.PutBytes(offType, fh.Type[:]) },
		func() error { return w.PutUint32(offFileSize, fh.Size) },
		func() error { return w.PutUint32(offReserved, 0) },
		func() error { return w.PutUint32(offOffBits, fh.OffBits) },
		func() error { return w.PutUint32(offInfoSize, ih.Size) },
		func() error { return w.PutInt32(offWidth, ih.Width) },
		func() error { return w.PutInt32(offHeight, ih.Height) },
		func() error { return w.PutUint16(offPlanes, ih.Planes) },
		func() error { return w.PutUint16(offBitCount, ih.BitCount) },
		func() error { return w.PutUint32(offCompression, ih.Compression) },
		func() error { return w.PutUint32(offSizeImage, ih.SizeImage) },
		func() error { return w.PutInt32(offXPixelsPerM, ih.XPixelsPerM) },
		func() error { return w.PutInt32(offYPixelsPerM, ih.YPixelsPerM) },
		func() error { return w.PutUint32(offColorsUsed, ih.ColorsUsed) },
		func() error { return w.PutUint32(offColorsImportant, ih.ColorsImportant) },
	}
	for _, put := range fields {
		if err := put(); err != nil {
			return err
		}
	}
	return nil
}
