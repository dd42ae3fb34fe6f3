package bmp

import (
	"errors"
	"fmt"
	"os"

	"github.com/anas-shakeel/bmpkit/internal/binio"
	"github.com/anas-shakeel/bmpkit/internal/logging"
)

// ValidateSignature fails with ErrNotBMP unless data starts with "BM".
func ValidateSignature(data []byte) error {
	if len(data) < 2 || data[0] != Signature[0] || data[1] != Signature[1] {
		return ErrNotBMP
	}
	return nil
}

// Decode parses an uncompressed 24 or 32-bit bitmap.
//
// Rows are stored bottom-up on disk and returned top-down. When the buffer
// ends before the declared height, the rows that are missing are dropped and
// the headers are updated to describe only the rows actually decoded.
func Decode(data []byte) (*BitmapImage, error) {
	if err := ValidateSignature(data); err != nil {
		return nil, err
	}

	r := binio.NewReader(data)

	// Read File Header
	bfh, err := readFileHeader(r)
	if err != nil {
		return nil, fmt.Errorf("bmp: reading file header: %w", err)
	}

	// Read Info Header
	bih, err := readInfoHeader(r)
	if err != nil {
		return nil, fmt.Errorf("bmp: reading info header: %w", err)
	}

	bitCount := int(bih.BitCount)
	if err := checkBitDepth(bitCount); err != nil {
		return nil, err
	}
	if bih.Compression != 0 {
		return nil, ErrUnsupportedCompression
	}

	width := int(bih.Width)
	height := int(bih.Height)
	if height < 0 {
		// Rows are always read bottom-up, only the magnitude is kept
		height = -height
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	bpp := bytesPerPixel(bitCount)
	stride := Stride(width, bitCount) // Total bytes in a row (incl. padding)
	rowLen := width * bpp             // Bytes in a row (excl. padding)
	offset := int(bfh.OffBits)
	if offset < FileHeaderSize+int(bih.Size) {
		return nil, ErrInvalidOffset
	}

	// Collect the stored rows (bottom row first) until the data runs out
	rows := make([][]byte, 0, min(height, (len(data)/stride)+1))
	for s := range height {
		row, err := r.Bytes(offset+s*stride, rowLen)
		if err != nil {
			var truncated *binio.TruncatedInputError
			if errors.As(err, &truncated) {
				logging.Debug("bmp: pixel data ends after %d of %d rows, dropping the rest", s, height)
				break
			}
			return nil, err
		}
		rows = append(rows, row)
	}

	decoded := len(rows)
	pixels := NewPixelGrid(width, decoded)
	for s, row := range rows {
		dst := pixels.Row(decoded - s - 1)
		for col := range dst {
			i := col * bpp
			dst[col] = Pixel{B: row[i], G: row[i+1], R: row[i+2]}
		}
	}

	// Describe what was actually decoded
	bih.Height = int32(decoded)
	bih.SizeImage = uint32(stride * decoded)
	bfh.Size = bfh.OffBits + bih.SizeImage

	return &BitmapImage{
		BFHeader: bfh,
		BIHeader: bih,
		Pixels:   pixels,
	}, nil
}

// Encode serializes the bitmap: file header, 40-byte info header, rows
// bottom-up in BGR(0) order padded to 4 bytes, then a 2-byte zero trailer.
// Headers that do not match the pixel grid are recomputed; b is not modified.
func Encode(b *BitmapImage) ([]byte, error) {
	bitCount := b.BitDepth()
	if err := checkBitDepth(bitCount); err != nil {
		return nil, err
	}

	bfh, bih := b.BFHeader, b.BIHeader
	if !b.headersConsistent() {
		logging.Debug("bmp: recomputing headers for %dx%d image", b.Width(), b.Height())
		bfh, bih = b.layoutHeaders()
	}

	width, height := b.Width(), b.Height()
	bpp := bytesPerPixel(bitCount)
	stride := Stride(width, bitCount)
	offset := int(bfh.OffBits)
	total := offset + int(bih.SizeImage) + TrailerSize

	// Size on disk includes the trailer
	bfh.Size = uint32(total)

	w := binio.NewWriter(total)
	if err := writeHeaders(w, bfh, bih); err != nil {
		return nil, err
	}

	// Write the pixels (BottomUp: last row first). Padding and the
	// unused fourth byte of 32-bit pixels stay zero.
	line := make([]byte, stride)
	for row := range height {
		for col, p := range b.Pixels.Row(height - row - 1) {
			i := col * bpp
			line[i], line[i+1], line[i+2] = p.B, p.G, p.R
		}
		if err := w.PutBytes(offset+row*stride, line); err != nil {
			return nil, err
		}
	}

	return w.Bytes(), nil
}

// Reports whether the stored headers already describe the pixel grid exactly
func (b *BitmapImage) headersConsistent() bool {
	bfh, bih := b.layoutHeaders()
	return b.BFHeader == bfh && b.BIHeader == bih
}

// Reads a Bitmap file
func ReadBitmap(filename string) (*BitmapImage, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	b, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	b.Filename = filename
	return b, nil
}

// Saves the bitmap image onto local disk, replacing any existing file
func (b *BitmapImage) Save(filename string) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
