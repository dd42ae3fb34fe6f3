// Package binio reads and writes fixed-offset little-endian integers in a byte buffer.
package binio

import (
	"encoding/binary"
	"fmt"
)

// TruncatedInputError reports an access past the end of the buffer.
type TruncatedInputError struct {
	Offset int // First byte requested
	Size   int // Number of bytes requested
	Len    int // Length of the buffer
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input: need %d bytes at offset %d, buffer has %d", e.Size, e.Offset, e.Len)
}

func checkRange(buf []byte, off, size int) error {
	if off < 0 || size < 0 || off > len(buf) || size > len(buf)-off {
		return &TruncatedInputError{Offset: off, Size: size, Len: len(buf)}
	}
	return nil
}

// Reader decodes fields from a read-only buffer.
type Reader struct {
	buf []byte
}

func NewReader(buf []byte) Reader {
	return Reader{buf: buf}
}

// Len returns the length of the underlying buffer
func (r Reader) Len() int {
	return len(r.buf)
}

// Uint reads an unsigned integer of 1, 2 or 4 bytes at off.
func (r Reader) Uint(off, size int) (uint32, error) {
	switch size {
	case 1:
		v, err := r.Uint8(off)
		return uint32(v), err
	case 2:
		v, err := r.Uint16(off)
		return uint32(v), err
	case 4:
		return r.Uint32(off)
	}
	return 0, fmt.Errorf("binio: unsupported integer size %d", size)
}

func (r Reader) Uint8(off int) (uint8, error) {
	if err := checkRange(r.buf, off, 1); err != nil {
		return 0, err
	}
	return r.buf[off], nil
}

func (r Reader) Uint16(off int) (uint16, error) {
	if err := checkRange(r.buf, off, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[off:]), nil
}

func (r Reader) Uint32(off int) (uint32, error) {
	if err := checkRange(r.buf, off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[off:]), nil
}

func (r Reader) Int32(off int) (int32, error) {
	v, err := r.Uint32(off)
	return int32(v), err
}

// Bytes returns a view of n bytes starting at off. The slice aliases the buffer.
func (r Reader) Bytes(off, n int) ([]byte, error) {
	if err := checkRange(r.buf, off, n); err != nil {
		return nil, err
	}
	return r.buf[off : off+n : off+n], nil
}

// Writer encodes fields into a fixed-size buffer.
type Writer struct {
	buf []byte
}

// NewWriter allocates a zeroed buffer of size bytes
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, size)}
}

// Bytes returns the assembled buffer
func (w *Writer) Bytes() []byte {
	return w.buf
}

// PutUint writes v as an unsigned integer of 1, 2 or 4 bytes at off.
func (w *Writer) PutUint(off, size int, v uint32) error {
	switch size {
	case 1:
		return w.PutUint8(off, uint8(v))
	case 2:
		return w.PutUint16(off, uint16(v))
	case 4:
		return w.PutUint32(off, v)
	}
	return fmt.Errorf("binio: unsupported integer size %d", size)
}

func (w *Writer) PutUint8(off int, v uint8) error {
	if err := checkRange(w.buf, off, 1); err != nil {
		return err
	}
	w.buf[off] = v
	return nil
}

func (w *Writer) PutUint16(off int, v uint16) error {
	if err := checkRange(w.buf, off, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(w.buf[off:], v)
	return nil
}

func (w *Writer) PutUint32(off int, v uint32) error {
	if err := checkRange(w.buf, off, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[off:], v)
	return nil
}

func (w *Writer) PutInt32(off int, v int32) error {
	return w.PutUint32(off, uint32(v))
}

// PutBytes copies p into the buffer at off.
func (w *Writer) PutBytes(off int, p []byte) error {
	if err := checkRange(w.buf, off, len(p)); err != nil {
		return err
	}
	copy(w.buf[off:], p)
	return nil
}
