package dicom

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ByteCursor is an endian-aware, offset-addressed reader over an immutable
// byte buffer. Unlike a streaming io.Reader, every read takes an explicit
// offset: the decoder needs to reason about absolute positions (to check
// the structural invariants in spec.md §3) far more than it needs to
// "consume" a stream, and the whole buffer is assumed present up front
// (spec.md §1's "no streaming/partial parse").
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.3
type ByteCursor struct {
	buf       []byte
	byteOrder binary.ByteOrder
}

// NewByteCursor wraps buf with the given byte order. The cursor never
// copies or mutates buf; callers must not mutate buf while any value
// derived from this cursor (including zero-copy array views) is in use,
// per spec.md §5.
func NewByteCursor(buf []byte, order binary.ByteOrder) *ByteCursor {
	return &ByteCursor{buf: buf, byteOrder: order}
}

// Len returns the length of the underlying buffer.
func (c *ByteCursor) Len() int { return len(c.buf) }

// SetByteOrder changes the endianness used by subsequent scalar/array
// reads. Parse does not call it: it builds a separate cursor with the
// Transfer-Syntax-selected byte order for the main dataset.
func (c *ByteCursor) SetByteOrder(order binary.ByteOrder) {
	c.byteOrder = order
}

// ByteOrder returns the cursor's current byte order.
func (c *ByteCursor) ByteOrder() binary.ByteOrder { return c.byteOrder }

func (c *ByteCursor) checkRange(offset, n int) error {
	if offset < 0 || n < 0 || offset+n > len(c.buf) {
		return fmt.Errorf("%w: offset %d, length %d, buffer size %d", ErrTruncatedBuffer, offset, n, len(c.buf))
	}
	return nil
}

// ReadU16 reads a uint16 at offset using the cursor's endianness.
func (c *ByteCursor) ReadU16(offset int) (uint16, error) {
	if err := c.checkRange(offset, 2); err != nil {
		return 0, err
	}
	return c.byteOrder.Uint16(c.buf[offset:]), nil
}

// ReadU32 reads a uint32 at offset using the cursor's endianness.
func (c *ByteCursor) ReadU32(offset int) (uint32, error) {
	if err := c.checkRange(offset, 4); err != nil {
		return 0, err
	}
	return c.byteOrder.Uint32(c.buf[offset:]), nil
}

// ReadI32 reads an int32 at offset using the cursor's endianness.
func (c *ByteCursor) ReadI32(offset int) (int32, error) {
	v, err := c.ReadU32(offset)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ReadU8Array reads n raw bytes at offset. Endianness is irrelevant for
// single-byte reads; the returned slice is a view into the underlying
// buffer (the host platform allows aliasing here unconditionally, since no
// byte-swapping is ever needed).
func (c *ByteCursor) ReadU8Array(offset, n int) ([]byte, error) {
	if err := c.checkRange(offset, n); err != nil {
		return nil, err
	}
	return c.buf[offset : offset+n], nil
}

// ReadHex reads a uint16 at offset and formats it as "0xGGGG", uppercase,
// zero-padded to 4 hex digits.
func (c *ByteCursor) ReadHex(offset int) (string, error) {
	v, err := c.ReadU16(offset)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0x%04X", v), nil
}

// ReadString decodes n bytes at offset as Latin-1 (one byte -> one code
// unit). This is an acknowledged gap versus DICOM SpecificCharacterSet
// (0008,0005), which may mandate ISO 2022 or UTF-8 decoding of string
// values; see spec.md §9's Open Questions. Latin-1 is a safe superset
// decode for the ASCII-range VRs this parser cares about structurally (UI,
// date/time, numeric-as-string).
func (c *ByteCursor) ReadString(offset, n int) (string, error) {
	raw, err := c.ReadU8Array(offset, n)
	if err != nil {
		return "", err
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

// ReadU16Array reads byteLength/2 uint16 values starting at offset.
//
// spec.md §4.1 permits a zero-copy view when offset is aligned to the
// element width and the cursor's endianness matches the host's native
// endianness, materializing a fresh array otherwise. Go has no safe way to
// reinterpret a []byte as a []uint16 without the unsafe package, and
// neither the teacher repo nor any example in the corpus reaches for
// unsafe to do this; this port always materializes, which is correct in
// all cases (the zero-copy path is a pure optimization, per spec.md §9:
// "Either is acceptable if documented").
func (c *ByteCursor) ReadU16Array(offset, byteLength int) ([]uint16, error) {
	raw, err := c.ReadU8Array(offset, byteLength)
	if err != nil {
		return nil, err
	}
	n := byteLength / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = c.byteOrder.Uint16(raw[i*2:])
	}
	return out, nil
}

// ReadI16Array reads byteLength/2 int16 values starting at offset.
func (c *ByteCursor) ReadI16Array(offset, byteLength int) ([]int16, error) {
	raw, err := c.ReadU8Array(offset, byteLength)
	if err != nil {
		return nil, err
	}
	n := byteLength / 2
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		out[i] = int16(c.byteOrder.Uint16(raw[i*2:]))
	}
	return out, nil
}

// ReadU32Array reads byteLength/4 uint32 values starting at offset.
func (c *ByteCursor) ReadU32Array(offset, byteLength int) ([]uint32, error) {
	raw, err := c.ReadU8Array(offset, byteLength)
	if err != nil {
		return nil, err
	}
	n := byteLength / 4
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = c.byteOrder.Uint32(raw[i*4:])
	}
	return out, nil
}

// ReadI32Array reads byteLength/4 int32 values starting at offset.
func (c *ByteCursor) ReadI32Array(offset, byteLength int) ([]int32, error) {
	raw, err := c.ReadU8Array(offset, byteLength)
	if err != nil {
		return nil, err
	}
	n := byteLength / 4
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(c.byteOrder.Uint32(raw[i*4:]))
	}
	return out, nil
}

// ReadF32Array reads byteLength/4 float32 values starting at offset.
func (c *ByteCursor) ReadF32Array(offset, byteLength int) ([]float32, error) {
	raw, err := c.ReadU8Array(offset, byteLength)
	if err != nil {
		return nil, err
	}
	n := byteLength / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(c.byteOrder.Uint32(raw[i*4:]))
	}
	return out, nil
}

// ReadF64Array reads byteLength/8 float64 values starting at offset.
func (c *ByteCursor) ReadF64Array(offset, byteLength int) ([]float64, error) {
	raw, err := c.ReadU8Array(offset, byteLength)
	if err != nil {
		return nil, err
	}
	n := byteLength / 8
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(c.byteOrder.Uint64(raw[i*8:]))
	}
	return out, nil
}
