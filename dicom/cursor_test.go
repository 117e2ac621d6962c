package dicom

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteCursor_ScalarReads(t *testing.T) {
	buf := []byte{0x10, 0x00, 0x20, 0x00, 0x01, 0x00, 0x00, 0x00}
	c := NewByteCursor(buf, binary.LittleEndian)

	u16, err := c.ReadU16(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0010), u16)

	u32, err := c.ReadU32(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), u32)

	i32, err := c.ReadI32(4)
	require.NoError(t, err)
	assert.Equal(t, int32(1), i32)

	hex, err := c.ReadHex(2)
	require.NoError(t, err)
	assert.Equal(t, "0x0020", hex)
}

func TestByteCursor_BigEndian(t *testing.T) {
	buf := []byte{0x00, 0x10}
	c := NewByteCursor(buf, binary.BigEndian)
	u16, err := c.ReadU16(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0010), u16)

	c.SetByteOrder(binary.LittleEndian)
	assert.Equal(t, binary.LittleEndian, c.ByteOrder())
	u16, err = c.ReadU16(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1000), u16)
}

func TestByteCursor_OutOfRangeReturnsTruncatedError(t *testing.T) {
	c := NewByteCursor([]byte{0x01, 0x02}, binary.LittleEndian)
	_, err := c.ReadU32(0)
	assert.True(t, errors.Is(err, ErrTruncatedBuffer))

	_, err = c.ReadU8Array(1, 5)
	assert.True(t, errors.Is(err, ErrTruncatedBuffer))

	_, err = c.ReadU8Array(-1, 1)
	assert.True(t, errors.Is(err, ErrTruncatedBuffer))
}

func TestByteCursor_ReadString(t *testing.T) {
	c := NewByteCursor([]byte("ACME "), binary.LittleEndian)
	s, err := c.ReadString(0, 5)
	require.NoError(t, err)
	assert.Equal(t, "ACME ", s)
}

func TestByteCursor_TypedArrays(t *testing.T) {
	c := NewByteCursor([]byte{0x01, 0x00, 0x02, 0x00}, binary.LittleEndian)

	u16s, err := c.ReadU16Array(0, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2}, u16s)

	i16s, err := c.ReadI16Array(0, 4)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 2}, i16s)

	c32 := NewByteCursor([]byte{0x01, 0x00, 0x00, 0x00}, binary.LittleEndian)
	u32s, err := c32.ReadU32Array(0, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, u32s)

	i32s, err := c32.ReadI32Array(0, 4)
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, i32s)

	f32buf := NewByteCursor([]byte{0x00, 0x00, 0x80, 0x3F}, binary.LittleEndian)
	f32s, err := f32buf.ReadF32Array(0, 4)
	require.NoError(t, err)
	assert.Equal(t, []float32{1.0}, f32s)

	f64buf := NewByteCursor([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F}, binary.LittleEndian)
	f64s, err := f64buf.ReadF64Array(0, 8)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, f64s)
}
