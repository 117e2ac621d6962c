package dicom

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTransferSyntax_ImplicitLittleEndian(t *testing.T) {
	ts, err := ClassifyTransferSyntax("1.2.840.10008.1.2")
	require.NoError(t, err)
	assert.False(t, ts.ExplicitVR)
	assert.Equal(t, binary.LittleEndian, ts.ByteOrder)
	assert.False(t, ts.Compressed)
}

func TestClassifyTransferSyntax_ExplicitBigEndian(t *testing.T) {
	ts, err := ClassifyTransferSyntax("1.2.840.10008.1.2.2")
	require.NoError(t, err)
	assert.True(t, ts.ExplicitVR)
	assert.Equal(t, binary.BigEndian, ts.ByteOrder)
}

func TestClassifyTransferSyntax_JPEGBaselineCompressed(t *testing.T) {
	ts, err := ClassifyTransferSyntax("1.2.840.10008.1.2.4.50")
	require.NoError(t, err)
	assert.True(t, ts.Compressed)
	assert.True(t, ts.ExplicitVR)
}

func TestClassifyTransferSyntax_DeflatedRejected(t *testing.T) {
	_, err := ClassifyTransferSyntax("1.2.840.10008.1.2.1.99")
	assert.True(t, errors.Is(err, ErrUnsupportedTransferSyntax))
}

func TestClassifyTransferSyntax_RLEAndMPEG2Rejected(t *testing.T) {
	_, err := ClassifyTransferSyntax("1.2.840.10008.1.2.5")
	assert.True(t, errors.Is(err, ErrUnsupportedTransferSyntax))

	_, err = ClassifyTransferSyntax("1.2.840.10008.1.2.4.100")
	assert.True(t, errors.Is(err, ErrUnsupportedTransferSyntax))
}

func TestClassifyTransferSyntax_UnlistedJPEGFamilyRejected(t *testing.T) {
	// .4.5x and .4.6x UIDs not explicitly listed as supported are rejected,
	// matching the corrected fallback rule (see the transfer syntax table).
	_, err := ClassifyTransferSyntax("1.2.840.10008.1.2.4.53")
	assert.True(t, errors.Is(err, ErrUnsupportedTransferSyntax))

	_, err = ClassifyTransferSyntax("1.2.840.10008.1.2.4.65")
	assert.True(t, errors.Is(err, ErrUnsupportedTransferSyntax))
}

func TestClassifyTransferSyntax_JPEGLSRejected(t *testing.T) {
	_, err := ClassifyTransferSyntax("1.2.840.10008.1.2.4.80")
	assert.True(t, errors.Is(err, ErrUnsupportedTransferSyntax))
}

func TestClassifyTransferSyntax_UnknownUIDRejected(t *testing.T) {
	_, err := ClassifyTransferSyntax("1.2.3.4.5.6.7.8.9")
	assert.True(t, errors.Is(err, ErrUnsupportedTransferSyntax))
}

func TestClassifyTransferSyntax_TrimsTrailingSpaceAndZWSP(t *testing.T) {
	ts, err := ClassifyTransferSyntax("1.2.840.10008.1.2.1 ")
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.10008.1.2.1", ts.UID)

	ts, err = ClassifyTransferSyntax("1.2.840.10008.1.2.1​")
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.10008.1.2.1", ts.UID)
}

func TestFileMetaTransferSyntax(t *testing.T) {
	ts := FileMetaTransferSyntax()
	assert.True(t, ts.ExplicitVR)
	assert.Equal(t, binary.LittleEndian, ts.ByteOrder)
	assert.Equal(t, "1.2.840.10008.1.2.1", ts.UID)
}
