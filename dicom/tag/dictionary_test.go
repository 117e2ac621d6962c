package tag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcmgo/dcmgo/dicom/tag"
	"github.com/dcmgo/dcmgo/dicom/vr"
)

func TestDefault_IsSharedAndPopulated(t *testing.T) {
	d1 := tag.Default()
	d2 := tag.Default()
	assert.Same(t, d1, d2, "Default should return the same process-lifetime instance")

	info, ok := d1.Find(tag.New(0x0010, 0x0010))
	require.True(t, ok)
	assert.Equal(t, "PatientName", info.Keyword)
	assert.Equal(t, vr.PersonName, info.VR)
}

func TestDefault_PixelDataIsAmbiguousOBOrOW(t *testing.T) {
	info, ok := tag.Default().Find(tag.New(0x7FE0, 0x0010))
	require.True(t, ok)
	assert.Equal(t, vr.OtherByteOrWord, info.VR)
}
