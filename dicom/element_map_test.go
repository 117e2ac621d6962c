package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcmgo/dcmgo/dicom/element"
	"github.com/dcmgo/dcmgo/dicom/tag"
	"github.com/dcmgo/dcmgo/dicom/value"
	"github.com/dcmgo/dcmgo/dicom/vr"
)

func TestElementMap_InsertionOrderPreserved(t *testing.T) {
	m := NewElementMap()
	a := element.New(tag.New(0x0010, 0x0010), vr.PersonName, element.Defined(0), nil, 0)
	b := element.New(tag.New(0x0008, 0x0020), vr.Date, element.Defined(0), nil, 0)

	m.Add(a)
	m.Add(b)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"x00100010", "x00080020"}, m.Keys())
	assert.Equal(t, []*element.Element{a, b}, m.Elements())
}

func TestElementMap_DuplicateAddOverwritesInPlace(t *testing.T) {
	m := NewElementMap()
	first := element.New(tag.New(0x0010, 0x0010), vr.PersonName, element.Defined(8), value.NewStrings(vr.PersonName, []string{"DOE^JOHN"}), 0)
	other := element.New(tag.New(0x0008, 0x0020), vr.Date, element.Defined(0), nil, 0)
	replacement := element.New(tag.New(0x0010, 0x0010), vr.PersonName, element.Defined(8), value.NewStrings(vr.PersonName, []string{"SMITH^JANE"}), 0)

	m.Add(first)
	m.Add(other)
	m.Add(replacement)

	require.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"x00100010", "x00080020"}, m.Keys(), "duplicate key keeps its original position")

	got, ok := m.Get("x00100010")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, "SMITH^JANE", got.Value.String())
}

func TestElementMap_GetMiss(t *testing.T) {
	m := NewElementMap()
	_, ok := m.Get("x00100010")
	assert.False(t, ok)
}
