package dicom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcmgo/dcmgo/dicom/tag"
	"github.com/dcmgo/dcmgo/dicom/vr"
)

// --- synthetic Part-10 buffer builders, used only by these tests ---

func putTagBytes(buf *bytes.Buffer, order binary.ByteOrder, group, elem uint16) {
	_ = binary.Write(buf, order, group)
	_ = binary.Write(buf, order, elem)
}

// putExplicitShort writes one Explicit-VR element with a 16-bit length field.
func putExplicitShort(buf *bytes.Buffer, order binary.ByteOrder, group, elem uint16, vrCode string, value []byte) {
	putTagBytes(buf, order, group, elem)
	buf.WriteString(vrCode)
	_ = binary.Write(buf, order, uint16(len(value)))
	buf.Write(value)
}

// putExplicitLong writes one Explicit-VR element with a 32-bit length field
// (2 reserved bytes then a uint32 length), as required for the "32-bit VL"
// VR set (OB, OW, OF, SQ, UN, and undefined-length framing).
func putExplicitLong(buf *bytes.Buffer, order binary.ByteOrder, group, elem uint16, vrCode string, length uint32, value []byte) {
	putTagBytes(buf, order, group, elem)
	buf.WriteString(vrCode)
	_ = binary.Write(buf, order, uint16(0)) // reserved
	_ = binary.Write(buf, order, length)
	buf.Write(value)
}

// putImplicit writes one Implicit-VR element: tag, then a 32-bit length,
// then the raw value (VR is resolved from the dictionary by the decoder).
func putImplicit(buf *bytes.Buffer, order binary.ByteOrder, group, elem uint16, value []byte) {
	putTagBytes(buf, order, group, elem)
	_ = binary.Write(buf, order, uint32(len(value)))
	buf.Write(value)
}

func putItemHeader(buf *bytes.Buffer, order binary.ByteOrder, length uint32) {
	putTagBytes(buf, order, tag.ItemGroup, tag.ItemElement)
	_ = binary.Write(buf, order, length)
}

func putItemDelimiter(buf *bytes.Buffer, order binary.ByteOrder) {
	putTagBytes(buf, order, tag.ItemGroup, tag.ItemDelimitationElement)
	_ = binary.Write(buf, order, uint32(0))
}

func putSequenceDelimiter(buf *bytes.Buffer, order binary.ByteOrder) {
	putTagBytes(buf, order, tag.ItemGroup, tag.SequenceDelimitationElement)
	_ = binary.Write(buf, order, uint32(0))
}

const undefinedLength = 0xFFFFFFFF

func preambleAndMagic() []byte {
	buf := make([]byte, preambleSize)
	return append(buf, []byte("DICM")...)
}

// writeFileMeta appends a minimal (0002,0000) group-length element followed
// by the given already-encoded meta elements, computing the group length
// from their combined byte size.
func writeFileMeta(metaBody []byte) []byte {
	var out bytes.Buffer
	out.Write(preambleAndMagic())

	var groupLen bytes.Buffer
	putExplicitShort(&groupLen, binary.LittleEndian, 0x0002, 0x0000, "UL", encodeU32LE(uint32(len(metaBody))))
	out.Write(groupLen.Bytes())
	out.Write(metaBody)
	return out.Bytes()
}

func encodeU32LE(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func transferSyntaxElement(uid string) []byte {
	if len(uid)%2 != 0 {
		uid += " "
	}
	var buf bytes.Buffer
	putExplicitShort(&buf, binary.LittleEndian, 0x0002, 0x0010, "UI", []byte(uid))
	return buf.Bytes()
}

func TestParse_S1_MinimalExplicitLittleEndian(t *testing.T) {
	meta := transferSyntaxElement("1.2.840.10008.1.2.1")
	file := writeFileMeta(meta)

	var ds bytes.Buffer
	putExplicitShort(&ds, binary.LittleEndian, 0x0010, 0x0010, "PN", []byte("DOE^JOHN"))
	file = append(file, ds.Bytes()...)

	parsed, err := Parse(file, ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, parsed.Elements.Len())
	view := NewElementsView(parsed.Elements, testDict())
	got := view.GetByName("PatientName", false)
	assert.Equal(t, "DOE^JOHN", got)
	assert.Nil(t, parsed.PixelBuffer)
}

func TestParse_S2_ImplicitLittleEndianDictionaryResolvedVR(t *testing.T) {
	meta := transferSyntaxElement("1.2.840.10008.1.2")
	file := writeFileMeta(meta)

	var ds bytes.Buffer
	putImplicit(&ds, binary.LittleEndian, 0x0010, 0x0020, []byte("ID0001"))
	file = append(file, ds.Bytes()...)

	parsed, err := Parse(file, ParseOptions{Dictionary: testDict()})
	require.NoError(t, err)

	el, ok := parsed.Elements.Get(tag.New(0x0010, 0x0020).Key())
	require.True(t, ok)
	assert.Equal(t, "LO", el.VR.String())
	assert.Equal(t, "ID0001", el.Value.String())
}

func TestParse_S3_BigEndianUnsignedShort(t *testing.T) {
	meta := transferSyntaxElement("1.2.840.10008.1.2.2")
	file := writeFileMeta(meta)

	var ds bytes.Buffer
	putExplicitShort(&ds, binary.BigEndian, 0x0028, 0x0010, "US", []byte{0x02, 0x00})
	file = append(file, ds.Bytes()...)

	parsed, err := Parse(file, ParseOptions{})
	require.NoError(t, err)

	el, ok := parsed.Elements.Get(tag.New(0x0028, 0x0010).Key())
	require.True(t, ok)
	assert.Equal(t, "512", el.Value.String())
}

func TestParse_S4_NestedSequenceUndefinedLength(t *testing.T) {
	meta := transferSyntaxElement("1.2.840.10008.1.2.1")
	file := writeFileMeta(meta)

	order := binary.LittleEndian
	var inner bytes.Buffer
	putExplicitShort(&inner, order, 0x0008, 0x0100, "SH", []byte("CODE1"))

	var innerItem bytes.Buffer
	putItemHeader(&innerItem, order, undefinedLength)
	innerItem.Write(inner.Bytes())
	putItemDelimiter(&innerItem, order)

	var innerSeq bytes.Buffer
	putExplicitLong(&innerSeq, order, 0x0040, 0xA043, "SQ", undefinedLength, nil)
	innerSeq.Write(innerItem.Bytes())
	putSequenceDelimiter(&innerSeq, order)

	var outerItem bytes.Buffer
	putItemHeader(&outerItem, order, undefinedLength)
	outerItem.Write(innerSeq.Bytes())
	putItemDelimiter(&outerItem, order)

	var outerSeq bytes.Buffer
	putExplicitLong(&outerSeq, order, 0x0040, 0x0275, "SQ", undefinedLength, nil)
	outerSeq.Write(outerItem.Bytes())
	putSequenceDelimiter(&outerSeq, order)

	file = append(file, outerSeq.Bytes()...)

	parsed, err := Parse(file, ParseOptions{})
	require.NoError(t, err)

	outer, ok := parsed.Elements.Get(tag.New(0x0040, 0x0275).Key())
	require.True(t, ok)

	outerItems, ok := outer.Value.(interface{ Len() int })
	require.True(t, ok)
	assert.Equal(t, 1, outerItems.Len())
}

func TestParse_S5_EncapsulatedPixelData(t *testing.T) {
	meta := transferSyntaxElement("1.2.840.10008.1.2.4.50")
	file := writeFileMeta(meta)

	order := binary.LittleEndian
	var pixelSeq bytes.Buffer
	putExplicitLong(&pixelSeq, order, 0x7FE0, 0x0010, "OB", undefinedLength, nil)
	putItemHeader(&pixelSeq, order, 0) // Basic Offset Table, empty
	putItemHeader(&pixelSeq, order, 4)
	pixelSeq.Write([]byte{0xAA, 0xBB, 0xCC, 0xDD})
	putItemHeader(&pixelSeq, order, 2)
	pixelSeq.Write([]byte{0xEE, 0xFF})
	putSequenceDelimiter(&pixelSeq, order)

	file = append(file, pixelSeq.Bytes()...)

	parsed, err := Parse(file, ParseOptions{})
	require.NoError(t, err)

	el, ok := parsed.Elements.Get(tag.New(0x7FE0, 0x0010).Key())
	require.True(t, ok)

	frags, ok := el.Value.(interface{ Len() int })
	require.True(t, ok)
	assert.Equal(t, 3, frags.Len())
	assert.Nil(t, parsed.PixelBuffer)
}

func TestParse_S6_BadMagicRejected(t *testing.T) {
	buf := make([]byte, 132)
	copy(buf[128:], []byte("XXXX"))

	_, err := Parse(buf, ParseOptions{})
	assert.True(t, errors.Is(err, ErrNotDicom))
}

func testDict() *tag.Dictionary {
	return tag.NewDictionary(map[tag.Tag]tag.Info{
		tag.New(0x0010, 0x0010): {VR: vr.PersonName, Keyword: "PatientName", Name: "Patient's Name"},
		tag.New(0x0010, 0x0020): {VR: vr.LongString, Keyword: "PatientID", Name: "Patient ID"},
	})
}
