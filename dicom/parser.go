package dicom

import (
	"encoding/binary"
	"fmt"

	"github.com/dcmgo/dcmgo/dicom/element"
	"github.com/dcmgo/dcmgo/dicom/tag"
	"github.com/dcmgo/dcmgo/dicom/value"
)

// preambleSize is the fixed, content-unspecified Part-10 preamble length.
const preambleSize = 128

var (
	fileMetaGroupLengthTag = tag.New(0x0002, 0x0000)
	transferSyntaxUIDTag   = tag.New(0x0002, 0x0010)
	pixelDataTag           = tag.New(0x7FE0, 0x0010)
)

// ParseOptions configures a Parse call. The zero value is the default:
// no early stop, tag.Default() as the dictionary. The sequence nesting limit
// is not configurable here; it is the fixed maxSequenceDepth.
type ParseOptions struct {
	// StopBeforeTag, if set, halts Data Set traversal as soon as a tag
	// greater than or equal to this one would be read next — useful for
	// reading only the header of a large file (e.g. stopping before
	// PixelData). Zero value disables early stop.
	StopBeforeTag *tag.Tag

	// Dictionary overrides the default tag dictionary used for
	// implicit-VR resolution and keyword lookups. Nil uses tag.Default().
	Dictionary *tag.Dictionary
}

// ParsedFile is the result of parsing one Part-10 stream: the decoded
// element map plus the assembled pixel buffer, per spec.md §4.5/§6.2.
type ParsedFile struct {
	Elements       *ElementMap
	TransferSyntax *TransferSyntax

	// PixelBuffer is the (7FE0,0010) value materialized per the corrected
	// semantics in spec.md §9's Open Questions: for native (defined-length)
	// pixel data, the decoded value array unchanged; for encapsulated
	// (undefined-length) pixel data, nil — the fragment list in Elements is
	// authoritative and is never re-concatenated.
	PixelBuffer value.Value
}

// Parse decodes a complete Part-10 byte buffer per spec.md §4.5.
func Parse(buf []byte, opts ParseOptions) (*ParsedFile, error) {
	if err := verifyPreamble(buf); err != nil {
		return nil, err
	}

	dict := opts.Dictionary
	if dict == nil {
		dict = tag.Default()
	}

	metaCursor := NewByteCursor(buf, binary.LittleEndian)
	metaElements, metaEnd, err := readFileMeta(metaCursor, dict)
	if err != nil {
		return nil, err
	}

	ts, err := selectTransferSyntax(metaElements)
	if err != nil {
		return nil, err
	}

	dataCursor := NewByteCursor(buf, ts.ByteOrder)
	elements := NewElementMap()
	for _, el := range metaElements.Elements() {
		elements.Add(el)
	}

	decoder := NewDecoder(dataCursor, dict, !ts.ExplicitVR)
	offset := metaEnd
	for offset < len(buf) {
		if opts.StopBeforeTag != nil {
			peekGroup, peekErr := dataCursor.ReadU16(offset)
			if peekErr == nil {
				peekElement, peekErr2 := dataCursor.ReadU16(offset + 2)
				if peekErr2 == nil {
					peeked := tag.New(peekGroup, peekElement)
					if peeked.Uint32() >= opts.StopBeforeTag.Uint32() {
						break
					}
				}
			}
		}

		el, next, err := decoder.ReadElement(offset)
		if err != nil {
			return nil, fmt.Errorf("failed to read data set element at offset %d: %w", offset, err)
		}
		elements.Add(el)
		offset = next
	}

	pixelBuffer := assemblePixelBuffer(elements)

	return &ParsedFile{Elements: elements, TransferSyntax: ts, PixelBuffer: pixelBuffer}, nil
}

func verifyPreamble(buf []byte) error {
	if len(buf) < preambleSize+4 {
		return fmt.Errorf("%w: buffer too short for preamble and DICM prefix", ErrNotDicom)
	}
	prefix := string(buf[preambleSize : preambleSize+4])
	if prefix != "DICM" {
		return fmt.Errorf("%w: expected DICM prefix, got %q", ErrNotDicom, prefix)
	}
	return nil
}

// readFileMeta decodes the File Meta Information group starting at offset
// 132 (128-byte preamble + 4-byte DICM prefix), always Explicit VR Little
// Endian regardless of the dataset's own Transfer Syntax, per spec.md §4.5
// steps 2-3.
func readFileMeta(cursor *ByteCursor, dict *tag.Dictionary) (*ElementMap, int, error) {
	offset := preambleSize + 4
	decoder := NewDecoder(cursor, dict, false)

	groupLengthElem, next, err := decoder.ReadElement(offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read File Meta Information Group Length: %w", err)
	}
	elements := NewElementMap()
	elements.Add(groupLengthElem)

	if !groupLengthElem.Tag.Equals(fileMetaGroupLengthTag) {
		return nil, 0, fmt.Errorf("%w: expected (0002,0000) as first element, got %s", ErrMalformedFraming, groupLengthElem.Tag)
	}

	metaLength, ok := asUint32(groupLengthElem.Value)
	if !ok {
		return nil, 0, fmt.Errorf("%w: (0002,0000) has no numeric value", ErrMalformedFraming)
	}
	metaEnd := next + int(metaLength)

	offset = next
	for offset < metaEnd {
		el, n, err := decoder.ReadElement(offset)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read File Meta Information element: %w", err)
		}
		elements.Add(el)
		offset = n
	}

	return elements, offset, nil
}

func asUint32(v value.Value) (uint32, bool) {
	if arr, ok := v.(*value.U32Array); ok && len(arr.Values()) > 0 {
		return arr.Values()[0], true
	}
	return 0, false
}

func selectTransferSyntax(metaElements *ElementMap) (*TransferSyntax, error) {
	el, ok := metaElements.Get(transferSyntaxUIDTag.Key())
	if !ok {
		return nil, ErrMissingTransferSyntax
	}
	strs, ok := el.Value.(*value.Strings)
	if !ok || len(strs.Cleaned()) == 0 {
		return nil, fmt.Errorf("%w: (0002,0010) has no string value", ErrMissingTransferSyntax)
	}
	return ClassifyTransferSyntax(strs.Cleaned()[0])
}

// assemblePixelBuffer implements the corrected semantics from spec.md §9's
// Open Questions: native pixel data is returned as-is; encapsulated pixel
// data (decoded as element.Fragments) is never re-concatenated.
func assemblePixelBuffer(elements *ElementMap) value.Value {
	el, ok := elements.Get(pixelDataTag.Key())
	if !ok {
		return nil
	}
	if _, isFragments := el.Value.(*element.Fragments); isFragments {
		return nil
	}
	return el.Value
}
