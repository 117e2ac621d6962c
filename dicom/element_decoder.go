package dicom

import (
	"fmt"
	"strings"

	"github.com/dcmgo/dcmgo/dicom/element"
	"github.com/dcmgo/dcmgo/dicom/tag"
	"github.com/dcmgo/dcmgo/dicom/value"
	"github.com/dcmgo/dcmgo/dicom/vr"
)

// maxSequenceDepth bounds recursive descent into nested sequences/items,
// per spec.md §9's design note (sequences nest ≤4 deep in practice;
// anything past 64 is almost certainly a malformed or hostile input).
const maxSequenceDepth = 64

// Decoder reads Data Elements from a ByteCursor according to a Transfer
// Syntax's VR explicitness, recursing into sequences and encapsulated
// pixel-data fragments.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
type Decoder struct {
	cursor   *ByteCursor
	dict     *tag.Dictionary
	implicit bool

	// bitsAllocated tracks (0028,0100) as it is encountered, resolving the
	// OW/OF/ox element-width ambiguity per spec.md §4.4.3. nil until seen.
	bitsAllocated *uint16
}

// NewDecoder constructs a Decoder over cursor using dict for implicit-VR
// resolution. implicit selects implicit vs explicit VR encoding for
// regular (non item/delimiter) elements.
func NewDecoder(cursor *ByteCursor, dict *tag.Dictionary, implicit bool) *Decoder {
	return &Decoder{cursor: cursor, dict: dict, implicit: implicit}
}

// readHeader reads a tag followed by its VR and VL field, honoring the
// three encoding cases from spec.md §4.4.1/§4.4.2:
//
//  1. No-VR tags (Item/ItemDelimitationItem/SequenceDelimitationItem,
//     group FFFE): VR forced to UN, VL is a plain uint32.
//  2. Implicit VR: VR is looked up from the dictionary (UN on miss), VL is
//     a plain uint32.
//  3. Explicit VR: VR is 2 ASCII bytes on the wire; VL is 2 or 4 bytes
//     depending on whether the VR is in the 32-bit VL set.
//
// Returns the tag, resolved VR, VL, and the offset immediately following
// the header (where the value, if any, begins).
func (d *Decoder) readHeader(offset int) (tag.Tag, vr.VR, element.VL, int, error) {
	group, err := d.cursor.ReadU16(offset)
	if err != nil {
		return tag.Tag{}, 0, element.VL{}, 0, fmt.Errorf("failed to read tag group at offset %d: %w", offset, err)
	}
	elementNo, err := d.cursor.ReadU16(offset + 2)
	if err != nil {
		return tag.Tag{}, 0, element.VL{}, 0, fmt.Errorf("failed to read tag element at offset %d: %w", offset+2, err)
	}
	t := tag.New(group, elementNo)
	offset += 4

	if t.IsNoVR() {
		raw, err := d.cursor.ReadU32(offset)
		if err != nil {
			return tag.Tag{}, 0, element.VL{}, 0, fmt.Errorf("failed to read length for %s: %w", t, err)
		}
		return t, vr.Unknown, toVL(raw), offset + 4, nil
	}

	if d.implicit {
		v := d.lookupImplicitVR(t)
		raw, err := d.cursor.ReadU32(offset)
		if err != nil {
			return tag.Tag{}, 0, element.VL{}, 0, fmt.Errorf("failed to read length for %s: %w", t, err)
		}
		return t, v, toVL(raw), offset + 4, nil
	}

	vrStr, err := d.cursor.ReadString(offset, 2)
	if err != nil {
		return tag.Tag{}, 0, element.VL{}, 0, fmt.Errorf("failed to read VR for %s: %w", t, err)
	}
	v, err := vr.Parse(vrStr)
	if err != nil {
		// Unknown VR on the wire in explicit mode: treat as UN and
		// continue, per spec.md §4.4.6.
		v = vr.Unknown
	}
	offset += 2

	if v.Is32BitVL() {
		offset += 2 // reserved bytes, not validated: implementations vary on whether they are zeroed
		raw, err := d.cursor.ReadU32(offset)
		if err != nil {
			return tag.Tag{}, 0, element.VL{}, 0, fmt.Errorf("failed to read 32-bit length for %s: %w", t, err)
		}
		return t, v, toVL(raw), offset + 4, nil
	}

	raw16, err := d.cursor.ReadU16(offset)
	if err != nil {
		return tag.Tag{}, 0, element.VL{}, 0, fmt.Errorf("failed to read 16-bit length for %s: %w", t, err)
	}
	return t, v, toVL(uint32(raw16)), offset + 2, nil
}

func toVL(raw uint32) element.VL {
	if raw == 0xFFFFFFFF {
		return element.Undefined()
	}
	return element.Defined(raw)
}

func (d *Decoder) lookupImplicitVR(t tag.Tag) vr.VR {
	info, ok := d.dict.Find(t)
	if !ok {
		return vr.Unknown
	}
	return info.VR
}

// ReadElement reads one Data Element at offset: tag, VR, VL, and value.
// Returns the decoded element and the offset immediately following it.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
func (d *Decoder) ReadElement(offset int) (*element.Element, int, error) {
	return d.readElementAt(offset, 0)
}

func (d *Decoder) readElementAt(offset, depth int) (*element.Element, int, error) {
	t, v, vl, valueOffset, err := d.readHeader(offset)
	if err != nil {
		return nil, 0, err
	}

	val, endOffset, err := d.readValue(t, v, vl, valueOffset, depth)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read value for tag %s: %w", t, err)
	}

	// Resolve the BitsAllocated-dependent width ambiguity and the "ox"
	// sentinel before the element is ever stored, per spec.md §9: "ox"
	// must never leak to consumers.
	resolvedVR, val := d.resolveAmbiguousVR(t, v, val)
	d.trackBitsAllocated(t, val)

	return element.New(t, resolvedVR, vl, val, endOffset), endOffset, nil
}

var bitsAllocatedTag = tag.New(0x0028, 0x0100)

// trackBitsAllocated records (0028,0100)'s value as it is decoded, resolving
// the OW/OF/ox width ambiguity for elements that follow it in the stream.
func (d *Decoder) trackBitsAllocated(t tag.Tag, val value.Value) {
	if !t.Equals(bitsAllocatedTag) {
		return
	}
	if iv, ok := val.(*value.U16Array); ok && len(iv.Values()) > 0 {
		b := iv.Values()[0]
		d.bitsAllocated = &b
	}
}

// resolveAmbiguousVR materializes the "ox" sentinel into a concrete VR.
// readValue has already chosen the element width using BitsAllocated; this
// only relabels the VR that gets stored (on both the element and its value),
// per spec.md §9's materialization rule.
func (d *Decoder) resolveAmbiguousVR(t tag.Tag, v vr.VR, val value.Value) (vr.VR, value.Value) {
	if v != vr.OtherByteOrWord {
		return v, val
	}
	switch tv := val.(type) {
	case *value.Bytes:
		return vr.OtherByte, value.NewBytes(vr.OtherByte, tv.Data())
	case *value.U16Array:
		return vr.OtherWord, value.NewU16Array(vr.OtherWord, tv.Values())
	}
	if d.bitsAllocated != nil && *d.bitsAllocated == 8 {
		return vr.OtherByte, val
	}
	return vr.OtherWord, val
}

// readValue dispatches on (tag, vr, vl) per spec.md §4.4.3.
func (d *Decoder) readValue(t tag.Tag, v vr.VR, vl element.VL, offset, depth int) (value.Value, int, error) {
	isPixelData := t.Group == 0x7FE0 && t.Element == 0x0010

	if vl.IsUndefined() {
		if isPixelData {
			return d.readPixelItems(offset, depth)
		}
		if v == vr.SequenceOfItems {
			return d.readUndefinedLengthItems(offset, depth)
		}
		return nil, 0, fmt.Errorf("%w: undefined length for non-sequence, non-pixel-data VR %s", ErrMalformedFraming, v)
	}

	n := int(vl.Value())
	if n < 0 || offset+n > d.cursor.Len() {
		return nil, 0, fmt.Errorf("%w: tag %s declares %d bytes, only %d remain", ErrTruncatedElement, t, n, d.cursor.Len()-offset)
	}

	switch {
	case v == vr.SequenceOfItems:
		return d.readDefinedLengthItems(offset, offset+n, depth)

	case v == vr.OtherWord || v == vr.OtherFloat || v == vr.OtherByteOrWord:
		if d.bitsAllocated != nil && *d.bitsAllocated == 8 {
			raw, err := d.cursor.ReadU8Array(offset, n)
			if err != nil {
				return nil, 0, err
			}
			return value.NewBytes(v, raw), offset + n, nil
		}
		arr, err := d.cursor.ReadU16Array(offset, evenLen(n))
		if err != nil {
			return nil, 0, err
		}
		return value.NewU16Array(v, arr), offset + n, nil

	case v == vr.OtherByte || v == vr.Unknown:
		raw, err := d.cursor.ReadU8Array(offset, n)
		if err != nil {
			return nil, 0, err
		}
		return value.NewBytes(v, raw), offset + n, nil

	case v == vr.UnsignedShort:
		arr, err := d.cursor.ReadU16Array(offset, evenLen(n))
		if err != nil {
			return nil, 0, err
		}
		return value.NewU16Array(v, arr), offset + n, nil

	case v == vr.SignedShort:
		arr, err := d.cursor.ReadI16Array(offset, evenLen(n))
		if err != nil {
			return nil, 0, err
		}
		return value.NewI16Array(v, arr), offset + n, nil

	case v == vr.UnsignedLong:
		arr, err := d.cursor.ReadU32Array(offset, n)
		if err != nil {
			return nil, 0, err
		}
		return value.NewU32Array(v, arr), offset + n, nil

	case v == vr.SignedLong:
		arr, err := d.cursor.ReadI32Array(offset, n)
		if err != nil {
			return nil, 0, err
		}
		return value.NewI32Array(v, arr), offset + n, nil

	case v == vr.FloatingPointSingle:
		arr, err := d.cursor.ReadF32Array(offset, n)
		if err != nil {
			return nil, 0, err
		}
		return value.NewF32Array(v, arr), offset + n, nil

	case v == vr.FloatingPointDouble:
		arr, err := d.cursor.ReadF64Array(offset, n)
		if err != nil {
			return nil, 0, err
		}
		return value.NewF64Array(v, arr), offset + n, nil

	case v == vr.AttributeTag:
		arr, err := d.cursor.ReadU16Array(offset, evenLen(n))
		if err != nil {
			return nil, 0, err
		}
		return value.NewTags(arr), offset + n, nil

	default:
		// String-class VRs, including the fallback for any VR not
		// otherwise handled above.
		s, err := d.cursor.ReadString(offset, n)
		if err != nil {
			return nil, 0, err
		}
		var components []string
		if s == "" {
			components = []string{}
		} else {
			components = strings.Split(s, "\\")
		}
		return value.NewStrings(v, components), offset + n, nil
	}
}

// evenLen defensively rounds an odd declared length down to the nearest
// even width boundary so a truncated multi-byte array never panics; in a
// well-formed file VLs for fixed-width VRs are always even.
func evenLen(n int) int {
	if n%2 != 0 {
		return n - 1
	}
	return n
}

// readItemHeader reads one element/item header at offset, delegating to
// readHeader so that child elements nested inside an item get the same
// implicit/explicit VR resolution as top-level elements.
func (d *Decoder) readItemHeader(offset int) (tag.Tag, vr.VR, element.VL, int, error) {
	return d.readHeader(offset)
}

// readDefinedLengthItems implements the explicit-length SQ framing of
// spec.md §4.4.3: read items until the cumulative offset reaches
// containerEnd.
func (d *Decoder) readDefinedLengthItems(offset, containerEnd, depth int) (value.Value, int, error) {
	if depth >= maxSequenceDepth {
		return nil, 0, fmt.Errorf("%w: sequence nesting exceeds depth %d", ErrMalformedFraming, maxSequenceDepth)
	}
	var items []*element.Item
	for offset < containerEnd {
		it, next, isSeqDelim, err := d.readItem(offset, depth+1)
		if err != nil {
			return nil, 0, err
		}
		if isSeqDelim {
			return nil, 0, fmt.Errorf("%w: unexpected sequence delimiter inside explicit-length sequence", ErrMalformedFraming)
		}
		items = append(items, it)
		offset = next
	}
	if offset != containerEnd {
		return nil, 0, fmt.Errorf("%w: sequence item offsets overran container end (at %d, end %d)", ErrMalformedFraming, offset, containerEnd)
	}
	return element.NewItems(items), offset, nil
}

// readUndefinedLengthItems implements the undefined-length SQ framing:
// read items until one reports isSeqDelim, consuming (but not storing)
// that delimiter.
func (d *Decoder) readUndefinedLengthItems(offset, depth int) (value.Value, int, error) {
	if depth >= maxSequenceDepth {
		return nil, 0, fmt.Errorf("%w: sequence nesting exceeds depth %d", ErrMalformedFraming, maxSequenceDepth)
	}
	var items []*element.Item
	for {
		item, next, isSeqDelim, err := d.readItem(offset, depth+1)
		if err != nil {
			return nil, 0, err
		}
		offset = next
		if isSeqDelim {
			return element.NewItems(items), offset, nil
		}
		items = append(items, item)
	}
}

// readItem implements spec.md §4.4.4: read one Item's own header; if it is
// the sequence-delimitation tag, report isSeqDelim and stop. Otherwise
// read child elements either until the container's end offset (explicit
// length) or until an Item Delimitation Item (undefined length).
func (d *Decoder) readItem(offset, depth int) (item *element.Item, next int, isSeqDelim bool, err error) {
	t, _, vl, afterHeader, err := d.readItemHeader(offset)
	if err != nil {
		return nil, 0, false, err
	}

	if t.IsSequenceDelimiter() {
		return nil, afterHeader, true, nil
	}
	if !t.IsItem() {
		return nil, 0, false, fmt.Errorf("%w: expected Item tag, got %s", ErrMalformedFraming, t)
	}

	it := element.NewItem(vl)
	childOffset := afterHeader

	if vl.IsUndefined() {
		for {
			childTag, childVR, childVL, childAfterHeader, err := d.readItemHeader(childOffset)
			if err != nil {
				return nil, 0, false, err
			}
			if childTag.IsItemDelimiter() {
				return it, childAfterHeader, false, nil
			}
			child, childEnd, err := d.readChildElement(childTag, childVR, childVL, childAfterHeader, depth)
			if err != nil {
				return nil, 0, false, err
			}
			it.Set(child)
			childOffset = childEnd
		}
	}

	containerEnd := afterHeader + int(vl.Value())
	for childOffset < containerEnd {
		childTag, childVR, childVL, childAfterHeader, err := d.readItemHeader(childOffset)
		if err != nil {
			return nil, 0, false, err
		}
		child, childEnd, err := d.readChildElement(childTag, childVR, childVL, childAfterHeader, depth)
		if err != nil {
			return nil, 0, false, err
		}
		it.Set(child)
		childOffset = childEnd
	}
	if childOffset != containerEnd {
		return nil, 0, false, fmt.Errorf("%w: item child offsets overran item end (at %d, end %d)", ErrMalformedFraming, childOffset, containerEnd)
	}
	return it, containerEnd, false, nil
}

// readChildElement reads the value for a child element whose header
// (tag, VR, VL) has already been resolved by readItemHeader, then
// materializes any ambiguous "ox" VR the same way a top-level element
// would.
func (d *Decoder) readChildElement(t tag.Tag, v vr.VR, vl element.VL, offset, depth int) (*element.Element, int, error) {
	val, end, err := d.readValue(t, v, vl, offset, depth)
	if err != nil {
		return nil, 0, err
	}
	resolvedVR, val := d.resolveAmbiguousVR(t, v, val)
	d.trackBitsAllocated(t, val)
	return element.New(t, resolvedVR, vl, val, end), end, nil
}

// readPixelItems implements spec.md §4.4.5: the first item is the Basic
// Offset Table; subsequent items are fragments, terminated by a sequence
// delimiter.
func (d *Decoder) readPixelItems(offset, depth int) (value.Value, int, error) {
	if depth >= maxSequenceDepth {
		return nil, 0, fmt.Errorf("%w: pixel fragment nesting exceeds depth %d", ErrMalformedFraming, maxSequenceDepth)
	}

	var fragments []*element.Element

	// Basic Offset Table.
	botTag, _, botVL, botAfterHeader, err := d.readItemHeader(offset)
	if err != nil {
		return nil, 0, err
	}
	if !botTag.IsItem() {
		return nil, 0, fmt.Errorf("%w: expected Basic Offset Table item, got %s", ErrMalformedFraming, botTag)
	}
	botLen := int(botVL.Value())
	botData, err := d.cursor.ReadU8Array(botAfterHeader, botLen)
	if err != nil {
		return nil, 0, err
	}
	fragments = append(fragments, element.New(botTag, vr.OtherByte, botVL, value.NewBytes(vr.OtherByte, botData), botAfterHeader+botLen))
	offset = botAfterHeader + botLen

	for {
		t, _, vl, afterHeader, err := d.readItemHeader(offset)
		if err != nil {
			return nil, 0, err
		}
		if t.IsSequenceDelimiter() {
			offset = afterHeader
			break
		}
		if !t.IsItem() {
			return nil, 0, fmt.Errorf("%w: expected fragment item, got %s", ErrMalformedFraming, t)
		}
		n := int(vl.Value())
		data, err := d.cursor.ReadU8Array(afterHeader, n)
		if err != nil {
			return nil, 0, err
		}
		fragments = append(fragments, element.New(t, vr.OtherByte, vl, value.NewBytes(vr.OtherByte, data), afterHeader+n))
		offset = afterHeader + n
	}

	return element.NewFragments(fragments), offset, nil
}
