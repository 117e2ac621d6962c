// Package element provides the DICOM DataElement type and the two
// structurally-recursive value variants (sequence Items and pixel-data
// Fragments) that reference it.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
package element

import (
	"fmt"
	"strings"

	"github.com/dcmgo/dcmgo/dicom/tag"
	"github.com/dcmgo/dcmgo/dicom/value"
	"github.com/dcmgo/dcmgo/dicom/vr"
)

// VL is the literal Value Length field of a decoded element: either a
// materialized byte count or the symbolic "undefined length" sentinel
// (wire value 0xFFFFFFFF), per spec.md §3.
type VL struct {
	undefined bool
	n         uint32
}

// Defined constructs a materialized VL.
func Defined(n uint32) VL { return VL{n: n} }

// Undefined constructs the "u/l" sentinel VL.
func Undefined() VL { return VL{undefined: true} }

// IsUndefined reports whether this VL is the "u/l" sentinel.
func (v VL) IsUndefined() bool { return v.undefined }

// Value returns the materialized byte count, or 0 for an undefined VL.
func (v VL) Value() uint32 {
	if v.undefined {
		return 0
	}
	return v.n
}

// String renders "u/l" for undefined length, else the decimal byte count.
func (v VL) String() string {
	if v.undefined {
		return "u/l"
	}
	return fmt.Sprintf("%d", v.n)
}

// Element is a single decoded DICOM Data Element: (tag, VR, VL, value),
// plus the absolute end-offset used to verify the structural invariants in
// spec.md §3 (endOffset = startOffset + prefixSize + effectiveVL).
//
// Endianness, once applied during decode, is not re-encoded in the result:
// an Element is a decoded snapshot, not a re-encodable wire fragment.
type Element struct {
	Tag       tag.Tag
	VR        vr.VR
	VL        VL
	Value     value.Value
	EndOffset int
}

// New constructs an Element. val may be nil only for elements whose value
// is read by a separate path (never stored that way by the dicom package's
// decoder, but permitted here for callers assembling elements directly).
func New(t tag.Tag, v vr.VR, vl VL, val value.Value, endOffset int) *Element {
	return &Element{Tag: t, VR: v, VL: vl, Value: val, EndOffset: endOffset}
}

// Keyword returns the element's dictionary keyword, or "" if the tag is
// not present in the supplied dictionary (e.g. a private or unknown tag).
func (e *Element) Keyword(dict *tag.Dictionary) string {
	if info, ok := dict.Find(e.Tag); ok {
		return info.Keyword
	}
	return ""
}

// String renders "(GGGG,EEEE) VR = value", truncating long values.
func (e *Element) String() string {
	var sb strings.Builder
	sb.WriteString(e.Tag.String())
	sb.WriteByte(' ')
	sb.WriteString(e.VR.String())
	sb.WriteString(" = ")
	s := ""
	if e.Value != nil {
		s = e.Value.String()
	}
	const maxLen = 80
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	sb.WriteString(s)
	return sb.String()
}

// Item is an ordered mapping from tag-key to nested Element: the contents
// of one entry of a sequence's Items value, per spec.md §3. Iteration
// order (Keys) is insertion order, matching ElementMap's ordering
// guarantee.
//
// VL records the item's own framing length as read off the wire, so a
// renderer can distinguish an explicit-length item from an undefined-length
// one (dcmdump convention) instead of assuming one or the other.
type Item struct {
	VL    VL
	order []string
	byKey map[string]*Element
}

// NewItem constructs an empty, ready-to-populate Item with the given
// framing length.
func NewItem(vl VL) *Item {
	return &Item{VL: vl, byKey: make(map[string]*Element)}
}

// Set inserts or replaces the child element under its tag key, recording
// insertion order on first use of a key.
func (it *Item) Set(el *Element) {
	key := el.Tag.Key()
	if _, exists := it.byKey[key]; !exists {
		it.order = append(it.order, key)
	}
	it.byKey[key] = el
}

// Get looks up a child element by tag key.
func (it *Item) Get(key string) (*Element, bool) {
	el, ok := it.byKey[key]
	return el, ok
}

// Keys returns child tag keys in insertion order.
func (it *Item) Keys() []string {
	return it.order
}

// Len returns the number of child elements.
func (it *Item) Len() int {
	return len(it.order)
}

// Items is the SQ value variant: an ordered sequence of Items.
type Items struct {
	items []*Item
}

// NewItems constructs an Items value from an ordered item slice.
func NewItems(items []*Item) *Items {
	return &Items{items: items}
}

func (s *Items) VR() vr.VR { return vr.SequenceOfItems }

// Len returns the number of items in the sequence.
func (s *Items) Len() int { return len(s.items) }

// At returns the item at index i.
func (s *Items) At(i int) *Item { return s.items[i] }

// All returns the underlying item slice (not a copy).
func (s *Items) All() []*Item { return s.items }

func (s *Items) String() string {
	return fmt.Sprintf("<sequence: %d item(s)>", len(s.items))
}

func (s *Items) Equals(other value.Value) bool {
	o, ok := other.(*Items)
	if !ok || len(o.items) != len(s.items) {
		return false
	}
	for i := range s.items {
		a, b := s.items[i], o.items[i]
		if a.Len() != b.Len() {
			return false
		}
		for _, k := range a.Keys() {
			ae, _ := a.Get(k)
			be, ok := b.Get(k)
			if !ok || !elementsEqual(ae, be) {
				return false
			}
		}
	}
	return true
}

func elementsEqual(a, b *Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !a.Tag.Equals(b.Tag) || a.VR != b.VR {
		return false
	}
	if a.Value == nil || b.Value == nil {
		return a.Value == b.Value
	}
	return a.Value.Equals(b.Value)
}

// Fragments is the encapsulated-pixel-data value variant: an ordered list
// of fragment items, the first of which is the Basic Offset Table, per
// spec.md §3/§4.4.5.
type Fragments struct {
	items []*Element
}

// NewFragments constructs a Fragments value. items[0] is the BOT.
func NewFragments(items []*Element) *Fragments {
	return &Fragments{items: items}
}

func (f *Fragments) VR() vr.VR { return vr.OtherByte }

// Len returns the number of fragment items, including the BOT.
func (f *Fragments) Len() int { return len(f.items) }

// At returns the fragment item at index i (index 0 is the BOT).
func (f *Fragments) At(i int) *Element { return f.items[i] }

// All returns the underlying fragment slice (not a copy).
func (f *Fragments) All() []*Element { return f.items }

func (f *Fragments) String() string {
	return fmt.Sprintf("<encapsulated pixel data: %d fragment(s)>", len(f.items))
}

func (f *Fragments) Equals(other value.Value) bool {
	o, ok := other.(*Fragments)
	if !ok || len(o.items) != len(f.items) {
		return false
	}
	for i := range f.items {
		if !elementsEqual(f.items[i], o.items[i]) {
			return false
		}
	}
	return true
}
