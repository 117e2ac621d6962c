// Package tag defines DICOM element tags and the read-only tag dictionary.
//
// A Tag is a (group, element) pair identifying a data element. The
// dictionary is a process-lifetime, read-only lookup of
// (group, element) -> (VR, VM, keyword) used to recover a VR under implicit
// encoding and to name elements for display.
//
// See DICOM Part 5, Section 7.1:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
package tag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dcmgo/dcmgo/dicom/vr"
)

// MetadataGroup is the group number for File Meta Information elements.
// File Meta is always Explicit VR Little Endian regardless of the
// dataset's Transfer Syntax.
const MetadataGroup = 0x0002

// ItemGroup is the group used by the Item/delimiter framing tags, which
// carry no VR on the wire.
const ItemGroup = 0xFFFE

const (
	// ItemElement is the Item tag element (FFFE,E000).
	ItemElement = 0xE000
	// ItemDelimitationElement is the Item Delimitation Item tag element (FFFE,E00D).
	ItemDelimitationElement = 0xE00D
	// SequenceDelimitationElement is the Sequence Delimitation Item tag element (FFFE,E0DD).
	SequenceDelimitationElement = 0xE0DD
)

// Tag represents a DICOM element tag as a (group, element) pair.
//
// A tag is immutable once read; equality is by the numeric (group, element)
// pair, not by Key (which is a formatting of the same data).
type Tag struct {
	Group   uint16
	Element uint16
}

// New constructs a Tag from its group and element numbers.
func New(group, element uint16) Tag {
	return Tag{Group: group, Element: element}
}

// Key returns the canonical textual identifier for this tag: lowercase "x"
// followed by the 4-hex group then 4-hex element, uppercase hex, e.g.
// "x7FE00010". This is the key used in an ElementMap.
func (t Tag) Key() string {
	return fmt.Sprintf("x%04X%04X", t.Group, t.Element)
}

// String renders the tag in standard DICOM notation "(GGGG,EEEE)".
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element)
}

// Uint32 packs the tag into a single uint32 (group in the upper 16 bits),
// useful for comparisons against the delimiter tag constants.
func (t Tag) Uint32() uint32 {
	return uint32(t.Group)<<16 | uint32(t.Element)
}

// Equals reports whether two tags denote the same (group, element) pair.
func (t Tag) Equals(other Tag) bool {
	return t.Group == other.Group && t.Element == other.Element
}

// IsPrivate reports whether this tag has an odd (private) group number.
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// IsMetaElement reports whether this tag belongs to the File Meta group.
func (t Tag) IsMetaElement() bool {
	return t.Group == MetadataGroup
}

// IsNoVR reports whether this tag carries no VR on the wire: the Item,
// ItemDelimitationItem, and SequenceDelimitationItem framing tags
// (group FFFE). Per spec.md §4.4.2, these are always forced to VR UN with
// a 4-byte length, in both implicit and explicit encoding.
func (t Tag) IsNoVR() bool {
	if t.Group != ItemGroup {
		return false
	}
	switch t.Element {
	case ItemElement, ItemDelimitationElement, SequenceDelimitationElement:
		return true
	default:
		return false
	}
}

// IsSequenceDelimiter reports whether this tag is FFFE,E0DD.
func (t Tag) IsSequenceDelimiter() bool {
	return t.Group == ItemGroup && t.Element == SequenceDelimitationElement
}

// IsItemDelimiter reports whether this tag is FFFE,E00D.
func (t Tag) IsItemDelimiter() bool {
	return t.Group == ItemGroup && t.Element == ItemDelimitationElement
}

// IsItem reports whether this tag is FFFE,E000.
func (t Tag) IsItem() bool {
	return t.Group == ItemGroup && t.Element == ItemElement
}

// Parse parses a tag string in the form "(GGGG,EEEE)" or "GGGG,EEEE".
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Tag{}, fmt.Errorf("invalid tag format %q: expected (GGGG,EEEE)", s)
	}

	group, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 16, 16)
	if err != nil {
		return Tag{}, fmt.Errorf("invalid group number in %q: %w", s, err)
	}
	element, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 16, 16)
	if err != nil {
		return Tag{}, fmt.Errorf("invalid element number in %q: %w", s, err)
	}

	return New(uint16(group), uint16(element)), nil
}

// Info holds dictionary information about a standard tag.
type Info struct {
	VR      vr.VR
	VM      string
	Keyword string
	Name    string
	Retired bool
}

// Dictionary is a read-only (group,element) -> Info lookup, injected into
// the parser per spec.md §1 ("the DICOM dictionary data itself ... treated
// as an injected read-only dependency"). The zero value is an empty, but
// usable, dictionary: every lookup misses except the generic group-length
// convention that Find applies to any (gggg,0000) tag.
type Dictionary struct {
	entries map[Tag]Info
}

// NewDictionary builds a Dictionary from an explicit entry set. Intended for
// tests and for callers assembling a dictionary from an external data file;
// most callers should use Default().
func NewDictionary(entries map[Tag]Info) *Dictionary {
	if entries == nil {
		entries = map[Tag]Info{}
	}
	return &Dictionary{entries: entries}
}

// Find looks up dictionary information for a tag. A miss returns
// (Info{}, false); callers must treat a miss as VR UN per spec.md §4.3, not
// as an error.
func (d *Dictionary) Find(t Tag) (Info, bool) {
	if d == nil {
		return Info{}, false
	}
	if info, ok := d.entries[t]; ok {
		return info, true
	}
	// Generic group-length convention: (gggg,0000) UL "Generic Group Length".
	if t.Element == 0x0000 {
		return Info{VR: vr.UnsignedLong, VM: "1", Keyword: "GenericGroupLength", Name: "Generic Group Length"}, true
	}
	return Info{}, false
}

// FindByKeyword performs a linear scan for a tag whose keyword matches.
// Used by ElementsView.GetByName; a dictionary of realistic size makes this
// an uncommon, cold-path operation.
func (d *Dictionary) FindByKeyword(keyword string) (Tag, Info, bool) {
	if d == nil {
		return Tag{}, Info{}, false
	}
	for t, info := range d.entries {
		if info.Keyword == keyword {
			return t, info, true
		}
	}
	return Tag{}, Info{}, false
}
