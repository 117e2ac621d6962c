// Package value provides the scalar DICOM element value variants.
//
// A DICOM element's value is a tagged variant discriminated by VR: a
// backslash-separated string list, a raw byte array, a fixed-width numeric
// array of one of six widths/signedness combinations, or a list of
// formatted AT tag strings. The two structurally-recursive variants
// (sequence Items and pixel-data Fragments) live in package element, since
// they reference element.Element and would otherwise create an import
// cycle with this package.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
package value

import (
	"fmt"
	"strings"

	"github.com/dcmgo/dcmgo/dicom/vr"
)

// Value is the common interface satisfied by every element value variant,
// including the compound Items/Fragments variants defined in package
// element.
type Value interface {
	// VR returns the Value Representation this value was decoded as.
	VR() vr.VR
	// String returns a human-readable rendering, used by the dumper.
	String() string
	// Equals reports whether two values are structurally equal.
	Equals(other Value) bool
}

// cleanString strips trailing ASCII space and a single trailing U+200B
// zero-width space before comparison/display, per spec.md §3 and the
// "suspected source bug" fix recorded in spec.md §9 (the original compared
// against the literal letter "u" instead of U+200B; this implements the
// intended behavior).
func cleanString(s string) string {
	s = strings.TrimRight(s, " ")
	s = strings.TrimSuffix(s, "​")
	return s
}

// Strings holds the backslash-separated components of a character-string
// VR's raw text. Each component retains its raw characters; cleanString is
// applied only at comparison/display time, per spec.md §3.
type Strings struct {
	vr         vr.VR
	components []string
}

// NewStrings constructs a Strings value for a string-class VR.
func NewStrings(v vr.VR, components []string) *Strings {
	return &Strings{vr: v, components: components}
}

func (s *Strings) VR() vr.VR { return s.vr }

// Components returns the raw (uncleaned) backslash-split components.
func (s *Strings) Components() []string { return s.components }

// Cleaned returns the components with trailing space/ZWSP stripped.
func (s *Strings) Cleaned() []string {
	out := make([]string, len(s.components))
	for i, c := range s.components {
		out[i] = cleanString(c)
	}
	return out
}

func (s *Strings) String() string {
	return strings.Join(s.Cleaned(), "\\")
}

func (s *Strings) Equals(other Value) bool {
	o, ok := other.(*Strings)
	if !ok || o.vr != s.vr || len(o.components) != len(s.components) {
		return false
	}
	sc, oc := s.Cleaned(), o.Cleaned()
	for i := range sc {
		if sc[i] != oc[i] {
			return false
		}
	}
	return true
}

// Bytes holds an undifferentiated byte array: OB, UN, or the byte-width
// resolution of OW/ox when BitsAllocated == 8.
type Bytes struct {
	vr   vr.VR
	data []byte
}

func NewBytes(v vr.VR, data []byte) *Bytes { return &Bytes{vr: v, data: data} }

func (b *Bytes) VR() vr.VR     { return b.vr }
func (b *Bytes) Data() []byte  { return b.data }
func (b *Bytes) String() string {
	if len(b.data) == 0 {
		return ""
	}
	return fmt.Sprintf("<%d bytes>", len(b.data))
}
func (b *Bytes) Equals(other Value) bool {
	o, ok := other.(*Bytes)
	return ok && o.vr == b.vr && string(o.data) == string(b.data)
}

// numericArray implements the six fixed-width numeric array variants
// (U16/I16/U32/I32/F32/F64) behind one generic-free struct, keeping the
// decoder's dispatch table small while still exposing VR-specific typed
// accessors below.
type numericArray struct {
	vr   vr.VR
	u16  []uint16
	i16  []int16
	u32  []uint32
	i32  []int32
	f32  []float32
	f64  []float64
}

func (n *numericArray) VR() vr.VR { return n.vr }

func (n *numericArray) String() string {
	var parts []string
	switch {
	case n.u16 != nil:
		for _, v := range n.u16 {
			parts = append(parts, fmt.Sprintf("%d", v))
		}
	case n.i16 != nil:
		for _, v := range n.i16 {
			parts = append(parts, fmt.Sprintf("%d", v))
		}
	case n.u32 != nil:
		for _, v := range n.u32 {
			parts = append(parts, fmt.Sprintf("%d", v))
		}
	case n.i32 != nil:
		for _, v := range n.i32 {
			parts = append(parts, fmt.Sprintf("%d", v))
		}
	case n.f32 != nil:
		for _, v := range n.f32 {
			parts = append(parts, fmt.Sprintf("%g", v))
		}
	case n.f64 != nil:
		for _, v := range n.f64 {
			parts = append(parts, fmt.Sprintf("%g", v))
		}
	}
	return strings.Join(parts, "\\")
}

func (n *numericArray) numeric() *numericArray { return n }

func (n *numericArray) Equals(other Value) bool {
	on, ok := other.(interface{ numeric() *numericArray })
	if !ok {
		return false
	}
	o := on.numeric()
	if o.vr != n.vr {
		return false
	}
	switch {
	case n.u16 != nil:
		return eqU16(n.u16, o.u16)
	case n.i16 != nil:
		return eqI16(n.i16, o.i16)
	case n.u32 != nil:
		return eqU32(n.u32, o.u32)
	case n.i32 != nil:
		return eqI32(n.i32, o.i32)
	case n.f32 != nil:
		return eqF32(n.f32, o.f32)
	case n.f64 != nil:
		return eqF64(n.f64, o.f64)
	}
	return len(o.u16)+len(o.i16)+len(o.u32)+len(o.i32)+len(o.f32)+len(o.f64) == 0
}

func eqU16(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
func eqI16(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
func eqU32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
func eqI32(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
func eqF32(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
func eqF64(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// U16Array is the US (and resolved OW-as-16-bit) numeric array variant.
type U16Array struct{ numericArray }

func NewU16Array(v vr.VR, data []uint16) *U16Array {
	return &U16Array{numericArray{vr: v, u16: data}}
}
func (a *U16Array) Values() []uint16 { return a.u16 }

// I16Array is the SS numeric array variant.
type I16Array struct{ numericArray }

func NewI16Array(v vr.VR, data []int16) *I16Array {
	return &I16Array{numericArray{vr: v, i16: data}}
}
func (a *I16Array) Values() []int16 { return a.i16 }

// U32Array is the UL numeric array variant.
type U32Array struct{ numericArray }

func NewU32Array(v vr.VR, data []uint32) *U32Array {
	return &U32Array{numericArray{vr: v, u32: data}}
}
func (a *U32Array) Values() []uint32 { return a.u32 }

// I32Array is the SL numeric array variant.
type I32Array struct{ numericArray }

func NewI32Array(v vr.VR, data []int32) *I32Array {
	return &I32Array{numericArray{vr: v, i32: data}}
}
func (a *I32Array) Values() []int32 { return a.i32 }

// F32Array is the FL numeric array variant.
type F32Array struct{ numericArray }

func NewF32Array(v vr.VR, data []float32) *F32Array {
	return &F32Array{numericArray{vr: v, f32: data}}
}
func (a *F32Array) Values() []float32 { return a.f32 }

// F64Array is the FD numeric array variant.
type F64Array struct{ numericArray }

func NewF64Array(v vr.VR, data []float64) *F64Array {
	return &F64Array{numericArray{vr: v, f64: data}}
}
func (a *F64Array) Values() []float64 { return a.f64 }

// Tags holds the AT value: a list of formatted "(GGGG,EEEE)" strings built
// from consecutive uint16 pairs, per spec.md §4.4.3.
type Tags struct {
	tags []string
}

func NewTags(pairs []uint16) *Tags {
	t := &Tags{}
	for i := 0; i+1 < len(pairs); i += 2 {
		t.tags = append(t.tags, fmt.Sprintf("(%04X,%04X)", pairs[i], pairs[i+1]))
	}
	return t
}

func (t *Tags) VR() vr.VR        { return vrAttributeTag() }
func (t *Tags) Strings() []string { return t.tags }
func (t *Tags) String() string   { return strings.Join(t.tags, "\\") }
func (t *Tags) Equals(other Value) bool {
	o, ok := other.(*Tags)
	if !ok || len(o.tags) != len(t.tags) {
		return false
	}
	for i := range t.tags {
		if t.tags[i] != o.tags[i] {
			return false
		}
	}
	return true
}

func vrAttributeTag() vr.VR { return vr.AttributeTag }
