// Package vr defines DICOM Value Representations (VRs) and their properties.
//
// Value Representations specify the data type and format of DICOM element
// values. Each VR has specific encoding rules, length-field width, and
// array/string semantics.
//
// See DICOM Part 5, Section 6.2:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
package vr

import "fmt"

// VR represents a DICOM Value Representation type.
type VR uint8

// Standard DICOM Value Representations plus three parser-internal sentinels.
//
// This set intentionally mirrors the classic 28-VR subset of the standard
// (it omits the later OL/OV/SV/UV/UC/UR additions): AE, AS, AT, CS, DA, DS,
// DT, FL, FD, IS, LO, LT, OB, OD, OF, OW, PN, SH, SL, SQ, SS, ST, TM, UI, UL,
// UN, US, UT.
const (
	ApplicationEntity VR = iota + 1 // AE
	AgeString                       // AS
	AttributeTag                    // AT
	CodeString                      // CS
	Date                            // DA
	DecimalString                   // DS
	DateTime                        // DT
	FloatingPointSingle             // FL
	FloatingPointDouble             // FD
	IntegerString                   // IS
	LongString                      // LO
	LongText                        // LT
	OtherByte                       // OB
	OtherDouble                     // OD
	OtherFloat                      // OF
	OtherWord                       // OW
	PersonName                      // PN
	ShortString                     // SH
	SignedLong                      // SL
	SequenceOfItems                 // SQ
	SignedShort                     // SS
	ShortText                       // ST
	Time                            // TM
	UniqueIdentifier                // UI
	UnsignedLong                    // UL
	Unknown                         // UN
	UnsignedShort                   // US
	UnlimitedText                   // UT

	// OtherByteOrWord is the parser-internal "ox" sentinel used when OB/OW
	// cannot be distinguished a priori under implicit VR encoding. It must
	// never leak to consumers: the decoder resolves it to OB or OW based on
	// BitsAllocated before the element is stored in an ElementMap.
	OtherByteOrWord

	// PixelItem is the "pi" marker used only by the textual dumper to render
	// encapsulated pixel-data fragment pseudo-entries.
	PixelItem

	// NotApplicable is the "na" marker used only by the textual dumper to
	// render delimiter pseudo-entries (ItemDelimitationItem,
	// SequenceDelimitationItem).
	NotApplicable
)

var vrStrings = map[VR]string{
	ApplicationEntity: "AE", AgeString: "AS", AttributeTag: "AT", CodeString: "CS",
	Date: "DA", DecimalString: "DS", DateTime: "DT", FloatingPointSingle: "FL",
	FloatingPointDouble: "FD", IntegerString: "IS", LongString: "LO", LongText: "LT",
	OtherByte: "OB", OtherDouble: "OD", OtherFloat: "OF", OtherWord: "OW",
	PersonName: "PN", ShortString: "SH", SignedLong: "SL", SequenceOfItems: "SQ",
	SignedShort: "SS", ShortText: "ST", Time: "TM", UniqueIdentifier: "UI",
	UnsignedLong: "UL", Unknown: "UN", UnsignedShort: "US", UnlimitedText: "UT",
	OtherByteOrWord: "ox", PixelItem: "pi", NotApplicable: "na",
}

var stringToVR = map[string]VR{}

func init() {
	for v, s := range vrStrings {
		stringToVR[s] = v
	}
}

// String returns the two-character (or sentinel) code of the VR.
func (v VR) String() string {
	if s, ok := vrStrings[v]; ok {
		return s
	}
	return "UN"
}

// Parse parses a two-character VR code read from the wire.
//
// Unknown codes are the explicit-mode "unknown VR" case from spec.md
// §4.4.6: callers should fall back to Unknown (UN) rather than aborting.
func Parse(s string) (VR, error) {
	if v, ok := stringToVR[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("invalid VR: %q", s)
}

// Is32BitVL reports whether this VR uses a 4-byte (32-bit) value-length
// field when explicitly encoded, per spec.md §3's "32-bit VL set"
// {OB, OW, OF, SQ, UN, ox}. All other VRs use a 16-bit VL.
func (v VR) Is32BitVL() bool {
	switch v {
	case OtherByte, OtherWord, OtherFloat, SequenceOfItems, Unknown, OtherByteOrWord:
		return true
	default:
		return false
	}
}

// IsStringType reports whether this VR's value is a backslash-separated
// list of character-string components.
func (v VR) IsStringType() bool {
	switch v {
	case ApplicationEntity, AgeString, CodeString, Date, DecimalString, DateTime,
		IntegerString, LongString, LongText, PersonName, ShortString, ShortText,
		Time, UniqueIdentifier, UnlimitedText:
		return true
	default:
		return false
	}
}

// IsBinaryType reports whether this VR's value is a raw byte array (as
// opposed to a numeric array with wider elements).
func (v VR) IsBinaryType() bool {
	switch v {
	case OtherByte, Unknown:
		return true
	default:
		return false
	}
}

// IsNumericType reports whether this VR's value is a fixed-width numeric
// array (US/UL/SS/SL/FL/FD, or the OW/OF bulk arrays).
func (v VR) IsNumericType() bool {
	switch v {
	case UnsignedShort, UnsignedLong, SignedShort, SignedLong,
		FloatingPointSingle, FloatingPointDouble, OtherWord, OtherFloat, OtherByteOrWord:
		return true
	default:
		return false
	}
}

// ElementWidth returns the byte width of a single array element for
// numeric VRs, or 0 if the VR has no fixed element width (string/binary/SQ).
func (v VR) ElementWidth() int {
	switch v {
	case UnsignedShort, SignedShort, OtherWord:
		return 2
	case UnsignedLong, SignedLong, FloatingPointSingle, AttributeTag:
		return 4
	case FloatingPointDouble:
		return 8
	default:
		return 0
	}
}
