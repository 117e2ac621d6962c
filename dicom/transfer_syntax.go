package dicom

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// TransferSyntax describes the encoding convention governing a dataset:
// endianness, VR explicitness, and compression/rejection status.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
type TransferSyntax struct {
	UID        string
	Name       string
	ByteOrder  binary.ByteOrder
	ExplicitVR bool
	Compressed bool // pixel data is encapsulated (JPEG/JPEG2000 families)
}

type tsEntry struct {
	name       string
	explicitVR bool
	bigEndian  bool
	compressed bool
	rejected   bool
}

// knownTransferSyntaxes is the classification table from spec.md §4.2.
var knownTransferSyntaxes = map[string]tsEntry{
	"1.2.840.10008.1.2":      {name: "Implicit VR Little Endian", explicitVR: false},
	"1.2.840.10008.1.2.1":    {name: "Explicit VR Little Endian", explicitVR: true},
	"1.2.840.10008.1.2.2":    {name: "Explicit VR Big Endian", explicitVR: true, bigEndian: true},
	"1.2.840.10008.1.2.1.99": {name: "Deflated Explicit VR Little Endian", rejected: true},
	"1.2.840.10008.1.2.4.50": {name: "JPEG Baseline (Process 1)", explicitVR: true, compressed: true},
	"1.2.840.10008.1.2.4.51": {name: "JPEG Baseline (Processes 2 & 4)", explicitVR: true, compressed: true},
	"1.2.840.10008.1.2.4.57": {name: "JPEG Lossless, Non-Hierarchical, First-Order Prediction", explicitVR: true, compressed: true},
	"1.2.840.10008.1.2.4.70": {name: "JPEG Lossless, Non-Hierarchical (Process 14)", explicitVR: true, compressed: true},
	"1.2.840.10008.1.2.4.90": {name: "JPEG 2000 Image Compression (Lossless Only)", explicitVR: true, compressed: true},
	"1.2.840.10008.1.2.4.91": {name: "JPEG 2000 Image Compression", explicitVR: true, compressed: true},
	"1.2.840.10008.1.2.5":    {name: "RLE Lossless", rejected: true},
	"1.2.840.10008.1.2.4.100": {name: "MPEG2", rejected: true},
}

// isJPEGLSUID reports whether uid is in the JPEG-LS family
// (1.2.840.10008.1.2.4.8x), which this parser rejects.
func isJPEGLSUID(uid string) bool {
	return strings.HasPrefix(uid, "1.2.840.10008.1.2.4.8")
}

// isJPEGFamilyUID reports whether uid is in the broader JPEG
// (.4.5x/.4.6x) family, used to decide the intended fallback-rejection
// semantics below.
func isJPEGFamilyUID(uid string) bool {
	return strings.HasPrefix(uid, "1.2.840.10008.1.2.4.5") || strings.HasPrefix(uid, "1.2.840.10008.1.2.4.6")
}

// ClassifyTransferSyntax trims and zero-width-space-strips uid, then
// classifies it per the table in spec.md §4.2.
//
// spec.md §9 flags a suspected source bug: the original's
// "isJpegNonSupportedTransferSyntax" called its baseline/lossless
// predicates with no arguments, so they always evaluated false and the
// intended "reject the rest of the .4.5x/.4.6x JPEG family except the
// explicitly-supported baseline/lossless UIDs" rule never fired. This
// implements the intended semantics: any .4.5x/.4.6x UID not explicitly
// listed as supported is rejected, same as JPEG-LS.
func ClassifyTransferSyntax(uid string) (*TransferSyntax, error) {
	uid = strings.TrimRight(strings.TrimSpace(uid), "​")

	if entry, ok := knownTransferSyntaxes[uid]; ok {
		if entry.rejected {
			return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedTransferSyntax, uid, entry.name)
		}
		order := binary.ByteOrder(binary.LittleEndian)
		if entry.bigEndian {
			order = binary.BigEndian
		}
		return &TransferSyntax{
			UID:        uid,
			Name:       entry.name,
			ByteOrder:  order,
			ExplicitVR: entry.explicitVR,
			Compressed: entry.compressed,
		}, nil
	}

	if isJPEGLSUID(uid) || isJPEGFamilyUID(uid) {
		return nil, fmt.Errorf("%w: %s (unsupported JPEG family member)", ErrUnsupportedTransferSyntax, uid)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedTransferSyntax, uid)
}

// FileMetaTransferSyntax is the fixed Explicit VR Little Endian encoding
// always used for the File Meta Information group (0x0002), per spec.md
// §3's invariant, regardless of what the dataset's own Transfer Syntax
// UID later turns out to be.
func FileMetaTransferSyntax() *TransferSyntax {
	return &TransferSyntax{
		UID:        "1.2.840.10008.1.2.1",
		Name:       "Explicit VR Little Endian",
		ByteOrder:  binary.LittleEndian,
		ExplicitVR: true,
	}
}
