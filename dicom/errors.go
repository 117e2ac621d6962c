// Package dicom implements a Part-10 file parser: preamble and File Meta
// Information handling, Transfer Syntax classification, the byte-level
// Data Element decoder, and a read-only view over the decoded element map.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html
package dicom

import "errors"

// ErrNotDicom indicates the buffer does not start with a valid 128-byte
// preamble followed by the "DICM" prefix at offset 128.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
var ErrNotDicom = errors.New("not a DICOM file: missing or invalid DICM prefix")

// ErrTruncatedBuffer indicates a read ran past the end of the buffer.
var ErrTruncatedBuffer = errors.New("truncated buffer")

// ErrTruncatedElement indicates a Data Element's declared length exceeds
// the bytes remaining in the buffer.
var ErrTruncatedElement = errors.New("truncated element")

// ErrMalformedFraming indicates a delimiter was encountered outside the
// nesting it is valid in, or recursion exceeded the fixed depth limit
// (maxSequenceDepth), per spec.md §9's design note on bounding sequence
// nesting.
var ErrMalformedFraming = errors.New("malformed sequence/item framing")

// ErrUnsupportedTransferSyntax indicates the declared Transfer Syntax UID
// is recognized but explicitly rejected (deflated, JPEG-LS, MPEG2, RLE) or
// is not recognized at all.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
var ErrUnsupportedTransferSyntax = errors.New("unsupported transfer syntax")

// ErrMissingTransferSyntax indicates (0002,0010) was absent from the File
// Meta Information group.
var ErrMissingTransferSyntax = errors.New("missing transfer syntax UID")
