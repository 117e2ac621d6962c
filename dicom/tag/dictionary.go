package tag

import (
	"sync"

	"github.com/dcmgo/dcmgo/dicom/vr"
)

// defaultEntries is a hand-maintained subset of the DICOM Part 6 data
// dictionary covering File Meta Information, the Patient/Study/Series/
// Image IEs, and the pixel-data-adjacent tags the decoder itself consults
// (BitsAllocated, Rows, Columns, PixelRepresentation, ...).
//
// A production deployment injects the full dictionary (generated from
// Part 6) via NewDictionary; that generation step is out of scope for this
// module per spec.md §1.
var defaultEntries = map[Tag]Info{
	New(0x0002, 0x0000): {VR: vr.UnsignedLong, VM: "1", Keyword: "FileMetaInformationGroupLength", Name: "File Meta Information Group Length"},
	New(0x0002, 0x0001): {VR: vr.OtherByte, VM: "1", Keyword: "FileMetaInformationVersion", Name: "File Meta Information Version"},
	New(0x0002, 0x0002): {VR: vr.UniqueIdentifier, VM: "1", Keyword: "MediaStorageSOPClassUID", Name: "Media Storage SOP Class UID"},
	New(0x0002, 0x0003): {VR: vr.UniqueIdentifier, VM: "1", Keyword: "MediaStorageSOPInstanceUID", Name: "Media Storage SOP Instance UID"},
	New(0x0002, 0x0010): {VR: vr.UniqueIdentifier, VM: "1", Keyword: "TransferSyntaxUID", Name: "Transfer Syntax UID"},
	New(0x0002, 0x0012): {VR: vr.UniqueIdentifier, VM: "1", Keyword: "ImplementationClassUID", Name: "Implementation Class UID"},
	New(0x0002, 0x0013): {VR: vr.ShortString, VM: "1", Keyword: "ImplementationVersionName", Name: "Implementation Version Name"},

	New(0x0008, 0x0005): {VR: vr.CodeString, VM: "1-n", Keyword: "SpecificCharacterSet", Name: "Specific Character Set"},
	New(0x0008, 0x0016): {VR: vr.UniqueIdentifier, VM: "1", Keyword: "SOPClassUID", Name: "SOP Class UID"},
	New(0x0008, 0x0018): {VR: vr.UniqueIdentifier, VM: "1", Keyword: "SOPInstanceUID", Name: "SOP Instance UID"},
	New(0x0008, 0x0020): {VR: vr.Date, VM: "1", Keyword: "StudyDate", Name: "Study Date"},
	New(0x0008, 0x0030): {VR: vr.Time, VM: "1", Keyword: "StudyTime", Name: "Study Time"},
	New(0x0008, 0x0060): {VR: vr.CodeString, VM: "1", Keyword: "Modality", Name: "Modality"},
	New(0x0008, 0x0070): {VR: vr.LongString, VM: "1", Keyword: "Manufacturer", Name: "Manufacturer"},
	New(0x0008, 0x0090): {VR: vr.PersonName, VM: "1", Keyword: "ReferringPhysicianName", Name: "Referring Physician's Name"},
	New(0x0008, 0x0100): {VR: vr.ShortString, VM: "1", Keyword: "CodeValue", Name: "Code Value"},
	New(0x0008, 0x103E): {VR: vr.LongString, VM: "1", Keyword: "SeriesDescription", Name: "Series Description"},

	New(0x0010, 0x0010): {VR: vr.PersonName, VM: "1", Keyword: "PatientName", Name: "Patient's Name"},
	New(0x0010, 0x0020): {VR: vr.LongString, VM: "1", Keyword: "PatientID", Name: "Patient ID"},
	New(0x0010, 0x0030): {VR: vr.Date, VM: "1", Keyword: "PatientBirthDate", Name: "Patient's Birth Date"},
	New(0x0010, 0x0040): {VR: vr.CodeString, VM: "1", Keyword: "PatientSex", Name: "Patient's Sex"},

	New(0x0018, 0x0050): {VR: vr.DecimalString, VM: "1", Keyword: "SliceThickness", Name: "Slice Thickness"},
	New(0x0018, 0x1000): {VR: vr.LongString, VM: "1", Keyword: "DeviceSerialNumber", Name: "Device Serial Number"},

	New(0x0020, 0x000D): {VR: vr.UniqueIdentifier, VM: "1", Keyword: "StudyInstanceUID", Name: "Study Instance UID"},
	New(0x0020, 0x000E): {VR: vr.UniqueIdentifier, VM: "1", Keyword: "SeriesInstanceUID", Name: "Series Instance UID"},
	New(0x0020, 0x0011): {VR: vr.IntegerString, VM: "1", Keyword: "SeriesNumber", Name: "Series Number"},
	New(0x0020, 0x0013): {VR: vr.IntegerString, VM: "1", Keyword: "InstanceNumber", Name: "Instance Number"},
	New(0x0020, 0x0032): {VR: vr.DecimalString, VM: "3", Keyword: "ImagePositionPatient", Name: "Image Position (Patient)"},
	New(0x0020, 0x0037): {VR: vr.DecimalString, VM: "6", Keyword: "ImageOrientationPatient", Name: "Image Orientation (Patient)"},

	New(0x0028, 0x0002): {VR: vr.UnsignedShort, VM: "1", Keyword: "SamplesPerPixel", Name: "Samples per Pixel"},
	New(0x0028, 0x0004): {VR: vr.CodeString, VM: "1", Keyword: "PhotometricInterpretation", Name: "Photometric Interpretation"},
	New(0x0028, 0x0010): {VR: vr.UnsignedShort, VM: "1", Keyword: "Rows", Name: "Rows"},
	New(0x0028, 0x0011): {VR: vr.UnsignedShort, VM: "1", Keyword: "Columns", Name: "Columns"},
	New(0x0028, 0x0030): {VR: vr.DecimalString, VM: "2", Keyword: "PixelSpacing", Name: "Pixel Spacing"},
	New(0x0028, 0x0100): {VR: vr.UnsignedShort, VM: "1", Keyword: "BitsAllocated", Name: "Bits Allocated"},
	New(0x0028, 0x0101): {VR: vr.UnsignedShort, VM: "1", Keyword: "BitsStored", Name: "Bits Stored"},
	New(0x0028, 0x0102): {VR: vr.UnsignedShort, VM: "1", Keyword: "HighBit", Name: "High Bit"},
	New(0x0028, 0x0103): {VR: vr.UnsignedShort, VM: "1", Keyword: "PixelRepresentation", Name: "Pixel Representation"},
	New(0x0028, 0x1050): {VR: vr.DecimalString, VM: "1-n", Keyword: "WindowCenter", Name: "Window Center"},
	New(0x0028, 0x1051): {VR: vr.DecimalString, VM: "1-n", Keyword: "WindowWidth", Name: "Window Width"},
	New(0x0028, 0x1052): {VR: vr.DecimalString, VM: "1", Keyword: "RescaleIntercept", Name: "Rescale Intercept"},
	New(0x0028, 0x1053): {VR: vr.DecimalString, VM: "1", Keyword: "RescaleSlope", Name: "Rescale Slope"},

	New(0x0040, 0x0100): {VR: vr.SequenceOfItems, VM: "1", Keyword: "ScheduledProcedureStepSequence", Name: "Scheduled Procedure Step Sequence"},
	New(0x0040, 0x0275): {VR: vr.SequenceOfItems, VM: "1", Keyword: "RequestAttributesSequence", Name: "Request Attributes Sequence"},
	New(0x0040, 0xA043): {VR: vr.SequenceOfItems, VM: "1", Keyword: "ConceptNameCodeSequence", Name: "Concept Name Code Sequence"},

	New(0x7FE0, 0x0010): {VR: vr.OtherByteOrWord, VM: "1", Keyword: "PixelData", Name: "Pixel Data"},
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the process-lifetime shared dictionary built from
// defaultEntries. It is safe to share across goroutines: Dictionary is
// read-only after construction, satisfying spec.md §5's concurrency model.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		defaultDict = NewDictionary(defaultEntries)
	})
	return defaultDict
}
