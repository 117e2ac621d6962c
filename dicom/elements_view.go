package dicom

import (
	"fmt"
	"io"
	"strings"

	"github.com/dcmgo/dcmgo/dicom/element"
	"github.com/dcmgo/dcmgo/dicom/tag"
	"github.com/dcmgo/dcmgo/dicom/value"
	"github.com/dcmgo/dcmgo/dicom/vr"
)

// ElementsView is a read-only lookup and textual-dump layer over a parsed
// ElementMap, per spec.md §4.6.
type ElementsView struct {
	elements *ElementMap
	dict     *tag.Dictionary
}

// NewElementsView constructs a view over elements, using dict for keyword
// resolution (GetByName, dump keywords) and Keyword rendering.
func NewElementsView(elements *ElementMap, dict *tag.Dictionary) *ElementsView {
	if dict == nil {
		dict = tag.Default()
	}
	return &ElementsView{elements: elements, dict: dict}
}

// Row is one line of DumpToTable's output.
type Row struct {
	Name    string
	Group   string
	Element string
	VR      string
	VL      string
	Value   string
}

// GetByKey looks up by canonical key ("xGGGGEEEE"). If the element exists
// and its value has exactly one component and asArray is false, the
// unwrapped scalar component is returned; otherwise the full list of
// components is returned. Returns nil if the key is absent.
func (v *ElementsView) GetByKey(key string, asArray bool) any {
	el, ok := v.elements.Get(key)
	if !ok {
		return nil
	}
	return unwrapValue(el.Value, asArray)
}

// GetByGroupElement is a convenience wrapper over GetByKey using
// (group, element) instead of a pre-formatted key.
func (v *ElementsView) GetByGroupElement(group, elementNo uint16, asArray bool) any {
	return v.GetByKey(tag.New(group, elementNo).Key(), asArray)
}

// GetByName resolves keyword to a tag via a linear dictionary scan, then
// looks it up. Returns nil if the keyword is unknown or the tag is absent.
func (v *ElementsView) GetByName(keyword string, asArray bool) any {
	t, _, ok := v.dict.FindByKeyword(keyword)
	if !ok {
		return nil
	}
	return v.GetByKey(t.Key(), asArray)
}

func unwrapValue(val value.Value, asArray bool) any {
	components := componentStrings(val)
	if !asArray && len(components) == 1 {
		return components[0]
	}
	return components
}

// componentStrings renders a value's components as individual strings,
// mirroring the backslash-separated/array shape DICOM values take.
func componentStrings(val value.Value) []string {
	switch tv := val.(type) {
	case *value.Strings:
		return tv.Cleaned()
	case *value.Tags:
		return tv.Strings()
	case nil:
		return nil
	default:
		s := val.String()
		if s == "" {
			return []string{}
		}
		return strings.Split(s, "\\")
	}
}

// DumpToTable renders one Row per element, eliding the pixel data value to
// "...", per spec.md §4.6.
func (v *ElementsView) DumpToTable() []Row {
	rows := make([]Row, 0, v.elements.Len())
	for _, el := range v.elements.Elements() {
		rows = append(rows, v.toRow(el))
	}
	return rows
}

func (v *ElementsView) toRow(el *element.Element) Row {
	valueStr := ""
	if el.Tag.Equals(pixelDataTag) {
		valueStr = "..."
	} else if el.Value != nil {
		valueStr = el.Value.String()
	}
	return Row{
		Name:    el.Keyword(v.dict),
		Group:   fmt.Sprintf("%04X", el.Tag.Group),
		Element: fmt.Sprintf("%04X", el.Tag.Element),
		VR:      el.VR.String(),
		VL:      el.VL.String(),
		Value:   valueStr,
	}
}

// Dump renders the full textual dump as a string: one line per element
// (plus the synthesized pseudo-entries), with no header line before the
// first element.
func (v *ElementsView) Dump() string {
	var sb strings.Builder
	_ = v.DumpToWriter(&sb)
	return sb.String()
}

// DumpToWriter renders the line-oriented textual dump described in
// spec.md §4.6:
//
//	(gggg,eeee) VR <value-or-summary>                  #  VL, count keyword
//
// with the "#" column right-aligned to column 55 and VL right-aligned to
// width 3. Sequences recurse with 2-space indent per level, synthesizing
// "(Item with ...)" and "(SequenceDelimitationItem)" pseudo-entries. Pixel
// sequences recurse with fragments rendered as "pi" and a closing
// sequence-delimitation pseudo-entry.
func (v *ElementsView) DumpToWriter(w io.Writer) error {
	for _, el := range v.elements.Elements() {
		if err := v.dumpElement(w, el, 0); err != nil {
			return err
		}
	}
	return nil
}

const dumpHashColumn = 55

func (v *ElementsView) dumpElement(w io.Writer, el *element.Element, depth int) error {
	indent := strings.Repeat("  ", depth)

	switch val := el.Value.(type) {
	case *element.Items:
		if err := v.writeDumpLine(w, indent, el.Tag.String(), el.VR.String(), fmt.Sprintf("<sequence: %d item(s)>", val.Len()), el.VL.String(), val.Len(), el.Keyword(v.dict)); err != nil {
			return err
		}
		for i := 0; i < val.Len(); i++ {
			if err := v.dumpItem(w, val.At(i), depth+1, i); err != nil {
				return err
			}
		}
		return v.writeDelimiterLine(w, indent, "SequenceDelimitationItem")

	case *element.Fragments:
		if err := v.writeDumpLine(w, indent, el.Tag.String(), el.VR.String(), "...", el.VL.String(), val.Len(), el.Keyword(v.dict)); err != nil {
			return err
		}
		for i := 0; i < val.Len(); i++ {
			frag := val.At(i)
			if err := v.writeDumpLine(w, indent+"  ", frag.Tag.String(), vr.PixelItem.String(), frag.Value.String(), frag.VL.String(), 1, ""); err != nil {
				return err
			}
		}
		return v.writeDelimiterLine(w, indent, "SequenceDelimitationItem")

	default:
		valueStr := ""
		if el.Value != nil {
			valueStr = el.Value.String()
		}
		return v.writeDumpLine(w, indent, el.Tag.String(), el.VR.String(), valueStr, el.VL.String(), componentCount(el.Value), el.Keyword(v.dict))
	}
}

func (v *ElementsView) dumpItem(w io.Writer, it *element.Item, depth int, index int) error {
	indent := strings.Repeat("  ", depth)
	lengthKind := "explicit"
	if it.VL.IsUndefined() {
		lengthKind = "undefined"
	}
	header := fmt.Sprintf("(Item with %s length #=%d)", lengthKind, it.Len())
	if _, err := fmt.Fprintf(w, "%s%s\n", indent, header); err != nil {
		return err
	}
	for _, key := range it.Keys() {
		child, _ := it.Get(key)
		if err := v.dumpElement(w, child, depth+1); err != nil {
			return err
		}
	}
	return v.writeDelimiterLine(w, indent, "ItemDelimitationItem")
}

func componentCount(val value.Value) int {
	if val == nil {
		return 0
	}
	return len(componentStrings(val))
}

func (v *ElementsView) writeDelimiterLine(w io.Writer, indent, name string) error {
	left := fmt.Sprintf("%s(%s) %s", indent, name, vr.NotApplicable.String())
	return v.writeLinePadded(w, left, "0", 0, "")
}

func (v *ElementsView) writeDumpLine(w io.Writer, indent, tagStr, vrStr, valueStr, vl string, count int, keyword string) error {
	left := fmt.Sprintf("%s%s %s %s", indent, tagStr, vrStr, valueStr)
	return v.writeLinePadded(w, left, vl, count, keyword)
}

// writeLinePadded right-pads left to dumpHashColumn, writes a literal "#",
// then "VL, count keyword", matching spec.md §4.6's column-55 alignment and
// width-3 right-aligned VL.
func (v *ElementsView) writeLinePadded(w io.Writer, left, vl string, count int, keyword string) error {
	padded := left
	if len(padded) < dumpHashColumn {
		padded += strings.Repeat(" ", dumpHashColumn-len(padded))
	}
	line := fmt.Sprintf("%s#  %3s, %d %s", padded, vl, count, keyword)
	_, err := fmt.Fprintln(w, strings.TrimRight(line, " "))
	return err
}
