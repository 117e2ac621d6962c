package dicom

import "github.com/dcmgo/dcmgo/dicom/element"

// ElementMap is an insertion-order-preserving tag.Key() -> *element.Element
// mapping, per spec.md §3: "Keys are unique (a duplicate tag overwrites —
// the source's behavior ...). Iteration order of the dump must be
// insertion order (the order tags appear in the file)."
//
// A duplicate Add keeps the element's original position in the order and
// replaces only the stored value, matching the source's map-assignment
// semantics rather than moving the key to the end.
type ElementMap struct {
	order []string
	byKey map[string]*element.Element
}

// NewElementMap constructs an empty ElementMap.
func NewElementMap() *ElementMap {
	return &ElementMap{byKey: make(map[string]*element.Element)}
}

// Add inserts el under its tag key, or overwrites the existing entry at its
// original position if the key was already present.
func (m *ElementMap) Add(el *element.Element) {
	key := el.Tag.Key()
	if _, exists := m.byKey[key]; !exists {
		m.order = append(m.order, key)
	}
	m.byKey[key] = el
}

// Get looks up an element by its canonical key ("xGGGGEEEE").
func (m *ElementMap) Get(key string) (*element.Element, bool) {
	el, ok := m.byKey[key]
	return el, ok
}

// Keys returns tag keys in insertion (wire) order.
func (m *ElementMap) Keys() []string {
	return m.order
}

// Len returns the number of distinct elements.
func (m *ElementMap) Len() int {
	return len(m.order)
}

// Elements returns the stored elements in insertion order.
func (m *ElementMap) Elements() []*element.Element {
	out := make([]*element.Element, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.byKey[k])
	}
	return out
}
