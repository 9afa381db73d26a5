package vm

import "strings"

// ObjListData is a growable, contiguous buffer of Values. Capacity
// grows geometrically — 0 → 8 → 2× thereafter — so BUILD_LIST/append
// amortize cleanly.
type ObjListData struct {
	obj   *Obj
	Items []Value
}

// NewList allocates an empty list.
func (v *VM) NewList() *ObjListData {
	l := &ObjListData{}
	l.obj = v.allocate(&Obj{Type: ObjListType, list: l})
	return l
}

// Value wraps l back into the Value referencing its heap object.
func (l *ObjListData) Value() Value { return ObjVal(l.obj) }

// Count returns the number of live elements.
func (l *ObjListData) Count() int { return len(l.Items) }

// ValidIndex reports whether i is a valid element index (0 ≤ i < count).
func (l *ObjListData) ValidIndex(i int) bool {
	return i >= 0 && i < len(l.Items)
}

// Get returns the element at i. Callers must have checked ValidIndex.
func (l *ObjListData) Get(i int) Value { return l.Items[i] }

// Set overwrites the element at i. Callers must have checked ValidIndex.
func (l *ObjListData) Set(i int, val Value) { l.Items[i] = val }

// Append grows the list by one element, following a 0→8→2× geometric
// growth curve. Go's append already amortizes growth, but we size the
// initial grow explicitly to 8 so small lists match that curve.
func (l *ObjListData) Append(val Value) {
	if len(l.Items) == cap(l.Items) {
		newCap := 8
		if cap(l.Items) > 0 {
			newCap = cap(l.Items) * 2
		}
		grown := make([]Value, len(l.Items), newCap)
		copy(grown, l.Items)
		l.Items = grown
	}
	l.Items = append(l.Items, val)
}

// Delete removes the element at i, shifting later elements down by one.
func (l *ObjListData) Delete(i int) {
	copy(l.Items[i:], l.Items[i+1:])
	l.Items = l.Items[:len(l.Items)-1]
}

// String renders the list as "[e1, e2, ...]".
func (l *ObjListData) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range l.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteByte(']')
	return b.String()
}
