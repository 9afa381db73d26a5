package vm

// buildList implements BUILD_LIST: pops the top n values
// left-to-right as they were pushed into a fresh List, preserving
// insertion order, and pushes the list.
func (v *VM) buildList(n int) *RuntimeError {
	list := v.NewList()
	base := v.stackTop - n
	for i := 0; i < n; i++ {
		list.Append(v.stack[base+i])
	}
	v.stackTop = base
	v.push(list.Value())
	return nil
}

// indexSubscr implements INDEX_SUBSCR: pops index then
// list, validates, pushes the element.
func (v *VM) indexSubscr() *RuntimeError {
	indexVal := v.pop()
	listVal := v.pop()

	if !listVal.IsList() {
		return v.runtimeError("Invalid type to index into.")
	}
	list := listVal.AsList()

	if !indexVal.IsNumber() {
		return v.runtimeError("List index is not a number.")
	}
	index, ok := numberToIndex(indexVal.AsNumber())
	if !ok || !list.ValidIndex(index) {
		return v.runtimeError("List index out of range.")
	}

	v.push(list.Get(index))
	return nil
}

// storeSubscr implements STORE_SUBSCR: pops value, index,
// list; validates identically; writes the element; pushes the stored
// value so subscript assignment is an expression.
func (v *VM) storeSubscr() *RuntimeError {
	item := v.pop()
	indexVal := v.pop()
	listVal := v.pop()

	if !listVal.IsList() {
		return v.runtimeError("Cannot store value in a non-list.")
	}
	list := listVal.AsList()

	if !indexVal.IsNumber() {
		return v.runtimeError("List index is not a number.")
	}
	index, ok := numberToIndex(indexVal.AsNumber())
	if !ok || !list.ValidIndex(index) {
		return v.runtimeError("Invalid list index.")
	}

	list.Set(index, item)
	v.push(item)
	return nil
}
