package vm

// captureUpvalue finds or creates the open Upvalue for stack slot
// index. The VM's openUpvalues list is kept sorted by
// descending StackIndex, so both capture and close are linear in the
// number of captures involved. Returning an existing Upvalue when one
// already targets index is what makes two sibling closures that capture
// the same local share mutations.
func (v *VM) captureUpvalue(index int) *ObjUpvalueData {
	var prev *ObjUpvalueData
	cur := v.openUpvalues

	for cur != nil && cur.StackIndex > index {
		prev = cur
		cur = cur.Next
	}
	if cur != nil && cur.StackIndex == index {
		return cur
	}

	created := v.NewUpvalue(index)
	created.Next = cur
	if prev == nil {
		v.openUpvalues = created
	} else {
		prev.Next = created
	}
	return created
}

// closeUpvalues closes every open upvalue whose StackIndex is at or
// above lastIndex, copying the live stack value into the upvalue's own
// Closed cell and unlinking it from the open list. Triggered by
// CLOSE_UPVALUE and by every RETURN against frame.slots.
func (v *VM) closeUpvalues(lastIndex int) {
	for v.openUpvalues != nil && v.openUpvalues.StackIndex >= lastIndex {
		upvalue := v.openUpvalues
		upvalue.close(v)
		v.openUpvalues = upvalue.Next
	}
}
