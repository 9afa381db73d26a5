package vm

// ObjUpvalueData is a shared mutable cell. While Open, the cell's value
// lives at v.stack[StackIndex]; once closed, it owns its value directly
// in Closed. The transition is one-way (open→closed). Using an index
// rather than a raw pointer into the stack sidesteps Go's lack of
// pointer arithmetic/ordering while preserving the same "address"
// ordering needed for sorting the open-upvalues list.
type ObjUpvalueData struct {
	obj        *Obj
	StackIndex int
	Open       bool
	Closed     Value
	Next       *ObjUpvalueData
}

// NewUpvalue allocates an open upvalue pointing at stackIndex.
func (v *VM) NewUpvalue(stackIndex int) *ObjUpvalueData {
	u := &ObjUpvalueData{StackIndex: stackIndex, Open: true}
	u.obj = v.allocate(&Obj{Type: ObjUpvalueType, upvalue: u})
	return u
}

// Value wraps u back into the Value referencing its heap object.
func (u *ObjUpvalueData) Value() Value { return ObjVal(u.obj) }

// Get reads the upvalue's current value.
func (u *ObjUpvalueData) Get(v *VM) Value {
	if u.Open {
		return v.stack[u.StackIndex]
	}
	return u.Closed
}

// Set overwrites the upvalue's current value.
func (u *ObjUpvalueData) Set(v *VM, val Value) {
	if u.Open {
		v.stack[u.StackIndex] = val
		return
	}
	u.Closed = val
}

// close promotes an open upvalue: it copies the current stack value into
// the inline Closed slot and marks it closed. Called from closeUpvalues.
func (u *ObjUpvalueData) close(v *VM) {
	u.Closed = v.stack[u.StackIndex]
	u.Open = false
}
