package vm

// ObjClosureData pairs a Function with the Upvalues captured at the
// instant of its creation. Upvalue slots are written once, in order,
// during the CLOSURE opcode; the Upvalue objects they point at keep
// mutating after that.
type ObjClosureData struct {
	obj      *Obj
	Function *ObjFunctionData
	Upvalues []*ObjUpvalueData
}

// NewClosure allocates a Closure over fn with an upvalue slot array
// sized to fn.UpvalueCount, all nil until CLOSURE fills them in.
func (v *VM) NewClosure(fn *ObjFunctionData) *ObjClosureData {
	c := &ObjClosureData{
		Function: fn,
		Upvalues: make([]*ObjUpvalueData, fn.UpvalueCount),
	}
	c.obj = v.allocate(&Obj{Type: ObjClosureType, closure: c})
	return c
}

// Value wraps c back into the Value referencing its heap object.
func (c *ObjClosureData) Value() Value { return ObjVal(c.obj) }
