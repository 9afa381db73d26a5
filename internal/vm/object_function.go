package vm

// ObjFunctionData is a compiled function: arity, declared upvalue
// count, its chunk, and an optional name. Populated once by the
// compiler and read-only thereafter.
type ObjFunctionData struct {
	obj          *Obj
	Arity        int
	UpvalueCount int
	Chunk        *Chunk
	Name         *ObjStringData
}

// NewFunction allocates an empty function ready for the compiler to
// populate (arity, upvalue descriptors, and chunk are filled in as
// compilation of its body proceeds).
func (v *VM) NewFunction() *ObjFunctionData {
	fn := &ObjFunctionData{Chunk: NewChunk()}
	fn.obj = v.allocate(&Obj{Type: ObjFunctionType, fn: fn})
	return fn
}

// Value wraps fn back into the Value referencing its heap object.
func (fn *ObjFunctionData) Value() Value { return ObjVal(fn.obj) }
