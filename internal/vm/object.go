package vm

// ObjType tags the concrete variant stored behind an Obj header.
type ObjType uint8

const (
	// ObjString tags an interned, immutable byte string.
	ObjString ObjType = iota
	// ObjFunctionType tags a compiled function (arity, chunk, name).
	ObjFunctionType
	// ObjClosureType tags a function paired with its captured upvalues.
	ObjClosureType
	// ObjUpvalueType tags an open-or-closed shared mutable cell.
	ObjUpvalueType
	// ObjListType tags a growable list of Values.
	ObjListType
	// ObjNativeType tags a built-in function implemented in Go.
	ObjNativeType
)

// Obj is the header every heap allocation carries. Mark is reserved for
// a future tracing collector and is unused by this single-owner
// implementation; Next links the object into the VM's
// global allocation list so that every live object is reachable from
// vm.objects between allocation and teardown.
type Obj struct {
	Type ObjType
	Mark bool
	Next *Obj

	str      *ObjStringData
	fn       *ObjFunctionData
	closure  *ObjClosureData
	upvalue  *ObjUpvalueData
	list     *ObjListData
	native   *ObjNativeData
}

// AsString returns the string payload. Callers must have checked Type.
func (o *Obj) AsString() *ObjStringData { return o.str }

// AsFunction returns the function payload. Callers must have checked Type.
func (o *Obj) AsFunction() *ObjFunctionData { return o.fn }

// AsClosure returns the closure payload. Callers must have checked Type.
func (o *Obj) AsClosure() *ObjClosureData { return o.closure }

// AsUpvalue returns the upvalue payload. Callers must have checked Type.
func (o *Obj) AsUpvalue() *ObjUpvalueData { return o.upvalue }

// AsList returns the list payload. Callers must have checked Type.
func (o *Obj) AsList() *ObjListData { return o.list }

// AsNative returns the native payload. Callers must have checked Type.
func (o *Obj) AsNative() *ObjNativeData { return o.native }

// String renders the object the way printObject does in the reference
// implementation (object.c): functions and closures print as <fn NAME>,
// or <script> when they have no name (the top-level script and anonymous
// fun expressions alike), natives as <native fn>, strings
// print their raw bytes, upvalues print a fixed placeholder.
func (o *Obj) String() string {
	switch o.Type {
	case ObjString:
		return o.str.Chars
	case ObjFunctionType:
		return functionLabel(o.fn.Name)
	case ObjClosureType:
		return functionLabel(o.closure.Function.Name)
	case ObjNativeType:
		return "<native fn>"
	case ObjUpvalueType:
		return "upvalue"
	case ObjListType:
		return o.list.String()
	default:
		return "<obj>"
	}
}

func functionLabel(name *ObjStringData) string {
	if name == nil {
		return "<script>"
	}
	return "<fn " + name.Chars + ">"
}

// allocate pushes a freshly built object onto the VM's allocation list,
// so every live heap object is reachable from vm.objects between
// allocation and free, and returns it.
func (v *VM) allocate(o *Obj) *Obj {
	o.Next = v.objects
	v.objects = o
	return o
}
