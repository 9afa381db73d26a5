package vm

// NativeResult is the contract a native implementation returns: on
// success Result holds the value to push; on error IsError is true and
// Result holds a String describing the cause, which the VM surfaces as
// a runtime error prefixed "Native error: ".
type NativeResult struct {
	IsError bool
	Result  Value
}

// NativeOK wraps a successful native result.
func NativeOK(v Value) NativeResult { return NativeResult{Result: v} }

// NativeFn is a built-in function implemented in Go. argCount is the
// number of arguments pushed; args is the base of those arguments on
// the value stack (args[0] is the first argument, not the callee).
// Natives call back into VM.NativeErr to build an error result, since
// the error message must be interned the same as any other string.
type NativeFn func(v *VM, argCount int, args []Value) NativeResult

// NativeErr interns msg and wraps it as a failing NativeResult.
func (v *VM) NativeErr(msg string) NativeResult {
	return NativeResult{IsError: true, Result: v.CopyString(msg)}
}

// ObjNativeData is an immutable native function: its arity (−1 =
// variadic, waives the argument-count check) and its Go implementation.
type ObjNativeData struct {
	obj      *Obj
	Arity    int
	Function NativeFn
	Name     string
}

// NewNative allocates a native function object.
func (v *VM) NewNative(name string, arity int, fn NativeFn) *ObjNativeData {
	n := &ObjNativeData{Arity: arity, Function: fn, Name: name}
	n.obj = v.allocate(&Obj{Type: ObjNativeType, native: n})
	return n
}

// Value wraps n back into the Value referencing its heap object.
func (n *ObjNativeData) Value() Value { return ObjVal(n.obj) }
