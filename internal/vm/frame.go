package vm

// FramesMax bounds call-frame depth. Unbounded recursion raises
// "Stack overflow." after exactly 64 nested calls.
const FramesMax = 64

// StackMax bounds value-stack depth.
const StackMax = 256

// CallFrame is one record on the call stack: which closure is running,
// where in its chunk, and where its locals begin on the value stack.
// Slots is an index into VM.stack rather than a raw pointer — Go has no
// pointer arithmetic, and the stack array never reallocates, so an
// index is exactly as stable as a raw slots pointer would be.
type CallFrame struct {
	closure *ObjClosureData
	ip      int
	slots   int
}
