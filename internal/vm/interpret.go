package vm

import "fmt"

// Compiler is the interface a compiler front-end satisfies: Compile
// turns source bytes into a top-level Function, or reports compile
// errors.
type Compiler interface {
	Compile(v *VM, source []byte) (*ObjFunctionData, []error)
}

// Interpret compiles source with compiler and, if compilation succeeds,
// runs it. Compile errors are written, one per line, to the VM's
// diagnostic stream. On success it wraps the compiled top-level
// Function in a Closure, pushes it as frame 0, and runs until RETURN at
// frame 0 or a runtime error.
func (v *VM) Interpret(compiler Compiler, source []byte) InterpretResult {
	fn, errs := compiler.Compile(v, source)
	if len(errs) > 0 || fn == nil {
		for _, e := range errs {
			fmt.Fprintln(v.stderr, e)
		}
		return InterpretCompileError
	}
	return v.Run(fn)
}

// Run executes an already-compiled top-level Function, skipping the
// compile step. Exposed separately so callers that build chunks
// directly — tests, or a disassembler-and-run CLI flow — don't need a
// Compiler.
func (v *VM) Run(fn *ObjFunctionData) InterpretResult {
	v.push(fn.Value())
	closure := v.NewClosure(fn)
	v.pop()
	v.push(closure.Value())
	if err := v.call(closure, 0); err != nil {
		return InterpretRuntimeError
	}
	if err := v.run(); err != nil {
		return InterpretRuntimeError
	}
	return InterpretOK
}
