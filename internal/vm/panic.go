package vm

import (
	"fmt"
	"strings"
)

// InterpretResult is the three-way outcome interpret() returns.
type InterpretResult int

const (
	// InterpretOK means the chunk ran to completion with no error.
	InterpretOK InterpretResult = iota
	// InterpretCompileError means compile() failed before the VM ran anything.
	InterpretCompileError
	// InterpretRuntimeError means a runtime error terminated execution.
	InterpretRuntimeError
)

// TraceFrame is one line of the stack trace a runtime error prints,
// top (innermost call) to bottom.
type TraceFrame struct {
	Line     int
	FuncName string // "" for the top-level script frame
}

// RuntimeError is a runtime error: a message plus the
// stack trace captured at the moment execution stopped. Every
// RuntimeError is written to the VM's diagnostic stream when it is
// raised; Interpret and Run report only InterpretRuntimeError and do not
// hand the RuntimeError value back to their callers.
type RuntimeError struct {
	Message string
	Trace    []TraceFrame
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, f := range e.Trace {
		b.WriteByte('\n')
		if f.FuncName == "" {
			fmt.Fprintf(&b, "[line %d] in script", f.Line)
		} else {
			fmt.Fprintf(&b, "[line %d] in %s()", f.Line, f.FuncName)
		}
	}
	return b.String()
}

// captureTrace walks the frame stack top-down, decoding each frame's
// current line from its chunk's line table at the pre-advance IP offset.
func (v *VM) captureTrace() []TraceFrame {
	trace := make([]TraceFrame, 0, v.frameCount)
	for i := v.frameCount - 1; i >= 0; i-- {
		frame := &v.frames[i]
		fn := frame.closure.Function
		offset := frame.ip - 1
		if offset < 0 {
			offset = 0
		}
		line := fn.Chunk.GetLine(offset)
		name := ""
		if fn.Name != nil {
			name = fn.Name.Chars
		}
		trace = append(trace, TraceFrame{Line: line, FuncName: name})
	}
	return trace
}

// runtimeError formats msg, writes it and a stack trace to the VM's
// diagnostic stream, resets the VM's stacks and open-upvalue list, and
// returns the RuntimeError for interpret() to propagate.
func (v *VM) runtimeError(format string, args ...any) *RuntimeError {
	err := &RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Trace:   v.captureTrace(),
	}
	fmt.Fprintln(v.stderr, err.Message)
	for _, f := range err.Trace {
		if f.FuncName == "" {
			fmt.Fprintf(v.stderr, "[line %d] in script\n", f.Line)
		} else {
			fmt.Fprintf(v.stderr, "[line %d] in %s()\n", f.Line, f.FuncName)
		}
	}
	v.resetStack()
	return err
}
