package vm_test

import (
	"bytes"
	"testing"

	"github.com/emberlang/ember/internal/compiler"
	"github.com/emberlang/ember/internal/vm"
)

// run compiles and executes source against a fresh VM, returning
// stdout, stderr, and the InterpretResult.
func run(t *testing.T, source string) (string, string, vm.InterpretResult) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	v := vm.New(vm.Config{Stdout: &stdout, Stderr: &stderr})
	result := v.Interpret(compiler.New(), []byte(source))
	return stdout.String(), stderr.String(), result
}

func TestScenarioFibonacci(t *testing.T) {
	out, _, result := run(t, `func fib(n){ if (n<2) return n; return fib(n-2)+fib(n-1); } println(fib(10));`)
	if result != vm.InterpretOK {
		t.Fatalf("result = %v, want OK", result)
	}
	if out != "55\n" {
		t.Fatalf("out = %q, want %q", out, "55\n")
	}
}

func TestScenarioClosureCounter(t *testing.T) {
	out, _, result := run(t, `func makeCounter(){ let c=0; return fun(){ c=c+1; return c; }; } let k=makeCounter(); println(k()); println(k()); println(k());`)
	if result != vm.InterpretOK {
		t.Fatalf("result = %v, want OK", result)
	}
	if out != "1\n2\n3\n" {
		t.Fatalf("out = %q, want %q", out, "1\n2\n3\n")
	}
}

func TestScenarioListAppendDelete(t *testing.T) {
	out, _, result := run(t, `let xs=[10,20,30]; append(xs,40); delete(xs,0); println(xs[0]); println(xs[2]);`)
	if result != vm.InterpretOK {
		t.Fatalf("result = %v, want OK", result)
	}
	if out != "20\n40\n" {
		t.Fatalf("out = %q, want %q", out, "20\n40\n")
	}
}

func TestScenarioStringConcatEquality(t *testing.T) {
	out, _, result := run(t, `println("foo"+"bar"=="foobar");`)
	if result != vm.InterpretOK {
		t.Fatalf("result = %v, want OK", result)
	}
	if out != "true\n" {
		t.Fatalf("out = %q, want %q", out, "true\n")
	}
}

func TestScenarioUndefinedGlobalRead(t *testing.T) {
	_, stderr, result := run(t, `let a; println(a);`)
	if result != vm.InterpretRuntimeError {
		t.Fatalf("result = %v, want RuntimeError", result)
	}
	if !bytes.Contains([]byte(stderr), []byte("a")) {
		t.Fatalf("stderr = %q, want it to mention %q", stderr, "a")
	}
}

func TestScenarioStackOverflow(t *testing.T) {
	_, stderr, result := run(t, `func f(){ f(); } f();`)
	if result != vm.InterpretRuntimeError {
		t.Fatalf("result = %v, want RuntimeError", result)
	}
	if !bytes.Contains([]byte(stderr), []byte("Stack overflow.")) {
		t.Fatalf("stderr = %q, want it to mention %q", stderr, "Stack overflow.")
	}
}

func TestErrorIsolationAcrossInterpretCalls(t *testing.T) {
	var stdout, stderr bytes.Buffer
	v := vm.New(vm.Config{Stdout: &stdout, Stderr: &stderr})

	if result := v.Interpret(compiler.New(), []byte(`func f(){ f(); } f();`)); result != vm.InterpretRuntimeError {
		t.Fatalf("first call result = %v, want RuntimeError", result)
	}

	stdout.Reset()
	stderr.Reset()
	if result := v.Interpret(compiler.New(), []byte(`println(1+1);`)); result != vm.InterpretOK {
		t.Fatalf("second call result = %v, want OK", result)
	}
	if stdout.String() != "2\n" {
		t.Fatalf("second call out = %q, want %q", stdout.String(), "2\n")
	}
}

func TestFalsinessLaw(t *testing.T) {
	out, _, result := run(t, `println(!nil); println(!false); println(!0); println(!""); println(![]);`)
	if result != vm.InterpretOK {
		t.Fatalf("result = %v, want OK", result)
	}
	want := "true\ntrue\nfalse\nfalse\nfalse\n"
	if out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestSubscriptAssignmentIsAnExpression(t *testing.T) {
	out, _, result := run(t, `let xs=[1,2,3]; println(xs[1]=99); println(xs[1]);`)
	if result != vm.InterpretOK {
		t.Fatalf("result = %v, want OK", result)
	}
	if out != "99\n99\n" {
		t.Fatalf("out = %q, want %q", out, "99\n99\n")
	}
}

func TestStringConcatDoesNotMutateOperands(t *testing.T) {
	out, _, result := run(t, `let a="x"; let b="y"; let c=a+b; println(a); println(b); println(c);`)
	if result != vm.InterpretOK {
		t.Fatalf("result = %v, want OK", result)
	}
	if out != "x\ny\nxy\n" {
		t.Fatalf("out = %q, want %q", out, "x\ny\nxy\n")
	}
}

func TestArithmeticOnNonNumbersIsARuntimeError(t *testing.T) {
	_, _, result := run(t, `println(1+nil);`)
	if result != vm.InterpretRuntimeError {
		t.Fatalf("result = %v, want RuntimeError", result)
	}
}

func TestCallingANonFunctionIsARuntimeError(t *testing.T) {
	_, stderr, result := run(t, `let x=1; x();`)
	if result != vm.InterpretRuntimeError {
		t.Fatalf("result = %v, want RuntimeError", result)
	}
	if !bytes.Contains([]byte(stderr), []byte("Can only call functions.")) {
		t.Fatalf("stderr = %q, want it to mention %q", stderr, "Can only call functions.")
	}
}
