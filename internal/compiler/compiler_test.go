package compiler_test

import (
	"strings"
	"testing"

	"github.com/emberlang/ember/internal/compiler"
	"github.com/emberlang/ember/internal/vm"
)

func compile(t *testing.T, source string) (*vm.ObjFunctionData, []error) {
	t.Helper()
	v := vm.New(vm.Config{})
	return compiler.New().Compile(v, []byte(source))
}

func TestCompileSimpleProgram(t *testing.T) {
	fn, errs := compile(t, `println(1+2);`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if fn == nil {
		t.Fatal("fn is nil")
	}
	if fn.Arity != 0 {
		t.Fatalf("arity = %d, want 0", fn.Arity)
	}
}

func TestCompileReturnAtTopLevelIsAnError(t *testing.T) {
	_, errs := compile(t, `return 1;`)
	if len(errs) == 0 {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(errs[0].Error(), "Can't return from top-level code.") {
		t.Fatalf("errs[0] = %v, want it to mention top-level return", errs[0])
	}
}

func TestCompileDuplicateLocalNameIsAnError(t *testing.T) {
	_, errs := compile(t, `func f(){ let x=1; let x=2; }`)
	if len(errs) == 0 {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(errs[0].Error(), "Already a variable with this name in this scope.") {
		t.Fatalf("errs[0] = %v, want it to mention redeclaration", errs[0])
	}
}

func TestCompileUnterminatedStringIsAnError(t *testing.T) {
	_, errs := compile(t, `let s="unterminated;`)
	if len(errs) == 0 {
		t.Fatal("expected a compile error")
	}
}

func TestCompileErrorReportsSourceLine(t *testing.T) {
	_, errs := compile(t, "let x=1;\nlet y=2\nlet z=3;")
	if len(errs) == 0 {
		t.Fatal("expected a compile error")
	}
	ce, ok := errs[0].(*compiler.CompileError)
	if !ok {
		t.Fatalf("errs[0] is %T, want *compiler.CompileError", errs[0])
	}
	if ce.Line != 3 {
		t.Fatalf("Line = %d, want 3", ce.Line)
	}
}

func TestCompileTooManyParametersIsAnError(t *testing.T) {
	var params []string
	for i := 0; i < 256; i++ {
		params = append(params, "p"+strconvItoa(i))
	}
	src := "func f(" + strings.Join(params, ",") + "){}"
	_, errs := compile(t, src)
	if len(errs) == 0 {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(errs[0].Error(), "Can't have more than 255 parameters.") {
		t.Fatalf("errs[0] = %v, want it to mention the parameter limit", errs[0])
	}
}

func strconvItoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestCompileNestedFunctionExpression(t *testing.T) {
	fn, errs := compile(t, `let f=fun(a,b){ return a+b; }; println(f(1,2));`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if fn == nil {
		t.Fatal("fn is nil")
	}
}
