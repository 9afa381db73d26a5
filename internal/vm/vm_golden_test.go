package vm_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/emberlang/ember/internal/compiler"
	"github.com/emberlang/ember/internal/vm"
)

// executionTrace is the golden fixture shape for an end-to-end VM run:
// its stdout, its stderr, and the final InterpretResult. Golden traces
// are encoded with msgpack and decoded again to check the round trip.
type executionTrace struct {
	Stdout string
	Stderr string
	Result int
}

func traceFor(t *testing.T, source string) executionTrace {
	t.Helper()
	var stdout, stderr bytes.Buffer
	v := vm.New(vm.Config{Stdout: &stdout, Stderr: &stderr})
	result := v.Interpret(compiler.New(), []byte(source))
	return executionTrace{Stdout: stdout.String(), Stderr: stderr.String(), Result: int(result)}
}

func TestGoldenTraceRoundTripsThroughMsgpack(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"fibonacci", `func fib(n){ if (n<2) return n; return fib(n-2)+fib(n-1); } println(fib(8));`},
		{"list_ops", `let xs=[1,2,3]; append(xs,4); println(xs[3]);`},
		{"undefined_global", `let a; println(a);`},
		{"stack_overflow", `func f(){ f(); } f();`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			want := traceFor(t, c.source)

			encoded, err := msgpack.Marshal(want)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got executionTrace
			if err := msgpack.Unmarshal(encoded, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("round-trip mismatch:\n got  %+v\n want %+v", got, want)
			}
		})
	}
}
