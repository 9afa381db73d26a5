package vm_test

import (
	"testing"

	"github.com/emberlang/ember/internal/vm"
)

// TestSiblingClosuresShareCapturedLocal checks that two closures created
// in the same enclosing frame that capture the same local observe each
// other's writes after the enclosing scope exits — the upvalue closes
// exactly once and both closures see the same closed cell.
func TestSiblingClosuresShareCapturedLocal(t *testing.T) {
	src := `
		func makePair(){
			let shared=0;
			let setter=fun(v){ shared=v; };
			let getter=fun(){ return shared; };
			return [setter, getter];
		}
		let pair=makePair();
		let setter=pair[0];
		let getter=pair[1];
		println(getter());
		setter(41);
		println(getter());
	`
	out, _, result := run(t, src)
	if result != vm.InterpretOK {
		t.Fatalf("result = %v, want OK", result)
	}
	if out != "0\n41\n" {
		t.Fatalf("out = %q, want %q", out, "0\n41\n")
	}
}

func TestNestedClosureCapturesThroughTwoLevels(t *testing.T) {
	src := `
		func outer(){
			let x=10;
			func middle(){
				return fun(){ return x; };
			}
			return middle();
		}
		println(outer()());
	`
	out, _, result := run(t, src)
	if result != vm.InterpretOK {
		t.Fatalf("result = %v, want OK", result)
	}
	if out != "10\n" {
		t.Fatalf("out = %q, want %q", out, "10\n")
	}
}
