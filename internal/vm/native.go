package vm

import (
	"fmt"
	"time"
)

// processStart anchors clock(): it returns the wall-clock seconds
// elapsed since this package was initialized, not the processor time
// the C reference's clock()/CLOCKS_PER_SEC measures.
var processStart = time.Now()

// registerNatives installs the built-in set: clock, readFile, println,
// append, delete. Each is defined the way
// defineNative does in the C reference — interned name, native object,
// globals entry — ported to a direct table.Set since Go has no stack
// dance to protect the two temporaries from a collector that doesn't
// exist here.
func registerNatives(v *VM) {
	define := func(name string, arity int, fn NativeFn) {
		key := v.CopyString(name).AsString()
		native := v.NewNative(name, arity, fn)
		v.globals.Set(key, native.Value())
	}

	define("clock", 0, nativeClock)
	define("readFile", 1, nativeReadFile)
	define("println", -1, nativePrintln)
	define("append", 2, nativeAppend)
	define("delete", 2, nativeDelete)
}

func nativeClock(v *VM, argCount int, args []Value) NativeResult {
	return NativeOK(Number(time.Since(processStart).Seconds()))
}

// nativePrintln prints space-separated values followed by a newline and
// returns nil.
func nativePrintln(v *VM, argCount int, args []Value) NativeResult {
	for i, arg := range args {
		if i > 0 {
			fmt.Fprint(v.stdout, " ")
		}
		fmt.Fprint(v.stdout, arg.String())
	}
	fmt.Fprintln(v.stdout)
	return NativeOK(Nil)
}

// nativeAppend grows list by one element.
func nativeAppend(v *VM, argCount int, args []Value) NativeResult {
	if argCount != 2 || !args[0].IsList() {
		return v.NativeErr("append() takes exactly 2 arguments.")
	}
	args[0].AsList().Append(args[1])
	return NativeOK(Nil)
}

// nativeDelete removes the element at index i, shifting later elements
// down.
func nativeDelete(v *VM, argCount int, args []Value) NativeResult {
	if argCount != 2 || !args[0].IsList() || !args[1].IsNumber() {
		return v.NativeErr("delete() takes a list and an index as arguments")
	}
	list := args[0].AsList()
	index, ok := numberToIndex(args[1].AsNumber())
	if !ok || !list.ValidIndex(index) {
		return v.NativeErr("Index out of bounds")
	}
	list.Delete(index)
	return NativeOK(Nil)
}
