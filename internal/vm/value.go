// Package vm implements the stack-based bytecode virtual machine: the
// value representation, heap object graph, string interning, generic
// hash table, chunk format, and the dispatch loop that executes a
// compiled chunk.
package vm

import "fmt"

// Kind identifies the runtime type tag carried by a Value.
type Kind uint8

const (
	// KindNil is the singleton nil value.
	KindNil Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindNumber is a double-precision float.
	KindNumber
	// KindObj is a reference to a heap object.
	KindObj
)

// Value is the tagged union every VM stack slot, constant, and local
// variable holds. There is deliberately no NaN-boxing: Num and Obj are
// both always present in the struct, and Kind decides which is live.
type Value struct {
	Kind Kind
	Num  float64
	Obj  *Obj
}

// Nil is the canonical nil value.
var Nil = Value{Kind: KindNil}

// Bool constructs a boolean value.
func Bool(b bool) Value {
	v := Value{Kind: KindBool}
	if b {
		v.Num = 1
	}
	return v
}

// Number constructs a numeric value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// ObjVal wraps a heap object reference as a Value.
func ObjVal(o *Obj) Value {
	return Value{Kind: KindObj, Obj: o}
}

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool { return v.Kind == KindNil }

// IsBool reports whether v holds a boolean.
func (v Value) IsBool() bool { return v.Kind == KindBool }

// AsBool returns the boolean payload of v. Only valid when IsBool(v).
func (v Value) AsBool() bool { return v.Num != 0 }

// IsNumber reports whether v holds a float64.
func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// AsNumber returns the float64 payload of v. Only valid when IsNumber(v).
func (v Value) AsNumber() float64 { return v.Num }

// IsObj reports whether v holds a heap object reference.
func (v Value) IsObj() bool { return v.Kind == KindObj }

// IsObjType reports whether v references a heap object of the given type.
func (v Value) IsObjType(t ObjType) bool {
	return v.Kind == KindObj && v.Obj != nil && v.Obj.Type == t
}

// IsString reports whether v is an interned string.
func (v Value) IsString() bool { return v.IsObjType(ObjString) }

// AsString returns the *ObjStringData backing v. Only valid when IsString(v).
func (v Value) AsString() *ObjStringData { return v.Obj.AsString() }

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.IsObjType(ObjListType) }

// AsList returns the *ObjListData backing v. Only valid when IsList(v).
func (v Value) AsList() *ObjListData { return v.Obj.AsList() }

// IsClosure reports whether v is a closure.
func (v Value) IsClosure() bool { return v.IsObjType(ObjClosureType) }

// AsClosure returns the *ObjClosureData backing v. Only valid when IsClosure(v).
func (v Value) AsClosure() *ObjClosureData { return v.Obj.AsClosure() }

// IsFunction reports whether v is a bare function (pre-closure).
func (v Value) IsFunction() bool { return v.IsObjType(ObjFunctionType) }

// AsFunction returns the *ObjFunctionData backing v. Only valid when IsFunction(v).
func (v Value) AsFunction() *ObjFunctionData { return v.Obj.AsFunction() }

// IsNative reports whether v is a native function.
func (v Value) IsNative() bool { return v.IsObjType(ObjNativeType) }

// AsNative returns the *ObjNativeData backing v. Only valid when IsNative(v).
func (v Value) AsNative() *ObjNativeData { return v.Obj.AsNative() }

// Falsey implements the language's falsiness rule: nil and false are
// falsey, every other value (including 0 and "") is truthy.
func (v Value) Falsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// Equal implements value equality: same kind and same payload. Two Obj
// values are equal iff they reference the same heap object, which for
// strings is sound because of interning.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.AsBool() == b.AsBool()
	case KindNumber:
		return a.Num == b.Num
	case KindObj:
		return a.Obj == b.Obj
	default:
		return false
	}
}

// String renders v the way PRINT and println render values.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Num)
	case KindObj:
		return v.Obj.String()
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.Kind)
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}
