package vm

// ObjStringData is the immutable, interned string payload. Go's garbage
// collector owns the backing bytes, so the C original's ownsChars flag
// (object.h) has no allocation-ownership work left to do here; it is
// kept only for shape parity with the reference object table, and is
// always true for strings built in this implementation.
type ObjStringData struct {
	obj       *Obj
	Chars     string
	Hash      uint32
	OwnsChars bool
}

// hashString computes an FNV-1a hash over raw bytes (no normalization —
// identifiers and string literals intern by byte sequence, not by any
// Unicode-aware equivalence).
func hashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// CopyString interns s and returns it as a Value, always treating the
// caller's string as independently owned (the Go analogue of the C
// original's copyString, which always copies rather than taking
// ownership of a caller buffer).
func (v *VM) CopyString(s string) Value {
	return v.internString(s)
}

// TakeString interns s and returns it as a Value. In the C reference
// this distinguishes ownership to avoid a double copy; in Go, strings
// are immutable values with no ownership to transfer, so TakeString and
// CopyString are identical. The name is kept because the ADD opcode
// calls TakeString for string concatenation results, as the C original
// does; the compiler interns its strings with CopyString.
func (v *VM) TakeString(s string) Value {
	return v.internString(s)
}

// internString returns the canonical string Value for s, allocating and
// registering a new object only if no byte-identical string has been
// interned before — the intern table holds exactly one entry per
// distinct byte sequence ever created.
func (v *VM) internString(s string) Value {
	hash := hashString(s)
	if existing := v.strings.findString(s, hash); existing != nil {
		return ObjVal(existing.obj)
	}
	data := &ObjStringData{Chars: s, Hash: hash, OwnsChars: true}
	obj := v.allocate(&Obj{Type: ObjString, str: data})
	data.obj = obj
	v.strings.internSet(data)
	return ObjVal(obj)
}

// Value wraps the string back into the Value referencing its heap object.
func (d *ObjStringData) Value() Value { return ObjVal(d.obj) }

