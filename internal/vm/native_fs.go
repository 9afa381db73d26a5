package vm

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// nativeReadFile implements readFile(path): returns the file's contents
// as a string, or a native error describing the cause.
//
// Two additions beyond a bare passthrough to os.ReadFile, without
// changing the native's documented signature or error shape:
//
//   - if VM.nativesRoot is set (the natives_root config field), a
//     relative path is resolved against it instead of the process's
//     working directory, and an absolute path escaping it is rejected;
//   - the read is capped at VM.maxReadFileBytes, so a native call can't
//     be used to pull an unbounded amount of data into memory.
func nativeReadFile(v *VM, argCount int, args []Value) NativeResult {
	if argCount != 1 {
		return v.NativeErr("readFile() takes exactly 1 argument.")
	}
	if !args[0].IsString() {
		return v.NativeErr("Argument to readFile() must be a string.")
	}

	path := args[0].AsString().Chars
	resolved, err := v.resolveNativePath(path)
	if err != nil {
		return v.NativeErr("Failed to open file.")
	}

	f, err := os.Open(resolved)
	if err != nil {
		return v.NativeErr("Failed to open file.")
	}
	defer f.Close()

	limit := v.maxReadFileBytes
	reader := io.LimitReader(f, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		return v.NativeErr("Failed to open file.")
	}
	if int64(len(data)) > limit {
		return v.NativeErr("File exceeds maximum readable size.")
	}

	return NativeOK(v.CopyString(string(data)))
}

// resolveNativePath applies the natives_root confinement described
// above. With no root configured, it behaves exactly like the C
// original: the path is used as-is, relative to the process's cwd.
func (v *VM) resolveNativePath(path string) (string, error) {
	if v.nativesRoot == "" {
		return path, nil
	}
	root, err := filepath.Abs(v.nativesRoot)
	if err != nil {
		return "", err
	}
	joined := filepath.Join(root, path)
	if filepath.IsAbs(path) {
		joined = filepath.Clean(path)
	}
	rel, err := filepath.Rel(root, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", os.ErrPermission
	}
	return joined, nil
}
