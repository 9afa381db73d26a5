package vm

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Disassemble renders chunk as a human-readable instruction dump,
// recursing into any function constants it holds. This is a minimal
// debug convenience for `ember disasm`, not a general product. Columns
// are aligned with go-runewidth rather than len()
// because string constants embedded in CONSTANT operands may contain
// multi-byte runes, and a byte-count pad would misalign the table.
func Disassemble(chunk *Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	offset := 0
	for offset < len(chunk.Code) {
		offset = disassembleInstruction(&b, chunk, offset)
	}
	for _, c := range chunk.Constants {
		if c.IsFunction() {
			fn := c.AsFunction()
			label := "<script>"
			if fn.Name != nil {
				label = fn.Name.Chars
			}
			b.WriteString(Disassemble(fn.Chunk, label))
		}
	}
	return b.String()
}

func disassembleInstruction(b *strings.Builder, chunk *Chunk, offset int) int {
	line := chunk.GetLine(offset)
	op := OpCode(chunk.Code[offset])
	label := pad(op.String(), 18)
	fmt.Fprintf(b, "%04d line %4d  %s", offset, line, label)

	switch op {
	case OpClosure:
		idx := chunk.Code[offset+1]
		fn := chunk.Constants[idx].AsFunction()
		fmt.Fprintf(b, " %d\n", idx)
		next := offset + 2
		for i := 0; i < fn.UpvalueCount; i++ {
			isLocal := chunk.Code[next]
			index := chunk.Code[next+1]
			kind := "upvalue"
			if isLocal != 0 {
				kind = "local"
			}
			fmt.Fprintf(b, "      |                     %s %d\n", kind, index)
			next += 2
		}
		return next
	case OpJump, OpJumpIfFalse, OpLoop:
		jumpOffset := int(chunk.Code[offset+1])<<8 | int(chunk.Code[offset+2])
		fmt.Fprintf(b, " %d\n", jumpOffset)
		return offset + 3
	default:
		width := op.operandWidth()
		for i := 0; i < width; i++ {
			fmt.Fprintf(b, " %d", chunk.Code[offset+1+i])
		}
		b.WriteByte('\n')
		return offset + 1 + width
	}
}

func pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
