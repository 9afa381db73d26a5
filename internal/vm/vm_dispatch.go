package vm

import "fmt"

// run is the dispatch loop: a tight switch over the next opcode. The
// instruction pointer is cached in a local for the duration
// of a frame and written back to frame.ip only when control leaves the
// frame — call, return, or runtime error — so that a stack trace
// captured mid-instruction still reports the correct line.
func (v *VM) run() *RuntimeError {
	frame := &v.frames[v.frameCount-1]
	chunk := frame.closure.Function.Chunk
	ip := frame.ip

	readByte := func() byte {
		b := chunk.Code[ip]
		ip++
		return b
	}
	readShort := func() int {
		hi, lo := chunk.Code[ip], chunk.Code[ip+1]
		ip += 2
		return int(hi)<<8 | int(lo)
	}
	readConstant := func() Value {
		return chunk.Constants[readByte()]
	}
	readString := func() *ObjStringData {
		return readConstant().AsString()
	}

	for {
		op := OpCode(readByte())
		switch op {
		case OpConstant:
			v.push(readConstant())

		case OpNil:
			v.push(Nil)

		case OpTrue:
			v.push(Bool(true))

		case OpFalse:
			v.push(Bool(false))

		case OpPop:
			v.pop()

		case OpDup:
			v.push(v.peek(0))

		case OpGetLocal:
			slot := int(readByte())
			v.push(v.stack[frame.slots+slot])

		case OpSetLocal:
			slot := int(readByte())
			v.stack[frame.slots+slot] = v.peek(0)

		case OpGetGlobal:
			name := readString()
			val, ok := v.globals.Get(name)
			if !ok {
				frame.ip = ip
				return v.runtimeError("Undefined variable '%s'", name.Chars)
			}
			v.push(val)

		case OpDefineGlobal:
			name := readString()
			v.globals.Set(name, v.peek(0))
			v.pop()

		case OpSetGlobal:
			name := readString()
			if v.globals.Set(name, v.peek(0)) {
				v.globals.Delete(name)
				frame.ip = ip
				return v.runtimeError("Undefined variable '%s'", name.Chars)
			}

		case OpGetUpvalue:
			slot := int(readByte())
			v.push(frame.closure.Upvalues[slot].Get(v))

		case OpSetUpvalue:
			slot := int(readByte())
			frame.closure.Upvalues[slot].Set(v, v.peek(0))

		case OpEqual:
			b, a := v.pop(), v.pop()
			v.push(Bool(Equal(a, b)))

		case OpGreater:
			if err := v.binaryCompare(func(a, b float64) bool { return a > b }); err != nil {
				frame.ip = ip
				return err
			}

		case OpLess:
			if err := v.binaryCompare(func(a, b float64) bool { return a < b }); err != nil {
				frame.ip = ip
				return err
			}

		case OpAdd:
			if err := v.add(); err != nil {
				frame.ip = ip
				return err
			}

		case OpSubtract:
			if err := v.binaryArith(func(a, b float64) float64 { return a - b }); err != nil {
				frame.ip = ip
				return err
			}

		case OpMultiply:
			if err := v.binaryArith(func(a, b float64) float64 { return a * b }); err != nil {
				frame.ip = ip
				return err
			}

		case OpDivide:
			if err := v.binaryArith(func(a, b float64) float64 { return a / b }); err != nil {
				frame.ip = ip
				return err
			}

		case OpNot:
			v.push(Bool(v.pop().Falsey()))

		case OpNegate:
			if !v.peek(0).IsNumber() {
				frame.ip = ip
				return v.runtimeError("Operand must be a number")
			}
			v.push(Number(-v.pop().AsNumber()))

		case OpPrint:
			fmt.Fprintln(v.stdout, v.pop().String())

		case OpJump:
			offset := readShort()
			ip += offset

		case OpJumpIfFalse:
			offset := readShort()
			if v.peek(0).Falsey() {
				ip += offset
			}

		case OpLoop:
			offset := readShort()
			ip -= offset

		case OpCall:
			argCount := int(readByte())
			frame.ip = ip
			if err := v.callValue(v.peek(argCount), argCount); err != nil {
				return err
			}
			frame = &v.frames[v.frameCount-1]
			chunk = frame.closure.Function.Chunk
			ip = frame.ip

		case OpClosure:
			fn := readConstant().AsFunction()
			closure := v.NewClosure(fn)
			v.push(closure.Value())
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := readByte()
				index := int(readByte())
				if isLocal != 0 {
					closure.Upvalues[i] = v.captureUpvalue(frame.slots + index)
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}

		case OpCloseUpvalue:
			v.closeUpvalues(v.stackTop - 1)
			v.pop()

		case OpBuildList:
			n := int(readByte())
			if err := v.buildList(n); err != nil {
				frame.ip = ip
				return err
			}

		case OpIndexSubscr:
			if err := v.indexSubscr(); err != nil {
				frame.ip = ip
				return err
			}

		case OpStoreSubscr:
			if err := v.storeSubscr(); err != nil {
				frame.ip = ip
				return err
			}

		case OpReturn:
			result := v.pop()
			v.closeUpvalues(frame.slots)
			v.frameCount--
			if v.frameCount == 0 {
				v.pop()
				return nil
			}
			v.stackTop = frame.slots
			v.push(result)
			frame = &v.frames[v.frameCount-1]
			chunk = frame.closure.Function.Chunk
			ip = frame.ip

		default:
			frame.ip = ip
			return v.runtimeError("Unknown opcode %d", op)
		}
	}
}
