// Package compiler implements a single-pass Pratt-style compiler: it
// walks the lexer's token stream directly into bytecode with no AST
// retained, and hands back a top-level vm.ObjFunctionData (or compile
// errors) ready for the VM to run.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/emberlang/ember/internal/lexer"
	"github.com/emberlang/ember/internal/vm"
)

// CompileError reports a syntax, arity-limit, or scope-resolution
// failure with its source line. It never touches VM runtime state.
type CompileError struct {
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

type funcKind int

const (
	funcKindScript funcKind = iota
	funcKindFunction
)

type localVar struct {
	name       string
	depth      int
	isCaptured bool
}

type upvalueDesc struct {
	index   byte
	isLocal bool
}

// funcState tracks compiler state scoped to one function body, chained
// to its lexically enclosing function the way clox's Compiler struct
// chains via `enclosing`.
type funcState struct {
	enclosing  *funcState
	fn         *vm.ObjFunctionData
	kind       funcKind
	locals     []localVar
	upvalues   []upvalueDesc
	scopeDepth int
}

// parser drives the lexer and emits bytecode directly in a single pass,
// with no intermediate tree.
type parser struct {
	vm   *vm.VM
	lex  *lexer.Lexer
	cur  lexer.Token
	prev lexer.Token

	hadError  bool
	panicMode bool
	errors    []error

	fs *funcState
}

// Compiler implements vm.Compiler.
type Compiler struct{}

// New returns a Compiler ready to satisfy vm.Compiler.
func New() *Compiler { return &Compiler{} }

// Compile implements vm.Compiler.
func (c *Compiler) Compile(v *vm.VM, source []byte) (*vm.ObjFunctionData, []error) {
	p := &parser{vm: v, lex: lexer.New(source)}
	p.pushFunc(funcKindScript, "")

	p.advance()
	for !p.match(lexer.KindEOF) {
		p.declaration()
	}
	fn := p.endFunc()

	if p.hadError {
		return nil, p.errors
	}
	return fn, nil
}

// --- token plumbing -------------------------------------------------

func (p *parser) advance() {
	p.prev = p.cur
	for {
		p.cur = p.lex.Next()
		if p.cur.Kind != lexer.KindError {
			break
		}
		p.errorAtCurrent(p.cur.Lexeme)
	}
}

func (p *parser) check(k lexer.Kind) bool { return p.cur.Kind == k }

func (p *parser) match(k lexer.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(k lexer.Kind, msg string) {
	if p.cur.Kind == k {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

func (p *parser) errorAtCurrent(msg string) { p.errorAt(p.cur, msg) }
func (p *parser) error(msg string)          { p.errorAt(p.prev, msg) }

func (p *parser) errorAt(tok lexer.Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	p.errors = append(p.errors, &CompileError{Line: tok.Line, Message: msg})
}

// synchronize discards tokens until a likely statement boundary, so one
// syntax error doesn't cascade into dozens.
func (p *parser) synchronize() {
	p.panicMode = false
	for p.cur.Kind != lexer.KindEOF {
		if p.prev.Kind == lexer.KindSemicolon {
			return
		}
		switch p.cur.Kind {
		case lexer.KindFunc, lexer.KindLet, lexer.KindFor, lexer.KindIf,
			lexer.KindWhile, lexer.KindPrint, lexer.KindReturn:
			return
		}
		p.advance()
	}
}

// --- function / chunk plumbing ---------------------------------------

func (p *parser) currentChunk() *vm.Chunk { return p.fs.fn.Chunk }

func (p *parser) pushFunc(kind funcKind, name string) {
	fn := p.vm.NewFunction()
	if name != "" {
		fn.Name = p.vm.CopyString(name).AsString()
	}
	fs := &funcState{enclosing: p.fs, fn: fn, kind: kind}
	// Slot 0 of every frame is reserved for the callee itself.
	fs.locals = append(fs.locals, localVar{name: "", depth: 0})
	p.fs = fs
}

func (p *parser) endFunc() *vm.ObjFunctionData {
	p.emitReturn()
	fn := p.fs.fn
	fn.UpvalueCount = len(p.fs.upvalues)
	p.fs = p.fs.enclosing
	return fn
}

func (p *parser) emitByte(b byte) {
	p.currentChunk().Write(b, p.prev.Line)
}

func (p *parser) emitOp(op vm.OpCode) {
	p.currentChunk().WriteOp(op, p.prev.Line)
}

func (p *parser) emitOpByte(op vm.OpCode, operand byte) {
	p.emitOp(op)
	p.emitByte(operand)
}

func (p *parser) emitReturn() {
	p.emitOp(vm.OpNil)
	p.emitOp(vm.OpReturn)
}

func (p *parser) emitConstant(v vm.Value) {
	idx := p.currentChunk().AddConstant(v)
	if idx > 255 {
		p.error("Too many constants in one chunk.")
		idx = 0
	}
	p.emitOpByte(vm.OpConstant, byte(idx))
}

// emitJump writes a jump opcode with a placeholder u16 operand and
// returns the operand's offset for patchJump to backfill.
func (p *parser) emitJump(op vm.OpCode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.currentChunk().Code) - 2
}

func (p *parser) patchJump(offset int) {
	jump := len(p.currentChunk().Code) - offset - 2
	if jump > 0xffff {
		p.error("Too much code to jump over.")
	}
	p.currentChunk().Code[offset] = byte(jump >> 8)
	p.currentChunk().Code[offset+1] = byte(jump)
}

func (p *parser) emitLoop(loopStart int) {
	p.emitOp(vm.OpLoop)
	offset := len(p.currentChunk().Code) - loopStart + 2
	if offset > 0xffff {
		p.error("Loop body too large.")
	}
	p.emitByte(byte(offset >> 8))
	p.emitByte(byte(offset))
}

// --- scope / locals / upvalues ---------------------------------------

func (p *parser) beginScope() { p.fs.scopeDepth++ }

func (p *parser) endScope() {
	p.fs.scopeDepth--
	for len(p.fs.locals) > 0 && p.fs.locals[len(p.fs.locals)-1].depth > p.fs.scopeDepth {
		last := p.fs.locals[len(p.fs.locals)-1]
		if last.isCaptured {
			p.emitOp(vm.OpCloseUpvalue)
		} else {
			p.emitOp(vm.OpPop)
		}
		p.fs.locals = p.fs.locals[:len(p.fs.locals)-1]
	}
}

func (p *parser) declareLocal(name string) {
	if p.fs.scopeDepth == 0 {
		return
	}
	for i := len(p.fs.locals) - 1; i >= 0; i-- {
		l := p.fs.locals[i]
		if l.depth != -1 && l.depth < p.fs.scopeDepth {
			break
		}
		if l.name == name {
			p.error("Already a variable with this name in this scope.")
		}
	}
	if len(p.fs.locals) == 256 {
		p.error("Too many local variables in function.")
		return
	}
	p.fs.locals = append(p.fs.locals, localVar{name: name, depth: -1})
}

func (p *parser) markInitialized() {
	if p.fs.scopeDepth == 0 {
		return
	}
	p.fs.locals[len(p.fs.locals)-1].depth = p.fs.scopeDepth
}

func resolveLocal(fs *funcState, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			return i
		}
	}
	return -1
}

func addUpvalue(fs *funcState, index byte, isLocal bool) int {
	for i, u := range fs.upvalues {
		if u.index == index && u.isLocal == isLocal {
			return i
		}
	}
	if len(fs.upvalues) == 256 {
		return 0
	}
	fs.upvalues = append(fs.upvalues, upvalueDesc{index: index, isLocal: isLocal})
	return len(fs.upvalues) - 1
}

// resolveUpvalue recursively threads a capture chain through enclosing
// functions: each intermediate function gets its own non-local upvalue
// descriptor pointing at its parent's.
func resolveUpvalue(fs *funcState, name string) int {
	if fs.enclosing == nil {
		return -1
	}
	if local := resolveLocal(fs.enclosing, name); local != -1 {
		fs.enclosing.locals[local].isCaptured = true
		return addUpvalue(fs, byte(local), true)
	}
	if up := resolveUpvalue(fs.enclosing, name); up != -1 {
		return addUpvalue(fs, byte(up), false)
	}
	return -1
}

// --- declarations ------------------------------------------------------

func (p *parser) declaration() {
	switch {
	case p.match(lexer.KindFunc):
		p.funcDecl()
	case p.match(lexer.KindLet):
		p.letDecl()
	default:
		p.statement()
	}
	if p.panicMode {
		p.synchronize()
	}
}

func (p *parser) funcDecl() {
	p.consume(lexer.KindIdent, "Expect function name.")
	name := p.prev.Lexeme
	p.declareLocal(name)
	p.markInitialized()
	p.function(funcKindFunction, name)
	p.defineVariable(name)
}

func (p *parser) function(kind funcKind, name string) {
	p.pushFunc(kind, name)
	p.beginScope()

	p.consume(lexer.KindLeftParen, "Expect '(' after function name.")
	if !p.check(lexer.KindRightParen) {
		for {
			p.fs.fn.Arity++
			if p.fs.fn.Arity > 255 {
				p.error("Can't have more than 255 parameters.")
			}
			p.consume(lexer.KindIdent, "Expect parameter name.")
			p.declareLocal(p.prev.Lexeme)
			p.markInitialized()
			if !p.match(lexer.KindComma) {
				break
			}
		}
	}
	p.consume(lexer.KindRightParen, "Expect ')' after parameters.")
	p.consume(lexer.KindLeftBrace, "Expect '{' before function body.")
	p.block()

	upvals := p.fs.upvalues
	fn := p.endFunc()

	// OP_CLOSURE carries its own fn-idx operand, so the constant pool
	// entry is added directly rather than via emitConstant/OP_CONSTANT.
	idx := p.currentChunk().AddConstant(fn.Value())
	if idx > 255 {
		p.error("Too many constants in one chunk.")
		idx = 0
	}
	p.emitOpByte(vm.OpClosure, byte(idx))
	for _, u := range upvals {
		isLocal := byte(0)
		if u.isLocal {
			isLocal = 1
		}
		p.emitByte(isLocal)
		p.emitByte(u.index)
	}
}

// letDecl compiles a `let name [= expr];` declaration. At local scope
// an uninitialized local still occupies a stack slot, so it always
// pushes a value (nil when there's no initializer). At global scope,
// a bare `let name;` with no initializer deliberately does NOT emit
// OP_DEFINE_GLOBAL: this language only wires a name into the globals
// table when it's given a value, so declaring-without-initializing at
// the top level leaves the name absent from globals. A later read of
// such a name is an undefined-global error rather than a read of nil.
func (p *parser) letDecl() {
	p.consume(lexer.KindIdent, "Expect variable name.")
	name := p.prev.Lexeme
	p.declareLocal(name)
	isLocal := p.fs.scopeDepth > 0

	hasInit := p.match(lexer.KindEqual)
	if hasInit {
		p.expression()
	} else if isLocal {
		p.emitOp(vm.OpNil)
	}
	p.consume(lexer.KindSemicolon, "Expect ';' after variable declaration.")

	if isLocal {
		p.markInitialized()
		return
	}
	if hasInit {
		p.defineVariable(name)
	}
}

func (p *parser) defineVariable(name string) {
	if p.fs.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	key := p.vm.CopyString(name)
	idx := p.currentChunk().AddConstant(key)
	p.emitOpByte(vm.OpDefineGlobal, byte(idx))
}

// --- statements ---------------------------------------------------------

func (p *parser) statement() {
	switch {
	case p.match(lexer.KindPrint):
		p.printStatement()
	case p.match(lexer.KindIf):
		p.ifStatement()
	case p.match(lexer.KindWhile):
		p.whileStatement()
	case p.match(lexer.KindReturn):
		p.returnStatement()
	case p.match(lexer.KindLeftBrace):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *parser) block() {
	for !p.check(lexer.KindRightBrace) && !p.check(lexer.KindEOF) {
		p.declaration()
	}
	p.consume(lexer.KindRightBrace, "Expect '}' after block.")
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(lexer.KindSemicolon, "Expect ';' after value.")
	p.emitOp(vm.OpPrint)
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(lexer.KindSemicolon, "Expect ';' after expression.")
	p.emitOp(vm.OpPop)
}

func (p *parser) ifStatement() {
	p.consume(lexer.KindLeftParen, "Expect '(' after 'if'.")
	p.expression()
	p.consume(lexer.KindRightParen, "Expect ')' after condition.")

	thenJump := p.emitJump(vm.OpJumpIfFalse)
	p.emitOp(vm.OpPop)
	p.statement()

	elseJump := p.emitJump(vm.OpJump)
	p.patchJump(thenJump)
	p.emitOp(vm.OpPop)

	if p.match(lexer.KindElse) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *parser) whileStatement() {
	loopStart := len(p.currentChunk().Code)
	p.consume(lexer.KindLeftParen, "Expect '(' after 'while'.")
	p.expression()
	p.consume(lexer.KindRightParen, "Expect ')' after condition.")

	exitJump := p.emitJump(vm.OpJumpIfFalse)
	p.emitOp(vm.OpPop)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitOp(vm.OpPop)
}

func (p *parser) returnStatement() {
	if p.fs.kind == funcKindScript {
		p.error("Can't return from top-level code.")
	}
	if p.match(lexer.KindSemicolon) {
		p.emitReturn()
		return
	}
	p.expression()
	p.consume(lexer.KindSemicolon, "Expect ';' after return value.")
	p.emitOp(vm.OpReturn)
}

// --- expressions (Pratt parser) ---------------------------------------

type precedence int

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

type parseFn func(p *parser, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

var rules map[lexer.Kind]parseRule

func init() {
	rules = map[lexer.Kind]parseRule{
		lexer.KindLeftParen:    {prefix: (*parser).grouping, infix: (*parser).call, precedence: precCall},
		lexer.KindLeftBracket:  {prefix: (*parser).listLiteral, infix: (*parser).subscript, precedence: precCall},
		lexer.KindMinus:        {prefix: (*parser).unary, infix: (*parser).binary, precedence: precTerm},
		lexer.KindPlus:         {infix: (*parser).binary, precedence: precTerm},
		lexer.KindSlash:        {infix: (*parser).binary, precedence: precFactor},
		lexer.KindStar:         {infix: (*parser).binary, precedence: precFactor},
		lexer.KindBang:         {prefix: (*parser).unary},
		lexer.KindBangEqual:    {infix: (*parser).binary, precedence: precEquality},
		lexer.KindEqualEqual:   {infix: (*parser).binary, precedence: precEquality},
		lexer.KindGreater:      {infix: (*parser).binary, precedence: precComparison},
		lexer.KindGreaterEqual: {infix: (*parser).binary, precedence: precComparison},
		lexer.KindLess:         {infix: (*parser).binary, precedence: precComparison},
		lexer.KindLessEqual:    {infix: (*parser).binary, precedence: precComparison},
		lexer.KindIdent:        {prefix: (*parser).variable},
		lexer.KindString:       {prefix: (*parser).stringLit},
		lexer.KindNumber:       {prefix: (*parser).number},
		lexer.KindAnd:          {infix: (*parser).and, precedence: precAnd},
		lexer.KindOr:           {infix: (*parser).or, precedence: precOr},
		lexer.KindFalse:        {prefix: (*parser).literal},
		lexer.KindTrue:         {prefix: (*parser).literal},
		lexer.KindNil:          {prefix: (*parser).literal},
		lexer.KindFun:          {prefix: (*parser).funExpr},
	}
}

func (p *parser) getRule(k lexer.Kind) parseRule { return rules[k] }

func (p *parser) expression() { p.parsePrecedence(precAssignment) }

func (p *parser) parsePrecedence(prec precedence) {
	p.advance()
	rule := p.getRule(p.prev.Kind)
	if rule.prefix == nil {
		p.error("Expect expression.")
		return
	}
	canAssign := prec <= precAssignment
	rule.prefix(p, canAssign)

	for prec <= p.getRule(p.cur.Kind).precedence {
		p.advance()
		infix := p.getRule(p.prev.Kind).infix
		infix(p, canAssign)
	}
}

func (p *parser) grouping(canAssign bool) {
	p.expression()
	p.consume(lexer.KindRightParen, "Expect ')' after expression.")
}

func (p *parser) unary(canAssign bool) {
	opKind := p.prev.Kind
	p.parsePrecedence(precUnary)
	switch opKind {
	case lexer.KindBang:
		p.emitOp(vm.OpNot)
	case lexer.KindMinus:
		p.emitOp(vm.OpNegate)
	}
}

func (p *parser) binary(canAssign bool) {
	opKind := p.prev.Kind
	rule := p.getRule(opKind)
	p.parsePrecedence(rule.precedence + 1)
	switch opKind {
	case lexer.KindPlus:
		p.emitOp(vm.OpAdd)
	case lexer.KindMinus:
		p.emitOp(vm.OpSubtract)
	case lexer.KindStar:
		p.emitOp(vm.OpMultiply)
	case lexer.KindSlash:
		p.emitOp(vm.OpDivide)
	case lexer.KindEqualEqual:
		p.emitOp(vm.OpEqual)
	case lexer.KindBangEqual:
		p.emitOp(vm.OpEqual)
		p.emitOp(vm.OpNot)
	case lexer.KindGreater:
		p.emitOp(vm.OpGreater)
	case lexer.KindGreaterEqual:
		p.emitOp(vm.OpLess)
		p.emitOp(vm.OpNot)
	case lexer.KindLess:
		p.emitOp(vm.OpLess)
	case lexer.KindLessEqual:
		p.emitOp(vm.OpGreater)
		p.emitOp(vm.OpNot)
	}
}

func (p *parser) and(canAssign bool) {
	endJump := p.emitJump(vm.OpJumpIfFalse)
	p.emitOp(vm.OpPop)
	p.parsePrecedence(precAnd)
	p.patchJump(endJump)
}

func (p *parser) or(canAssign bool) {
	elseJump := p.emitJump(vm.OpJumpIfFalse)
	endJump := p.emitJump(vm.OpJump)
	p.patchJump(elseJump)
	p.emitOp(vm.OpPop)
	p.parsePrecedence(precOr)
	p.patchJump(endJump)
}

func (p *parser) number(canAssign bool) {
	n, err := strconv.ParseFloat(p.prev.Lexeme, 64)
	if err != nil {
		p.error("Invalid number literal.")
		return
	}
	p.emitConstant(vm.Number(n))
}

func (p *parser) stringLit(canAssign bool) {
	raw := p.prev.Lexeme
	s := raw[1 : len(raw)-1] // strip surrounding quotes
	p.emitConstant(p.vm.CopyString(s))
}

func (p *parser) literal(canAssign bool) {
	switch p.prev.Kind {
	case lexer.KindFalse:
		p.emitOp(vm.OpFalse)
	case lexer.KindTrue:
		p.emitOp(vm.OpTrue)
	case lexer.KindNil:
		p.emitOp(vm.OpNil)
	}
}

func (p *parser) listLiteral(canAssign bool) {
	count := 0
	if !p.check(lexer.KindRightBracket) {
		for {
			p.expression()
			count++
			if count > 255 {
				p.error("Can't have more than 255 elements in a list literal.")
			}
			if !p.match(lexer.KindComma) {
				break
			}
		}
	}
	p.consume(lexer.KindRightBracket, "Expect ']' after list elements.")
	p.emitOpByte(vm.OpBuildList, byte(count))
}

func (p *parser) subscript(canAssign bool) {
	p.expression()
	p.consume(lexer.KindRightBracket, "Expect ']' after index.")
	if canAssign && p.match(lexer.KindEqual) {
		p.expression()
		p.emitOp(vm.OpStoreSubscr)
	} else {
		p.emitOp(vm.OpIndexSubscr)
	}
}

func (p *parser) call(canAssign bool) {
	argCount := p.argumentList()
	p.emitOpByte(vm.OpCall, byte(argCount))
}

func (p *parser) argumentList() int {
	count := 0
	if !p.check(lexer.KindRightParen) {
		for {
			p.expression()
			count++
			if count > 255 {
				p.error("Can't have more than 255 arguments.")
			}
			if !p.match(lexer.KindComma) {
				break
			}
		}
	}
	p.consume(lexer.KindRightParen, "Expect ')' after arguments.")
	return count
}

func (p *parser) funExpr(canAssign bool) {
	p.function(funcKindFunction, "")
}

func (p *parser) variable(canAssign bool) {
	name := p.prev.Lexeme

	if local := resolveLocal(p.fs, name); local != -1 {
		if canAssign && p.match(lexer.KindEqual) {
			p.expression()
			p.emitOpByte(vm.OpSetLocal, byte(local))
		} else {
			p.emitOpByte(vm.OpGetLocal, byte(local))
		}
		return
	}
	if up := resolveUpvalue(p.fs, name); up != -1 {
		if canAssign && p.match(lexer.KindEqual) {
			p.expression()
			p.emitOpByte(vm.OpSetUpvalue, byte(up))
		} else {
			p.emitOpByte(vm.OpGetUpvalue, byte(up))
		}
		return
	}

	key := p.vm.CopyString(name)
	idx := p.currentChunk().AddConstant(key)
	if canAssign && p.match(lexer.KindEqual) {
		p.expression()
		p.emitOpByte(vm.OpSetGlobal, byte(idx))
	} else {
		p.emitOpByte(vm.OpGetGlobal, byte(idx))
	}
}
