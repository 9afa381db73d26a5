package lexer_test

import (
	"testing"

	"github.com/emberlang/ember/internal/lexer"
)

func collectKinds(t *testing.T, src string) []lexer.Kind {
	t.Helper()
	lx := lexer.New([]byte(src))
	var kinds []lexer.Kind
	for {
		tok := lx.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == lexer.KindEOF {
			return kinds
		}
	}
}

func expectKinds(t *testing.T, src string, want []lexer.Kind) {
	t.Helper()
	got := collectKinds(t, src)
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestSingleCharTokens(t *testing.T) {
	expectKinds(t, "(){}[],.-+;*/", []lexer.Kind{
		lexer.KindLeftParen, lexer.KindRightParen,
		lexer.KindLeftBrace, lexer.KindRightBrace,
		lexer.KindLeftBracket, lexer.KindRightBracket,
		lexer.KindComma, lexer.KindDot, lexer.KindMinus, lexer.KindPlus,
		lexer.KindSemicolon, lexer.KindStar, lexer.KindSlash,
		lexer.KindEOF,
	})
}

func TestTwoCharOperators(t *testing.T) {
	expectKinds(t, "! != = == < <= > >=", []lexer.Kind{
		lexer.KindBang, lexer.KindBangEqual,
		lexer.KindEqual, lexer.KindEqualEqual,
		lexer.KindLess, lexer.KindLessEqual,
		lexer.KindGreater, lexer.KindGreaterEqual,
		lexer.KindEOF,
	})
}

func TestKeywords(t *testing.T) {
	expectKinds(t, "and else false for fun func if nil or print return true let while", []lexer.Kind{
		lexer.KindAnd, lexer.KindElse, lexer.KindFalse, lexer.KindFor,
		lexer.KindFun, lexer.KindFunc, lexer.KindIf, lexer.KindNil,
		lexer.KindOr, lexer.KindPrint, lexer.KindReturn, lexer.KindTrue,
		lexer.KindLet, lexer.KindWhile,
		lexer.KindEOF,
	})
}

func TestIdentifierNotKeywordPrefix(t *testing.T) {
	expectKinds(t, "letter forever", []lexer.Kind{
		lexer.KindIdent, lexer.KindIdent, lexer.KindEOF,
	})
}

func TestNumberLiterals(t *testing.T) {
	lx := lexer.New([]byte("123 3.14 0"))
	tok := lx.Next()
	if tok.Kind != lexer.KindNumber || tok.Lexeme != "123" {
		t.Fatalf("got %v %q", tok.Kind, tok.Lexeme)
	}
	tok = lx.Next()
	if tok.Kind != lexer.KindNumber || tok.Lexeme != "3.14" {
		t.Fatalf("got %v %q", tok.Kind, tok.Lexeme)
	}
	tok = lx.Next()
	if tok.Kind != lexer.KindNumber || tok.Lexeme != "0" {
		t.Fatalf("got %v %q", tok.Kind, tok.Lexeme)
	}
}

func TestStringLiteral(t *testing.T) {
	lx := lexer.New([]byte(`"hello world"`))
	tok := lx.Next()
	if tok.Kind != lexer.KindString || tok.Lexeme != `"hello world"` {
		t.Fatalf("got %v %q", tok.Kind, tok.Lexeme)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx := lexer.New([]byte(`"hello`))
	tok := lx.Next()
	if tok.Kind != lexer.KindError {
		t.Fatalf("got %v, want KindError", tok.Kind)
	}
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	src := "// a comment\nlet x = 1; // trailing\n"
	expectKinds(t, src, []lexer.Kind{
		lexer.KindLet, lexer.KindIdent, lexer.KindEqual, lexer.KindNumber,
		lexer.KindSemicolon, lexer.KindEOF,
	})
}

func TestLineTracking(t *testing.T) {
	lx := lexer.New([]byte("let x = 1;\nlet y = 2;"))
	var last lexer.Token
	for {
		tok := lx.Next()
		if tok.Kind == lexer.KindEOF {
			break
		}
		last = tok
	}
	if last.Line != 2 {
		t.Fatalf("last token on line %d, want 2", last.Line)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	lx := lexer.New([]byte("@"))
	tok := lx.Next()
	if tok.Kind != lexer.KindError {
		t.Fatalf("got %v, want KindError", tok.Kind)
	}
}
