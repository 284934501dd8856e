package lexer

import (
	"reflect"
	"testing"

	"quill/internal/diagnostics"
	"quill/internal/tokens"
)

func tokenize(t *testing.T, src string) ([]tokens.Token, *diagnostics.DiagnosticBag, error) {
	t.Helper()
	bag := diagnostics.NewDiagnosticBag()
	toks, err := New("test.ql", src, bag).Tokenize()
	return toks, bag, err
}

func TestTokenizeHelloWorld(t *testing.T) {
	toks, _, err := tokenize(t, `Print "Hello, World!"`)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	if len(toks) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(toks))
	}
	if toks[0].Kind != tokens.KIND_KEYWORD || toks[0].Lexeme != "Print" {
		t.Errorf("Expected Print keyword, got %v %q", toks[0].Kind, toks[0].Lexeme)
	}
	if toks[1].Kind != tokens.KIND_STRING || toks[1].Lexeme != "Hello, World!" {
		t.Errorf("Expected string literal, got %v %q", toks[1].Kind, toks[1].Lexeme)
	}
	if toks[2].Kind != tokens.KIND_EOF {
		t.Errorf("Expected EOF token, got %v", toks[2].Kind)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	src := "let x = 1.5\nif x <= 2 { Print x }\n"

	first, _, err := tokenize(t, src)
	if err != nil {
		t.Fatalf("first Tokenize failed: %v", err)
	}
	second, _, err := tokenize(t, src)
	if err != nil {
		t.Fatalf("second Tokenize failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Tokenizing the same source twice yielded different token sequences")
	}
}

func TestKeywordExactMatch(t *testing.T) {
	toks, _, err := tokenize(t, "letter ifx Print")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	if toks[0].Kind != tokens.KIND_IDENTIFIER {
		t.Errorf("'letter' should be an identifier, got %v", toks[0].Kind)
	}
	if toks[1].Kind != tokens.KIND_IDENTIFIER {
		t.Errorf("'ifx' should be an identifier, got %v", toks[1].Kind)
	}
	if toks[2].Kind != tokens.KIND_KEYWORD {
		t.Errorf("'Print' should be a keyword, got %v", toks[2].Kind)
	}
}

func TestScanNumbers(t *testing.T) {
	toks, _, err := tokenize(t, "3.14 42 007")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []string{"3.14", "42", "007"}
	for i, lexeme := range want {
		if toks[i].Kind != tokens.KIND_NUMBER || toks[i].Lexeme != lexeme {
			t.Errorf("token %d: expected number %q, got %v %q", i, lexeme, toks[i].Kind, toks[i].Lexeme)
		}
	}
}

func TestNumberTrailingDotIsUnexpected(t *testing.T) {
	// The decimal point is only part of a number when a digit follows it,
	// so "42." leaves a dangling '.' that no token class accepts.
	_, bag, err := tokenize(t, "42.")
	if err == nil {
		t.Fatal("Expected dangling '.' to fail tokenization")
	}
	if bag.CountByCode(diagnostics.ErrUnexpectedCharacter) != 1 {
		t.Errorf("Expected one UnexpectedCharacter diagnostic, got %d", bag.CountByCode(diagnostics.ErrUnexpectedCharacter))
	}
}

func TestStringEscapes(t *testing.T) {
	toks, _, err := tokenize(t, `"a\nb\tc\\d\"e\qf"`)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := "a\nb\tc\\d\"e" + "qf" // \q degrades to the escaped character
	if toks[0].Lexeme != want {
		t.Errorf("Expected %q, got %q", want, toks[0].Lexeme)
	}
}

func TestUnterminatedString(t *testing.T) {
	toks, bag, err := tokenize(t, "Print \"oops")
	if err == nil {
		t.Fatal("Expected unterminated string to fail tokenization")
	}
	if toks != nil {
		t.Error("Expected no token stream on fatal lex error")
	}
	if bag.CountByCode(diagnostics.ErrUnterminatedString) != 1 {
		t.Errorf("Expected one UnterminatedString diagnostic, got %d", bag.CountByCode(diagnostics.ErrUnterminatedString))
	}

	diag := bag.Diagnostics()[0]
	loc := diag.PrimaryLocation()
	if loc == nil || loc.Start.Line != 1 {
		t.Error("Expected the diagnostic to carry the string's starting line")
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	_, bag, err := tokenize(t, "let x = @")
	if err == nil {
		t.Fatal("Expected unexpected character to fail tokenization")
	}
	if bag.CountByCode(diagnostics.ErrUnexpectedCharacter) != 1 {
		t.Errorf("Expected one UnexpectedCharacter diagnostic, got %d", bag.CountByCode(diagnostics.ErrUnexpectedCharacter))
	}

	loc := bag.Diagnostics()[0].PrimaryLocation()
	if loc == nil || loc.Start.Line != 1 || loc.Start.Column != 9 {
		t.Errorf("Expected diagnostic at 1:9, got %v", loc)
	}
}

func TestComments(t *testing.T) {
	src := "let x = 1 // trailing\n/* block\nspanning lines */ let y = 2"
	toks, _, err := tokenize(t, src)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	// Comments are discarded: let x = 1 let y = 2 EOF
	if len(toks) != 9 {
		t.Fatalf("Expected 9 tokens, got %d", len(toks))
	}
	// The block comment's embedded newline still advances the line counter.
	if toks[4].Start.Line != 3 {
		t.Errorf("Expected 'let y' on line 3, got line %d", toks[4].Start.Line)
	}
}

func TestUnterminatedBlockCommentSilent(t *testing.T) {
	toks, bag, err := tokenize(t, "let x = 1 /* never closed")
	if err != nil {
		t.Fatalf("Unterminated block comment must not be fatal: %v", err)
	}
	if bag.ErrorCount() != 0 {
		t.Errorf("Expected no diagnostics, got %d", bag.ErrorCount())
	}
	// let x = 1 EOF
	if len(toks) != 5 {
		t.Errorf("Expected 5 tokens, got %d", len(toks))
	}
}

func TestGreedyOperators(t *testing.T) {
	toks, _, err := tokenize(t, "== <= >= != < > = + - * /")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []string{"==", "<=", ">=", "!=", "<", ">", "=", "+", "-", "*", "/"}
	for i, lexeme := range want {
		if toks[i].Kind != tokens.KIND_OPERATOR || toks[i].Lexeme != lexeme {
			t.Errorf("token %d: expected operator %q, got %v %q", i, lexeme, toks[i].Kind, toks[i].Lexeme)
		}
	}
}

func TestPositions(t *testing.T) {
	toks, _, err := tokenize(t, "let x\nPrint x")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	if toks[0].Start.Line != 1 || toks[0].Start.Column != 1 {
		t.Errorf("Expected 'let' at 1:1, got %d:%d", toks[0].Start.Line, toks[0].Start.Column)
	}
	if toks[1].Start.Column != 5 {
		t.Errorf("Expected 'x' at column 5, got %d", toks[1].Start.Column)
	}
	if toks[2].Start.Line != 2 || toks[2].Start.Column != 1 {
		t.Errorf("Expected 'Print' at 2:1, got %d:%d", toks[2].Start.Line, toks[2].Start.Column)
	}
}
