package emitter

import (
	"strings"
	"testing"

	"quill/internal/ast"
	"quill/internal/diagnostics"
	"quill/internal/lexer"
	"quill/internal/parser"
)

func emit(t *testing.T, src string) string {
	t.Helper()
	bag := diagnostics.NewDiagnosticBag()
	toks, err := lexer.New("test.ql", src, bag).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	program, err := parser.Parse(toks, "test.ql", bag, parser.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return New().Emit(program)
}

func TestEmitHelloWorld(t *testing.T) {
	got := emit(t, `Print "Hello, World!"`)

	want := `#include <iostream>
#include <string>

int main() {
    std::cout << "Hello, World!" << std::endl;
    return 0;
}
`
	if got != want {
		t.Errorf("Emitted text mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestEmitDeterministic(t *testing.T) {
	src := "let x = 1\nif x < 10 {\n  Print x\n} else {\n  Print 0\n}\nloop x {\n  Print x\n}"

	first := emit(t, src)
	second := emit(t, src)
	if first != second {
		t.Error("Emitting the same program twice yielded different text")
	}
}

func TestEmitVarDecl(t *testing.T) {
	got := emit(t, "let x = 42")
	if !strings.Contains(got, "auto x = 42;") {
		t.Errorf("Expected 'auto x = 42;' in:\n%s", got)
	}
}

func TestEmitStringEscapes(t *testing.T) {
	got := emit(t, `Print "line\none\ttab \"quoted\" back\\slash"`)

	// The decoded literal is re-escaped for the target text.
	want := `"line\none\ttab \"quoted\" back\\slash"`
	if !strings.Contains(got, want) {
		t.Errorf("Expected %s in:\n%s", want, got)
	}
}

func TestEmitIfElse(t *testing.T) {
	got := emit(t, "let x = 1\nif x < 10 {\n  Print x\n} else {\n  Print 0\n}")

	if !strings.Contains(got, "if ((x < 10)) {") {
		t.Errorf("Expected an if header in:\n%s", got)
	}
	if !strings.Contains(got, "} else {") {
		t.Errorf("Expected '} else {' on one line in:\n%s", got)
	}
}

func TestEmitLoopHeaderVerbatim(t *testing.T) {
	got := emit(t, "loop running {\n  Print 1\n}")

	if !strings.Contains(got, "while (running) {") {
		t.Errorf("Expected the header lexeme pasted into a while in:\n%s", got)
	}
}

func TestEmitFunctionAndCall(t *testing.T) {
	got := emit(t, "func add(a, b) {\n  return a + b\n}\ncall add(1, 2)")

	if !strings.Contains(got, "auto add(auto a, auto b) {") {
		t.Errorf("Expected the function header in:\n%s", got)
	}
	if !strings.Contains(got, "return (a + b);") {
		t.Errorf("Expected the return statement in:\n%s", got)
	}
	if !strings.Contains(got, "add(1, 2);") {
		t.Errorf("Expected the call statement in:\n%s", got)
	}

	// Functions precede main regardless of call position.
	if strings.Index(got, "auto add") > strings.Index(got, "int main") {
		t.Error("Function definitions must precede the entry point")
	}
}

func TestEmitBareReturn(t *testing.T) {
	got := emit(t, "func f() {\n  return\n}")
	if !strings.Contains(got, "return;") {
		t.Errorf("Expected a bare 'return;' in:\n%s", got)
	}
}

func TestEmitExpressionGrouping(t *testing.T) {
	got := emit(t, "let r = (1 + 2) * 3")

	// Grouping survives through explicit parentheses, not source ones.
	if !strings.Contains(got, "auto r = ((1 + 2) * 3);") {
		t.Errorf("Expected the grouped product in:\n%s", got)
	}
}

func TestEmitCustomIndent(t *testing.T) {
	bag := diagnostics.NewDiagnosticBag()
	toks, err := lexer.New("test.ql", "Print 1", bag).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	program, err := parser.Parse(toks, "test.ql", bag, parser.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	got := NewWithIndent("\t").Emit(program)
	if !strings.Contains(got, "\tstd::cout << 1 << std::endl;") {
		t.Errorf("Expected tab indentation in:\n%s", got)
	}
}

func TestEmitNestedIndentation(t *testing.T) {
	got := emit(t, "if true {\n  if true {\n    Print 1\n  }\n}")

	// main body is one level, each nested block adds one more.
	if !strings.Contains(got, "\n            std::cout << 1 << std::endl;") {
		t.Errorf("Expected three indent levels inside the nested block in:\n%s", got)
	}
}

func TestEmitPure(t *testing.T) {
	// Emit never mutates the tree; a second walk over the same Program
	// matches the first.
	bag := diagnostics.NewDiagnosticBag()
	toks, err := lexer.New("test.ql", "let x = 1\nPrint x + 2", bag).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	program, err := parser.Parse(toks, "test.ql", bag, parser.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	gen := New()
	first := gen.Emit(program)
	second := gen.Emit(program)
	if first != second {
		t.Error("Re-emitting the same tree with one generator changed the output")
	}

	var nodes []ast.Node = program.Nodes
	if len(nodes) != 2 {
		t.Errorf("Expected the tree to be untouched, got %d nodes", len(nodes))
	}
}
