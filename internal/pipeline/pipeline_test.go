package pipeline

import (
	"strings"
	"testing"

	"quill/internal/diagnostics"
)

func TestRunHelloWorld(t *testing.T) {
	unit := NewUnit("hello.ql", `Print "Hello, World!"`)

	if err := New(Options{}).Run(unit); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if unit.Bag.HasErrors() {
		t.Errorf("Expected no diagnostics:\n%s", unit.Bag.EmitAllToString())
	}
	if !strings.Contains(unit.Output, `std::cout << "Hello, World!" << std::endl;`) {
		t.Errorf("Expected the print statement in:\n%s", unit.Output)
	}
}

func TestLexErrorAborts(t *testing.T) {
	unit := NewUnit("bad.ql", "Print \"oops")

	err := New(Options{}).Run(unit)
	if err == nil {
		t.Fatal("Expected a fatal lexical error")
	}
	if unit.Output != "" {
		t.Error("No output may be produced after a fatal lex error")
	}
	if unit.Bag.CountByCode(diagnostics.ErrUnterminatedString) != 1 {
		t.Errorf("Expected one UnterminatedString diagnostic:\n%s", unit.Bag.EmitAllToString())
	}
}

func TestParseErrorAborts(t *testing.T) {
	unit := NewUnit("bad.ql", "let x\nPrint x")

	err := New(Options{}).Run(unit)
	if err == nil {
		t.Fatal("Expected a fatal syntax error")
	}
	if unit.Output != "" {
		t.Error("No output may be produced after a fatal parse error")
	}
}

func TestSemanticErrorsSkipEmission(t *testing.T) {
	unit := NewUnit("bad.ql", "Print missing")

	err := New(Options{}).Run(unit)
	if err != nil {
		t.Fatalf("Semantic errors are not fatal: %v", err)
	}
	if !unit.Bag.HasErrors() {
		t.Fatal("Expected a semantic diagnostic")
	}
	if unit.Output != "" {
		t.Error("Emission must be skipped when the bag holds errors")
	}
}

func TestEmitOnErrorBypass(t *testing.T) {
	unit := NewUnit("bad.ql", "Print missing")

	err := New(Options{EmitOnError: true}).Run(unit)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !unit.Bag.HasErrors() {
		t.Fatal("Expected a semantic diagnostic")
	}
	if !strings.Contains(unit.Output, "std::cout << missing << std::endl;") {
		t.Errorf("EmitOnError must still emit:\n%s", unit.Output)
	}
}

func TestRecoveryModeStillFailsTheRun(t *testing.T) {
	unit := NewUnit("bad.ql", "let x 1\nlet y = 2")

	err := New(Options{RecoverStatements: true}).Run(unit)
	if err == nil {
		t.Fatal("A recovered parse with errors must still fail the run")
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("Expected a syntax error summary, got: %v", err)
	}
	if unit.Output != "" {
		t.Error("A partial AST must not be emitted")
	}
}

func TestRunAllIsolation(t *testing.T) {
	good := NewUnit("good.ql", "let x = 1\nPrint x")
	bad := NewUnit("bad.ql", "Print \"oops")
	other := NewUnit("other.ql", `Print "fine"`)

	err := New(Options{}).RunAll([]*Unit{good, bad, other})
	if err == nil {
		t.Fatal("Expected the failing unit's error to surface")
	}

	// The failure of one unit must not leak into the others.
	if good.Bag.HasErrors() || other.Bag.HasErrors() {
		t.Error("Diagnostics leaked across units")
	}
	if good.Output == "" || other.Output == "" {
		t.Error("Healthy units must still produce output")
	}
	if bad.Output != "" {
		t.Error("The failing unit must not produce output")
	}
}

func TestUnitIdentity(t *testing.T) {
	a := NewUnit("a.ql", "Print 1")
	b := NewUnit("a.ql", "Print 1")
	if a.ID == b.ID {
		t.Error("Each unit gets its own identity")
	}
}
