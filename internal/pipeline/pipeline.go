package pipeline

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"quill/internal/analyzer"
	"quill/internal/diagnostics"
	"quill/internal/emitter"
	"quill/internal/lexer"
	"quill/internal/parser"
)

var (
	phaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	unitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// Options controls one pipeline run.
type Options struct {
	Debug             bool
	RecoverStatements bool
	// EmitOnError emits target text even when semantic diagnostics were
	// reported; the default policy skips emission entirely.
	EmitOnError bool
	Indent      string
}

// Unit is one compilation unit: a single in-memory source buffer with its
// own diagnostics bag and, after a successful run, its emitted target text.
// Units share no mutable state, so a driver may compile many in parallel.
type Unit struct {
	ID       uuid.UUID
	FilePath string
	Source   string
	Bag      *diagnostics.DiagnosticBag
	Output   string
}

// NewUnit creates a unit over in-memory source content.
func NewUnit(filepath, content string) *Unit {
	bag := diagnostics.NewDiagnosticBag()
	bag.AddSourceContent(filepath, content)
	return &Unit{
		ID:       uuid.New(),
		FilePath: filepath,
		Source:   content,
		Bag:      bag,
	}
}

// Pipeline coordinates the compilation stages for units. The stages of one
// unit run sequentially - tokenize, parse, analyze, emit - each stage owning
// the intermediate result exclusively before handing it off.
type Pipeline struct {
	opts Options
}

// New creates a pipeline with the given options.
func New(opts Options) *Pipeline {
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	return &Pipeline{opts: opts}
}

// Run executes the full pipeline for one unit. Fatal lexical or syntactic
// errors abort immediately; semantic diagnostics accumulate and, unless
// EmitOnError is set, suppress emission.
func (p *Pipeline) Run(unit *Unit) error {
	p.banner(unit, "Tokenize")
	lex := lexer.New(unit.FilePath, unit.Source, unit.Bag)
	toks, err := lex.Tokenize()
	if err != nil {
		return fmt.Errorf("tokenize %s: %w", unit.FilePath, err)
	}

	p.banner(unit, "Parse")
	program, err := parser.Parse(toks, unit.FilePath, unit.Bag, parser.Options{
		RecoverStatements: p.opts.RecoverStatements,
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", unit.FilePath, err)
	}
	if p.opts.RecoverStatements && unit.Bag.HasErrors() {
		// Recovery produced a partial AST; it is diagnosable but not
		// emittable.
		return fmt.Errorf("parse %s: %d syntax error(s)", unit.FilePath, unit.Bag.ErrorCount())
	}

	p.banner(unit, "Analyze")
	analyzer.New(unit.FilePath, unit.Bag).Analyze(program)

	if unit.Bag.HasErrors() && !p.opts.EmitOnError {
		return nil
	}

	p.banner(unit, "Emit")
	unit.Output = emitter.NewWithIndent(p.opts.Indent).Emit(program)
	return nil
}

// RunAll compiles independent units in parallel, one goroutine per unit.
// Each unit has its own isolated bag, symbol table, and AST, so no locks
// guard the stages themselves. The first error is returned; all units run
// to completion regardless.
func (p *Pipeline) RunAll(units []*Unit) error {
	var wg sync.WaitGroup
	errs := make([]error, len(units))

	for i, unit := range units {
		wg.Add(1)
		go func(i int, unit *Unit) {
			defer wg.Done()
			errs[i] = p.Run(unit)
		}(i, unit)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) banner(unit *Unit, phase string) {
	if !p.opts.Debug {
		return
	}
	fmt.Printf("%s %s\n",
		phaseStyle.Render(fmt.Sprintf("[%s]", phase)),
		unitStyle.Render(fmt.Sprintf("%s (unit %s)", unit.FilePath, unit.ID)))
}
