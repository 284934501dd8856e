package compiler

import (
	"fmt"
	"os"

	"quill/internal/pipeline"
)

// Options for compilation
type Options struct {
	// For file-based compilation
	EntryFile string
	// For in-memory compilation
	Code string
	// Debug output
	Debug bool
	// Skip to the next statement boundary after a syntax error
	RecoverStatements bool
	// Emit target text even when semantic errors were reported
	EmitOnError bool
	// Indent unit for the emitted text
	Indent string
}

// Result of compilation
type Result struct {
	Success bool
	// Output is the emitted target text (empty when emission was skipped)
	Output string
	// Diagnostics is the rendered diagnostic report
	Diagnostics string
	// Errors is the accumulated error count
	Errors int
}

// Compile compiles Quill code and returns the result. The caller persists
// the output; this facade never writes files.
func Compile(opts Options) Result {
	code := opts.Code
	filename := "<memory>"

	if opts.EntryFile != "" {
		content, err := os.ReadFile(opts.EntryFile)
		if err != nil {
			return Result{
				Success:     false,
				Diagnostics: fmt.Sprintf("cannot read %s: %v\n", opts.EntryFile, err),
				Errors:      1,
			}
		}
		code = string(content)
		filename = opts.EntryFile
	}

	unit := pipeline.NewUnit(filename, code)
	p := pipeline.New(pipeline.Options{
		Debug:             opts.Debug,
		RecoverStatements: opts.RecoverStatements,
		EmitOnError:       opts.EmitOnError,
		Indent:            opts.Indent,
	})

	err := p.Run(unit)

	return Result{
		Success:     err == nil && !unit.Bag.HasErrors(),
		Output:      unit.Output,
		Diagnostics: unit.Bag.EmitAllToString(),
		Errors:      unit.Bag.ErrorCount(),
	}
}
