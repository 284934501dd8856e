package diagnostics

import (
	"bytes"
	"os"
	"sync"

	"quill/internal/source"
)

// DiagnosticBag collects diagnostics during compilation. The error count is
// monotonic: it only ever grows, one increment per reported error.
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
	sources     map[string][]string
}

// NewDiagnosticBag creates a new diagnostic bag
func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
		sources:     make(map[string][]string),
	}
}

// AddSourceContent registers source content for a file path so the renderer
// can show source lines (compilation is in-memory, nothing is re-read).
func (db *DiagnosticBag) AddSourceContent(filepath, content string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.sources[filepath] = source.Lines(content)
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)

	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// ErrorCount returns the number of errors
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

// WarningCount returns the number of warnings
func (db *DiagnosticBag) WarningCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.warnCount
}

// Diagnostics returns a copy of all diagnostics (thread-safe)
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	result := make([]*Diagnostic, len(db.diagnostics))
	copy(result, db.diagnostics)
	return result
}

// CountByCode returns how many diagnostics carry the given kind tag.
func (db *DiagnosticBag) CountByCode(code string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, diag := range db.diagnostics {
		if diag.Code == code {
			n++
		}
	}
	return n
}

// EmitAll renders all diagnostics plus a summary to stderr.
func (db *DiagnosticBag) EmitAll() {
	renderer := NewRenderer(os.Stderr, db.snapshotSources())
	for _, diag := range db.Diagnostics() {
		renderer.Render(diag)
	}
	renderer.Summary(db.ErrorCount(), db.WarningCount())
}

// EmitAllToString renders all diagnostics plus a summary to a string.
func (db *DiagnosticBag) EmitAllToString() string {
	var buf bytes.Buffer
	renderer := NewRenderer(&buf, db.snapshotSources())
	for _, diag := range db.Diagnostics() {
		renderer.Render(diag)
	}
	renderer.Summary(db.ErrorCount(), db.WarningCount())
	return buf.String()
}

func (db *DiagnosticBag) snapshotSources() map[string][]string {
	db.mu.Lock()
	defer db.mu.Unlock()
	result := make(map[string][]string, len(db.sources))
	for k, v := range db.sources {
		result[k] = v
	}
	return result
}

// Clear removes all diagnostics
func (db *DiagnosticBag) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.diagnostics = make([]*Diagnostic, 0)
	db.errorCount = 0
	db.warnCount = 0
}
