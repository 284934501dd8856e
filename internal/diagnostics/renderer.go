package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	locationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	gutterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	primaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	secondaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// Renderer writes human-readable diagnostics with source context.
type Renderer struct {
	writer  io.Writer
	sources map[string][]string
}

// NewRenderer creates a renderer over the given source line cache.
func NewRenderer(w io.Writer, sources map[string][]string) *Renderer {
	return &Renderer{
		writer:  w,
		sources: sources,
	}
}

// Render writes one diagnostic: headline, location, labeled source lines,
// then notes and help.
func (r *Renderer) Render(diag *Diagnostic) {
	r.renderHeadline(diag)

	for _, label := range diag.Labels {
		r.renderLabel(diag, label)
	}

	for _, note := range diag.Notes {
		fmt.Fprintf(r.writer, "  %s %s\n", noteStyle.Render("note:"), note.Message)
	}
	if diag.Help != "" {
		fmt.Fprintf(r.writer, "  %s %s\n", noteStyle.Render("help:"), diag.Help)
	}
	fmt.Fprintln(r.writer)
}

func (r *Renderer) renderHeadline(diag *Diagnostic) {
	style := errorStyle
	switch diag.Severity {
	case Warning:
		style = warningStyle
	case Info:
		style = infoStyle
	}

	head := diag.Severity.String()
	if diag.Code != "" {
		head = fmt.Sprintf("%s[%s]", head, diag.Code)
	}
	fmt.Fprintf(r.writer, "%s: %s\n", style.Render(head), diag.Message)
}

func (r *Renderer) renderLabel(diag *Diagnostic, label Label) {
	loc := label.Location
	if loc == nil || loc.Start == nil {
		return
	}

	file := diag.FilePath
	if loc.Filename != nil {
		file = *loc.Filename
	}
	fmt.Fprintf(r.writer, "  %s %s\n", gutterStyle.Render("-->"),
		locationStyle.Render(fmt.Sprintf("%s:%d:%d", file, loc.Start.Line, loc.Start.Column)))

	lines, ok := r.sources[file]
	if !ok || loc.Start.Line < 1 || loc.Start.Line > len(lines) {
		if label.Message != "" {
			fmt.Fprintf(r.writer, "      %s\n", label.Message)
		}
		return
	}

	line := lines[loc.Start.Line-1]
	gutter := fmt.Sprintf("%4d |", loc.Start.Line)
	fmt.Fprintf(r.writer, "%s %s\n", gutterStyle.Render(gutter), line)

	marker, style := "^", primaryStyle
	if label.Style == Secondary {
		marker, style = "-", secondaryStyle
	}
	width := 1
	if loc.End != nil && loc.End.Line == loc.Start.Line && loc.End.Column > loc.Start.Column {
		width = loc.End.Column - loc.Start.Column
	}
	underline := strings.Repeat(marker, width)
	if label.Message != "" {
		underline += " " + label.Message
	}
	fmt.Fprintf(r.writer, "%s %s%s\n", gutterStyle.Render("     |"),
		strings.Repeat(" ", loc.Start.Column-1), style.Render(underline))
}

// Summary writes the compilation outcome line.
func (r *Renderer) Summary(errors, warnings int) {
	if errors > 0 {
		msg := fmt.Sprintf("compilation failed with %d error(s)", errors)
		if warnings > 0 {
			msg += fmt.Sprintf(" and %d warning(s)", warnings)
		}
		fmt.Fprintln(r.writer, errorStyle.Render(msg))
	} else if warnings > 0 {
		fmt.Fprintln(r.writer, warningStyle.Render(fmt.Sprintf("compilation succeeded with %d warning(s)", warnings)))
	}
}

// Success renders a green status line, used by the CLI.
func Success(msg string) string {
	return successStyle.Render(msg)
}

// Failure renders a red status line, used by the CLI.
func Failure(msg string) string {
	return errorStyle.Render(msg)
}
