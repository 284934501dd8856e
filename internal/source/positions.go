package source

// Position represents a specific location in the source code with line, column, and index information.
type Position struct {
	Line   int // Line number in the source code, 1-based.
	Column int // Column number in the source code, 1-based.
	Index  int // Byte index in the source code.
}

// AdvanceBytes updates the Position by the given number of bytes on the
// current line. Newlines must go through AdvanceLine instead.
func (p *Position) AdvanceBytes(n int) *Position {
	p.Column += n
	p.Index += n
	return p
}

// AdvanceLine moves the Position past a newline byte.
func (p *Position) AdvanceLine() *Position {
	p.Line++
	p.Column = 1
	p.Index++
	return p
}
