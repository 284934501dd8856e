package emitter

import (
	"fmt"
	"strings"

	"quill/internal/ast"
	"quill/internal/tokens"
)

// Generator lowers an analyzed AST into C++ source text. Emission is a pure
// function of the AST: no symbol-table access, and the same tree always
// yields byte-identical text (required for reproducible builds and
// snapshot-style testing).
type Generator struct {
	buf       strings.Builder
	indent    int
	indentStr string
}

// New creates a generator with the default four-space indent.
func New() *Generator {
	return NewWithIndent("    ")
}

// NewWithIndent creates a generator using the given indent unit.
func NewWithIndent(indentStr string) *Generator {
	return &Generator{indentStr: indentStr}
}

// Emit generates the target program: preamble, then all function
// declarations in source order, then a single entry point wrapping all
// non-function top-level statements.
func (g *Generator) Emit(program *ast.Program) string {
	g.buf.Reset()
	g.indent = 0

	g.writePreamble()

	for _, node := range program.Nodes {
		if fn, ok := node.(*ast.FuncDecl); ok {
			g.generateFunction(fn)
		}
	}

	g.write("int main() {\n")
	g.indent++
	for _, node := range program.Nodes {
		if _, ok := node.(*ast.FuncDecl); ok {
			continue
		}
		g.generateStmt(node)
	}
	g.writeIndent()
	g.write("return 0;\n")
	g.indent--
	g.write("}\n")

	return g.buf.String()
}

func (g *Generator) writePreamble() {
	g.write("#include <iostream>\n")
	g.write("#include <string>\n")
	g.write("\n")
}

// generateFunction emits a callable with no declared return type.
func (g *Generator) generateFunction(decl *ast.FuncDecl) {
	g.write("auto %s(", decl.Name.Name)
	for i, param := range decl.Params {
		if i > 0 {
			g.write(", ")
		}
		g.write("auto %s", param.Name)
	}
	g.write(") {\n")
	g.indent++
	if decl.Body != nil {
		for _, node := range decl.Body.Nodes {
			g.generateStmt(node)
		}
	}
	g.indent--
	g.write("}\n\n")
}

func (g *Generator) generateStmt(node ast.Node) {
	switch n := node.(type) {
	case *ast.PrintStmt:
		g.writeIndent()
		g.write("std::cout << ")
		g.generateExpr(n.Value)
		g.write(" << std::endl;\n")
	case *ast.VarDecl:
		g.writeIndent()
		g.write("auto %s = ", n.Name.Name)
		g.generateExpr(n.Value)
		g.write(";\n")
	case *ast.IfStmt:
		g.writeIndent()
		g.write("if (")
		g.generateExpr(n.Cond)
		g.write(") ")
		g.generateBlock(n.Then)
		if n.Else != nil {
			g.write(" else ")
			g.generateBlock(n.Else)
		}
		g.write("\n")
	case *ast.LoopStmt:
		// Loop header is pass-through from the source token.
		g.writeIndent()
		g.write("while (%s) ", n.Header.Lexeme)
		g.generateBlock(n.Body)
		g.write("\n")
	case *ast.ReturnStmt:
		g.writeIndent()
		if n.Result != nil {
			g.write("return ")
			g.generateExpr(n.Result)
			g.write(";\n")
		} else {
			g.write("return;\n")
		}
	case *ast.ExprStmt:
		g.writeIndent()
		g.generateExpr(n.X)
		g.write(";\n")
	case *ast.Block:
		g.writeIndent()
		g.generateBlock(n)
		g.write("\n")
	}
}

// generateBlock emits a braced statement list without a trailing newline so
// statements can append 'else' or their own terminator.
func (g *Generator) generateBlock(block *ast.Block) {
	g.write("{\n")
	g.indent++
	if block != nil {
		for _, node := range block.Nodes {
			g.generateStmt(node)
		}
	}
	g.indent--
	g.writeIndent()
	g.write("}")
}

func (g *Generator) generateExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		if e.Kind == tokens.KIND_STRING {
			g.write("\"%s\"", escapeString(e.Value))
		} else {
			g.write("%s", e.Value)
		}
	case *ast.IdentifierExpr:
		g.write("%s", e.Name)
	case *ast.BinaryExpr:
		// Parenthesized so the emitted text preserves source grouping
		// without re-deriving precedence.
		g.write("(")
		g.generateExpr(e.X)
		g.write(" %s ", e.Op.Lexeme)
		g.generateExpr(e.Y)
		g.write(")")
	case *ast.CallExpr:
		g.write("%s(", e.Fun.Name)
		for i, arg := range e.Args {
			if i > 0 {
				g.write(", ")
			}
			g.generateExpr(arg)
		}
		g.write(")")
	}
}

// escapeString reapplies escaping of backslash, double quote, and the three
// control characters decoded by the tokenizer.
func escapeString(value string) string {
	var out strings.Builder
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			out.WriteString(`\\`)
		case '"':
			out.WriteString(`\"`)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		case '\r':
			out.WriteString(`\r`)
		default:
			out.WriteByte(value[i])
		}
	}
	return out.String()
}

func (g *Generator) write(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *Generator) writeIndent() {
	for i := 0; i < g.indent; i++ {
		g.buf.WriteString(g.indentStr)
	}
}
