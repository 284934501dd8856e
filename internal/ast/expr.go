package ast

import (
	"quill/internal/source"
	"quill/internal/tokens"
	"quill/internal/types"
)

// BinaryExpr represents a binary expression
type BinaryExpr struct {
	X    Expression    // left operand
	Op   tokens.Token  // operator
	Y    Expression    // right operand
	Type types.TypeTag // populated during semantic analysis
	source.Location
}

func (b *BinaryExpr) INode()                {} // Implements Node interface
func (b *BinaryExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (b *BinaryExpr) Loc() *source.Location { return &b.Location }

// IdentifierExpr represents an identifier
type IdentifierExpr struct {
	Name string
	Type types.TypeTag // populated during semantic analysis, from the symbol table
	source.Location
}

func (i *IdentifierExpr) INode()                {} // Implements Node interface
func (i *IdentifierExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (i *IdentifierExpr) Loc() *source.Location { return &i.Location }

// BasicLit represents a literal value. Kind is the lexical class of the
// originating token; the type tag is inferred structurally from the lexeme
// during analysis.
type BasicLit struct {
	Kind  tokens.Kind
	Value string
	Type  types.TypeTag // populated during semantic analysis
	source.Location
}

func (b *BasicLit) INode()                {} // Implements Node interface
func (b *BasicLit) Expr()                 {} // Expr is a marker interface for all expressions
func (b *BasicLit) Loc() *source.Location { return &b.Location }

// CallExpr represents a function call expression
type CallExpr struct {
	Fun  *IdentifierExpr
	Args []Expression
	Type types.TypeTag // populated during semantic analysis
	source.Location
}

func (c *CallExpr) INode()                {} // Implements Node interface
func (c *CallExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (c *CallExpr) Loc() *source.Location { return &c.Location }
