package ast

import (
	"quill/internal/source"
	"quill/internal/tokens"
	"quill/internal/types"
)

// Program is the root of a compilation unit (pure syntax tree).
// This is the output of the Parser phase - contains only syntactic
// information. Semantic information lives in the symbol table during
// analysis and is discarded with it.
type Program struct {
	FilePath string // the physical path to the source, for diagnostics
	Nodes    []Node // top-level declarations and statements

	source.Location
}

func (p *Program) INode()                {} // Implements Node interface
func (p *Program) Stmt()                 {} // Stmt is a marker interface for all statements
func (p *Program) Loc() *source.Location { return &p.Location }

// Block represents a brace-delimited statement list with its own scope
type Block struct {
	Nodes []Node
	source.Location
}

func (b *Block) INode()                {} // Implements Node interface
func (b *Block) Stmt()                 {} // Stmt is a marker interface for all statements
func (b *Block) Loc() *source.Location { return &b.Location }

// PrintStmt represents a print statement (Print expr)
type PrintStmt struct {
	Value Expression
	source.Location
}

func (p *PrintStmt) INode()                {} // Implements Node interface
func (p *PrintStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (p *PrintStmt) Loc() *source.Location { return &p.Location }

// VarDecl represents a variable declaration (let name [: type] = expr).
// The initializer is mandatory; Annotation is TypeUnknown when no explicit
// type was written.
type VarDecl struct {
	Name          *IdentifierExpr
	Annotation    types.TypeTag
	HasAnnotation bool
	Value         Expression
	source.Location
}

func (v *VarDecl) INode()                {} // Implements Node interface
func (v *VarDecl) Stmt()                 {} // Stmt is a marker interface for all statements
func (v *VarDecl) Loc() *source.Location { return &v.Location }

// IfStmt represents a conditional with an optional else branch
type IfStmt struct {
	Cond Expression
	Then *Block
	Else *Block // nil when there is no else branch
	source.Location
}

func (i *IfStmt) INode()                {} // Implements Node interface
func (i *IfStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (i *IfStmt) Loc() *source.Location { return &i.Location }

// LoopStmt represents a loop. The header token is carried through to
// emission verbatim (pass-through, not synthesized).
type LoopStmt struct {
	Header tokens.Token
	Body   *Block
	source.Location
}

func (l *LoopStmt) INode()                {} // Implements Node interface
func (l *LoopStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (l *LoopStmt) Loc() *source.Location { return &l.Location }

// FuncDecl represents a function declaration
type FuncDecl struct {
	Name   *IdentifierExpr
	Params []*IdentifierExpr
	Body   *Block
	source.Location
}

func (f *FuncDecl) INode()                {} // Implements Node interface
func (f *FuncDecl) Stmt()                 {} // Stmt is a marker interface for all statements
func (f *FuncDecl) Loc() *source.Location { return &f.Location }

// ReturnStmt represents a return statement
type ReturnStmt struct {
	Result Expression // nil for a bare return
	source.Location
}

func (r *ReturnStmt) INode()                {} // Implements Node interface
func (r *ReturnStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (r *ReturnStmt) Loc() *source.Location { return &r.Location }

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	X Expression
	source.Location
}

func (e *ExprStmt) INode()                {} // Implements Node interface
func (e *ExprStmt) Stmt()                 {} // Stmt is a marker interface for all statements
func (e *ExprStmt) Loc() *source.Location { return &e.Location }
