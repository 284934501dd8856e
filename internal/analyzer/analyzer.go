package analyzer

import (
	"fmt"
	"strings"

	"quill/internal/ast"
	"quill/internal/diagnostics"
	"quill/internal/source"
	"quill/internal/table"
	"quill/internal/tokens"
	"quill/internal/types"
)

// Analyzer walks the AST, populates and queries the symbol table, and
// reports diagnostics. It never aborts: every violation is a recoverable
// diagnostic and the traversal always completes, so one bad statement does
// not hide errors in subsequent statements. The caller checks the bag's
// error count afterwards and decides whether to proceed to emission.
//
// The analyzer owns its symbol table exclusively for the duration of one
// Analyze call; the table is discarded with the analyzer.
type Analyzer struct {
	filepath    string
	symbols     *table.SymbolTable
	diagnostics *diagnostics.DiagnosticBag
}

// New creates an analyzer for one compilation unit.
func New(filepath string, diag *diagnostics.DiagnosticBag) *Analyzer {
	return &Analyzer{
		filepath:    filepath,
		symbols:     table.NewSymbolTable(),
		diagnostics: diag,
	}
}

// Analyze runs the semantic pass over the whole program. Top-level
// statements run in the global scope; every block gets its own nested scope.
func (a *Analyzer) Analyze(program *ast.Program) {
	for _, node := range program.Nodes {
		a.analyzeNode(node)
	}
}

func (a *Analyzer) analyzeNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Block:
		a.analyzeBlock(n)
	case *ast.FuncDecl:
		a.analyzeFuncDecl(n)
	case *ast.VarDecl:
		a.analyzeVarDecl(n)
	case *ast.IfStmt:
		a.analyzeIfStmt(n)
	case *ast.LoopStmt:
		// The header is pass-through; only the body is analyzed.
		a.analyzeBlock(n.Body)
	case *ast.PrintStmt:
		// The operand is analyzed for name-resolution errors only; its
		// type is not otherwise constrained.
		a.inferExpr(n.Value)
	case *ast.ReturnStmt:
		if n.Result != nil {
			a.inferExpr(n.Result)
		}
	case *ast.ExprStmt:
		a.inferExpr(n.X)
	}
}

// analyzeBlock guarantees no leakage of block-local names to the enclosing
// scope.
func (a *Analyzer) analyzeBlock(block *ast.Block) {
	if block == nil {
		return
	}
	a.symbols.EnterScope()
	for _, node := range block.Nodes {
		a.analyzeNode(node)
	}
	a.symbols.ExitScope()
}

// analyzeFuncDecl declares the function in the current scope and analyzes
// its body in a nested scope holding the parameters. Parameters bind fresh
// names that are initialized by the caller.
func (a *Analyzer) analyzeFuncDecl(decl *ast.FuncDecl) {
	if !a.symbols.Declare(decl.Name.Name, types.TypeFunction, decl.Name.Location.Start.Line, decl.Name.Location.Start.Column) {
		a.reportRedeclaration(decl.Name)
	} else {
		// A declared function is defined; calls to it are not
		// use-before-init.
		a.symbols.MarkInitialized(decl.Name.Name)
	}

	a.symbols.EnterScope()
	for _, param := range decl.Params {
		if !a.symbols.Declare(param.Name, types.TypeUnknown, param.Location.Start.Line, param.Location.Start.Column) {
			a.reportRedeclaration(param)
			continue
		}
		a.symbols.MarkInitialized(param.Name)
	}
	if decl.Body != nil {
		for _, node := range decl.Body.Nodes {
			a.analyzeNode(node)
		}
	}
	a.symbols.ExitScope()
}

func (a *Analyzer) analyzeVarDecl(decl *ast.VarDecl) {
	// Infer the initializer before declaring, so 'let x = x' resolves
	// against the enclosing scope.
	inferred := types.TypeUnknown
	if decl.Value != nil {
		inferred = a.inferExpr(decl.Value)
	}

	declared := inferred
	if decl.HasAnnotation {
		declared = decl.Annotation
		if decl.Value != nil && declared.IsConcrete() && inferred.IsConcrete() && declared != inferred {
			a.diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("type mismatch: variable '%s' is declared %s but initialized with %s",
					decl.Name.Name, declared, inferred)).
					WithCode(diagnostics.ErrTypeMismatch).
					WithPrimaryLabel(decl.Value.Loc(), fmt.Sprintf("this is %s", inferred)),
			)
		}
	}

	if !a.symbols.Declare(decl.Name.Name, declared, decl.Name.Location.Start.Line, decl.Name.Location.Start.Column) {
		a.reportRedeclaration(decl.Name)
		return
	}
	if decl.Value != nil {
		a.symbols.MarkInitialized(decl.Name.Name)
	}
}

// analyzeIfStmt checks the condition type and analyzes both branches in
// their own nested scopes regardless of the condition's type.
func (a *Analyzer) analyzeIfStmt(stmt *ast.IfStmt) {
	cond := a.inferExpr(stmt.Cond)
	if cond != types.TypeBoolean && cond != types.TypeUnknown {
		a.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("condition must be boolean, found %s", cond)).
				WithCode(diagnostics.ErrConditionNotBoolean).
				WithPrimaryLabel(stmt.Cond.Loc(), ""),
		)
	}
	a.analyzeBlock(stmt.Then)
	a.analyzeBlock(stmt.Else)
}

// inferExpr types an expression, annotating the node, and reports
// name-resolution and operand diagnostics along the way. Unresolvable
// expressions yield TypeUnknown so downstream checks degrade instead of
// cascading.
func (a *Analyzer) inferExpr(expr ast.Expression) types.TypeTag {
	switch e := expr.(type) {
	case *ast.BasicLit:
		e.Type = literalType(e)
		return e.Type
	case *ast.IdentifierExpr:
		e.Type = a.inferIdentifier(e)
		return e.Type
	case *ast.CallExpr:
		e.Type = a.inferCall(e)
		return e.Type
	case *ast.BinaryExpr:
		e.Type = a.inferBinary(e)
		return e.Type
	default:
		return types.TypeUnknown
	}
}

// literalType infers a literal's type from its lexical class and lexeme:
// strings are text regardless of their content, exactly true/false is
// boolean, a lexeme containing '.' or 'e' is floating, anything else is
// integer.
func literalType(lit *ast.BasicLit) types.TypeTag {
	if lit.Kind == tokens.KIND_STRING {
		return types.TypeText
	}
	if lit.Value == "true" || lit.Value == "false" {
		return types.TypeBoolean
	}
	if strings.ContainsAny(lit.Value, ".e") {
		return types.TypeFloating
	}
	return types.TypeInteger
}

func (a *Analyzer) inferIdentifier(ident *ast.IdentifierExpr) types.TypeTag {
	tag, ok := a.symbols.Lookup(ident.Name)
	if !ok {
		a.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("undefined variable '%s'", ident.Name)).
				WithCode(diagnostics.ErrUndefinedVariable).
				WithPrimaryLabel(ident.Loc(), "not declared in any enclosing scope"),
		)
		return types.TypeUnknown
	}
	// Reported in addition to, not instead of, using the found type.
	if !a.symbols.IsInitialized(ident.Name) {
		a.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("variable '%s' used before initialization", ident.Name)).
				WithCode(diagnostics.ErrUsedBeforeInit).
				WithPrimaryLabel(ident.Loc(), ""),
		)
	}
	return tag
}

// inferCall resolves the callee and analyzes the arguments. The lattice
// carries no signatures, so a call always yields TypeUnknown.
func (a *Analyzer) inferCall(call *ast.CallExpr) types.TypeTag {
	if _, ok := a.symbols.Lookup(call.Fun.Name); !ok {
		a.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("undefined variable '%s'", call.Fun.Name)).
				WithCode(diagnostics.ErrUndefinedVariable).
				WithPrimaryLabel(call.Fun.Loc(), "no function with this name in scope"),
		)
	}
	for _, arg := range call.Args {
		a.inferExpr(arg)
	}
	return types.TypeUnknown
}

// inferBinary types both operands and derives the result from the operator.
// Arithmetic over the two numeric tags widens rather than mismatching:
// floating wins when the operands differ. Any other pair of differing
// concrete types is a mismatch. Comparisons yield boolean.
func (a *Analyzer) inferBinary(bin *ast.BinaryExpr) types.TypeTag {
	left := a.inferExpr(bin.X)
	right := a.inferExpr(bin.Y)

	if isArithmetic(bin.Op.Lexeme) && isNumeric(left) && isNumeric(right) {
		if left == types.TypeFloating || right == types.TypeFloating {
			return types.TypeFloating
		}
		return types.TypeInteger
	}

	if left.IsConcrete() && right.IsConcrete() && left != right {
		a.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("type mismatch: %s %s %s", left, bin.Op.Lexeme, right)).
				WithCode(diagnostics.ErrTypeMismatch).
				WithPrimaryLabel(bin.Loc(), "").
				WithSecondaryLabel(bin.X.Loc(), fmt.Sprintf("this is %s", left)).
				WithSecondaryLabel(bin.Y.Loc(), fmt.Sprintf("this is %s", right)),
		)
		return types.TypeUnknown
	}

	switch bin.Op.Lexeme {
	case "+", "-", "*", "/":
		if left == types.TypeFloating || right == types.TypeFloating {
			return types.TypeFloating
		}
		return types.TypeInteger
	case "==", "!=", "<", ">", "<=", ">=":
		return types.TypeBoolean
	default:
		return types.TypeUnknown
	}
}

func isArithmetic(op string) bool {
	return op == "+" || op == "-" || op == "*" || op == "/"
}

func isNumeric(tag types.TypeTag) bool {
	return tag == types.TypeInteger || tag == types.TypeFloating
}

func (a *Analyzer) reportRedeclaration(name *ast.IdentifierExpr) {
	diag := diagnostics.NewError(fmt.Sprintf("'%s' is already declared in this scope", name.Name)).
		WithCode(diagnostics.ErrRedeclaration).
		WithPrimaryLabel(name.Loc(), "redeclared here")

	if info, ok := a.symbols.LookupLocal(name.Name); ok {
		pos := source.Position{Line: info.DeclaredLine, Column: info.DeclaredColumn}
		end := source.Position{Line: info.DeclaredLine, Column: info.DeclaredColumn + len(name.Name)}
		diag.WithSecondaryLabel(source.NewLocation(&a.filepath, &pos, &end), "first declared here")
	}

	a.diagnostics.Add(diag)
}
