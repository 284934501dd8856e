package parser

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diagnostics"
	"quill/internal/source"
	"quill/internal/tokens"
	"quill/internal/types"
)

// The Parser builds an AST from a token stream by recursive descent.
//
// Syntax errors are fatal by default: the AST shape after a malformed
// statement is untrustworthy, so the parse aborts and nothing is handed to
// later stages. With Options.RecoverStatements the parser instead skips to
// the next statement boundary and continues, accumulating diagnostics.

// Options controls parse-level behavior.
type Options struct {
	// RecoverStatements makes syntax errors skip to the next statement
	// boundary instead of aborting the parse.
	RecoverStatements bool
}

// Parser holds temporary state during parsing of a single unit.
// This is created on-the-fly, not stored persistently.
type Parser struct {
	tokens      []tokens.Token
	current     int
	diagnostics *diagnostics.DiagnosticBag
	filepath    string
	opts        Options
}

// parseAbort carries a fatal syntax error up to the statement guard.
type parseAbort struct {
	err error
}

// Parse consumes a token stream and produces the Program root.
func Parse(toks []tokens.Token, filepath string, diag *diagnostics.DiagnosticBag, opts Options) (*ast.Program, error) {
	parser := &Parser{
		tokens:      toks,
		current:     0,
		diagnostics: diag,
		filepath:    filepath,
		opts:        opts,
	}

	return parser.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	start := p.peek().Start
	program := &ast.Program{
		FilePath: p.filepath,
		Nodes:    []ast.Node{},
	}

	for !p.isAtEnd() {
		node, err := p.parseStmtGuarded(true)
		if err != nil {
			if p.opts.RecoverStatements {
				p.synchronize()
				continue
			}
			return nil, err
		}
		if node != nil {
			program.Nodes = append(program.Nodes, node)
		}
	}

	program.Location = p.makeLocation(start)
	return program, nil
}

// parseStmtGuarded converts a fatal parse panic into an error so the caller
// can decide between aborting and statement-boundary recovery.
func (p *Parser) parseStmtGuarded(topLevel bool) (node ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(parseAbort)
			if !ok {
				panic(r)
			}
			node, err = nil, abort.err
		}
	}()
	return p.parseStmt(topLevel), nil
}

// synchronize skips tokens until the next plausible statement boundary.
func (p *Parser) synchronize() {
	if !p.isAtEnd() {
		p.advance()
	}
	for !p.isAtEnd() {
		tok := p.peek()
		if tok.Kind == tokens.KIND_KEYWORD && tok.Lexeme != tokens.KEYWORD_ELSE {
			return
		}
		if tok.Kind == tokens.KIND_SYMBOL && tok.Lexeme == "}" {
			return
		}
		p.advance()
	}
}

// parseStmt dispatches on the leading keyword; unmatched leading tokens are
// treated as a bare expression statement.
func (p *Parser) parseStmt(topLevel bool) ast.Node {
	tok := p.peek()

	if tok.Kind == tokens.KIND_KEYWORD {
		switch tok.Lexeme {
		case tokens.KEYWORD_FUNC:
			if !topLevel {
				p.fail(diagnostics.ErrUnexpectedToken, "function declarations are only allowed at the top level", nil)
			}
			return p.parseFuncDecl()
		case tokens.KEYWORD_PRINT:
			return p.parsePrintStmt()
		case tokens.KEYWORD_IF:
			return p.parseIfStmt()
		case tokens.KEYWORD_LOOP:
			return p.parseLoopStmt()
		case tokens.KEYWORD_LET:
			return p.parseVarDecl()
		case tokens.KEYWORD_RETURN:
			return p.parseReturnStmt()
		case tokens.KEYWORD_CALL:
			return p.parseCallStmt()
		case tokens.KEYWORD_ELSE:
			p.fail(diagnostics.ErrUnexpectedToken, "'else' without a preceding 'if'", nil)
		}
	}

	start := tok.Start
	expr := p.parseExpr()
	return &ast.ExprStmt{
		X:        expr,
		Location: p.makeLocation(start),
	}
}

// parseBlock: { stmt* }. Reaching end of input before the closing brace is
// fatal regardless of recovery mode.
func (p *Parser) parseBlock() *ast.Block {
	open := p.expectSymbol("{")
	block := &ast.Block{Nodes: []ast.Node{}}

	for !p.atSymbol("}") {
		if p.isAtEnd() {
			loc := p.tokenLocation(open)
			p.diagnostics.Add(
				diagnostics.NewError("unterminated block").
					WithCode(diagnostics.ErrUnterminatedBlock).
					WithPrimaryLabel(loc, "block opened here").
					WithHelp("add a closing '}'"),
			)
			panic(parseAbort{err: fmt.Errorf("unterminated block opened at line %d", open.Start.Line)})
		}
		node := p.parseStmt(false)
		if node != nil {
			block.Nodes = append(block.Nodes, node)
		}
	}

	p.expectSymbol("}")
	block.Location = p.makeLocation(open.Start)
	return block
}

// parsePrintStmt: Print expr
func (p *Parser) parsePrintStmt() *ast.PrintStmt {
	start := p.expectKeyword(tokens.KEYWORD_PRINT).Start
	value := p.parseExpr()
	return &ast.PrintStmt{
		Value:    value,
		Location: p.makeLocation(start),
	}
}

// parseVarDecl: let name [: type] = expr. The initializer is mandatory.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	start := p.expectKeyword(tokens.KEYWORD_LET).Start

	nameTok := p.expectIdentifier("variable name")
	name := &ast.IdentifierExpr{
		Name:     nameTok.Lexeme,
		Location: *p.tokenLocation(nameTok),
	}

	annotation := types.TypeUnknown
	hasAnnotation := false
	if p.atSymbol(":") {
		p.advance()
		typeTok := p.expectIdentifier("type name")
		tag, ok := types.FromAnnotation(typeTok.Lexeme)
		if !ok {
			p.fail(diagnostics.ErrUnexpectedToken,
				fmt.Sprintf("unknown type name '%s'", typeTok.Lexeme),
				p.tokenLocation(typeTok))
		}
		annotation = tag
		hasAnnotation = true
	}

	if !p.atOperator("=") {
		tok := p.peek()
		loc := p.tokenLocation(tok)
		p.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("expected '=' after variable name '%s'", name.Name)).
				WithCode(diagnostics.ErrExpectedAssignment).
				WithPrimaryLabel(loc, "initializer is mandatory").
				WithHelp(fmt.Sprintf("write 'let %s = <expression>'", name.Name)),
		)
		panic(parseAbort{err: fmt.Errorf("expected '=' in declaration of '%s' at line %d", name.Name, tok.Start.Line)})
	}
	p.advance()

	value := p.parseExpr()

	return &ast.VarDecl{
		Name:          name,
		Annotation:    annotation,
		HasAnnotation: hasAnnotation,
		Value:         value,
		Location:      p.makeLocation(start),
	}
}

// parseIfStmt: if cond { } [else { }]. The condition is captured as a
// generic expression; it is not type-checked here.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.expectKeyword(tokens.KEYWORD_IF).Start

	cond := p.parseExpr()
	then := p.parseBlock()

	var elseBlock *ast.Block
	if p.atKeyword(tokens.KEYWORD_ELSE) {
		p.advance()
		elseBlock = p.parseBlock()
	}

	return &ast.IfStmt{
		Cond:     cond,
		Then:     then,
		Else:     elseBlock,
		Location: p.makeLocation(start),
	}
}

// parseLoopStmt: loop <header-token> { }. The header token is not
// interpreted; emission pastes its lexeme through verbatim.
func (p *Parser) parseLoopStmt() *ast.LoopStmt {
	start := p.expectKeyword(tokens.KEYWORD_LOOP).Start

	if p.atSymbol("{") || p.isAtEnd() {
		p.fail(diagnostics.ErrExpectedToken, "expected loop header after 'loop'", nil)
	}
	header := p.advance()
	body := p.parseBlock()

	return &ast.LoopStmt{
		Header:   header,
		Body:     body,
		Location: p.makeLocation(start),
	}
}

// parseFuncDecl: func name(params) { }
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	start := p.expectKeyword(tokens.KEYWORD_FUNC).Start

	nameTok := p.expectIdentifier("function name")
	name := &ast.IdentifierExpr{
		Name:     nameTok.Lexeme,
		Location: *p.tokenLocation(nameTok),
	}

	p.expectSymbol("(")
	params := []*ast.IdentifierExpr{}
	for !p.atSymbol(")") {
		if len(params) > 0 {
			p.expectSymbol(",")
		}
		paramTok := p.expectIdentifier("parameter name")
		params = append(params, &ast.IdentifierExpr{
			Name:     paramTok.Lexeme,
			Location: *p.tokenLocation(paramTok),
		})
	}
	p.expectSymbol(")")

	body := p.parseBlock()

	return &ast.FuncDecl{
		Name:     name,
		Params:   params,
		Body:     body,
		Location: p.makeLocation(start),
	}
}

// parseReturnStmt: return [expr]. The result must begin on the same line;
// a closing brace or end of input also ends a bare return.
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	kw := p.expectKeyword(tokens.KEYWORD_RETURN)

	var result ast.Expression
	if !p.atSymbol("}") && !p.isAtEnd() && p.peek().Start.Line == kw.Start.Line {
		result = p.parseExpr()
	}

	return &ast.ReturnStmt{
		Result:   result,
		Location: p.makeLocation(kw.Start),
	}
}

// parseCallStmt: call name(args)
func (p *Parser) parseCallStmt() *ast.ExprStmt {
	start := p.expectKeyword(tokens.KEYWORD_CALL).Start

	nameTok := p.expectIdentifier("function name")
	call := p.parseCallExpr(nameTok)

	return &ast.ExprStmt{
		X:        call,
		Location: p.makeLocation(start),
	}
}

// parseExpr parses an expression. Precedence climbs through three levels:
// multiplicative > additive > relational, all left-associative.
func (p *Parser) parseExpr() ast.Expression {
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()

	for p.atOperator("==", "!=", "<", ">", "<=", ">=") {
		op := p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{
			X:        left,
			Op:       op,
			Y:        right,
			Location: *source.NewLocation(&p.filepath, left.Loc().Start, right.Loc().End),
		}
	}

	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()

	for p.atOperator("+", "-") {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{
			X:        left,
			Op:       op,
			Y:        right,
			Location: *source.NewLocation(&p.filepath, left.Loc().Start, right.Loc().End),
		}
	}

	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parsePrimary()

	for p.atOperator("*", "/") {
		op := p.advance()
		right := p.parsePrimary()
		left = &ast.BinaryExpr{
			X:        left,
			Op:       op,
			Y:        right,
			Location: *source.NewLocation(&p.filepath, left.Loc().Start, right.Loc().End),
		}
	}

	return left
}

// parsePrimary parses literals, identifiers, parenthesized expressions, and
// function calls.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()

	switch tok.Kind {
	case tokens.KIND_NUMBER, tokens.KIND_STRING:
		p.advance()
		return &ast.BasicLit{
			Kind:     tok.Kind,
			Value:    tok.Lexeme,
			Location: *p.tokenLocation(tok),
		}
	case tokens.KIND_IDENTIFIER:
		p.advance()
		if tok.Lexeme == "true" || tok.Lexeme == "false" {
			return &ast.BasicLit{
				Kind:     tok.Kind,
				Value:    tok.Lexeme,
				Location: *p.tokenLocation(tok),
			}
		}
		if p.atSymbol("(") {
			return p.parseCallExpr(tok)
		}
		return &ast.IdentifierExpr{
			Name:     tok.Lexeme,
			Location: *p.tokenLocation(tok),
		}
	case tokens.KIND_SYMBOL:
		if tok.Lexeme == "(" {
			p.advance()
			expr := p.parseExpr()
			p.expectSymbol(")")
			return expr
		}
	}

	p.fail(diagnostics.ErrUnexpectedToken,
		fmt.Sprintf("expected expression, found %q", tok.Lexeme), nil)
	return nil
}

// parseCallExpr parses the argument list for a call whose name token has
// already been consumed.
func (p *Parser) parseCallExpr(nameTok tokens.Token) *ast.CallExpr {
	p.expectSymbol("(")

	args := []ast.Expression{}
	for !p.atSymbol(")") {
		if len(args) > 0 {
			p.expectSymbol(",")
		}
		args = append(args, p.parseExpr())
	}
	closeTok := p.expectSymbol(")")

	return &ast.CallExpr{
		Fun: &ast.IdentifierExpr{
			Name:     nameTok.Lexeme,
			Location: *p.tokenLocation(nameTok),
		},
		Args:     args,
		Location: *source.NewLocation(&p.filepath, &nameTok.Start, &closeTok.End),
	}
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == tokens.KIND_EOF
}

func (p *Parser) peek() tokens.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() tokens.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() tokens.Token {
	tok := p.peek()
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return tok
}

func (p *Parser) atKeyword(word string) bool {
	tok := p.peek()
	return tok.Kind == tokens.KIND_KEYWORD && tok.Lexeme == word
}

func (p *Parser) atSymbol(sym string) bool {
	tok := p.peek()
	return tok.Kind == tokens.KIND_SYMBOL && tok.Lexeme == sym
}

func (p *Parser) atOperator(ops ...string) bool {
	tok := p.peek()
	if tok.Kind != tokens.KIND_OPERATOR {
		return false
	}
	for _, op := range ops {
		if tok.Lexeme == op {
			return true
		}
	}
	return false
}

func (p *Parser) expectKeyword(word string) tokens.Token {
	if !p.atKeyword(word) {
		p.fail(diagnostics.ErrExpectedToken,
			fmt.Sprintf("expected '%s', found %q", word, p.peek().Lexeme), nil)
	}
	return p.advance()
}

func (p *Parser) expectSymbol(sym string) tokens.Token {
	if !p.atSymbol(sym) {
		p.fail(diagnostics.ErrExpectedToken,
			fmt.Sprintf("expected '%s', found %q", sym, p.peek().Lexeme), nil)
	}
	return p.advance()
}

func (p *Parser) expectIdentifier(what string) tokens.Token {
	tok := p.peek()
	if tok.Kind != tokens.KIND_IDENTIFIER {
		p.fail(diagnostics.ErrExpectedToken,
			fmt.Sprintf("expected %s, found %q", what, tok.Lexeme), nil)
	}
	return p.advance()
}

// fail reports a fatal syntax error and aborts the current statement.
func (p *Parser) fail(code, msg string, loc *source.Location) {
	if loc == nil {
		tok := p.peek()
		loc = p.tokenLocation(tok)
	}
	p.diagnostics.Add(
		diagnostics.NewError(msg).
			WithCode(code).
			WithPrimaryLabel(loc, ""),
	)
	panic(parseAbort{err: fmt.Errorf("%s at %d:%d", msg, loc.Start.Line, loc.Start.Column)})
}

// tokenLocation builds a location spanning one token.
func (p *Parser) tokenLocation(tok tokens.Token) *source.Location {
	start := tok.Start
	end := tok.End
	return source.NewLocation(&p.filepath, &start, &end)
}

// makeLocation creates a source location from start to the current position
func (p *Parser) makeLocation(start source.Position) source.Location {
	end := p.previous().End
	return *source.NewLocation(&p.filepath, &start, &end)
}
