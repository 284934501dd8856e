package lexer

import (
	"fmt"
	"strings"

	"quill/internal/diagnostics"
	"quill/internal/source"
	"quill/internal/tokens"
)

// Lexer converts raw source text into a classified token stream. It is total
// and terminating: on success the stream always ends in an end-of-input
// token, and no input byte is silently dropped. Lexical errors are fatal and
// abort tokenization; no partial stream is handed to the parser.
type Lexer struct {
	src      []byte
	pos      source.Position
	filepath string
	bag      *diagnostics.DiagnosticBag
	toks     []tokens.Token
}

// New creates a lexer over in-memory source content.
func New(filepath, content string, bag *diagnostics.DiagnosticBag) *Lexer {
	return &Lexer{
		src:      []byte(content),
		filepath: filepath,
		bag:      bag,
		pos: source.Position{
			Line:   1,
			Column: 1,
			Index:  0,
		},
		toks: make([]tokens.Token, 0),
	}
}

// Tokenize scans the whole source. Comment tokens are discarded; the
// returned stream ends in an EOF token.
func (lex *Lexer) Tokenize() ([]tokens.Token, error) {
	for !lex.atEOF() {
		ch := lex.cur()

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			lex.pos.AdvanceBytes(1)
		case ch == '\n':
			lex.pos.AdvanceLine()
		case ch == '/' && lex.peek(1) == '/':
			lex.skipLineComment()
		case ch == '/' && lex.peek(1) == '*':
			lex.skipBlockComment()
		case ch == '"':
			if err := lex.scanString(); err != nil {
				return nil, err
			}
		case isDigit(ch):
			lex.scanNumber()
		case isIdentStart(ch):
			lex.scanIdentifier()
		case strings.IndexByte("+-*/=<>!", ch) >= 0:
			lex.scanOperator()
		case strings.IndexByte("(){},:", ch) >= 0:
			start := lex.pos
			lex.pos.AdvanceBytes(1)
			lex.push(tokens.NewToken(tokens.KIND_SYMBOL, string(ch), start, lex.pos))
		default:
			loc := source.NewLocation(&lex.filepath, &source.Position{
				Line: lex.pos.Line, Column: lex.pos.Column, Index: lex.pos.Index,
			}, &source.Position{
				Line: lex.pos.Line, Column: lex.pos.Column + 1, Index: lex.pos.Index + 1,
			})
			lex.bag.Add(
				diagnostics.NewError(fmt.Sprintf("unexpected character '%c'", ch)).
					WithCode(diagnostics.ErrUnexpectedCharacter).
					WithPrimaryLabel(loc, ""),
			)
			return nil, fmt.Errorf("unexpected character '%c' at %d:%d", ch, lex.pos.Line, lex.pos.Column)
		}
	}

	lex.push(tokens.NewToken(tokens.KIND_EOF, "end of input", lex.pos, lex.pos))
	return lex.toks, nil
}

func (lex *Lexer) atEOF() bool {
	return lex.pos.Index >= len(lex.src)
}

func (lex *Lexer) cur() byte {
	return lex.src[lex.pos.Index]
}

// peek returns the byte at the given offset from the cursor, or 0 past EOF.
func (lex *Lexer) peek(offset int) byte {
	idx := lex.pos.Index + offset
	if idx >= len(lex.src) {
		return 0
	}
	return lex.src[idx]
}

func (lex *Lexer) push(token tokens.Token) {
	lex.toks = append(lex.toks, token)
}

func (lex *Lexer) skipLineComment() {
	for !lex.atEOF() && lex.cur() != '\n' {
		lex.pos.AdvanceBytes(1)
	}
}

// skipBlockComment consumes until the matching close, tracking embedded
// newlines. An unterminated block comment silently consumes to end of input.
func (lex *Lexer) skipBlockComment() {
	lex.pos.AdvanceBytes(2) // consume /*
	for !lex.atEOF() {
		if lex.cur() == '*' && lex.peek(1) == '/' {
			lex.pos.AdvanceBytes(2)
			return
		}
		if lex.cur() == '\n' {
			lex.pos.AdvanceLine()
		} else {
			lex.pos.AdvanceBytes(1)
		}
	}
}

// scanString decodes a double-quoted literal. Recognized escapes are
// \n \t \r \\ \"; any other escape degrades to the character following the
// backslash. Reaching end of input before the closing quote is fatal.
func (lex *Lexer) scanString() error {
	start := lex.pos
	lex.pos.AdvanceBytes(1) // consume opening quote

	var value strings.Builder
	for !lex.atEOF() {
		ch := lex.cur()
		switch ch {
		case '"':
			lex.pos.AdvanceBytes(1)
			lex.push(tokens.NewToken(tokens.KIND_STRING, value.String(), start, lex.pos))
			return nil
		case '\\':
			lex.pos.AdvanceBytes(1)
			if lex.atEOF() {
				return lex.unterminatedString(start)
			}
			esc := lex.cur()
			switch esc {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '\\':
				value.WriteByte('\\')
			case '"':
				value.WriteByte('"')
			default:
				value.WriteByte(esc)
			}
			if esc == '\n' {
				lex.pos.AdvanceLine()
			} else {
				lex.pos.AdvanceBytes(1)
			}
		case '\n':
			value.WriteByte('\n')
			lex.pos.AdvanceLine()
		default:
			value.WriteByte(ch)
			lex.pos.AdvanceBytes(1)
		}
	}

	return lex.unterminatedString(start)
}

func (lex *Lexer) unterminatedString(start source.Position) error {
	end := lex.pos
	loc := source.NewLocation(&lex.filepath, &start, &end)
	lex.bag.Add(
		diagnostics.NewError("unterminated string literal").
			WithCode(diagnostics.ErrUnterminatedString).
			WithPrimaryLabel(loc, "string starts here").
			WithHelp("add a closing '\"'"),
	)
	return fmt.Errorf("unterminated string literal starting at line %d", start.Line)
}

// scanNumber reads a digit run, optionally followed by a decimal point and
// more digits. The point is only consumed when a digit follows it, so a
// trailing '.' is not part of the number. Fractional and whole numbers are
// not distinguished here.
func (lex *Lexer) scanNumber() {
	start := lex.pos
	for !lex.atEOF() && isDigit(lex.cur()) {
		lex.pos.AdvanceBytes(1)
	}
	if !lex.atEOF() && lex.cur() == '.' && isDigit(lex.peek(1)) {
		lex.pos.AdvanceBytes(1)
		for !lex.atEOF() && isDigit(lex.cur()) {
			lex.pos.AdvanceBytes(1)
		}
	}
	lex.push(tokens.NewToken(tokens.KIND_NUMBER, string(lex.src[start.Index:lex.pos.Index]), start, lex.pos))
}

func (lex *Lexer) scanIdentifier() {
	start := lex.pos
	for !lex.atEOF() && isIdentPart(lex.cur()) {
		lex.pos.AdvanceBytes(1)
	}
	word := string(lex.src[start.Index:lex.pos.Index])
	if tokens.IsKeyword(word) {
		lex.push(tokens.NewToken(tokens.KIND_KEYWORD, word, start, lex.pos))
	} else {
		lex.push(tokens.NewToken(tokens.KIND_IDENTIFIER, word, start, lex.pos))
	}
}

// scanOperator consumes greedily: a second character is read when it forms
// one of the two-character operators (==, !=, <=, >=).
func (lex *Lexer) scanOperator() {
	start := lex.pos
	ch := lex.cur()
	lex.pos.AdvanceBytes(1)
	if (ch == '=' || ch == '!' || ch == '<' || ch == '>') && !lex.atEOF() && lex.cur() == '=' {
		lex.pos.AdvanceBytes(1)
	}
	lex.push(tokens.NewToken(tokens.KIND_OPERATOR, string(lex.src[start.Index:lex.pos.Index]), start, lex.pos))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
