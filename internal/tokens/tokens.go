package tokens

import (
	"fmt"
	"os"

	"quill/internal/source"
)

// Kind classifies a lexical unit.
type Kind int

const (
	KIND_KEYWORD Kind = iota
	KIND_IDENTIFIER
	KIND_NUMBER
	KIND_STRING
	KIND_OPERATOR
	KIND_SYMBOL
	KIND_COMMENT
	KIND_EOF
	KIND_UNKNOWN
)

func (k Kind) String() string {
	switch k {
	case KIND_KEYWORD:
		return "keyword"
	case KIND_IDENTIFIER:
		return "identifier"
	case KIND_NUMBER:
		return "number"
	case KIND_STRING:
		return "string"
	case KIND_OPERATOR:
		return "operator"
	case KIND_SYMBOL:
		return "symbol"
	case KIND_COMMENT:
		return "comment"
	case KIND_EOF:
		return "end_of_input"
	default:
		return "unknown"
	}
}

// Leading keywords of the language. Membership is exact string match, so
// identifiers that merely start with a keyword are not misclassified.
const (
	KEYWORD_FUNC   = "func"
	KEYWORD_PRINT  = "Print"
	KEYWORD_IF     = "if"
	KEYWORD_ELSE   = "else"
	KEYWORD_LOOP   = "loop"
	KEYWORD_LET    = "let"
	KEYWORD_RETURN = "return"
	KEYWORD_CALL   = "call"
)

var keyWordsMap = map[string]bool{
	KEYWORD_FUNC:   true,
	KEYWORD_PRINT:  true,
	KEYWORD_IF:     true,
	KEYWORD_ELSE:   true,
	KEYWORD_LOOP:   true,
	KEYWORD_LET:    true,
	KEYWORD_RETURN: true,
	KEYWORD_CALL:   true,
}

func IsKeyword(word string) bool {
	return keyWordsMap[word]
}

// Token is a single classified lexical unit. Tokens are created once during
// tokenization, never mutated, and consumed read-only by the parser.
type Token struct {
	Kind   Kind
	Lexeme string
	Start  source.Position
	End    source.Position
}

func NewToken(kind Kind, lexeme string, start, end source.Position) Token {
	return Token{
		Kind:   kind,
		Lexeme: lexeme,
		Start:  start,
		End:    end,
	}
}

func (t *Token) Debug(filename string) {
	fmt.Fprintf(os.Stderr, "%s:%d:%d %q (%v)\n", filename, t.Start.Line, t.Start.Column, t.Lexeme, t.Kind)
}
