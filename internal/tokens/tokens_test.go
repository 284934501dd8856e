package tokens

import "testing"

func TestIsKeyword(t *testing.T) {
	for _, word := range []string{"func", "Print", "if", "else", "loop", "let", "return", "call"} {
		if !IsKeyword(word) {
			t.Errorf("%q should be a keyword", word)
		}
	}

	// Matching is exact: prefixes, extensions, and case variants are
	// ordinary identifiers.
	for _, word := range []string{"print", "Func", "letter", "iff", "ret", ""} {
		if IsKeyword(word) {
			t.Errorf("%q should not be a keyword", word)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KIND_KEYWORD:    "keyword",
		KIND_IDENTIFIER: "identifier",
		KIND_NUMBER:     "number",
		KIND_STRING:     "string",
		KIND_OPERATOR:   "operator",
		KIND_SYMBOL:     "symbol",
		KIND_EOF:        "end_of_input",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("Kind %d: expected %q, got %q", kind, want, kind.String())
		}
	}
}
