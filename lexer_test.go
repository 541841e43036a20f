package magicscript

import "testing"

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, 0, len(toks))
	for _, t := range toks {
		if t.Kind == TokenComment {
			continue
		}
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeBasicProgram(t *testing.T) {
	toks := Tokenize(`let x = 1 + 2;`)
	want := []TokenKind{TokenLet, TokenIdent, TokenAssign, TokenNumber, TokenPlus, TokenNumber, TokenSemicolon, TokenEOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeKeywordsVsIdentifiers(t *testing.T) {
	toks := Tokenize(`spell letter(x) { return x; }`)
	if toks[0].Kind != TokenSpell {
		t.Fatalf("expected 'spell' keyword, got %s", toks[0].Kind)
	}
	if toks[1].Kind != TokenIdent || toks[1].Lexeme != "letter" {
		t.Fatalf("expected identifier 'letter', got %s %q", toks[1].Kind, toks[1].Lexeme)
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks := Tokenize(`"a\nb\"c"`)
	if toks[0].Kind != TokenString {
		t.Fatalf("expected string token, got %s", toks[0].Kind)
	}
	if want := "a\nb\"c"; toks[0].Lexeme != want {
		t.Fatalf("got %q, want %q", toks[0].Lexeme, want)
	}
}

func TestTokenizeUnterminatedStringIsError(t *testing.T) {
	toks := Tokenize(`"unterminated`)
	found := false
	for _, tk := range toks {
		if tk.Kind == TokenError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a TokenError for an unterminated string literal")
	}
}

func TestTokenizeMaximalMunchOperators(t *testing.T) {
	toks := Tokenize(`a += 1; b ++; c => d; e == f; g != h;`)
	want := map[int]TokenKind{1: TokenPlusAssign, 5: TokenPlusPlus, 8: TokenArrow, 12: TokenEq, 16: TokenNotEq}
	for idx, k := range want {
		if toks[idx].Kind != k {
			t.Fatalf("token %d: got %s, want %s", idx, toks[idx].Kind, k)
		}
	}
}
