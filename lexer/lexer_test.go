// ==============================================================================================
// FILE: lexer/lexer_test.go
// ==============================================================================================
package lexer

import (
	"testing"

	"paren/token"
)

func TestNextTokenBasicForm(t *testing.T) {
	input := `(+ 1 2.5 "hi there")`

	want := []token.Token{
		{Type: token.LPAREN, Literal: "("},
		{Type: token.WORD, Literal: "+"},
		{Type: token.WORD, Literal: "1"},
		{Type: token.WORD, Literal: "2.5"},
		{Type: token.STRING, Literal: "hi there"},
		{Type: token.RPAREN, Literal: ")"},
		{Type: token.EOF, Literal: ""},
	}

	l := New(input)
	for i, w := range want {
		got := l.NextToken()
		if got.Type != w.Type || got.Literal != w.Literal {
			t.Fatalf("token %d: got %+v, want type=%q literal=%q", i, got, w.Type, w.Literal)
		}
	}
}

func TestNextTokenSkipsComments(t *testing.T) {
	input := "; a leading comment\n(foo) ; trailing\n"
	l := New(input)

	if tok := l.NextToken(); tok.Type != token.LPAREN {
		t.Fatalf("expected LPAREN after comment, got %+v", tok)
	}
	if tok := l.NextToken(); tok.Literal != "foo" {
		t.Fatalf("expected WORD foo, got %+v", tok)
	}
	if tok := l.NextToken(); tok.Type != token.RPAREN {
		t.Fatalf("expected RPAREN, got %+v", tok)
	}
	if tok := l.NextToken(); tok.Type != token.EOF {
		t.Fatalf("expected EOF after trailing comment, got %+v", tok)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\rd\\e"`)
	tok := l.NextToken()
	want := "a\nb\tc\rd\\e"
	if tok.Literal != want {
		t.Fatalf("escaped literal = %q, want %q", tok.Literal, want)
	}
}

func TestUnclosedTracksBalance(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"balanced", "(+ 1 2)", 0},
		{"one open paren", "(+ 1 2", 1},
		{"nested open parens", "(foo (bar", 2},
		{"unterminated string", `(pr "hi`, 2},
		{"over-closed", "(foo))", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, unclosed := Tokenize(tt.input)
			if unclosed != tt.want {
				t.Errorf("Unclosed = %d, want %d", unclosed, tt.want)
			}
		})
	}
}

func TestReadWordStopsAtDelimiters(t *testing.T) {
	l := New(`foo(bar)"baz";qux`)
	tok := l.NextToken()
	if tok.Type != token.WORD || tok.Literal != "foo" {
		t.Fatalf("got %+v, want WORD foo", tok)
	}
}
