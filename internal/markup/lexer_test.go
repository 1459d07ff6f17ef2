package markup

import (
	"reflect"
	"strings"
	"testing"
)

func TestLexEmptyInput(t *testing.T) {
	if tokens := Lex(""); len(tokens) != 0 {
		t.Fatalf("expected no tokens, got %v", tokens)
	}
}

func TestLexLineTokens(t *testing.T) {
	input := "# work\n[x] buy milk\n- call mom\nsome notes\n"
	tokens := Lex(input)

	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	want := []TokenKind{
		TokenHeading, TokenNewline,
		TokenBracketOpen, TokenInside, TokenBracketClose, TokenText, TokenNewline,
		TokenBullet, TokenNewline,
		TokenText, TokenNewline,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("token kinds = %v, want %v", kinds, want)
	}
	if tokens[0].Value != "work" {
		t.Errorf("heading name = %q, want %q", tokens[0].Value, "work")
	}
	if tokens[3].Value != "x" {
		t.Errorf("bracket content = %q, want %q", tokens[3].Value, "x")
	}
}

func TestLexHeadingTrimsSpaces(t *testing.T) {
	tokens := Lex("#   padded title   \n")
	if tokens[0].Kind != TokenHeading || tokens[0].Value != "padded title" {
		t.Fatalf("got %v, want HEADING(%q)", tokens[0], "padded title")
	}
}

func TestLexHeadingAtEndOfInput(t *testing.T) {
	tokens := Lex("# last")
	if len(tokens) != 1 || tokens[0].Kind != TokenHeading || tokens[0].Value != "last" {
		t.Fatalf("got %v, want a single HEADING(%q)", tokens, "last")
	}
}

func TestLexLeadingSpacesInsignificant(t *testing.T) {
	tokens := Lex("    - indented bullet\n")
	if tokens[0].Kind != TokenBullet {
		t.Fatalf("got %v, want BULLET first", tokens)
	}
}

func TestLexEmptyBrackets(t *testing.T) {
	tokens := Lex("[] no state\n")
	if tokens[1].Kind != TokenInside || tokens[1].Value != "" {
		t.Fatalf("got %v, want empty INSIDE", tokens[1])
	}
}

func TestLexTotality(t *testing.T) {
	// lex never fails; every input produces a token stream
	inputs := []string{
		"",
		"\n\n\n",
		"`_-*/|",
		"[unclosed bracket",
		"# ",
		"|",
		"`unterminated at eof",
		strings.Repeat("*", 40),
	}
	for _, input := range inputs {
		// any panic fails the test
		_ = Lex(input)
	}
}

func TestLexInlineNesting(t *testing.T) {
	tokens := Lex("_a-b-c_\n")
	want := []Span{Underline{Children: []Span{
		Normal{Text: "a"},
		Crossed{Children: []Span{Normal{Text: "b"}}},
		Normal{Text: "c"},
	}}}
	if !reflect.DeepEqual(tokens[0].Spans, want) {
		t.Fatalf("spans = %v, want %v", tokens[0].Spans, want)
	}
}

func TestLexVerbatimStillNests(t *testing.T) {
	// verbatim highlights, it does not escape
	tokens := Lex("`a *b*`\n")
	want := []Span{Verbatim{Children: []Span{
		Normal{Text: "a "},
		Bold{Children: []Span{Normal{Text: "b"}}},
	}}}
	if !reflect.DeepEqual(tokens[0].Spans, want) {
		t.Fatalf("spans = %v, want %v", tokens[0].Spans, want)
	}
}

func TestLexUnterminatedSpanFallback(t *testing.T) {
	tokens := Lex("`abc\n")
	want := []Span{Extra{Delim: '`', Children: []Span{Normal{Text: "abc"}}}}
	if !reflect.DeepEqual(tokens[0].Spans, want) {
		t.Fatalf("spans = %v, want %v", tokens[0].Spans, want)
	}
}

func TestLexUnterminatedSpanAtEndOfInput(t *testing.T) {
	// no newline before end of input: the span closes implicitly
	tokens := Lex("*abc")
	want := []Span{Bold{Children: []Span{Normal{Text: "abc"}}}}
	if !reflect.DeepEqual(tokens[0].Spans, want) {
		t.Fatalf("spans = %v, want %v", tokens[0].Spans, want)
	}
}

func TestLexLink(t *testing.T) {
	tokens := Lex("|Site[open:https://x]|\n")
	want := []Span{Link{Name: "Site", Handler: "open", Path: "https://x"}}
	if !reflect.DeepEqual(tokens[0].Spans, want) {
		t.Fatalf("spans = %v, want %v", tokens[0].Spans, want)
	}
}

func TestLexLinkMidLine(t *testing.T) {
	tokens := Lex("see |Site[open:x]| today\n")
	want := []Span{
		Normal{Text: "see "},
		Link{Name: "Site", Handler: "open", Path: "x"},
		Normal{Text: " today"},
	}
	if !reflect.DeepEqual(tokens[0].Spans, want) {
		t.Fatalf("spans = %v, want %v", tokens[0].Spans, want)
	}
}

func TestLexLinkStrictness(t *testing.T) {
	// each input is missing one piece of the sub-grammar; the leading pipe
	// must degrade to the unterminated fallback, never a Link
	inputs := []string{
		"|Site[open:https://x\n",
		"|Site[open]|\n",
		"|Site|\n",
		"|Site[open:x]extra|\n",
	}
	for _, input := range inputs {
		tokens := Lex(input)
		if len(tokens[0].Spans) == 0 {
			t.Errorf("%q: no spans", input)
			continue
		}
		first, ok := tokens[0].Spans[0].(Extra)
		if !ok {
			t.Errorf("%q: first span = %#v, want Extra fallback", input, tokens[0].Spans[0])
			continue
		}
		if first.Delim != '|' {
			t.Errorf("%q: fallback delimiter = %c, want |", input, first.Delim)
		}
	}
}

func TestLexTodoDescriptionSpans(t *testing.T) {
	tokens := Lex("[x] buy *milk*\n")
	want := []Span{
		Normal{Text: "buy "},
		Bold{Children: []Span{Normal{Text: "milk"}}},
	}
	if tokens[3].Kind != TokenText {
		t.Fatalf("token after brackets = %v, want TEXT", tokens[3])
	}
	if !reflect.DeepEqual(tokens[3].Spans, want) {
		t.Fatalf("description spans = %v, want %v", tokens[3].Spans, want)
	}
}
