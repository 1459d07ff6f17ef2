package markup

import (
	"errors"
	"strings"
	"testing"
)

func parseString(t *testing.T, tables Tables, input string) *File {
	t.Helper()
	f, err := Parse(tables, Lex(input))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return f
}

func TestParseEmptyDocument(t *testing.T) {
	f := parseString(t, Tables{}, "")
	if len(f.Headings) != 0 {
		t.Fatalf("headings = %v, want none", f.Headings)
	}
}

func TestParseHeadings(t *testing.T) {
	f := parseString(t, Tables{}, "# work\n[x] ship it\n\n# home\n- water plants\n")
	if len(f.Headings) != 2 {
		t.Fatalf("got %d headings, want 2", len(f.Headings))
	}
	if f.Headings[0].Name != "work" || f.Headings[1].Name != "home" {
		t.Errorf("heading names = %q, %q", f.Headings[0].Name, f.Headings[1].Name)
	}
	if len(f.Headings[0].Body) != 1 || len(f.Headings[1].Body) != 1 {
		t.Fatalf("body sizes = %d, %d, want 1, 1", len(f.Headings[0].Body), len(f.Headings[1].Body))
	}
	if _, ok := f.Headings[0].Body[0].(Todo); !ok {
		t.Errorf("first entry = %T, want Todo", f.Headings[0].Body[0])
	}
	if _, ok := f.Headings[1].Body[0].(Bullet); !ok {
		t.Errorf("second entry = %T, want Bullet", f.Headings[1].Body[0])
	}
}

func TestParseStateAliasResolution(t *testing.T) {
	tables := Tables{States: map[string]string{"x": "DONE"}}

	f := parseString(t, tables, "# h\n[x] buy milk\n[y] buy milk\n[] buy milk\n")
	body := f.Headings[0].Body
	if len(body) != 3 {
		t.Fatalf("got %d entries, want 3", len(body))
	}

	defined := body[0].(Todo).State
	if defined == nil || !defined.Defined || defined.Display != "DONE" || defined.Raw != "x" {
		t.Errorf("aliased state = %+v, want Defined(DONE)", defined)
	}
	other := body[1].(Todo).State
	if other == nil || other.Defined || other.Raw != "y" {
		t.Errorf("unaliased state = %+v, want Other(y)", other)
	}
	if body[2].(Todo).State != nil {
		t.Errorf("empty brackets resolved to %+v, want nil", body[2].(Todo).State)
	}
}

func TestParseNestedHeadingRejected(t *testing.T) {
	_, err := Parse(Tables{}, Lex("# outer\ntext\n# inner\n"))
	if err == nil {
		t.Fatal("expected an error")
	}
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("error = %v, want StructuralError", err)
	}
}

func TestParseUnexpectedTokenInBody(t *testing.T) {
	// a bracket-close with no opener matches no body rule; the loop must
	// abort instead of stalling
	tokens := []Token{
		{Kind: TokenHeading, Value: "h"},
		{Kind: TokenNewline},
		{Kind: TokenBracketClose},
	}
	_, err := Parse(Tables{}, tokens)
	if err == nil {
		t.Fatal("expected an error")
	}
	var unexpected *UnexpectedTokenError
	if !errors.As(err, &unexpected) {
		t.Fatalf("error = %v, want UnexpectedTokenError", err)
	}
	if unexpected.Got.Kind != TokenBracketClose {
		t.Errorf("got token = %v, want BRACKET_CLOSE", unexpected.Got)
	}
}

func TestParseEndOfInput(t *testing.T) {
	tokens := []Token{{Kind: TokenBracketOpen}}
	_, err := Parse(Tables{}, append([]Token{
		{Kind: TokenHeading, Value: "h"},
		{Kind: TokenNewline},
	}, tokens...))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrNoTokens) {
		t.Fatalf("error = %v, want ErrNoTokens cause", err)
	}
}

func TestParseMissingTrailingNewline(t *testing.T) {
	f := parseString(t, Tables{}, "# h\n[x] last line no newline")
	if len(f.Headings) != 1 || len(f.Headings[0].Body) != 1 {
		t.Fatalf("got %+v, want one heading with one todo", f)
	}
}

func TestParseLinkHandlerClassification(t *testing.T) {
	tables := Tables{Handlers: map[string]bool{"open": true}}
	f := parseString(t, tables, "# h\n|A[open:x]| and |B[mail:y]|\n")

	links := f.Links()
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if !links[0].Known {
		t.Errorf("handler %q not marked known", links[0].Handler)
	}
	if links[1].Known {
		t.Errorf("handler %q marked known", links[1].Handler)
	}
}

func TestParseErrorFormat(t *testing.T) {
	// pins the diagnostic rendering: cause first, then frames innermost
	// to outermost
	_, err := Parse(Tables{}, Lex("# h\n[x]\n"))
	if err == nil {
		t.Fatal("expected an error")
	}

	lines := strings.Split(err.Error(), "\n")
	if len(lines) < 2 {
		t.Fatalf("error rendering too short: %q", err.Error())
	}
	if !strings.HasPrefix(lines[0], "expected TEXT, got NEWLINE") {
		t.Errorf("cause line = %q", lines[0])
	}
	wantRules := []string{"Text", "Todo", "Heading", "File"}
	frames := lines[1:]
	if len(frames) != len(wantRules) {
		t.Fatalf("got %d frames (%q), want %d", len(frames), frames, len(wantRules))
	}
	for i, rule := range wantRules {
		if !strings.HasPrefix(strings.TrimSpace(frames[i]), rule+" ") {
			t.Errorf("frame %d = %q, want rule %q", i, frames[i], rule)
		}
	}
}

func TestParseRoundTripTree(t *testing.T) {
	tables := Tables{States: map[string]string{"x": "DONE"}}
	style := Style{Brackets: true, DefaultState: "TODO", Width: 400}
	printer := Printer{Style: style}

	input := "# work\n[x] ship *the* thing\n[] start -something- new\n- a `quiet` bullet\nshort note\n\n# home\n_rest_\n"
	first := parseString(t, tables, input)
	printed := printer.Print(first)
	second, err := Parse(tables, Lex(printed))
	if err != nil {
		t.Fatalf("reparse of %q failed: %v", printed, err)
	}
	reprinted := printer.Print(second)
	if printed != reprinted {
		t.Fatalf("round trip unstable:\nfirst  %q\nsecond %q", printed, reprinted)
	}
}
