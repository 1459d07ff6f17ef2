package markup

import "testing"

func TestPrintTodoStatePolicies(t *testing.T) {
	desc := Text{Normal{Text: "buy milk"}}
	tests := []struct {
		name  string
		style Style
		state *TodoState
		want  string
	}{
		{
			name:  "bare space for missing state",
			style: Style{},
			state: nil,
			want:  "  buy milk",
		},
		{
			name:  "brackets around missing state",
			style: Style{Brackets: true},
			state: nil,
			want:  "[ ] buy milk",
		},
		{
			name:  "configured default replaces missing state",
			style: Style{Brackets: true, DefaultState: "TODO"},
			state: nil,
			want:  "[TODO] buy milk",
		},
		{
			name:  "defined state prints its display text",
			style: Style{Brackets: true, DefaultState: "TODO"},
			state: &TodoState{Raw: "x", Display: "DONE", Defined: true},
			want:  "[DONE] buy milk",
		},
		{
			name:  "unrecognized state passes through raw",
			style: Style{Brackets: true},
			state: &TodoState{Raw: "wip"},
			want:  "[wip] buy milk",
		},
		{
			name:  "no brackets",
			style: Style{DefaultState: "TODO"},
			state: nil,
			want:  "TODO buy milk",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Printer{Style: tt.style}
			got := p.printTodo(Todo{State: tt.state, Description: desc})
			if got != tt.want {
				t.Errorf("printTodo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintBulletMarker(t *testing.T) {
	b := Bullet{Text: Text{Normal{Text: "water plants"}}}
	if got := (Printer{}).printBullet(b); got != "- water plants" {
		t.Errorf("default marker: got %q", got)
	}
	p := Printer{Style: Style{Bullet: "•"}}
	if got := p.printBullet(b); got != "• water plants" {
		t.Errorf("configured marker: got %q", got)
	}
}

func TestPrintParagraphWrapsAndIndents(t *testing.T) {
	p := Printer{Style: Style{Width: 20}}
	par := Paragraph{Text: Text{Normal{Text: "one two three four five"}}}
	want := "    one two three\n    four five"
	if got := p.printParagraph(par); got != want {
		t.Errorf("printParagraph() = %q, want %q", got, want)
	}
}

func TestPrintSpans(t *testing.T) {
	tests := []struct {
		name  string
		spans []Span
		want  string
	}{
		{
			name:  "styled pair",
			spans: []Span{Bold{Children: []Span{Normal{Text: "loud"}}}},
			want:  "*loud*",
		},
		{
			name: "nested styles",
			spans: []Span{Underline{Children: []Span{
				Normal{Text: "a "},
				Crossed{Children: []Span{Normal{Text: "b"}}},
			}}},
			want: "_a -b-_",
		},
		{
			name:  "link prints its name only",
			spans: []Span{Link{Name: "Site", Handler: "open", Path: "https://x"}},
			want:  "|Site|",
		},
		{
			name:  "unterminated fallback keeps its bare delimiter",
			spans: []Span{Extra{Delim: '`', Children: []Span{Normal{Text: "oops"}}}},
			want:  "`oops",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrintSpans(tt.spans); got != tt.want {
				t.Errorf("PrintSpans() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintDocumentShape(t *testing.T) {
	f := &File{Headings: []Heading{
		{Name: "work", Body: []Entry{
			Todo{State: &TodoState{Raw: "x", Display: "DONE", Defined: true},
				Description: Text{Normal{Text: "ship it"}}},
			Bullet{Text: Text{Normal{Text: "note"}}},
		}},
		{Name: "home", Body: []Entry{
			Paragraph{Text: Text{Normal{Text: "rest"}}},
		}},
	}}
	p := Printer{Style: Style{Brackets: true}}
	want := "# work\n    [DONE] ship it\n    - note\n\n# home\n    rest\n"
	if got := p.Print(f); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}
