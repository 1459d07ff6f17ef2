// Package export converts document trees to external formats: a stable
// JSON shape for scripting and s-expression widgets for eww.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/tdo-cli/tdo/internal/markup"
)

// Document is the JSON shape of a parsed todo file.
type Document struct {
	Headings []Heading `json:"headings"`
}

// Heading is one heading with its body entries.
type Heading struct {
	Name string  `json:"name"`
	Body []Entry `json:"body"`
}

// Entry is one body entry. Kind is "todo", "bullet" or "paragraph"; State
// is present only for todos.
type Entry struct {
	Kind  string `json:"kind"`
	State *State `json:"state,omitempty"`
	Text  []Span `json:"text"`
}

// State is a todo's state.
type State struct {
	Raw     string `json:"raw"`
	Display string `json:"display"`
	Defined bool   `json:"defined"`
}

// Span is one inline span. Kind selects which of the optional fields are
// meaningful: "text" carries Text, styled kinds carry Children, "link"
// carries Name/Handler/Path/Known, "extra" carries Delim and Children.
type Span struct {
	Kind     string `json:"kind"`
	Text     string `json:"text,omitempty"`
	Delim    string `json:"delim,omitempty"`
	Name     string `json:"name,omitempty"`
	Handler  string `json:"handler,omitempty"`
	Path     string `json:"path,omitempty"`
	Known    bool   `json:"known,omitempty"`
	Children []Span `json:"children,omitempty"`
}

// FromFile converts a document tree to its JSON shape.
func FromFile(f *markup.File) Document {
	doc := Document{Headings: make([]Heading, len(f.Headings))}
	for i, h := range f.Headings {
		heading := Heading{Name: h.Name, Body: make([]Entry, len(h.Body))}
		for j, e := range h.Body {
			heading.Body[j] = fromEntry(e)
		}
		doc.Headings[i] = heading
	}
	return doc
}

// Marshal renders a document tree as indented JSON.
func Marshal(f *markup.File) ([]byte, error) {
	data, err := json.MarshalIndent(FromFile(f), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

func fromEntry(e markup.Entry) Entry {
	switch e := e.(type) {
	case markup.Todo:
		out := Entry{Kind: "todo", Text: fromSpans(e.Description)}
		if e.State != nil {
			out.State = &State{Raw: e.State.Raw, Display: e.State.Display, Defined: e.State.Defined}
		}
		return out
	case markup.Bullet:
		return Entry{Kind: "bullet", Text: fromSpans(e.Text)}
	case markup.Paragraph:
		return Entry{Kind: "paragraph", Text: fromSpans(e.Text)}
	default:
		return Entry{Kind: "paragraph"}
	}
}

func fromSpans(spans []markup.Span) []Span {
	out := make([]Span, len(spans))
	for i, s := range spans {
		out[i] = fromSpan(s)
	}
	return out
}

func fromSpan(s markup.Span) Span {
	switch s := s.(type) {
	case markup.Normal:
		return Span{Kind: "text", Text: s.Text}
	case markup.Verbatim:
		return Span{Kind: "verbatim", Children: fromSpans(s.Children)}
	case markup.Underline:
		return Span{Kind: "underline", Children: fromSpans(s.Children)}
	case markup.Crossed:
		return Span{Kind: "crossed", Children: fromSpans(s.Children)}
	case markup.Bold:
		return Span{Kind: "bold", Children: fromSpans(s.Children)}
	case markup.Italic:
		return Span{Kind: "italic", Children: fromSpans(s.Children)}
	case markup.Link:
		return Span{Kind: "link", Name: s.Name, Handler: s.Handler, Path: s.Path, Known: s.Known}
	case markup.Extra:
		return Span{Kind: "extra", Delim: string(s.Delim), Children: fromSpans(s.Children)}
	default:
		return Span{Kind: "text"}
	}
}
