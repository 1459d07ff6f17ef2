// Package render draws document trees for the terminal with lipgloss.
// Layout follows the canonical printer; spans gain ANSI styling on top.
package render

import (
	"strings"

	"github.com/tdo-cli/tdo/internal/markup"
)

const indent = "    "

// Document renders the whole file. The printer supplies the state, bullet
// and bracket policies so styled and plain output stay in step.
func Document(f *markup.File, p markup.Printer) string {
	var b strings.Builder
	for i, h := range f.Headings {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(heading(h, p))
	}
	return b.String()
}

func heading(h markup.Heading, p markup.Printer) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("# " + h.Name))
	b.WriteByte('\n')
	for _, e := range h.Body {
		b.WriteString(indent)
		b.WriteString(entry(e, p))
		b.WriteByte('\n')
	}
	return b.String()
}

func entry(e markup.Entry, p markup.Printer) string {
	switch e := e.(type) {
	case markup.Todo:
		return stateLabel(e.State, p) + " " + Spans(e.Description)
	case markup.Bullet:
		marker := p.Style.Bullet
		if marker == "" {
			marker = "-"
		}
		return marker + " " + Spans(e.Text)
	case markup.Paragraph:
		return Spans(e.Text)
	default:
		return ""
	}
}

func stateLabel(s *markup.TodoState, p markup.Printer) string {
	state := p.FormatState(s)
	if p.Style.Brackets {
		return "[" + state + "]"
	}
	return state
}

// Spans renders inline spans with their styles applied.
func Spans(spans []markup.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(span(s))
	}
	return b.String()
}

func span(s markup.Span) string {
	switch s := s.(type) {
	case markup.Normal:
		return s.Text
	case markup.Verbatim:
		return verbatimStyle.Render(Spans(s.Children))
	case markup.Underline:
		return underlineStyle.Render(Spans(s.Children))
	case markup.Crossed:
		return crossedStyle.Render(Spans(s.Children))
	case markup.Bold:
		return boldStyle.Render(Spans(s.Children))
	case markup.Italic:
		return italicStyle.Render(Spans(s.Children))
	case markup.Link:
		return linkStyle.Render(s.Name)
	case markup.Extra:
		return extraStyle.Render(string(s.Delim)) + Spans(s.Children)
	default:
		return ""
	}
}
