package export

import (
	"fmt"
	"strings"

	"github.com/tdo-cli/tdo/internal/markup"
)

// Widget styles. Colors follow the material palette the bar config uses.
const (
	verbatimColor  = "#c3e88d"
	linkColor      = "#ff5370"
	linkOnclickFmt = "tdo t open-link-raw \\\"%s\\\" \\\"%s\\\" &"
)

// EwwTodo is the JSON shape eww consumes: a printed state plus one widget
// s-expression per description span.
type EwwTodo struct {
	State       string   `json:"state"`
	Description []string `json:"description"`
}

// EwwTodos converts every todo in the file, in document order. The printer
// supplies the state formatting policy.
func EwwTodos(f *markup.File, p markup.Printer) []EwwTodo {
	todos := f.Todos()
	out := make([]EwwTodo, len(todos))
	for i, t := range todos {
		out[i] = EwwTodo{State: stateLabel(p, t.State), Description: spanWidgets(t.Description)}
	}
	return out
}

func stateLabel(p markup.Printer, s *markup.TodoState) string {
	state := p.FormatState(s)
	if p.Style.Brackets {
		return "[" + state + "]"
	}
	return state
}

func spanWidgets(spans []markup.Span) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = spanWidget(s)
	}
	return out
}

func spanWidget(s markup.Span) string {
	switch s := s.(type) {
	case markup.Normal:
		return fmt.Sprintf("(label :halign \"start\" :text \"%s\")", escapeLabel(s.Text))
	case markup.Verbatim:
		return styledBox("color: "+verbatimColor+";", s.Children)
	case markup.Underline:
		return styledBox("text-decoration: underline;", s.Children)
	case markup.Crossed:
		return styledBox("text-decoration: line-through;", s.Children)
	case markup.Bold:
		return styledBox("font-weight: bold;", s.Children)
	case markup.Italic:
		return styledBox("font-style: italic;", s.Children)
	case markup.Link:
		onclick := fmt.Sprintf(linkOnclickFmt, escapeLabel(s.Handler), escapeLabel(s.Path))
		return fmt.Sprintf(
			"(button :style \"all: unset\" :onclick \"%s\" :halign \"start\" "+
				"(label :style \"text-decoration: underline; text-decoration-color: %s;\" :halign \"start\" :text \"%s\"))",
			onclick, linkColor, escapeLabel(s.Name))
	case markup.Extra:
		return fmt.Sprintf(
			"(box :space-evenly false :halign \"start\" (label :halign \"start\" :text \"%s\") %s)",
			escapeLabel(string(s.Delim)), joinWidgets(s.Children))
	default:
		return ""
	}
}

func styledBox(style string, children []markup.Span) string {
	return fmt.Sprintf("(box :style \"%s\" :halign \"start\" %s)", style, joinWidgets(children))
}

func joinWidgets(spans []markup.Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = spanWidget(s)
	}
	return strings.Join(parts, "")
}

// escapeLabel escapes quotes and backslashes so text survives yuck string
// literals.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
