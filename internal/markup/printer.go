package markup

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

const (
	indent       = "    "
	defaultWidth = 80
)

// Style controls how the printer renders a document. The zero value prints
// bare states, "-" bullets, and wraps paragraphs at 80 columns.
type Style struct {
	// Bullet is the bullet marker; "-" when empty.
	Bullet string
	// DefaultState is rendered for todos without a state; a single space
	// when empty.
	DefaultState string
	// Brackets wraps todo states in brackets.
	Brackets bool
	// Width is the wrap width for paragraph text.
	Width int
}

// Printer serializes a document tree back to canonical markup text. It is
// total: any tree prints. Paragraphs are the one place output is not a
// literal round trip of input spacing; they are reflowed to Width.
type Printer struct {
	Style Style
}

// Print renders the whole document. Headings are separated by one blank
// line, the same separator the parser treats as a heading terminator.
func (p Printer) Print(f *File) string {
	parts := make([]string, len(f.Headings))
	for i, h := range f.Headings {
		parts[i] = p.printHeading(h)
	}
	return strings.Join(parts, "\n")
}

func (p Printer) printHeading(h Heading) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(h.Name)
	b.WriteByte('\n')
	for _, e := range h.Body {
		switch e := e.(type) {
		case Todo:
			b.WriteString(indent)
			b.WriteString(p.printTodo(e))
			b.WriteByte('\n')
		case Bullet:
			b.WriteString(indent)
			b.WriteString(p.printBullet(e))
			b.WriteByte('\n')
		case Paragraph:
			b.WriteString(p.printParagraph(e))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (p Printer) printTodo(t Todo) string {
	state := p.FormatState(t.State)
	if p.Style.Brackets {
		return "[" + state + "] " + PrintSpans(t.Description)
	}
	return state + " " + PrintSpans(t.Description)
}

// FormatState renders a todo state under the configured default-state
// policy, without the bracket decoration.
func (p Printer) FormatState(s *TodoState) string {
	if s != nil {
		return s.Text()
	}
	if p.Style.DefaultState != "" {
		return p.Style.DefaultState
	}
	return " "
}

func (p Printer) printBullet(b Bullet) string {
	marker := p.Style.Bullet
	if marker == "" {
		marker = "-"
	}
	return marker + " " + PrintSpans(b.Text)
}

func (p Printer) printParagraph(par Paragraph) string {
	width := p.Style.Width
	if width <= 0 {
		width = defaultWidth
	}
	wrap := width - len(indent)
	if wrap < 1 {
		wrap = 1
	}
	wrapped := wordwrap.WrapString(PrintSpans(par.Text), uint(wrap))
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// PrintSpans re-emits inline spans in their textual form: delimiter pairs
// around styled children, |name| for links, and the bare delimiter for the
// unterminated fallback (which by design never closes).
func PrintSpans(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		printSpan(&b, s)
	}
	return b.String()
}

func printSpan(b *strings.Builder, s Span) {
	switch s := s.(type) {
	case Normal:
		b.WriteString(s.Text)
	case Verbatim:
		printDelimited(b, '`', s.Children)
	case Underline:
		printDelimited(b, '_', s.Children)
	case Crossed:
		printDelimited(b, '-', s.Children)
	case Bold:
		printDelimited(b, '*', s.Children)
	case Italic:
		printDelimited(b, '/', s.Children)
	case Link:
		b.WriteByte('|')
		b.WriteString(s.Name)
		b.WriteByte('|')
	case Extra:
		b.WriteByte(s.Delim)
		for _, c := range s.Children {
			printSpan(b, c)
		}
	}
}

func printDelimited(b *strings.Builder, delim byte, children []Span) {
	b.WriteByte(delim)
	for _, c := range children {
		printSpan(b, c)
	}
	b.WriteByte(delim)
}
