package markup

// File is a parsed todo document: an ordered sequence of headings.
type File struct {
	Headings []Heading
}

// Heading is a named section and the entries under it. Headings never nest.
type Heading struct {
	Name string
	Body []Entry
}

// Entry is one item under a heading: a Todo, a Bullet, or a Paragraph.
type Entry interface {
	entry()
}

// Todo is a bracketed-state item with a description.
type Todo struct {
	// State is nil when the brackets were empty; the printer then applies
	// the configured default-state policy.
	State       *TodoState
	Description Text
}

// Bullet is a "- ..." list item.
type Bullet struct {
	Text Text
}

// Paragraph is free prose under a heading; the printer reflows it.
type Paragraph struct {
	Text Text
}

func (Todo) entry()      {}
func (Bullet) entry()    {}
func (Paragraph) entry() {}

// TodoState is a todo's raw bracket content resolved against the alias
// table. Defined states carry the configured display text; everything else
// passes through verbatim.
type TodoState struct {
	Raw     string
	Display string
	Defined bool
}

// Text returns the string the printer should emit for the state.
func (s *TodoState) Text() string {
	if s.Defined {
		return s.Display
	}
	return s.Raw
}

// Text is an ordered sequence of inline spans.
type Text []Span

// Span is one node of the recursive inline-markup tree. The set of
// implementations is closed; printers and exporters switch exhaustively
// over it.
type Span interface {
	span()
}

// Normal is a plain run of characters.
type Normal struct {
	Text string
}

// Verbatim is `...` content. Verbatim highlights rather than escapes: the
// other delimiters still nest inside it.
type Verbatim struct {
	Children []Span
}

// Underline is _..._ content.
type Underline struct {
	Children []Span
}

// Crossed is -...- (strikethrough) content.
type Crossed struct {
	Children []Span
}

// Bold is *...* content.
type Bold struct {
	Children []Span
}

// Italic is /.../ content.
type Italic struct {
	Children []Span
}

// Link is a |name[handler:path]| reference. Known reports whether the
// handler name matched the configured handler set at parse time; dispatch
// itself happens outside this package.
type Link struct {
	Name    string
	Handler string
	Path    string
	Known   bool
}

// Extra is the unterminated-span fallback: a delimiter whose closer never
// appeared before the end of the line. It renders as the literal delimiter
// followed by whatever did parse after it.
type Extra struct {
	Delim    byte
	Children []Span
}

func (Normal) span()    {}
func (Verbatim) span()  {}
func (Underline) span() {}
func (Crossed) span()   {}
func (Bold) span()      {}
func (Italic) span()    {}
func (Link) span()      {}
func (Extra) span()     {}

// Todos returns every todo in the document, in order.
func (f *File) Todos() []*Todo {
	var todos []*Todo
	for i := range f.Headings {
		for j := range f.Headings[i].Body {
			if t, ok := f.Headings[i].Body[j].(Todo); ok {
				todos = append(todos, &t)
			}
		}
	}
	return todos
}

// Links returns every link in the document in reading order, including
// links nested inside styled spans.
func (f *File) Links() []Link {
	var links []Link
	for _, h := range f.Headings {
		for _, e := range h.Body {
			links = append(links, entryLinks(e)...)
		}
	}
	return links
}

func entryLinks(e Entry) []Link {
	switch e := e.(type) {
	case Todo:
		return spanLinks(e.Description)
	case Bullet:
		return spanLinks(e.Text)
	case Paragraph:
		return spanLinks(e.Text)
	default:
		return nil
	}
}

func spanLinks(spans []Span) []Link {
	var links []Link
	for _, s := range spans {
		switch s := s.(type) {
		case Link:
			links = append(links, s)
		case Verbatim:
			links = append(links, spanLinks(s.Children)...)
		case Underline:
			links = append(links, spanLinks(s.Children)...)
		case Crossed:
			links = append(links, spanLinks(s.Children)...)
		case Bold:
			links = append(links, spanLinks(s.Children)...)
		case Italic:
			links = append(links, spanLinks(s.Children)...)
		case Extra:
			links = append(links, spanLinks(s.Children)...)
		}
	}
	return links
}
