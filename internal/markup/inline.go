package markup

import "strings"

// inline markup delimiters; '|' opens the link sub-grammar, the rest open
// paired style spans.
const inlineSpecial = "`_-*/|"

// lexInline lexes inline markup up to (not including) the next newline.
func (l *Lexer) lexInline() []Span {
	var spans []Span
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		spans = append(spans, l.lexSpan())
	}
	return spans
}

// lexSpan lexes exactly one span, dispatching on a single character of
// lookahead.
func (l *Lexer) lexSpan() Span {
	switch ch := l.input[l.pos]; ch {
	case '`', '_', '-', '*', '/':
		return l.lexStyled(ch)
	case '|':
		return l.lexLink()
	default:
		return l.lexPlain()
	}
}

// lexStyled lexes a paired-delimiter span. If the line ends before the
// matching closer the span degrades to an Extra node: the delimiter becomes
// literal text followed by whatever did parse after it. End of input closes
// the span implicitly.
func (l *Lexer) lexStyled(delim byte) Span {
	l.pos++ // opening delimiter
	var children []Span
	for l.pos < len(l.input) {
		switch c := l.input[l.pos]; {
		case c == delim:
			l.pos++
			return styled(delim, children)
		case c == '\n':
			return Extra{Delim: delim, Children: children}
		default:
			children = append(children, l.lexSpan())
		}
	}
	return styled(delim, children)
}

func styled(delim byte, children []Span) Span {
	switch delim {
	case '`':
		return Verbatim{Children: children}
	case '_':
		return Underline{Children: children}
	case '-':
		return Crossed{Children: children}
	case '*':
		return Bold{Children: children}
	case '/':
		return Italic{Children: children}
	default:
		return Extra{Delim: delim, Children: children}
	}
}

// lexPlain consumes a greedy run of ordinary characters.
func (l *Lexer) lexPlain() Span {
	start := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\n' || strings.IndexByte(inlineSpecial, c) >= 0 {
			break
		}
		l.pos++
	}
	return Normal{Text: l.input[start:l.pos]}
}

// lexLink lexes |name[handler:path]|. The sub-grammar is strict: a
// lookahead scan must find '[', ':', ']' in order, with '|' immediately
// after ']', all before the next '|' or newline. Anything else falls back
// to the literal pipe plus one parsed span, mirroring the unterminated
// style fallback.
func (l *Lexer) lexLink() Span {
	l.pos++ // '|'
	if name, handler, path, n, ok := scanLink(l.input[l.pos:]); ok {
		l.pos += n
		return Link{Name: name, Handler: handler, Path: path}
	}
	var children []Span
	if l.pos < len(l.input) && l.input[l.pos] != '\n' {
		children = append(children, l.lexSpan())
	}
	return Extra{Delim: '|', Children: children}
}

// scanLink matches name[handler:path]| at the start of s and reports how
// many bytes it consumed, including the closing pipe.
func scanLink(s string) (name, handler, path string, n int, ok bool) {
	open := scanUntil(s, 0, '[')
	if open < 0 {
		return "", "", "", 0, false
	}
	colon := scanUntil(s, open+1, ':')
	if colon < 0 {
		return "", "", "", 0, false
	}
	end := scanUntil(s, colon+1, ']')
	if end < 0 {
		return "", "", "", 0, false
	}
	if end+1 >= len(s) || s[end+1] != '|' {
		return "", "", "", 0, false
	}
	return s[:open], s[open+1 : colon], s[colon+1 : end], end + 2, true
}

// scanUntil finds want in s starting at from, failing on newline or a
// premature '|'.
func scanUntil(s string, from int, want byte) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case want:
			return i
		case '\n', '|':
			return -1
		}
	}
	return -1
}
