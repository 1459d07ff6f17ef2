package markup

import (
	"fmt"
	"strings"
)

// TokenKind identifies a line-level token.
type TokenKind int

const (
	// TokenHeading is a "# name" line. Value holds the trimmed name.
	TokenHeading TokenKind = iota
	// TokenBracketOpen is a "[" at the start of a line.
	TokenBracketOpen
	// TokenInside is the raw text between a todo's brackets. Value may be
	// empty, which the parser treats as "no state".
	TokenInside
	// TokenBracketClose is the "]" matching a TokenBracketOpen.
	TokenBracketClose
	// TokenBullet is a "- ..." line. Spans holds the inline-lexed remainder.
	TokenBullet
	// TokenText is any other non-blank line. Spans holds the inline-lexed
	// content.
	TokenText
	// TokenNewline is a line terminator.
	TokenNewline
)

// String returns the token kind name used in error messages.
func (k TokenKind) String() string {
	switch k {
	case TokenHeading:
		return "HEADING"
	case TokenBracketOpen:
		return "BRACKET_OPEN"
	case TokenInside:
		return "INSIDE"
	case TokenBracketClose:
		return "BRACKET_CLOSE"
	case TokenBullet:
		return "BULLET"
	case TokenText:
		return "TEXT"
	case TokenNewline:
		return "NEWLINE"
	default:
		return "UNKNOWN"
	}
}

// Token is one line-level token produced by the lexer.
type Token struct {
	Kind  TokenKind
	Value string // heading name or bracket content
	Spans []Span // inline payload for TokenBullet and TokenText
}

// String renders the token for diagnostics and the tokens subcommand.
func (t Token) String() string {
	switch t.Kind {
	case TokenHeading, TokenInside:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
	case TokenBullet, TokenText:
		parts := make([]string, len(t.Spans))
		for i, s := range t.Spans {
			parts[i] = spanString(s)
		}
		return fmt.Sprintf("%s(%s)", t.Kind, strings.Join(parts, " "))
	default:
		return t.Kind.String()
	}
}

// spanString renders a span for diagnostics.
func spanString(s Span) string {
	switch s := s.(type) {
	case Normal:
		return fmt.Sprintf("%q", s.Text)
	case Verbatim:
		return containerString("Verbatim", s.Children)
	case Underline:
		return containerString("Underline", s.Children)
	case Crossed:
		return containerString("Crossed", s.Children)
	case Bold:
		return containerString("Bold", s.Children)
	case Italic:
		return containerString("Italic", s.Children)
	case Link:
		return fmt.Sprintf("Link(%q %s:%s)", s.Name, s.Handler, s.Path)
	case Extra:
		return containerString(fmt.Sprintf("Extra(%c)", s.Delim), s.Children)
	default:
		return "?"
	}
}

func containerString(name string, children []Span) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = spanString(c)
	}
	return fmt.Sprintf("%s[%s]", name, strings.Join(parts, " "))
}
