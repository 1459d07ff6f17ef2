package markup

// Tables holds the read-only lookup tables a parse borrows from the
// caller's configuration.
type Tables struct {
	// States maps raw bracket text to its configured display text.
	States map[string]string
	// Handlers is the set of recognized link-handler names. Links whose
	// handler is absent still parse; they are merely marked unknown.
	Handlers map[string]bool
}

// Parser consumes a token stream front to back. Each grammar rule decides
// applicability from at most two tokens of lookahead via a check predicate;
// there is no backtracking. The first failure aborts the parse.
type Parser struct {
	tables Tables
	tokens []Token
	pos    int
}

// Parse builds the document tree from a token stream.
func Parse(tables Tables, tokens []Token) (*File, error) {
	p := &Parser{tables: tables, tokens: tokens}
	return p.parseFile()
}

func (p *Parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

// expect consumes the next token if it has the wanted kind, returning a
// terminal cause otherwise.
func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.done() {
		return Token{}, ErrNoTokens
	}
	if p.peek().Kind != kind {
		return Token{}, &UnexpectedTokenError{Expected: []string{kind.String()}, Got: p.peek()}
	}
	return p.next(), nil
}

// expectLineEnd consumes a newline, also accepting end of input so files
// without a trailing newline still parse.
func (p *Parser) expectLineEnd() error {
	if p.done() {
		return nil
	}
	if p.peek().Kind != TokenNewline {
		return &UnexpectedTokenError{Expected: []string{TokenNewline.String()}, Got: p.peek()}
	}
	p.next()
	return nil
}

// check predicates, one per grammar rule.

func (p *Parser) checkHeading() bool {
	return !p.done() && p.peek().Kind == TokenHeading
}

func (p *Parser) checkTodo() bool {
	return !p.done() && p.peek().Kind == TokenBracketOpen
}

func (p *Parser) checkBullet() bool {
	return !p.done() && p.peek().Kind == TokenBullet
}

func (p *Parser) checkText() bool {
	return !p.done() && p.peek().Kind == TokenText
}

// File := Heading*
func (p *Parser) parseFile() (*File, error) {
	f := &File{}
	for !p.done() {
		// tolerate extra blank lines between headings
		if p.peek().Kind == TokenNewline {
			p.next()
			continue
		}
		h, err := p.parseHeading()
		if err != nil {
			return nil, fail(err, "File")
		}
		f.Headings = append(f.Headings, h)
	}
	return f, nil
}

// Heading := HEADING NEWLINE UnderHeading* (NEWLINE | EOF)
func (p *Parser) parseHeading() (Heading, error) {
	name, err := p.expect(TokenHeading)
	if err != nil {
		return Heading{}, fail(err, "Heading")
	}
	if err := p.expectLineEnd(); err != nil {
		return Heading{}, fail(err, "Heading")
	}

	h := Heading{Name: name.Value}
	for {
		if p.done() {
			return h, nil
		}
		if p.peek().Kind == TokenNewline {
			p.next() // blank line ends the body
			return h, nil
		}

		switch {
		case p.checkTodo():
			todo, err := p.parseTodo()
			if err != nil {
				return Heading{}, fail(err, "Heading")
			}
			h.Body = append(h.Body, todo)
		case p.checkBullet():
			bullet, err := p.parseBullet()
			if err != nil {
				return Heading{}, fail(err, "Heading")
			}
			h.Body = append(h.Body, bullet)
			if err := p.expectLineEnd(); err != nil {
				return Heading{}, fail(err, "Heading")
			}
		case p.checkText():
			text, err := p.parseText()
			if err != nil {
				return Heading{}, fail(err, "Heading")
			}
			h.Body = append(h.Body, Paragraph{Text: text})
			if err := p.expectLineEnd(); err != nil {
				return Heading{}, fail(err, "Heading")
			}
		case p.checkHeading():
			err := &StructuralError{Msg: "heading inside a heading body"}
			return Heading{}, fail(err, "Heading")
		default:
			// no rule applies; consume nothing and abort so the loop can
			// never stall
			err := &UnexpectedTokenError{
				Expected: []string{"BRACKET_OPEN", "BULLET", "TEXT"},
				Got:      p.peek(),
			}
			return Heading{}, fail(err, "Heading")
		}
	}
}

// Todo := BRACKET_OPEN TodoState BRACKET_CLOSE Text NEWLINE
func (p *Parser) parseTodo() (Todo, error) {
	if _, err := p.expect(TokenBracketOpen); err != nil {
		return Todo{}, fail(err, "Todo")
	}
	inside, err := p.expect(TokenInside)
	if err != nil {
		return Todo{}, fail(err, "Todo")
	}
	if _, err := p.expect(TokenBracketClose); err != nil {
		return Todo{}, fail(err, "Todo")
	}
	description, err := p.parseText()
	if err != nil {
		return Todo{}, fail(err, "Todo")
	}
	if err := p.expectLineEnd(); err != nil {
		return Todo{}, fail(err, "Todo")
	}
	return Todo{State: p.resolveState(inside.Value), Description: description}, nil
}

// TodoState resolution: a hit in the alias table yields a defined state, a
// miss passes the raw text through, and empty bracket content is the
// distinguished "no state" case (nil).
func (p *Parser) resolveState(raw string) *TodoState {
	if raw == "" {
		return nil
	}
	if display, ok := p.tables.States[raw]; ok {
		return &TodoState{Raw: raw, Display: display, Defined: true}
	}
	return &TodoState{Raw: raw}
}

// Bullet := BULLET_TOKEN
func (p *Parser) parseBullet() (Bullet, error) {
	tok, err := p.expect(TokenBullet)
	if err != nil {
		return Bullet{}, fail(err, "Bullet")
	}
	return Bullet{Text: p.resolveSpans(tok.Spans)}, nil
}

// Text := TEXT_TOKEN
func (p *Parser) parseText() (Text, error) {
	tok, err := p.expect(TokenText)
	if err != nil {
		return nil, fail(err, "Text")
	}
	return p.resolveSpans(tok.Spans), nil
}

// resolveSpans classifies link handlers as known or unknown against the
// configured handler set. The span tree is otherwise copied as-is; the
// parser owns its output.
func (p *Parser) resolveSpans(spans []Span) Text {
	if spans == nil {
		return nil
	}
	out := make(Text, len(spans))
	for i, s := range spans {
		out[i] = p.resolveSpan(s)
	}
	return out
}

func (p *Parser) resolveSpan(s Span) Span {
	switch s := s.(type) {
	case Normal:
		return s
	case Verbatim:
		return Verbatim{Children: p.resolveSpans(s.Children)}
	case Underline:
		return Underline{Children: p.resolveSpans(s.Children)}
	case Crossed:
		return Crossed{Children: p.resolveSpans(s.Children)}
	case Bold:
		return Bold{Children: p.resolveSpans(s.Children)}
	case Italic:
		return Italic{Children: p.resolveSpans(s.Children)}
	case Link:
		s.Known = p.tables.Handlers[s.Handler]
		return s
	case Extra:
		return Extra{Delim: s.Delim, Children: p.resolveSpans(s.Children)}
	default:
		return s
	}
}
