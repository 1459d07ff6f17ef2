package markup

// Lexer scans raw todo text into line-level tokens. It is total: any input
// produces a token stream, never an error. Malformed inline markup degrades
// to the Extra fallback span.
//
// All structural characters are ASCII, so the scanner works on bytes;
// multi-byte UTF-8 sequences pass through plain runs untouched.
type Lexer struct {
	input string
	pos   int
}

// Lex tokenizes a whole document.
func Lex(input string) []Token {
	l := &Lexer{input: input}
	return l.lex()
}

func (l *Lexer) lex() []Token {
	var tokens []Token
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\n':
			l.pos++
			tokens = append(tokens, Token{Kind: TokenNewline})
		case ' ':
			// runs of spaces are insignificant at line start
			l.pos++
		case '#':
			tokens = l.lexHeading(tokens)
		case '[':
			tokens = l.lexTodoLine(tokens)
		case '-':
			l.pos++
			l.skipSpaces()
			tokens = append(tokens, Token{Kind: TokenBullet, Spans: l.lexInline()})
		default:
			tokens = append(tokens, Token{Kind: TokenText, Spans: l.lexInline()})
		}
	}
	return tokens
}

// lexHeading consumes "# name" to the end of the line. The heading is
// emitted even when the input ends without a newline.
func (l *Lexer) lexHeading(tokens []Token) []Token {
	l.pos++ // '#'
	l.skipSpaces()
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
	name := trimTrailingSpaces(l.input[start:l.pos])
	tokens = append(tokens, Token{Kind: TokenHeading, Value: name})
	if l.pos < len(l.input) {
		l.pos++ // '\n'
		tokens = append(tokens, Token{Kind: TokenNewline})
	}
	return tokens
}

// lexTodoLine consumes "[state] description". The bracket content is taken
// verbatim up to the first ']' (or end of input); there is no nesting. The
// remainder of the line is inline-lexed like any text line.
func (l *Lexer) lexTodoLine(tokens []Token) []Token {
	l.pos++ // '['
	tokens = append(tokens, Token{Kind: TokenBracketOpen})
	l.skipSpaces()
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != ']' {
		l.pos++
	}
	inside := l.input[start:l.pos]
	if l.pos < len(l.input) {
		l.pos++ // ']'
	}
	tokens = append(tokens, Token{Kind: TokenInside, Value: inside})
	tokens = append(tokens, Token{Kind: TokenBracketClose})

	l.skipSpaces()
	if l.pos < len(l.input) && l.input[l.pos] != '\n' {
		tokens = append(tokens, Token{Kind: TokenText, Spans: l.lexInline()})
	}
	return tokens
}

func (l *Lexer) skipSpaces() {
	for l.pos < len(l.input) && l.input[l.pos] == ' ' {
		l.pos++
	}
}

func trimTrailingSpaces(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}
