package markup

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoTokens is the terminal cause when a grammar rule runs out of input.
var ErrNoTokens = errors.New("expected more tokens")

// UnexpectedTokenError is the terminal cause when the next token matches
// none of the descriptions a rule would accept.
type UnexpectedTokenError struct {
	Expected []string
	Got      Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("expected %s, got %s", strings.Join(e.Expected, " or "), e.Got)
}

// StructuralError is the terminal cause for grammar-shape violations, such
// as a heading inside another heading's body.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return e.Msg
}

// Frame is one grammar rule on a parse error's diagnostic stack.
type Frame struct {
	Rule string
	File string
	Line int
}

func (f Frame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.Rule, f.File, f.Line)
}

// ParseError is the single error value a failed parse produces: a terminal
// cause plus the grammar path that led to it. Frames are ordered innermost
// first; the rule that failed is Frames[0].
type ParseError struct {
	Frames []Frame
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	b.WriteString(":")
	for _, f := range e.Frames {
		b.WriteString("\n\t")
		b.WriteString(f.String())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// fail wraps err with a frame for the named rule, recording the caller's
// source location. Each rule-level caller pushes exactly one frame as the
// error unwinds.
func fail(err error, rule string) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		pe = &ParseError{Err: err}
	}
	_, file, line, _ := runtime.Caller(1)
	pe.Frames = append(pe.Frames, Frame{Rule: rule, File: filepath.Base(file), Line: line})
	return pe
}
