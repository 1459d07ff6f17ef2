// Package markup implements the todo file format: a lexer that turns raw
// text into line-level tokens with nested inline spans, a recursive-descent
// parser that builds the document tree while resolving todo-state aliases,
// and a printer that serializes the tree back to canonical text.
//
// The package is pure: it performs no I/O and keeps no state between calls.
// Alias and style tables are supplied per call and never mutated.
package markup
