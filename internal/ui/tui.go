// Package ui provides a read-only terminal viewer for todo files.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdo-cli/tdo/internal/handler"
	"github.com/tdo-cli/tdo/internal/markup"
	"github.com/tdo-cli/tdo/internal/render"
)

// Options configures the TUI.
type Options struct {
	Path     string
	Tables   markup.Tables
	Printer  markup.Printer
	Registry handler.Registry
}

// RunTUI starts the viewer. It blocks until the user quits or ctx is
// cancelled.
func RunTUI(ctx context.Context, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5370"))
)

// row is one selectable line: a heading or a body entry, with any links it
// carries.
type row struct {
	text  string
	links []markup.Link
}

type model struct {
	opts    Options
	rows    []row
	cursor  int
	height  int
	loadErr error
	openErr error
}

type openDoneMsg struct{ err error }

func newModel(opts Options) *model {
	m := &model{opts: opts}
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "g":
			m.cursor = 0
			return m, nil
		case "G":
			if len(m.rows) > 0 {
				m.cursor = len(m.rows) - 1
			}
			return m, nil
		case "r", "f5":
			m.refresh()
			return m, nil
		case "enter":
			return m, m.openLink()
		}
	case openDoneMsg:
		m.openErr = msg.err
		return m, nil
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.opts.Path))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render(m.loadErr.Error()))
		b.WriteString("\n")
	} else {
		for i, r := range m.rows {
			if i == m.cursor {
				b.WriteString(cursorStyle.Render("> "))
			} else {
				b.WriteString("  ")
			}
			b.WriteString(r.text)
			b.WriteByte('\n')
		}
	}

	b.WriteString("\n")
	if m.openErr != nil {
		b.WriteString(errorStyle.Render(m.openErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("j/k move · enter open link · r reload · q quit"))
	b.WriteString("\n")
	return b.String()
}

// openLink opens the first link on the selected row through the handler
// registry.
func (m *model) openLink() tea.Cmd {
	if m.cursor >= len(m.rows) {
		return nil
	}
	links := m.rows[m.cursor].links
	if len(links) == 0 {
		return nil
	}
	link := links[0]
	registry := m.opts.Registry
	return func() tea.Msg {
		return openDoneMsg{err: registry.Open(context.Background(), link.Handler, link.Path)}
	}
}

func (m *model) refresh() {
	m.openErr = nil
	data, err := os.ReadFile(m.opts.Path)
	if err != nil {
		m.loadErr = err
		m.rows = nil
		return
	}
	doc, err := markup.Parse(m.opts.Tables, markup.Lex(string(data)))
	if err != nil {
		m.loadErr = err
		m.rows = nil
		return
	}
	m.loadErr = nil
	m.rows = buildRows(doc, m.opts.Printer)
	if m.cursor >= len(m.rows) {
		m.cursor = 0
	}
}

func buildRows(doc *markup.File, p markup.Printer) []row {
	var rows []row
	for _, h := range doc.Headings {
		rows = append(rows, row{text: titleStyle.Render("# " + h.Name)})
		for _, e := range h.Body {
			rows = append(rows, entryRow(e, p))
		}
	}
	return rows
}

func entryRow(e markup.Entry, p markup.Printer) row {
	switch e := e.(type) {
	case markup.Todo:
		state := p.FormatState(e.State)
		if p.Style.Brackets {
			state = "[" + state + "]"
		}
		return row{text: state + " " + render.Spans(e.Description), links: textLinks(e.Description)}
	case markup.Bullet:
		marker := p.Style.Bullet
		if marker == "" {
			marker = "-"
		}
		return row{text: marker + " " + render.Spans(e.Text), links: textLinks(e.Text)}
	case markup.Paragraph:
		return row{text: render.Spans(e.Text), links: textLinks(e.Text)}
	default:
		return row{}
	}
}

func textLinks(text markup.Text) []markup.Link {
	f := markup.File{Headings: []markup.Heading{{Body: []markup.Entry{markup.Paragraph{Text: text}}}}}
	return f.Links()
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
