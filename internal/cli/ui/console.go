// --- START OF FINAL REVISED FILE internal/cli/ui/console.go ---
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	ColorSuccess = lipgloss.Color("40")  // Green
	ColorFailure = lipgloss.Color("196") // Red
	ColorInfo    = lipgloss.Color("39")  // Blue
	ColorLabel   = lipgloss.Color("214") // Orange
)

// Console prints the user-facing status lines. Text is identical whether or
// not it is styled; styling only adds color when the destination is a
// terminal.
type Console struct {
	out          io.Writer
	styled       bool
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	infoStyle    lipgloss.Style
	labelStyle   lipgloss.Style
}

// NewConsole creates a Console writing to out. Output is styled only when out
// is a terminal and NO_COLOR is unset.
func NewConsole(out io.Writer) *Console {
	styled := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
		styled = true
	}
	return newConsole(out, styled)
}

// NewPlainConsole creates a Console that never styles its output.
func NewPlainConsole(out io.Writer) *Console {
	return newConsole(out, false)
}

func newConsole(out io.Writer, styled bool) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:          out,
		styled:       styled,
		successStyle: r.NewStyle().Foreground(ColorSuccess),
		failureStyle: r.NewStyle().Foreground(ColorFailure).Bold(true),
		infoStyle:    r.NewStyle().Foreground(ColorInfo),
		labelStyle:   r.NewStyle().Foreground(ColorLabel).Bold(true),
	}
}

// Writer returns the underlying destination, for structured reports.
func (c *Console) Writer() io.Writer { return c.out }

// Styled reports whether status lines are colored.
func (c *Console) Styled() bool { return c.styled }

func (c *Console) render(style lipgloss.Style, s string) string {
	if !c.styled {
		return s
	}
	return style.Render(s)
}

// Success prints a line in the success style.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.out, c.render(c.successStyle, fmt.Sprintf(format, args...)))
}

// Failure prints a line in the failure style.
func (c *Console) Failure(format string, args ...any) {
	fmt.Fprintln(c.out, c.render(c.failureStyle, fmt.Sprintf(format, args...)))
}

// Info prints a plain informational line.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintln(c.out, c.render(c.infoStyle, fmt.Sprintf(format, args...)))
}

// Found prints one extraction result line: "Found <label> in <object>: <set>".
func (c *Console) Found(label, object, set string) {
	fmt.Fprintf(c.out, "Found %s in %s: %s\n", c.render(c.labelStyle, label), object, set)
}

// Error prints "Error: <err>".
func (c *Console) Error(err error) {
	fmt.Fprintln(c.out, c.render(c.failureStyle, "Error: "+err.Error()))
}

// --- END OF FINAL REVISED FILE internal/cli/ui/console.go ---
