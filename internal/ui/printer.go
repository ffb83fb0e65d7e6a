// Package ui provides colored, human-readable console output.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Printer writes color-coded status lines to a single writer. Colors are
// disabled automatically when the writer is not a terminal (fatih/color
// honors NO_COLOR and non-tty detection on os.Stdout).
type Printer struct {
	out     io.Writer
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	header  *color.Color
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
		header:  color.New(color.Bold),
	}
}

// Out returns the underlying writer.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Success prints a green checkmarked line.
func (p *Printer) Success(format string, args ...any) {
	p.success.Fprintf(p.out, "✓ "+format+"\n", args...)
}

// Warn prints a yellow warning line.
func (p *Printer) Warn(format string, args ...any) {
	p.warn.Fprintf(p.out, "! "+format+"\n", args...)
}

// Fail prints a red failure line.
func (p *Printer) Fail(format string, args ...any) {
	p.fail.Fprintf(p.out, "✗ "+format+"\n", args...)
}

// Info prints an uncolored line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a bold section line.
func (p *Printer) Header(format string, args ...any) {
	p.header.Fprintf(p.out, format+"\n", args...)
}

// Detail prints an indented detail line.
func (p *Printer) Detail(format string, args ...any) {
	fmt.Fprintf(p.out, "  "+format+"\n", args...)
}

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Confirm prompts for a y/N answer on the given reader. Non-interactive
// sessions and unrecognized answers decline.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	reader := bufio.NewReader(in)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
