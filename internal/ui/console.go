// Where: internal/ui/console.go
// What: Console output helpers for consistent CLI UX.
// Why: Standardize colors, indentation, and structure across commands.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	stepStyle    = color.New(color.FgCyan, color.Bold)
	successStyle = color.New(color.FgGreen)
	warnStyle    = color.New(color.FgYellow)
	errorStyle   = color.New(color.FgRed, color.Bold)
)

// Console provides helper methods for formatted output.
type Console struct {
	Out io.Writer
}

// New creates a new Console writing to the provided writer.
func New(out io.Writer) *Console {
	return &Console{Out: out}
}

// Step prints a highlighted banner for a deployment step.
// Example: ==> Build server image
func (c *Console) Step(name string) {
	stepStyle.Fprintf(c.Out, "==> %s\n", name)
}

// Success prints a success message.
func (c *Console) Success(msg string) {
	successStyle.Fprintf(c.Out, "✔ %s\n", msg)
}

// Warn prints a warning for a tolerated failure.
func (c *Console) Warn(msg string) {
	warnStyle.Fprintf(c.Out, "⚠ %s\n", msg)
}

// Error prints a highlighted error message.
func (c *Console) Error(msg string) {
	errorStyle.Fprintf(c.Out, "✖ %s\n", msg)
}

// Info prints an info message with an arrow.
func (c *Console) Info(msg string) {
	fmt.Fprintf(c.Out, "➜ %s\n", msg)
}

// Item prints a key-value item with indentation.
// Example:    Key: Value
func (c *Console) Item(key string, value any) {
	fmt.Fprintf(c.Out, "   %-18s %v\n", key+":", value)
}

// ItemPlain prints a generic indented line.
func (c *Console) ItemPlain(msg string) {
	fmt.Fprintf(c.Out, "   %s\n", msg)
}
