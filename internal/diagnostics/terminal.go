// Package diagnostics renders Axiom diagnostics and runtime errors for
// the terminal, following the severity-to-color mapping of the teacher's
// compiler/errors/terminal.go.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	axerrors "github.com/axiom-lang/axiom/internal/errors"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgBlue, color.Bold)
	hintColor    = color.New(color.FgCyan)
)

func levelColor(level axerrors.DiagnosticLevel) *color.Color {
	switch level {
	case axerrors.DiagError:
		return errorColor
	case axerrors.Warning:
		return warningColor
	default:
		return infoColor
	}
}

// PrintDiagnostic writes a colorized "[level] message" / "  hint: text"
// rendering of d to w, matching spec.md §6's human-readable wire format.
func PrintDiagnostic(w io.Writer, d axerrors.Diagnostic) {
	levelColor(d.Level).Fprintf(w, "[%s] ", d.Level)
	fmt.Fprintln(w, d.Message)
	if d.Hint != "" {
		hintColor.Fprintf(w, "  hint: %s\n", d.Hint)
	}
}

// PrintRuntimeError writes a colorized rendering of a fatal RuntimeError,
// prefixed with its AXM_xxx wire code when one applies.
func PrintRuntimeError(w io.Writer, err *axerrors.RuntimeError) {
	errorColor.Fprint(w, "[error] ")
	fmt.Fprintln(w, err.Error())
}
