// Package diagfmt renders diagnostics for humans: the canonical one-line
// compile-error form and a colored multi-line pretty form.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"flare/internal/diag"
	"flare/internal/source"
)

// CompileErrors writes the canonical one-line form for every diagnostic:
//
//	[line N] Error: <msg>              (lexical: the message says it all)
//	[line N] Error at 'lexeme': <msg>  (compile: anchored to a token)
//	[line N] Error at end: <msg>       (compile: anchored to EOF)
//
// Expects bag.Sort() beforehand for deterministic order.
func CompileErrors(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	for _, d := range bag.Items() {
		fmt.Fprintln(w, CompileErrorLine(d, fs))
	}
}

// CompileErrorLine renders one diagnostic in the canonical one-line form.
func CompileErrorLine(d diag.Diagnostic, fs *source.FileSet) string {
	line := fs.Line(d.Primary)

	if d.Code >= diag.LexInfo && d.Code < diag.CompInfo {
		return fmt.Sprintf("[line %d] Error: %s", line, d.Message)
	}

	if d.Primary.Empty() {
		return fmt.Sprintf("[line %d] Error at end: %s", line, d.Message)
	}
	file := fs.Get(d.Primary.File)
	lexeme := string(file.Content[d.Primary.Start:d.Primary.End])
	return fmt.Sprintf("[line %d] Error at '%s': %s", line, lexeme, d.Message)
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color bool
}

// Pretty форматирует диагностики в человекочитаемый вид:
// <path>:<line>:<col>: <SEV> [<ID>]: <message>, затем строка источника с
// подчёркиванием ^~~~ по Span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	sevColor := map[diag.Severity]*color.Color{
		diag.SevInfo:    color.New(color.FgCyan),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevError:   color.New(color.FgRed, color.Bold),
	}

	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)

		sev := d.Severity.String()
		if opts.Color {
			sev = sevColor[d.Severity].Sprint(sev)
		}
		fmt.Fprintf(w, "%s:%d:%d: %s [%s]: %s\n",
			file.Path, start.Line, start.Col, sev, d.Code.ID(), d.Message)

		src := file.GetLine(start.Line)
		if src == "" {
			continue
		}
		fmt.Fprintf(w, "  %s\n", src)

		// подчёркивание: ^ в колонке начала, ~ до конца span (в пределах строки)
		width := int(d.Primary.Len())
		if width < 1 {
			width = 1
		}
		if rest := len(src) - int(start.Col-1); width > rest && rest > 0 {
			width = rest
		}
		marker := "^" + strings.Repeat("~", width-1)
		if opts.Color {
			marker = sevColor[d.Severity].Sprint(marker)
		}
		fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", int(start.Col-1)), marker)
	}
}
