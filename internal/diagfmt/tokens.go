package diagfmt

import (
	"fmt"
	"io"

	"flare/internal/source"
	"flare/internal/token"
)

// FormatTokensPretty writes one line per token: position, kind, and text.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for _, tok := range tokens {
		start, _ := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%4d:%-3d %-10s %q\n", start.Line, start.Col, tok.Kind, tok.Text); err != nil {
			return err
		}
	}
	return nil
}
