package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"flare/internal/diag"
	"flare/internal/diagfmt"
	"flare/internal/source"
)

func makeDiag(t *testing.T, src string, code diag.Code, start, end uint32, msg string) (diag.Diagnostic, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.fl", []byte(src))
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  source.Span{File: fileID, Start: start, End: end},
	}
	return d, fs
}

func TestCompileErrorLineAtToken(t *testing.T) {
	d, fs := makeDiag(t, "print 1 +;", diag.CompExpectExpression, 9, 10, "Expect expression.")
	got := diagfmt.CompileErrorLine(d, fs)
	want := "[line 1] Error at ';': Expect expression."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCompileErrorLineAtEnd(t *testing.T) {
	d, fs := makeDiag(t, "print 1", diag.CompExpectSemicolon, 7, 7, "Expect ';' after value.")
	got := diagfmt.CompileErrorLine(d, fs)
	want := "[line 1] Error at end: Expect ';' after value."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCompileErrorLineLexical(t *testing.T) {
	d, fs := makeDiag(t, `"oops`, diag.LexUnterminatedString, 0, 5, "Unterminated string.")
	got := diagfmt.CompileErrorLine(d, fs)
	want := "[line 1] Error: Unterminated string."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCompileErrorLineTracksLines(t *testing.T) {
	d, fs := makeDiag(t, "1;\n2;\n@", diag.LexUnknownChar, 6, 7, "Unexpected character.")
	got := diagfmt.CompileErrorLine(d, fs)
	if !strings.HasPrefix(got, "[line 3] ") {
		t.Errorf("got %q, want line 3", got)
	}
}

func TestPrettyRendersContext(t *testing.T) {
	d, fs := makeDiag(t, "print 1 +;", diag.CompExpectExpression, 9, 10, "Expect expression.")
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Color: false})
	out := buf.String()

	if !strings.Contains(out, "test.fl:1:10: ERROR [CMP2001]: Expect expression.") {
		t.Errorf("header missing: %q", out)
	}
	if !strings.Contains(out, "print 1 +;") {
		t.Errorf("source line missing: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("caret missing: %q", out)
	}
}
