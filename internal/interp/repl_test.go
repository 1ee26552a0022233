package interp

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// sliceLineReader feeds a fixed sequence of lines to REPL, then reports
// end-of-input, standing in for an interactive terminal in tests.
type sliceLineReader struct {
	lines []string
	i     int
}

func (s *sliceLineReader) ReadLine() (string, error) {
	if s.i >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.i]
	s.i++
	return line, nil
}

func (s *sliceLineReader) Close() error { return nil }

func TestREPLEvaluatesAndPrints(t *testing.T) {
	var out, errOut bytes.Buffer
	e, err := New(Options{HeapSize: 2000, Stdout: &out, Stderr: &errOut})
	if err != nil {
		t.Fatal(err)
	}
	lr := &sliceLineReader{lines: []string{"(+ 1 2)"}}
	if err := e.REPL(lr); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "(+ 1 2)") {
		t.Fatalf("output missing echoed form: %q", got)
	}
	if !strings.Contains(got, "3") {
		t.Fatalf("output missing evaluated result: %q", got)
	}
}

func TestREPLContinuesAfterError(t *testing.T) {
	var out, errOut bytes.Buffer
	e, err := New(Options{HeapSize: 2000, Stdout: &out, Stderr: &errOut})
	if err != nil {
		t.Fatal(err)
	}
	lr := &sliceLineReader{lines: []string{"(car 5)", "42"}}
	if err := e.REPL(lr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut.String(), "car: arg1 is not a cell") {
		t.Fatalf("stderr missing diagnostic: %q", errOut.String())
	}
	if !strings.Contains(out.String(), "42") {
		t.Fatalf("stdout missing post-error evaluation: %q", out.String())
	}

	n, numErr := e.Num(e.SymbolGlobal(e.errobjSym))
	if numErr != nil {
		t.Fatal(numErr)
	}
	if n != 5 {
		t.Fatalf("errobj = %d, want 5 (the offending value from (car 5))", n)
	}
}

func TestREPLTerminatesCleanlyOnEOF(t *testing.T) {
	var out, errOut bytes.Buffer
	e, err := New(Options{HeapSize: 2000, Stdout: &out, Stderr: &errOut})
	if err != nil {
		t.Fatal(err)
	}
	lr := &sliceLineReader{}
	if err := e.REPL(lr); err != nil {
		t.Fatalf("REPL should return nil on clean EOF, got %v", err)
	}
}
