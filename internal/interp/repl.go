package interp

import (
	"fmt"
	"io"
)

// REPL runs the read-GC-eval-print loop against line, terminating
// cleanly on end-of-input (spec §4.7). It mirrors the teacher's
// REPL() shape (read one line, dispatch by error type, keep going)
// rewired onto this engine's GC-per-iteration policy and typed
// EngineError instead of yaegi's scanner/Panic split.
func (e *Engine) REPL(line LineReader) error {
	for {
		// Trigger a full GC before reading input, per spec §4.7. There is
		// nothing live to preserve across this particular point yet, so
		// no extra roots are passed.
		e.GC()

		text, err := line.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Fprintln(e.stderr, err)
			return err
		}

		form, err := e.parseAndReport(text)
		if err != nil {
			e.reportError(err)
			continue
		}

		fmt.Fprintln(e.stdout, e.Sprint(form))

		result, err := e.evalAndReport(form)
		if err != nil {
			e.reportError(err)
			continue
		}
		fmt.Fprintln(e.stdout, e.Sprint(result))
	}
}

// parseAndReport reads one form from text. No GC runs during ReadStr, so
// the partially built form needs no extra roots.
func (e *Engine) parseAndReport(text string) (Ref, error) {
	rd := e.NewReader(text)
	return rd.ReadStr()
}

// evalAndReport evaluates form in the global (Nil) environment.
func (e *Engine) evalAndReport(form Ref) (Ref, error) {
	return e.Eval(form, NilRef)
}

// reportError prints the diagnostic and binds errobj to the offending
// value, the landing-point policy from spec §5/§7: "a diagnostic line is
// emitted... errobj is bound to the offending value... control unwinds
// to the REPL's landing point." There is no longjmp in Go: returning the
// error up to REPL's loop body already is the unwind, so reportError only
// needs to do the side effects that accompanied it in the original.
func (e *Engine) reportError(err error) {
	ee, ok := err.(*EngineError)
	if !ok {
		fmt.Fprintln(e.stderr, err)
		return
	}
	fmt.Fprintln(e.stderr, ee.Error())
	offender := NilRef
	if ee.HasValue {
		offender = ee.Offender
	}
	e.heap.get(e.errobjSym).global = offender
}
