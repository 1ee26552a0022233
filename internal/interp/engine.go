package interp

import (
	"io"
	"os"
)

// Options configures a new Engine, mirroring the teacher's opt/Options
// split: user-settable fields default to the real OS streams when left
// zero. Unlike the teacher there are no YAEGI_*-style env-activated debug
// flags — this engine has no AST/CFG graph to dump.
type Options struct {
	// Stdout and Stderr receive the REPL's results and diagnostics. Stdin
	// is stored but not read by the Engine: REPL takes its input from the
	// LineReader it is given. All three default to the process streams
	// when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// HeapSize is the number of cells per semispace. Defaults to
	// DefaultHeapSize. Exposed mainly so tests can force GC pressure with
	// a tiny arena (spec §8 testable property 7).
	HeapSize int

	// Rand backs the `random` primitive. Defaults to a math/rand/v2-backed
	// source seeded from the current time.
	Rand RandSource

	// Prompt is the string printed before each REPL read. Defaults to "> "
	// per spec §6.
	Prompt string
}

// Engine consolidates every piece of process-wide state the core needs:
// the heap, the oblist, the reserved sentinels, and the reserved symbols
// used by the evaluator. There are no other package-level globals; tests
// construct a fresh Engine per scenario (spec §9 design note).
type Engine struct {
	heap *Heap
	rand RandSource

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	prompt string

	// Roots, all GC roots per spec §3's "Roots also include" list.
	oblist        Ref
	truth         Ref
	unboundMarker Ref
	eofVal        Ref
	quoteSym      Ref
	doSym         Ref
	fnSym         Ref
	errobjSym     Ref
	openFiles     Ref

}

// New constructs a fully initialized Engine: allocates the heap, installs
// the reserved sentinels and symbols, and registers every primitive and
// special form (spec §4.1's init_storage + §4.6's init()).
func New(opts Options) (*Engine, error) {
	size := opts.HeapSize
	if size <= 0 {
		size = DefaultHeapSize
	}
	heap, err := NewHeap(size)
	if err != nil {
		return nil, err
	}

	e := &Engine{heap: heap}

	// Every root defaults to NilRef, not the Go zero value of Ref (0),
	// which would otherwise alias a real cell index 0. qq.c gets this for
	// free because its global val* variables are declared "= nil" at
	// file scope; Ref's zero value is not NilRef, so it must be set
	// explicitly before the first allocation.
	e.oblist = NilRef
	e.truth = NilRef
	e.unboundMarker = NilRef
	e.eofVal = NilRef
	e.quoteSym = NilRef
	e.doSym = NilRef
	e.fnSym = NilRef
	e.errobjSym = NilRef
	e.openFiles = NilRef

	e.stdin = opts.Stdin
	if e.stdin == nil {
		e.stdin = os.Stdin
	}
	e.stdout = opts.Stdout
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	e.stderr = opts.Stderr
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	e.prompt = opts.Prompt
	if e.prompt == "" {
		e.prompt = "> "
	}
	e.rand = opts.Rand
	if e.rand == nil {
		e.rand = NewTimeSeededRand()
	}

	if err := e.initStorage(); err != nil {
		return nil, err
	}
	if err := e.registerPrimitives(); err != nil {
		return nil, err
	}
	if err := e.registerReservedAliases(); err != nil {
		return nil, err
	}

	return e, nil
}

// roots builds the Roots view Heap.Collect needs, including whatever
// transient values the caller wants traced across this collection.
func (e *Engine) roots(extra ...*Ref) *Roots {
	rs := &Roots{
		Oblist:        &e.oblist,
		Truth:         &e.truth,
		UnboundMarker: &e.unboundMarker,
		EOF:           &e.eofVal,
		QuoteSym:      &e.quoteSym,
		DoSym:         &e.doSym,
		FnSym:         &e.fnSym,
		ErrobjSym:     &e.errobjSym,
		OpenFiles:     &e.openFiles,
	}
	rs.Extra = append(rs.Extra, extra...)
	return rs
}

// GC runs one full collection. Any refs passed in extra are relocated
// along with the permanent roots and updated in place, so callers holding
// a live value across a GC point (the REPL holding the just-read form)
// must pass its address.
func (e *Engine) GC(extra ...*Ref) {
	e.heap.Collect(e.roots(extra...))
}

// initStorage allocates the reserved sentinels and symbols, mirroring
// qq.c's init_storage().
func (e *Engine) initStorage() error {
	unboundName, err := e.Intern("**unbound-marker**")
	if err != nil {
		return err
	}
	marker, err := e.cons(unboundName, NilRef)
	if err != nil {
		return err
	}
	e.unboundMarker = marker

	eofName, err := e.Intern("eof")
	if err != nil {
		return err
	}
	eofCell, err := e.cons(eofName, NilRef)
	if err != nil {
		return err
	}
	e.eofVal = eofCell

	truthSym, err := e.Intern("t")
	if err != nil {
		return err
	}
	e.truth = truthSym
	if err := e.setGlobal(e.truth, e.truth); err != nil {
		return err
	}

	nilSym, err := e.Intern("nil")
	if err != nil {
		return err
	}
	if err := e.setGlobal(nilSym, NilRef); err != nil {
		return err
	}

	if e.errobjSym, err = e.Intern("errobj"); err != nil {
		return err
	}
	if err := e.setGlobal(e.errobjSym, NilRef); err != nil {
		return err
	}
	if e.doSym, err = e.Intern("do"); err != nil {
		return err
	}
	if e.fnSym, err = e.Intern("fn"); err != nil {
		return err
	}
	if e.quoteSym, err = e.Intern("quote"); err != nil {
		return err
	}

	e.openFiles = NilRef
	return nil
}

// setGlobal writes directly into a symbol's global cell. Unlike Set it
// does not consult any environment frame; used only during init for
// sentinels that must be bound before the evaluator is otherwise usable.
func (e *Engine) setGlobal(sym, value Ref) error {
	if isNil(sym) {
		return newErrVal(ErrEvaluator, "set: arg1 is not symbol", sym)
	}
	e.heap.get(sym).global = value
	return nil
}

// Heap exposes the underlying heap, mainly for tests asserting GC
// pressure behavior.
func (e *Engine) Heap() *Heap { return e.heap }

// Truth, UnboundMarker, EOF, Oblist expose the reserved sentinels for
// tests and for embedding callers that need to compare against them.
func (e *Engine) Truth() Ref         { return e.truth }
func (e *Engine) UnboundMarker() Ref { return e.unboundMarker }
func (e *Engine) EOF() Ref           { return e.eofVal }
func (e *Engine) Oblist() Ref        { return e.oblist }

// Prompt returns the configured REPL prompt string (default "> ").
func (e *Engine) Prompt() string { return e.prompt }
