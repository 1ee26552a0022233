package interp

import "testing"

// evalStr reads and evaluates a single top-level form against e,
// failing the test on any reader or evaluator error.
func evalStr(t *testing.T, e *Engine, src string) Ref {
	t.Helper()
	form, err := e.NewReader(src).ReadStr()
	if err != nil {
		t.Fatalf("read %q: %v", src, err)
	}
	v, err := e.Eval(form, NilRef)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func TestEvalSelfEvaluatingNumber(t *testing.T) {
	e := newTestEngine(t)
	v := evalStr(t, e, "42")
	n, err := e.Num(v)
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatalf("got %d, want 42", n)
	}
}

func TestEvalArithmetic(t *testing.T) {
	e := newTestEngine(t)
	v := evalStr(t, e, "(+ 1 2)")
	n, _ := e.Num(v)
	if n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
}

func TestEvalQuoteDoesNotEvaluate(t *testing.T) {
	e := newTestEngine(t)
	v := evalStr(t, e, "(quote (+ 1 2))")
	if got := e.Sprint(v); got != "(+ 1 2)" {
		t.Fatalf("got %q, want unevaluated form", got)
	}
}

func TestEvalUnboundVariable(t *testing.T) {
	e := newTestEngine(t)
	form, err := e.NewReader("undefined-name").ReadStr()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(form, NilRef); err == nil {
		t.Fatal("expected an unbound variable error")
	}
}

func TestEvalIfTrueBranch(t *testing.T) {
	e := newTestEngine(t)
	v := evalStr(t, e, "(if t 1 2)")
	n, _ := e.Num(v)
	if n != 1 {
		t.Fatalf("got %d, want 1", n)
	}
}

func TestEvalIfFalseBranch(t *testing.T) {
	e := newTestEngine(t)
	v := evalStr(t, e, "(if () 1 2)")
	n, _ := e.Num(v)
	if n != 2 {
		t.Fatalf("got %d, want 2", n)
	}
}

func TestEvalFnAndApply(t *testing.T) {
	e := newTestEngine(t)
	v := evalStr(t, e, "((fn (x y) (+ x y)) 3 4)")
	n, _ := e.Num(v)
	if n != 7 {
		t.Fatalf("got %d, want 7", n)
	}
}

func TestEvalSetBangMutatesGlobal(t *testing.T) {
	e := newTestEngine(t)
	evalStr(t, e, "(set! g 5)")
	v := evalStr(t, e, "g")
	n, _ := e.Num(v)
	if n != 5 {
		t.Fatalf("got %d, want 5", n)
	}
}

func TestEvalSetBangShadowsLexically(t *testing.T) {
	e := newTestEngine(t)
	evalStr(t, e, "(set! g 1)")
	v := evalStr(t, e, "((fn (g) (do (set! g 2) g)) 9)")
	n, _ := e.Num(v)
	if n != 2 {
		t.Fatalf("got %d, want 2", n)
	}
	global := evalStr(t, e, "g")
	gn, _ := e.Num(global)
	if gn != 1 {
		t.Fatalf("global g = %d, want unchanged 1", gn)
	}
}

// TestEvalArgumentsEvaluatedLeftToRight pins down the left-to-right
// argument evaluation order spec §4.5 requires: each call to log appends
// its own tag to a shared list, so the final order reveals which ran
// first.
func TestEvalArgumentsEvaluatedLeftToRight(t *testing.T) {
	e := newTestEngine(t)
	evalStr(t, e, "(set! order ())")
	evalStr(t, e, "(set! log (fn (x) (do (set! order (cons x order)) x)))")
	v := evalStr(t, e, "(+ (log 1) (log 2))")
	n, _ := e.Num(v)
	if n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
	order := evalStr(t, e, "order")
	if got := e.Sprint(order); got != "(2 1)" {
		t.Fatalf("evaluation order = %q, want (2 1) (left argument conses first)", got)
	}
}

// TestEvalTailCallDoesNotGrowStack is the trampoline regression test:
// without tail-call elimination this recursion would blow the Go stack
// or at least grow it linearly with the iteration count. Heap size is
// sized generously since nothing here triggers a mid-evaluation GC.
func TestEvalTailCallDoesNotGrowStack(t *testing.T) {
	e, err := New(Options{HeapSize: 500000})
	if err != nil {
		t.Fatal(err)
	}
	evalStr(t, e, "(set! count-down (fn (n) (if (eql? n 0) n (count-down (- n 1)))))")
	v := evalStr(t, e, "(count-down 50000)")
	n, err := e.Num(v)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("got %d, want 0", n)
	}
}

func TestEvalDoSequencesAndReturnsLast(t *testing.T) {
	e := newTestEngine(t)
	v := evalStr(t, e, "(do 1 2 3)")
	n, _ := e.Num(v)
	if n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
}

func TestEvalUserError(t *testing.T) {
	e := newTestEngine(t)
	form, err := e.NewReader("(error 'boom 1)").ReadStr()
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.Eval(form, NilRef)
	ee, ok := err.(*EngineError)
	if !ok {
		t.Fatalf("expected *EngineError, got %T", err)
	}
	if ee.Category != ErrUser {
		t.Fatalf("category = %v, want ErrUser", ee.Category)
	}
}

// TestEvalSymbolOperatorIsTextualMacro exercises the "operator evaluates
// to a symbol" rewrite path: a form whose operator yields a symbol r is
// re-dispatched as (r (quote form)) instead of failing as a bad function.
func TestEvalSymbolOperatorIsTextualMacro(t *testing.T) {
	e := newTestEngine(t)
	// "let" is interned but its global is the symbol
	// "let-internal-macro", not a callable — so (let ...) rewrites into
	// (let-internal-macro (quote (...))) and fails because
	// let-internal-macro is unbound, per SPEC_FULL.md's supplemented
	// "unfinished let" feature.
	form, err := e.NewReader("(let (x 1) x)").ReadStr()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(form, NilRef); err == nil {
		t.Fatal("expected the stubbed let macro to fail")
	}
}
