package interp

import "fmt"

// registerPrimitives binds every builtin name into the global
// environment, mirroring qq.c's init(). Each is tagged with its arity
// kind per spec §4.6.
func (e *Engine) registerPrimitives() error {
	type def struct {
		name  string
		arity ArityKind
		fn    PrimFunc
		macro MacroFunc
	}

	defs := []def{
		{"cons", Prim2, primCons, nil},
		{"car", Prim1, primCar, nil},
		{"cdr", Prim1, primCdr, nil},
		{"set-car!", Prim2, primSetCar, nil},
		{"set-cdr!", Prim2, primSetCdr, nil},
		{"reverse", Prim1, primReverse, nil},
		{"set!", PrimF, primSetBang, nil},
		{"+", Prim2, primAdd, nil},
		{"-", Prim2, primSub, nil},
		{"*", Prim2, primMul, nil},
		{"/", Prim2, primDiv, nil},
		{"%", Prim2, primMod, nil},
		{">", Prim2, primGreater, nil},
		{"<", Prim2, primLess, nil},
		{"eq?", Prim2, primEq, nil},
		{"eql?", Prim2, primEql, nil},
		{"read", Prim1, primRead, nil},
		{"print", Prim1, primPrint, nil},
		{"eval", PrimF, primEval, nil},
		{"error", Prim2, primError, nil},
		{"random", Prim1, primRandom, nil},
		{"fn", PrimF, primFn, nil},
		{"quote", PrimF, primQuote, nil},
		{"if", 0, nil, macroIf},
		{"do", 0, nil, macroDo},
	}
	for _, d := range defs {
		arity := d.arity
		if d.macro != nil {
			arity = PrimM
		}
		primRef, err := e.newPrimitive(d.name, arity, d.fn, d.macro)
		if err != nil {
			return err
		}
		sym, err := e.Intern(d.name)
		if err != nil {
			return err
		}
		if err := e.setGlobal(sym, primRef); err != nil {
			return err
		}
	}
	return nil
}

// registerReservedAliases wires the one extra global binding qq.c's
// init_storage sets beyond those already installed by initStorage (which
// binds `t` to itself and `nil` to the empty list): the never-finished
// `let` macro stub (SPEC_FULL.md "Supplemented features").
func (e *Engine) registerReservedAliases() error {
	letSym, err := e.Intern("let")
	if err != nil {
		return err
	}
	aliasSym, err := e.Intern("let-internal-macro")
	if err != nil {
		return err
	}
	return e.setGlobal(letSym, aliasSym)
}

func primCons(e *Engine, args []Ref, env Ref) (Ref, error) {
	return e.cons(args[0], args[1])
}

func primCar(e *Engine, args []Ref, env Ref) (Ref, error) {
	return e.Car(args[0])
}

func primCdr(e *Engine, args []Ref, env Ref) (Ref, error) {
	return e.Cdr(args[0])
}

func primSetCar(e *Engine, args []Ref, env Ref) (Ref, error) {
	if err := e.SetCar(args[0], args[1]); err != nil {
		return NilRef, err
	}
	return args[1], nil
}

func primSetCdr(e *Engine, args []Ref, env Ref) (Ref, error) {
	if err := e.SetCdr(args[0], args[1]); err != nil {
		return NilRef, err
	}
	return args[1], nil
}

func primReverse(e *Engine, args []Ref, env Ref) (Ref, error) {
	return e.Reverse(args[0])
}

// primSetBang is set! — PrimF: args[0] is the raw unevaluated (name
// value) form list. The name is not evaluated; the value is.
func primSetBang(e *Engine, args []Ref, env Ref) (Ref, error) {
	form := args[0]
	nameForm, err := e.Car(form)
	if err != nil {
		return NilRef, err
	}
	if !e.IsSymbol(nameForm) {
		return NilRef, newErrVal(ErrType, "set!: arg1 is not a symbol", nameForm)
	}
	rest, err := e.Cdr(form)
	if err != nil {
		return NilRef, err
	}
	valueForm, err := e.Car(rest)
	if err != nil {
		return NilRef, err
	}
	value, err := e.Eval(valueForm, env)
	if err != nil {
		return NilRef, err
	}
	return e.Set(nameForm, value, env)
}

func numArgs(e *Engine, name string, args []Ref) (int64, int64, error) {
	x, err := e.Num(args[0])
	if err != nil {
		return 0, 0, newErrVal(ErrType, name+": arg1 is not a number", args[0])
	}
	y, err := e.Num(args[1])
	if err != nil {
		return 0, 0, newErrVal(ErrType, name+": arg2 is not a number", args[1])
	}
	return x, y, nil
}

func primAdd(e *Engine, args []Ref, env Ref) (Ref, error) {
	x, y, err := numArgs(e, "add", args)
	if err != nil {
		return NilRef, err
	}
	return e.newNumber(x + y)
}

func primSub(e *Engine, args []Ref, env Ref) (Ref, error) {
	x, y, err := numArgs(e, "sub", args)
	if err != nil {
		return NilRef, err
	}
	return e.newNumber(x - y)
}

func primMul(e *Engine, args []Ref, env Ref) (Ref, error) {
	x, y, err := numArgs(e, "mul", args)
	if err != nil {
		return NilRef, err
	}
	return e.newNumber(x * y)
}

func primDiv(e *Engine, args []Ref, env Ref) (Ref, error) {
	x, y, err := numArgs(e, "div", args)
	if err != nil {
		return NilRef, err
	}
	if y == 0 {
		return NilRef, newErrVal(ErrArithmetic, "div: division by zero", args[1])
	}
	return e.newNumber(x / y)
}

func primMod(e *Engine, args []Ref, env Ref) (Ref, error) {
	x, y, err := numArgs(e, "mod", args)
	if err != nil {
		return NilRef, err
	}
	if y == 0 {
		return NilRef, newErrVal(ErrArithmetic, "mod: division by zero", args[1])
	}
	return e.newNumber(x % y)
}

func primGreater(e *Engine, args []Ref, env Ref) (Ref, error) {
	x, y, err := numArgs(e, ">", args)
	if err != nil {
		return NilRef, err
	}
	if x > y {
		return e.truth, nil
	}
	return NilRef, nil
}

func primLess(e *Engine, args []Ref, env Ref) (Ref, error) {
	x, y, err := numArgs(e, "<", args)
	if err != nil {
		return NilRef, err
	}
	if x < y {
		return e.truth, nil
	}
	return NilRef, nil
}

func primEq(e *Engine, args []Ref, env Ref) (Ref, error) {
	if args[0] == args[1] {
		return e.truth, nil
	}
	return NilRef, nil
}

func primEql(e *Engine, args []Ref, env Ref) (Ref, error) {
	if e.IsNumber(args[0]) && e.IsNumber(args[1]) {
		x, _ := e.Num(args[0])
		y, _ := e.Num(args[1])
		if x == y {
			return e.truth, nil
		}
		return NilRef, nil
	}
	if args[0] == args[1] {
		return e.truth, nil
	}
	return NilRef, nil
}

// primRead implements `read` per DESIGN.md's Open Question resolution:
// its argument is ignored and it always yields Nil, the observable
// behavior of qq.c's l_read (which always parses the literal "()").
func primRead(e *Engine, args []Ref, env Ref) (Ref, error) {
	rd := e.NewReader("()")
	return rd.ReadStr()
}

func primPrint(e *Engine, args []Ref, env Ref) (Ref, error) {
	fmt.Fprintln(e.stdout, e.Sprint(args[0]))
	return NilRef, nil
}

// primEval is PrimF: args[0] is the raw (unevaluated) argument-form list.
// Its first element is evaluated exactly once in env (qq.c's l_eval ->
// eval(l_car(args), env)); unlike Scheme's eval, the result is returned
// as-is rather than evaluated a second time as code.
func primEval(e *Engine, args []Ref, env Ref) (Ref, error) {
	form, err := e.Car(args[0])
	if err != nil {
		return NilRef, err
	}
	return e.Eval(form, env)
}

func primError(e *Engine, args []Ref, env Ref) (Ref, error) {
	if !e.IsSymbol(args[0]) {
		return NilRef, newErrVal(ErrType, "error: arg1 is not a symbol", args[0])
	}
	msg := e.SymbolName(args[0])
	return NilRef, &EngineError{Category: ErrUser, Message: msg, Offender: args[1], HasValue: true}
}

func primRandom(e *Engine, args []Ref, env Ref) (Ref, error) {
	n, err := e.Num(args[0])
	if err != nil {
		return NilRef, newErrVal(ErrType, "random: arg1 is not a number", args[0])
	}
	return e.newNumber(e.rand.BoundedRandom(n))
}

// primFn constructs a closure. args[0] is the raw (formals body...) form
// list (PrimF convention).
func primFn(e *Engine, args []Ref, env Ref) (Ref, error) {
	form := args[0]
	formals, err := e.Car(form)
	if err != nil {
		return NilRef, err
	}
	rest, err := e.Cdr(form)
	if err != nil {
		return NilRef, err
	}

	var body Ref
	restCdr, err := e.Cdr(rest)
	if err != nil {
		return NilRef, err
	}
	if isNil(restCdr) {
		body, err = e.Car(rest)
		if err != nil {
			return NilRef, err
		}
	} else {
		wrapped, err := e.cons(e.doSym, rest)
		if err != nil {
			return NilRef, err
		}
		body = wrapped
	}

	if !e.IsSymbol(formals) {
		l := formals
		for e.IsPair(l) {
			l = e.mustCdr(l)
		}
		if !isNil(l) {
			return NilRef, newErrVal(ErrEvaluator, "fn: improper formal argument list", formals)
		}
	}

	code, err := e.cons(formals, body)
	if err != nil {
		return NilRef, err
	}
	return e.newFunction(code, env)
}

func primQuote(e *Engine, args []Ref, env Ref) (Ref, error) {
	return e.Car(args[0])
}

// macroIf is `if`, a PrimM: evaluate the test, rewrite the form to the
// chosen branch, and signal the evaluator to re-dispatch (spec §4.6).
func macroIf(e *Engine, form, env Ref) (Ref, Ref, bool, error) {
	args, err := e.Cdr(form)
	if err != nil {
		return NilRef, NilRef, false, err
	}
	test, err := e.Car(args)
	if err != nil {
		return NilRef, NilRef, false, err
	}
	testVal, err := e.Eval(test, env)
	if err != nil {
		return NilRef, NilRef, false, err
	}
	rest, err := e.Cdr(args)
	if err != nil {
		return NilRef, NilRef, false, err
	}
	var branch Ref
	if !isNil(testVal) {
		branch, err = e.Car(rest)
	} else {
		elseRest, cerr := e.Cdr(rest)
		if cerr != nil {
			return NilRef, NilRef, false, cerr
		}
		branch, err = e.Car(elseRest)
	}
	if err != nil {
		return NilRef, NilRef, false, err
	}
	return branch, env, true, nil
}

// macroDo is `do`, a PrimM: evaluate every subform but the last for
// effect, then rewrite the form to the last and re-dispatch.
func macroDo(e *Engine, form, env Ref) (Ref, Ref, bool, error) {
	l, err := e.Cdr(form)
	if err != nil {
		return NilRef, NilRef, false, err
	}
	if isNil(l) {
		return NilRef, env, true, nil
	}
	next, err := e.Cdr(l)
	if err != nil {
		return NilRef, NilRef, false, err
	}
	for !isNil(next) {
		cur, err := e.Car(l)
		if err != nil {
			return NilRef, NilRef, false, err
		}
		if _, err := e.Eval(cur, env); err != nil {
			return NilRef, NilRef, false, err
		}
		l = next
		next, err = e.Cdr(l)
		if err != nil {
			return NilRef, NilRef, false, err
		}
	}
	last, err := e.Car(l)
	if err != nil {
		return NilRef, NilRef, false, err
	}
	return last, env, true, nil
}
