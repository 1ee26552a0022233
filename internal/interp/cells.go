package interp

// cons, Car, Cdr and friends are the primitive cell constructors/accessors
// shared by the reader, evaluator and primitives. They mirror qq.c's
// cons/new_num/new_sym/new_prim/new_fn, but as Engine methods since
// allocation always goes through this engine's heap.

func (e *Engine) cons(car, cdr Ref) (Ref, error) {
	r, err := e.heap.alloc(KindPair)
	if err != nil {
		return NilRef, err
	}
	c := e.heap.get(r)
	c.a = car
	c.b = cdr
	return r, nil
}

func (e *Engine) newNumber(n int64) (Ref, error) {
	r, err := e.heap.alloc(KindNumber)
	if err != nil {
		return NilRef, err
	}
	e.heap.get(r).num = n
	return r, nil
}

func (e *Engine) newFunction(code, env Ref) (Ref, error) {
	r, err := e.heap.alloc(KindFunction)
	if err != nil {
		return NilRef, err
	}
	c := e.heap.get(r)
	c.a = code
	c.b = env
	return r, nil
}

func (e *Engine) newPrimitive(name string, arity ArityKind, fn PrimFunc, macro MacroFunc) (Ref, error) {
	r, err := e.heap.alloc(KindPrimitive)
	if err != nil {
		return NilRef, err
	}
	c := e.heap.get(r)
	c.name = name
	c.arity = arity
	c.prim = fn
	c.macro = macro
	return r, nil
}

// Car, Cdr, Num, SymbolName and IsPair/IsNumber/IsSymbol are read accessors
// over a Ref, each validating the variant the way qq.c's type(x)/typeeq
// macros do.

func (e *Engine) IsPair(r Ref) bool   { return !isNil(r) && e.heap.get(r).kind == KindPair }
func (e *Engine) IsNumber(r Ref) bool { return !isNil(r) && e.heap.get(r).kind == KindNumber }
func (e *Engine) IsSymbol(r Ref) bool { return !isNil(r) && e.heap.get(r).kind == KindSymbol }

// Car returns the car of a Pair, or Nil if x is Nil (spec §4.6: "car/cdr
// of Nil return Nil; on non-pair, fatal").
func (e *Engine) Car(x Ref) (Ref, error) {
	if isNil(x) {
		return NilRef, nil
	}
	c := e.heap.get(x)
	if c.kind != KindPair {
		return NilRef, newErrVal(ErrType, "car: arg1 is not a cell", x)
	}
	return c.a, nil
}

func (e *Engine) Cdr(x Ref) (Ref, error) {
	if isNil(x) {
		return NilRef, nil
	}
	c := e.heap.get(x)
	if c.kind != KindPair {
		return NilRef, newErrVal(ErrType, "cdr: arg1 is not a cell", x)
	}
	return c.b, nil
}

// mustCar/mustCdr are non-erroring helpers for positions the original's
// l_car/l_cdr macros are themselves used in non-primitive code (argument
// list walking inside eval), where a non-pair, non-nil value is itself a
// syntax error already being reported by the caller.
func (e *Engine) mustCar(x Ref) Ref {
	r, err := e.Car(x)
	if err != nil {
		return NilRef
	}
	return r
}

func (e *Engine) mustCdr(x Ref) Ref {
	r, err := e.Cdr(x)
	if err != nil {
		return NilRef
	}
	return r
}

func (e *Engine) SetCar(x, v Ref) error {
	if isNil(x) || e.heap.get(x).kind != KindPair {
		return newErrVal(ErrType, "set-car!: arg1 is not a cell", x)
	}
	e.heap.get(x).a = v
	return nil
}

func (e *Engine) SetCdr(x, v Ref) error {
	if isNil(x) || e.heap.get(x).kind != KindPair {
		return newErrVal(ErrType, "set-cdr!: arg1 is not a cell", x)
	}
	e.heap.get(x).b = v
	return nil
}

func (e *Engine) Num(x Ref) (int64, error) {
	if isNil(x) || e.heap.get(x).kind != KindNumber {
		return 0, newErrVal(ErrType, "arg is not a number", x)
	}
	return e.heap.get(x).num, nil
}

func (e *Engine) SymbolName(x Ref) string {
	if isNil(x) {
		return ""
	}
	return e.heap.get(x).name
}

func (e *Engine) SymbolGlobal(x Ref) Ref {
	return e.heap.get(x).global
}

// Reverse destructively-in-spirit (but allocation-only, like the
// original) reverses a proper list, matching qq.c's l_reverse.
func (e *Engine) Reverse(x Ref) (Ref, error) {
	y := NilRef
	for !isNil(x) {
		c := e.heap.get(x)
		if c.kind != KindPair {
			break
		}
		var err error
		y, err = e.cons(c.a, y)
		if err != nil {
			return NilRef, err
		}
		x = c.b
	}
	return y, nil
}
