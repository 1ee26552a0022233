package interp

// An environment is Nil or a pair (frame . parent-env), where a frame is
// (formals-list . actuals-list). Lookup walks frames innermost-first; a
// miss at an exhausted formals list continues to the next frame (spec
// §4.3).

// EnvFind walks env looking for sym, returning the actuals-list cell
// whose car is the live binding (so callers can mutate it in place), or
// NilRef if sym is unbound in every frame.
func (e *Engine) EnvFind(sym, env Ref) (Ref, error) {
	frame := env
	for e.IsPair(frame) {
		fc := e.heap.get(frame)
		x := fc.a
		if !e.IsPair(x) && !isNil(x) {
			return NilRef, newErrVal(ErrEvaluator, "envfind: damaged frame", x)
		}
		fl, al := e.mustCar(x), e.mustCdr(x)
		for e.IsPair(fl) {
			flc := e.heap.get(fl)
			if !e.IsPair(al) {
				return NilRef, newErrVal(ErrEvaluator, "envfind: too few arguments", x)
			}
			alc := e.heap.get(al)
			if flc.a == sym {
				return al, nil
			}
			fl = flc.b
			al = alc.b
		}
		frame = fc.b
	}
	return NilRef, nil
}

// Set updates sym's lexical binding if EnvFind finds one, otherwise
// writes directly into its global cell. It is an error to call Set with
// a non-symbol (spec §4.3).
func (e *Engine) Set(sym, value, env Ref) (Ref, error) {
	if !e.IsSymbol(sym) {
		return NilRef, newErrVal(ErrEvaluator, "set: arg1 is not symbol", sym)
	}
	binding, err := e.EnvFind(sym, env)
	if err != nil {
		return NilRef, err
	}
	if isNil(binding) {
		e.heap.get(sym).global = value
		return value, nil
	}
	e.heap.get(binding).a = value
	return value, nil
}

// PushFrame builds a new environment frame binding formals to actuals and
// prepends it to parentEnv. formals may be a single symbol (capture-all:
// the whole actuals list becomes its binding) or a proper list of
// symbols, matching the Function-application row of spec §4.5's dispatch
// table.
func (e *Engine) PushFrame(formals, actuals, parentEnv Ref) (Ref, error) {
	var frameFormals, frameActuals Ref
	if e.IsSymbol(formals) {
		one, err := e.cons(formals, NilRef)
		if err != nil {
			return NilRef, err
		}
		wrapped, err := e.cons(actuals, NilRef)
		if err != nil {
			return NilRef, err
		}
		frameFormals, frameActuals = one, wrapped
	} else {
		frameFormals, frameActuals = formals, actuals
	}

	frame, err := e.cons(frameFormals, frameActuals)
	if err != nil {
		return NilRef, err
	}
	return e.cons(frame, parentEnv)
}
