package interp

// Eval evaluates x in env, using a single re-entry point (the `for`
// loop below stands in for qq.c's `loop:` label) to implement tail-call
// elimination without growing the Go call stack for user-level tail
// calls (spec §4.5).
func (e *Engine) Eval(x, env Ref) (Ref, error) {
	for {
		if isNil(x) {
			return NilRef, nil
		}
		c := e.heap.get(x)
		switch c.kind {
		case KindNumber, KindPrimitive, KindFunction:
			return x, nil
		case KindSymbol:
			binding, err := e.EnvFind(x, env)
			if err != nil {
				return NilRef, err
			}
			if !isNil(binding) {
				return e.mustCar(binding), nil
			}
			global := c.global
			if global == e.unboundMarker {
				return NilRef, newErrVal(ErrEvaluator, "eval: unbound variable", x)
			}
			return global, nil
		case KindPair:
			opForm := c.a
			argForms := c.b

			r, err := e.Eval(opForm, env)
			if err != nil {
				return NilRef, err
			}
			if isNil(r) {
				return NilRef, newErrVal(ErrEvaluator, "eval: bad function", r)
			}
			rc := e.heap.get(r)
			switch rc.kind {
			case KindPrimitive:
				switch rc.arity {
				case Prim0:
					return rc.prim(e, nil, env)
				case Prim1:
					a0, err := e.evalNth(argForms, 0, env)
					if err != nil {
						return NilRef, err
					}
					return rc.prim(e, []Ref{a0}, env)
				case Prim2:
					a0, err := e.evalNth(argForms, 0, env)
					if err != nil {
						return NilRef, err
					}
					a1, err := e.evalNth(argForms, 1, env)
					if err != nil {
						return NilRef, err
					}
					return rc.prim(e, []Ref{a0, a1}, env)
				case Prim3:
					a0, err := e.evalNth(argForms, 0, env)
					if err != nil {
						return NilRef, err
					}
					a1, err := e.evalNth(argForms, 1, env)
					if err != nil {
						return NilRef, err
					}
					a2, err := e.evalNth(argForms, 2, env)
					if err != nil {
						return NilRef, err
					}
					return rc.prim(e, []Ref{a0, a1, a2}, env)
				case PrimL:
					args, err := e.evalArgsSlice(argForms, env)
					if err != nil {
						return NilRef, err
					}
					return rc.prim(e, args, env)
				case PrimF:
					return rc.prim(e, []Ref{argForms}, env)
				case PrimM:
					newForm, newEnv, rewritten, err := rc.macro(e, x, env)
					if err != nil {
						return NilRef, err
					}
					if !rewritten {
						return newForm, nil
					}
					x, env = newForm, newEnv
					continue
				default:
					return NilRef, newErrVal(ErrEvaluator, "eval: bad function", r)
				}
			case KindFunction:
				actuals, err := e.evalArgsSlice(argForms, env)
				if err != nil {
					return NilRef, err
				}
				formals, err := e.Car(rc.a)
				if err != nil {
					return NilRef, err
				}
				body, err := e.Cdr(rc.a)
				if err != nil {
					return NilRef, err
				}
				actualsList, err := refsToList(e, actuals)
				if err != nil {
					return NilRef, err
				}
				newEnv, err := e.PushFrame(formals, actualsList, rc.b)
				if err != nil {
					return NilRef, err
				}
				x, env = body, newEnv
				continue
			case KindSymbol:
				// Textual macro: rewrite the whole form x into
				// (r (quote x)) and re-dispatch in the empty environment.
				quotedArgs, err := e.cons(x, NilRef)
				if err != nil {
					return NilRef, err
				}
				quoted, err := e.cons(e.quoteSym, quotedArgs)
				if err != nil {
					return NilRef, err
				}
				rArgs, err := e.cons(quoted, NilRef)
				if err != nil {
					return NilRef, err
				}
				rewritten, err := e.cons(r, rArgs)
				if err != nil {
					return NilRef, err
				}
				x, env = rewritten, NilRef
				continue
			default:
				return NilRef, newErrVal(ErrEvaluator, "eval: bad function", r)
			}
		default:
			return x, nil
		}
	}
}

// evalNth evaluates the form at position n (0-based) of a proper
// argument-form list, erroring if the list is too short or malformed
// (spec §4.5: "an improper argument list is a syntactic error").
func (e *Engine) evalNth(argForms Ref, n int, env Ref) (Ref, error) {
	cur := argForms
	for i := 0; i < n; i++ {
		if !e.IsPair(cur) {
			return NilRef, newErrVal(ErrEvaluator, "eval: bad syntax in argument list", argForms)
		}
		cur = e.heap.get(cur).b
	}
	if !e.IsPair(cur) {
		return NilRef, newErrVal(ErrEvaluator, "eval: bad syntax in argument list", argForms)
	}
	return e.Eval(e.heap.get(cur).a, env)
}

// evalArgsSlice evaluates every subform of a proper argument-form list
// left-to-right (qq.c's eval_args), returning the evaluated values as a
// Go slice; callers that need a cons list call refsToList on the result.
func (e *Engine) evalArgsSlice(argForms, env Ref) ([]Ref, error) {
	if isNil(argForms) {
		return nil, nil
	}
	var out []Ref
	cur := argForms
	for {
		if !e.IsPair(cur) {
			return nil, newErrVal(ErrEvaluator, "eval: bad syntax in argument list", argForms)
		}
		c := e.heap.get(cur)
		v, err := e.Eval(c.a, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if isNil(c.b) {
			break
		}
		cur = c.b
	}
	return out, nil
}

// refsToList conses a slice of already-evaluated Refs into a proper list
// in order, the shape Function application needs (PrimL primitives get
// the slice itself).
func refsToList(e *Engine, vals []Ref) (Ref, error) {
	list := NilRef
	for i := len(vals) - 1; i >= 0; i-- {
		var err error
		list, err = e.cons(vals[i], list)
		if err != nil {
			return NilRef, err
		}
	}
	return list, nil
}
