package interp

// symtab implements the oblist: a linear intern table from name strings
// to unique symbol cells (spec §4.2). The oblist head itself is a GC
// root; its spine is ordinary Pair cells whose car is a symbol cell.

// InternTry returns the existing symbol cell for name, or NilRef if the
// name has never been interned.
func (e *Engine) InternTry(name string) Ref {
	l := e.oblist
	for !isNil(l) {
		pair := e.heap.get(l)
		sym := e.heap.get(pair.a)
		if sym.name == name {
			return pair.a
		}
		l = pair.b
	}
	return NilRef
}

// Intern returns the unique symbol cell for name, allocating and
// prepending one to the oblist if this is the first use of the name. The
// name string outlives the symbol for the process lifetime (Go's garbage
// collector, not ours, owns the string's backing memory — this engine's
// GC only traces symbol cells, never symbol names, per spec §5).
func (e *Engine) Intern(name string) (Ref, error) {
	if sym := e.InternTry(name); !isNil(sym) {
		return sym, nil
	}

	symRef, err := e.heap.alloc(KindSymbol)
	if err != nil {
		return NilRef, err
	}
	symCell := e.heap.get(symRef)
	symCell.name = name
	symCell.global = e.unboundMarker

	pairRef, err := e.heap.alloc(KindPair)
	if err != nil {
		return NilRef, err
	}
	pair := e.heap.get(pairRef)
	pair.a = symRef
	pair.b = e.oblist
	e.oblist = pairRef

	return symRef, nil
}
