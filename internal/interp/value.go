package interp

// Ref is an index into a semispace's cell array. It stands in for the
// native pointer the original C engine uses: relocating a value during GC
// just means writing a new index, so there is no dangling-pointer hazard
// across a copy.
type Ref uint32

// NilRef is the sentinel for the empty list. Nil is never itself a cell
// (spec: "a singleton sentinel, represented by the absence of a cell").
const NilRef Ref = ^Ref(0)

// Kind tags which variant a cell holds. Exactly one is active per cell.
type Kind uint8

const (
	KindPair Kind = iota
	KindNumber
	KindSymbol
	KindPrimitive
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindPair:
		return "pair"
	case KindNumber:
		return "number"
	case KindSymbol:
		return "symbol"
	case KindPrimitive:
		return "primitive"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// ArityKind is the calling convention of a primitive.
type ArityKind uint8

const (
	Prim0 ArityKind = iota
	Prim1
	Prim2
	Prim3
	PrimL
	PrimF
	PrimM
)

// PrimFunc is the uniform Go shape behind every arity kind. The evaluator
// assembles args per the calling convention (§4.5); primf/primm receive
// unevaluated argument forms instead of values.
type PrimFunc func(e *Engine, args []Ref, env Ref) (Ref, error)

// MacroFunc is the primm calling convention: it may rewrite the form and
// env for re-dispatch. rewritten=false means "no rewrite, return form as
// the result" (mirrors the original returning Nil from the C callback).
type MacroFunc func(e *Engine, form, env Ref) (newForm, newEnv Ref, rewritten bool, err error)

// cell is the tagged union backing every non-Nil value. Field reuse is
// intentional: a/b serve as car/cdr for pairs and as code/env for
// functions, and name serves as both symbol and primitive name, the same
// way the original's C union overlaps storage per variant.
type cell struct {
	kind Kind

	marked  bool
	forward Ref

	a, b Ref // pair: car, cdr. function: code, env.

	num int64 // number payload

	name string // symbol / primitive name

	global Ref // symbol's global value cell

	arity ArityKind
	prim  PrimFunc
	macro MacroFunc
}

func isNil(r Ref) bool { return r == NilRef }
