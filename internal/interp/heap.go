package interp

import (
	"fmt"

	"github.com/pkg/errors"
)

// DefaultHeapSize is the arena size used by the reference engine (spec
// §4.1: "heap_size = 5000" in the original).
const DefaultHeapSize = 5000

// Heap is a fixed-size, two-semispace Cheney-style copying collector. At
// any moment exactly one semispace is "active"; allocation only ever
// advances the fill pointer through the active space.
type Heap struct {
	spaces [2][]cell
	active int // 0 or 1, indexes spaces[]
	fill   int
	size   int
}

// NewHeap allocates both semispaces up front. A non-positive size is
// rejected with a plain error (not an EngineError) and no heap is built.
func NewHeap(size int) (*Heap, error) {
	if size <= 0 {
		return nil, errors.Errorf("heap: invalid size %d", size)
	}
	h := &Heap{size: size}
	h.spaces[0] = make([]cell, size)
	h.spaces[1] = make([]cell, size)
	return h, nil
}

func (h *Heap) cells() []cell { return h.spaces[h.active] }

// alloc claims the next cell in the active semispace, or fails with the
// spec's fatal storage error if the arena is exhausted.
func (h *Heap) alloc(kind Kind) (Ref, error) {
	if h.fill >= h.size {
		return NilRef, &EngineError{Category: ErrStorage, Message: "ran out of storage"}
	}
	r := Ref(h.fill)
	h.fill++
	c := &h.spaces[h.active][r]
	*c = cell{kind: kind}
	return r, nil
}

func (h *Heap) get(r Ref) *cell {
	return &h.spaces[h.active][r]
}

// Roots lists every GC root an Engine must keep alive, named the way
// spec §3 enumerates them. Collect mutates each field in place.
type Roots struct {
	Oblist        *Ref
	Truth         *Ref
	UnboundMarker *Ref
	EOF           *Ref
	QuoteSym      *Ref
	DoSym         *Ref
	FnSym         *Ref
	ErrobjSym     *Ref
	OpenFiles     *Ref
	Extra         []*Ref // additional transient roots (e.g. the REPL's in-flight value)
}

func (rs *Roots) all() []*Ref {
	out := []*Ref{
		rs.Oblist, rs.Truth, rs.UnboundMarker, rs.EOF,
		rs.QuoteSym, rs.DoSym, rs.FnSym, rs.ErrobjSym, rs.OpenFiles,
	}
	return append(out, rs.Extra...)
}

// Collect runs one full stop-the-world copying collection: swap
// semispaces, relocate every root, then scan forward relocating every
// reference field of every copied cell until the scan pointer catches up
// with the fill pointer.
func (h *Heap) Collect(roots *Roots) {
	oldSpace := h.spaces[h.active]
	newIdx := 1 - h.active

	h.active = newIdx
	h.fill = 0

	for _, root := range roots.all() {
		*root = h.relocateFrom(oldSpace, *root)
	}

	scan := 0
	for scan < h.fill {
		c := &h.spaces[h.active][scan]
		switch c.kind {
		case KindPair, KindFunction:
			c.a = h.relocateFrom(oldSpace, c.a)
			c.b = h.relocateFrom(oldSpace, c.b)
		case KindSymbol:
			c.global = h.relocateFrom(oldSpace, c.global)
		default:
			// Number, Primitive: no reference fields to trace.
		}
		scan++
	}
}

// relocateFrom copies x (indexing oldSpace) into the new active space if
// it hasn't been copied yet, and returns the new index. Already-copied
// cells are marked and carry a forwarding pointer in forward.
func (h *Heap) relocateFrom(oldSpace []cell, x Ref) Ref {
	if isNil(x) {
		return NilRef
	}
	old := &oldSpace[x]
	if old.marked {
		return old.forward
	}

	newRef := Ref(h.fill)
	h.fill++
	h.spaces[h.active][newRef] = *old
	// The copy's reference fields (a/b/global) still point into oldSpace;
	// the scan phase above relocates them in turn.

	old.marked = true
	old.forward = newRef
	return newRef
}

// Used reports how many cells are live in the active semispace, mostly
// for tests asserting GC pressure behavior (spec §8 testable property 7).
func (h *Heap) Used() int { return h.fill }

// Capacity is the number of cells available in one semispace.
func (h *Heap) Capacity() int { return h.size }

func (h *Heap) String() string {
	return fmt.Sprintf("Heap{active=%d, fill=%d/%d}", h.active, h.fill, h.size)
}
