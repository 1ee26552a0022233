package interp

import "testing"

func TestNewHeapInvalidSize(t *testing.T) {
	if _, err := NewHeap(0); err == nil {
		t.Fatal("expected error for zero heap size")
	}
	if _, err := NewHeap(-1); err == nil {
		t.Fatal("expected error for negative heap size")
	}
}

func TestHeapAllocExhaustion(t *testing.T) {
	h, err := NewHeap(4)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if _, err := h.alloc(KindNumber); err != nil {
			t.Fatalf("alloc %d: %v", i, err)
		}
	}
	if _, err := h.alloc(KindNumber); err == nil {
		t.Fatal("expected a storage error once the arena is full")
	}
}

func TestHeapUsedAndCapacity(t *testing.T) {
	h, err := NewHeap(10)
	if err != nil {
		t.Fatal(err)
	}
	if h.Capacity() != 10 {
		t.Fatalf("Capacity() = %d, want 10", h.Capacity())
	}
	if h.Used() != 0 {
		t.Fatalf("Used() = %d, want 0", h.Used())
	}
	if _, err := h.alloc(KindNumber); err != nil {
		t.Fatal(err)
	}
	if h.Used() != 1 {
		t.Fatalf("Used() = %d, want 1", h.Used())
	}
}

// TestCollectReclaimsGarbage exercises the Cheney collector end to end
// through Engine.GC: unreachable cells are dropped, and a global binding
// reachable only through the oblist survives with its value intact.
func TestCollectReclaimsGarbage(t *testing.T) {
	e, err := New(Options{HeapSize: 2000})
	if err != nil {
		t.Fatal(err)
	}

	sym, err := e.Intern("answer")
	if err != nil {
		t.Fatal(err)
	}
	v, err := e.newNumber(42)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.setGlobal(sym, v); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 200; i++ {
		if _, err := e.newNumber(int64(i)); err != nil {
			t.Fatal(err)
		}
	}
	usedBefore := e.heap.Used()

	e.GC()

	if e.heap.Used() >= usedBefore {
		t.Fatalf("GC did not reclaim garbage: used before=%d after=%d", usedBefore, e.heap.Used())
	}

	// sym itself may be stale (GC relocated it); look the binding back up
	// through the surviving oblist instead of trusting the old Ref.
	got := e.SymbolGlobal(e.InternTry("answer"))
	n, err := e.Num(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatalf("global survived GC with wrong value: got %d want 42", n)
	}
}

func TestCollectPreservesExtraRoot(t *testing.T) {
	e, err := New(Options{HeapSize: 2000})
	if err != nil {
		t.Fatal(err)
	}
	v, err := e.newNumber(7)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if _, err := e.newNumber(int64(i)); err != nil {
			t.Fatal(err)
		}
	}

	e.GC(&v)

	n, err := e.Num(v)
	if err != nil {
		t.Fatal(err)
	}
	if n != 7 {
		t.Fatalf("extra root did not survive GC with its value: got %d want 7", n)
	}
}
