package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders x the way spec §6 specifies: "()" for Nil, "(e1 e2 …
// eN)" for proper lists with improper tails rendered as "… . x)", decimal
// integers, symbol names verbatim, "#<prim K name>" and "#<fn formals
// body>" for the two callable kinds.
func (e *Engine) Sprint(x Ref) string {
	var sb strings.Builder
	e.print(&sb, x)
	return sb.String()
}

func (e *Engine) print(sb *strings.Builder, x Ref) {
	if isNil(x) {
		sb.WriteString("()")
		return
	}
	c := e.heap.get(x)
	switch c.kind {
	case KindPair:
		sb.WriteByte('(')
		e.print(sb, c.a)
		t := c.b
		for e.IsPair(t) {
			tc := e.heap.get(t)
			sb.WriteByte(' ')
			e.print(sb, tc.a)
			t = tc.b
		}
		if !isNil(t) {
			sb.WriteString(" . ")
			e.print(sb, t)
		}
		sb.WriteByte(')')
	case KindNumber:
		sb.WriteString(strconv.FormatInt(c.num, 10))
	case KindSymbol:
		sb.WriteString(c.name)
	case KindPrimitive:
		fmt.Fprintf(sb, "#<prim %d %s>", c.arity, c.name)
	case KindFunction:
		sb.WriteString("#<fn ")
		e.print(sb, e.mustCar(c.a))
		sb.WriteByte(' ')
		e.print(sb, e.mustCdr(c.a))
		sb.WriteByte('>')
	}
}
