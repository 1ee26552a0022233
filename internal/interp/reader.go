package interp

import (
	"math"
	"os"
	"strconv"
	"strings"
)

// tokenMaxSize bounds a single token, matching qq.c's TOKENMAXSIZE.
const tokenMaxSize = 256

// Reader tokenizes and parses a single input buffer into a value tree
// (spec §4.4). It holds a cursor over its buffer the way qq.c's
// read_buffer global does, but scoped to one Reader instance instead of a
// process-wide pointer.
type Reader struct {
	e   *Engine
	buf string
	pos int
}

// NewReader returns a Reader positioned at the start of src.
func (e *Engine) NewReader(src string) *Reader {
	return &Reader{e: e, buf: src}
}

// ReadFile reads an entire file into memory and parses only its first
// top-level form, mirroring qq.c's readf(FILE*): the whole file is
// slurped, then read_val is called once. Trailing forms in the file are
// silently ignored, matching the original's known (preserved, not fixed)
// behavior per spec §4.4.
func (e *Engine) ReadFile(path string) (Ref, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return NilRef, newErrVal(ErrReader, "read: error reading file", NilRef)
	}
	return e.NewReader(string(content)).ReadStr()
}

func (r *Reader) peek() (byte, bool) {
	if r.pos >= len(r.buf) {
		return 0, false
	}
	return r.buf[r.pos], true
}

func (r *Reader) skipWhitespace(eofMsg string) error {
	for {
		c, ok := r.peek()
		if !ok {
			if eofMsg != "" {
				return newErr(ErrReader, eofMsg)
			}
			return nil
		}
		if !isSpace(c) {
			return nil
		}
		r.pos++
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '\'' || c == '"'
}

// ReadStr reads exactly one value from the current cursor position,
// advancing it past what was consumed (spec §4.4).
func (r *Reader) ReadStr() (Ref, error) {
	if err := r.skipWhitespace("read: end of file"); err != nil {
		return NilRef, err
	}
	c, _ := r.peek()
	switch c {
	case '(':
		r.pos++
		return r.readList()
	case ')':
		return NilRef, newErr(ErrReader, "read: unexpected close paren")
	case '\'':
		r.pos++
		inner, err := r.ReadStr()
		if err != nil {
			return NilRef, err
		}
		wrapped, err := r.e.cons(inner, NilRef)
		if err != nil {
			return NilRef, err
		}
		return r.e.cons(r.e.quoteSym, wrapped)
	}
	return r.readToken()
}

// readList consumes sub-expressions until the matching ')', returning the
// list in source order. Dotted-pair syntax is not supported (spec §4.4).
func (r *Reader) readList() (Ref, error) {
	if err := r.skipWhitespace("read: end of file inside list"); err != nil {
		return NilRef, err
	}
	items := make([]Ref, 0, 4)
	for {
		c, ok := r.peek()
		if !ok {
			return NilRef, newErr(ErrReader, "read: end of file inside list")
		}
		if c == ')' {
			r.pos++
			break
		}
		v, err := r.ReadStr()
		if err != nil {
			return NilRef, err
		}
		items = append(items, v)
		if err := r.skipWhitespace("read: end of file inside list"); err != nil {
			return NilRef, err
		}
	}

	list := NilRef
	for i := len(items) - 1; i >= 0; i-- {
		var err error
		list, err = r.e.cons(items[i], list)
		if err != nil {
			return NilRef, err
		}
	}
	return list, nil
}

// readToken collects a whitespace/delimiter-bounded run, truncates it to
// tokenMaxSize-1 bytes, then classifies it as a Number or a Symbol (spec
// §4.4/§6).
func (r *Reader) readToken() (Ref, error) {
	var sb strings.Builder
	for {
		c, ok := r.peek()
		if !ok || isSpace(c) || isDelimiter(c) {
			break
		}
		if sb.Len() < tokenMaxSize-1 {
			sb.WriteByte(c)
		}
		r.pos++
	}
	tok := sb.String()
	return r.classify(tok)
}

func (r *Reader) classify(tok string) (Ref, error) {
	if looksNumeric(tok) {
		n := parseIntegerTruncating(tok)
		return r.e.newNumber(n)
	}
	return r.e.Intern(tok)
}

// looksNumeric mirrors qq.c's read_token/read_str classification: a
// leading digit, or one of "+-." immediately followed by a digit, is
// treated as a number; anything else (including a bare "+", "-" or ".")
// is a symbol. The number is then parsed with float semantics and
// truncated to an integer, preserving the original's observable (if odd)
// behavior of accepting "1.5" or "1e3" and truncating them.
func looksNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	if tok[0] >= '0' && tok[0] <= '9' {
		return true
	}
	if (tok[0] == '+' || tok[0] == '-' || tok[0] == '.') && len(tok) > 1 &&
		tok[1] >= '0' && tok[1] <= '9' {
		return true
	}
	return false
}

// parseIntegerTruncating parses tok with the same permissive grammar as
// strconv.ParseFloat and truncates toward zero, matching qq.c's
// atof(tok_buffer) followed by an implicit double->long cast. Tokens that
// looksNumeric accepts but that fail to parse as a float (e.g. "1abc")
// fall back to 0.
func parseIntegerTruncating(tok string) int64 {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0
	}
	return int64(math.Trunc(f))
}
