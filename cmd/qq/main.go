// Command qq is a minimal interactive Lisp interpreter: cons-cell lists,
// symbols, machine integers, first-class functions, and a small set of
// primitives and special forms (see SPEC_FULL.md). It takes no flags;
// launching enters the REPL on standard input/output.
package main

import (
	"fmt"
	"os"

	"github.com/qqlang/qq/internal/interp"
)

func main() {
	os.Exit(run())
}

func run() int {
	engine, err := interp.New(interp.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	line, err := interp.NewReadlineSource(engine.Prompt())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer line.Close()

	if err := engine.REPL(line); err != nil {
		return 1
	}
	return 0
}
