package interp

import (
	"io"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// LineReader is the line-editing collaborator spec §1 places outside the
// core ("a `read_line()` that returns a next input line or end-of-input").
// The production implementation below wraps github.com/chzyer/readline,
// the Go-ecosystem analogue of the original's deps/linenoise.h.
type LineReader interface {
	// ReadLine returns the next line, or io.EOF once input is exhausted.
	ReadLine() (string, error)
	Close() error
}

type readlineSource struct {
	inst *readline.Instance
}

// NewReadlineSource builds a LineReader backed by a readline.Instance
// configured with the given prompt and in-memory history, matching
// qq.c's repl() calling linenoise(prompt) then linenoiseHistoryAdd.
func NewReadlineSource(prompt string) (LineReader, error) {
	inst, err := readline.NewEx(&readline.Config{
		Prompt:                 prompt,
		HistoryLimit:           1000,
		InterruptPrompt:        "^C",
		EOFPrompt:              "",
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "readline: failed to initialize line editor")
	}
	return &readlineSource{inst: inst}, nil
}

func (s *readlineSource) ReadLine() (string, error) {
	line, err := s.inst.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			// Ctrl-C on an empty line: treat as an empty input line,
			// matching the original's longjmp-free best effort (no
			// signal handling is installed per spec §9 Open Questions).
			return "", nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
		return "", errors.Wrap(err, "readline: read error")
	}
	s.inst.SaveHistory(line)
	return line, nil
}

func (s *readlineSource) Close() error {
	return s.inst.Close()
}
