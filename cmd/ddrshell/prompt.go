package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	"github.com/platinasystems/liner"
)

// prompter reads one command line at a time.
type prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// newPrompter picks the line reader for the session: the serial console at
// ttyPath if given, a line editor on an interactive terminal, or plain lines
// from stdin for scripts.
func newPrompter(ttyPath string, stdin io.Reader, stdout io.Writer) (prompter, io.Writer, error) {
	if ttyPath != "" {
		t, err := tty.OpenDevice(ttyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", ttyPath, err)
		}
		return newTTYPrompter(t), t.Output(), nil
	}
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return &linerPrompter{s: liner.NewLiner(), stdin: stdin, stdout: stdout}, stdout, nil
	}
	return newLinePrompter(stdin, nil), stdout, nil
}

// linePrompter reads newline separated commands. The prompt is only echoed
// when out is not nil.
type linePrompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newLinePrompter(r io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{sc: bufio.NewScanner(r), out: out}
}

func (p *linePrompter) Prompt(prompt string) (string, error) {
	if p.out != nil {
		fmt.Fprint(p.out, prompt)
	}
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.sc.Text(), nil
}

func (p *linePrompter) Close() error { return nil }

// linerPrompter edits lines with history on a terminal. It falls back to
// plain line reading when stdout turns out not to be a terminal.
type linerPrompter struct {
	s        *liner.State
	fallback *linePrompter
	stdin    io.Reader
	stdout   io.Writer
}

func (p *linerPrompter) Prompt(prompt string) (string, error) {
	if p.fallback != nil {
		return p.fallback.Prompt(prompt)
	}
	line, err := p.s.Prompt(prompt)
	switch {
	case err == nil:
		if line != "" {
			p.s.AppendHistory(line)
		}
	case errors.Is(err, liner.ErrNotTerminalOutput):
		p.s.Close()
		p.fallback = newLinePrompter(p.stdin, p.stdout)
		return p.fallback.Prompt(prompt)
	case errors.Is(err, liner.ErrPromptAborted):
		return "", nil
	}
	return line, err
}

func (p *linerPrompter) Close() error {
	if p.fallback != nil {
		return nil
	}
	return p.s.Close()
}

// ttyPrompter talks to a serial console, such as the one of a board running
// the bring-up under a debugger.
type ttyPrompter struct {
	t    *tty.TTY
	line *linePrompter
}

func newTTYPrompter(t *tty.TTY) *ttyPrompter {
	return &ttyPrompter{t: t, line: newLinePrompter(t.Input(), t.Output())}
}

func (p *ttyPrompter) Prompt(prompt string) (string, error) { return p.line.Prompt(prompt) }

func (p *ttyPrompter) Close() error { return p.t.Close() }
