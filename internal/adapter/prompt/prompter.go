// Package prompt implements port.Prompter for terminals, scripts and tests.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"aide/internal/port"
)

var (
	_ port.Prompter = (*InteractivePrompter)(nil)
	_ port.Prompter = (*NonInteractivePrompter)(nil)
)

// InteractivePrompter reads answers line by line from a reader.
type InteractivePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewInteractivePrompter prompts on stderr and reads stdin.
func NewInteractivePrompter() *InteractivePrompter {
	return NewInteractivePrompterWithIO(os.Stdin, os.Stderr)
}

func NewInteractivePrompterWithIO(r io.Reader, w io.Writer) *InteractivePrompter {
	return &InteractivePrompter{reader: bufio.NewReader(r), writer: w}
}

// Confirm prints prompt with a [y/N] hint. Only y or yes (any case) is a yes;
// EOF is a no.
func (p *InteractivePrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(p.writer, "%s [y/N]: ", prompt)

	type answer struct {
		line string
		err  error
	}
	done := make(chan answer, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		done <- answer{line, err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-done:
		if a.err != nil && a.err != io.EOF {
			return false, fmt.Errorf("read answer: %w", a.err)
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// NonInteractivePrompter answers every question the same way without
// reading input. Used for --yes and --non-interactive, and when stdin is not
// a terminal.
type NonInteractivePrompter struct {
	answer bool
	writer io.Writer
}

// NewAutoApprovePrompter accepts every suggestion.
func NewAutoApprovePrompter(w io.Writer) *NonInteractivePrompter {
	return &NonInteractivePrompter{answer: true, writer: w}
}

// NewNonInteractivePrompter declines every suggestion.
func NewNonInteractivePrompter(w io.Writer) *NonInteractivePrompter {
	return &NonInteractivePrompter{answer: false, writer: w}
}

func (p *NonInteractivePrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.writer != nil {
		reply := "n"
		if p.answer {
			reply = "y"
		}
		fmt.Fprintf(p.writer, "%s [y/N]: %s (auto)\n", prompt, reply)
	}
	return p.answer, nil
}

// New picks a prompter for the process: assumeYes wins, then an explicit
// non-interactive request, then a non-terminal stdin.
func New(assumeYes, nonInteractive bool) port.Prompter {
	switch {
	case assumeYes:
		return NewAutoApprovePrompter(os.Stderr)
	case nonInteractive || !stdinIsTerminal():
		return NewNonInteractivePrompter(os.Stderr)
	default:
		return NewInteractivePrompter()
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
