// Package interactive wraps terminal prompting for the lint fix loop.
// All prompts run through one Prompter so batch code stays testable and
// a Ctrl-C anywhere unwinds the whole batch through ErrStop.
package interactive

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrStop reports that the user interrupted the session. Batch loops
// treat it as a request to stop cleanly, not as a failure.
var ErrStop = errors.New("stopped by user")

// Prompter asks the user questions during a fix session.
type Prompter interface {
	// Confirm asks a yes/no question. Empty input takes the default.
	Confirm(prompt string, dflt bool) (bool, error)

	// Choose presents numbered options and returns the chosen index.
	Choose(prompt string, options []string) (int, error)

	// Line reads one free-form line, pre-filled with initial.
	Line(prompt, initial string) (string, error)
}

// Terminal is the readline-backed Prompter.
type Terminal struct {
	rl *readline.Instance
}

// NewTerminal opens a prompter on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return &Terminal{rl: rl}, nil
}

// Close releases the terminal.
func (t *Terminal) Close() error {
	return t.rl.Close()
}

func (t *Terminal) read(prompt, initial string) (string, error) {
	t.rl.SetPrompt(prompt)
	var line string
	var err error
	if initial != "" {
		line, err = t.rl.ReadlineWithDefault(initial)
	} else {
		line, err = t.rl.Readline()
	}
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", ErrStop
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(prompt string, dflt bool) (bool, error) {
	hint := "y/N"
	if dflt {
		hint = "Y/n"
	}
	for {
		line, err := t.read(fmt.Sprintf("%s [%s] ", prompt, hint), "")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return dflt, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// Choose presents numbered options and returns the chosen index.
func (t *Terminal) Choose(prompt string, options []string) (int, error) {
	for i, opt := range options {
		fmt.Fprintf(t.rl.Stdout(), "  %d) %s\n", i+1, opt)
	}
	for {
		line, err := t.read(prompt+" ", "")
		if err != nil {
			return 0, err
		}
		var n int
		if _, err := fmt.Sscanf(line, "%d", &n); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(t.rl.Stdout(), "enter a number between 1 and %d\n", len(options))
	}
}

// Line reads one free-form line, pre-filled with initial.
func (t *Terminal) Line(prompt, initial string) (string, error) {
	return t.read(prompt+" ", initial)
}

// Scripted is a canned Prompter for tests and non-interactive fix runs.
// Answers are consumed in order; running out returns ErrStop.
type Scripted struct {
	Answers []string
	next    int
}

func (s *Scripted) pop() (string, error) {
	if s.next >= len(s.Answers) {
		return "", ErrStop
	}
	a := s.Answers[s.next]
	s.next++
	return a, nil
}

// Confirm consumes one scripted answer ("y"/"n"/"" for the default).
func (s *Scripted) Confirm(prompt string, dflt bool) (bool, error) {
	a, err := s.pop()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(a) {
	case "":
		return dflt, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Choose consumes one scripted answer as a 1-based index.
func (s *Scripted) Choose(prompt string, options []string) (int, error) {
	a, err := s.pop()
	if err != nil {
		return 0, err
	}
	var n int
	if _, err := fmt.Sscanf(a, "%d", &n); err != nil || n < 1 || n > len(options) {
		return 0, fmt.Errorf("scripted answer %q is not a valid choice", a)
	}
	return n - 1, nil
}

// Line consumes one scripted answer.
func (s *Scripted) Line(prompt, initial string) (string, error) {
	return s.pop()
}
