package lint

import (
	"fmt"
	"io"
	"log/slog"
)

// Config is the immutable per-run configuration. It is carried by value
// into every check; mutating a copy inside a check has no effect on the
// rest of the run.
type Config struct {
	// Autofix applies fixes instead of only reporting them, and removes
	// suppressions that no longer match a failing check.
	Autofix bool

	// Interactive allows checks to prompt for decisions. The registry
	// clears this for checks whose label the record suppresses, so a
	// silenced check can never prompt.
	Interactive bool

	// Verbose surfaces informational narration from checks.
	Verbose bool

	// EnableAll includes checks registered as disabled.
	EnableAll bool

	// NetworkEnabled reports whether outbound lookups are available.
	// Checks registered with RequiresNetwork are skipped entirely when
	// false.
	NetworkEnabled bool

	// Only, when non-empty, restricts the run to the named check
	// labels. Suppressions for checks outside the filter are preserved.
	Only []string

	// Disabled lists check labels excluded from this run, typically
	// from the config file. Ignored when Only is set.
	Disabled []string
}

// Runs reports whether a check label participates in this run, per the
// Only and Disabled filters.
func (c Config) Runs(label string) bool {
	if len(c.Only) > 0 {
		for _, l := range c.Only {
			if l == label {
				return true
			}
		}
		return false
	}
	for _, l := range c.Disabled {
		if l == label {
			return false
		}
	}
	return true
}

// Context carries the per-run configuration plus the logging and
// narration sinks into each check invocation.
type Context struct {
	Config Config
	Logger *slog.Logger

	// Out receives fix narration lines. Nil discards them.
	Out io.Writer

	suppressed bool
}

// NewContext builds a Context. A nil logger discards log output.
func NewContext(cfg Config, logger *slog.Logger, out io.Writer) *Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Context{Config: cfg, Logger: logger, Out: out}
}

// Suppressed reports whether the currently running check is silenced by
// a suppression on the record under lint. Checks with irreversible fix
// side effects (merges) consult this before acting.
func (c *Context) Suppressed() bool {
	return c.suppressed
}

// Report writes one narration line, typically describing an applied fix.
func (c *Context) Report(format string, args ...any) {
	if c.Out == nil {
		return
	}
	fmt.Fprintf(c.Out, format+"\n", args...)
}

// child returns a copy of the context scoped to one check invocation.
func (c *Context) child(cfg Config, suppressed bool) *Context {
	return &Context{Config: cfg, Logger: c.Logger, Out: c.Out, suppressed: suppressed}
}
