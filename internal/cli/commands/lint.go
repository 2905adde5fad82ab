package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nomenlabs/nomen/internal/checks"
	"github.com/nomenlabs/nomen/internal/cli/output"
	"github.com/nomenlabs/nomen/internal/interactive"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/internal/tui"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Fix         bool     // Apply fixes
	Interactive bool     // Allow checks to prompt
	Network     bool     // Allow outbound lookups
	EnableAll   bool     // Include checks registered as disabled
	Checks      []string // Run only these check labels
	Limit       int      // Cap records per scope
	Format      string   // Output format override
	Review      bool     // Walk issues in the review TUI
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [scope]",
		Short: "Run consistency checks over the catalog",
		Long: `Check catalog records for consistency problems.

The scope selects which records to check: names, taxa, articles,
citation-groups, collections, classification-entries, locations, or
all (the default). Every run is recorded in the database with its
per-record issues.

With --fix, checks apply safe corrections and the run removes
suppression tags that no longer match a failing check. With
--interactive, checks may ask before risky fixes; Ctrl-C stops the
batch after the current record.`,
		Example: `  # Check everything
  nomen lint

  # Check names only, applying safe fixes
  nomen lint names --fix

  # Run one check across all articles
  nomen lint articles --check doi_format

  # Include checks that need the network
  nomen lint --network

  # Walk the issues interactively afterwards
  nomen lint names --review`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := "all"
			if len(args) > 0 {
				scope = args[0]
			}
			return runLint(cmd, scope, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Apply safe fixes")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Allow checks to prompt for decisions")
	cmd.Flags().BoolVar(&opts.Network, "network", false, "Allow checks that query BHL and ZooBank")
	cmd.Flags().BoolVar(&opts.EnableAll, "enable-all", false, "Include checks registered as disabled")
	cmd.Flags().StringSliceVar(&opts.Checks, "check", nil, "Run only the named checks")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Check at most this many records per kind")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.Review, "review", false, "Review issues in a list UI afterwards")

	return cmd
}

func runLint(cmd *cobra.Command, scope string, opts *LintOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	network := opts.Network || cmdCtx.Cfg.Network
	var prompt interactive.Prompter
	if opts.Interactive {
		term, err := interactive.NewTerminal()
		if err != nil {
			return fmt.Errorf("failed to open terminal prompter: %w", err)
		}
		defer term.Close()
		prompt = term
	}
	suite := cmdCtx.newSuite(network, prompt)

	cfg := lint.Config{
		Autofix:        opts.Fix,
		Interactive:    opts.Interactive,
		Verbose:        cmdCtx.Cfg.Verbose,
		EnableAll:      opts.EnableAll,
		NetworkEnabled: network,
		Only:           opts.Checks,
		Disabled:       cmdCtx.Cfg.Lint.Disabled,
	}
	lc := lint.NewContext(cfg, cmdCtx.Logger, cmd.OutOrStdout())

	results, run, err := suite.LintAll(scope, opts.Limit, lc)
	if err != nil {
		return err
	}

	if opts.Review && len(results) > 0 {
		if err := tui.Review(cmdCtx.Store, results); err != nil {
			return err
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := lintJSON(r, scope, run, results); err != nil {
			return err
		}
	} else {
		lintSummary(r, run)
	}

	if run.Issues > 0 {
		return fmt.Errorf("%d lint issues found", run.Issues)
	}
	return nil
}

// lintSummary prints the run's counters as a table.
func lintSummary(r *output.Renderer, run *store.LintRun) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"Scope", "Checked", "With Issues", "Issues", "Fixed"})
	t.AppendRow(table.Row{run.Scope, run.Checked, run.WithIssues, run.Issues, run.Fixed})
	t.SetStyle(table.StyleLight)
	t.Render()

	if run.Issues == 0 {
		r.Success("catalog is clean")
	} else {
		r.Warning("%d issues across %d records", run.Issues, run.WithIssues)
	}
}

// lintIssueJSON is one issue line in JSON output.
type lintIssueJSON struct {
	Kind   string   `json:"kind"`
	ID     int64    `json:"id"`
	Record string   `json:"record"`
	Issues []string `json:"issues"`
}

// lintRunJSON is the JSON output of a lint run.
type lintRunJSON struct {
	Run     string          `json:"run"`
	Scope   string          `json:"scope"`
	Checked int             `json:"checked"`
	Issues  int             `json:"issues"`
	Fixed   int             `json:"fixed"`
	Records []lintIssueJSON `json:"records"`
}

func lintJSON(r *output.Renderer, scope string, run *store.LintRun, results []checks.RecordResult) error {
	out := lintRunJSON{
		Run:     run.ID,
		Scope:   scope,
		Checked: run.Checked,
		Issues:  run.Issues,
		Fixed:   run.Fixed,
	}
	for _, res := range results {
		out.Records = append(out.Records, lintIssueJSON{
			Kind:   string(res.Record.RecordKind()),
			ID:     res.Record.GetID(),
			Record: res.Record.String(),
			Issues: res.Issues,
		})
	}
	return r.JSON(out)
}
