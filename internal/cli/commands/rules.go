package commands

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nomenlabs/nomen/internal/cli/output"
	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Kind   string // Filter by record kind
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered checks",
		Long: `List every registered check per record kind.

Disabled checks run only under 'lint --enable-all'; network checks run
only under 'lint --network'. Duplicate finders group the whole
population instead of inspecting one record at a time.`,
		Example: `  # List all checks
  nomen rules

  # Checks for one kind
  nomen rules --kind name

  # Machine-readable
  nomen rules --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", "", "Filter by record kind")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

func runRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	suite := cmdCtx.newSuite(false, nil)
	registries := suite.Registries()

	kinds := make([]schema.Kind, 0, len(registries))
	for kind := range registries {
		if opts.Kind != "" && string(kind) != opts.Kind {
			continue
		}
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	if r.EffectiveMode() == output.ModeJSON {
		out := make(map[string][]lint.CheckInfo, len(kinds))
		for _, kind := range kinds {
			out[string(kind)] = registries[kind]
		}
		return r.JSON(out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"Kind", "Check", "Attributes"})
	for _, kind := range kinds {
		for _, info := range registries[kind] {
			t.AppendRow(table.Row{kind, info.Label, checkAttrs(info)})
		}
		t.AppendSeparator()
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}

func checkAttrs(info lint.CheckInfo) string {
	var attrs []string
	if info.Disabled {
		attrs = append(attrs, "disabled")
	}
	if info.RequiresNetwork {
		attrs = append(attrs, "network")
	}
	if info.DupeFinder {
		attrs = append(attrs, "dupe-finder")
	}
	if len(attrs) == 0 {
		return "-"
	}
	out := attrs[0]
	for _, a := range attrs[1:] {
		out += ", " + a
	}
	return out
}
