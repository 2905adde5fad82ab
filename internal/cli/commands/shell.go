package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/nomenlabs/nomen/internal/checks"
	"github.com/nomenlabs/nomen/internal/cli/output"
	"github.com/nomenlabs/nomen/internal/interactive"
	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive catalog session",
		Long: `Open an interactive session against the catalog.

Commands:
  show <kind> <id>       Display one record
  search <kind> <term>   Find records by name or title
  lint <kind> <id>       Check one record and list its issues
  fix <kind> <id>        Check one record and edit it until clean
  dupes <kind>           Run the duplicate finders for one kind
  help                   Show this help
  quit                   Exit

Kinds: name, taxon, article, citation-group, collection,
classification-entry, location, period, region.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd)
		},
	}
}

// shellSession holds the state of one interactive session.
type shellSession struct {
	ctx   *CommandContext
	suite *checks.Suite
	rl    *readline.Instance
	r     *output.Renderer
}

func runShell(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	historyFile := filepath.Join(filepath.Dir(cmdCtx.Cfg.DatabasePath), ".nomen_history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nomen> ",
		HistoryFile:     historyFile,
		AutoComplete:    shellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer rl.Close()

	network := cmdCtx.Cfg.Network
	prompt := &readlinePrompter{rl: rl}
	s := &shellSession{
		ctx:   cmdCtx,
		suite: cmdCtx.newSuite(network, prompt),
		rl:    rl,
		r:     cmdCtx.Renderer,
	}

	s.r.Printf("nomen shell (database: %s)\n", cmdCtx.Cfg.DatabasePath)
	s.r.Println("Type 'help' for commands, 'quit' to exit")
	s.r.Println("")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := s.dispatch(line); err != nil {
			s.r.Error("%v", err)
		}
	}
}

func (s *shellSession) dispatch(line string) error {
	parts := strings.Fields(line)
	switch parts[0] {
	case "help":
		s.printHelp()
		return nil
	case "show":
		rec, err := s.lookup(parts[1:])
		if err != nil {
			return err
		}
		s.showRecord(rec)
		return nil
	case "search":
		return s.search(parts[1:])
	case "lint":
		rec, err := s.lookup(parts[1:])
		if err != nil {
			return err
		}
		return s.lintRecord(rec)
	case "fix":
		rec, err := s.lookup(parts[1:])
		if err != nil {
			return err
		}
		return s.fixRecord(rec)
	case "dupes":
		return s.dupes(parts[1:])
	}
	return fmt.Errorf("unknown command %q (type 'help')", parts[0])
}

// lookup parses "<kind> <id>" arguments and loads the record.
func (s *shellSession) lookup(args []string) (model.Record, error) {
	if len(args) != 2 {
		return nil, errors.New("usage: <command> <kind> <id>")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad id %q", args[1])
	}
	return s.ctx.Store.Get(kind, id)
}

func (s *shellSession) search(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: search <kind> <term>")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	term := strings.Join(args[1:], " ")

	records, err := s.ctx.Store.Search(kind, term, 25)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		s.r.Muted("no matches")
		return nil
	}
	for _, rec := range records {
		s.r.Printf("  %s\n", s.r.Styles().Entity.Render(rec.String()))
	}
	return nil
}

func (s *shellSession) showRecord(rec model.Record) {
	s.r.Header(rec.String())
	for _, f := range rec.FieldDefs() {
		if f.Empty {
			continue
		}
		switch f.Kind {
		case schema.ForeignKey:
			for _, ref := range f.Refs {
				if target, err := s.ctx.Store.Get(ref.Kind, ref.ID); err == nil {
					s.r.Printf("  %-26s %s\n", f.Name, target)
				} else {
					s.r.Printf("  %-26s %s #%d\n", f.Name, ref.Kind, ref.ID)
				}
			}
		default:
			s.r.Printf("  %-26s %s\n", f.Name, fieldValue(rec, f.Name))
		}
	}
}

func (s *shellSession) lintRecord(rec model.Record) error {
	lc := lint.NewContext(lint.Config{NetworkEnabled: s.ctx.Cfg.Network}, s.ctx.Logger, s.r.Writer())
	res, err := s.suite.LintRecord(rec, lc)
	if err != nil {
		return err
	}
	if len(res.Issues) == 0 {
		s.r.Success("clean")
		return nil
	}
	for _, issue := range res.Issues {
		s.r.Printf("  %s\n", issue)
	}
	return nil
}

// fixRecord re-lints and edits the record until it comes back clean or
// the user gives up.
func (s *shellSession) fixRecord(rec model.Record) error {
	lc := lint.NewContext(lint.Config{
		Autofix:        true,
		Interactive:    true,
		NetworkEnabled: s.ctx.Cfg.Network,
	}, s.ctx.Logger, s.r.Writer())

	for {
		res, err := s.suite.LintRecord(rec, lc)
		if err != nil {
			return err
		}
		if len(res.Issues) == 0 {
			s.r.Success("clean")
			return nil
		}
		for _, issue := range res.Issues {
			s.r.Printf("  %s\n", issue)
		}
		s.r.Muted("set <field> <value> | ignore <label> [comment] | save | skip")

		s.rl.SetPrompt("fix> ")
		line, err := s.rl.Readline()
		s.rl.SetPrompt("nomen> ")
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "skip":
			return nil
		case "save":
			if err := s.ctx.Store.Save(rec); err != nil {
				return err
			}
			s.r.Success("saved with %d open issues", len(res.Issues))
			return nil
		case "ignore":
			if len(parts) < 2 {
				s.r.Error("usage: ignore <label> [comment]")
				continue
			}
			comment := strings.Join(parts[2:], " ")
			ok, err := model.AddIgnoredLint(rec, parts[1], comment)
			if err != nil {
				s.r.Error("%v", err)
				continue
			}
			if !ok {
				s.r.Error("%s records cannot carry suppressions", rec.RecordKind())
				continue
			}
			if err := s.ctx.Store.Save(rec); err != nil {
				return err
			}
		case "set":
			if len(parts) < 3 {
				s.r.Error("usage: set <field> <value>")
				continue
			}
			value := strings.Join(parts[2:], " ")
			if err := setField(rec, parts[1], value); err != nil {
				s.r.Error("%v", err)
				continue
			}
			if err := s.ctx.Store.Save(rec); err != nil {
				return err
			}
		default:
			s.r.Error("unknown action %q", parts[0])
		}
	}
}

func (s *shellSession) dupes(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: dupes <kind>")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}

	var labels []string
	for _, info := range s.suite.Registries()[kind] {
		if info.DupeFinder {
			labels = append(labels, info.Label)
		}
	}
	if len(labels) == 0 {
		return fmt.Errorf("no duplicate finder for kind %s", kind)
	}

	lc := lint.NewContext(lint.Config{Only: labels}, s.ctx.Logger, nil)
	results, _, err := s.suite.LintAll(lintScope(kind), 0, lc)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		s.r.Success("no duplicates found")
		return nil
	}
	for _, res := range results {
		for _, issue := range res.Issues {
			s.r.Printf("  %s\n", issue)
		}
	}
	return nil
}

func (s *shellSession) printHelp() {
	s.r.Println(`Commands:
  show <kind> <id>       Display one record
  search <kind> <term>   Find records by name or title
  lint <kind> <id>       Check one record and list its issues
  fix <kind> <id>        Check one record and edit it until clean
  dupes <kind>           Run the duplicate finders for one kind
  help                   Show this help
  quit                   Exit`)
}

// parseKind accepts both singular and plural kind spellings.
func parseKind(s string) (schema.Kind, error) {
	aliases := map[string]schema.Kind{
		"name": schema.KindName, "names": schema.KindName,
		"taxon": schema.KindTaxon, "taxa": schema.KindTaxon,
		"article": schema.KindArticle, "articles": schema.KindArticle,
		"citation-group": schema.KindCitationGroup, "citation-groups": schema.KindCitationGroup,
		"collection": schema.KindCollection, "collections": schema.KindCollection,
		"classification-entry":   schema.KindClassificationEntry,
		"classification-entries": schema.KindClassificationEntry,
		"location": schema.KindLocation, "locations": schema.KindLocation,
		"period": schema.KindPeriod, "periods": schema.KindPeriod,
		"region": schema.KindRegion, "regions": schema.KindRegion,
	}
	if kind, ok := aliases[strings.ToLower(s)]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// lintScope maps a record kind to its batch lint scope.
func lintScope(kind schema.Kind) string {
	switch kind {
	case schema.KindName:
		return "names"
	case schema.KindTaxon:
		return "taxa"
	case schema.KindArticle:
		return "articles"
	case schema.KindCitationGroup:
		return "citation-groups"
	case schema.KindCollection:
		return "collections"
	case schema.KindClassificationEntry:
		return "classification-entries"
	case schema.KindLocation:
		return "locations"
	}
	return "all"
}

func shellCompleter() *readline.PrefixCompleter {
	kinds := func() []readline.PrefixCompleterInterface {
		var items []readline.PrefixCompleterInterface
		for _, k := range schema.Kinds() {
			items = append(items, readline.PcItem(string(k)))
		}
		return items
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("show", kinds()...),
		readline.PcItem("search", kinds()...),
		readline.PcItem("lint", kinds()...),
		readline.PcItem("fix", kinds()...),
		readline.PcItem("dupes", kinds()...),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// readlinePrompter adapts the shell's readline instance to the
// interactive.Prompter checks expect.
type readlinePrompter struct {
	rl *readline.Instance
}

func (p *readlinePrompter) read(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	defer p.rl.SetPrompt("nomen> ")
	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", interactive.ErrStop
	}
	return strings.TrimSpace(line), err
}

func (p *readlinePrompter) Confirm(prompt string, dflt bool) (bool, error) {
	hint := "y/N"
	if dflt {
		hint = "Y/n"
	}
	answer, err := p.read(fmt.Sprintf("%s [%s] ", prompt, hint))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return dflt, nil
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (p *readlinePrompter) Choose(prompt string, options []string) (int, error) {
	for i, opt := range options {
		fmt.Fprintf(p.rl.Stdout(), "  %d. %s\n", i+1, opt)
	}
	answer, err := p.read(prompt + " ")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return 0, fmt.Errorf("%q is not a valid choice", answer)
	}
	return n - 1, nil
}

func (p *readlinePrompter) Line(prompt, initial string) (string, error) {
	if initial != "" {
		p.rl.SetPrompt(prompt)
		defer p.rl.SetPrompt("nomen> ")
		line, err := p.rl.ReadlineWithDefault(initial)
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", interactive.ErrStop
		}
		return strings.TrimSpace(line), err
	}
	return p.read(prompt)
}
