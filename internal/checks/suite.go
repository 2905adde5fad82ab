// Package checks wires the rule catalog to the store and drives batch
// lint runs. One Suite holds the per-kind registries; construction
// registers every check, so a duplicate label fails at startup.
package checks

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nomenlabs/nomen/internal/checks/articlecheck"
	"github.com/nomenlabs/nomen/internal/checks/cecheck"
	"github.com/nomenlabs/nomen/internal/checks/cgcheck"
	"github.com/nomenlabs/nomen/internal/checks/collectioncheck"
	"github.com/nomenlabs/nomen/internal/checks/namecheck"
	"github.com/nomenlabs/nomen/internal/checks/taxoncheck"
	"github.com/nomenlabs/nomen/internal/interactive"
	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/pkg/bhl"
	"github.com/nomenlabs/nomen/pkg/lint"
	"github.com/nomenlabs/nomen/pkg/zoobank"
)

// progressEvery is how many records pass between progress lines in a
// batch run.
const progressEvery = 250

// Labels of the structural passes the suite runs outside the per-kind
// registries.
const (
	labelRefs           = "refs"
	labelRequiredFields = "required_fields"
)

var suitePassLabels = []string{labelRefs, labelRequiredFields}

// suitePassIgnores returns the record's suppressions for the suite's
// own passes.
func suitePassIgnores(rec model.Record) map[string]bool {
	m := make(map[string]bool, 2)
	for _, ig := range rec.IgnoredLints() {
		switch ig.Label {
		case labelRefs, labelRequiredFields:
			m[ig.Label] = true
		}
	}
	return m
}

// Suite owns the rule catalog for every record kind.
type Suite struct {
	store  *store.Store
	logger *slog.Logger

	names          *lint.Registry[*model.Name]
	taxa           *lint.Registry[*model.Taxon]
	articles       *lint.Registry[*model.Article]
	citationGroups *lint.Registry[*model.CitationGroup]
	collections    *lint.Registry[*model.Collection]
	entries        *lint.Registry[*model.ClassificationEntry]

	stop *stopTracker
}

// Deps carries the external services the catalog packages draw on.
type Deps struct {
	Store   *store.Store
	BHL     *bhl.Client
	ZooBank *zoobank.Client
	Prompt  interactive.Prompter
	Logger  *slog.Logger
}

// NewSuite builds the full rule catalog.
func NewSuite(deps Deps) *Suite {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	stop := &stopTracker{inner: deps.Prompt}

	s := &Suite{
		store:  deps.Store,
		logger: deps.Logger,
		stop:   stop,
	}
	s.names = namecheck.New(namecheck.Deps{
		Store:  deps.Store,
		BHL:    deps.BHL,
		Prompt: stop,
	})
	s.taxa = taxoncheck.New(deps.Store)
	s.articles = articlecheck.New(articlecheck.Deps{
		Store:   deps.Store,
		BHL:     deps.BHL,
		ZooBank: deps.ZooBank,
	})
	s.citationGroups = cgcheck.New(deps.Store)
	s.collections = collectioncheck.New(deps.Store)
	s.entries = cecheck.New(deps.Store)

	s.names.Reserve(suitePassLabels...)
	s.taxa.Reserve(suitePassLabels...)
	s.articles.Reserve(suitePassLabels...)
	s.citationGroups.Reserve(suitePassLabels...)
	s.collections.Reserve(suitePassLabels...)
	s.entries.Reserve(suitePassLabels...)
	return s
}

// Registries returns check metadata per kind, for the rules listing.
func (s *Suite) Registries() map[schema.Kind][]lint.CheckInfo {
	return map[schema.Kind][]lint.CheckInfo{
		schema.KindName:                s.names.Checks(),
		schema.KindTaxon:               s.taxa.Checks(),
		schema.KindArticle:             s.articles.Checks(),
		schema.KindCitationGroup:       s.citationGroups.Checks(),
		schema.KindCollection:          s.collections.Checks(),
		schema.KindClassificationEntry: s.entries.Checks(),
	}
}

// RecordResult pairs one linted record with its surfaced issues.
type RecordResult struct {
	Record model.Record
	Issues []string

	// Fixed reports that checks mutated the record this pass.
	Fixed bool
}

// LintRecord runs the full per-record pipeline: the render gate, the
// outbound-reference walk, and, for valid records, required fields plus
// the kind's registry. Invalid records get only the structural passes.
// Under Autofix a record left dirty by its checks is saved afterwards.
//
// Suppressions for the suite's own pass labels are honored here with
// the same bookkeeping the registry applies to check labels; the
// registries reserve these labels and never reconcile them.
func (s *Suite) LintRecord(rec model.Record, lc *lint.Context) (RecordResult, error) {
	res := RecordResult{Record: rec}

	if err := rec.CheckRender(); err != nil {
		res.Issues = []string{fmt.Sprintf("%s: cannot render: %v [render]", rec, err)}
		return res, nil
	}

	suppressed := suitePassIgnores(rec)
	used := make(map[string]bool)
	ran := make(map[string]bool)
	pass := func(label string, fn func() []string) {
		if !lc.Config.Runs(label) {
			return
		}
		ran[label] = true
		issues := fn()
		if len(issues) == 0 {
			return
		}
		if suppressed[label] {
			used[label] = true
			return
		}
		res.Issues = append(res.Issues, issues...)
	}

	pass(labelRefs, func() []string { return s.checkReferences(rec, lc) })

	if !rec.IsInvalid() {
		pass(labelRequiredFields, func() []string { return requiredFieldIssues(rec) })
		res.Issues = append(res.Issues, s.runRegistry(rec, lc)...)
	}

	for _, label := range suitePassLabels {
		// a pass that did not run cannot vouch for its suppression
		if !suppressed[label] || used[label] || !ran[label] {
			continue
		}
		if lc.Config.Autofix {
			rec.RemoveIgnoredLint(label)
			lc.Report("%s: removing unused ignore [%s]", rec, label)
		} else {
			res.Issues = append(res.Issues, fmt.Sprintf("%s: unused ignore tag [%s]", rec, label))
		}
	}

	if rec.Dirty() {
		res.Fixed = true
		if lc.Config.Autofix {
			if err := s.store.Save(rec); err != nil {
				return res, fmt.Errorf("failed to save fixed record: %w", err)
			}
		}
	}
	return res, nil
}

// runRegistry dispatches to the registry for the record's concrete
// type. Kinds without a registry (locations, periods, regions) only get
// the structural passes.
func (s *Suite) runRegistry(rec model.Record, lc *lint.Context) []string {
	switch r := rec.(type) {
	case *model.Name:
		return s.names.Run(r, lc).Issues
	case *model.Taxon:
		return s.taxa.Run(r, lc).Issues
	case *model.Article:
		return s.articles.Run(r, lc).Issues
	case *model.CitationGroup:
		return s.citationGroups.Run(r, lc).Issues
	case *model.Collection:
		return s.collections.Run(r, lc).Issues
	case *model.ClassificationEntry:
		return s.entries.Run(r, lc).Issues
	}
	return nil
}

// requiredFieldIssues reports the record's empty required fields.
func requiredFieldIssues(rec model.Record) []string {
	required := rec.RequiredFields()
	if len(required) == 0 {
		return nil
	}
	byName := make(map[string]schema.Field)
	for _, f := range rec.FieldDefs() {
		byName[f.Name] = f
	}
	var issues []string
	for _, name := range required {
		f, ok := byName[name]
		if !ok || f.Empty {
			issues = append(issues,
				fmt.Sprintf("%s: missing required field %q [%s]", rec, name, labelRequiredFields))
		}
	}
	return issues
}

// LintAll lints every record a scope names, in id order, with periodic
// progress narration. A stop request from the interactive layer ends
// the loop cleanly after the current record. The run is persisted.
func (s *Suite) LintAll(scope string, limit int, lc *lint.Context) ([]RecordResult, *store.LintRun, error) {
	records, err := s.loadScope(scope, limit)
	if err != nil {
		return nil, nil, err
	}

	run, err := s.store.CreateLintRun(scope)
	if err != nil {
		return nil, nil, err
	}

	var results []RecordResult
	for i, rec := range records {
		res, err := s.LintRecord(rec, lc)
		if err != nil {
			return nil, nil, err
		}
		run.Checked++
		if res.Fixed {
			run.Fixed++
		}
		if len(res.Issues) > 0 {
			run.WithIssues++
			run.Issues += len(res.Issues)
			results = append(results, res)
			for _, issue := range res.Issues {
				lc.Report("%s", issue)
				if err := s.store.RecordLintIssue(run.ID, rec.RecordKind(), rec.GetID(), issue); err != nil {
					return nil, nil, err
				}
			}
		}
		if (i+1)%progressEvery == 0 {
			lc.Report("... checked %d/%d records", i+1, len(records))
		}
		if s.stop.stopped {
			lc.Report("stopping at user request after %d records", i+1)
			break
		}
	}

	if err := s.store.FinishLintRun(run); err != nil {
		return nil, nil, err
	}
	return results, run, nil
}

// loadScope fetches the record population a scope names.
func (s *Suite) loadScope(scope string, limit int) ([]model.Record, error) {
	var records []model.Record
	add := func(err error, batch ...model.Record) error {
		if err != nil {
			return err
		}
		records = append(records, batch...)
		return nil
	}

	want := func(k string) bool { return scope == "all" || scope == k }
	switch {
	case scope == "all", scope == "names", scope == "taxa", scope == "articles",
		scope == "citation-groups", scope == "collections",
		scope == "classification-entries", scope == "locations":
	default:
		return nil, fmt.Errorf("unknown lint scope %q", scope)
	}

	if want("names") {
		names, err := s.store.ListNames(false, limit)
		if err := add(err, asRecords(names)...); err != nil {
			return nil, err
		}
	}
	if want("taxa") {
		taxa, err := s.store.ListTaxa(limit)
		if err := add(err, asRecords(taxa)...); err != nil {
			return nil, err
		}
	}
	if want("articles") {
		articles, err := s.store.ListArticles(false, limit)
		if err := add(err, asRecords(articles)...); err != nil {
			return nil, err
		}
	}
	if want("citation-groups") {
		groups, err := s.store.ListCitationGroups(false, limit)
		if err := add(err, asRecords(groups)...); err != nil {
			return nil, err
		}
	}
	if want("collections") {
		colls, err := s.store.ListCollections(limit)
		if err := add(err, asRecords(colls)...); err != nil {
			return nil, err
		}
	}
	if want("classification-entries") {
		entries, err := s.store.ListClassificationEntries(limit)
		if err := add(err, asRecords(entries)...); err != nil {
			return nil, err
		}
	}
	if want("locations") {
		locs, err := s.store.ListLocations(false, limit)
		if err := add(err, asRecords(locs)...); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func asRecords[T model.Record](in []T) []model.Record {
	out := make([]model.Record, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}

// stopTracker wraps the prompter so a user interrupt anywhere surfaces
// as a stop request the batch loop can observe.
type stopTracker struct {
	inner   interactive.Prompter
	stopped bool
}

func (s *stopTracker) note(err error) {
	if errors.Is(err, interactive.ErrStop) {
		s.stopped = true
	}
}

func (s *stopTracker) Confirm(prompt string, dflt bool) (bool, error) {
	if s.inner == nil || s.stopped {
		return false, interactive.ErrStop
	}
	ok, err := s.inner.Confirm(prompt, dflt)
	s.note(err)
	return ok, err
}

func (s *stopTracker) Choose(prompt string, options []string) (int, error) {
	if s.inner == nil || s.stopped {
		return 0, interactive.ErrStop
	}
	idx, err := s.inner.Choose(prompt, options)
	s.note(err)
	return idx, err
}

func (s *stopTracker) Line(prompt, initial string) (string, error) {
	if s.inner == nil || s.stopped {
		return "", interactive.ErrStop
	}
	line, err := s.inner.Line(prompt, initial)
	s.note(err)
	return line, err
}
