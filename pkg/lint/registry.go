package lint

import (
	"fmt"
	"runtime/debug"
)

// Check inspects one record and returns issue strings. Issues describe
// the problem only; the registry prefixes the record's string form and
// appends the check's label. A returned error (or a panic) becomes a
// synthetic issue under the check's label and the run continues.
//
// Checks that mutate the record under Autofix must mark it dirty; the
// driver commits dirty records after the whole run, never mid-check.
type Check[E Object] func(e E, lc *Context) ([]string, error)

type checkDef[E Object] struct {
	label           string
	fn              Check[E]
	disabled        bool
	requiresNetwork bool
	dupeFinder      bool
}

// Option configures one registered check.
type Option func(*checkOpts)

type checkOpts struct {
	disabled        bool
	requiresNetwork bool
}

// Disabled registers the check excluded from default runs. It still
// runs under Config.EnableAll, and suppressions for its label are
// preserved rather than reconciled.
func Disabled() Option {
	return func(o *checkOpts) { o.disabled = true }
}

// RequiresNetwork marks the check as needing outbound lookups. It is
// skipped when Config.NetworkEnabled is false, and a suppression for
// its label counts as still in use on such runs.
func RequiresNetwork() Option {
	return func(o *checkOpts) { o.requiresNetwork = true }
}

// Registry holds the named, ordered checks for one record type. Build
// one per type at startup and pass it by reference; Register is not
// safe for concurrent use.
type Registry[E Object] struct {
	kind     string
	checks   []checkDef[E]
	byLabel  map[string]int
	reserved map[string]bool
}

// New creates an empty registry for the named record kind.
func New[E Object](kind string) *Registry[E] {
	return &Registry[E]{
		kind:     kind,
		byLabel:  make(map[string]int),
		reserved: make(map[string]bool),
	}
}

// Reserve declares labels owned by passes that run outside this
// registry. Suppressions for them are honored elsewhere, so
// reconciliation leaves them untouched.
func (r *Registry[E]) Reserve(labels ...string) {
	for _, label := range labels {
		r.reserved[label] = true
	}
}

// Kind returns the record kind this registry lints.
func (r *Registry[E]) Kind() string {
	return r.kind
}

// Register adds a check under a unique label. Checks run in
// registration order. An empty or duplicate label panics: labels are
// declared once in the catalog packages and a collision is a
// programming error, not a runtime condition.
func (r *Registry[E]) Register(label string, fn Check[E], opts ...Option) {
	r.register(label, fn, false, opts)
}

func (r *Registry[E]) register(label string, fn Check[E], dupeFinder bool, opts []Option) {
	if label == "" {
		panic("lint: empty check label")
	}
	if _, ok := r.byLabel[label]; ok {
		panic(fmt.Sprintf("lint: duplicate check label %q for kind %q", label, r.kind))
	}
	var o checkOpts
	for _, opt := range opts {
		opt(&o)
	}
	r.byLabel[label] = len(r.checks)
	r.checks = append(r.checks, checkDef[E]{
		label:           label,
		fn:              fn,
		disabled:        o.disabled,
		requiresNetwork: o.requiresNetwork,
		dupeFinder:      dupeFinder,
	})
}

// CheckInfo describes one registered check for listing surfaces.
type CheckInfo struct {
	Label           string `json:"label"`
	Disabled        bool   `json:"disabled,omitempty"`
	RequiresNetwork bool   `json:"requires_network,omitempty"`
	DupeFinder      bool   `json:"dupe_finder,omitempty"`
}

// Checks returns metadata for every registered check in run order.
func (r *Registry[E]) Checks() []CheckInfo {
	infos := make([]CheckInfo, len(r.checks))
	for i, c := range r.checks {
		infos[i] = CheckInfo{
			Label:           c.label,
			Disabled:        c.disabled,
			RequiresNetwork: c.requiresNetwork,
			DupeFinder:      c.dupeFinder,
		}
	}
	return infos
}

// Result summarizes one registry run over one record.
type Result struct {
	// Issues are the surfaced issue lines, already prefixed with the
	// record and suffixed with the check label.
	Issues []string

	// UsedIgnores lists suppression labels that silenced at least one
	// issue this run (or belong to a network check that could not run).
	UsedIgnores []string

	// UnusedIgnores lists suppression labels no enabled check justified
	// this run. Without Autofix they also appear in Issues; with
	// Autofix they have been removed from the record.
	UnusedIgnores []string

	// Checked counts the checks that actually executed.
	Checked int
}

// Run executes every enabled check against the record, in registration
// order, and reconciles the record's suppressions afterwards.
//
// A suppressed check still executes, with Interactive forced off, but
// its issues are swallowed and only mark the suppression as used.
// Suppression labels that no check justified are removed under Autofix
// (narrated, and the record marked dirty) or reported as an issue
// otherwise. Labels of disabled checks are preserved either way, as are
// labels of network checks on runs without network access and reserved
// labels.
func (r *Registry[E]) Run(e E, lc *Context) Result {
	var res Result

	ignores := e.IgnoredLints()
	suppressed := make(map[string]bool, len(ignores))
	for _, ig := range ignores {
		suppressed[ig.Label] = true
	}
	used := make(map[string]bool)
	ran := make(map[string]bool)

	for _, c := range r.checks {
		if c.disabled && !lc.Config.EnableAll {
			continue
		}
		if !lc.Config.Runs(c.label) {
			continue
		}
		isSuppressed := suppressed[c.label]
		if c.requiresNetwork && !lc.Config.NetworkEnabled {
			if isSuppressed {
				used[c.label] = true
			}
			continue
		}

		cfg := lc.Config
		if isSuppressed {
			cfg.Interactive = false
		}
		texts := r.invoke(c, e, lc.child(cfg, isSuppressed))
		res.Checked++
		ran[c.label] = true

		if len(texts) == 0 {
			continue
		}
		if isSuppressed {
			used[c.label] = true
			continue
		}
		for _, text := range texts {
			res.Issues = append(res.Issues, fmt.Sprintf("%s: %s [%s]", e, text, c.label))
		}
	}

	for _, ig := range ignores {
		if r.reserved[ig.Label] {
			continue
		}
		if used[ig.Label] {
			res.UsedIgnores = append(res.UsedIgnores, ig.Label)
			continue
		}
		// a registered check that did not run this pass cannot vouch
		// either way, so its suppression is preserved
		if i, ok := r.byLabel[ig.Label]; ok && !ran[r.checks[i].label] {
			continue
		}
		res.UnusedIgnores = append(res.UnusedIgnores, ig.Label)
		if lc.Config.Autofix {
			e.RemoveIgnoredLint(ig.Label)
			lc.Report("%s: removing unused ignore [%s]", e, ig.Label)
		} else {
			res.Issues = append(res.Issues, fmt.Sprintf("%s: unused ignore tag [%s]", e, ig.Label))
		}
	}
	return res
}

// invoke runs one check, converting an error return or a panic into a
// synthetic issue so one broken check never halts the batch.
func (r *Registry[E]) invoke(c checkDef[E], e E, lc *Context) (texts []string) {
	defer func() {
		if p := recover(); p != nil {
			lc.Logger.Error("check panicked",
				"kind", r.kind,
				"check", c.label,
				"id", e.GetID(),
				"panic", p,
				"stack", string(debug.Stack()),
			)
			texts = []string{fmt.Sprintf("check panicked: %v", p)}
		}
	}()

	texts, err := c.fn(e, lc)
	if err != nil {
		lc.Logger.Error("check failed",
			"kind", r.kind,
			"check", c.label,
			"id", e.GetID(),
			"error", err,
		)
		return append(texts, fmt.Sprintf("check failed: %v", err))
	}
	return texts
}
