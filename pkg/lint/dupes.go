package lint

import "fmt"

// Fixer merges or otherwise resolves one duplicate group. It receives
// the shared key and the full group, canonical member included, and is
// expected to narrate what it did via the context.
type Fixer[E Object, K comparable] func(key K, group []E, lc *Context) error

// RegisterDupeFinder registers a check that flags records sharing a
// derived key. The population is fetched from query once, lazily, and
// the grouping cached for the life of the registry; each run
// re-derives the key of every cached group member, so records merged
// or edited since the snapshot drop out. The lowest-id member of a
// group is canonical and never flagged; the others report it as their
// duplicate target. When a fixer is supplied, Autofix is on, and the
// flagged record does not suppress this label, the fixer runs instead
// of reporting.
//
// key returns false to exclude a record from grouping. The cache is
// not synchronized; batch runs are single-threaded.
func RegisterDupeFinder[E Object, K comparable](
	r *Registry[E],
	label string,
	query func() ([]E, error),
	key func(E) (K, bool),
	fixer Fixer[E, K],
	opts ...Option,
) {
	var (
		groups  map[K][]E
		loadErr error
		loaded  bool
	)
	load := func() (map[K][]E, error) {
		if loaded {
			return groups, loadErr
		}
		loaded = true
		all, err := query()
		if err != nil {
			loadErr = fmt.Errorf("failed to load duplicate population: %w", err)
			return nil, loadErr
		}
		groups = make(map[K][]E)
		for _, m := range all {
			if k, ok := key(m); ok {
				groups[k] = append(groups[k], m)
			}
		}
		return groups, nil
	}

	fn := func(e E, lc *Context) ([]string, error) {
		k, ok := key(e)
		if !ok {
			return nil, nil
		}
		all, err := load()
		if err != nil {
			return nil, err
		}

		var live []E
		seen := false
		for _, m := range all[k] {
			mk, ok := key(m)
			if !ok || mk != k {
				continue
			}
			if m.GetID() == e.GetID() {
				seen = true
			}
			live = append(live, m)
		}
		if !seen {
			live = append(live, e)
		}
		if len(live) < 2 {
			return nil, nil
		}

		canonical := live[0]
		for _, m := range live[1:] {
			if m.GetID() < canonical.GetID() {
				canonical = m
			}
		}
		if e.GetID() == canonical.GetID() {
			return nil, nil
		}

		if fixer != nil && lc.Config.Autofix && !lc.Suppressed() {
			if err := fixer(k, live, lc); err != nil {
				return nil, fmt.Errorf("duplicate fixer: %w", err)
			}
			return nil, nil
		}
		return []string{fmt.Sprintf("possible duplicate of %s", canonical)}, nil
	}

	r.register(label, fn, true, opts)
}
