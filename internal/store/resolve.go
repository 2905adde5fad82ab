package store

import (
	"errors"
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
)

// maxRedirectHops caps redirect chains so a cycle in the data cannot
// hang resolution.
const maxRedirectHops = 10

// ErrRedirectLoop is returned when a redirect chain exceeds
// maxRedirectHops.
var ErrRedirectLoop = errors.New("redirect chain too long")

// Resolution is the outcome of following a reference through any
// redirect records to its final target.
type Resolution struct {
	// Target is the final reference after following redirects. When
	// Missing is set it names the reference that did not resolve.
	Target schema.Ref

	// Record is the final record, nil when Missing.
	Record model.Record

	// Missing reports that some link in the chain pointed at a row
	// that does not exist.
	Missing bool

	// Redirected reports that at least one redirect hop was followed.
	// Repointing the original reference at Target is then safe.
	Redirected bool
}

// Invalid reports whether the resolved record is still unusable after
// following redirects (removed, deleted, or spurious).
func (r Resolution) Invalid() bool {
	return !r.Missing && r.Record != nil && r.Record.IsInvalid()
}

// Resolve follows ref through redirect records to its final target.
// Articles redirect through their parent and citation groups through
// their target; other kinds never redirect.
func (s *Store) Resolve(ref schema.Ref) (Resolution, error) {
	res := Resolution{Target: ref}
	for hops := 0; ; hops++ {
		if hops > maxRedirectHops {
			return res, fmt.Errorf("%w resolving %s/%d", ErrRedirectLoop, ref.Kind, ref.ID)
		}
		rec, err := s.Get(res.Target.Kind, res.Target.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				res.Missing = true
				res.Record = nil
				return res, nil
			}
			return res, err
		}
		res.Record = rec

		next, ok := redirectTarget(rec)
		if !ok {
			return res, nil
		}
		res.Redirected = true
		res.Target = next
	}
}

// redirectTarget returns the next hop for a redirect record.
func redirectTarget(rec model.Record) (schema.Ref, bool) {
	switch r := rec.(type) {
	case *model.Article:
		if r.Kind == model.ArticleRedirect && r.ParentID != 0 {
			return schema.Ref{Kind: schema.KindArticle, ID: r.ParentID}, true
		}
	case *model.CitationGroup:
		if r.Type == model.CGRedirect && r.TargetID != 0 {
			return schema.Ref{Kind: schema.KindCitationGroup, ID: r.TargetID}, true
		}
	}
	return schema.Ref{}, false
}
