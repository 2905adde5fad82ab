package namecheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nomenlabs/nomen/internal/interactive"
	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// Homonym matching thresholds. These are tuned curatorial judgment
// calls; changing them silently changes which names get flagged. A
// distance-one match flags on its own; a distance-two match only
// reaches the threshold with a corroborating shared authority.
const (
	maxHomonymDistance = 2

	scoreExactRoot     = 10
	scoreNormalized    = 8
	scoreDistanceOne   = 6
	scoreDistanceTwo   = 4
	scoreSameAuthority = 2
	homonymThreshold   = 6
)

// genderSuffixes fold Latin gender endings so "barbatus", "barbata",
// and "barbatum" compare equal.
var genderSuffixes = []struct{ from, to string }{
	{"um", "us"},
	{"a", "us"},
	{"ii", "i"},
	{"iae", "ia"},
	{"ae", "a"},
}

// normalizeRoot folds a root name for homonymy comparison.
func normalizeRoot(root string) string {
	root = strings.ToLower(root)
	for _, s := range genderSuffixes {
		if strings.HasSuffix(root, s.from) {
			return strings.TrimSuffix(root, s.from) + s.to
		}
	}
	return root
}

// candidate is one earlier name scored against the name under lint.
type candidate struct {
	name  *model.Name
	score int
}

// score rates how likely an earlier name is a conflicting claim on the
// same spelling.
func score(n, earlier *model.Name) int {
	total := 0
	switch {
	case earlier.RootName == n.RootName:
		total += scoreExactRoot
	case normalizeRoot(earlier.RootName) == normalizeRoot(n.RootName):
		total += scoreNormalized
	default:
		d := editDistance(normalizeRoot(earlier.RootName), normalizeRoot(n.RootName))
		if d > maxHomonymDistance {
			return 0
		}
		if d == 1 {
			total += scoreDistanceOne
		} else {
			total += scoreDistanceTwo
		}
	}
	if earlier.Authority != "" && earlier.Authority == n.Authority {
		total += scoreSameAuthority
	}
	return total
}

// checkHomonymy searches earlier names for conflicting claims on this
// name's spelling: the same genus for species-group names, the whole
// group for genus-group names. Interactive autofix offers to record
// the relationship; otherwise candidates are reported.
func (d Deps) checkHomonymy(n *model.Name, lc *lint.Context) ([]string, error) {
	if n.NomenclatureStatus != model.NSAvailable || n.RootName == "" {
		return nil, nil
	}

	var population []*model.Name
	var err error
	switch n.Group {
	case model.GroupSpecies:
		genus := genusOf(n)
		if genus == "" {
			return nil, nil
		}
		population, err = d.Store.NamesByOriginalGenus(genus)
	case model.GroupGenus:
		population, err = d.Store.NamesByRootName(model.GroupGenus, n.RootName)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	for _, other := range population {
		if other.ID >= n.ID || other.NomenclatureStatus != model.NSAvailable {
			continue
		}
		if s := score(n, other); s >= homonymThreshold {
			candidates = append(candidates, candidate{name: other, score: s})
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var issues []string
	for _, c := range candidates {
		if lc.Config.Interactive && lc.Config.Autofix {
			handled, err := d.offerPreoccupation(n, c.name, lc)
			if err != nil {
				return issues, err
			}
			if handled {
				continue
			}
		}
		issues = append(issues, fmt.Sprintf("possibly preoccupied by %s", c.name))
	}
	return issues, nil
}

// offerPreoccupation asks whether to record the homonymy. Accepting
// sets the status and the PreoccupiedBy tag. A declined prompt leaves
// the issue to be reported; a stop request propagates.
func (d Deps) offerPreoccupation(n, earlier *model.Name, lc *lint.Context) (bool, error) {
	ok, err := d.Prompt.Confirm(
		fmt.Sprintf("mark %s as preoccupied by %s?", n, earlier), false)
	if err != nil {
		if errors.Is(err, interactive.ErrStop) {
			return false, err
		}
		return false, nil
	}
	if !ok {
		return false, nil
	}

	tags, err := n.Tags()
	if err != nil {
		return false, err
	}
	tags = append(tags, model.PreoccupiedBy{NameID: earlier.ID})
	model.SortNameTags(tags)
	if err := n.SetTags(tags); err != nil {
		return false, err
	}
	n.NomenclatureStatus = model.NSPreoccupied
	n.MarkDirty()
	lc.Report("%s: marked preoccupied by %s", n, earlier)
	return true, nil
}

// genusOf returns the genus word of a species-group name's corrected
// original name.
func genusOf(n *model.Name) string {
	words := strings.Fields(n.CorrectedOriginalName)
	if len(words) < 2 {
		return ""
	}
	return words[0]
}

// editDistance is the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
