// Package namecheck is the rule catalog for Name records: spelling and
// format rules from the Code, status/tag consistency, homonym
// detection, and the network-backed page verification.
package namecheck

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nomenlabs/nomen/internal/interactive"
	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/pkg/bhl"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// Deps carries the services the name checks draw on.
type Deps struct {
	Store  *store.Store
	BHL    *bhl.Client
	Prompt interactive.Prompter
}

var (
	speciesRootRe = regexp.MustCompile(`^[a-z]+$`)
	upperRootRe   = regexp.MustCompile(`^[A-Z][a-z]+$`)
	yearRe        = regexp.MustCompile(`^\d{4}$`)
	pagePartRe    = regexp.MustCompile(`^(\d+(-\d+)?|[ivxlcdm]+(-[ivxlcdm]+)?|pl\. \d+|fig\. \d+)$`)
)

// earliestYear is the starting point of zoological nomenclature.
const earliestYear = 1758

// New builds the Name registry.
func New(deps Deps) *lint.Registry[*model.Name] {
	r := lint.New[*model.Name]("name")

	r.Register("root_name_format", checkRootNameFormat)
	r.Register("corrected_original_name", checkCorrectedOriginalName)
	r.Register("year_format", checkYearFormat)
	r.Register("page_described_format", checkPageDescribedFormat)
	r.Register("authority_format", checkAuthorityFormat)
	r.Register("required_tags", checkRequiredTags)
	r.Register("tag_targets", deps.checkTagTargets)
	r.Register("citation_group_year", deps.checkCitationGroupYear)
	r.Register("type_specimen_format", deps.checkTypeSpecimenFormat)
	r.Register("homonymy", deps.checkHomonymy)
	lint.RegisterDupeFinder(r, "duplicate_name",
		func() ([]*model.Name, error) { return deps.Store.ListNames(true, 0) },
		dupeKey, nil)
	r.Register("bhl_page", deps.checkBHLPage, lint.RequiresNetwork())

	return r
}

type nameKey struct {
	group     model.Group
	corrected string
	taxon     int64
}

// dupeKey groups names that spell the same name on the same taxon.
func dupeKey(n *model.Name) (nameKey, bool) {
	if n.CorrectedOriginalName == "" || n.TaxonID == 0 || n.IsInvalid() {
		return nameKey{}, false
	}
	return nameKey{group: n.Group, corrected: n.CorrectedOriginalName, taxon: n.TaxonID}, true
}

func checkRootNameFormat(n *model.Name, lc *lint.Context) ([]string, error) {
	if n.RootName == "" {
		return nil, nil
	}
	var re *regexp.Regexp
	switch n.Group {
	case model.GroupSpecies:
		re = speciesRootRe
	default:
		re = upperRootRe
	}
	if !re.MatchString(n.RootName) {
		return []string{fmt.Sprintf("root name %q is not a valid %s-group name",
			n.RootName, n.Group)}, nil
	}
	if n.Group == model.GroupFamily && !hasFamilySuffix(n.RootName) {
		// the root of a family-group name is stored with its suffix
		return []string{fmt.Sprintf("root name %q lacks a family-group suffix", n.RootName)}, nil
	}
	return nil, nil
}

var familySuffixes = []string{"oidea", "idae", "inae", "ini", "ina"}

func hasFamilySuffix(root string) bool {
	for _, suffix := range familySuffixes {
		if strings.HasSuffix(root, suffix) {
			return true
		}
	}
	return false
}

// checkCorrectedOriginalName derives the corrected spelling from the
// original and fills or verifies the stored value. Derivation strips
// diacritics, subgenus parentheses, and stray whitespace.
func checkCorrectedOriginalName(n *model.Name, lc *lint.Context) ([]string, error) {
	if n.OriginalName == "" {
		return nil, nil
	}
	derived := CorrectOriginalName(n.OriginalName, n.Group)
	if derived == "" {
		return []string{fmt.Sprintf("cannot derive corrected name from %q", n.OriginalName)}, nil
	}

	if n.CorrectedOriginalName == "" {
		if lc.Config.Autofix {
			n.CorrectedOriginalName = derived
			n.MarkDirty()
			lc.Report("%s: setting corrected original name to %q", n, derived)
			return nil, nil
		}
		return []string{fmt.Sprintf("corrected original name should be %q", derived)}, nil
	}
	if n.CorrectedOriginalName != derived {
		return []string{fmt.Sprintf("corrected original name %q does not match derived %q",
			n.CorrectedOriginalName, derived)}, nil
	}

	// the root name must agree with the corrected spelling
	if root := rootOf(n.CorrectedOriginalName, n.Group); root != "" && root != n.RootName {
		return []string{fmt.Sprintf("root name %q does not match corrected original name %q",
			n.RootName, n.CorrectedOriginalName)}, nil
	}
	return nil, nil
}

// CorrectOriginalName normalizes an original spelling to the Code's
// orthography: diacritics stripped, subgenus parentheses removed,
// whitespace collapsed, case normalized per group.
func CorrectOriginalName(original string, group model.Group) string {
	s := stripDiacritics(original)
	// drop a parenthesized subgenus
	for {
		open := strings.Index(s, "(")
		if open < 0 {
			break
		}
		end := strings.Index(s[open:], ")")
		if end < 0 {
			return ""
		}
		s = s[:open] + s[open+end+1:]
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	switch group {
	case model.GroupSpecies:
		if len(words) < 2 {
			return ""
		}
		for i, w := range words {
			if i == 0 {
				words[i] = capitalize(w)
			} else {
				words[i] = strings.ToLower(w)
			}
		}
		return strings.Join(words, " ")
	default:
		if len(words) != 1 {
			return ""
		}
		return capitalize(words[0])
	}
}

func capitalize(w string) string {
	w = strings.ToLower(w)
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// rootOf extracts the root name from a corrected original name.
func rootOf(corrected string, group model.Group) string {
	words := strings.Fields(corrected)
	if len(words) == 0 {
		return ""
	}
	if group == model.GroupSpecies {
		return words[len(words)-1]
	}
	return words[0]
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

func checkYearFormat(n *model.Name, lc *lint.Context) ([]string, error) {
	if n.Year == "" {
		return nil, nil
	}
	if !yearRe.MatchString(n.Year) {
		return []string{fmt.Sprintf("year %q is not a four-digit year", n.Year)}, nil
	}
	year, _ := strconv.Atoi(n.Year)
	if year < earliestYear || year > time.Now().Year()+1 {
		return []string{fmt.Sprintf("year %s is out of range", n.Year)}, nil
	}
	return nil, nil
}

func checkPageDescribedFormat(n *model.Name, lc *lint.Context) ([]string, error) {
	if n.PageDescribed == "" {
		return nil, nil
	}
	for _, part := range strings.Split(n.PageDescribed, ", ") {
		if !pagePartRe.MatchString(part) {
			return []string{fmt.Sprintf("page described %q has malformed part %q",
				n.PageDescribed, part)}, nil
		}
	}
	return nil, nil
}

func checkAuthorityFormat(n *model.Name, lc *lint.Context) ([]string, error) {
	if n.Authority == "" {
		return nil, nil
	}
	var issues []string
	cleaned := strings.Join(strings.Fields(n.Authority), " ")
	if cleaned != n.Authority {
		if lc.Config.Autofix {
			n.Authority = cleaned
			n.MarkDirty()
			lc.Report("%s: normalizing authority whitespace", n)
		} else {
			issues = append(issues, "authority has stray whitespace")
		}
	}
	if strings.Contains(cleaned, "et al") {
		issues = append(issues, "authority uses et al.; list all authors")
	}
	if strings.HasSuffix(cleaned, ",") || strings.HasSuffix(cleaned, "&") {
		issues = append(issues, fmt.Sprintf("authority %q is truncated", cleaned))
	}
	return issues, nil
}

// checkRequiredTags enforces the tag the nomenclature status demands
// and the at-most-one rule for relationship tag variants.
func checkRequiredTags(n *model.Name, lc *lint.Context) ([]string, error) {
	tags, err := n.Tags()
	if err != nil {
		return nil, err
	}

	var issues []string
	counts := make(map[string]int)
	for _, t := range tags {
		if _, ok := model.NameTagTarget(t); ok {
			counts[model.NameTagVariant(t)]++
		}
	}
	for variant, count := range counts {
		if count > 1 {
			issues = append(issues, fmt.Sprintf("multiple %s tags", variant))
		}
	}

	if want, ok := n.NomenclatureStatus.RequiresNameTag(); ok && counts[want] == 0 {
		issues = append(issues, fmt.Sprintf("missing %s tag required by status %s",
			want, n.NomenclatureStatus))
	}
	return issues, nil
}

// checkTagTargets verifies relationship tags point at compatible
// names: same group, never the name itself.
func (d Deps) checkTagTargets(n *model.Name, lc *lint.Context) ([]string, error) {
	tags, err := n.Tags()
	if err != nil {
		return nil, err
	}
	var issues []string
	for _, t := range tags {
		target, ok := model.NameTagTarget(t)
		if !ok || target == 0 {
			continue
		}
		variant := model.NameTagVariant(t)
		if target == n.ID {
			issues = append(issues, fmt.Sprintf("%s tag points at the name itself", variant))
			continue
		}
		other, err := d.Store.GetName(target)
		if err != nil {
			// a missing target is the reference walk's finding
			continue
		}
		if other.Group != n.Group {
			issues = append(issues, fmt.Sprintf("%s tag points at %s-group name %s",
				variant, other.Group, other))
		}
	}
	return issues, nil
}

// checkCitationGroupYear verifies the name's year falls inside the
// citation group's published range.
func (d Deps) checkCitationGroupYear(n *model.Name, lc *lint.Context) ([]string, error) {
	if n.CitationGroupID == 0 || !yearRe.MatchString(n.Year) {
		return nil, nil
	}
	cg, err := d.Store.GetCitationGroup(n.CitationGroupID)
	if err != nil {
		return nil, nil
	}
	start, end, ok := yearRangeOf(cg)
	if !ok {
		return nil, nil
	}
	year, _ := strconv.Atoi(n.Year)
	if year < start || (end != 0 && year > end) {
		return []string{fmt.Sprintf("year %s outside %s's range %d-%d",
			n.Year, cg.Name, start, end)}, nil
	}
	return nil, nil
}

// yearRangeOf extracts a citation group's YearRange tag bounds. A zero
// end means the group is still publishing.
func yearRangeOf(cg *model.CitationGroup) (start, end int, ok bool) {
	tags, err := cg.Tags()
	if err != nil {
		return 0, 0, false
	}
	for _, t := range tags {
		if yr, isRange := t.(model.YearRange); isRange {
			start, err = strconv.Atoi(yr.Start)
			if err != nil {
				return 0, 0, false
			}
			if yr.End != "" {
				end, err = strconv.Atoi(yr.End)
				if err != nil {
					return 0, 0, false
				}
			}
			return start, end, true
		}
	}
	return 0, 0, false
}

// checkTypeSpecimenFormat verifies the specimen number cites the
// holding collection's label.
func (d Deps) checkTypeSpecimenFormat(n *model.Name, lc *lint.Context) ([]string, error) {
	if n.CollectionID == 0 || n.TypeSpecimen == "" {
		return nil, nil
	}
	coll, err := d.Store.GetCollection(n.CollectionID)
	if err != nil {
		return nil, nil
	}
	if !strings.HasPrefix(n.TypeSpecimen, coll.Label+" ") {
		return []string{fmt.Sprintf("type specimen %q does not cite collection %s",
			n.TypeSpecimen, coll.Label)}, nil
	}
	return nil, nil
}

// checkBHLPage verifies the described page exists in the scanned item
// linked to the original citation. A transport failure means the check
// contributes nothing this run.
func (d Deps) checkBHLPage(n *model.Name, lc *lint.Context) ([]string, error) {
	if d.BHL == nil || n.OriginalCitationID == 0 || n.PageDescribed == "" {
		return nil, nil
	}
	art, err := d.Store.GetArticle(n.OriginalCitationID)
	if err != nil {
		return nil, nil
	}
	itemID := bhlItemOf(art)
	if itemID == 0 {
		return nil, nil
	}

	item, err := d.BHL.GetItemMetadata(context.Background(), int(itemID))
	if err != nil {
		lc.Logger.Debug("bhl lookup failed", "name", n.ID, "item", itemID, "error", err)
		return nil, nil
	}

	page := firstPage(n.PageDescribed)
	if page == "" {
		return nil, nil
	}
	for _, p := range item.Pages {
		for _, num := range p.PageNumbers {
			if num.Number == page {
				return nil, nil
			}
		}
	}
	return []string{fmt.Sprintf("page %s not found in BHL item %d", page, itemID)}, nil
}

func bhlItemOf(art *model.Article) int64 {
	tags, err := art.Tags()
	if err != nil {
		return 0
	}
	for _, t := range tags {
		if item, ok := t.(model.BHLItem); ok {
			return item.ItemID
		}
	}
	return 0
}

// firstPage returns the leading plain page number of a page
// description, or empty when it opens with a plate or roman numeral.
func firstPage(described string) string {
	part := strings.Split(described, ", ")[0]
	part = strings.Split(part, "-")[0]
	if _, err := strconv.Atoi(part); err != nil {
		return ""
	}
	return part
}
