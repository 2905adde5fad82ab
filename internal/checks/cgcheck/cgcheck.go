// Package cgcheck is the rule catalog for CitationGroup records.
package cgcheck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/pkg/lint"
)

var issnRe = regexp.MustCompile(`^\d{4}-\d{3}[\dXx]$`)

// multipleAllowed lists the tag variants a group may carry more than
// once: a long-running journal accumulates serial numbers.
var multipleAllowed = map[string]bool{
	"ISSN":        true,
	"ISSNOnline":  true,
	"Predecessor": true,
}

// New builds the CitationGroup registry.
func New(st *store.Store) *lint.Registry[*model.CitationGroup] {
	r := lint.New[*model.CitationGroup]("citation-group")

	r.Register("issn", checkISSN)
	r.Register("duplicate_tags", checkDuplicateTags)
	r.Register("year_range", checkYearRange)
	r.Register("thesis_region", checkThesisRegion)
	lint.RegisterDupeFinder(r, "duplicate_citation_group",
		func() ([]*model.CitationGroup, error) { return st.ListCitationGroups(true, 0) },
		dupeKey, nil)

	return r
}

// dupeKey groups citation groups by normalized name.
func dupeKey(cg *model.CitationGroup) (string, bool) {
	if cg.Name == "" || cg.IsInvalid() {
		return "", false
	}
	name := strings.ToLower(strings.Join(strings.Fields(cg.Name), " "))
	name = strings.TrimSuffix(name, ".")
	return name, true
}

// checkISSN validates every serial number tag: whitespace normalized
// (autofix), NNNN-NNNC shape, mod-11 check digit.
func checkISSN(cg *model.CitationGroup, lc *lint.Context) ([]string, error) {
	tags, err := cg.Tags()
	if err != nil {
		return nil, err
	}

	var issues []string
	changed := false
	for i, t := range tags {
		var text string
		switch v := t.(type) {
		case model.ISSN:
			text = v.Text
		case model.ISSNOnline:
			text = v.Text
		default:
			continue
		}

		cleaned := normalizeISSN(text)
		if cleaned != text {
			if lc.Config.Autofix {
				switch t.(type) {
				case model.ISSN:
					tags[i] = model.ISSN{Text: cleaned}
				case model.ISSNOnline:
					tags[i] = model.ISSNOnline{Text: cleaned}
				}
				changed = true
				lc.Report("%s: normalizing ISSN %q to %q", cg, text, cleaned)
			} else {
				issues = append(issues, fmt.Sprintf("ISSN %q needs normalizing", text))
			}
		}
		if !issnRe.MatchString(cleaned) {
			issues = append(issues, fmt.Sprintf("malformed ISSN %q", text))
			continue
		}
		if !issnCheckDigitOK(cleaned) {
			issues = append(issues, fmt.Sprintf("ISSN %q fails its check digit", cleaned))
		}
	}
	if changed {
		if err := cg.SetTags(tags); err != nil {
			return issues, err
		}
	}
	return issues, nil
}

// normalizeISSN strips whitespace and restores the hyphen.
func normalizeISSN(text string) string {
	s := strings.NewReplacer(" ", "", "\t", "", "-", "").Replace(text)
	s = strings.ToUpper(s)
	if len(s) != 8 {
		return strings.TrimSpace(text)
	}
	return s[:4] + "-" + s[4:]
}

// issnCheckDigitOK verifies the mod-11 check digit, where X stands for
// ten.
func issnCheckDigitOK(issn string) bool {
	digits := strings.ReplaceAll(issn, "-", "")
	sum := 0
	for i := 0; i < 7; i++ {
		sum += int(digits[i]-'0') * (8 - i)
	}
	want := (11 - sum%11) % 11
	last := digits[7]
	if last == 'X' {
		return want == 10
	}
	return want == int(last-'0')
}

// checkDuplicateTags flags repeated tag variants outside the
// allowed-multiple set. Two ISSN tags differing only by whitespace
// count as one serial number, not a violation.
func checkDuplicateTags(cg *model.CitationGroup, lc *lint.Context) ([]string, error) {
	tags, err := cg.Tags()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, t := range tags {
		variant := model.CitationGroupTagVariant(t)
		if variant == "IgnoreLint" || multipleAllowed[variant] {
			continue
		}
		counts[variant]++
	}
	var issues []string
	for variant, count := range counts {
		if count > 1 {
			issues = append(issues, fmt.Sprintf("multiple %s tags", variant))
		}
	}
	return issues, nil
}

// checkYearRange verifies the YearRange tag is well formed and ordered.
func checkYearRange(cg *model.CitationGroup, lc *lint.Context) ([]string, error) {
	tags, err := cg.Tags()
	if err != nil {
		return nil, err
	}
	var issues []string
	for _, t := range tags {
		yr, ok := t.(model.YearRange)
		if !ok {
			continue
		}
		start, err := strconv.Atoi(yr.Start)
		if err != nil {
			issues = append(issues, fmt.Sprintf("year range start %q is not a year", yr.Start))
			continue
		}
		if yr.End == "" {
			continue
		}
		end, err := strconv.Atoi(yr.End)
		if err != nil {
			issues = append(issues, fmt.Sprintf("year range end %q is not a year", yr.End))
			continue
		}
		if start > end {
			issues = append(issues, fmt.Sprintf("year range %s-%s is inverted", yr.Start, yr.End))
		}
	}
	return issues, nil
}

// checkThesisRegion requires thesis groups to name the issuing
// university's region.
func checkThesisRegion(cg *model.CitationGroup, lc *lint.Context) ([]string, error) {
	if cg.Type == model.CGThesis && cg.RegionID == 0 {
		return []string{"thesis group has no region"}, nil
	}
	return nil, nil
}
