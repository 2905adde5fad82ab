// Package articlecheck is the rule catalog for Article records.
package articlecheck

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/pkg/bhl"
	"github.com/nomenlabs/nomen/pkg/lint"
	"github.com/nomenlabs/nomen/pkg/zoobank"
)

// Deps carries the services the article checks draw on.
type Deps struct {
	Store   *store.Store
	BHL     *bhl.Client
	ZooBank *zoobank.Client
}

var (
	doiRe  = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
	yearRe = regexp.MustCompile(`^\d{4}[a-z]?$`)
)

const earliestYear = 1758

// New builds the Article registry.
func New(deps Deps) *lint.Registry[*model.Article] {
	r := lint.New[*model.Article]("article")

	r.Register("page_range", checkPageRange)
	r.Register("doi_format", checkDOIFormat)
	r.Register("title_format", checkTitleFormat)
	r.Register("year_format", deps.checkYear)
	r.Register("series_required", deps.checkSeriesRequired)
	r.Register("isbn", checkISBN)
	r.Register("part_location", deps.checkPartLocation)
	lint.RegisterDupeFinder(r, "duplicate_article",
		func() ([]*model.Article, error) { return deps.Store.ListArticles(true, 0) },
		dupeKey, nil)
	r.Register("bhl_item", deps.checkBHLItem, lint.RequiresNetwork())
	r.Register("zoobank_registration", deps.checkZooBankRegistration, lint.RequiresNetwork())

	return r
}

type articleKey struct {
	title string
	year  string
}

// dupeKey groups articles by normalized title and year.
func dupeKey(a *model.Article) (articleKey, bool) {
	if a.Title == "" || a.Year == "" || a.IsInvalid() {
		return articleKey{}, false
	}
	title := strings.ToLower(strings.Join(strings.Fields(a.Title), " "))
	title = strings.TrimSuffix(title, ".")
	return articleKey{title: title, year: strings.TrimRight(a.Year, "abcdefgh")}, true
}

func checkPageRange(a *model.Article, lc *lint.Context) ([]string, error) {
	if a.StartPage == "" || a.EndPage == "" {
		return nil, nil
	}
	start, err1 := strconv.Atoi(a.StartPage)
	end, err2 := strconv.Atoi(a.EndPage)
	if err1 != nil || err2 != nil {
		// roman-numeral and plate pagination is left alone
		return nil, nil
	}
	if start > end {
		return []string{fmt.Sprintf("start page %d is after end page %d", start, end)}, nil
	}
	return nil, nil
}

func checkDOIFormat(a *model.Article, lc *lint.Context) ([]string, error) {
	if a.DOI == "" {
		return nil, nil
	}
	doi := a.DOI
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "doi:"} {
		if strings.HasPrefix(doi, prefix) {
			if lc.Config.Autofix {
				a.DOI = strings.TrimPrefix(doi, prefix)
				a.MarkDirty()
				lc.Report("%s: stripping %q from DOI", a, prefix)
				doi = a.DOI
			} else {
				return []string{fmt.Sprintf("DOI %q carries a resolver prefix", doi)}, nil
			}
		}
	}
	if !doiRe.MatchString(doi) {
		return []string{fmt.Sprintf("malformed DOI %q", doi)}, nil
	}
	return nil, nil
}

// checkTitleFormat cleans stray whitespace and a trailing period off
// the title.
func checkTitleFormat(a *model.Article, lc *lint.Context) ([]string, error) {
	if a.Title == "" {
		return nil, nil
	}
	cleaned := strings.Join(strings.Fields(a.Title), " ")
	cleaned = strings.TrimSuffix(cleaned, ".")
	if cleaned == a.Title || cleaned == "" {
		return nil, nil
	}
	if lc.Config.Autofix {
		a.Title = cleaned
		a.MarkDirty()
		lc.Report("%s: cleaning title to %q", a, cleaned)
		return nil, nil
	}
	return []string{fmt.Sprintf("title should be %q", cleaned)}, nil
}

// checkYear verifies the year's shape and that it falls inside the
// citation group's published range.
func (d Deps) checkYear(a *model.Article, lc *lint.Context) ([]string, error) {
	if a.Year == "" {
		return nil, nil
	}
	if !yearRe.MatchString(a.Year) {
		return []string{fmt.Sprintf("year %q is not a four-digit year", a.Year)}, nil
	}
	year, _ := strconv.Atoi(strings.TrimRight(a.Year, "abcdefgh"))
	if year < earliestYear || year > time.Now().Year()+1 {
		return []string{fmt.Sprintf("year %s is out of range", a.Year)}, nil
	}

	if a.CitationGroupID == 0 {
		return nil, nil
	}
	cg, err := d.Store.GetCitationGroup(a.CitationGroupID)
	if err != nil {
		return nil, nil
	}
	tags, err := cg.Tags()
	if err != nil {
		return nil, nil
	}
	for _, t := range tags {
		yr, ok := t.(model.YearRange)
		if !ok {
			continue
		}
		start, err := strconv.Atoi(yr.Start)
		if err != nil {
			continue
		}
		end := 0
		if yr.End != "" {
			if end, err = strconv.Atoi(yr.End); err != nil {
				continue
			}
		}
		if year < start || (end != 0 && year > end) {
			return []string{fmt.Sprintf("year %s outside %s's range %s-%s",
				a.Year, cg.Name, yr.Start, yr.End)}, nil
		}
	}
	return nil, nil
}

// checkSeriesRequired enforces a citation group's MustHaveSeries tag.
func (d Deps) checkSeriesRequired(a *model.Article, lc *lint.Context) ([]string, error) {
	if a.Kind != model.ArticleJournal || a.CitationGroupID == 0 || a.Series != "" {
		return nil, nil
	}
	cg, err := d.Store.GetCitationGroup(a.CitationGroupID)
	if err != nil {
		return nil, nil
	}
	tags, err := cg.Tags()
	if err != nil {
		return nil, nil
	}
	for _, t := range tags {
		if _, ok := t.(model.MustHaveSeries); ok {
			return []string{fmt.Sprintf("%s requires a series", cg.Name)}, nil
		}
	}
	return nil, nil
}

// checkISBN validates ISBN tags, both 10 and 13 digit forms.
func checkISBN(a *model.Article, lc *lint.Context) ([]string, error) {
	tags, err := a.Tags()
	if err != nil {
		return nil, err
	}
	var issues []string
	for _, t := range tags {
		isbn, ok := t.(model.ISBN)
		if !ok {
			continue
		}
		if !validISBN(isbn.Text) {
			issues = append(issues, fmt.Sprintf("invalid ISBN %q", isbn.Text))
		}
	}
	return issues, nil
}

func validISBN(text string) bool {
	digits := strings.NewReplacer("-", "", " ", "").Replace(text)
	switch len(digits) {
	case 10:
		sum := 0
		for i, r := range digits {
			v := 0
			if r == 'X' || r == 'x' {
				if i != 9 {
					return false
				}
				v = 10
			} else if r >= '0' && r <= '9' {
				v = int(r - '0')
			} else {
				return false
			}
			sum += (10 - i) * v
		}
		return sum%11 == 0
	case 13:
		sum := 0
		for i, r := range digits {
			if r < '0' || r > '9' {
				return false
			}
			v := int(r - '0')
			if i%2 == 1 {
				v *= 3
			}
			sum += v
		}
		return sum%10 == 0
	}
	return false
}

// checkPartLocation verifies PartLocation tags against their container.
func (d Deps) checkPartLocation(a *model.Article, lc *lint.Context) ([]string, error) {
	tags, err := a.Tags()
	if err != nil {
		return nil, err
	}
	var issues []string
	for _, t := range tags {
		loc, ok := t.(model.PartLocation)
		if !ok {
			continue
		}
		if loc.StartPage > 0 && loc.EndPage > 0 && loc.StartPage > loc.EndPage {
			issues = append(issues, fmt.Sprintf("part start page %d is after end page %d",
				loc.StartPage, loc.EndPage))
		}
		if loc.ParentArticleID == a.ID {
			issues = append(issues, "part location points at the article itself")
		}
	}
	return issues, nil
}

// checkBHLItem verifies the linked BHL item exists and carries the
// article's volume when both record one.
func (d Deps) checkBHLItem(a *model.Article, lc *lint.Context) ([]string, error) {
	if d.BHL == nil {
		return nil, nil
	}
	tags, err := a.Tags()
	if err != nil {
		return nil, err
	}
	var issues []string
	for _, t := range tags {
		tag, ok := t.(model.BHLItem)
		if !ok {
			continue
		}
		item, err := d.BHL.GetItemMetadata(context.Background(), int(tag.ItemID))
		if err != nil {
			lc.Logger.Debug("bhl lookup failed", "article", a.ID, "item", tag.ItemID, "error", err)
			continue
		}
		if a.Volume != "" && item.Volume != "" && item.Volume != a.Volume {
			issues = append(issues, fmt.Sprintf("BHL item %d is volume %q, article says %q",
				tag.ItemID, item.Volume, a.Volume))
		}
	}
	return issues, nil
}

// checkZooBankRegistration resolves a ZooBank publication LSID recorded
// in the URL field and compares its year.
func (d Deps) checkZooBankRegistration(a *model.Article, lc *lint.Context) ([]string, error) {
	if d.ZooBank == nil || !strings.Contains(a.URL, "zoobank.org") {
		return nil, nil
	}
	lsid := a.URL
	if i := strings.Index(lsid, "urn:lsid:"); i >= 0 {
		lsid = lsid[i:]
	}
	kind, _, err := zoobank.ParseLSID(lsid)
	if err != nil || kind != zoobank.KindPublication {
		return nil, nil
	}

	pub, err := d.ZooBank.ResolvePublication(context.Background(), lsid)
	if err != nil {
		lc.Logger.Debug("zoobank lookup failed", "article", a.ID, "error", err)
		return nil, nil
	}
	if pub.Year != "" && a.Year != "" && pub.Year != strings.TrimRight(a.Year, "abcdefgh") {
		return []string{fmt.Sprintf("ZooBank records year %s, article says %s",
			pub.Year, a.Year)}, nil
	}
	return nil, nil
}
