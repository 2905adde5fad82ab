package model

import "fmt"

// Group is the nomenclatural group a name belongs to. The group, not
// the rank, decides which formation and homonymy rules apply.
type Group int

const (
	GroupSpecies Group = iota
	GroupGenus
	GroupFamily
	GroupHigh
)

func (g Group) String() string {
	switch g {
	case GroupSpecies:
		return "species"
	case GroupGenus:
		return "genus"
	case GroupFamily:
		return "family"
	case GroupHigh:
		return "high"
	}
	return fmt.Sprintf("unknown(%d)", int(g))
}

// Known reports whether the value is a declared group.
func (g Group) Known() bool {
	return g >= GroupSpecies && g <= GroupHigh
}

// ParseGroup converts a string to a Group.
func ParseGroup(s string) (Group, error) {
	for g := GroupSpecies; g <= GroupHigh; g++ {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown group: %q", s)
}

// Status is the taxonomic status of a name: how the name relates to the
// classification, as opposed to its nomenclatural availability.
type Status int

const (
	StatusValid Status = iota
	StatusSynonym
	StatusDubious
	StatusNomenDubium
	StatusSpeciesInquirenda
	StatusSpurious
	StatusRemoved
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusSynonym:
		return "synonym"
	case StatusDubious:
		return "dubious"
	case StatusNomenDubium:
		return "nomen_dubium"
	case StatusSpeciesInquirenda:
		return "species_inquirenda"
	case StatusSpurious:
		return "spurious"
	case StatusRemoved:
		return "removed"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Known reports whether the value is a declared status.
func (s Status) Known() bool {
	return s >= StatusValid && s <= StatusRemoved
}

// Invalid reports whether a name with this status is soft-deleted and
// excluded from default queries.
func (s Status) Invalid() bool {
	return s == StatusSpurious || s == StatusRemoved
}

// ParseStatus converts a string to a Status.
func ParseStatus(str string) (Status, error) {
	for s := StatusValid; s <= StatusRemoved; s++ {
		if s.String() == str {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status: %q", str)
}

// NomenclatureStatus is the availability of a name under the Code.
type NomenclatureStatus int

const (
	NSAvailable NomenclatureStatus = iota
	NSUnavailable
	NSPreoccupied
	NSNomenNudum
	NSNomenNovum
	NSIncorrectSubsequentSpelling
	NSUnjustifiedEmendation
	NSJustifiedEmendation
	NSMandatoryChange
	NSVariant
)

func (s NomenclatureStatus) String() string {
	switch s {
	case NSAvailable:
		return "available"
	case NSUnavailable:
		return "unavailable"
	case NSPreoccupied:
		return "preoccupied"
	case NSNomenNudum:
		return "nomen_nudum"
	case NSNomenNovum:
		return "nomen_novum"
	case NSIncorrectSubsequentSpelling:
		return "incorrect_subsequent_spelling"
	case NSUnjustifiedEmendation:
		return "unjustified_emendation"
	case NSJustifiedEmendation:
		return "justified_emendation"
	case NSMandatoryChange:
		return "mandatory_change"
	case NSVariant:
		return "variant"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Known reports whether the value is a declared nomenclature status.
func (s NomenclatureStatus) Known() bool {
	return s >= NSAvailable && s <= NSVariant
}

// RequiresNameTag returns the name tag variant a name with this status
// must carry: the tag pointing at the name that caused the status.
func (s NomenclatureStatus) RequiresNameTag() (string, bool) {
	switch s {
	case NSPreoccupied:
		return "PreoccupiedBy", true
	case NSNomenNovum:
		return "NomenNovumFor", true
	case NSIncorrectSubsequentSpelling:
		return "IncorrectSubsequentSpellingOf", true
	case NSUnjustifiedEmendation:
		return "UnjustifiedEmendationOf", true
	case NSJustifiedEmendation:
		return "JustifiedEmendationOf", true
	case NSMandatoryChange:
		return "MandatoryChangeOf", true
	case NSVariant:
		return "VariantOf", true
	}
	return "", false
}

// ParseNomenclatureStatus converts a string to a NomenclatureStatus.
func ParseNomenclatureStatus(str string) (NomenclatureStatus, error) {
	for s := NSAvailable; s <= NSVariant; s++ {
		if s.String() == str {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown nomenclature status: %q", str)
}

// Rank is a node's level in the classification tree. Values are spaced
// so comparisons order ranks by height.
type Rank int

const (
	RankSubspecies  Rank = 5
	RankSpecies     Rank = 10
	RankSubgenus    Rank = 20
	RankGenus       Rank = 25
	RankSubtribe    Rank = 30
	RankTribe       Rank = 35
	RankSubfamily   Rank = 40
	RankFamily      Rank = 45
	RankSuperfamily Rank = 50
	RankInfraorder  Rank = 55
	RankSuborder    Rank = 60
	RankOrder       Rank = 65
	RankSuperorder  Rank = 70
	RankSubclass    Rank = 75
	RankClass       Rank = 80
)

var rankNames = map[Rank]string{
	RankSubspecies:  "subspecies",
	RankSpecies:     "species",
	RankSubgenus:    "subgenus",
	RankGenus:       "genus",
	RankSubtribe:    "subtribe",
	RankTribe:       "tribe",
	RankSubfamily:   "subfamily",
	RankFamily:      "family",
	RankSuperfamily: "superfamily",
	RankInfraorder:  "infraorder",
	RankSuborder:    "suborder",
	RankOrder:       "order",
	RankSuperorder:  "superorder",
	RankSubclass:    "subclass",
	RankClass:       "class",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(r))
}

// Known reports whether the value is a declared rank.
func (r Rank) Known() bool {
	_, ok := rankNames[r]
	return ok
}

// Group returns the nomenclatural group governing names at this rank.
func (r Rank) Group() Group {
	switch {
	case r <= RankSpecies:
		return GroupSpecies
	case r <= RankGenus:
		return GroupGenus
	case r <= RankSuperfamily:
		return GroupFamily
	}
	return GroupHigh
}

// ParseRank converts a string to a Rank.
func ParseRank(s string) (Rank, error) {
	for r, name := range rankNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank: %q", s)
}

// AgeClass records whether a taxon is living, recently lost, or known
// only from fossils.
type AgeClass int

const (
	AgeExtant AgeClass = iota
	AgeRecentlyExtinct
	AgeFossil
)

func (a AgeClass) String() string {
	switch a {
	case AgeExtant:
		return "extant"
	case AgeRecentlyExtinct:
		return "recently_extinct"
	case AgeFossil:
		return "fossil"
	}
	return fmt.Sprintf("unknown(%d)", int(a))
}

// Known reports whether the value is a declared age class.
func (a AgeClass) Known() bool {
	return a >= AgeExtant && a <= AgeFossil
}

// ParseAgeClass converts a string to an AgeClass.
func ParseAgeClass(s string) (AgeClass, error) {
	for a := AgeExtant; a <= AgeFossil; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown age class: %q", s)
}

// ArticleKind classifies a bibliographic reference.
type ArticleKind int

const (
	ArticleJournal ArticleKind = iota
	ArticleBook
	ArticleChapter
	ArticleThesis
	ArticleWeb
	ArticleMiscellaneous
	ArticleRedirect
	ArticleRemoved
)

func (k ArticleKind) String() string {
	switch k {
	case ArticleJournal:
		return "journal"
	case ArticleBook:
		return "book"
	case ArticleChapter:
		return "chapter"
	case ArticleThesis:
		return "thesis"
	case ArticleWeb:
		return "web"
	case ArticleMiscellaneous:
		return "miscellaneous"
	case ArticleRedirect:
		return "redirect"
	case ArticleRemoved:
		return "removed"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Known reports whether the value is a declared article kind.
func (k ArticleKind) Known() bool {
	return k >= ArticleJournal && k <= ArticleRemoved
}

// Invalid reports whether an article of this kind is excluded from
// default queries.
func (k ArticleKind) Invalid() bool {
	return k == ArticleRedirect || k == ArticleRemoved
}

// ParseArticleKind converts a string to an ArticleKind.
func ParseArticleKind(s string) (ArticleKind, error) {
	for k := ArticleJournal; k <= ArticleRemoved; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown article kind: %q", s)
}

// CitationGroupType classifies a citation group.
type CitationGroupType int

const (
	CGJournal CitationGroupType = iota
	CGBook
	CGThesis
	CGRedirect
	CGDeleted
)

func (t CitationGroupType) String() string {
	switch t {
	case CGJournal:
		return "journal"
	case CGBook:
		return "book"
	case CGThesis:
		return "thesis"
	case CGRedirect:
		return "redirect"
	case CGDeleted:
		return "deleted"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// Known reports whether the value is a declared citation group type.
func (t CitationGroupType) Known() bool {
	return t >= CGJournal && t <= CGDeleted
}

// Invalid reports whether a group of this type is excluded from
// default queries.
func (t CitationGroupType) Invalid() bool {
	return t == CGRedirect || t == CGDeleted
}

// ParseCitationGroupType converts a string to a CitationGroupType.
func ParseCitationGroupType(s string) (CitationGroupType, error) {
	for t := CGJournal; t <= CGDeleted; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown citation group type: %q", s)
}

// PeriodSystem identifies the dating framework a period belongs to.
type PeriodSystem int

const (
	SystemGTS PeriodSystem = iota
	SystemLandMammalAge
	SystemBiozone
)

func (p PeriodSystem) String() string {
	switch p {
	case SystemGTS:
		return "gts"
	case SystemLandMammalAge:
		return "land_mammal_age"
	case SystemBiozone:
		return "biozone"
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// Known reports whether the value is a declared period system.
func (p PeriodSystem) Known() bool {
	return p >= SystemGTS && p <= SystemBiozone
}

// ParsePeriodSystem converts a string to a PeriodSystem.
func ParsePeriodSystem(s string) (PeriodSystem, error) {
	for p := SystemGTS; p <= SystemBiozone; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown period system: %q", s)
}

// RegionKind is the level of a geographic region.
type RegionKind int

const (
	RegionContinent RegionKind = iota
	RegionCountry
	RegionSubnational
)

func (k RegionKind) String() string {
	switch k {
	case RegionContinent:
		return "continent"
	case RegionCountry:
		return "country"
	case RegionSubnational:
		return "subnational"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Known reports whether the value is a declared region kind.
func (k RegionKind) Known() bool {
	return k >= RegionContinent && k <= RegionSubnational
}

// ParseRegionKind converts a string to a RegionKind.
func ParseRegionKind(s string) (RegionKind, error) {
	for k := RegionContinent; k <= RegionSubnational; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown region kind: %q", s)
}
