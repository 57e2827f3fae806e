// internal/eligibility/resolver.go
package eligibility

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"tender-workers/internal/models"
)

// Resolution is the verdict of the negative-keyword resolver.
type Resolution struct {
	// Excluded means the tender is not relevant to the company.
	Excluded bool
	// Keyword is the evidence for an exclusion, as configured by the company.
	Keyword string
	// Rule names the rule that decided.
	Rule string
	// Matched lists every configured negative keyword present in the corpus.
	Matched []string
	// ITService is true when the tender reads as a primary IT-service engagement.
	ITService bool
	// CoreDomain is true when the corpus, tags or category place the tender in
	// the IT/ITES/manpower domain.
	CoreDomain bool
}

// resolverFacts are the signals computed once per tender and shared by every rule.
type resolverFacts struct {
	matched           []string
	primary           []string
	itService         bool
	coreDomainKeyword bool
	hasTags           bool
	categoryCore      bool
}

func (f resolverFacts) coreDomain() bool {
	return f.coreDomainKeyword || f.hasTags || f.categoryCore
}

type resolverRule struct {
	name    string
	applies func(resolverFacts) bool
	// evidence returns the keyword that excludes the tender, or "" to let it through.
	evidence func(resolverFacts) string
}

func proceed(resolverFacts) string { return "" }

// resolverRules are evaluated in order; the first rule that applies decides.
var resolverRules = []resolverRule{
	{
		name:     "no-negative-keyword",
		applies:  func(f resolverFacts) bool { return len(f.matched) == 0 },
		evidence: proceed,
	},
	{
		name:     "title-primary-focus",
		applies:  func(f resolverFacts) bool { return len(f.primary) > 0 && !f.itService },
		evidence: func(f resolverFacts) string { return f.primary[0] },
	},
	{
		name:     "it-service-override",
		applies:  func(f resolverFacts) bool { return len(f.primary) > 0 },
		evidence: proceed,
	},
	{
		name:     "non-core-domain",
		applies:  func(f resolverFacts) bool { return !f.coreDomain() },
		evidence: func(f resolverFacts) string { return f.matched[0] },
	},
	{
		name:     "incidental-mention",
		applies:  func(resolverFacts) bool { return true },
		evidence: proceed,
	},
}

// ResolveNegativeKeywords decides whether the configured negative keywords found in
// a tender exclude it. tags are the project-type tags already detected for it.
func ResolveNegativeKeywords(tender models.TenderText, tags []string, keywords []models.NegativeKeyword, similarCategory string) Resolution {
	return resolve(newCorpus(tender.Title), corpusOf(tender), tags, keywords, similarCategory)
}

func corpusOf(tender models.TenderText) corpus {
	return newCorpus(tender.Title, tender.EligibilityCriteria, tender.Checklist)
}

func resolve(title, full corpus, tags []string, keywords []models.NegativeKeyword, similarCategory string) Resolution {
	f := resolverFacts{
		matched: matchNegativeKeywords(full, keywords),
		hasTags: len(tags) > 0,
	}
	f.itService = isITService(title, full)
	f.coreDomainKeyword = coreDomainMatcher.any(full.words)
	f.categoryCore = isCoreCategory(similarCategory)

	if len(f.matched) > 0 {
		procurementTitle := procurementMatcher.any(title.words)
		equipmentTitle := procurementTitle && equipmentMatcher.any(title.words)
		for _, kw := range f.matched {
			if equipmentTitle || strings.Contains(title.words, keywordForm(kw)) {
				f.primary = append(f.primary, kw)
			}
		}
	}

	res := Resolution{
		Matched:    f.matched,
		ITService:  f.itService,
		CoreDomain: f.coreDomain(),
	}
	for _, rule := range resolverRules {
		if !rule.applies(f) {
			continue
		}
		res.Rule = rule.name
		if kw := rule.evidence(f); kw != "" {
			res.Excluded = true
			res.Keyword = kw
		}
		break
	}
	return res
}

// isITService requires a service verb and an IT noun, unless the title announces
// a purchase.
func isITService(title, full corpus) bool {
	if procurementMatcher.any(title.words) {
		return false
	}
	return serviceVerbMatcher.any(full.words) && itNounMatcher.any(full.words)
}

func isCoreCategory(similarCategory string) bool {
	c := newCorpus(similarCategory)
	if c.blank() {
		return false
	}
	return coreServiceMatcher.any(c.words)
}

// matchNegativeKeywords returns the configured keywords present in the corpus,
// deduplicated, in configuration order and with their configured spelling.
func matchNegativeKeywords(c corpus, keywords []models.NegativeKeyword) []string {
	if c.blank() || len(keywords) == 0 {
		return nil
	}
	forms := make([]string, 0, len(keywords))
	originals := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		form := keywordForm(k.Keyword)
		if form == "" {
			continue
		}
		if _, dup := seen[form]; dup {
			continue
		}
		seen[form] = struct{}{}
		forms = append(forms, form)
		originals = append(originals, strings.TrimSpace(k.Keyword))
	}
	if len(forms) == 0 {
		return nil
	}
	hit := make([]bool, len(forms))
	for _, idx := range ahocorasick.NewStringMatcher(forms).Match([]byte(c.words)) {
		if idx >= 0 && idx < len(hit) {
			hit[idx] = true
		}
	}
	var matched []string
	for i, ok := range hit {
		if ok {
			matched = append(matched, originals[i])
		}
	}
	return matched
}
