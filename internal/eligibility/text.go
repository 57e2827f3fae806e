// internal/eligibility/text.go
package eligibility

import (
	"sort"
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldSpaces maps every unicode space (nbsp, thin space, tabs from PDF exports) to ' '.
var foldSpaces = runes.Map(func(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
})

// corpus holds the two normalized forms of tender text used by the rules.
type corpus struct {
	// text is NFKC-normalized, lowercase and whitespace-collapsed. Regexes run on it.
	text string
	// words has every non-alphanumeric rune folded to a space and is padded with one
	// space on each side. Keyword tables run on it.
	words string
}

func newCorpus(parts ...string) corpus {
	text := normalizeText(strings.Join(parts, " "))
	return corpus{text: text, words: " " + wordForm(text) + " "}
}

// blank reports a corpus with no letters or digits at all.
func (c corpus) blank() bool {
	return strings.TrimSpace(c.words) == ""
}

func normalizeText(s string) string {
	t := transform.Chain(norm.NFKC, foldSpaces)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

func wordForm(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// keywordForm normalizes a table or user keyword into the word form, keeping a
// single leading/trailing space when the entry asks for a word boundary.
func keywordForm(k string) string {
	w := wordForm(normalizeText(k))
	if w == "" {
		return ""
	}
	if strings.HasPrefix(k, " ") {
		w = " " + w
	}
	if strings.HasSuffix(k, " ") {
		w += " "
	}
	return w
}

// keywordMatcher finds which entries of a keyword list occur in a word-form text
// in a single pass.
type keywordMatcher struct {
	keywords []string
	matcher  *ahocorasick.Matcher
}

func newKeywordMatcher(keywords []string) *keywordMatcher {
	normalized := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		n := keywordForm(k)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		normalized = append(normalized, n)
	}
	km := &keywordMatcher{keywords: normalized}
	if len(normalized) > 0 {
		km.matcher = ahocorasick.NewStringMatcher(normalized)
	}
	return km
}

// matches returns the distinct matched keywords in list order.
func (km *keywordMatcher) matches(words string) []string {
	if km.matcher == nil {
		return nil
	}
	hits := km.matcher.MatchThreadSafe([]byte(words))
	if len(hits) == 0 {
		return nil
	}
	sort.Ints(hits)
	out := make([]string, 0, len(hits))
	seen := make(map[int]struct{}, len(hits))
	for _, idx := range hits {
		if idx < 0 || idx >= len(km.keywords) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, km.keywords[idx])
	}
	return out
}

func (km *keywordMatcher) any(words string) bool {
	return km.matcher != nil && km.matcher.Contains([]byte(words))
}

// Table matchers are built once and shared; only MatchThreadSafe and Contains are used on them.
var (
	coreServiceMatcher  = newKeywordMatcher(coreServiceVocabulary)
	coreDomainMatcher   = newKeywordMatcher(coreDomainKeywords)
	procurementMatcher  = newKeywordMatcher(procurementPhrases)
	serviceVerbMatcher  = newKeywordMatcher(serviceVerbs)
	itNounMatcher       = newKeywordMatcher(itDomainNouns)
	equipmentMatcher    = newKeywordMatcher(equipmentNouns)
	hardNegativeMatcher = newKeywordMatcher(hardNegativeWords)
	projectTypeMatchers = buildProjectTypeMatchers()
)

func buildProjectTypeMatchers() map[string]*keywordMatcher {
	out := make(map[string]*keywordMatcher, len(projectTypeVocabulary))
	for _, pt := range projectTypeVocabulary {
		out[pt.Name] = newKeywordMatcher(pt.Keywords)
	}
	return out
}
