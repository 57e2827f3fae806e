// internal/eligibility/patterns.go
package eligibility

import "regexp"

// RuleSetVersion identifies the pattern tables below. Bump it whenever a keyword,
// regex or ordering changes so stored results can be traced to the rules that
// produced them.
const RuleSetVersion = "tender-rules/v4"

// Keyword entries are matched against the word form of the text (lowercase,
// punctuation folded to single spaces, padded with one space on each side).
// An entry with a leading or trailing space only matches on a word boundary.

// ProjectType is one category of the fixed project-type vocabulary.
type ProjectType struct {
	Name     string
	Keywords []string
}

// projectTypeVocabulary is ordered; detected tags follow this order.
var projectTypeVocabulary = []ProjectType{
	{Name: "Software", Keywords: []string{"software", "application development", "web application", "software development"}},
	{Name: "Website", Keywords: []string{"website", "web site", "web portal", "portal development"}},
	{Name: "Mobile App", Keywords: []string{"mobile app", "mobile application", " android ", " ios app"}},
	{Name: "IT Services", Keywords: []string{"it services", "it project", "it infrastructure", "it solution", "system integration", "data centre", "data center"}},
	{Name: "ERP", Keywords: []string{" erp ", "enterprise resource planning"}},
	{Name: "Manpower", Keywords: []string{"manpower", "outsourcing of staff", "deployment of personnel", "data entry operator", "computer operator"}},
	{Name: "Cloud", Keywords: []string{"cloud", " hosting ", " saas "}},
	{Name: "Digitization", Keywords: []string{"digitization", "digitisation", "scanning of records", "document management"}},
	{Name: "Consultancy", Keywords: []string{"consultancy", "consulting services", "project management unit", " pmu "}},
	{Name: "Cyber Security", Keywords: []string{"cyber security", "cybersecurity", "security audit", " vapt "}},
	{Name: "GIS", Keywords: []string{" gis ", "geographic information system"}},
	{Name: "AMC", Keywords: []string{" amc ", "annual maintenance contract", "comprehensive maintenance"}},
}

// coreServiceVocabulary is matched against the externally supplied category label.
var coreServiceVocabulary = []string{
	" it ", " ites ", "it services", "information technology", "software", "manpower",
	" erp ", "website", "web portal", "mobile app", "digitization", "digitisation",
	"e governance", "consultancy", "data entry",
}

// coreDomainKeywords mark a corpus as IT/ITES/manpower work. They also earn the
// partial project-type score when no configured tag matched.
var coreDomainKeywords = []string{
	"information technology", "it services", "it project", "it infrastructure", "it solution",
	"it enabled", " ites ", "software", "website", "web portal", "web application",
	"mobile app", "mobile application", " erp ", "manpower", "data entry", "digitization",
	"digitisation", "e governance", "cloud", "database", "cyber security", "system integrator",
	" gis ", "helpdesk", "help desk", "computer operator",
}

// procurementPhrases in a title mean the tender buys goods rather than services.
var procurementPhrases = []string{
	"supply of", "procurement of", "purchase of", "rate contract for supply",
	"rate contract for the supply", "supply and installation", "supply installation",
	"supply and delivery", "supplying of", "buying of",
}

var serviceVerbs = []string{
	"development", "deployment", "implementation", "customization", "customisation",
	"maintenance", " amc ", "hiring of agency", "hiring of an agency", "selection of agency",
	"engagement of agency", "empanelment of agency", "operation and maintenance",
	"integration", "migration", "support services",
}

var itDomainNouns = []string{
	"software", "website", "web site", "web portal", "web application", "mobile app",
	"mobile application", "it project", "it services", "it system", " erp ", "database",
	"dashboard", "e governance", "online system", "information system", " mis ", "portal",
	"cloud",
}

var equipmentNouns = []string{
	"equipment", "hardware", "computer", "laptop", "desktop", "printer", "scanner", " ups ",
	"server", "furniture", "machinery", "vehicle", "instrument", " kit ", "device", "cctv",
	"projector", "air conditioner", "generator", "tablet",
}

// hardNegativeWords are out-of-domain signals that cost the domain criterion.
var hardNegativeWords = []string{
	" civil ", "construction", "medical", "electrical", "plumbing", "road work",
	"building work", "sanitation", "catering", "horticulture",
}

// Exemption patterns run against the lowercase corpus. Denials win over grants.
var exemptionDenialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`no\s+(?:msme\s+|mse\s+|startup\s+|start-up\s+)?(?:exemption|relaxation)s?`),
	regexp.MustCompile(`not\s+(?:be\s+)?exempt(?:ed)?`),
	regexp.MustCompile(`(?:exemption|relaxation)s?\s+(?:is\s+|are\s+|shall\s+|will\s+)?not\s+(?:be\s+)?(?:applicable|allowed|available|permitted|granted|given)`),
	regexp.MustCompile(`without\s+any\s+(?:exemption|relaxation)`),
	regexp.MustCompile(`not\s+eligible\s+for\s+(?:any\s+)?(?:exemption|relaxation)`),
	regexp.MustCompile(`mandatory\s+requirement`),
}

var msmeExemptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:msme|\bmse\b|micro\s*(?:,|and|&)?\s*small)[^.]{0,60}?(?:exempt|relax|waive)`),
	regexp.MustCompile(`(?:exempt|relax|waive)[a-z]*[^.]{0,60}?(?:msme|\bmse\b|micro\s*(?:,|and|&)?\s*small|udyam|nsic)`),
}

// feeWaiverPattern names charges a tender may waive for MSEs or startups without
// touching the turnover bar.
var feeWaiverPattern = regexp.MustCompile(`\bemd\b|earnest\s+money|bid\s+security|tender\s+(?:fee|cost)|(?:document|application|processing|registration)\s+fee|cost\s+of\s+(?:the\s+)?(?:tender|bid)|performance\s+(?:security|bank\s+guarantee)`)

// eligibilityBarPattern names the qualification bar an exemption has to lift.
var eligibilityBarPattern = regexp.MustCompile(`turnover|eligibility|criteri|experience|qualif`)

var startupExemptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`start[\s-]?ups?[^.]{0,60}?(?:exempt|relax|waive)`),
	regexp.MustCompile(`(?:exempt|relax|waive)[a-z]*[^.]{0,60}?start[\s-]?ups?`),
	regexp.MustCompile(`dpiit[^.]{0,60}?(?:exempt|relax|waive)`),
}

const (
	amountPattern    = `(\d[\d,]*(?:\.\d+)?)`
	currencyPattern  = `(?:\brs\.?|\binr\b|₹)`
	lakhUnitPattern  = `(?:lakhs?|lacs?|lkhs?)`
	croreUnitPattern = `(?:crores?|cr\b\.?)`
)

// turnoverFamily is one denomination of turnover patterns, tried loosest last.
type turnoverFamily struct {
	name       string
	toLakhs    float64
	patterns   []*regexp.Regexp
	upperBound float64 // applies to the last pattern only when > 0
}

func turnoverPatterns(unit string) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`turnover[^.]{0,100}?` + currencyPattern + `\s*` + amountPattern + `\s*` + unit),
		regexp.MustCompile(currencyPattern + `\s*` + amountPattern + `\s*` + unit + `[^.]{0,60}?turnover`),
		regexp.MustCompile(`(?:at\s*least|minimum|min\.|not\s+less\s+than)\s*(?:of\s*)?(?:` + currencyPattern + `\s*)?` + amountPattern + `\s*` + unit),
		regexp.MustCompile(`turnover[^\d]{0,80}?` + amountPattern + `\s*` + unit),
	}
}

// croreFallbackBound keeps the bare "<n> crore" pattern from swallowing tender ids
// and other large figures.
const croreFallbackBound = 10000

var turnoverFamilies = []turnoverFamily{
	{
		name:     "lakh",
		toLakhs:  1,
		patterns: turnoverPatterns(lakhUnitPattern),
	},
	{
		name:       "crore",
		toLakhs:    100,
		patterns:   append(turnoverPatterns(croreUnitPattern), regexp.MustCompile(amountPattern+`\s*`+croreUnitPattern)),
		upperBound: croreFallbackBound,
	},
}

// ProjectTypes returns the category names of the fixed vocabulary, in detection order.
func ProjectTypes() []string {
	names := make([]string, 0, len(projectTypeVocabulary))
	for _, pt := range projectTypeVocabulary {
		names = append(names, pt.Name)
	}
	return names
}
