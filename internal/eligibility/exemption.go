// internal/eligibility/exemption.go
package eligibility

import (
	"regexp"
	"strings"
)

// DetectExemptions reports whether MSME and Startup exemptions apply. Flags supplied
// by the caller always count; the text only counts when it grants the exemption
// explicitly and nothing in it denies exemptions.
func DetectExemptions(text string, excelMsme, excelStartup bool) (msme, startup bool) {
	m, s := detectTextExemptions(normalizeText(text))
	return excelMsme || m, excelStartup || s
}

func detectTextExemptions(normalized string) (msme, startup bool) {
	if normalized == "" || anyMatch(exemptionDenialPatterns, normalized) {
		return false, false
	}
	return grantsExemption(msmeExemptionPatterns, normalized), grantsExemption(startupExemptionPatterns, normalized)
}

// grantsExemption reports whether any grant phrase waives the eligibility bar. A
// clause that only waives EMD or fees does not count unless it also names the bar.
func grantsExemption(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(s, -1) {
			clause := enclosingClause(s, loc[0], loc[1])
			if !feeWaiverPattern.MatchString(clause) || eligibilityBarPattern.MatchString(clause) {
				return true
			}
		}
	}
	return false
}

// enclosingClause widens [start,end) to the surrounding '.' or ';' delimiters.
func enclosingClause(s string, start, end int) string {
	from := strings.LastIndexAny(s[:start], ".;") + 1
	to := len(s)
	if i := strings.IndexAny(s[end:], ".;"); i >= 0 {
		to = end + i
	}
	return s[from:to]
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
