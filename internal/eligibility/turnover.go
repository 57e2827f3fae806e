// internal/eligibility/turnover.go
package eligibility

import (
	"math"
	"strconv"
	"strings"
)

// ExtractTurnover returns the minimum annual turnover a tender demands, in Lakhs,
// or nil when no known phrasing is present. Lakh phrasings are tried before Crore
// phrasings; within a family the first usable match wins.
func ExtractTurnover(text string) *float64 {
	return extractTurnover(normalizeText(text))
}

func extractTurnover(normalized string) *float64 {
	if normalized == "" {
		return nil
	}
	for _, family := range turnoverFamilies {
		last := len(family.patterns) - 1
		for i, re := range family.patterns {
			for _, m := range re.FindAllStringSubmatch(normalized, -1) {
				v, ok := parseAmount(m[1])
				if !ok {
					continue
				}
				if i == last && family.upperBound > 0 && v >= family.upperBound {
					continue
				}
				lakhs := math.Round(v*family.toLakhs*100) / 100
				return &lakhs
			}
		}
	}
	return nil
}

func parseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
