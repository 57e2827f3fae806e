// internal/eligibility/tags.go
package eligibility

import "strings"

// DetectTags returns the project-type categories found in text, restricted to the
// categories the policy accepts. Output follows vocabulary order and is never nil.
func DetectTags(text string, projectTypes []string) []string {
	return detectTags(newCorpus(text), projectTypes)
}

func detectTags(c corpus, projectTypes []string) []string {
	allowed := make(map[string]struct{}, len(projectTypes))
	for _, pt := range projectTypes {
		allowed[strings.ToLower(strings.TrimSpace(pt))] = struct{}{}
	}
	tags := []string{}
	if c.blank() || len(allowed) == 0 {
		return tags
	}
	for _, pt := range projectTypeVocabulary {
		if _, ok := allowed[strings.ToLower(pt.Name)]; !ok {
			continue
		}
		if projectTypeMatchers[pt.Name].any(c.words) {
			tags = append(tags, pt.Name)
		}
	}
	return tags
}
