// internal/tenderstore/policy.go
package tenderstore

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tender-workers/internal/common/errors"
	"tender-workers/internal/eligibility"
	"tender-workers/internal/models"
)

// ParsePolicy turns the stored text form of a company policy into a
// CompanyPolicy. A ceiling that is not a finite positive number, or a project
// type outside the known vocabulary, is a POLICY_INVALID error.
func ParsePolicy(ceiling string, projectTypes []string) (models.CompanyPolicy, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(ceiling), ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.CompanyPolicy{}, errors.NewPolicyInvalidError(
			fmt.Sprintf("turnover ceiling %q is not a number", ceiling))
	}
	return ValidatePolicy(models.CompanyPolicy{
		TurnoverCeilingLakhs: value,
		ProjectTypes:         projectTypes,
	})
}

// ValidatePolicy checks a policy and returns it with project types in their
// canonical spelling, deduplicated.
func ValidatePolicy(policy models.CompanyPolicy) (models.CompanyPolicy, error) {
	ceiling := policy.TurnoverCeilingLakhs
	if math.IsNaN(ceiling) || math.IsInf(ceiling, 0) || ceiling <= 0 {
		return models.CompanyPolicy{}, errors.NewPolicyInvalidError(
			fmt.Sprintf("turnover ceiling must be a positive amount in lakhs, got %v", ceiling))
	}

	known := make(map[string]string)
	for _, name := range eligibility.ProjectTypes() {
		known[strings.ToLower(name)] = name
	}

	types := make([]string, 0, len(policy.ProjectTypes))
	seen := make(map[string]bool)
	for _, pt := range policy.ProjectTypes {
		name, ok := known[strings.ToLower(strings.TrimSpace(pt))]
		if !ok {
			return models.CompanyPolicy{}, errors.NewPolicyInvalidError(
				fmt.Sprintf("unknown project type %q", pt))
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		types = append(types, name)
	}

	return models.CompanyPolicy{TurnoverCeilingLakhs: ceiling, ProjectTypes: types}, nil
}
