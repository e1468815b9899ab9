// Package pipeline holds the stage-pipeline domain logic: the filter
// predicate shared by database-side and in-memory listing, the derived
// valuation figures, and the optimistic mirror used by interactive sessions.
package pipeline

import (
	"strings"

	"freelancehub/schemas"
)

// searchStripper removes the characters that are meaningful to the
// underlying substring-match mechanism, so user input cannot smuggle
// pattern metacharacters into a query.
var searchStripper = strings.NewReplacer(
	"%", "",
	"_", "",
	`\`, "",
	"(", "",
	")", "",
	",", "",
	".", "",
)

// SanitizeSearch strips pattern metacharacters and surrounding whitespace.
// An empty result means no text constraint is applied.
func SanitizeSearch(search string) string {
	return strings.TrimSpace(searchStripper.Replace(search))
}

// MatchesFilter reports whether one opportunity satisfies the criteria. It is
// the in-memory twin of the query the Mongo store builds: both consume the
// same sanitized search term and the same per-field equality rules, so a
// page re-filtered client-side agrees with the server listing.
func MatchesFilter(filter schemas.PipelineFilter, opportunity schemas.Opportunity) bool {
	if search := SanitizeSearch(filter.Search); search != "" {
		needle := strings.ToLower(search)
		matched := strings.Contains(strings.ToLower(opportunity.JobTitle), needle) ||
			strings.Contains(strings.ToLower(opportunity.ClientName), needle) ||
			strings.Contains(strings.ToLower(opportunity.ClientCompany), needle)
		if !matched {
			return false
		}
	}

	if filter.Platform != "" {
		if filter.Platform != opportunity.PlatformID.Hex() && filter.Platform != opportunity.PlatformName {
			return false
		}
	}

	if filter.Pillar != "" {
		if filter.Pillar != opportunity.PillarID.Hex() && filter.Pillar != opportunity.PillarName {
			return false
		}
	}

	if filter.Stage != "" && filter.Stage != opportunity.Stage {
		return false
	}

	if filter.ContractType != "" && filter.ContractType != opportunity.ContractType {
		return false
	}

	return true
}

// ApplyFilter keeps the opportunities matching the criteria, preserving
// order.
func ApplyFilter(filter schemas.PipelineFilter, opportunities []schemas.Opportunity) []schemas.Opportunity {
	matched := []schemas.Opportunity{}
	for _, opportunity := range opportunities {
		if MatchesFilter(filter, opportunity) {
			matched = append(matched, opportunity)
		}
	}
	return matched
}
