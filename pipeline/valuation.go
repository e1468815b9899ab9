package pipeline

import "freelancehub/schemas"

// PipelineValue sums contract_value over the opportunities sitting in an
// active stage. A missing contract value contributes zero; stages outside
// the active set never contribute, whatever their value.
func PipelineValue(opportunities []schemas.Opportunity) float64 {
	total := 0.0
	for _, opportunity := range opportunities {
		if !schemas.IsActiveStage(opportunity.Stage) {
			continue
		}
		if opportunity.ContractValue != nil {
			total += *opportunity.ContractValue
		}
	}
	return total
}

// StageCounts returns one entry per stage of the vocabulary, zero included,
// so a board can render every column even when empty.
func StageCounts(opportunities []schemas.Opportunity) map[string]int64 {
	counts := make(map[string]int64, len(schemas.OpportunityStages))
	for _, stage := range schemas.OpportunityStages {
		counts[stage] = 0
	}
	for _, opportunity := range opportunities {
		if _, ok := counts[opportunity.Stage]; ok {
			counts[opportunity.Stage]++
		}
	}
	return counts
}
