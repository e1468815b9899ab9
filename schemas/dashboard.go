package schemas

type DashboardSummary struct {
	PipelineValue      float64          `json:"pipeline_value"`
	StageCounts        map[string]int64 `json:"stage_counts"`
	TotalOpportunities int64            `json:"total_opportunities"`
}
