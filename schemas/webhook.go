package schemas

import "encoding/json"

const (
	WEBHOOK_EVENT_REVENUE_ENTRY = "revenue_entry"
	WEBHOOK_EVENT_METRIC_UPDATE = "metric_update"
	WEBHOOK_EVENT_STAGE_CHANGE  = "stage_change"
)

// WebhookEvent is the envelope the automation system posts. Payload stays raw
// until the type dispatch decodes it into the matching payload struct.
type WebhookEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type RevenueEntryPayload struct {
	Amount        *float64 `json:"amount"`
	ReceivedDate  string   `json:"received_date"`
	PlatformID    string   `json:"platform_id,omitempty"`
	PillarID      string   `json:"pillar_id,omitempty"`
	OpportunityID string   `json:"opportunity_id,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	EntryType     string   `json:"entry_type,omitempty"`
	FeeAmount     *float64 `json:"fee_amount,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

type MetricUpdatePayload struct {
	Date          string `json:"date"`
	PlatformID    string `json:"platform_id,omitempty"`
	ProfileViews  *int64 `json:"profile_views,omitempty"`
	ProposalsSent *int64 `json:"proposals_sent,omitempty"`
	Interviews    *int64 `json:"interviews,omitempty"`
	Invites       *int64 `json:"invites,omitempty"`
}

type StageChangePayload struct {
	OpportunityID string `json:"opportunity_id"`
	NewStage      string `json:"new_stage"`
}
