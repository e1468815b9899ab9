package schemas

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	STAGE_DISCOVERED       = "discovered"
	STAGE_PROPOSAL_SENT    = "proposal_sent"
	STAGE_INTERVIEW        = "interview"
	STAGE_CONTRACTED       = "contracted"
	STAGE_IN_PROGRESS      = "in_progress"
	STAGE_DELIVERED        = "delivered"
	STAGE_REVIEW_REQUESTED = "review_requested"
	STAGE_COMPLETE         = "complete"
	STAGE_LOST             = "lost"

	CONTRACT_TYPE_FIXED  = "fixed"
	CONTRACT_TYPE_HOURLY = "hourly"
)

// OpportunityStages lists the pipeline in advisory order. The order is not
// enforced on transitions: any stage may be set to any other stage, so a deal
// can be corrected or re-opened after being marked lost.
var OpportunityStages = []string{
	STAGE_DISCOVERED,
	STAGE_PROPOSAL_SENT,
	STAGE_INTERVIEW,
	STAGE_CONTRACTED,
	STAGE_IN_PROGRESS,
	STAGE_DELIVERED,
	STAGE_REVIEW_REQUESTED,
	STAGE_COMPLETE,
	STAGE_LOST,
}

// ActivePipelineStages are the stages whose contract value counts toward the
// active pipeline total.
var ActivePipelineStages = []string{
	STAGE_CONTRACTED,
	STAGE_IN_PROGRESS,
	STAGE_DELIVERED,
}

func IsValidStage(stage string) bool {
	return slices.Contains(OpportunityStages, stage)
}

func IsActiveStage(stage string) bool {
	return slices.Contains(ActivePipelineStages, stage)
}

func IsValidContractType(contractType string) bool {
	return contractType == CONTRACT_TYPE_FIXED || contractType == CONTRACT_TYPE_HOURLY
}

type Opportunity struct {
	ID                 bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID             string        `json:"user_id,omitempty" bson:"user_id,omitempty"`
	PlatformID         bson.ObjectID `json:"platform_id,omitempty" bson:"platform_id,omitempty"`
	PlatformName       string        `json:"platform_name,omitempty" bson:"platform_name,omitempty"`
	PillarID           bson.ObjectID `json:"pillar_id,omitempty" bson:"pillar_id,omitempty"`
	PillarName         string        `json:"pillar_name,omitempty" bson:"pillar_name,omitempty"`
	JobTitle           string        `json:"job_title,omitempty" bson:"job_title,omitempty"`
	JobDescription     string        `json:"job_description,omitempty" bson:"job_description,omitempty"`
	JobURL             string        `json:"job_url,omitempty" bson:"job_url,omitempty"`
	Stage              string        `json:"stage,omitempty" bson:"stage,omitempty"`
	GigListingID       bson.ObjectID `json:"gig_listing_id,omitempty" bson:"gig_listing_id,omitempty"`
	ClientName         string        `json:"client_name,omitempty" bson:"client_name,omitempty"`
	ClientCompany      string        `json:"client_company,omitempty" bson:"client_company,omitempty"`
	ClientLocation     string        `json:"client_location,omitempty" bson:"client_location,omitempty"`
	BudgetMin          *float64      `json:"budget_min,omitempty" bson:"budget_min,omitempty"`
	BudgetMax          *float64      `json:"budget_max,omitempty" bson:"budget_max,omitempty"`
	ContractType       string        `json:"contract_type,omitempty" bson:"contract_type,omitempty"`
	ProposalText       string        `json:"proposal_text,omitempty" bson:"proposal_text,omitempty"`
	ProposalTemplateID bson.ObjectID `json:"proposal_template_id,omitempty" bson:"proposal_template_id,omitempty"`
	ContractValue      *float64      `json:"contract_value,omitempty" bson:"contract_value,omitempty"`
	EstimatedHours     *float64      `json:"estimated_hours,omitempty" bson:"estimated_hours,omitempty"`
	ActualHours        *float64      `json:"actual_hours,omitempty" bson:"actual_hours,omitempty"`
	DeliveryDeadline   *time.Time    `json:"delivery_deadline,omitempty" bson:"delivery_deadline,omitempty"`
	Notes              string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt          time.Time     `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt          time.Time     `json:"updated_at" bson:"updated_at,omitempty"`
}

// PipelineFilter carries the user-supplied listing criteria. Every field is
// optional; the empty string means no constraint on that dimension.
type PipelineFilter struct {
	Search       string `json:"search,omitempty"`
	Platform     string `json:"platform,omitempty"`
	Pillar       string `json:"pillar,omitempty"`
	Stage        string `json:"stage,omitempty"`
	ContractType string `json:"contract_type,omitempty"`
}
