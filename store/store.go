// Package store defines the narrow contract every writer of opportunity
// records goes through. The interactive handlers, the optimistic mirror and
// the automation webhook all bottleneck on the same interface, so the durable
// store stays the single source of truth.
package store

import (
	"context"
	"time"

	"freelancehub/schemas"
)

const (
	PAGE_SIZE_DEFAULT = 25
	PAGE_SIZE_MAX     = 100
)

// OpportunityStore is the CRUD surface over a tenant's opportunity set.
// Every operation is scoped by the tenant identity; records belonging to
// another tenant behave as if they do not exist.
type OpportunityStore interface {
	// List returns one page of the tenant's opportunities matching the
	// filter, newest first, plus the total match count. Page is clamped to
	// >= 1 and pageSize to 1..100.
	List(ctx context.Context, tenant string, filter schemas.PipelineFilter, page, pageSize int64) ([]schemas.Opportunity, int64, error)

	GetOne(ctx context.Context, tenant string, id string) (*schemas.Opportunity, error)

	// Create persists a new record. The stage defaults to discovered,
	// empty-string reference fields are normalized to absence, and both
	// timestamps are set to the operation time.
	Create(ctx context.Context, tenant string, fields OpportunityCreate) (*schemas.Opportunity, error)

	// UpdateStage sets the stage of one record. Membership in the stage
	// vocabulary is the only transition rule. UpdatedAt always advances.
	UpdateStage(ctx context.Context, tenant string, id string, newStage string) (*schemas.Opportunity, error)

	UpdateFields(ctx context.Context, tenant string, id string, patch OpportunityPatch) (*schemas.Opportunity, error)
}

// OpportunityCreate carries the fields of a new opportunity. Reference
// fields arrive as hex strings so an empty string can be normalized to
// absence instead of failing object-id decoding.
type OpportunityCreate struct {
	PlatformID         string     `json:"platform_id"`
	PillarID           string     `json:"pillar_id,omitempty"`
	JobTitle           string     `json:"job_title"`
	JobDescription     string     `json:"job_description,omitempty"`
	JobURL             string     `json:"job_url,omitempty"`
	Stage              string     `json:"stage,omitempty"`
	GigListingID       string     `json:"gig_listing_id,omitempty"`
	ClientName         string     `json:"client_name,omitempty"`
	ClientCompany      string     `json:"client_company,omitempty"`
	ClientLocation     string     `json:"client_location,omitempty"`
	BudgetMin          *float64   `json:"budget_min,omitempty"`
	BudgetMax          *float64   `json:"budget_max,omitempty"`
	ContractType       string     `json:"contract_type,omitempty"`
	ProposalText       string     `json:"proposal_text,omitempty"`
	ProposalTemplateID string     `json:"proposal_template_id,omitempty"`
	ContractValue      *float64   `json:"contract_value,omitempty"`
	EstimatedHours     *float64   `json:"estimated_hours,omitempty"`
	ActualHours        *float64   `json:"actual_hours,omitempty"`
	DeliveryDeadline   *time.Time `json:"delivery_deadline,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

// OpportunityPatch carries a partial field update. Nil pointers leave the
// field untouched. An empty-string PillarID, GigListingID or
// ProposalTemplateID clears the reference. The platform reference is
// immutable after creation and is deliberately not part of the patch.
type OpportunityPatch struct {
	PillarID           *string    `json:"pillar_id,omitempty"`
	JobTitle           *string    `json:"job_title,omitempty"`
	JobDescription     *string    `json:"job_description,omitempty"`
	JobURL             *string    `json:"job_url,omitempty"`
	Stage              *string    `json:"stage,omitempty"`
	GigListingID       *string    `json:"gig_listing_id,omitempty"`
	ClientName         *string    `json:"client_name,omitempty"`
	ClientCompany      *string    `json:"client_company,omitempty"`
	ClientLocation     *string    `json:"client_location,omitempty"`
	BudgetMin          *float64   `json:"budget_min,omitempty"`
	BudgetMax          *float64   `json:"budget_max,omitempty"`
	ContractType       *string    `json:"contract_type,omitempty"`
	ProposalText       *string    `json:"proposal_text,omitempty"`
	ProposalTemplateID *string    `json:"proposal_template_id,omitempty"`
	ContractValue      *float64   `json:"contract_value,omitempty"`
	EstimatedHours     *float64   `json:"estimated_hours,omitempty"`
	ActualHours        *float64   `json:"actual_hours,omitempty"`
	DeliveryDeadline   *time.Time `json:"delivery_deadline,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
}

// ClampPage normalizes pagination arguments the same way for every
// implementation. Zero means the caller sent no page size and gets the
// default; anything else is clamped into 1..100.
func ClampPage(page, pageSize int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = PAGE_SIZE_DEFAULT
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > PAGE_SIZE_MAX {
		pageSize = PAGE_SIZE_MAX
	}
	return page, pageSize
}
