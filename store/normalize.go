package store

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"freelancehub/schemas"
)

// NormalizeCreate validates the create fields and produces the record both
// implementations persist: required platform and job title, stage and
// contract-type defaults, empty-string references collapsed to absence.
// Timestamps and the record id are left to the implementation.
func NormalizeCreate(tenant string, fields OpportunityCreate) (schemas.Opportunity, error) {
	issues := []FieldIssue{}

	platformID, err := bson.ObjectIDFromHex(fields.PlatformID)
	if fields.PlatformID == "" {
		issues = append(issues, FieldIssue{Path: "platform_id", Message: "platform reference is required"})
	} else if err != nil {
		issues = append(issues, FieldIssue{Path: "platform_id", Message: "must be a valid object id"})
	}

	jobTitle := strings.TrimSpace(fields.JobTitle)
	if jobTitle == "" {
		issues = append(issues, FieldIssue{Path: "job_title", Message: "job title is required"})
	}

	stage := fields.Stage
	if stage == "" {
		stage = schemas.STAGE_DISCOVERED
	} else if !schemas.IsValidStage(stage) {
		issues = append(issues, FieldIssue{Path: "stage", Message: "must be one of: " + strings.Join(schemas.OpportunityStages, ", ")})
	}

	contractType := fields.ContractType
	if contractType == "" {
		contractType = schemas.CONTRACT_TYPE_FIXED
	} else if !schemas.IsValidContractType(contractType) {
		issues = append(issues, FieldIssue{Path: "contract_type", Message: "must be fixed or hourly"})
	}

	pillarID, pillarIssue := ParseOptionalRef("pillar_id", fields.PillarID)
	gigListingID, gigIssue := ParseOptionalRef("gig_listing_id", fields.GigListingID)
	templateID, templateIssue := ParseOptionalRef("proposal_template_id", fields.ProposalTemplateID)
	for _, issue := range []*FieldIssue{pillarIssue, gigIssue, templateIssue} {
		if issue != nil {
			issues = append(issues, *issue)
		}
	}

	if len(issues) > 0 {
		return schemas.Opportunity{}, NewValidationError(issues...)
	}

	return schemas.Opportunity{
		UserID:             tenant,
		PlatformID:         platformID,
		PillarID:           pillarID,
		JobTitle:           jobTitle,
		JobDescription:     fields.JobDescription,
		JobURL:             fields.JobURL,
		Stage:              stage,
		GigListingID:       gigListingID,
		ClientName:         fields.ClientName,
		ClientCompany:      fields.ClientCompany,
		ClientLocation:     fields.ClientLocation,
		BudgetMin:          fields.BudgetMin,
		BudgetMax:          fields.BudgetMax,
		ContractType:       contractType,
		ProposalText:       fields.ProposalText,
		ProposalTemplateID: templateID,
		ContractValue:      fields.ContractValue,
		EstimatedHours:     fields.EstimatedHours,
		ActualHours:        fields.ActualHours,
		DeliveryDeadline:   fields.DeliveryDeadline,
		Notes:              fields.Notes,
	}, nil
}

// ValidatePatch checks the patchable enum and required fields up front so
// implementations reject before touching the store.
func ValidatePatch(patch OpportunityPatch) error {
	issues := []FieldIssue{}
	if patch.Stage != nil && !schemas.IsValidStage(*patch.Stage) {
		issues = append(issues, FieldIssue{Path: "stage", Message: "must be one of: " + strings.Join(schemas.OpportunityStages, ", ")})
	}
	if patch.ContractType != nil && !schemas.IsValidContractType(*patch.ContractType) {
		issues = append(issues, FieldIssue{Path: "contract_type", Message: "must be fixed or hourly"})
	}
	if patch.JobTitle != nil && strings.TrimSpace(*patch.JobTitle) == "" {
		issues = append(issues, FieldIssue{Path: "job_title", Message: "job title is required"})
	}

	_, pillarIssue := ParseOptionalRef("pillar_id", valueOrEmpty(patch.PillarID))
	_, gigIssue := ParseOptionalRef("gig_listing_id", valueOrEmpty(patch.GigListingID))
	_, templateIssue := ParseOptionalRef("proposal_template_id", valueOrEmpty(patch.ProposalTemplateID))
	for _, issue := range []*FieldIssue{pillarIssue, gigIssue, templateIssue} {
		if issue != nil {
			issues = append(issues, *issue)
		}
	}

	if len(issues) > 0 {
		return NewValidationError(issues...)
	}
	return nil
}

// ParseOptionalRef maps the empty string to absence and anything else to a
// valid object id.
func ParseOptionalRef(path string, value string) (bson.ObjectID, *FieldIssue) {
	if value == "" {
		return bson.ObjectID{}, nil
	}
	id, err := bson.ObjectIDFromHex(value)
	if err != nil {
		return bson.ObjectID{}, &FieldIssue{Path: path, Message: "must be a valid object id"}
	}
	return id, nil
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
