package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"freelancehub/schemas"
	"freelancehub/store"
)

func TestBuildBaseFilterTenantOnly(t *testing.T) {
	match := BuildBaseFilter("user-1", schemas.PipelineFilter{})

	require.Len(t, match, 1)
	assert.Equal(t, bson.E{Key: "user_id", Value: "user-1"}, match[0])
}

func TestBuildBaseFilterExactCriteria(t *testing.T) {
	match := BuildBaseFilter("user-1", schemas.PipelineFilter{
		Stage:        schemas.STAGE_CONTRACTED,
		ContractType: schemas.CONTRACT_TYPE_HOURLY,
	})

	assert.Contains(t, match, bson.E{Key: "stage", Value: schemas.STAGE_CONTRACTED})
	assert.Contains(t, match, bson.E{Key: "contract_type", Value: schemas.CONTRACT_TYPE_HOURLY})
}

func TestBuildBaseFilterSearchIsSanitizedAndQuoted(t *testing.T) {
	match := BuildBaseFilter("user-1", schemas.PipelineFilter{Search: "c+%+d"})

	var orClause bson.A
	for _, clause := range match {
		if clause.Key == "$or" {
			orClause = clause.Value.(bson.A)
		}
	}
	require.Len(t, orClause, 3)

	first := orClause[0].(bson.D)
	regex := first[0].Value.(bson.D)
	// The % is stripped before quoting; the + survives but is escaped.
	assert.Equal(t, bson.E{Key: "$regex", Value: `c\+\+d`}, regex[0])
	assert.Equal(t, bson.E{Key: "$options", Value: "i"}, regex[1])
}

func TestBuildBaseFilterEmptySearchAddsNoClause(t *testing.T) {
	match := BuildBaseFilter("user-1", schemas.PipelineFilter{Search: "%_."})

	for _, clause := range match {
		assert.NotEqual(t, "$or", clause.Key)
	}
}

func TestBuildPatchDocumentsSetAndUnset(t *testing.T) {
	title := "New title"
	clearPillar := ""
	templateHex := "64a000000000000000000009"
	budget := 300.0

	setDoc, unsetDoc := buildPatchDocuments(store.OpportunityPatch{
		JobTitle:           &title,
		PillarID:           &clearPillar,
		ProposalTemplateID: &templateHex,
		BudgetMin:          &budget,
	})

	templateID, err := bson.ObjectIDFromHex(templateHex)
	require.NoError(t, err)

	assert.Contains(t, setDoc, bson.E{Key: "job_title", Value: "New title"})
	assert.Contains(t, setDoc, bson.E{Key: "proposal_template_id", Value: templateID})
	assert.Contains(t, setDoc, bson.E{Key: "budget_min", Value: 300.0})

	// Clearing a reference unsets it rather than writing an empty string.
	assert.Equal(t, bson.D{{Key: "pillar_id", Value: ""}}, unsetDoc)
}

func TestBuildPatchDocumentsNilFieldsUntouched(t *testing.T) {
	setDoc, unsetDoc := buildPatchDocuments(store.OpportunityPatch{})

	assert.Empty(t, setDoc)
	assert.Empty(t, unsetDoc)
}
