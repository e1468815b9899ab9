package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"freelancehub/schemas"
)

func value(v float64) *float64 {
	return &v
}

func TestPipelineValueCountsActiveStagesOnly(t *testing.T) {
	opportunities := []schemas.Opportunity{
		{Stage: schemas.STAGE_CONTRACTED, ContractValue: value(1000)},
		{Stage: schemas.STAGE_IN_PROGRESS, ContractValue: value(2500)},
		{Stage: schemas.STAGE_DELIVERED, ContractValue: value(500)},
		{Stage: schemas.STAGE_COMPLETE, ContractValue: value(9999)},
		{Stage: schemas.STAGE_LOST, ContractValue: value(9999)},
		{Stage: schemas.STAGE_DISCOVERED, ContractValue: value(9999)},
	}

	assert.Equal(t, 4000.0, PipelineValue(opportunities))
}

func TestPipelineValueMissingContractValue(t *testing.T) {
	opportunities := []schemas.Opportunity{
		{Stage: schemas.STAGE_CONTRACTED},
		{Stage: schemas.STAGE_IN_PROGRESS, ContractValue: value(750)},
	}

	assert.Equal(t, 750.0, PipelineValue(opportunities))
}

func TestPipelineValueEmpty(t *testing.T) {
	assert.Equal(t, 0.0, PipelineValue(nil))
}

func TestStageCountsIncludesEmptyStages(t *testing.T) {
	counts := StageCounts([]schemas.Opportunity{
		{Stage: schemas.STAGE_DISCOVERED},
		{Stage: schemas.STAGE_DISCOVERED},
		{Stage: schemas.STAGE_LOST},
	})

	assert.Len(t, counts, len(schemas.OpportunityStages))
	assert.Equal(t, int64(2), counts[schemas.STAGE_DISCOVERED])
	assert.Equal(t, int64(1), counts[schemas.STAGE_LOST])
	assert.Equal(t, int64(0), counts[schemas.STAGE_INTERVIEW])
	assert.Equal(t, int64(0), counts[schemas.STAGE_COMPLETE])
}
