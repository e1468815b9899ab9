package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageVocabulary(t *testing.T) {
	assert.Len(t, OpportunityStages, 9)

	for _, stage := range OpportunityStages {
		assert.True(t, IsValidStage(stage), "stage %q should be valid", stage)
	}

	assert.False(t, IsValidStage(""))
	assert.False(t, IsValidStage("negotiating"))
	assert.False(t, IsValidStage("Discovered"))
}

func TestActiveStages(t *testing.T) {
	active := map[string]bool{
		STAGE_CONTRACTED:  true,
		STAGE_IN_PROGRESS: true,
		STAGE_DELIVERED:   true,
	}

	for _, stage := range OpportunityStages {
		assert.Equal(t, active[stage], IsActiveStage(stage), "stage %q", stage)
	}
}

func TestContractTypes(t *testing.T) {
	assert.True(t, IsValidContractType(CONTRACT_TYPE_FIXED))
	assert.True(t, IsValidContractType(CONTRACT_TYPE_HOURLY))
	assert.False(t, IsValidContractType(""))
	assert.False(t, IsValidContractType("retainer"))
}
