package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancehub/schemas"
	"freelancehub/store"
)

const platformHex = "64a000000000000000000001"

func create(t *testing.T, s *Store, tenant string, fields store.OpportunityCreate) *schemas.Opportunity {
	t.Helper()
	if fields.PlatformID == "" {
		fields.PlatformID = platformHex
	}
	if fields.JobTitle == "" {
		fields.JobTitle = "Some job"
	}
	created, err := s.Create(context.Background(), tenant, fields)
	require.NoError(t, err)
	return created
}

func TestCreateDefaults(t *testing.T) {
	s := New()

	created := create(t, s, "user-1", store.OpportunityCreate{JobTitle: "  Shopify theme  "})

	assert.Equal(t, "Shopify theme", created.JobTitle)
	assert.Equal(t, schemas.STAGE_DISCOVERED, created.Stage)
	assert.Equal(t, schemas.CONTRACT_TYPE_FIXED, created.ContractType)
	assert.Equal(t, "user-1", created.UserID)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateValidation(t *testing.T) {
	s := New()

	_, err := s.Create(context.Background(), "user-1", store.OpportunityCreate{})

	validationErr := &store.ValidationError{}
	require.True(t, errors.As(err, &validationErr))

	paths := []string{}
	for _, issue := range validationErr.Issues {
		paths = append(paths, issue.Path)
	}
	assert.Contains(t, paths, "platform_id")
	assert.Contains(t, paths, "job_title")
}

func TestCreateRejectsUnknownStageAndContractType(t *testing.T) {
	s := New()

	_, err := s.Create(context.Background(), "user-1", store.OpportunityCreate{
		PlatformID:   platformHex,
		JobTitle:     "Bad enums",
		Stage:        "negotiating",
		ContractType: "retainer",
	})

	validationErr := &store.ValidationError{}
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Issues, 2)
}

func TestCreateNormalizesEmptyReferences(t *testing.T) {
	s := New()

	created := create(t, s, "user-1", store.OpportunityCreate{
		JobTitle: "No pillar",
		PillarID: "",
	})

	assert.True(t, created.PillarID.IsZero())
}

func TestListNewestFirst(t *testing.T) {
	s := New()
	first := create(t, s, "user-1", store.OpportunityCreate{JobTitle: "First"})
	second := create(t, s, "user-1", store.OpportunityCreate{JobTitle: "Second"})
	third := create(t, s, "user-1", store.OpportunityCreate{JobTitle: "Third"})

	listed, total, err := s.List(context.Background(), "user-1", schemas.PipelineFilter{}, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	require.Len(t, listed, 3)
	assert.Equal(t, third.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)
	assert.Equal(t, first.ID, listed[2].ID)
}

func TestListPaginationClamps(t *testing.T) {
	s := New()
	for range 7 {
		create(t, s, "user-1", store.OpportunityCreate{})
	}

	// Absent values fall back to the defaults.
	listed, total, err := s.List(context.Background(), "user-1", schemas.PipelineFilter{}, -3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, listed, 7)

	// An explicit negative limit clamps to 1, not to the default.
	listed, _, err = s.List(context.Background(), "user-1", schemas.PipelineFilter{}, 1, -5)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	listed, _, err = s.List(context.Background(), "user-1", schemas.PipelineFilter{}, 2, 5)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	// A page past the end is empty, not an error.
	listed, total, err = s.List(context.Background(), "user-1", schemas.PipelineFilter{}, 99, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Empty(t, listed)
}

func TestListFilters(t *testing.T) {
	s := New()
	create(t, s, "user-1", store.OpportunityCreate{JobTitle: "React rewrite", Stage: schemas.STAGE_CONTRACTED})
	create(t, s, "user-1", store.OpportunityCreate{JobTitle: "Logo design", Stage: schemas.STAGE_DISCOVERED})

	listed, total, err := s.List(context.Background(), "user-1", schemas.PipelineFilter{Stage: schemas.STAGE_CONTRACTED}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listed, 1)
	assert.Equal(t, "React rewrite", listed[0].JobTitle)

	_, total, err = s.List(context.Background(), "user-1", schemas.PipelineFilter{Search: "react"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTenantIsolation(t *testing.T) {
	s := New()
	mine := create(t, s, "user-1", store.OpportunityCreate{JobTitle: "Mine"})
	create(t, s, "user-2", store.OpportunityCreate{JobTitle: "Theirs"})

	_, total, err := s.List(context.Background(), "user-1", schemas.PipelineFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Another tenant's id behaves exactly like a missing one.
	_, err = s.GetOne(context.Background(), "user-2", mine.ID.Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.UpdateStage(context.Background(), "user-2", mine.ID.Hex(), schemas.STAGE_LOST)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateStage(t *testing.T) {
	s := New()
	created := create(t, s, "user-1", store.OpportunityCreate{Stage: schemas.STAGE_COMPLETE})

	// Backwards moves are allowed; order is advisory only.
	updated, err := s.UpdateStage(context.Background(), "user-1", created.ID.Hex(), schemas.STAGE_DISCOVERED)
	require.NoError(t, err)
	assert.Equal(t, schemas.STAGE_DISCOVERED, updated.Stage)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateStageRejectsUnknownStage(t *testing.T) {
	s := New()
	created := create(t, s, "user-1", store.OpportunityCreate{})

	_, err := s.UpdateStage(context.Background(), "user-1", created.ID.Hex(), "archived")

	validationErr := &store.ValidationError{}
	require.True(t, errors.As(err, &validationErr))

	// A rejected update must not advance updated_at.
	current, err := s.GetOne(context.Background(), "user-1", created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, current.UpdatedAt)
}

func TestUpdateFields(t *testing.T) {
	s := New()
	created := create(t, s, "user-1", store.OpportunityCreate{
		JobTitle: "Initial",
		PillarID: "64a000000000000000000002",
	})

	title := "Renamed"
	clearPillar := ""
	budget := 1200.0
	updated, err := s.UpdateFields(context.Background(), "user-1", created.ID.Hex(), store.OpportunityPatch{
		JobTitle:  &title,
		PillarID:  &clearPillar,
		BudgetMax: &budget,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.JobTitle)
	assert.True(t, updated.PillarID.IsZero())
	require.NotNil(t, updated.BudgetMax)
	assert.Equal(t, 1200.0, *updated.BudgetMax)
	// Untouched fields survive.
	assert.Equal(t, created.PlatformID, updated.PlatformID)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateFieldsValidation(t *testing.T) {
	s := New()
	created := create(t, s, "user-1", store.OpportunityCreate{})

	blank := "   "
	_, err := s.UpdateFields(context.Background(), "user-1", created.ID.Hex(), store.OpportunityPatch{
		JobTitle: &blank,
	})

	validationErr := &store.ValidationError{}
	require.True(t, errors.As(err, &validationErr))

	badStage := "negotiating"
	_, err = s.UpdateFields(context.Background(), "user-1", created.ID.Hex(), store.OpportunityPatch{
		Stage: &badStage,
	})
	require.True(t, errors.As(err, &validationErr))
}

// Exercises List racing concurrent writers; meaningful under the race
// detector, which flags any listing read of a record a writer is mutating.
func TestListConcurrentWithWrites(t *testing.T) {
	s := New()
	created := create(t, s, "user-1", store.OpportunityCreate{JobTitle: "Contended"})

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		stages := []string{schemas.STAGE_PROPOSAL_SENT, schemas.STAGE_INTERVIEW, schemas.STAGE_CONTRACTED}
		for i := range 500 {
			_, err := s.UpdateStage(context.Background(), "user-1", created.ID.Hex(), stages[i%len(stages)])
			assert.NoError(t, err)
		}
		close(done)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			_, _, err := s.List(context.Background(), "user-1", schemas.PipelineFilter{Search: "contended"}, 1, 10)
			assert.NoError(t, err)
		}
	}()

	wg.Wait()
}

func TestUpdatedAtStrictlyIncreases(t *testing.T) {
	s := New()
	created := create(t, s, "user-1", store.OpportunityCreate{})

	previous := created.UpdatedAt
	for _, stage := range []string{schemas.STAGE_PROPOSAL_SENT, schemas.STAGE_INTERVIEW, schemas.STAGE_CONTRACTED} {
		updated, err := s.UpdateStage(context.Background(), "user-1", created.ID.Hex(), stage)
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(previous))
		previous = updated.UpdatedAt
	}
}
