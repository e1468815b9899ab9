package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancehub/pipeline"
	"freelancehub/schemas"
	"freelancehub/store"
	"freelancehub/store/memstore"
)

// rejectingStore lets a test force the durable stage write to fail while
// every other operation behaves normally.
type rejectingStore struct {
	*memstore.Store
	rejectStage bool
	rejectList  bool
}

func (s *rejectingStore) UpdateStage(ctx context.Context, tenant string, id string, newStage string) (*schemas.Opportunity, error) {
	if s.rejectStage {
		return nil, store.Internal("simulated write failure", nil)
	}
	return s.Store.UpdateStage(ctx, tenant, id, newStage)
}

func (s *rejectingStore) List(ctx context.Context, tenant string, filter schemas.PipelineFilter, page, pageSize int64) ([]schemas.Opportunity, int64, error) {
	if s.rejectList {
		return nil, 0, store.Internal("simulated read failure", nil)
	}
	return s.Store.List(ctx, tenant, filter, page, pageSize)
}

func seedOpportunity(t *testing.T, st store.OpportunityStore, tenant string, title string) *schemas.Opportunity {
	t.Helper()
	created, err := st.Create(context.Background(), tenant, store.OpportunityCreate{
		PlatformID: "64a000000000000000000001",
		JobTitle:   title,
	})
	require.NoError(t, err)
	return created
}

func TestMirrorSyncLoadsTenantSet(t *testing.T) {
	st := memstore.New()
	seedOpportunity(t, st, "user-1", "First")
	seedOpportunity(t, st, "user-1", "Second")
	seedOpportunity(t, st, "user-2", "Other tenant")

	mirror := pipeline.NewMirror(st, "user-1")
	require.NoError(t, mirror.Sync(context.Background()))

	assert.Len(t, mirror.Snapshot(), 2)
}

func TestMirrorSetStageIsImmediatelyVisible(t *testing.T) {
	st := memstore.New()
	created := seedOpportunity(t, st, "user-1", "Optimistic move")

	mirror := pipeline.NewMirror(st, "user-1")
	require.NoError(t, mirror.Sync(context.Background()))

	result := mirror.SetStage(context.Background(), created.ID.Hex(), schemas.STAGE_CONTRACTED)

	// The local view mutates before the durable write resolves.
	local, ok := mirror.Get(created.ID.Hex())
	require.True(t, ok)
	assert.Equal(t, schemas.STAGE_CONTRACTED, local.Stage)

	require.NoError(t, <-result)

	durable, err := st.GetOne(context.Background(), "user-1", created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, schemas.STAGE_CONTRACTED, durable.Stage)
}

func TestMirrorSetStageRollsBackOnRejectedWrite(t *testing.T) {
	inner := memstore.New()
	st := &rejectingStore{Store: inner}
	created := seedOpportunity(t, st, "user-1", "Doomed move")

	mirror := pipeline.NewMirror(st, "user-1")
	require.NoError(t, mirror.Sync(context.Background()))

	st.rejectStage = true
	result := mirror.SetStage(context.Background(), created.ID.Hex(), schemas.STAGE_LOST)

	err := <-result
	require.Error(t, err)

	storeErr := &store.StoreError{}
	assert.True(t, errors.As(err, &storeErr))

	// The rejected mutation is gone after the forced resync.
	local, ok := mirror.Get(created.ID.Hex())
	require.True(t, ok)
	assert.Equal(t, schemas.STAGE_DISCOVERED, local.Stage)
}

func TestMirrorSetStageReportsBothFailures(t *testing.T) {
	inner := memstore.New()
	st := &rejectingStore{Store: inner}
	created := seedOpportunity(t, st, "user-1", "Doubly doomed")

	mirror := pipeline.NewMirror(st, "user-1")
	require.NoError(t, mirror.Sync(context.Background()))

	st.rejectStage = true
	st.rejectList = true
	err := <-mirror.SetStage(context.Background(), created.ID.Hex(), schemas.STAGE_LOST)

	// Even when the resync also fails, the original rejection survives.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated write failure")
	assert.Contains(t, err.Error(), "simulated read failure")
}

func TestMirrorSetStageRejectsUnknownStage(t *testing.T) {
	st := memstore.New()
	created := seedOpportunity(t, st, "user-1", "Bad stage")

	mirror := pipeline.NewMirror(st, "user-1")
	require.NoError(t, mirror.Sync(context.Background()))

	err := <-mirror.SetStage(context.Background(), created.ID.Hex(), "negotiating")

	validationErr := &store.ValidationError{}
	require.True(t, errors.As(err, &validationErr))

	// The local copy never mutated.
	local, _ := mirror.Get(created.ID.Hex())
	assert.Equal(t, schemas.STAGE_DISCOVERED, local.Stage)
}

func TestMirrorSetStageUnknownId(t *testing.T) {
	st := memstore.New()
	mirror := pipeline.NewMirror(st, "user-1")
	require.NoError(t, mirror.Sync(context.Background()))

	err := <-mirror.SetStage(context.Background(), "64a0000000000000000000ff", schemas.STAGE_LOST)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
