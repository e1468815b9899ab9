package pipeline

import (
	"context"
	"errors"
	"sync"

	"freelancehub/schemas"
	"freelancehub/store"
)

// Mirror is the session-owned in-memory copy of one tenant's opportunity
// board. It applies stage changes optimistically: the local copy mutates
// before the durable write resolves, and a failed write abandons the whole
// local view and refetches truth from the store. A mirror is never shared
// across sessions; the durable store is the only shared state.
type Mirror struct {
	store  store.OpportunityStore
	tenant string

	mu      sync.Mutex
	records []schemas.Opportunity
}

func NewMirror(st store.OpportunityStore, tenant string) *Mirror {
	return &Mirror{
		store:  st,
		tenant: tenant,
	}
}

// Sync replaces the local view with the store's current opportunity set,
// paging through the full listing newest first.
func (m *Mirror) Sync(ctx context.Context) error {
	all := []schemas.Opportunity{}
	page := int64(1)

	for {
		batch, total, err := m.store.List(ctx, m.tenant, schemas.PipelineFilter{}, page, store.PAGE_SIZE_MAX)
		if err != nil {
			return err
		}
		all = append(all, batch...)
		if int64(len(all)) >= total || len(batch) == 0 {
			break
		}
		page++
	}

	m.mu.Lock()
	m.records = all
	m.mu.Unlock()

	return nil
}

// Snapshot returns a copy of the local view in store order.
func (m *Mirror) Snapshot() []schemas.Opportunity {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]schemas.Opportunity, len(m.records))
	copy(out, m.records)
	return out
}

func (m *Mirror) Get(id string) (schemas.Opportunity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range m.records {
		if record.ID.Hex() == id {
			return record, true
		}
	}
	return schemas.Opportunity{}, false
}

// SetStage applies the stage change to the local copy and returns
// immediately; the durable write runs in the background and reports through
// the returned channel. On a rejected write the local view is resynchronized
// from the store before the error is delivered, so the mirror never keeps a
// mutation the store refused.
func (m *Mirror) SetStage(ctx context.Context, id string, newStage string) <-chan error {
	result := make(chan error, 1)

	if !schemas.IsValidStage(newStage) {
		result <- store.NewValidationError(store.FieldIssue{
			Path:    "stage",
			Message: "must be one of the pipeline stages",
		})
		return result
	}

	m.mu.Lock()
	found := false
	for i := range m.records {
		if m.records[i].ID.Hex() == id {
			m.records[i].Stage = newStage
			found = true
			break
		}
	}
	m.mu.Unlock()

	if !found {
		result <- store.ErrNotFound
		return result
	}

	go func() {
		updated, err := m.store.UpdateStage(ctx, m.tenant, id, newStage)
		if err != nil {
			// The optimistic value is abandoned wholesale: after any
			// rejected write the entire local view is suspect.
			if syncErr := m.Sync(ctx); syncErr != nil {
				result <- errors.Join(err, syncErr)
				return
			}
			result <- err
			return
		}

		// The stage already matches; only server-computed fields merge back.
		m.mu.Lock()
		for i := range m.records {
			if m.records[i].ID.Hex() == id {
				m.records[i].UpdatedAt = updated.UpdatedAt
				break
			}
		}
		m.mu.Unlock()

		result <- nil
	}()

	return result
}
