// Package memstore is the in-memory OpportunityStore. It backs tests and
// local mirrors with the same contract the Mongo store honors: tenant
// scoping, pagination clamps, newest-first ordering and the create/update
// normalization rules.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"freelancehub/pipeline"
	"freelancehub/schemas"
	"freelancehub/store"
)

type record struct {
	opportunity schemas.Opportunity
	seq         int64
}

type Store struct {
	mu      sync.Mutex
	tenants map[string]map[string]*record
	seq     int64
}

func New() *Store {
	return &Store{
		tenants: make(map[string]map[string]*record),
	}
}

func (s *Store) List(ctx context.Context, tenant string, filter schemas.PipelineFilter, page, pageSize int64) ([]schemas.Opportunity, int64, error) {
	page, pageSize = store.ClampPage(page, pageSize)

	// Records are copied by value while the lock is held; concurrent writers
	// mutate rec.opportunity in place under the same lock.
	s.mu.Lock()
	records := make([]record, 0, len(s.tenants[tenant]))
	for _, rec := range s.tenants[tenant] {
		records = append(records, *rec)
	}
	s.mu.Unlock()

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.opportunity.CreatedAt.Equal(b.opportunity.CreatedAt) {
			return a.opportunity.CreatedAt.After(b.opportunity.CreatedAt)
		}
		return a.seq > b.seq
	})

	matched := []schemas.Opportunity{}
	for _, rec := range records {
		if pipeline.MatchesFilter(filter, rec.opportunity) {
			matched = append(matched, rec.opportunity)
		}
	}

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= total {
		return []schemas.Opportunity{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]schemas.Opportunity, end-start)
	copy(out, matched[start:end])
	return out, total, nil
}

func (s *Store) GetOne(ctx context.Context, tenant string, id string) (*schemas.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tenants[tenant][id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := rec.opportunity
	return &out, nil
}

func (s *Store) Create(ctx context.Context, tenant string, fields store.OpportunityCreate) (*schemas.Opportunity, error) {
	created, err := store.NormalizeCreate(tenant, fields)
	if err != nil {
		return nil, err
	}
	created.ID = bson.NewObjectID()

	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now

	s.mu.Lock()
	if s.tenants[tenant] == nil {
		s.tenants[tenant] = make(map[string]*record)
	}
	s.seq++
	s.tenants[tenant][created.ID.Hex()] = &record{opportunity: created, seq: s.seq}
	s.mu.Unlock()

	out := created
	return &out, nil
}

func (s *Store) UpdateStage(ctx context.Context, tenant string, id string, newStage string) (*schemas.Opportunity, error) {
	if !schemas.IsValidStage(newStage) {
		return nil, store.NewValidationError(store.FieldIssue{
			Path:    "stage",
			Message: "must be one of: " + strings.Join(schemas.OpportunityStages, ", "),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tenants[tenant][id]
	if !ok {
		return nil, store.ErrNotFound
	}

	rec.opportunity.Stage = newStage
	rec.opportunity.UpdatedAt = advance(rec.opportunity.UpdatedAt)

	out := rec.opportunity
	return &out, nil
}

func (s *Store) UpdateFields(ctx context.Context, tenant string, id string, patch store.OpportunityPatch) (*schemas.Opportunity, error) {
	if err := store.ValidatePatch(patch); err != nil {
		return nil, err
	}

	pillarID, _ := parseOptionalRef(patch.PillarID)
	gigID, _ := parseOptionalRef(patch.GigListingID)
	templateID, _ := parseOptionalRef(patch.ProposalTemplateID)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tenants[tenant][id]
	if !ok {
		return nil, store.ErrNotFound
	}

	opp := &rec.opportunity
	if patch.PillarID != nil {
		opp.PillarID = pillarID
	}
	if patch.JobTitle != nil {
		opp.JobTitle = strings.TrimSpace(*patch.JobTitle)
	}
	if patch.JobDescription != nil {
		opp.JobDescription = *patch.JobDescription
	}
	if patch.JobURL != nil {
		opp.JobURL = *patch.JobURL
	}
	if patch.Stage != nil {
		opp.Stage = *patch.Stage
	}
	if patch.GigListingID != nil {
		opp.GigListingID = gigID
	}
	if patch.ClientName != nil {
		opp.ClientName = *patch.ClientName
	}
	if patch.ClientCompany != nil {
		opp.ClientCompany = *patch.ClientCompany
	}
	if patch.ClientLocation != nil {
		opp.ClientLocation = *patch.ClientLocation
	}
	if patch.BudgetMin != nil {
		opp.BudgetMin = patch.BudgetMin
	}
	if patch.BudgetMax != nil {
		opp.BudgetMax = patch.BudgetMax
	}
	if patch.ContractType != nil {
		opp.ContractType = *patch.ContractType
	}
	if patch.ProposalText != nil {
		opp.ProposalText = *patch.ProposalText
	}
	if patch.ProposalTemplateID != nil {
		opp.ProposalTemplateID = templateID
	}
	if patch.ContractValue != nil {
		opp.ContractValue = patch.ContractValue
	}
	if patch.EstimatedHours != nil {
		opp.EstimatedHours = patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		opp.ActualHours = patch.ActualHours
	}
	if patch.DeliveryDeadline != nil {
		opp.DeliveryDeadline = patch.DeliveryDeadline
	}
	if patch.Notes != nil {
		opp.Notes = *patch.Notes
	}

	opp.UpdatedAt = advance(opp.UpdatedAt)

	out := *opp
	return &out, nil
}

func parseOptionalRef(value *string) (bson.ObjectID, bool) {
	if value == nil || *value == "" {
		return bson.ObjectID{}, false
	}
	id, err := bson.ObjectIDFromHex(*value)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return id, true
}

// advance keeps updated_at strictly increasing even when the clock has not
// ticked between two mutations of the same record.
func advance(previous time.Time) time.Time {
	now := time.Now()
	if !now.After(previous) {
		return previous.Add(time.Millisecond)
	}
	return now
}
