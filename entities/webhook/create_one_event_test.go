package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"freelancehub/middlewares"
	"freelancehub/schemas"
	"freelancehub/store"
	"freelancehub/store/memstore"
)

const automationTenant = "automation-user"

func newWebhookServer(t *testing.T, st store.OpportunityStore) http.Handler {
	t.Helper()
	t.Setenv("AUTOMATION_API_KEY", "secret-key")
	t.Setenv("AUTOMATION_USER_ID", automationTenant)
	return middlewares.AutomationKey(CreateOneEvent(st))
}

func postEvent(handler http.Handler, apiKey, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhook/automation", strings.NewReader(body))
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestWebhookRejectsMissingKey(t *testing.T) {
	handler := newWebhookServer(t, memstore.New())

	recorder := postEvent(handler, "", `{"type":"stage_change","payload":{}}`)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestWebhookRejectsWrongKey(t *testing.T) {
	handler := newWebhookServer(t, memstore.New())

	recorder := postEvent(handler, "wrong-key", `{"type":"stage_change","payload":{}}`)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestWebhookRejectsMalformedEnvelope(t *testing.T) {
	handler := newWebhookServer(t, memstore.New())

	recorder := postEvent(handler, "secret-key", `{not json`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookRejectsUnknownEventType(t *testing.T) {
	handler := newWebhookServer(t, memstore.New())

	recorder := postEvent(handler, "secret-key", `{"type":"invoice_paid","payload":{}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	response := schemas.ApiResponse{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "invoice_paid")
}

func TestWebhookRejectsMissingPayload(t *testing.T) {
	handler := newWebhookServer(t, memstore.New())

	recorder := postEvent(handler, "secret-key", `{"type":"stage_change"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookRevenueEntryRejectsMalformedReference(t *testing.T) {
	handler := newWebhookServer(t, memstore.New())

	recorder := postEvent(handler, "secret-key",
		`{"type":"revenue_entry","payload":{"amount":100,"received_date":"2026-08-01","platform_id":"not-hex"}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	response := schemas.ApiResponse{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "platform_id")
}

func TestWebhookRevenueEntryRejectsBadAmount(t *testing.T) {
	handler := newWebhookServer(t, memstore.New())

	recorder := postEvent(handler, "secret-key",
		`{"type":"revenue_entry","payload":{"amount":-5,"received_date":"2026-08-01"}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookMetricUpdateRejectsMalformedPlatform(t *testing.T) {
	handler := newWebhookServer(t, memstore.New())

	recorder := postEvent(handler, "secret-key",
		`{"type":"metric_update","payload":{"date":"2026-08-01","platform_id":"not-hex","profile_views":3}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	response := schemas.ApiResponse{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "platform_id")
}

func TestBuildRevenueEntryDefaults(t *testing.T) {
	amount := 250.0
	now := time.Now()

	entry, err := buildRevenueEntry(automationTenant, schemas.RevenueEntryPayload{
		Amount:       &amount,
		ReceivedDate: "2026-08-01",
		PlatformID:   "64a000000000000000000001",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, automationTenant, entry.UserID)
	assert.Equal(t, 250.0, entry.Amount)
	assert.Equal(t, schemas.REVENUE_ENTRY_TYPE_PAYMENT, entry.EntryType)
	assert.Equal(t, "USD", entry.Currency)
	assert.Equal(t, "64a000000000000000000001", entry.PlatformID.Hex())
	assert.True(t, entry.PillarID.IsZero())
	assert.Equal(t, now, entry.CreatedAt)
	assert.Equal(t, now, entry.UpdatedAt)
}

func TestBuildMetricUpsertKeying(t *testing.T) {
	views := int64(12)
	now := time.Now()

	// With a platform, the upsert is keyed by (user, date, platform id).
	platformID, err := bson.ObjectIDFromHex("64a000000000000000000001")
	require.NoError(t, err)
	filter, update, err := buildMetricUpsert(automationTenant, schemas.MetricUpdatePayload{
		Date:         "2026-08-01",
		PlatformID:   platformID.Hex(),
		ProfileViews: &views,
	}, now)
	require.NoError(t, err)
	assert.Contains(t, filter, bson.E{Key: "platform_id", Value: platformID})

	setDoc := update[0].Value.(bson.D)
	assert.Contains(t, setDoc, bson.E{Key: "profile_views", Value: int64(12)})

	// Without one, the filter pins the platform-less row so it cannot
	// overwrite a platform-scoped metric for the same date.
	filter, _, err = buildMetricUpsert(automationTenant, schemas.MetricUpdatePayload{
		Date:         "2026-08-01",
		ProfileViews: &views,
	}, now)
	require.NoError(t, err)
	assert.Contains(t, filter, bson.E{
		Key:   "platform_id",
		Value: bson.D{{Key: "$exists", Value: false}},
	})
}

func TestWebhookStageChangeUnknownOpportunity(t *testing.T) {
	handler := newWebhookServer(t, memstore.New())

	recorder := postEvent(handler, "secret-key",
		`{"type":"stage_change","payload":{"opportunity_id":"64a0000000000000000000ff","new_stage":"contracted"}}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestWebhookStageChangeInvalidStage(t *testing.T) {
	st := memstore.New()
	created, err := st.Create(context.Background(), automationTenant, store.OpportunityCreate{
		PlatformID: "64a000000000000000000001",
		JobTitle:   "Automated deal",
	})
	require.NoError(t, err)

	handler := newWebhookServer(t, st)

	recorder := postEvent(handler, "secret-key",
		`{"type":"stage_change","payload":{"opportunity_id":"`+created.ID.Hex()+`","new_stage":"negotiating"}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// The rejection names the whole vocabulary.
	response := schemas.ApiResponse{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	message, ok := response.Error.(string)
	require.True(t, ok)
	for _, stage := range schemas.OpportunityStages {
		assert.Contains(t, message, stage)
	}
}

func TestWebhookStageChangeApplies(t *testing.T) {
	st := memstore.New()
	created, err := st.Create(context.Background(), automationTenant, store.OpportunityCreate{
		PlatformID: "64a000000000000000000001",
		JobTitle:   "Automated deal",
	})
	require.NoError(t, err)

	handler := newWebhookServer(t, st)

	recorder := postEvent(handler, "secret-key",
		`{"type":"stage_change","payload":{"opportunity_id":"`+created.ID.Hex()+`","new_stage":"contracted"}}`)

	assert.Equal(t, http.StatusOK, recorder.Code)

	response := schemas.ApiResponse{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	data, ok := response.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["receipt_id"])
	assert.Equal(t, schemas.WEBHOOK_EVENT_STAGE_CHANGE, data["type"])

	updated, err := st.GetOne(context.Background(), automationTenant, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, schemas.STAGE_CONTRACTED, updated.Stage)
}
