package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"freelancehub/database"
	"freelancehub/entities/dashboard"
	"freelancehub/entities/opportunities"
	"freelancehub/schemas"
	"freelancehub/store"
	"freelancehub/utils"
)

type eventReceipt struct {
	ReceiptID string `json:"receipt_id"`
	Type      string `json:"type"`
}

// CreateOneEvent ingests one event from the automation system. The raw
// envelope is archived before dispatch so a failed event can be replayed by
// hand. Events write as the workspace owner configured in AUTOMATION_USER_ID.
func CreateOneEvent(st store.OpportunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event := schemas.WebhookEvent{}
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.WEBHOOK_INVALID_REQUEST_DATA)
			return
		}

		switch event.Type {
		case schemas.WEBHOOK_EVENT_REVENUE_ENTRY, schemas.WEBHOOK_EVENT_METRIC_UPDATE, schemas.WEBHOOK_EVENT_STAGE_CHANGE:
		default:
			utils.SendResponse(w, http.StatusBadRequest, nil, "unknown event type: "+event.Type, 0)
			return
		}

		if len(event.Payload) == 0 {
			utils.SendResponse(w, http.StatusBadRequest, nil, "payload is required", 0)
			return
		}

		tenant := os.Getenv(utils.AUTOMATION_USER_ID)

		ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
		defer cancel()

		receipt := eventReceipt{
			ReceiptID: uuid.NewString(),
			Type:      event.Type,
		}

		archiveEvent(ctx, receipt.ReceiptID, tenant, event)

		switch event.Type {
		case schemas.WEBHOOK_EVENT_REVENUE_ENTRY:
			handleRevenueEntry(ctx, w, tenant, event.Payload, receipt)
		case schemas.WEBHOOK_EVENT_METRIC_UPDATE:
			handleMetricUpdate(ctx, w, tenant, event.Payload, receipt)
		case schemas.WEBHOOK_EVENT_STAGE_CHANGE:
			handleStageChange(ctx, w, st, tenant, event.Payload, receipt)
		}
	}
}

// archiveEvent stores the raw envelope for auditing. Best effort: losing the
// audit copy must not reject an otherwise valid event.
func archiveEvent(ctx context.Context, receiptID, tenant string, event schemas.WebhookEvent) {
	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		utils.Logger.Warn("failed to archive automation event", zap.Error(err))
		return
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_AUTOMATION_EVENTS)

	document := bson.D{
		{Key: "receipt_id", Value: receiptID},
		{Key: "user_id", Value: tenant},
		{Key: "type", Value: event.Type},
		{Key: "payload", Value: string(event.Payload)},
		{Key: "received_at", Value: time.Now()},
	}

	if _, err := collection.InsertOne(ctx, document); err != nil {
		utils.Logger.Warn("failed to archive automation event",
			zap.String("receipt_id", receiptID), zap.Error(err))
	}
}

// buildRevenueEntry validates the payload and produces the record to insert.
// Optional references must be absent or valid hex; a malformed id rejects the
// whole event rather than being dropped.
func buildRevenueEntry(tenant string, data schemas.RevenueEntryPayload, now time.Time) (schemas.RevenueEntry, error) {
	if data.Amount == nil || *data.Amount <= 0 {
		return schemas.RevenueEntry{}, errors.New("amount must be greater than zero")
	}
	if !utils.IsValidDate(data.ReceivedDate) {
		return schemas.RevenueEntry{}, errors.New("received_date must be a valid date (YYYY-MM-DD)")
	}

	entry := schemas.RevenueEntry{
		ID:           bson.NewObjectID(),
		UserID:       tenant,
		Amount:       *data.Amount,
		Currency:     data.Currency,
		EntryType:    data.EntryType,
		ReceivedDate: data.ReceivedDate,
		Notes:        data.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if data.FeeAmount != nil {
		entry.FeeAmount = *data.FeeAmount
	}
	if entry.EntryType == "" {
		entry.EntryType = schemas.REVENUE_ENTRY_TYPE_PAYMENT
	}
	if entry.Currency == "" {
		entry.Currency = "USD"
	}

	refs := []struct {
		path  string
		value string
		out   *bson.ObjectID
	}{
		{"platform_id", data.PlatformID, &entry.PlatformID},
		{"pillar_id", data.PillarID, &entry.PillarID},
		{"opportunity_id", data.OpportunityID, &entry.OpportunityID},
	}
	for _, ref := range refs {
		if ref.value == "" {
			continue
		}
		id, err := bson.ObjectIDFromHex(ref.value)
		if err != nil {
			return schemas.RevenueEntry{}, errors.New(ref.path + " must be a valid object id")
		}
		*ref.out = id
	}

	return entry, nil
}

func handleRevenueEntry(ctx context.Context, w http.ResponseWriter, tenant string, payload json.RawMessage, receipt eventReceipt) {
	data := schemas.RevenueEntryPayload{}
	if err := json.Unmarshal(payload, &data); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.WEBHOOK_INVALID_REQUEST_DATA)
		return
	}

	entry, err := buildRevenueEntry(tenant, data, time.Now())
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, err.Error(), 0)
		return
	}

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, nil, nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_REVENUE_ENTRIES)

	if _, err := collection.InsertOne(ctx, entry); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_INSERT_REVENUE_TO_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, receipt, nil, 0)
}

// buildMetricUpsert produces the upsert keyed by (user, date, platform). A
// payload without a platform targets the platform-less row for that date, so
// it can never overwrite a platform-scoped metric; a malformed platform id
// rejects the event.
func buildMetricUpsert(tenant string, data schemas.MetricUpdatePayload, now time.Time) (bson.D, bson.D, error) {
	if !utils.IsValidDate(data.Date) {
		return nil, nil, errors.New("date must be a valid date (YYYY-MM-DD)")
	}

	filter := bson.D{
		{Key: "user_id", Value: tenant},
		{Key: "date", Value: data.Date},
	}
	if data.PlatformID == "" {
		filter = append(filter, bson.E{Key: "platform_id", Value: bson.D{{Key: "$exists", Value: false}}})
	} else {
		id, err := bson.ObjectIDFromHex(data.PlatformID)
		if err != nil {
			return nil, nil, errors.New("platform_id must be a valid object id")
		}
		filter = append(filter, bson.E{Key: "platform_id", Value: id})
	}

	setDoc := bson.D{{Key: "updated_at", Value: now}}
	if data.ProfileViews != nil {
		setDoc = append(setDoc, bson.E{Key: "profile_views", Value: *data.ProfileViews})
	}
	if data.ProposalsSent != nil {
		setDoc = append(setDoc, bson.E{Key: "proposals_sent", Value: *data.ProposalsSent})
	}
	if data.Interviews != nil {
		setDoc = append(setDoc, bson.E{Key: "interviews", Value: *data.Interviews})
	}
	if data.Invites != nil {
		setDoc = append(setDoc, bson.E{Key: "invites", Value: *data.Invites})
	}

	update := bson.D{
		{Key: "$set", Value: setDoc},
		{Key: "$setOnInsert", Value: bson.D{{Key: "created_at", Value: now}}},
	}

	return filter, update, nil
}

func handleMetricUpdate(ctx context.Context, w http.ResponseWriter, tenant string, payload json.RawMessage, receipt eventReceipt) {
	data := schemas.MetricUpdatePayload{}
	if err := json.Unmarshal(payload, &data); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.WEBHOOK_INVALID_REQUEST_DATA)
		return
	}

	filter, update, err := buildMetricUpsert(tenant, data, time.Now())
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, err.Error(), 0)
		return
	}

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, nil, nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_DAILY_METRICS)

	updateOptions := options.UpdateOne().SetUpsert(true)
	if _, err := collection.UpdateOne(ctx, filter, update, updateOptions); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_UPSERT_METRIC_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, receipt, nil, 0)
}

func handleStageChange(ctx context.Context, w http.ResponseWriter, st store.OpportunityStore, tenant string, payload json.RawMessage, receipt eventReceipt) {
	data := schemas.StageChangePayload{}
	if err := json.Unmarshal(payload, &data); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.WEBHOOK_INVALID_REQUEST_DATA)
		return
	}

	if data.OpportunityID == "" {
		utils.SendResponse(w, http.StatusBadRequest, nil, "opportunity_id is required", 0)
		return
	}
	if !schemas.IsValidStage(data.NewStage) {
		utils.SendResponse(w, http.StatusBadRequest, nil,
			"new_stage must be one of: "+strings.Join(schemas.OpportunityStages, ", "), 0)
		return
	}

	opportunity, err := st.UpdateStage(ctx, tenant, data.OpportunityID, data.NewStage)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.SendResponse(w, http.StatusNotFound, nil, "opportunity not found", 0)
			return
		}

		validationErr := &store.ValidationError{}
		if errors.As(err, &validationErr) {
			utils.SendResponse(w, http.StatusBadRequest, nil, validationErr.Issues, 0)
			return
		}

		utils.Logger.Error("automation stage change failed",
			zap.String("receipt_id", receipt.ReceiptID), zap.Error(err))
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_UPDATE_OPPORTUNITY_IN_MONGODB)
		return
	}

	opportunities.BroadcastBoardUpdate(opportunities.BoardMessage{
		Action:      opportunities.BOARD_ACTION_STAGE_CHANGED,
		Opportunity: opportunity,
		Details:     data.NewStage,
	})
	dashboard.InvalidateSummary(ctx, tenant)

	utils.SendResponse(w, http.StatusOK, receipt, nil, 0)
}
