package revenue

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"freelancehub/database"
	"freelancehub/middlewares"
	"freelancehub/schemas"
	"freelancehub/utils"
)

func CreateOne(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
		return
	}

	entry := schemas.RevenueEntry{}
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.REVENUE_INVALID_REQUEST_DATA)
		return
	}

	if entry.Amount <= 0 {
		utils.SendResponse(w, http.StatusBadRequest, nil, "amount must be greater than zero", 0)
		return
	}
	if !utils.IsValidDate(entry.ReceivedDate) {
		utils.SendResponse(w, http.StatusBadRequest, nil, "received_date must be a valid date (YYYY-MM-DD)", 0)
		return
	}

	if entry.EntryType == "" {
		entry.EntryType = schemas.REVENUE_ENTRY_TYPE_PAYMENT
	}
	if entry.Currency == "" {
		entry.Currency = "USD"
	}

	entry.ID = bson.NewObjectID()
	entry.UserID = user.ID
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt

	ctx, cancel := context.WithTimeout(context.Background(), database.MONGO_TIMEOUT)
	defer cancel()

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

	utils.SendResponse(w, http.StatusCreated, entry, nil, 0)
}
