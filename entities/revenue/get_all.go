package revenue

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"freelancehub/database"
	"freelancehub/middlewares"
	"freelancehub/schemas"
	"freelancehub/store"
	"freelancehub/utils"
)

// GetAll lists revenue entries newest first, optionally bounded by
// from/to dates (YYYY-MM-DD, inclusive).
func GetAll(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
		return
	}

	query := r.URL.Query()

	page, _ := strconv.ParseInt(query.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)
	page, limit = store.ClampPage(page, limit)

	filter := bson.D{{Key: "user_id", Value: user.ID}}

	dateRange := bson.D{}
	if from := query.Get("from"); utils.IsValidDate(from) {
		dateRange = append(dateRange, bson.E{Key: "$gte", Value: from})
	}
	if to := query.Get("to"); utils.IsValidDate(to) {
		dateRange = append(dateRange, bson.E{Key: "$lte", Value: to})
	}
	if len(dateRange) > 0 {
		filter = append(filter, bson.E{Key: "received_date", Value: dateRange})
	}

	if entryType := query.Get("entry_type"); entryType != "" {
		filter = append(filter, bson.E{Key: "entry_type", Value: entryType})
	}

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

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_REVENUE_IN_MONGODB)
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "received_date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_REVENUE_IN_MONGODB)
		return
	}
	defer cursor.Close(ctx)

	entries := []schemas.RevenueEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_REVENUE_IN_MONGODB)
		return
	}

	totalPages := (total + limit - 1) / limit

	utils.SendPaginatedResponse(w, http.StatusOK, entries, schemas.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}
