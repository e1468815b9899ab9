package metrics

import (
	"context"
	"net/http"
	"os"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"freelancehub/database"
	"freelancehub/middlewares"
	"freelancehub/schemas"
	"freelancehub/utils"
)

// GetAll returns the caller's daily metrics for the requested window, oldest
// first. Without explicit bounds it covers the last 30 days.
func GetAll(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
		return
	}

	query := r.URL.Query()
	start, end := utils.DateRangeOrDefault(query.Get("from"), query.Get("to"), 30)

	filter := bson.D{
		{Key: "user_id", Value: user.ID},
		{Key: "date", Value: bson.D{
			{Key: "$gte", Value: start.Format(utils.DATE_LAYOUT)},
			{Key: "$lte", Value: end.Format(utils.DATE_LAYOUT)},
		}},
	}

	if platformID, err := bson.ObjectIDFromHex(query.Get("platform")); err == nil {
		filter = append(filter, bson.E{Key: "platform_id", Value: platformID})
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

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_DAILY_METRICS)

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_METRICS_IN_MONGODB)
		return
	}
	defer cursor.Close(ctx)

	dailyMetrics := []schemas.DailyMetric{}
	if err := cursor.All(ctx, &dailyMetrics); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_METRICS_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, dailyMetrics, nil, 0)
}
