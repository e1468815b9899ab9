package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"freelancehub/database"
	"freelancehub/middlewares"
	"freelancehub/pipeline"
	"freelancehub/schemas"
	"freelancehub/utils"
)

const summaryCacheTTL = 60 * time.Second

func summaryCacheKey(userID string) string {
	return "dashboard:summary:" + userID
}

func redisClient() *redis.Client {
	opts, err := redis.ParseURL(os.Getenv(utils.REDIS_URI))
	if err != nil {
		return nil
	}
	return redis.NewClient(opts)
}

// GetSummary derives the active pipeline value and per-stage counts from the
// tenant's full opportunity set. The result is cached per tenant for a short
// window; writes through this process drop the cache entry.
func GetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	rdb := redisClient()
	if rdb != nil {
		defer rdb.Close()
		if cached, err := rdb.Get(ctx, summaryCacheKey(user.ID)).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, nil, nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_OPPORTUNITIES)

	cursor, err := collection.Find(ctx, bson.D{{Key: "user_id", Value: user.ID}})
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_BUILD_DASHBOARD_SUMMARY)
		return
	}
	defer cursor.Close(ctx)

	opportunities := []schemas.Opportunity{}
	if err := cursor.All(ctx, &opportunities); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_BUILD_DASHBOARD_SUMMARY)
		return
	}

	summary := schemas.DashboardSummary{
		PipelineValue:      pipeline.PipelineValue(opportunities),
		StageCounts:        pipeline.StageCounts(opportunities),
		TotalOpportunities: int64(len(opportunities)),
	}

	payload, err := json.Marshal(schemas.ApiResponse{Data: summary})
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_BUILD_DASHBOARD_SUMMARY)
		return
	}

	if rdb != nil {
		if err := rdb.Set(ctx, summaryCacheKey(user.ID), payload, summaryCacheTTL).Err(); err != nil {
			utils.Logger.Warn("failed to cache dashboard summary", zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// InvalidateSummary drops the cached summary after any opportunity write in
// this process. Writes from other sources age out with the TTL.
func InvalidateSummary(ctx context.Context, userID string) {
	rdb := redisClient()
	if rdb == nil {
		return
	}
	defer rdb.Close()

	if err := rdb.Del(ctx, summaryCacheKey(userID)).Err(); err != nil {
		utils.Logger.Warn("failed to invalidate dashboard summary", zap.Error(err))
	}
}
