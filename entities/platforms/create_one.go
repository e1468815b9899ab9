package platforms

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
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

	platform := schemas.Platform{}
	if err := json.NewDecoder(r.Body).Decode(&platform); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.PLATFORMS_INVALID_REQUEST_DATA)
		return
	}

	platform.Name = strings.TrimSpace(platform.Name)
	if platform.Name == "" {
		utils.SendResponse(w, http.StatusBadRequest, nil, "name is required", 0)
		return
	}

	if platform.FeePercent != nil && (*platform.FeePercent < 0 || *platform.FeePercent > 100) {
		utils.SendResponse(w, http.StatusBadRequest, nil, "fee_percent must be between 0 and 100", 0)
		return
	}

	platform.ID = bson.NewObjectID()
	platform.UserID = user.ID
	platform.CreatedAt = time.Now()
	platform.UpdatedAt = platform.CreatedAt

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

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_PLATFORMS)

	if _, err := collection.InsertOne(ctx, platform); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_INSERT_PLATFORM_TO_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, platform, nil, 0)
}
