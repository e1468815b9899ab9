package pillars

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

	pillar := schemas.Pillar{}
	if err := json.NewDecoder(r.Body).Decode(&pillar); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.PILLARS_INVALID_REQUEST_DATA)
		return
	}

	pillar.Name = strings.TrimSpace(pillar.Name)
	if pillar.Name == "" {
		utils.SendResponse(w, http.StatusBadRequest, nil, "name is required", 0)
		return
	}

	pillar.ID = bson.NewObjectID()
	pillar.UserID = user.ID
	pillar.CreatedAt = time.Now()
	pillar.UpdatedAt = pillar.CreatedAt

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

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_PILLARS)

	if _, err := collection.InsertOne(ctx, pillar); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_INSERT_PILLAR_TO_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, pillar, nil, 0)
}
