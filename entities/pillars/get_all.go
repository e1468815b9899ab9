package pillars

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

func GetAll(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
		return
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

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_PILLARS)

	filter := bson.D{{Key: "user_id", Value: user.ID}}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_PILLARS_IN_MONGODB)
		return
	}
	defer cursor.Close(ctx)

	pillars := []schemas.Pillar{}
	if err := cursor.All(ctx, &pillars); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_PILLARS_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, pillars, nil, 0)
}
