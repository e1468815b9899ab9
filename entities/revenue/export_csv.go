package revenue

import (
	"context"
	"encoding/csv"
	"net/http"
	"os"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"freelancehub/database"
	"freelancehub/middlewares"
	"freelancehub/utils"
)

type exportRow struct {
	ReceivedDate string  `bson:"received_date"`
	PlatformName string  `bson:"platform_name"`
	PillarName   string  `bson:"pillar_name"`
	Amount       float64 `bson:"amount"`
	FeeAmount    float64 `bson:"fee_amount"`
	EntryType    string  `bson:"entry_type"`
	Currency     string  `bson:"currency"`
	Notes        string  `bson:"notes"`
}

// ExportCSV streams the caller's revenue entries for the requested date range
// as a CSV download. Without explicit bounds it covers the last 90 days.
func ExportCSV(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
		return
	}

	query := r.URL.Query()
	start, end := utils.DateRangeOrDefault(query.Get("from"), query.Get("to"), 90)

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

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "user_id", Value: user.ID},
			{Key: "received_date", Value: bson.D{
				{Key: "$gte", Value: start.Format(utils.DATE_LAYOUT)},
				{Key: "$lte", Value: end.Format(utils.DATE_LAYOUT)},
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "received_date", Value: 1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.COLLECTION_PLATFORMS},
			{Key: "localField", Value: "platform_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "platform_data"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$platform_data"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.COLLECTION_PILLARS},
			{Key: "localField", Value: "pillar_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "pillar_data"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$pillar_data"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "platform_name", Value: "$platform_data.name"},
			{Key: "pillar_name", Value: "$pillar_data.name"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "platform_data", Value: 0},
			{Key: "pillar_data", Value: 0},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_REVENUE_IN_MONGODB)
		return
	}
	defer cursor.Close(ctx)

	rows := []exportRow{}
	if err := cursor.All(ctx, &rows); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_REVENUE_IN_MONGODB)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="revenue.csv"`)

	writer := csv.NewWriter(w)
	writer.Write([]string{"date", "platform", "pillar", "amount", "fee", "net", "type", "currency", "notes"})

	for _, row := range rows {
		writer.Write([]string{
			row.ReceivedDate,
			row.PlatformName,
			row.PillarName,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			strconv.FormatFloat(row.FeeAmount, 'f', 2, 64),
			strconv.FormatFloat(row.Amount-row.FeeAmount, 'f', 2, 64),
			row.EntryType,
			row.Currency,
			row.Notes,
		})
	}

	writer.Flush()
}
