// Package mongostore is the durable OpportunityStore over MongoDB. It is the
// source of truth every caller converges on: the interactive handlers, the
// optimistic mirrors and the automation webhook.
package mongostore

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"freelancehub/database"
	"freelancehub/schemas"
	"freelancehub/store"
	"freelancehub/utils"
)

type Store struct{}

func New() *Store {
	return &Store{}
}

func connect() (*mongo.Client, error) {
	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	return mongo.Connect(opts)
}

func (s *Store) List(ctx context.Context, tenant string, filter schemas.PipelineFilter, page, pageSize int64) ([]schemas.Opportunity, int64, error) {
	page, pageSize = store.ClampPage(page, pageSize)
	skip := (page - 1) * pageSize

	client, err := connect()
	if err != nil {
		return nil, 0, store.Internal("cannot connect to mongodb", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(database.GetDB())
	collection := db.Collection(database.COLLECTION_OPPORTUNITIES)

	match, err := buildListFilter(ctx, db, tenant, filter)
	if err != nil {
		return nil, 0, err
	}

	totalItems, err := collection.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, store.Internal("cannot count opportunities", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: pageSize}},
	}
	pipeline = append(pipeline, nameLookupStages()...)

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, store.Internal("cannot list opportunities", err)
	}
	defer cursor.Close(ctx)

	opportunities := []schemas.Opportunity{}
	if err := cursor.All(ctx, &opportunities); err != nil {
		return nil, 0, store.Internal("cannot decode opportunities", err)
	}

	return opportunities, totalItems, nil
}

func (s *Store) GetOne(ctx context.Context, tenant string, id string) (*schemas.Opportunity, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	client, err := connect()
	if err != nil {
		return nil, store.Internal("cannot connect to mongodb", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(database.GetDB())
	collection := db.Collection(database.COLLECTION_OPPORTUNITIES)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: objectID},
			{Key: "user_id", Value: tenant},
		}}},
		{{Key: "$limit", Value: 1}},
	}
	pipeline = append(pipeline, nameLookupStages()...)

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, store.Internal("cannot find opportunity", err)
	}
	defer cursor.Close(ctx)

	opportunities := []schemas.Opportunity{}
	if err := cursor.All(ctx, &opportunities); err != nil {
		return nil, store.Internal("cannot decode opportunity", err)
	}
	if len(opportunities) == 0 {
		return nil, store.ErrNotFound
	}

	return &opportunities[0], nil
}

func (s *Store) Create(ctx context.Context, tenant string, fields store.OpportunityCreate) (*schemas.Opportunity, error) {
	created, err := store.NormalizeCreate(tenant, fields)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now

	client, err := connect()
	if err != nil {
		return nil, store.Internal("cannot connect to mongodb", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(database.GetDB())
	collection := db.Collection(database.COLLECTION_OPPORTUNITIES)

	result, err := collection.InsertOne(ctx, created)
	if err != nil {
		return nil, store.Internal("cannot insert opportunity", err)
	}

	if insertedID, ok := result.InsertedID.(bson.ObjectID); ok {
		created.ID = insertedID
	}

	attachNames(ctx, db, &created)

	return &created, nil
}

func (s *Store) UpdateStage(ctx context.Context, tenant string, id string, newStage string) (*schemas.Opportunity, error) {
	if !schemas.IsValidStage(newStage) {
		return nil, store.NewValidationError(store.FieldIssue{
			Path:    "stage",
			Message: "must be one of: " + strings.Join(schemas.OpportunityStages, ", "),
		})
	}

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	client, err := connect()
	if err != nil {
		return nil, store.Internal("cannot connect to mongodb", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(database.GetDB())
	collection := db.Collection(database.COLLECTION_OPPORTUNITIES)

	filter := bson.D{
		{Key: "_id", Value: objectID},
		{Key: "user_id", Value: tenant},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "stage", Value: newStage},
		{Key: "updated_at", Value: time.Now()},
	}}}

	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated := &schemas.Opportunity{}
	err = collection.FindOneAndUpdate(ctx, filter, update, updateOpts).Decode(updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, store.Internal("cannot update opportunity stage", err)
	}

	attachNames(ctx, db, updated)

	return updated, nil
}

func (s *Store) UpdateFields(ctx context.Context, tenant string, id string, patch store.OpportunityPatch) (*schemas.Opportunity, error) {
	if err := store.ValidatePatch(patch); err != nil {
		return nil, err
	}

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	setDoc, unsetDoc := buildPatchDocuments(patch)
	if len(setDoc) == 0 && len(unsetDoc) == 0 {
		return s.GetOne(ctx, tenant, id)
	}
	setDoc = append(setDoc, bson.E{Key: "updated_at", Value: time.Now()})

	update := bson.D{{Key: "$set", Value: setDoc}}
	if len(unsetDoc) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unsetDoc})
	}

	client, err := connect()
	if err != nil {
		return nil, store.Internal("cannot connect to mongodb", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(database.GetDB())
	collection := db.Collection(database.COLLECTION_OPPORTUNITIES)

	filter := bson.D{
		{Key: "_id", Value: objectID},
		{Key: "user_id", Value: tenant},
	}

	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated := &schemas.Opportunity{}
	err = collection.FindOneAndUpdate(ctx, filter, update, updateOpts).Decode(updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, store.Internal("cannot update opportunity", err)
	}

	attachNames(ctx, db, updated)

	return updated, nil
}

// attachNames joins the platform and pillar display names onto the record.
// Best effort: a missing reference document leaves the name empty.
func attachNames(ctx context.Context, db *mongo.Database, opportunity *schemas.Opportunity) {
	if !opportunity.PlatformID.IsZero() {
		platform := schemas.Platform{}
		err := db.Collection(database.COLLECTION_PLATFORMS).
			FindOne(ctx, bson.D{{Key: "_id", Value: opportunity.PlatformID}}).
			Decode(&platform)
		if err == nil {
			opportunity.PlatformName = platform.Name
		}
	}

	if !opportunity.PillarID.IsZero() {
		pillar := schemas.Pillar{}
		err := db.Collection(database.COLLECTION_PILLARS).
			FindOne(ctx, bson.D{{Key: "_id", Value: opportunity.PillarID}}).
			Decode(&pillar)
		if err == nil {
			opportunity.PillarName = pillar.Name
		}
	}
}
