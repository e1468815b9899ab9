package mongostore

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"freelancehub/database"
	"freelancehub/pipeline"
	"freelancehub/schemas"
	"freelancehub/store"
)

// BuildBaseFilter translates the criteria into query constraints. It feeds on
// the same sanitized search term as pipeline.MatchesFilter, so a server-side
// listing and an in-memory re-filter of the same data agree.
func BuildBaseFilter(tenant string, filter schemas.PipelineFilter) bson.D {
	match := bson.D{{Key: "user_id", Value: tenant}}

	if filter.Stage != "" {
		match = append(match, bson.E{Key: "stage", Value: filter.Stage})
	}

	if filter.ContractType != "" {
		match = append(match, bson.E{Key: "contract_type", Value: filter.ContractType})
	}

	if search := pipeline.SanitizeSearch(filter.Search); search != "" {
		regex := bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(search)},
			{Key: "$options", Value: "i"},
		}
		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "job_title", Value: regex}},
			bson.D{{Key: "client_name", Value: regex}},
			bson.D{{Key: "client_company", Value: regex}},
		}})
	}

	return match
}

// buildListFilter extends the base filter with the platform and pillar
// criteria. A criterion that parses as an object id matches the reference
// directly; anything else is resolved as a display name against the tenant's
// reference collection.
func buildListFilter(ctx context.Context, db *mongo.Database, tenant string, filter schemas.PipelineFilter) (bson.D, error) {
	match := BuildBaseFilter(tenant, filter)

	if filter.Platform != "" {
		constraint, err := refConstraint(ctx, db, database.COLLECTION_PLATFORMS, "platform_id", tenant, filter.Platform)
		if err != nil {
			return nil, err
		}
		match = append(match, constraint)
	}

	if filter.Pillar != "" {
		constraint, err := refConstraint(ctx, db, database.COLLECTION_PILLARS, "pillar_id", tenant, filter.Pillar)
		if err != nil {
			return nil, err
		}
		match = append(match, constraint)
	}

	return match, nil
}

func refConstraint(ctx context.Context, db *mongo.Database, collectionName, field, tenant, value string) (bson.E, error) {
	if objectID, err := bson.ObjectIDFromHex(value); err == nil {
		return bson.E{Key: field, Value: objectID}, nil
	}

	cursor, err := db.Collection(collectionName).Find(ctx, bson.D{
		{Key: "user_id", Value: tenant},
		{Key: "name", Value: value},
	})
	if err != nil {
		return bson.E{}, store.Internal("cannot resolve reference name", err)
	}
	defer cursor.Close(ctx)

	ids := bson.A{}
	for cursor.Next(ctx) {
		doc := struct {
			ID bson.ObjectID `bson:"_id"`
		}{}
		if err := cursor.Decode(&doc); err != nil {
			return bson.E{}, store.Internal("cannot decode reference document", err)
		}
		ids = append(ids, doc.ID)
	}

	// An unknown name matches nothing, same as the in-memory predicate.
	return bson.E{Key: field, Value: bson.D{{Key: "$in", Value: ids}}}, nil
}

// nameLookupStages joins platform and pillar display names onto each listed
// record.
func nameLookupStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.COLLECTION_PLATFORMS},
			{Key: "localField", Value: "platform_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "platform_data"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.COLLECTION_PILLARS},
			{Key: "localField", Value: "pillar_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "pillar_data"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$platform_data"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$pillar_data"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "platform_name", Value: "$platform_data.name"},
			{Key: "pillar_name", Value: "$pillar_data.name"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "platform_data", Value: 0},
			{Key: "pillar_data", Value: 0},
		}}},
	}
}

// buildPatchDocuments splits the patch into $set and $unset halves. An
// empty-string reference clears the field; persisted reference fields hold an
// object id or nothing, never an empty string.
func buildPatchDocuments(patch store.OpportunityPatch) (bson.D, bson.D) {
	setDoc := bson.D{}
	unsetDoc := bson.D{}

	setString := func(key string, value *string) {
		if value != nil {
			setDoc = append(setDoc, bson.E{Key: key, Value: *value})
		}
	}
	setFloat := func(key string, value *float64) {
		if value != nil {
			setDoc = append(setDoc, bson.E{Key: key, Value: *value})
		}
	}
	setRef := func(key string, value *string) {
		if value == nil {
			return
		}
		if *value == "" {
			unsetDoc = append(unsetDoc, bson.E{Key: key, Value: ""})
			return
		}
		if objectID, err := bson.ObjectIDFromHex(*value); err == nil {
			setDoc = append(setDoc, bson.E{Key: key, Value: objectID})
		}
	}

	setRef("pillar_id", patch.PillarID)
	setString("job_title", patch.JobTitle)
	setString("job_description", patch.JobDescription)
	setString("job_url", patch.JobURL)
	setString("stage", patch.Stage)
	setRef("gig_listing_id", patch.GigListingID)
	setString("client_name", patch.ClientName)
	setString("client_company", patch.ClientCompany)
	setString("client_location", patch.ClientLocation)
	setFloat("budget_min", patch.BudgetMin)
	setFloat("budget_max", patch.BudgetMax)
	setString("contract_type", patch.ContractType)
	setString("proposal_text", patch.ProposalText)
	setRef("proposal_template_id", patch.ProposalTemplateID)
	setFloat("contract_value", patch.ContractValue)
	setFloat("estimated_hours", patch.EstimatedHours)
	setFloat("actual_hours", patch.ActualHours)
	if patch.DeliveryDeadline != nil {
		setDoc = append(setDoc, bson.E{Key: "delivery_deadline", Value: *patch.DeliveryDeadline})
	}
	setString("notes", patch.Notes)

	return setDoc, unsetDoc
}
