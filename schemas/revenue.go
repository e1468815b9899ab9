package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	REVENUE_ENTRY_TYPE_PAYMENT = "payment"
	REVENUE_ENTRY_TYPE_BONUS   = "bonus"
	REVENUE_ENTRY_TYPE_REFUND  = "refund"
)

type RevenueEntry struct {
	ID            bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string        `json:"user_id,omitempty" bson:"user_id,omitempty"`
	PlatformID    bson.ObjectID `json:"platform_id,omitempty" bson:"platform_id,omitempty"`
	PillarID      bson.ObjectID `json:"pillar_id,omitempty" bson:"pillar_id,omitempty"`
	OpportunityID bson.ObjectID `json:"opportunity_id,omitempty" bson:"opportunity_id,omitempty"`
	Amount        float64       `json:"amount" bson:"amount"`
	FeeAmount     float64       `json:"fee_amount" bson:"fee_amount"`
	Currency      string        `json:"currency,omitempty" bson:"currency,omitempty"`
	EntryType     string        `json:"entry_type,omitempty" bson:"entry_type,omitempty"`
	ReceivedDate  string        `json:"received_date,omitempty" bson:"received_date,omitempty"`
	Notes         string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at,omitempty"`
}

// RevenueEntryOld mirrors a row from the previous tracker's MySQL database.
// Read-only: the legacy system is kept around for historical exports.
type RevenueEntryOld struct {
	ID           int64   `json:"id"`
	ReceivedDate string  `json:"received_date"`
	Platform     string  `json:"platform"`
	Amount       float64 `json:"amount"`
	Fee          float64 `json:"fee"`
	EntryType    string  `json:"entry_type"`
	Notes        string  `json:"notes"`
}
