package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Platform struct {
	ID         bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     string        `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Name       string        `json:"name,omitempty" bson:"name,omitempty"`
	BaseURL    string        `json:"base_url,omitempty" bson:"base_url,omitempty"`
	FeePercent *float64      `json:"fee_percent,omitempty" bson:"fee_percent,omitempty"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at,omitempty"`
}
