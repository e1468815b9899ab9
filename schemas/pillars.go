package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Pillar struct {
	ID          bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      string        `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Name        string        `json:"name,omitempty" bson:"name,omitempty"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at,omitempty"`
}
