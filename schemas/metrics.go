package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DailyMetric holds one day of platform counters. Upserts are keyed by
// (user, date, platform).
type DailyMetric struct {
	ID            bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string        `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Date          string        `json:"date,omitempty" bson:"date,omitempty"`
	PlatformID    bson.ObjectID `json:"platform_id,omitempty" bson:"platform_id,omitempty"`
	ProfileViews  *int64        `json:"profile_views,omitempty" bson:"profile_views,omitempty"`
	ProposalsSent *int64        `json:"proposals_sent,omitempty" bson:"proposals_sent,omitempty"`
	Interviews    *int64        `json:"interviews,omitempty" bson:"interviews,omitempty"`
	Invites       *int64        `json:"invites,omitempty" bson:"invites,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at,omitempty"`
}
