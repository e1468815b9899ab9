package database

import (
	"freelancehub/utils"
	"os"
	"time"
)

const (
	MONGO_TIMEOUT                 = 20 * time.Second
	COLLECTION_OPPORTUNITIES      = "opportunities"
	COLLECTION_PLATFORMS          = "platforms"
	COLLECTION_PILLARS            = "pillars"
	COLLECTION_REVENUE_ENTRIES    = "revenue_entries"
	COLLECTION_DAILY_METRICS      = "daily_metrics"
	COLLECTION_AUTOMATION_EVENTS  = "automation_events"
	COLLECTION_GIG_LISTINGS       = "gig_listings"
	COLLECTION_PROPOSAL_TEMPLATES = "proposal_templates"
)

func GetDB() string {
	environment := os.Getenv(utils.ENV)

	if environment == utils.ENV_RELEASE {
		return "production"
	}

	if environment == utils.ENV_HOMOLOG {
		return "homolog"
	}

	if environment == utils.ENV_DEVELOPMENT {
		return "development"
	}

	panic("[MongoDB] Invalid DB name")
}
