package utils

import "fmt"

const (
	OPPORTUNITIES_INVALID_REQUEST_DATA = iota + 1
	CANNOT_CONNECT_TO_MONGODB
	CANNOT_FIND_OPPORTUNITIES_IN_MONGODB
	CANNOT_INSERT_OPPORTUNITY_TO_MONGODB
	CANNOT_UPDATE_OPPORTUNITY_IN_MONGODB
	CANNOT_FIND_PLATFORMS_IN_MONGODB
	CANNOT_INSERT_PLATFORM_TO_MONGODB
	PLATFORMS_INVALID_REQUEST_DATA
	CANNOT_FIND_PILLARS_IN_MONGODB
	CANNOT_INSERT_PILLAR_TO_MONGODB
	PILLARS_INVALID_REQUEST_DATA
	REVENUE_INVALID_REQUEST_DATA
	CANNOT_FIND_REVENUE_IN_MONGODB
	CANNOT_INSERT_REVENUE_TO_MONGODB
	CANNOT_CONNECT_TO_MYSQL
	CANNOT_FIND_LEGACY_REVENUE_IN_MYSQL
	CANNOT_FIND_METRICS_IN_MONGODB
	CANNOT_UPSERT_METRIC_IN_MONGODB
	WEBHOOK_INVALID_REQUEST_DATA
	CANNOT_INSERT_AUTOMATION_EVENT_TO_MONGODB
	CANNOT_BUILD_DASHBOARD_SUMMARY
)

func SendInternalError(internalErrorCode int) string {
	return fmt.Sprintf("An internal server error occurred. Please try again later (Code: %d)", internalErrorCode)
}
