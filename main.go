package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"freelancehub/entities/dashboard"
	"freelancehub/entities/metrics"
	"freelancehub/entities/opportunities"
	"freelancehub/entities/pillars"
	"freelancehub/entities/platforms"
	"freelancehub/entities/revenue"
	"freelancehub/entities/webhook"
	"freelancehub/middlewares"
	"freelancehub/store/mongostore"
	"freelancehub/utils"
)

func main() {
	utils.LoadEnvVariables()
	utils.InitLogger()

	env := os.Getenv(utils.ENV)
	if env == utils.ENV_RELEASE {
		fmt.Printf("\033[1;31;47m[WARNING] Running in PRODUCTION!\033[0m\n")
	} else {
		fmt.Printf("[INFO] Current environment: %s\n", env)
	}

	opportunityStore := mongostore.New()

	mux := http.NewServeMux()

	mux.Handle("GET /v1/opportunities", middlewares.SessionAuth(opportunities.GetAll(opportunityStore)))
	mux.Handle("GET /v1/opportunities/{id}", middlewares.SessionAuth(opportunities.GetOne(opportunityStore)))
	mux.Handle("POST /v1/opportunities", middlewares.SessionAuth(opportunities.CreateOne(opportunityStore)))
	mux.Handle("PATCH /v1/opportunities/{id}", middlewares.SessionAuth(opportunities.UpdateOne(opportunityStore)))
	mux.Handle("PATCH /v1/opportunities/{id}/stage", middlewares.SessionAuth(opportunities.UpdateOneStage(opportunityStore)))
	mux.HandleFunc("/v1/ws/pipeline", opportunities.PipelineWebSocketHandler)

	mux.Handle("GET /v1/platforms", middlewares.SessionAuth(http.HandlerFunc(platforms.GetAll)))
	mux.Handle("POST /v1/platforms", middlewares.SessionAuth(http.HandlerFunc(platforms.CreateOne)))

	mux.Handle("GET /v1/pillars", middlewares.SessionAuth(http.HandlerFunc(pillars.GetAll)))
	mux.Handle("POST /v1/pillars", middlewares.SessionAuth(http.HandlerFunc(pillars.CreateOne)))

	mux.Handle("GET /v1/revenue", middlewares.SessionAuth(http.HandlerFunc(revenue.GetAll)))
	mux.Handle("POST /v1/revenue", middlewares.SessionAuth(http.HandlerFunc(revenue.CreateOne)))
	mux.Handle("GET /v1/revenue/export", middlewares.SessionAuth(http.HandlerFunc(revenue.ExportCSV)))
	mux.Handle("GET /v1/revenue/legacy", middlewares.SessionAuth(http.HandlerFunc(revenue.GetManyOld)))

	mux.Handle("GET /v1/metrics", middlewares.SessionAuth(http.HandlerFunc(metrics.GetAll)))

	mux.Handle("GET /v1/dashboard/summary", middlewares.SessionAuth(http.HandlerFunc(dashboard.GetSummary)))

	mux.Handle("POST /v1/webhook/automation", middlewares.AutomationKey(webhook.CreateOneEvent(opportunityStore)))

	fmt.Printf("Server started on port %s at %s\n", os.Getenv(utils.PORT), time.Now().Format("2006-01-02 15:04:05"))
	http.ListenAndServe(fmt.Sprintf(":%s", os.Getenv(utils.PORT)), middlewares.SecurityHeaders(middlewares.Cors(mux)))
}
