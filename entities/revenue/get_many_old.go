package revenue

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"freelancehub/database"
	"freelancehub/middlewares"
	"freelancehub/schemas"
	"freelancehub/utils"
)

// GetManyOld reads entries from the previous tracker's MySQL database. The
// legacy table predates multi-tenancy, so the rows are not scoped by user.
func GetManyOld(w http.ResponseWriter, r *http.Request) {
	if _, ok := middlewares.UserFromRequest(r); !ok {
		utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
		return
	}

	entries, err := fetchOldEntries()
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, nil, nil, utils.CANNOT_FIND_LEGACY_REVENUE_IN_MYSQL)
		return
	}

	utils.SendResponse(w, http.StatusOK, entries, nil, 0)
}

func fetchOldEntries() ([]schemas.RevenueEntryOld, error) {
	mysqlURI := os.Getenv(utils.MYSQL_URI)

	mysqlDB, err := sql.Open("mysql", mysqlURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	defer mysqlDB.Close()

	mysqlDB.SetConnMaxLifetime(database.MYSQL_CONN_MAX_LIFETIME)
	mysqlDB.SetMaxOpenConns(database.MYSQL_MAX_OPEN_CONNS)
	mysqlDB.SetMaxIdleConns(database.MYSQL_MAX_IDLE_CONNS)

	rows, err := mysqlDB.Query(
		"SELECT id, received_date, platform, amount, fee, entry_type, notes FROM revenue_entries ORDER BY received_date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch legacy revenue entries from MySQL: %w", err)
	}
	defer rows.Close()

	entries := []schemas.RevenueEntryOld{}
	for rows.Next() {
		entry := schemas.RevenueEntryOld{}
		err := rows.Scan(
			&entry.ID,
			&entry.ReceivedDate,
			&entry.Platform,
			&entry.Amount,
			&entry.Fee,
			&entry.EntryType,
			&entry.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legacy revenue entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read legacy revenue entries: %w", err)
	}

	return entries, nil
}
