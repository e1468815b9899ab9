package opportunities

import (
	"net/http"
	"strconv"

	"freelancehub/middlewares"
	"freelancehub/schemas"
	"freelancehub/store"
	"freelancehub/utils"
)

// GetAll lists one page of the caller's opportunities, newest first. The
// filter parameters combine with AND; see the pipeline package for the
// matching rules.
func GetAll(st store.OpportunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromRequest(r)
		if !ok {
			utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
			return
		}

		query := r.URL.Query()

		page, _ := strconv.ParseInt(query.Get("page"), 10, 64)
		limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)

		filter := schemas.PipelineFilter{
			Search:       query.Get("search"),
			Platform:     query.Get("platform_id"),
			Pillar:       query.Get("pillar_id"),
			Stage:        query.Get("stage"),
			ContractType: query.Get("contract_type"),
		}

		opportunities, total, err := st.List(r.Context(), user.ID, filter, page, limit)
		if err != nil {
			sendStoreError(w, err, utils.CANNOT_FIND_OPPORTUNITIES_IN_MONGODB)
			return
		}

		page, limit = store.ClampPage(page, limit)
		totalPages := (total + limit - 1) / limit

		utils.SendPaginatedResponse(w, http.StatusOK, opportunities, schemas.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		})
	}
}
