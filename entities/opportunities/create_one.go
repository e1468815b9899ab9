package opportunities

import (
	"encoding/json"
	"net/http"

	"freelancehub/entities/dashboard"
	"freelancehub/middlewares"
	"freelancehub/store"
	"freelancehub/utils"
)

func CreateOne(st store.OpportunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromRequest(r)
		if !ok {
			utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
			return
		}

		fields := store.OpportunityCreate{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.OPPORTUNITIES_INVALID_REQUEST_DATA)
			return
		}

		opportunity, err := st.Create(r.Context(), user.ID, fields)
		if err != nil {
			sendStoreError(w, err, utils.CANNOT_INSERT_OPPORTUNITY_TO_MONGODB)
			return
		}

		BroadcastBoardUpdate(BoardMessage{
			Action:      BOARD_ACTION_CREATED,
			Opportunity: opportunity,
		})
		dashboard.InvalidateSummary(r.Context(), user.ID)

		utils.SendResponse(w, http.StatusCreated, opportunity, nil, 0)
	}
}
