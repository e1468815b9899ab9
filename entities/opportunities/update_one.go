package opportunities

import (
	"encoding/json"
	"net/http"

	"freelancehub/entities/dashboard"
	"freelancehub/middlewares"
	"freelancehub/store"
	"freelancehub/utils"
)

// UpdateOne applies a partial field update. Fields absent from the body stay
// untouched; an empty-string reference clears it. Concurrent writers follow
// last-write-wins, there is no version check.
func UpdateOne(st store.OpportunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromRequest(r)
		if !ok {
			utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
			return
		}

		patch := store.OpportunityPatch{}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.OPPORTUNITIES_INVALID_REQUEST_DATA)
			return
		}

		opportunity, err := st.UpdateFields(r.Context(), user.ID, r.PathValue("id"), patch)
		if err != nil {
			sendStoreError(w, err, utils.CANNOT_UPDATE_OPPORTUNITY_IN_MONGODB)
			return
		}

		BroadcastBoardUpdate(BoardMessage{
			Action:      BOARD_ACTION_UPDATED,
			Opportunity: opportunity,
		})
		dashboard.InvalidateSummary(r.Context(), user.ID)

		utils.SendResponse(w, http.StatusOK, opportunity, nil, 0)
	}
}
