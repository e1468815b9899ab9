package opportunities

import (
	"encoding/json"
	"net/http"

	"freelancehub/entities/dashboard"
	"freelancehub/middlewares"
	"freelancehub/store"
	"freelancehub/utils"
)

type stageChangeRequest struct {
	Stage string `json:"stage"`
}

// UpdateOneStage moves an opportunity to another stage. Any stage in the
// vocabulary is reachable from any other, including backwards moves.
func UpdateOneStage(st store.OpportunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromRequest(r)
		if !ok {
			utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
			return
		}

		body := stageChangeRequest{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.SendResponse(w, http.StatusBadRequest, nil, nil, utils.OPPORTUNITIES_INVALID_REQUEST_DATA)
			return
		}

		opportunity, err := st.UpdateStage(r.Context(), user.ID, r.PathValue("id"), body.Stage)
		if err != nil {
			sendStoreError(w, err, utils.CANNOT_UPDATE_OPPORTUNITY_IN_MONGODB)
			return
		}

		BroadcastBoardUpdate(BoardMessage{
			Action:      BOARD_ACTION_STAGE_CHANGED,
			Opportunity: opportunity,
			Details:     body.Stage,
		})
		dashboard.InvalidateSummary(r.Context(), user.ID)

		utils.SendResponse(w, http.StatusOK, opportunity, nil, 0)
	}
}
