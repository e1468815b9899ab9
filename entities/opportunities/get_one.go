package opportunities

import (
	"net/http"

	"freelancehub/middlewares"
	"freelancehub/store"
	"freelancehub/utils"
)

func GetOne(st store.OpportunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromRequest(r)
		if !ok {
			utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
			return
		}

		opportunity, err := st.GetOne(r.Context(), user.ID, r.PathValue("id"))
		if err != nil {
			sendStoreError(w, err, utils.CANNOT_FIND_OPPORTUNITIES_IN_MONGODB)
			return
		}

		utils.SendResponse(w, http.StatusOK, opportunity, nil, 0)
	}
}
