package opportunities

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"freelancehub/store"
	"freelancehub/utils"
)

// sendStoreError translates store failures into the response envelope.
// Validation failures carry their field issues; anything unexpected is logged
// with its stack and hidden behind an internal error code.
func sendStoreError(w http.ResponseWriter, err error, internalErrorCode int) {
	validationErr := &store.ValidationError{}
	if errors.As(err, &validationErr) {
		utils.SendResponse(w, http.StatusBadRequest, nil, validationErr.Issues, 0)
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		utils.SendResponse(w, http.StatusNotFound, nil, "opportunity not found", 0)
		return
	}

	storeErr := &store.StoreError{}
	if errors.As(err, &storeErr) {
		utils.Logger.Error("opportunity store failure",
			zap.String("message", storeErr.Message),
			zap.Error(storeErr.Err),
			zap.ByteString("stack", storeErr.Stack))
	} else {
		utils.Logger.Error("opportunity store failure", zap.Error(err))
	}

	utils.SendResponse(w, http.StatusInternalServerError, nil, nil, internalErrorCode)
}
