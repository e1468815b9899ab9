package utils

import (
	"encoding/json"
	"freelancehub/schemas"
	"net/http"
)

// SendResponse writes the {data, error} envelope. A non-zero internal error
// code takes precedence and hides the underlying failure from the caller.
func SendResponse(w http.ResponseWriter, statusCode int, data any, errValue any, internalErrorCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if internalErrorCode != 0 {
		json.NewEncoder(w).Encode(schemas.ApiResponse{
			Error: SendInternalError(internalErrorCode),
		})
		return
	}

	json.NewEncoder(w).Encode(schemas.ApiResponse{
		Data:  data,
		Error: errValue,
	})
}

func SendPaginatedResponse(w http.ResponseWriter, statusCode int, data any, pagination schemas.Pagination) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(schemas.ApiResponse{
		Data:       data,
		Pagination: &pagination,
	})
}
