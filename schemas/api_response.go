package schemas

type Pagination struct {
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ApiResponse is the envelope every JSON endpoint returns. Error is null on
// success, a string for most failures, or a list of field issues for
// validation failures.
type ApiResponse struct {
	Data       any         `json:"data"`
	Error      any         `json:"error"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
