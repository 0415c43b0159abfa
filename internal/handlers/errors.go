package handlers

// ErrorResponse is the JSON error body shared by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
