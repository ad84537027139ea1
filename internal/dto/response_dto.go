package dto

// ErrorResponse is the single error envelope of the API: one kind, one
// message. Internal details never appear here in production mode.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
