package types

// ErrorResponse is the error envelope produced by the error-handler
// middleware.
type ErrorResponse struct {
	Type    string            `json:"type"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
