package response

type ErrorResponse struct {
	Error string `json:"error"`
	// Reason is the machine-readable admission failure, if any.
	Reason string `json:"reason,omitempty"`
}
