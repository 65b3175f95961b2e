package api

// Error is a failed backend call. Message is already human-readable:
// it comes from the error envelope when the backend sent one, otherwise
// from the HTTP status text.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// errorEnvelope covers both shapes the backend uses for failures:
// {"error":{"message":...}} and a bare {"message":...}.
type errorEnvelope struct {
	Err struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func (e errorEnvelope) message() string {
	if e.Err.Message != "" {
		return e.Err.Message
	}
	return e.Message
}
