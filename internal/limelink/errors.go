package limelink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the Limelink API.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// Error body shape the API uses for failures.
type providerErrorResponse struct {
	Message string `json:"message"`
}

// newAPIError derives the message from the response body: its "message"
// field, else the JSON body itself, else the HTTP status.
func newAPIError(status int, body []byte) *APIError {
	trimmed := bytes.TrimSpace(body)

	if json.Valid(trimmed) && len(trimmed) > 0 {
		var perr providerErrorResponse
		if err := json.Unmarshal(trimmed, &perr); err == nil && perr.Message != "" {
			return &APIError{Message: perr.Message, StatusCode: status}
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err == nil {
			return &APIError{Message: compact.String(), StatusCode: status}
		}
	}

	return &APIError{
		Message:    fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)),
		StatusCode: status,
	}
}
