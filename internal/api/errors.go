package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized is returned for a 401 once the single refresh attempt is
// exhausted (or was never possible). The session has been cleared by then.
var ErrUnauthorized = errors.New("api: unauthorized")

// ValidationError covers 4xx responses other than 401.
type ValidationError struct {
	Status  int
	Body    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (http %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request rejected (http %d)", e.Status)
}

// ServerError covers 5xx responses.
type ServerError struct {
	Status  int
	Body    string
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (http %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: server error (http %d)", e.Status)
}

// NetworkError wraps transport failures so callers can distinguish them from
// backend rejections.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// serverMessage pulls the backend's reported reason out of a JSON error body
// so it can be surfaced to the operator verbatim.
func serverMessage(body string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(body)
}

// statusError maps a non-2xx status to the error taxonomy. 401 is handled by
// the retry wrapper before this is reached.
func statusError(status int, body string) error {
	msg := serverMessage(body)
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status >= 400 && status < 500:
		return &ValidationError{Status: status, Body: body, Message: msg}
	default:
		return &ServerError{Status: status, Body: body, Message: msg}
	}
}
