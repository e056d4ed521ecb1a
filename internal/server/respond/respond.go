// Package respond writes the API's JSON envelope. Every response carries
// success, an optional message, and an RFC3339 timestamp; failures carry a
// machine-readable error code.
package respond

import (
	"encoding/json"
	"net/http"
	"time"

	"restaurant-inventory/backend/internal/auth"
)

type envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *errBody    `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes a success envelope with the given status, payload, and message.
func JSON(w http.ResponseWriter, status int, data interface{}, message string) {
	write(w, status, envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Error writes a failure envelope for err using the auth taxonomy's status and
// code mapping.
func Error(w http.ResponseWriter, err error) {
	ErrorCode(w, auth.HTTPStatus(err), auth.Code(err), err.Error())
}

// ErrorCode writes a failure envelope with an explicit status and code.
func ErrorCode(w http.ResponseWriter, status int, code, message string) {
	write(w, status, envelope{
		Success:   false,
		Error:     &errBody{Code: code, Message: message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
