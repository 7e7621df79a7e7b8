// Package handlers implements the HTTP handlers for the admin API.
package handlers

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response body shared by all teacher endpoints.
// Every business outcome, success or failure, is reported with HTTP 200 and
// this envelope; only authorization failures and unmatched routes differ.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error","message":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Success writes a success envelope.
func Success(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{Status: "success", Message: message})
}

// Error writes an error envelope. Business errors still use HTTP 200.
func Error(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{Status: "error", Message: message})
}

// NotFound is the fallback for unmatched routes and methods.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]int{"error": http.StatusNotFound})
}

// decodeJSONBody decodes a JSON request body into the provided pointer,
// returning false after writing the given error envelope on failure.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any, errMessage string) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, errMessage)
		return false
	}
	return true
}
