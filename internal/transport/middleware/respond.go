package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON error shape the mobile client parses. Code is
// optional and machine-readable (e.g. SUBSCRIPTION_REQUIRED).
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message, Code: code})
}
