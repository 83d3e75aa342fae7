package middleware

import (
	"encoding/json"
	"net/http"

	"go-access-admin/internal/model"
)

// writeErrorBody emits the dashboard error envelope from middleware, which
// cannot reach the handler package's response helpers without an import
// cycle.
func writeErrorBody(w http.ResponseWriter, status int, resultCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{ResultCode: resultCode, Message: message})
}
