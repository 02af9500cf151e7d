package transport

import (
	"encoding/json"
	"net/http"

	"github.com/Gagan41/ecom/internal/logger"
	"go.uber.org/zap"
)

// Envelope is the in-band response body. Every endpoint answers HTTP 200 and
// signals failure through the success flag; clients never branch on the HTTP
// status code. This mirrors the contract the storefront frontend was built
// against, so it must not be "fixed" to use 4xx/5xx codes.
type Envelope map[string]any

// Respond writes an arbitrary envelope; most handlers go through Success or
// Failure instead.
func Respond(w http.ResponseWriter, body Envelope) {
	writeJSON(w, body)
}

func writeJSON(w http.ResponseWriter, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.L().Error("failed to encode response", zap.Error(err))
	}
}

// Success writes {success:true} merged with the given fields.
func Success(w http.ResponseWriter, fields Envelope) {
	body := Envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, body)
}

// Failure writes {success:false, message}.
func Failure(w http.ResponseWriter, message string) {
	writeJSON(w, Envelope{"success": false, "message": message})
}
