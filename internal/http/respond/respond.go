package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Message is the {msg} body used for acknowledgements and errors.
type Message struct {
	Msg string `json:"msg"`
}

// JSON writes payload as the response body.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("respond: encode payload failed", zap.Error(err))
	}
}

// Error writes an error response as {msg}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Message{Msg: message})
}
