package response

import (
	"encoding/json"
	"net/http"

	"gitlab.com/static-ip-db.net/internal/domain"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	WriteJSON(w, err.StatusCode, err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteAck always answers 200; the outcome is carried in the body.
func WriteAck(w http.ResponseWriter, ack domain.Ack) {
	WriteJSON(w, http.StatusOK, ack)
}
