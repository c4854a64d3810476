package transport

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response of the action endpoint. The original
// spreadsheet web app could not set HTTP status codes, so failures
// travel inside the envelope with status 200 and clients must check
// Success before trusting Data.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RawEnvelope defers Data decoding so clients can decode it per action.
type RawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteOK(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func WriteFail(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: false, Message: message})
}
