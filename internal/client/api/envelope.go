package api

import "encoding/json"

// envelope is the response shape shared by every endpoint of the remote
// API: a success flag, a human-readable message, and an optional payload.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []string        `json:"errors,omitempty"`
}
