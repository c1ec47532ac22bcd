// Package web provides the HTTP surface the bot transport talks to: one
// endpoint per chat turn plus read-only state and step-context endpoints.
package web

// TurnRequest represents the request body for running one chat turn.
type TurnRequest struct {
	Action string         `json:"action" validate:"required"`
	Input  map[string]any `json:"input"`
}

// Text returns the free-text part of the turn input, if any.
func (r TurnRequest) Text() string {
	text, _ := r.Input["text"].(string)

	return text
}

// TurnResponse represents the outcome of one chat turn.
type TurnResponse struct {
	Outcome string `json:"outcome"`
	Message string `json:"message"`
}
