package model

// QueryInput is the public entry point payload for one user turn.
type QueryInput struct {
	ConversationID string
	Query          string
}
