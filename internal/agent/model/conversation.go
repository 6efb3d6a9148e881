package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ConversationRepository persists per-session turn history. Sessions are
// keyed by conversation ID and expire with their TTL; the pipeline treats
// history as best effort and never blocks a run on it.
type ConversationRepository interface {
	// AddMessage appends one turn to the session.
	AddMessage(ctx context.Context, conversationID string, message *schema.Message) error

	// LoadHistory returns every stored turn, oldest first. A session that
	// was never written or has expired loads as empty, not as an error.
	LoadHistory(ctx context.Context, conversationID string) (*ConversationHistory, error)

	// ClearHistory drops the session.
	ClearHistory(ctx context.Context, conversationID string) error

	// GetMessageCount returns the number of stored turns.
	GetMessageCount(ctx context.Context, conversationID string) (int, error)
}

// ConversationHistory is one session's loaded turns.
type ConversationHistory struct {
	ConversationID string
	Messages       []*schema.Message
}
