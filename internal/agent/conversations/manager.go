package conversations

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/mealpick-core/server/internal/agent/model"
)

// MessagesManager mediates between the conversation repository and the
// classifier/aggregator: it records turns and renders the recent history into
// the plain-text context block the classifier prompt expects.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	historyMaxTurns  int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		historyMaxTurns:  config.History.MaxTurns,
	}
}

// RecordUserMessage persists the incoming user turn and returns the rendered
// history context (prior turns only, trimmed to the configured window).
func (cm *MessagesManager) RecordUserMessage(ctx context.Context, conversationID string, query string) (string, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return "", err
	}
	rendered := cm.renderHistory(history.Messages)

	userMsg := schema.UserMessage(query)
	if err := cm.conversationRepo.AddMessage(ctx, conversationID, userMsg); err != nil {
		return "", err
	}
	return rendered, nil
}

// SaveResponse persists the final aggregated assistant turn.
func (cm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	assistantMsg := schema.AssistantMessage(content, nil)
	return cm.conversationRepo.AddMessage(ctx, conversationID, assistantMsg)
}

// renderHistory returns the empty string when no prior turn is renderable, so
// callers can treat "" as "no history" without probing the wrapper.
func (cm *MessagesManager) renderHistory(messages []*schema.Message) string {
	recent := trimTail(messages, cm.historyMaxTurns)

	var b strings.Builder
	rendered := 0
	for _, msg := range recent {
		if msg == nil || msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.User:
			b.WriteString("UserMessage(" + msg.Content + ")\n")
			rendered++
		case schema.Assistant:
			b.WriteString("AssistantMessage(" + msg.Content + ")\n")
			rendered++
		}
	}
	if rendered == 0 {
		return ""
	}
	return "<conversation_context>\n" + b.String() + "</conversation_context>"
}

// ====================== Helper function ======================
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
