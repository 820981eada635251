package llm

import (
	"context"
	"github.com/cropsage/cropsage/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// Chat is a conversational channel to the model. It accumulates the message
// history so that the model retains prior turns as context for later requests.
type Chat struct {
	client   Client
	messages []openai.ChatCompletionMessage
}

// NewChat opens a conversational channel. A non-empty standingContext is placed
// in the history as a system message so that every subsequent turn sees it.
func (c Client) NewChat(standingContext string) *Chat {
	var messages []openai.ChatCompletionMessage
	if standingContext != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: standingContext,
		})
	}
	return &Chat{
		client:   c,
		messages: messages,
	}
}

// Ask sends message over the channel with the full history attached and records
// both the question and the answer. A failed request leaves the history
// untouched so that a later turn does not replay the failed one.
func (c *Chat) Ask(ctx context.Context, message string) (string, error) {
	messages := append(c.history(), openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	answer, err := c.client.Complete(ctx, messages)
	if err != nil {
		return "", errors.Wrap(err, "chat turn")
	}
	c.messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: answer,
	})
	return answer, nil
}

// History returns a copy of the accumulated messages including the standing
// context.
func (c *Chat) History() []openai.ChatCompletionMessage {
	return c.history()
}

func (c *Chat) history() []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, len(c.messages))
	copy(messages, c.messages)
	return messages
}
