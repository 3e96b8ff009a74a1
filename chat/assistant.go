// Package chat provides the assistant collaborator behind the aiChat
// screen. The controller does not define response content; it only needs a
// backend that turns a conversation log into the next reply.
package chat

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	kerrors "github.com/motorlane/kiosk/errors"
	"github.com/motorlane/kiosk/logging"
)

// Message is one turn of the assistant conversation.
type Message struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Assistant produces the next reply for a conversation.
type Assistant interface {
	Reply(ctx context.Context, conversation []Message) (string, error)
}

const systemPrompt = "You are a friendly showroom assistant at a vehicle " +
	"dealership kiosk. Answer briefly. You help visitors compare vehicles, " +
	"understand financing, and decide what to look at next. You never quote " +
	"final prices; direct pricing questions to the sales staff."

// OpenAIOptions configures the SDK-backed assistant.
type OpenAIOptions struct {
	BaseURL string
	APIKey  string
	Model   string
}

// OpenAIAssistant talks to an OpenAI-compatible chat completion endpoint.
type OpenAIAssistant struct {
	client *openai.Client
	model  string
	logger *logrus.Entry
}

// NewOpenAIAssistant creates an assistant against the configured endpoint.
func NewOpenAIAssistant(opts OpenAIOptions) *OpenAIAssistant {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAssistant{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logging.NewLogger("chat"),
	}
}

// Reply implements Assistant.
func (a *OpenAIAssistant) Reply(ctx context.Context, conversation []Message) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(conversation)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range conversation {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
	})
	if err != nil {
		a.logger.WithError(err).Warn("chat completion failed")
		return "", kerrors.ChatUnavailable(err)
	}
	if len(resp.Choices) == 0 {
		return "", kerrors.New(kerrors.ErrCodeChatUnavailable, "empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Scripted is an offline assistant for kiosks without network access and
// for tests. It rotates through canned replies.
type Scripted struct {
	replies []string
	next    int
}

// NewScripted creates a scripted assistant. With no replies it falls back
// to a single staff-handoff line.
func NewScripted(replies ...string) *Scripted {
	if len(replies) == 0 {
		replies = []string{
			"Happy to help! A member of our sales team can walk you through that in detail — tap Handoff when you're ready.",
		}
	}
	return &Scripted{replies: replies}
}

// Reply implements Assistant.
func (s *Scripted) Reply(_ context.Context, _ []Message) (string, error) {
	reply := s.replies[s.next%len(s.replies)]
	s.next++
	return reply, nil
}
