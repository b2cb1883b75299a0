// Package openai adapts the OpenAI completion and chat completion endpoints to ports.Completer.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	DefaultCompletionModel = goopenai.GPT3Dot5TurboInstruct
	DefaultChatModel       = goopenai.GPT4oMini
)

type Config struct {
	APIKey          string
	BaseURL         string
	CompletionModel string
	ChatModel       string
	HTTPClient      *http.Client
}

type Completer struct {
	client          *goopenai.Client
	completionModel string
	chatModel       string
	logger          *zap.Logger
}

var _ ports.Completer = (*Completer)(nil)

func NewCompleter(cfg Config, logger *zap.Logger) (*Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if cfg.CompletionModel == "" {
		cfg.CompletionModel = DefaultCompletionModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		clientConfig.HTTPClient = cfg.HTTPClient
	}

	return &Completer{
		client:          goopenai.NewClientWithConfig(clientConfig),
		completionModel: cfg.CompletionModel,
		chatModel:       cfg.ChatModel,
		logger:          logger.With(zap.String("component", "openai")),
	}, nil
}

// Complete sends prompt to the completion endpoint. An answer without choices is returned as empty text.
func (c *Completer) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateCompletion(ctx, goopenai.CompletionRequest{
		Model:     c.completionModel,
		Prompt:    prompt,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("create completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("completion returned no choices", zap.String("model", c.completionModel))
		return "", nil
	}
	c.logger.Debug("completion received",
		zap.String("model", c.completionModel),
		zap.String("finish_reason", resp.Choices[0].FinishReason),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return resp.Choices[0].Text, nil
}

func (c *Completer) ChatComplete(ctx context.Context, turns []domain.Turn) (string, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    chatRole(turn.Role),
			Content: turn.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("chat completion returned no choices", zap.String("model", c.chatModel))
		return "", nil
	}
	c.logger.Debug("chat completion received",
		zap.String("model", c.chatModel),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

func chatRole(role domain.Role) string {
	switch role {
	case domain.RoleSystem:
		return goopenai.ChatMessageRoleSystem
	default:
		return goopenai.ChatMessageRoleUser
	}
}
