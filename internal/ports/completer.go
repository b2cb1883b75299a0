package ports

import (
	"context"

	"github.com/bnema/gptbridge/internal/domain"
)

type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	ChatComplete(ctx context.Context, turns []domain.Turn) (string, error)
}
