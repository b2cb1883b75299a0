package ports

import (
	"context"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
)

type Notifier interface {
	SendMessage(ctx context.Context, channelID string, content string) error
}

// ChatGateway is the delivery surface of the chat platform.
type ChatGateway interface {
	Notifier

	Respond(ctx context.Context, interaction domain.Interaction, content string) error
	DeferResponse(ctx context.Context, interaction domain.Interaction) error
	EditResponse(ctx context.Context, interaction domain.Interaction, content string) error
	SetChannelName(ctx context.Context, channelID string, name string) error
	CreateThread(ctx context.Context, parentChannelID string, name string, autoArchive time.Duration) (domain.SessionID, error)
	// FetchHistory returns up to limit recent conversational messages; fewer than limit means the
	// channel start was reached. limit <= 0 fetches the whole channel.
	FetchHistory(ctx context.Context, channelID string, limit int) ([]domain.HistoryMessage, error)
	SendTyping(ctx context.Context, channelID string) error
}
