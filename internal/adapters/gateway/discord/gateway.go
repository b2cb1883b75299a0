// Package discord connects the bridge to Discord: slash commands in, thread messages in, replies out.
package discord

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	historyPageSize = 100
	intents         = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
)

var errMissingInteraction = errors.New("interaction handle is missing")

// api is the subset of *discordgo.Session the gateway uses.
type api interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelEdit(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ThreadStart(channelID, name string, typ discordgo.ChannelType, archiveDuration int, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
}

// EventHandler receives platform events already mapped to domain types.
type EventHandler interface {
	HandleCommand(ctx context.Context, interaction domain.Interaction)
	HandleMessage(ctx context.Context, message domain.InboundMessage)
}

type Config struct {
	Token   string
	AppID   string
	GuildID string
}

type Gateway struct {
	api     api
	appID   string
	guildID string
	logger  *zap.Logger
}

var (
	_ ports.ChatGateway = (*Gateway)(nil)
	_ api               = (*discordgo.Session)(nil)
)

func NewGateway(cfg Config, logger *zap.Logger) (*Gateway, error) {
	if cfg.Token == "" {
		return nil, errors.New("discord bot token is required")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = intents

	return newGateway(session, cfg, logger), nil
}

func newGateway(client api, cfg Config, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		api:     client,
		appID:   cfg.AppID,
		guildID: cfg.GuildID,
		logger:  logger.With(zap.String("component", "discord")),
	}
}

// Run connects, registers the slash commands and dispatches events to handler until ctx is done.
func (g *Gateway) Run(ctx context.Context, handler EventHandler) error {
	removeReady := g.api.AddHandler(func(_ *discordgo.Session, ready *discordgo.Ready) {
		g.onReady(ctx, ready)
	})
	defer removeReady()

	removeInteraction := g.api.AddHandler(func(_ *discordgo.Session, event *discordgo.InteractionCreate) {
		g.onInteraction(ctx, handler, event)
	})
	defer removeInteraction()

	removeMessage := g.api.AddHandler(func(_ *discordgo.Session, event *discordgo.MessageCreate) {
		g.onMessage(ctx, handler, event)
	})
	defer removeMessage()

	if err := g.api.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	g.logger.Info("discord gateway connected")

	<-ctx.Done()

	if err := g.api.Close(); err != nil {
		return fmt.Errorf("close discord gateway: %w", err)
	}
	g.logger.Info("discord gateway closed")

	return nil
}

func (g *Gateway) RegisterCommands(ctx context.Context, appID string) error {
	if appID == "" {
		return errors.New("application id is required to register commands")
	}

	registered, err := g.api.ApplicationCommandBulkOverwrite(appID, g.guildID, applicationCommands(), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("register slash commands: %w", err)
	}

	g.logger.Info("slash commands registered", zap.Int("count", len(registered)), zap.String("guild_id", g.guildID))
	return nil
}

func (g *Gateway) Respond(ctx context.Context, interaction domain.Interaction, content string) error {
	handle, err := interactionHandle(interaction)
	if err != nil {
		return err
	}

	err = g.api.InteractionRespond(handle, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("respond to interaction: %w", err)
	}

	return nil
}

func (g *Gateway) DeferResponse(ctx context.Context, interaction domain.Interaction) error {
	handle, err := interactionHandle(interaction)
	if err != nil {
		return err
	}

	err = g.api.InteractionRespond(handle, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("defer interaction response: %w", err)
	}

	return nil
}

func (g *Gateway) EditResponse(ctx context.Context, interaction domain.Interaction, content string) error {
	handle, err := interactionHandle(interaction)
	if err != nil {
		return err
	}

	if _, err := g.api.InteractionResponseEdit(handle, &discordgo.WebhookEdit{Content: &content}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit interaction response: %w", err)
	}

	return nil
}

func (g *Gateway) SendMessage(ctx context.Context, channelID string, content string) error {
	if _, err := g.api.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send message to %s: %w", channelID, err)
	}

	return nil
}

func (g *Gateway) SetChannelName(ctx context.Context, channelID string, name string) error {
	if _, err := g.api.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("rename channel %s: %w", channelID, err)
	}

	return nil
}

func (g *Gateway) CreateThread(ctx context.Context, parentChannelID string, name string, autoArchive time.Duration) (domain.SessionID, error) {
	thread, err := g.api.ThreadStart(parentChannelID, name, discordgo.ChannelTypeGuildPublicThread, archiveMinutes(autoArchive), discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("start thread in %s: %w", parentChannelID, err)
	}

	return domain.SessionID(thread.ID), nil
}

// FetchHistory pages backwards from the newest message, skipping system notices, until limit
// conversational messages are collected. limit <= 0 reads the whole channel.
func (g *Gateway) FetchHistory(ctx context.Context, channelID string, limit int) ([]domain.HistoryMessage, error) {
	history := make([]domain.HistoryMessage, 0)
	before := ""

	for limit <= 0 || len(history) < limit {
		pageSize := historyPageSize
		if limit > 0 {
			pageSize = min(historyPageSize, limit-len(history))
		}

		cursor := before
		page, err := g.api.ChannelMessages(channelID, pageSize, cursor, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetch messages of %s: %w", channelID, err)
		}

		for _, message := range page {
			if message == nil {
				continue
			}
			before = message.ID
			if !conversational(message) {
				continue
			}
			history = append(history, toHistoryMessage(message))
		}

		if len(page) < pageSize || before == cursor {
			break
		}
	}

	return history, nil
}

func (g *Gateway) SendTyping(ctx context.Context, channelID string) error {
	if err := g.api.ChannelTyping(channelID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send typing to %s: %w", channelID, err)
	}

	return nil
}

func interactionHandle(interaction domain.Interaction) (*discordgo.Interaction, error) {
	handle, ok := interaction.Handle.(*discordgo.Interaction)
	if !ok || handle == nil {
		return nil, errMissingInteraction
	}

	return handle, nil
}

var allowedArchiveMinutes = []int{60, 1440, 4320, 10080}

// archiveMinutes rounds d up to a duration Discord accepts.
func archiveMinutes(d time.Duration) int {
	minutes := int(d.Minutes())
	index, _ := slices.BinarySearch(allowedArchiveMinutes, minutes)
	if index >= len(allowedArchiveMinutes) {
		return allowedArchiveMinutes[len(allowedArchiveMinutes)-1]
	}

	return allowedArchiveMinutes[index]
}
