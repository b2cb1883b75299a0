package discord

import (
	"context"
	"runtime/debug"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (g *Gateway) onReady(ctx context.Context, ready *discordgo.Ready) {
	defer g.recoverHandler("ready")

	appID := g.appID
	if appID == "" && ready.Application != nil {
		appID = ready.Application.ID
	}
	if appID == "" && ready.User != nil {
		appID = ready.User.ID
	}

	if ready.User != nil {
		g.logger.Info("discord session ready", zap.String("user", ready.User.Username))
	}

	if err := g.RegisterCommands(ctx, appID); err != nil {
		g.logger.Error("slash command registration failed", zap.Error(err))
	}
}

func (g *Gateway) onInteraction(ctx context.Context, handler EventHandler, event *discordgo.InteractionCreate) {
	defer g.recoverHandler("interaction")

	interaction, ok := toInteraction(event)
	if !ok {
		return
	}

	handler.HandleCommand(ctx, interaction)
}

func (g *Gateway) onMessage(ctx context.Context, handler EventHandler, event *discordgo.MessageCreate) {
	defer g.recoverHandler("message")

	message, ok := toInboundMessage(event)
	if !ok {
		return
	}

	handler.HandleMessage(ctx, message)
}

func (g *Gateway) recoverHandler(event string) {
	if recovered := recover(); recovered != nil {
		g.logger.Error("discord handler panicked",
			zap.String("event", event),
			zap.Any("panic", recovered),
			zap.ByteString("stack", debug.Stack()),
		)
	}
}

func toInteraction(event *discordgo.InteractionCreate) (domain.Interaction, bool) {
	if event == nil || event.Interaction == nil || event.Type != discordgo.InteractionApplicationCommand {
		return domain.Interaction{}, false
	}

	user := event.User
	if event.Member != nil && event.Member.User != nil {
		user = event.Member.User
	}
	if user == nil {
		return domain.Interaction{}, false
	}

	data := event.ApplicationCommandData()
	interaction := domain.Interaction{
		ID:          event.ID,
		Command:     domain.CommandName(data.Name),
		PrincipalID: domain.PrincipalID(user.ID),
		Username:    user.Username,
		ChannelID:   event.ChannelID,
		Handle:      event.Interaction,
	}

	for _, option := range data.Options {
		if option != nil && option.Name == queryOption && option.Type == discordgo.ApplicationCommandOptionString {
			interaction.Query = option.StringValue()
		}
	}

	return interaction, true
}

func toInboundMessage(event *discordgo.MessageCreate) (domain.InboundMessage, bool) {
	if event == nil || event.Message == nil || event.Author == nil {
		return domain.InboundMessage{}, false
	}

	return domain.InboundMessage{
		ID:        event.ID,
		AuthorID:  domain.PrincipalID(event.Author.ID),
		AuthorBot: event.Author.Bot,
		ChannelID: event.ChannelID,
		Content:   event.Content,
	}, true
}

// conversational reports whether message was typed by someone, as opposed to
// a pin, rename or thread notice.
func conversational(message *discordgo.Message) bool {
	return message.Type == discordgo.MessageTypeDefault || message.Type == discordgo.MessageTypeReply
}

func toHistoryMessage(message *discordgo.Message) domain.HistoryMessage {
	history := domain.HistoryMessage{
		ID:        message.ID,
		Content:   message.Content,
		CreatedAt: message.Timestamp,
	}
	if message.Author != nil {
		history.AuthorID = domain.PrincipalID(message.Author.ID)
		history.AuthorBot = message.Author.Bot
	}

	return history
}
