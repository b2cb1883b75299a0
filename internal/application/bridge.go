package application

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultThreadAutoArchive = 60 * time.Minute
	DefaultSendRate          = rate.Limit(5)
	DefaultSendBurst         = 5
	defaultThreadName        = "session"
)

type BridgeConfig struct {
	ChunkSize         int
	HistoryWindow     int
	ThreadAutoArchive time.Duration
	SendRate          rate.Limit
	SendBurst         int
}

type BridgeDeps struct {
	Ledger    *AccessLedger
	Sessions  *SessionRegistry
	Assembler *ConversationAssembler
	Invoker   *RetryingCompletionInvoker
	Gateway   ports.ChatGateway
	Clock     ports.Clock
	Logger    *zap.Logger
	Metrics   ports.Metrics
}

// Bridge handles platform events: admission first, then session bookkeeping or completion and delivery.
type Bridge struct {
	ledger    *AccessLedger
	sessions  *SessionRegistry
	assembler *ConversationAssembler
	invoker   *RetryingCompletionInvoker
	gateway   ports.ChatGateway
	clock     ports.Clock
	logger    *zap.Logger
	metrics   ports.Metrics
	cfg       BridgeConfig
	limiter   *rate.Limiter
}

func NewBridge(deps BridgeDeps, cfg BridgeConfig) *Bridge {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = ports.NopMetrics{}
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = domain.MaxMessageLength
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = DefaultHistoryWindow
	}
	if cfg.ThreadAutoArchive <= 0 {
		cfg.ThreadAutoArchive = DefaultThreadAutoArchive
	}
	if cfg.SendRate <= 0 {
		cfg.SendRate = DefaultSendRate
	}
	if cfg.SendBurst <= 0 {
		cfg.SendBurst = DefaultSendBurst
	}

	return &Bridge{
		ledger:    deps.Ledger,
		sessions:  deps.Sessions,
		assembler: deps.Assembler,
		invoker:   deps.Invoker,
		gateway:   deps.Gateway,
		clock:     deps.Clock,
		logger:    deps.Logger.With(zap.String("component", "bridge")),
		metrics:   deps.Metrics,
		cfg:       cfg,
		limiter:   rate.NewLimiter(cfg.SendRate, cfg.SendBurst),
	}
}

func (b *Bridge) HandleCommand(ctx context.Context, interaction domain.Interaction) {
	logger := b.logger.With(
		zap.String("event_id", uuid.NewString()),
		zap.String("command", string(interaction.Command)),
		zap.String("principal", string(interaction.PrincipalID)),
		zap.String("channel_id", interaction.ChannelID),
	)
	defer recoverEvent(logger)

	switch interaction.Command {
	case domain.CommandAsk:
		b.handleAsk(ctx, logger, interaction)
	case domain.CommandStartSession:
		b.handleStartSession(ctx, logger, interaction)
	case domain.CommandStopSession:
		b.handleStopSession(ctx, logger, interaction)
	default:
		if reply, ok := b.admit(ctx, logger, interaction.PrincipalID); !ok {
			b.respond(ctx, logger, interaction, reply)
			return
		}
		b.respond(ctx, logger, interaction, ReplyUnknownCommand)
	}
}

func (b *Bridge) HandleMessage(ctx context.Context, message domain.InboundMessage) {
	if message.AuthorBot {
		return
	}
	if !b.sessions.Contains(domain.SessionID(message.ChannelID)) {
		return
	}
	if b.assembler.IsEscaped(message.Content) {
		return
	}

	logger := b.logger.With(
		zap.String("event_id", uuid.NewString()),
		zap.String("principal", string(message.AuthorID)),
		zap.String("session_id", message.ChannelID),
	)
	defer recoverEvent(logger)

	if reply, ok := b.admit(ctx, logger, message.AuthorID); !ok {
		b.send(ctx, logger, message.ChannelID, reply)
		return
	}

	if err := b.gateway.SendTyping(ctx, message.ChannelID); err != nil {
		logger.Debug("typing indicator failed", zap.Error(err))
	}

	history, err := b.gateway.FetchHistory(ctx, message.ChannelID, b.cfg.HistoryWindow)
	if err != nil {
		logger.Error("fetch session history failed", zap.Error(fmt.Errorf("%w: %w", domain.ErrMalformedHistory, err)))
		b.send(ctx, logger, message.ChannelID, ReplyHistoryError)
		return
	}

	assembly := b.assembler.Assemble(history)
	// A full window may hide earlier turns, so only a short fetch proves this is the first one.
	if assembly.Label != "" && len(history) < b.cfg.HistoryWindow {
		if err := b.gateway.SetChannelName(ctx, message.ChannelID, assembly.Label); err != nil {
			logger.Warn("rename session failed", zap.Error(err))
		}
	}

	result := b.invoker.Chat(ctx, assembly.Turns)
	if !result.OK() {
		b.send(ctx, logger, message.ChannelID, ReplyTryLater)
		return
	}
	if strings.TrimSpace(result.Text) == "" {
		b.send(ctx, logger, message.ChannelID, ReplyNoResponse)
		return
	}

	b.deliver(ctx, logger, message.ChannelID, domain.Chunk(result.Text, b.cfg.ChunkSize))
}

func (b *Bridge) handleAsk(ctx context.Context, logger *zap.Logger, interaction domain.Interaction) {
	if reply, ok := b.admit(ctx, logger, interaction.PrincipalID); !ok {
		b.respond(ctx, logger, interaction, reply)
		return
	}

	if err := b.gateway.DeferResponse(ctx, interaction); err != nil {
		logger.Error("defer response failed", zap.Error(err))
		return
	}

	result := b.invoker.Complete(ctx, interaction.Query)
	if !result.OK() {
		b.editResponse(ctx, logger, interaction, ReplyTryLater)
		return
	}
	if strings.TrimSpace(result.Text) == "" {
		b.editResponse(ctx, logger, interaction, ReplyNoResponse)
		return
	}

	chunks := domain.Chunk(result.Text, b.cfg.ChunkSize)
	if !b.editResponse(ctx, logger, interaction, chunks[0]) {
		return
	}
	b.deliver(ctx, logger, interaction.ChannelID, chunks[1:])
}

func (b *Bridge) handleStartSession(ctx context.Context, logger *zap.Logger, interaction domain.Interaction) {
	if reply, ok := b.admit(ctx, logger, interaction.PrincipalID); !ok {
		b.respond(ctx, logger, interaction, reply)
		return
	}

	name := truncateRunes(strings.TrimSpace(interaction.Username), sessionLabelLength)
	if name == "" {
		name = defaultThreadName
	}

	sessionID, err := b.gateway.CreateThread(ctx, interaction.ChannelID, name, b.cfg.ThreadAutoArchive)
	if err != nil {
		logger.Error("create session thread failed", zap.Error(err))
		b.respond(ctx, logger, interaction, ReplySessionCreateFailed)
		return
	}

	if err := b.sessions.Create(ctx, sessionID, b.clock.Now()); err != nil {
		logger.Error("register session failed", zap.String("session_id", string(sessionID)), zap.Error(err))
		b.respond(ctx, logger, interaction, ReplyGenericError)
		return
	}
	b.metrics.ObserveSessions(b.sessions.Len())

	logger.Info("session started", zap.String("session_id", string(sessionID)))
	b.respond(ctx, logger, interaction, ReplySessionCreated)
}

func (b *Bridge) handleStopSession(ctx context.Context, logger *zap.Logger, interaction domain.Interaction) {
	if reply, ok := b.admit(ctx, logger, interaction.PrincipalID); !ok {
		b.respond(ctx, logger, interaction, reply)
		return
	}

	removed, err := b.sessions.Remove(ctx, domain.SessionID(interaction.ChannelID))
	if err != nil {
		logger.Error("remove session failed", zap.Error(err))
		b.respond(ctx, logger, interaction, ReplyGenericError)
		return
	}
	if !removed {
		b.respond(ctx, logger, interaction, ReplyNotASession)
		return
	}
	b.metrics.ObserveSessions(b.sessions.Len())

	logger.Info("session stopped")
	b.respond(ctx, logger, interaction, ReplySessionStopped)
}

// admit consumes one invocation; on denial it returns the reply to show.
func (b *Bridge) admit(ctx context.Context, logger *zap.Logger, principal domain.PrincipalID) (string, bool) {
	decision, err := b.ledger.CheckAndConsume(ctx, principal)
	b.metrics.ObserveAdmission(string(decision.Outcome))
	if err != nil {
		logger.Error("admission failed", zap.Error(err))
		return ReplyGenericError, false
	}

	switch {
	case decision.Allowed():
		return "", true
	case errors.Is(decision.Err(), domain.ErrQuotaExhausted):
		logger.Info("admission denied", zap.String("outcome", string(decision.Outcome)))
		return ReplyQuotaExhausted, false
	default:
		logger.Info("admission denied", zap.String("outcome", string(decision.Outcome)))
		return ReplyAccessDenied, false
	}
}

func (b *Bridge) deliver(ctx context.Context, logger *zap.Logger, channelID string, chunks []string) {
	for index, chunk := range chunks {
		if err := b.limiter.Wait(ctx); err != nil {
			logger.Warn("delivery interrupted", zap.Int("chunk", index), zap.Error(err))
			return
		}
		if err := b.gateway.SendMessage(ctx, channelID, chunk); err != nil {
			logger.Error("deliver chunk failed", zap.Int("chunk", index), zap.Int("chunks", len(chunks)), zap.Error(err))
			return
		}
	}
}

func (b *Bridge) respond(ctx context.Context, logger *zap.Logger, interaction domain.Interaction, content string) {
	if err := b.gateway.Respond(ctx, interaction, content); err != nil {
		logger.Error("respond to interaction failed", zap.Error(err))
	}
}

func (b *Bridge) editResponse(ctx context.Context, logger *zap.Logger, interaction domain.Interaction, content string) bool {
	if err := b.gateway.EditResponse(ctx, interaction, content); err != nil {
		logger.Error("edit interaction response failed", zap.Error(err))
		return false
	}
	return true
}

func (b *Bridge) send(ctx context.Context, logger *zap.Logger, channelID string, content string) {
	if err := b.gateway.SendMessage(ctx, channelID, content); err != nil {
		logger.Error("send message failed", zap.Error(err))
	}
}

func recoverEvent(logger *zap.Logger) {
	if recovered := recover(); recovered != nil {
		logger.Error("event handler panicked",
			zap.Any("panic", recovered),
			zap.ByteString("stack", debug.Stack()),
		)
	}
}
