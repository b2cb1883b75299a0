package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	discordgateway "github.com/bnema/gptbridge/internal/adapters/gateway/discord"
	openaillm "github.com/bnema/gptbridge/internal/adapters/llm/openai"
	prommetrics "github.com/bnema/gptbridge/internal/adapters/metrics/prometheus"
	"github.com/bnema/gptbridge/internal/application"
	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to Discord and serve /ask and session threads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := app.cfg
			logger := app.logger

			botToken, err := app.credentials().Resolve(ctx, domain.SecretDiscordToken, cfg.Discord.Token)
			if err != nil {
				return err
			}
			apiKey, err := app.credentials().Resolve(ctx, domain.SecretOpenAIKey, cfg.OpenAI.APIKey)
			if err != nil {
				return err
			}

			st, err := app.openStores(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := st.close(); closeErr != nil {
					logger.Warn("close store failed", zap.Error(closeErr))
				}
			}()

			var metrics ports.Metrics = ports.NopMetrics{}
			var exporter *prommetrics.Metrics
			if cfg.Metrics.Addr != "" {
				exporter = prommetrics.New()
				metrics = exporter
			}

			ledger, err := application.NewAccessLedger(ctx, st.quotas, logger)
			if err != nil {
				return err
			}
			registry, err := application.NewSessionRegistry(ctx, st.sessions, logger)
			if err != nil {
				return err
			}

			completer, err := openaillm.NewCompleter(openaillm.Config{
				APIKey:          apiKey,
				BaseURL:         cfg.OpenAI.BaseURL,
				CompletionModel: cfg.OpenAI.CompletionModel,
				ChatModel:       cfg.OpenAI.ChatModel,
			}, logger)
			if err != nil {
				return fmt.Errorf("wire completion client: %w", err)
			}

			gateway, err := discordgateway.NewGateway(discordgateway.Config{
				Token:   botToken,
				AppID:   cfg.Discord.AppID,
				GuildID: cfg.Discord.GuildID,
			}, logger)
			if err != nil {
				return fmt.Errorf("wire discord gateway: %w", err)
			}

			bridge := application.NewBridge(application.BridgeDeps{
				Ledger:    ledger,
				Sessions:  registry,
				Assembler: application.NewConversationAssembler(cfg.Bridge.Persona, cfg.Bridge.EscapeMarker, cfg.Bridge.HistoryWindow),
				Invoker:   application.NewRetryingCompletionInvoker(completer, cfg.Bridge.RetryBackoff, cfg.OpenAI.MaxTokens, logger, metrics),
				Gateway:   gateway,
				Clock:     ports.SystemClock{},
				Logger:    logger,
				Metrics:   metrics,
			}, application.BridgeConfig{
				ChunkSize:         cfg.Bridge.ChunkSize,
				HistoryWindow:     cfg.Bridge.HistoryWindow,
				ThreadAutoArchive: cfg.Bridge.ThreadAutoArchive,
				SendRate:          rate.Limit(cfg.Bridge.SendRate),
				SendBurst:         cfg.Bridge.SendBurst,
			})

			sweeper := application.NewExpirySweeper(registry, gateway, ports.SystemClock{}, application.SweeperConfig{
				MaxIdle:  cfg.Sweeper.MaxIdle,
				Hour:     cfg.Sweeper.Hour,
				Location: cfg.Sweeper.Location(),
			}, logger, metrics)

			metrics.ObserveSessions(registry.Len())
			logger.Info("gptbridge starting",
				zap.String("store_backend", cfg.Store.Backend),
				zap.Int("principals", len(ledger.Snapshot())),
				zap.Int("sessions", registry.Len()),
			)

			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return gateway.Run(groupCtx, bridge)
			})
			group.Go(func() error {
				return sweeper.Run(groupCtx)
			})
			if exporter != nil {
				group.Go(func() error {
					return exporter.Serve(groupCtx, cfg.Metrics.Addr, logger)
				})
			}

			if err := group.Wait(); err != nil {
				return err
			}

			logger.Info("gptbridge stopped")
			return nil
		},
	}
}
