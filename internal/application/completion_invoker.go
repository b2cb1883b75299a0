package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	"go.uber.org/zap"
)

const (
	DefaultRetryBackoff   = 10 * time.Second
	DefaultMaxTokens      = 3200
	maxCompletionAttempts = 2
)

type CompletionMode string

const (
	CompletionModeSingle CompletionMode = "complete"
	CompletionModeChat   CompletionMode = "chat"
)

type CompletionResult struct {
	Text     string
	Attempts int
	// Err is non-nil for a terminal failure and wraps domain.ErrUpstreamFatal.
	Err error
}

func (r CompletionResult) OK() bool {
	return r.Err == nil
}

// RetryingCompletionInvoker calls the completer at most twice, waiting a fixed backoff between attempts.
type RetryingCompletionInvoker struct {
	completer ports.Completer
	backoff   time.Duration
	maxTokens int
	logger    *zap.Logger
	metrics   ports.Metrics
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewRetryingCompletionInvoker(completer ports.Completer, backoff time.Duration, maxTokens int, logger *zap.Logger, metrics ports.Metrics) *RetryingCompletionInvoker {
	if backoff < 0 {
		backoff = DefaultRetryBackoff
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &RetryingCompletionInvoker{
		completer: completer,
		backoff:   backoff,
		maxTokens: maxTokens,
		logger:    logger.With(zap.String("component", "completion_invoker")),
		metrics:   metrics,
		sleep:     sleepContext,
	}
}

func (i *RetryingCompletionInvoker) Complete(ctx context.Context, prompt string) CompletionResult {
	return i.invoke(ctx, CompletionModeSingle, func(ctx context.Context) (string, error) {
		return i.completer.Complete(ctx, prompt, i.maxTokens)
	})
}

func (i *RetryingCompletionInvoker) Chat(ctx context.Context, turns []domain.Turn) CompletionResult {
	return i.invoke(ctx, CompletionModeChat, func(ctx context.Context) (string, error) {
		return i.completer.ChatComplete(ctx, turns)
	})
}

func (i *RetryingCompletionInvoker) invoke(ctx context.Context, mode CompletionMode, call func(context.Context) (string, error)) CompletionResult {
	started := time.Now()
	logger := i.logger.With(zap.String("mode", string(mode)))

	var lastErr error
	for attempt := 1; attempt <= maxCompletionAttempts; attempt++ {
		text, err := callRecovering(ctx, call)
		if err == nil {
			i.metrics.ObserveCompletion(string(mode), attempt, true, time.Since(started))
			return CompletionResult{Text: text, Attempts: attempt}
		}

		lastErr = fmt.Errorf("%w: %w", domain.ErrUpstreamTransient, err)
		logger.Warn("completion attempt failed", zap.Int("attempt", attempt), zap.Error(err))

		if attempt == maxCompletionAttempts {
			break
		}
		if waitErr := i.sleep(ctx, i.backoff); waitErr != nil {
			lastErr = errors.Join(lastErr, fmt.Errorf("wait before retry: %w", waitErr))
			i.metrics.ObserveCompletion(string(mode), attempt, false, time.Since(started))
			return CompletionResult{Attempts: attempt, Err: fmt.Errorf("%w: %w", domain.ErrUpstreamFatal, lastErr)}
		}
	}

	logger.Error("completion failed after retry", zap.Int("attempts", maxCompletionAttempts), zap.Error(lastErr))
	i.metrics.ObserveCompletion(string(mode), maxCompletionAttempts, false, time.Since(started))

	return CompletionResult{Attempts: maxCompletionAttempts, Err: fmt.Errorf("%w: %w", domain.ErrUpstreamFatal, lastErr)}
}

func callRecovering(ctx context.Context, call func(context.Context) (string, error)) (text string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("completer panic: %v", recovered)
		}
	}()

	return call(ctx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
