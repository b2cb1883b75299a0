package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	statusadapter "github.com/bnema/gptbridge/internal/adapters/render/status"
	jsonrepo "github.com/bnema/gptbridge/internal/adapters/repo/json"
	sqliterepo "github.com/bnema/gptbridge/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/gptbridge/internal/adapters/repo/toml"
	yamlrepo "github.com/bnema/gptbridge/internal/adapters/repo/yaml"
	chainstore "github.com/bnema/gptbridge/internal/adapters/secrets/chain"
	"github.com/bnema/gptbridge/internal/application"
	"github.com/bnema/gptbridge/internal/config"
	"github.com/bnema/gptbridge/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	configFile string
	verbose    bool

	v              *viper.Viper
	cfg            config.Config
	logger         *zap.Logger
	secretStore    ports.SecretStore
	statusRenderer func(application.Status) (string, error)
	now            func() time.Time
}

type stores struct {
	quotas   ports.QuotaStore
	sessions ports.SessionStore
	close    func() error
}

func (a *app) load() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	a.v = config.New(homeDir)
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Log.Level, a.verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.logger = logger

	secretStore, err := chainstore.NewCredentialStore(cfg.Secrets.Dir)
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}
	a.secretStore = secretStore

	if a.statusRenderer == nil {
		a.statusRenderer = statusadapter.Render
	}
	if a.now == nil {
		a.now = time.Now
	}

	return nil
}

func (a *app) syncLogger() {
	if a.logger != nil {
		// stderr sync fails on some terminals; nothing useful to do about it.
		_ = a.logger.Sync()
	}
}

func (a *app) credentials() *application.CredentialResolver {
	return application.NewCredentialResolver(a.secretStore)
}

// openStores returns the quota and session stores of the configured backend.
func (a *app) openStores(ctx context.Context) (stores, error) {
	dir := a.cfg.Store.Dir
	noClose := func() error { return nil }

	switch a.cfg.Store.Backend {
	case config.BackendJSON:
		quotas, err := jsonrepo.NewQuotaStore(dir)
		if err != nil {
			return stores{}, fmt.Errorf("wire json quota store: %w", err)
		}
		sessions, err := jsonrepo.NewSessionStore(dir)
		if err != nil {
			return stores{}, fmt.Errorf("wire json session store: %w", err)
		}
		return stores{quotas: quotas, sessions: sessions, close: noClose}, nil
	case config.BackendYAML:
		store, err := yamlrepo.NewStore(dir)
		if err != nil {
			return stores{}, fmt.Errorf("wire yaml store: %w", err)
		}
		return stores{quotas: store.Quotas(), sessions: store.Sessions(), close: noClose}, nil
	case config.BackendTOML:
		a.v.Set("store.dir", dir)
		repo, err := tomlrepo.NewRepository(a.v)
		if err != nil {
			return stores{}, fmt.Errorf("wire toml repository: %w", err)
		}
		return stores{quotas: repo.Quotas(), sessions: repo.Sessions(), close: noClose}, nil
	case config.BackendSQLite:
		store, err := sqliterepo.NewStore(ctx, dir)
		if err != nil {
			return stores{}, fmt.Errorf("wire sqlite store: %w", err)
		}
		return stores{quotas: store.Quotas(), sessions: store.Sessions(), close: store.Close}, nil
	default:
		return stores{}, fmt.Errorf("unknown store backend %q", a.cfg.Store.Backend)
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zcfg.Build()
}
