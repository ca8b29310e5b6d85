// Command kbs is the terminal client for the internal knowledge base.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driven/authapi"
	fileconfig "github.com/keystone-labs/kbs-cli/internal/adapters/driven/config/file"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driven/localauth"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driven/remote"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driven/storage/sqlite"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/cli"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
	"github.com/keystone-labs/kbs-cli/internal/core/services"
	"github.com/keystone-labs/kbs-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := fileconfig.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	sessionStore, err := fileconfig.NewSessionStore("")
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	backend, err := newBackend(ctx, cfg, sessionStore)
	if err != nil {
		return err
	}
	defer backend.close()

	recorder := services.NewRecorder(backend.telemetry, cfg.GetInt("telemetry.queue_size"))
	defer recorder.Close()

	browser := services.NewBrowser(backend.documents, backend.sessions, recorder)
	aggregator := services.NewStatsAggregator(backend.stats, backend.sessions)
	ingester := services.NewIngester(backend.documents, backend.sessions, browser)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Session: backend.sessions,
		Browse:  browser,
		Stats:   aggregator,
		Ingest:  ingester,
	})

	return cli.Execute(ctx)
}

// backend bundles the driven adapters behind the store ports, picked by
// the `backend` config key.
type backend struct {
	sessions  *services.SessionManager
	documents driven.DocumentStore
	telemetry driven.TelemetryStore
	stats     driven.StatsStore
	close     func()
}

func newBackend(ctx context.Context, cfg driven.ConfigStore, sessionStore driven.SessionStore) (*backend, error) {
	kind := cfg.GetString("backend")
	if kind == "" {
		kind = "remote"
	}

	switch kind {
	case "remote":
		return newRemoteBackend(ctx, cfg, sessionStore)
	case "local":
		return newLocalBackend(cfg, sessionStore)
	default:
		return nil, fmt.Errorf("unknown backend %q (want remote or local)", kind)
	}
}

func newRemoteBackend(ctx context.Context, cfg driven.ConfigStore, sessionStore driven.SessionStore) (*backend, error) {
	baseURL := cfg.GetString("remote.url")
	if baseURL == "" {
		return nil, fmt.Errorf("remote.url is not configured; set it in %s or switch backend to local", configHint(cfg))
	}

	apiKey := cfg.GetString("remote.api_key")
	timeout := time.Duration(cfg.GetInt("remote.timeout_seconds")) * time.Second

	provider, err := authapi.NewClient(authapi.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating auth client: %w", err)
	}

	sessions := services.NewSessionManager(provider, sessionStore)

	client, err := remote.NewClient(remote.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: timeout,
	}, remote.NewTokenSource(ctx, sessions))
	if err != nil {
		return nil, fmt.Errorf("creating data client: %w", err)
	}

	logger.Debug("using remote backend at %s", baseURL)
	return &backend{
		sessions:  sessions,
		documents: client.DocumentStore(),
		telemetry: client.TelemetryStore(),
		stats:     client.StatsStore(),
		close:     func() {},
	}, nil
}

func newLocalBackend(cfg driven.ConfigStore, sessionStore driven.SessionStore) (*backend, error) {
	store, err := sqlite.NewStore(cfg.GetString("local.data_dir"))
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	sessions := services.NewSessionManager(localauth.NewProvider(), sessionStore)

	logger.Debug("using local backend at %s", store.Path())
	return &backend{
		sessions:  sessions,
		documents: store.DocumentStore(),
		telemetry: store.TelemetryStore(),
		stats:     store.StatsStore(),
		close: func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing local store: %v", err)
			}
		},
	}, nil
}

func configHint(cfg driven.ConfigStore) string {
	type pather interface{ Path() string }
	if p, ok := cfg.(pather); ok {
		return p.Path()
	}
	return "~/.kbs/config.toml"
}
