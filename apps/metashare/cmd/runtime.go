package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/quatton/metashare/pkg/db"
	"github.com/quatton/metashare/pkg/ghclient"
	"github.com/quatton/metashare/pkg/jobs"
	"github.com/quatton/metashare/pkg/kv"
	"github.com/quatton/metashare/pkg/msapi/config"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/salesforce"
	"github.com/quatton/metashare/pkg/store"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

const kvPrefix = "metashare:"

// runtime holds the connections shared by the server and the worker.
type runtime struct {
	cfg        *config.EnvConfig
	logger     *mslog.Logger
	db         *bun.DB
	redis      *redis.Client
	stores     *store.Stores
	kv         kv.Store
	queue      *jobs.RedisQueue
	github     ghclient.TokenProvider
	githubApp  ghclient.API
	salesforce *salesforce.Client
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.ValidateEnv()
	if err != nil {
		return nil, err
	}
	cfg.Print(log.Printf)

	logger := mslog.ForEnvironment(cfg.Environment, cfg.Verbose)

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	client, err := kv.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	rt := &runtime{
		cfg:    cfg,
		logger: logger,
		db:     database,
		redis:  client,
		stores: store.New(database),
		kv:     kv.NewRedisStore(client, kvPrefix),
		queue:  jobs.NewRedisQueue(client, ""),
		github: ghclient.TokenProvider{EnterpriseURL: cfg.GitHubEnterpriseURL},
		salesforce: salesforce.New(salesforce.Config{
			ClientID:     cfg.SalesforceClientID,
			ClientSecret: cfg.SalesforceClientSecret,
			LoginURL:     cfg.SalesforceLoginURL,
			APIVersion:   cfg.SalesforceAPIVersion,
		}, nil),
	}

	if cfg.GitHubAppID != 0 {
		app, err := ghclient.NewInstallationClient(cfg.GitHubAppID, cfg.GitHubAppInstallationID, cfg.GitHubAppKey(), cfg.GitHubEnterpriseURL)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to initialize GitHub App client: %w", err)
		}
		rt.githubApp = app
	}
	return rt, nil
}

func (r *runtime) Close() {
	if err := r.redis.Close(); err != nil {
		r.logger.Warn("closing redis", "error", err)
	}
	if err := r.db.Close(); err != nil {
		r.logger.Warn("closing database", "error", err)
	}
}
