package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quatton/metashare/pkg/msapi"
	"github.com/quatton/metashare/pkg/msapi/services"
	"github.com/quatton/metashare/pkg/msapi/services/auth"
	"github.com/quatton/metashare/pkg/msapi/services/health"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"serve"},
	Short:   "Start the API server",
	Long: `Starts the HTTP API. Slow work is queued on redis; pass --with-worker to
consume the queue in the same process instead of running "metashare worker"
separately.`,
	RunE: run,
}

var (
	runWithWorker     bool
	runShutdownWindow time.Duration
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runWithWorker, "with-worker", false, "Also run the background job worker")
	runCmd.Flags().DurationVar(&runShutdownWindow, "shutdown-timeout", 15*time.Second, "How long to wait for in-flight requests on shutdown")
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx)
	if err != nil {
		log.Printf("❌ %v\n", err)
		return err
	}
	defer rt.Close()
	cfg := rt.cfg

	checks := map[string]health.Check{
		"database": health.Database(rt.db),
		"redis":    health.Redis(rt.redis),
	}
	deps := services.Deps{
		Auth: auth.Config{
			Secret:     cfg.AuthSecret,
			AccessTTL:  cfg.AccessTTL(),
			RefreshTTL: cfg.RefreshTTL(),
		},
		Stores:       rt.stores,
		KV:           rt.kv,
		Queue:        rt.queue,
		GitHub:       rt.github,
		GitHubApp:    rt.githubApp,
		Salesforce:   rt.salesforce,
		HealthChecks: checks,
		Logger:       rt.logger,
	}
	svcs := services.NewServices(deps)

	api := msapi.NewApi(msapi.Options{
		Logger:         rt.logger,
		RateLimit:      cfg.RateLimit,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	api.Mount(svcs)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           api.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.logger.Info("🚀 API starting", "addr", server.Addr)
		rt.logger.Info("📚 OpenAPI docs", "url", cfg.BaseURL+"/docs")
		rt.logger.Info("📄 OpenAPI spec", "url", cfg.BaseURL+"/openapi.json")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), runShutdownWindow)
		defer cancel()
		rt.logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	if runWithWorker {
		g.Go(func() error {
			return newWorker(rt).Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		rt.logger.Error("server error", "error", err)
		return err
	}
	return nil
}
