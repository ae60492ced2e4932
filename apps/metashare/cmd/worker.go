package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/quatton/metashare/pkg/jobs"
	"github.com/quatton/metashare/pkg/jobs/handlers"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume background jobs",
	Long:  `Pulls jobs queued by the API from redis and runs them until interrupted.`,
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func newWorker(rt *runtime) *jobs.Worker {
	w := jobs.NewWorker(rt.queue, jobs.WorkerConfig{
		Concurrency: rt.cfg.WorkerConcurrency,
		PollTimeout: rt.cfg.WorkerPollTimeout,
		MaxAttempts: rt.cfg.WorkerMaxAttempts,
	}, rt.logger)
	handlers.New(handlers.Deps{
		Stores:     rt.stores,
		GitHub:     rt.github,
		Salesforce: rt.salesforce,
		Logger:     rt.logger,
	}).Register(w)
	return w
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx)
	if err != nil {
		log.Printf("❌ %v\n", err)
		return err
	}
	defer rt.Close()

	return newWorker(rt).Run(ctx)
}
