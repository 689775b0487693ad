package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/queue"
)

var (
	workerTimeout      time.Duration
	workerStoreResults bool
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume parse jobs from the message queue",
	Long:  "Consume jobs naming uploaded resumes in the object store, parse them and publish the results to the result queue.",
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().DurationVar(&workerTimeout, "job-timeout", 2*time.Minute, "Maximum time spent on a single job")
	workerCmd.Flags().BoolVar(&workerStoreResults, "store-results", true, "Also write each record to the object store")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	if appConfig.Queue.URL == "" {
		return fmt.Errorf("queue.url is required (set AMQP_URL)")
	}
	if !appConfig.Storage.Enabled() {
		return fmt.Errorf("the worker requires an object store (set storage.endpoint)")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Objects.EnsureBucket(ctx); err != nil {
		return err
	}

	handler := &queue.Handler{
		Objects:      a.Objects,
		Processor:    a.Pipeline,
		Timeout:      workerTimeout,
		StoreResults: workerStoreResults,
	}
	return queue.NewWorker(appConfig.Queue, handler).Run(ctx)
}
