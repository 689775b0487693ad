package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP parsing API",
	Long:  "Start an HTTP server that accepts resume uploads on POST /parse and answers with the parsed record.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := appConfig.Server
	if servePort != 0 {
		cfg.Port = servePort
	}
	return server.New(cfg, a.Pipeline).Run(ctx)
}
