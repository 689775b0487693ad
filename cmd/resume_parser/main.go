// Package main provides the resume_parser command line.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// appConfig is populated before any subcommand runs.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resume_parser",
	Short: "Extract structured fields from resumes",
	Long: "resume_parser turns PDF, DOCX, text and image resumes into a structured record. " +
		"An AI extractor fills most fields; local classifiers and pattern extractors fill the gaps.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json, pretty)")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.InitWriter(cfg.Log, cmd.ErrOrStderr())
	appConfig = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
