// Package main provides the entry point for the career_agent CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/config"
	"github.com/jonathan/career-compass/internal/logger"
)

var (
	configPath string
	verbose    bool

	appConfig *config.Config
	appLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Career self-assessment matching and guidance",
	Long: "career_agent scores a student's assessment answers against a career catalog, " +
		"explains each match, and produces pathway recommendations, from the command line or over a REST API.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./career-compass.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print formatted progress and results")
}

// loadRuntime loads configuration and the logger before any command runs.
func loadRuntime(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	appConfig, appLogger = cfg, log
	return nil
}

func main() {
	if err := config.LoadEnvFile(""); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if appLogger != nil {
		_ = appLogger.Sync()
	}
}
