package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-compass/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the assessment, session, matching and catalog endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	rt, err := wire(context.Background(), appConfig, appLogger, wireOptions{sessions: true})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	port := appConfig.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv := server.New(server.Config{
		Port:          port,
		AllowedOrigin: appConfig.Server.AllowedOrigin,
		RateLimit:     appConfig.Server.RateLimit,
		RateBurst:     appConfig.Server.RateBurst,
		OnShutdown:    []func(){rt.Close},
	}, rt.service, appLogger)

	return srv.Start()
}
