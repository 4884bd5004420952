package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"crossgen/internal/config"
	"crossgen/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP/WebSocket generation server",
	Long: `Serve starts the gin HTTP server exposing /health, /metrics,
/api/generate, /api/ws/progress, and the JWT-protected admin routes.

Examples:
  crossgen serve --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port (default from PORT env var or 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if servePort != "" {
		cfg.Port = servePort
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	return srv.Run()
}
