package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kutsjuice/weft/internal/config"
	"github.com/kutsjuice/weft/internal/renderer"
	"github.com/kutsjuice/weft/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the preview server with live reload",
	Long: `Start the preview server. Lessons render to HTML on request and
connected browsers reload automatically when a lesson source changes.

Examples:
  weft serve                      # Serve on the configured host/port
  weft serve -p 3000              # Serve on port 3000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to serve on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger()
	rend := renderer.NewLessonRenderer(generatorString(), cfg.Output.Footer)

	srv, err := server.New(cfg, rend, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("Shutting down server...")
		if shutdownErr := srv.Shutdown(context.Background()); shutdownErr != nil {
			fmt.Fprintf(os.Stderr, "Error during server shutdown: %v\n", shutdownErr)
		}
		cancel()
	}()

	fmt.Printf("Starting weft preview server at http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
