package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/warp/production-engine/api"
	"github.com/warp/production-engine/crew"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the rest-compliance monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			rule := crew.Rule{MaxWorkedDaysPerWeek: cfg.Compliance.MaxWorkedDaysPerWeek}
			handler := api.NewHandler(store, rule)
			router := api.NewRouter(handler, cfg.CORS.AllowedOrigins)

			monitor := api.NewComplianceMonitor(store, rule)
			monitor.ScanInterval = cfg.Compliance.ScanInterval
			monitor.Enabled = cfg.Compliance.Enabled

			server := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:      router,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				log.Printf("[Server] Starting on http://localhost:%d (database %s)", cfg.Server.Port, cfg.Database.Path)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()
			monitor.Start()

			// Wait for interrupt signal or a listener failure
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-quit:
			case err := <-errCh:
				monitor.Stop()
				return fmt.Errorf("server failed: %w", err)
			}

			log.Println("[Server] Shutting down...")
			monitor.Stop()

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			log.Println("[Server] Stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP server port (overrides config)")
	return cmd
}
