package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"merch-intake/app"
	"merch-intake/telemetry"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the merch request API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := loadConfig(false)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sink := telemetry.NewZerologSink(log.Logger, zerolog.InfoLevel)
		application, err := app.Initialize(ctx, cfg, sink)
		if err != nil {
			return err
		}
		defer application.Close()

		// 0.0.0.0 so the server is reachable from outside a container
		addr := "0.0.0.0:" + cfg.Port
		server := &http.Server{
			Addr:              addr,
			Handler:           application.Handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().
				Str("addr", addr).
				Str("storage", string(application.Storage)).
				Msg("🚀 Server starting")
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info().Msg("🛑 Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info().Msg("✓ Server stopped")
		return nil
	},
}
