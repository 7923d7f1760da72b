package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/talegraph/talegraph/internal/server"
	"github.com/talegraph/talegraph/pkg/render"
)

// newServeCmd creates the serve command, which runs the timeline web UI.
func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the timeline web UI",
		Long: `Serve loads the timeline (snapshot first, then the source) and serves
the interactive diagram over HTTP. A startup fetch failure is not fatal;
the UI reports the error and the refresh button retries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			src, cleanup, err := newSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			store, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := server.NewService(src, store, cfg.DatabaseID, logger)
			if err := svc.Load(ctx, false); err != nil {
				logger.Warn("initial load failed, serving anyway", "err", err)
			}

			handler := server.New(svc, render.Theme(cfg.Theme), logger)
			srv := &http.Server{
				Addr:              cfg.Listen,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", cfg.Listen)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				logger.Info("server stopped")
				return nil
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config, :8420)")
	return cmd
}
